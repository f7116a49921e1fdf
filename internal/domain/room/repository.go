package room

import (
	"context"
	"errors"
)

var (
	ErrNoSuchRoom = errors.New("room not found")

	ErrDuplicateName = errors.New("room name already taken")
)

type RoomRepository interface {
	Save(ctx context.Context, room *Room) error

	FindByID(ctx context.Context, roomID int64) (*Room, error)

	FindByName(ctx context.Context, name string) (*Room, error)

	FindAll(ctx context.Context) ([]*Room, error)
}
