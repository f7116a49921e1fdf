package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// RoomService is the administrative surface used to seed and inspect the
// room inventory. Booking creation itself never creates rooms; it only
// resolves them by name through the repository.
type RoomService interface {
	CreateRoom(ctx context.Context, name string, level Level, nightlyRate decimal.Decimal) (*Room, error)
	GetRoomByName(ctx context.Context, name string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
}

var _ RoomService = (*roomService)(nil)

type roomService struct {
	repo   RoomRepository
	logger *slog.Logger
}

func NewRoomService(repo RoomRepository, logger *slog.Logger) RoomService {
	if repo == nil {
		panic("room repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewRoomService, using default stderr handler")
	}
	return &roomService{
		repo:   repo,
		logger: logger.With(slog.String("component", "roomService")),
	}
}

func (s *roomService) CreateRoom(ctx context.Context, name string, level Level, nightlyRate decimal.Decimal) (*Room, error) {
	s.logger.InfoContext(ctx, "Attempting to create new room", slog.String("name", name))

	name = strings.TrimSpace(name)
	if name == "" {
		s.logger.WarnContext(ctx, "Validation failed: room name is empty")
		return nil, fmt.Errorf("%w: room name cannot be empty", apperrors.ErrInvalidArgument)
	}
	if !level.Valid() {
		s.logger.WarnContext(ctx, "Validation failed: unknown room level", slog.String("level", string(level)))
		return nil, fmt.Errorf("%w: unknown room level %q", apperrors.ErrInvalidArgument, level)
	}
	if nightlyRate.IsNegative() {
		s.logger.WarnContext(ctx, "Validation failed: negative nightly rate", slog.String("rate", nightlyRate.String()))
		return nil, fmt.Errorf("%w: nightly rate cannot be negative", apperrors.ErrInvalidArgument)
	}

	newRoom := NewRoom(name, level, nightlyRate)

	s.logger.InfoContext(ctx, "Calling repository Save")
	if err := s.repo.Save(ctx, newRoom); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Room name already taken", slog.String("name", name))
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new room", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new room: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new room", slog.Int64("roomID", newRoom.RoomID))
	return newRoom, nil
}

func (s *roomService) GetRoomByName(ctx context.Context, name string) (*Room, error) {
	s.logger.InfoContext(ctx, "Attempting to get room by name", slog.String("name", name))

	found, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Room not found by repository", slog.String("name", name))
			return nil, fmt.Errorf("%w: %s", ErrNoSuchRoom, name)
		}
		s.logger.ErrorContext(ctx, "Repository error finding room", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get room %q: %w", name, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved room", slog.Int64("roomID", found.RoomID))
	return found, nil
}

func (s *roomService) ListRooms(ctx context.Context) ([]*Room, error) {
	s.logger.InfoContext(ctx, "Attempting to list all rooms")

	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing rooms", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved rooms", slog.Int("count", len(rooms)))
	return rooms, nil
}
