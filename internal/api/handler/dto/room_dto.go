package dto

import (
	"fmt"
	"strconv"
	"time"

	"hotel-booking-service/internal/domain/room"

	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=ECONOM STANDARD LUX"`
	NightlyRate string `json:"nightlyRate" validate:"required"`
}

func (r *CreateRoomRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid room request: %w", err)
	}
	if _, err := decimal.NewFromString(r.NightlyRate); err != nil {
		return fmt.Errorf("invalid nightlyRate format: %w", err)
	}
	return nil
}

type RoomResponse struct {
	RoomID      string    `json:"roomId"`
	Name        string    `json:"name"`
	Level       string    `json:"level"`
	NightlyRate string    `json:"nightlyRate"`
	CreateDate  time.Time `json:"createDate"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	if rm == nil {
		return RoomResponse{}
	}

	return RoomResponse{
		RoomID:      strconv.FormatInt(rm.RoomID, 10),
		Name:        rm.Name,
		Level:       string(rm.Level),
		NightlyRate: rm.NightlyRate.StringFixed(2),
		CreateDate:  rm.CreateDate,
		UpdatedAt:   rm.UpdatedAt,
	}
}
