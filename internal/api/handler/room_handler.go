package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"hotel-booking-service/internal/api/handler/dto"
	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type RoomHandler struct {
	service room.RoomService
	logger  *slog.Logger
}

func NewRoomHandler(s room.RoomService, l *slog.Logger) *RoomHandler {
	if s == nil {
		panic("room service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &RoomHandler{
		service: s,
		logger:  l.With("component", "RoomHandler"),
	}
}

// CreateRoom handles POST /rooms
// @Summary Create a new room
// @Description Registers a room with a unique name, a comfort level and a nightly rate.
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room creation request"
// @Success 201 {object} dto.RoomResponse "Room successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or duplicate room name"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rooms [post]
// @Security BearerAuth
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create room request")

	var req dto.CreateRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	nightlyRate, _ := decimal.NewFromString(req.NightlyRate)

	createdRoom, err := h.service.CreateRoom(r.Context(), req.Name, room.Level(req.Level), nightlyRate)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to create room", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewRoomResponse(createdRoom)
	h.logger.InfoContext(r.Context(), "Room created successfully", slog.String("roomID", resp.RoomID))
	respondJSON(w, http.StatusCreated, resp)
}

// ListRooms handles GET /rooms
// @Summary List rooms
// @Description Retrieves all registered rooms.
// @Tags Rooms
// @Produce json
// @Success 200 {array} dto.RoomResponse "List of rooms"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rooms [get]
// @Security BearerAuth
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list rooms request")

	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list rooms", slog.Any("error", err))
		respondError(w, err)
		return
	}

	responses := make([]dto.RoomResponse, len(rooms))
	for i, rm := range rooms {
		responses[i] = dto.NewRoomResponse(rm)
	}

	h.logger.InfoContext(r.Context(), "Rooms listed successfully", slog.Int("count", len(responses)))
	respondJSON(w, http.StatusOK, responses)
}
