package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"hotel-booking-service/internal/api/handler/dto"
	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/domain/customer"
	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	service booking.BookingService
	logger  *slog.Logger
}

func NewBookingHandler(s booking.BookingService, l *slog.Logger) *BookingHandler {
	if s == nil {
		panic("booking service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &BookingHandler{
		service: s,
		logger:  l.With("component", "BookingHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// respondError maps every booking failure a caller can provoke to 400.
// Only storage and other unexpected errors surface as 500.
func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, booking.ErrNoSuchBooking),
		errors.Is(err, booking.ErrBookingConflict),
		errors.Is(err, room.ErrNoSuchRoom),
		errors.Is(err, room.ErrDuplicateName),
		errors.Is(err, customer.ErrNotFound):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getBookingNumberFromURL(r *http.Request) (string, error) {
	number := chi.URLParam(r, "number")
	if number == "" {
		return "", fmt.Errorf("%w: number not found in URL path", apperrors.ErrInvalidArgument)
	}
	return number, nil
}

// CreateBooking handles POST /booking
// @Summary Create a new booking
// @Description Books a room for the given date range. The customer is resolved by email and created if unseen. The response body is the bare booking number.
// @Tags Bookings
// @Accept json
// @Produce plain
// @Param request body dto.CreateBookingRequest true "Booking creation request"
// @Success 200 {string} string "Booking number"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, unknown room or booking conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /booking [post]
// @Security BearerAuth
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create booking request")

	var req dto.CreateBookingRequest
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

	startDate, _ := time.Parse(time.RFC3339[:10], req.StartDate)
	endDate, _ := time.Parse(time.RFC3339[:10], req.EndDate)

	number, err := h.service.CreateBooking(r.Context(), req.RoomName, startDate, endDate, req.Customer.Name, req.Customer.Email)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to create booking", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Booking created successfully", slog.String("number", number))
	respondText(w, http.StatusOK, number)
}

// GetBookings handles GET /booking
// @Summary Find bookings
// @Description Looks bookings up by exactly one of the two query parameters. A number lookup returns a single booking object, an email lookup returns an array.
// @Tags Bookings
// @Produce json
// @Param customerEmail query string false "Customer email"
// @Param number query string false "Booking number"
// @Success 200 {array} dto.BookingResponse "Matching bookings"
// @Failure 400 {object} dto.ErrorResponse "Missing or ambiguous selector, or nothing found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /booking [get]
// @Security BearerAuth
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	customerEmail := r.URL.Query().Get("customerEmail")
	number := r.URL.Query().Get("number")

	h.logger.DebugContext(r.Context(), "Received find bookings request",
		slog.String("customerEmail", customerEmail), slog.String("number", number))

	views, err := h.service.FindBookings(r.Context(), customerEmail, number)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, booking.ErrNoSuchBooking) && !errors.Is(err, customer.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidArgument) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to find bookings", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Bookings retrieved successfully", slog.Int("count", len(views)))

	// A number lookup returns the booking itself, not a one-element array.
	if number != "" && len(views) == 1 {
		respondJSON(w, http.StatusOK, dto.NewBookingResponse(views[0]))
		return
	}
	respondJSON(w, http.StatusOK, dto.NewBookingResponseList(views))
}

// DeleteBooking handles DELETE /booking/{number}
// @Summary Delete a booking
// @Description Deletes the booking with the given number.
// @Tags Bookings
// @Param number path string true "Booking number"
// @Success 200 "Booking deleted"
// @Failure 400 {object} dto.ErrorResponse "Booking not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /booking/{number} [delete]
// @Security BearerAuth
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	number, err := getBookingNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get booking number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received delete booking request", slog.String("number", number))

	if err := h.service.DeleteBooking(r.Context(), number); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, booking.ErrNoSuchBooking) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete booking", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Booking deleted successfully", slog.String("number", number))
	w.WriteHeader(http.StatusOK)
}
