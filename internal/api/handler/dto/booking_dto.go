package dto

import (
	"fmt"
	"time"

	"hotel-booking-service/internal/domain/booking"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type BookingCustomer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type CreateBookingRequest struct {
	RoomName  string          `json:"roomName" validate:"required"`
	StartDate string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"endDate" validate:"required,datetime=2006-01-02"`
	Customer  BookingCustomer `json:"customer" validate:"required"`
}

func (r *CreateBookingRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid booking request: %w", err)
	}
	return nil
}

type BookingResponse struct {
	Number       string `json:"number"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	CustomerName string `json:"customerName"`
	RoomName     string `json:"roomName"`
}

func NewBookingResponse(v booking.View) BookingResponse {
	return BookingResponse{
		Number:       v.Number,
		StartDate:    v.StartDate.Format(time.RFC3339[:10]),
		EndDate:      v.EndDate.Format(time.RFC3339[:10]),
		CustomerName: v.CustomerName,
		RoomName:     v.RoomName,
	}
}

func NewBookingResponseList(views []booking.View) []BookingResponse {
	responses := make([]BookingResponse, len(views))
	for i, v := range views {
		responses[i] = NewBookingResponse(v)
	}
	return responses
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}
