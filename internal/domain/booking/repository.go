package booking

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoSuchBooking = errors.New("booking not found")

	ErrBookingConflict = errors.New("room is already booked for the requested start date")
)

type BookingRepository interface {
	Save(ctx context.Context, booking *Booking) error

	FindByNumber(ctx context.Context, number string) (*Booking, error)

	// FindByCustomerID returns the customer's bookings in storage order.
	FindByCustomerID(ctx context.Context, customerID int64) ([]*Booking, error)

	FindByRoomID(ctx context.Context, roomID int64) ([]*Booking, error)

	// FindDepartingOn returns all bookings whose end date equals the given day.
	FindDepartingOn(ctx context.Context, date time.Time) ([]*Booking, error)

	DeleteByNumber(ctx context.Context, number string) error
}
