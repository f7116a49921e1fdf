package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"hotel-booking-service/internal/domain/customer"
	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/event"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/google/uuid"
)

// BookingService is the single authority for the booking lifecycle: it owns
// the conflict rule and mediates all storage access for bookings, customers
// and rooms.
type BookingService interface {
	// CreateBooking resolves the room by name, resolves or creates the
	// customer by email, runs the conflict check and persists the booking.
	// It returns the generated booking number.
	CreateBooking(ctx context.Context, roomName string, startDate, endDate time.Time, customerName, customerEmail string) (string, error)

	// FindBookings expects exactly one of customerEmail or number to be set.
	FindBookings(ctx context.Context, customerEmail, number string) ([]View, error)

	DeleteBooking(ctx context.Context, number string) error
}

var _ BookingService = (*bookingService)(nil)

type bookingService struct {
	bookings  BookingRepository
	customers customer.CustomerRepository
	rooms     room.RoomRepository
	pub       event.Publisher
	logger    *slog.Logger
}

func NewBookingService(
	bookings BookingRepository,
	customers customer.CustomerRepository,
	rooms room.RoomRepository,
	pub event.Publisher,
	logger *slog.Logger,
) BookingService {
	if bookings == nil || customers == nil || rooms == nil {
		panic("booking service repositories cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewBookingService, using default stderr handler")
	}
	if pub == nil {
		logger.Warn("Warning: No event publisher provided to NewBookingService, events will be dropped")
		pub = event.NopPublisher{}
	}
	return &bookingService{
		bookings:  bookings,
		customers: customers,
		rooms:     rooms,
		pub:       pub,
		logger:    logger.With(slog.String("component", "bookingService")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, roomName string, startDate, endDate time.Time, customerName, customerEmail string) (string, error) {
	logCtx := s.logger.With(slog.String("roomName", roomName), slog.String("customerEmail", customerEmail))
	logCtx.InfoContext(ctx, "Attempting to create booking")

	bookedRoom, err := s.rooms.FindByName(ctx, roomName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Room not found by repository")
			return "", fmt.Errorf("%w: %s", room.ErrNoSuchRoom, roomName)
		}
		logCtx.ErrorContext(ctx, "Repository error finding room", slog.Any("error", err))
		return "", fmt.Errorf("failed to resolve room %q: %w", roomName, err)
	}
	logCtx = logCtx.With(slog.Int64("roomID", bookedRoom.RoomID))

	// The customer is resolved and, if unseen, persisted BEFORE the conflict
	// check. A conflicting booking still leaves the new customer row behind,
	// and a retry reuses it.
	guest, err := s.resolveCustomer(ctx, customerName, customerEmail)
	if err != nil {
		return "", err
	}
	logCtx = logCtx.With(slog.Int64("customerID", guest.CustomerID))

	existing, err := s.bookings.FindByRoomID(ctx, bookedRoom.RoomID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing room bookings for conflict check", slog.Any("error", err))
		return "", fmt.Errorf("failed to check bookings for room %q: %w", roomName, err)
	}

	// Deliberately asymmetric: only the new start date is tested against
	// existing [start, end) intervals. The new end date may still overlap an
	// existing stay.
	for _, b := range existing {
		if b.Covers(startDate) {
			logCtx.WarnContext(ctx, "Booking conflict detected",
				slog.String("conflictingNumber", b.Number),
				slog.Time("requestedStart", startDate))
			return "", fmt.Errorf("%w: room %s on %s", ErrBookingConflict, roomName, startDate.Format("2006-01-02"))
		}
	}

	newBooking := NewBooking(uuid.NewString(), startDate, endDate, bookedRoom.RoomID, guest.CustomerID)

	logCtx.InfoContext(ctx, "Calling repository Save", slog.String("number", newBooking.Number))
	if err := s.bookings.Save(ctx, newBooking); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save booking", slog.Any("error", err))
		return "", fmt.Errorf("failed to save booking: %w", err)
	}

	createdEvent := event.BookingCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.BookingEventPayload{
			Number:        newBooking.Number,
			StartDate:     newBooking.StartDate,
			EndDate:       newBooking.EndDate,
			RoomName:      bookedRoom.Name,
			CustomerName:  guest.Name,
			CustomerEmail: guest.Email,
		},
	}
	if pubErr := s.pub.PublishBookingCreated(ctx, createdEvent); pubErr != nil {
		logCtx.ErrorContext(ctx, "Booking created, but failed to publish creation event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully created booking", slog.String("number", newBooking.Number))
	return newBooking.Number, nil
}

// resolveCustomer looks the customer up by email and creates one on demand.
// An existing customer is reused as-is even when the supplied name differs.
func (s *bookingService) resolveCustomer(ctx context.Context, name, email string) (*customer.Customer, error) {
	guest, err := s.customers.FindByEmail(ctx, email)
	if err == nil {
		s.logger.InfoContext(ctx, "Reusing existing customer", slog.Int64("customerID", guest.CustomerID))
		return guest, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Repository error finding customer by email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve customer %q: %w", email, err)
	}

	guest = customer.NewCustomer(name, email)
	s.logger.InfoContext(ctx, "Customer unseen, creating", slog.String("email", email))
	if err := s.customers.Save(ctx, guest); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}
	return guest, nil
}

func (s *bookingService) FindBookings(ctx context.Context, customerEmail, number string) ([]View, error) {
	customerEmail = strings.TrimSpace(customerEmail)
	number = strings.TrimSpace(number)

	switch {
	case customerEmail == "" && number == "":
		return nil, fmt.Errorf("%w: either customerEmail or number must be provided", apperrors.ErrInvalidArgument)
	case customerEmail != "" && number != "":
		return nil, fmt.Errorf("%w: customerEmail and number are mutually exclusive", apperrors.ErrInvalidArgument)
	case number != "":
		return s.findByNumber(ctx, number)
	default:
		return s.findByCustomerEmail(ctx, customerEmail)
	}
}

func (s *bookingService) findByNumber(ctx context.Context, number string) ([]View, error) {
	logCtx := s.logger.With(slog.String("number", number))
	logCtx.InfoContext(ctx, "Attempting to find booking by number")

	b, err := s.bookings.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Booking not found by repository")
			return nil, fmt.Errorf("%w: %s", ErrNoSuchBooking, number)
		}
		logCtx.ErrorContext(ctx, "Repository error finding booking", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get booking %q: %w", number, err)
	}

	view, err := s.project(ctx, b, nil)
	if err != nil {
		return nil, err
	}

	logCtx.InfoContext(ctx, "Successfully retrieved booking")
	return []View{view}, nil
}

func (s *bookingService) findByCustomerEmail(ctx context.Context, email string) ([]View, error) {
	logCtx := s.logger.With(slog.String("customerEmail", email))
	logCtx.InfoContext(ctx, "Attempting to find bookings by customer email")

	guest, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository")
			return nil, fmt.Errorf("%w: %s", customer.ErrNotFound, email)
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve customer %q: %w", email, err)
	}

	list, err := s.bookings.FindByCustomerID(ctx, guest.CustomerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing customer bookings", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list bookings for customer %d: %w", guest.CustomerID, err)
	}
	if len(list) == 0 {
		logCtx.WarnContext(ctx, "Customer has no bookings")
		return nil, fmt.Errorf("%w: no bookings for %s", ErrNoSuchBooking, email)
	}

	roomNames := make(map[int64]string)
	views := make([]View, 0, len(list))
	for _, b := range list {
		view, err := s.project(ctx, b, roomNames)
		if err != nil {
			return nil, err
		}
		view.CustomerName = guest.Name
		views = append(views, view)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved bookings", slog.Int("count", len(views)))
	return views, nil
}

// project flattens a booking into its view. roomNames, when non-nil, caches
// room lookups across one request. The customer name is resolved only when
// the caller has not already done so.
func (s *bookingService) project(ctx context.Context, b *Booking, roomNames map[int64]string) (View, error) {
	view := View{
		Number:    b.Number,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
	}

	name, cached := "", false
	if roomNames != nil {
		name, cached = roomNames[b.RoomID]
	}
	if !cached {
		bookedRoom, err := s.rooms.FindByID(ctx, b.RoomID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Repository error resolving booked room", slog.Int64("roomID", b.RoomID), slog.Any("error", err))
			return View{}, fmt.Errorf("failed to resolve room %d: %w", b.RoomID, err)
		}
		name = bookedRoom.Name
		if roomNames != nil {
			roomNames[b.RoomID] = name
		}
	}
	view.RoomName = name

	if roomNames == nil {
		guest, err := s.customers.FindByID(ctx, b.CustomerID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Repository error resolving booking customer", slog.Int64("customerID", b.CustomerID), slog.Any("error", err))
			return View{}, fmt.Errorf("failed to resolve customer %d: %w", b.CustomerID, err)
		}
		view.CustomerName = guest.Name
	}

	return view, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, number string) error {
	logCtx := s.logger.With(slog.String("number", number))
	logCtx.InfoContext(ctx, "Attempting to delete booking")

	b, err := s.bookings.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Booking not found by repository")
			return fmt.Errorf("%w: %s", ErrNoSuchBooking, number)
		}
		logCtx.ErrorContext(ctx, "Repository error finding booking for delete", slog.Any("error", err))
		return fmt.Errorf("failed to get booking %q: %w", number, err)
	}

	if err := s.bookings.DeleteByNumber(ctx, number); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Booking disappeared before delete completed")
			return fmt.Errorf("%w: %s", ErrNoSuchBooking, number)
		}
		logCtx.ErrorContext(ctx, "Repository failed to delete booking", slog.Any("error", err))
		return fmt.Errorf("failed to delete booking %q: %w", number, err)
	}

	deletedEvent := event.BookingDeletedEvent{
		Timestamp: time.Now(),
		Payload: event.BookingEventPayload{
			Number:    b.Number,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
		},
	}
	if pubErr := s.pub.PublishBookingDeleted(ctx, deletedEvent); pubErr != nil {
		logCtx.ErrorContext(ctx, "Booking deleted, but failed to publish deletion event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully deleted booking")
	return nil
}
