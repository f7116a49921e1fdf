package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hotel-booking-service/internal/domain/customer"
	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCustomerRepository struct {
	mock.Mock
}

func (_m *mockCustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	ret := _m.Called(ctx, cust)
	return ret.Error(0)
}

func (_m *mockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *mockCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

var _ customer.CustomerRepository = (*mockCustomerRepository)(nil)

type mockRoomRepository struct {
	mock.Mock
}

func (_m *mockRoomRepository) Save(ctx context.Context, r *room.Room) error {
	ret := _m.Called(ctx, r)
	return ret.Error(0)
}

func (_m *mockRoomRepository) FindByID(ctx context.Context, roomID int64) (*room.Room, error) {
	ret := _m.Called(ctx, roomID)

	var r0 *room.Room
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*room.Room)
	}
	return r0, ret.Error(1)
}

func (_m *mockRoomRepository) FindByName(ctx context.Context, name string) (*room.Room, error) {
	ret := _m.Called(ctx, name)

	var r0 *room.Room
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*room.Room)
	}
	return r0, ret.Error(1)
}

func (_m *mockRoomRepository) FindAll(ctx context.Context) ([]*room.Room, error) {
	ret := _m.Called(ctx)

	var r0 []*room.Room
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*room.Room)
	}
	return r0, ret.Error(1)
}

var _ room.RoomRepository = (*mockRoomRepository)(nil)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupBookingTest() (*MockBookingRepository, *mockCustomerRepository, *mockRoomRepository, BookingService) {
	bookingRepo := new(MockBookingRepository)
	customerRepo := new(mockCustomerRepository)
	roomRepo := new(mockRoomRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewBookingService(bookingRepo, customerRepo, roomRepo, nil, logger)
	return bookingRepo, customerRepo, roomRepo, service
}

var (
	testRoom  = &room.Room{RoomID: 10, Name: "222", Level: room.LevelEconom}
	testGuest = &customer.Customer{CustomerID: 20, Name: "Bobby", Email: "bob@ya.ru"}
)

func existingStay() *Booking {
	return &Booking{
		BookingID:  1,
		Number:     "abc1",
		StartDate:  day(2022, 12, 1),
		EndDate:    day(2022, 12, 5),
		RoomID:     10,
		CustomerID: 20,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success with existing customer", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "bob@ya.ru").Return(testGuest, nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{existingStay()}, nil).Once()
		bookingRepo.On("Save", ctx, mock.MatchedBy(func(b *Booking) bool {
			return b.Number != "" &&
				b.RoomID == 10 &&
				b.CustomerID == 20 &&
				b.StartDate.Equal(day(2022, 12, 10)) &&
				b.EndDate.Equal(day(2022, 12, 15))
		})).Return(nil).Once()

		number, err := service.CreateBooking(ctx, "222", day(2022, 12, 10), day(2022, 12, 15), "Bobby", "bob@ya.ru")

		assert.NoError(t, err)
		assert.NotEmpty(t, number)
		customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("Success creates unseen customer exactly once", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "sam@ya.ru").Return(nil, apperrors.ErrNotFound).Once()
		customerRepo.On("Save", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			match := c.Name == "Sam" && c.Email == "sam@ya.ru"
			if match {
				c.CustomerID = 21
			}
			return match
		})).Return(nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{}, nil).Once()
		bookingRepo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

		number, err := service.CreateBooking(ctx, "222", day(2022, 12, 10), day(2022, 12, 15), "Sam", "sam@ya.ru")

		assert.NoError(t, err)
		assert.NotEmpty(t, number)
		customerRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("Conflict when start date equals existing start", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "jackb@ya.ru").Return(nil, apperrors.ErrNotFound).Once()
		customerRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{existingStay()}, nil).Once()

		_, err := service.CreateBooking(ctx, "222", day(2022, 12, 1), day(2022, 12, 5), "Jack", "jackb@ya.ru")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrBookingConflict))
		bookingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Conflict when start date falls inside existing stay", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "bob@ya.ru").Return(testGuest, nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{existingStay()}, nil).Once()

		_, err := service.CreateBooking(ctx, "222", day(2022, 12, 3), day(2022, 12, 20), "Bobby", "bob@ya.ru")

		assert.True(t, errors.Is(err, ErrBookingConflict))
	})

	t.Run("No conflict when start date equals existing departure day", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "bob@ya.ru").Return(testGuest, nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{existingStay()}, nil).Once()
		bookingRepo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

		_, err := service.CreateBooking(ctx, "222", day(2022, 12, 5), day(2022, 12, 7), "Bobby", "bob@ya.ru")

		assert.NoError(t, err)
	})

	t.Run("Asymmetric rule: overlapping end date is not rejected", func(t *testing.T) {
		// Only the new start date is tested against existing stays. A request
		// arriving before the stay but departing inside it slips through.
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "bob@ya.ru").Return(testGuest, nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{existingStay()}, nil).Once()
		bookingRepo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

		_, err := service.CreateBooking(ctx, "222", day(2022, 11, 28), day(2022, 12, 3), "Bobby", "bob@ya.ru")

		assert.NoError(t, err)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("Customer row persists even when the conflict check fails", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "jack@ya.ru").Return(nil, apperrors.ErrNotFound).Once()
		customerRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{existingStay()}, nil).Once()

		_, err := service.CreateBooking(ctx, "222", day(2022, 12, 2), day(2022, 12, 4), "Jack", "jack@ya.ru")

		assert.True(t, errors.Is(err, ErrBookingConflict))
		customerRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("Error - Room not found", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "111").Return(nil, apperrors.ErrNotFound).Once()

		_, err := service.CreateBooking(ctx, "111", day(2022, 12, 1), day(2022, 12, 2), "Petr", "222@gmail.com")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, room.ErrNoSuchRoom))
		customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		bookingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error - Repository Save Failure", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		roomRepo.On("FindByName", ctx, "222").Return(testRoom, nil).Once()
		customerRepo.On("FindByEmail", ctx, "bob@ya.ru").Return(testGuest, nil).Once()
		bookingRepo.On("FindByRoomID", ctx, int64(10)).Return([]*Booking{}, nil).Once()
		bookingRepo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).
			Return(errors.New("database connection failed")).Once()

		_, err := service.CreateBooking(ctx, "222", day(2022, 12, 10), day(2022, 12, 15), "Bobby", "bob@ya.ru")

		assert.Error(t, err)
	})
}

func TestBookingService_FindBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("By number returns a single view", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		bookingRepo.On("FindByNumber", ctx, "abc1").Return(existingStay(), nil).Once()
		roomRepo.On("FindByID", ctx, int64(10)).Return(testRoom, nil).Once()
		customerRepo.On("FindByID", ctx, int64(20)).Return(testGuest, nil).Once()

		views, err := service.FindBookings(ctx, "", "abc1")

		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, "abc1", views[0].Number)
		assert.Equal(t, "Bobby", views[0].CustomerName)
		assert.Equal(t, "222", views[0].RoomName)
		assert.True(t, views[0].StartDate.Equal(day(2022, 12, 1)))
		assert.True(t, views[0].EndDate.Equal(day(2022, 12, 5)))
	})

	t.Run("By number fails when unknown", func(t *testing.T) {
		bookingRepo, _, _, service := setupBookingTest()

		bookingRepo.On("FindByNumber", ctx, "failNumber").Return(nil, apperrors.ErrNotFound).Once()

		_, err := service.FindBookings(ctx, "", "failNumber")

		assert.True(t, errors.Is(err, ErrNoSuchBooking))
	})

	t.Run("By email returns all bookings in storage order", func(t *testing.T) {
		bookingRepo, customerRepo, roomRepo, service := setupBookingTest()

		second := &Booking{
			BookingID: 2, Number: "abc2",
			StartDate: day(2022, 12, 10), EndDate: day(2022, 12, 12),
			RoomID: 10, CustomerID: 20,
		}
		customerRepo.On("FindByEmail", ctx, "bob@ya.ru").Return(testGuest, nil).Once()
		bookingRepo.On("FindByCustomerID", ctx, int64(20)).Return([]*Booking{existingStay(), second}, nil).Once()
		roomRepo.On("FindByID", ctx, int64(10)).Return(testRoom, nil).Once()

		views, err := service.FindBookings(ctx, "bob@ya.ru", "")

		assert.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, "abc1", views[0].Number)
		assert.Equal(t, "abc2", views[1].Number)
		assert.Equal(t, "222", views[1].RoomName)
		roomRepo.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("By email fails when customer unknown", func(t *testing.T) {
		_, customerRepo, _, service := setupBookingTest()

		customerRepo.On("FindByEmail", ctx, "failtest@ya.ru").Return(nil, apperrors.ErrNotFound).Once()

		_, err := service.FindBookings(ctx, "failtest@ya.ru", "")

		assert.True(t, errors.Is(err, customer.ErrNotFound))
	})

	t.Run("By email fails when customer has no bookings", func(t *testing.T) {
		bookingRepo, customerRepo, _, service := setupBookingTest()

		customerRepo.On("FindByEmail", ctx, "bob@ya.ru").Return(testGuest, nil).Once()
		bookingRepo.On("FindByCustomerID", ctx, int64(20)).Return([]*Booking{}, nil).Once()

		_, err := service.FindBookings(ctx, "bob@ya.ru", "")

		assert.True(t, errors.Is(err, ErrNoSuchBooking))
	})

	t.Run("Error - neither selector supplied", func(t *testing.T) {
		_, _, _, service := setupBookingTest()

		_, err := service.FindBookings(ctx, "", "")

		assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
	})

	t.Run("Error - both selectors supplied", func(t *testing.T) {
		_, _, _, service := setupBookingTest()

		_, err := service.FindBookings(ctx, "bob@ya.ru", "abc1")

		assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
	})
}

func TestBookingService_DeleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		bookingRepo, _, _, service := setupBookingTest()

		bookingRepo.On("FindByNumber", ctx, "acc123").Return(existingStay(), nil).Once()
		bookingRepo.On("DeleteByNumber", ctx, "acc123").Return(nil).Once()

		err := service.DeleteBooking(ctx, "acc123")

		assert.NoError(t, err)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		bookingRepo, _, _, service := setupBookingTest()

		bookingRepo.On("FindByNumber", ctx, "aaaaa").Return(nil, apperrors.ErrNotFound).Once()

		err := service.DeleteBooking(ctx, "aaaaa")

		assert.True(t, errors.Is(err, ErrNoSuchBooking))
		bookingRepo.AssertNotCalled(t, "DeleteByNumber", mock.Anything, mock.Anything)
	})
}
