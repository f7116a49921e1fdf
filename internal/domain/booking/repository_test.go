package booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (_m *MockBookingRepository) Save(ctx context.Context, booking *Booking) error {
	ret := _m.Called(ctx, booking)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Booking) error); ok {
		r0 = rf(ctx, booking)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockBookingRepository) FindByNumber(ctx context.Context, number string) (*Booking, error) {
	ret := _m.Called(ctx, number)

	var r0 *Booking
	if rf, ok := ret.Get(0).(func(context.Context, string) *Booking); ok {
		r0 = rf(ctx, number)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Booking)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, number)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockBookingRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*Booking, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Booking
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Booking); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Booking)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockBookingRepository) FindByRoomID(ctx context.Context, roomID int64) ([]*Booking, error) {
	ret := _m.Called(ctx, roomID)

	var r0 []*Booking
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Booking); ok {
		r0 = rf(ctx, roomID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Booking)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, roomID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockBookingRepository) FindDepartingOn(ctx context.Context, date time.Time) ([]*Booking, error) {
	ret := _m.Called(ctx, date)

	var r0 []*Booking
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) []*Booking); ok {
		r0 = rf(ctx, date)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Booking)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, time.Time) error); ok {
		r1 = rf(ctx, date)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockBookingRepository) DeleteByNumber(ctx context.Context, number string) error {
	ret := _m.Called(ctx, number)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, number)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

var _ BookingRepository = (*MockBookingRepository)(nil)
