package room

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct {
	mock.Mock
}

func (_m *MockRoomRepository) Save(ctx context.Context, room *Room) error {
	ret := _m.Called(ctx, room)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Room) error); ok {
		r0 = rf(ctx, room)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRoomRepository) FindByID(ctx context.Context, roomID int64) (*Room, error) {
	ret := _m.Called(ctx, roomID)

	var r0 *Room
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Room); ok {
		r0 = rf(ctx, roomID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Room)
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

func (_m *MockRoomRepository) FindByName(ctx context.Context, name string) (*Room, error) {
	ret := _m.Called(ctx, name)

	var r0 *Room
	if rf, ok := ret.Get(0).(func(context.Context, string) *Room); ok {
		r0 = rf(ctx, name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Room)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, name)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRoomRepository) FindAll(ctx context.Context) ([]*Room, error) {
	ret := _m.Called(ctx)

	var r0 []*Room
	if rf, ok := ret.Get(0).(func(context.Context) []*Room); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Room)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

var _ RoomRepository = (*MockRoomRepository)(nil)
