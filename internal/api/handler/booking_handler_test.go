package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-booking-service/internal/api/handler/dto"
	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/domain/customer"
	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, roomName string, startDate, endDate time.Time, customerName, customerEmail string) (string, error) {
	args := m.Called(ctx, roomName, startDate, endDate, customerName, customerEmail)
	return args.String(0), args.Error(1)
}

func (m *MockBookingService) FindBookings(ctx context.Context, customerEmail, number string) ([]booking.View, error) {
	args := m.Called(ctx, customerEmail, number)
	if views, ok := args.Get(0).([]booking.View); ok {
		return views, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) DeleteBooking(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func newBookingHandler(t *testing.T) (*BookingHandler, *MockBookingService) {
	t.Helper()
	mockService := new(MockBookingService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewBookingHandler(mockService, logger), mockService
}

func createBookingBody() string {
	return `{"roomName":"747","startDate":"2022-12-01","endDate":"2022-12-05","customer":{"name":"Piet Pompies","email":"piet@gmail.com"}}`
}

func TestBookingHandlerCreateBooking(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2022, 12, d, 0, 0, 0, 0, time.UTC) }

	t.Run("successfully creates booking and returns bare number", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("CreateBooking", mock.Anything, "747", day(1), day(5), "Piet Pompies", "piet@gmail.com").
			Return("abc1", nil)

		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		rec := httptest.NewRecorder()

		handler.CreateBooking(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc1", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler, _ := newBookingHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(`{"roomName":`))
		rec := httptest.NewRecorder()

		handler.CreateBooking(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 400 for malformed date", func(t *testing.T) {
		handler, _ := newBookingHandler(t)

		body := `{"roomName":"747","startDate":"01/12/2022","endDate":"2022-12-05","customer":{"name":"Piet","email":"piet@gmail.com"}}`
		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateBooking(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 400 when room does not exist", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("CreateBooking", mock.Anything, "747", day(1), day(5), "Piet Pompies", "piet@gmail.com").
			Return("", fmt.Errorf("%w: 747", room.ErrNoSuchRoom))

		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		rec := httptest.NewRecorder()

		handler.CreateBooking(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Error.Message, "room not found")
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 on booking conflict", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("CreateBooking", mock.Anything, "747", day(1), day(5), "Piet Pompies", "piet@gmail.com").
			Return("", fmt.Errorf("%w: room 747 on 2022-12-01", booking.ErrBookingConflict))

		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		rec := httptest.NewRecorder()

		handler.CreateBooking(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 500 on unexpected service error", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("CreateBooking", mock.Anything, "747", day(1), day(5), "Piet Pompies", "piet@gmail.com").
			Return("", fmt.Errorf("%w: connection refused", apperrors.ErrDatabase))

		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		rec := httptest.NewRecorder()

		handler.CreateBooking(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestBookingHandlerGetBookings(t *testing.T) {
	view := booking.View{
		Number:       "abc1",
		StartDate:    time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2022, 12, 5, 0, 0, 0, 0, time.UTC),
		CustomerName: "Piet Pompies",
		RoomName:     "747",
	}

	t.Run("lookup by number returns a single object", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("FindBookings", mock.Anything, "", "abc1").Return([]booking.View{view}, nil)

		req := httptest.NewRequest(http.MethodGet, "/booking?number=abc1", nil)
		rec := httptest.NewRecorder()

		handler.GetBookings(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.BookingResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "abc1", resp.Number)
		assert.Equal(t, "2022-12-01", resp.StartDate)
		assert.Equal(t, "2022-12-05", resp.EndDate)
		mockService.AssertExpectations(t)
	})

	t.Run("lookup by customer email returns an array", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		second := view
		second.Number = "abc2"
		mockService.On("FindBookings", mock.Anything, "piet@gmail.com", "").
			Return([]booking.View{view, second}, nil)

		req := httptest.NewRequest(http.MethodGet, "/booking?customerEmail=piet@gmail.com", nil)
		rec := httptest.NewRecorder()

		handler.GetBookings(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.BookingResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "abc1", resp[0].Number)
		assert.Equal(t, "abc2", resp[1].Number)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 when no selector is given", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("FindBookings", mock.Anything, "", "").
			Return(nil, fmt.Errorf("%w: either customerEmail or number must be provided", apperrors.ErrInvalidArgument))

		req := httptest.NewRequest(http.MethodGet, "/booking", nil)
		rec := httptest.NewRecorder()

		handler.GetBookings(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 when booking number unknown", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("FindBookings", mock.Anything, "", "nope").
			Return(nil, fmt.Errorf("%w: nope", booking.ErrNoSuchBooking))

		req := httptest.NewRequest(http.MethodGet, "/booking?number=nope", nil)
		rec := httptest.NewRecorder()

		handler.GetBookings(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 when customer unknown", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("FindBookings", mock.Anything, "nobody@gmail.com", "").
			Return(nil, fmt.Errorf("%w: nobody@gmail.com", customer.ErrNotFound))

		req := httptest.NewRequest(http.MethodGet, "/booking?customerEmail=nobody@gmail.com", nil)
		rec := httptest.NewRecorder()

		handler.GetBookings(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestBookingHandlerDeleteBooking(t *testing.T) {
	withNumber := func(req *http.Request, number string) *http.Request {
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, &chi.Context{
			URLParams: chi.RouteParams{Keys: []string{"number"}, Values: []string{number}},
		}))
	}

	t.Run("successfully deletes booking", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("DeleteBooking", mock.Anything, "abc1").Return(nil)

		req := withNumber(httptest.NewRequest(http.MethodDelete, "/booking/abc1", nil), "abc1")
		rec := httptest.NewRecorder()

		handler.DeleteBooking(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 when booking not found", func(t *testing.T) {
		handler, mockService := newBookingHandler(t)
		mockService.On("DeleteBooking", mock.Anything, "nope").
			Return(fmt.Errorf("%w: nope", booking.ErrNoSuchBooking))

		req := withNumber(httptest.NewRequest(http.MethodDelete, "/booking/nope", nil), "nope")
		rec := httptest.NewRecorder()

		handler.DeleteBooking(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})
}
