package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/event"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// DeparturesReportJob publishes a checkout event for every booking whose end
// date is today and logs the revenue each departing stay earned.
type DeparturesReportJob struct {
	bookingRepo booking.BookingRepository
	roomRepo    room.RoomRepository
	pub         event.Publisher
	logger      *slog.Logger
}

func NewDeparturesReportJob(
	bookingRepo booking.BookingRepository,
	roomRepo room.RoomRepository,
	pub event.Publisher,
	logger *slog.Logger,
) *DeparturesReportJob {
	if bookingRepo == nil || roomRepo == nil || logger == nil {
		panic("DeparturesReportJob dependencies cannot be nil")
	}
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &DeparturesReportJob{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		pub:         pub,
		logger:      logger.With("job", "DeparturesReport"),
	}
}

func (j *DeparturesReportJob) Run(ctx context.Context) error {
	startTime := time.Now()
	today := startTime.UTC().Truncate(24 * time.Hour)
	j.logger.InfoContext(ctx, "Starting daily departures report job.", slog.Time("date", today))

	departing, err := j.bookingRepo.FindDepartingOn(ctx, today)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list departing bookings, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list departures: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched departing bookings.", slog.Int("count", len(departing)))

	if len(departing) == 0 {
		j.logger.InfoContext(ctx, "No departures today.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var processedCount, errorCount int
	totalRevenue := decimal.Zero
	roomCache := make(map[int64]*room.Room)

	for _, b := range departing {
		logCtx := j.logger.With(slog.String("number", b.Number))

		departedRoom, ok := roomCache[b.RoomID]
		if !ok {
			departedRoom, err = j.roomRepo.FindByID(ctx, b.RoomID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					logCtx.WarnContext(ctx, "Booked room no longer exists, skipping booking.", slog.Int64("roomID", b.RoomID))
				} else {
					logCtx.ErrorContext(ctx, "Failed to resolve booked room", slog.Any("error", err))
					errorCount++
				}
				continue
			}
			roomCache[b.RoomID] = departedRoom
		}

		nights := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
		if nights < 0 {
			nights = 0
		}
		revenue := departedRoom.NightlyRate.Mul(decimal.NewFromInt(int64(nights)))
		totalRevenue = totalRevenue.Add(revenue)

		checkoutEvent := event.CheckoutDueEvent{
			Timestamp: time.Now(),
			Nights:    int64(nights),
			Revenue:   revenue.StringFixed(2),
			Payload: event.BookingEventPayload{
				Number:    b.Number,
				StartDate: b.StartDate,
				EndDate:   b.EndDate,
				RoomName:  departedRoom.Name,
			},
		}
		if pubErr := j.pub.PublishCheckoutDue(ctx, checkoutEvent); pubErr != nil {
			logCtx.ErrorContext(ctx, "Failed to publish checkout event", slog.Any("error", pubErr))
			errorCount++
			continue
		}

		logCtx.InfoContext(ctx, "Departure processed.",
			slog.String("room", departedRoom.Name),
			slog.Int("nights", nights),
			slog.String("revenue", revenue.StringFixed(2)))
		processedCount++
	}

	duration := time.Since(startTime)
	summaryLog := j.logger.With(
		slog.Duration("duration", duration),
		slog.Int("departures", len(departing)),
		slog.Int("processed", processedCount),
		slog.String("total_revenue", totalRevenue.StringFixed(2)),
		slog.Int("errors_encountered", errorCount),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Departures report job finished with errors.")
		return fmt.Errorf("job completed with %d errors", errorCount)
	}
	summaryLog.InfoContext(ctx, "Departures report job finished successfully.")
	return nil
}
