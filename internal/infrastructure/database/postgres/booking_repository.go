package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type BookingRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ booking.BookingRepository = (*BookingRepository)(nil)

func NewBookingRepository(db DBPool, logger *slog.Logger) *BookingRepository {
	if db == nil {
		panic("DBPool cannot be nil for BookingRepository")
	}
	return &BookingRepository{db: db, logger: logger.With("component", "BookingRepository")}
}

const bookingColumns = `id, number, start_date, end_date, room_id, customer_id, created_at`

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	if b == nil {
		return fmt.Errorf("%w: booking cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new booking", slog.String("number", b.Number))

	query := `
        INSERT INTO bookings (number, start_date, end_date, room_id, customer_id, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		b.Number,
		b.StartDate,
		b.EndDate,
		b.RoomID,
		b.CustomerID,
	).Scan(
		&b.BookingID,
		&b.CreateDate,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert booking due to unique constraint violation", slog.String("number", b.Number))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert booking", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert booking: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Booking inserted successfully", slog.Int64("bookingID", b.BookingID))
	return nil
}

func (r *BookingRepository) FindByNumber(ctx context.Context, number string) (*booking.Booking, error) {
	r.logger.InfoContext(ctx, "Attempting to find booking by number", slog.String("number", number))

	query := `
        SELECT ` + bookingColumns + `
        FROM bookings
        WHERE number = $1`

	var b booking.Booking
	err := r.db.QueryRow(ctx, query, number).Scan(
		&b.BookingID,
		&b.Number,
		&b.StartDate,
		&b.EndDate,
		&b.RoomID,
		&b.CustomerID,
		&b.CreateDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Booking not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan booking by number", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get booking by number: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Booking found successfully")
	return &b, nil
}

func (r *BookingRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*booking.Booking, error) {
	r.logger.InfoContext(ctx, "Attempting to find bookings by customer", slog.Int64("customerID", customerID))

	query := `
        SELECT ` + bookingColumns + `
        FROM bookings
        WHERE customer_id = $1
        ORDER BY id ASC`

	return r.queryBookings(ctx, query, customerID)
}

func (r *BookingRepository) FindByRoomID(ctx context.Context, roomID int64) ([]*booking.Booking, error) {
	r.logger.InfoContext(ctx, "Attempting to find bookings by room", slog.Int64("roomID", roomID))

	query := `
        SELECT ` + bookingColumns + `
        FROM bookings
        WHERE room_id = $1
        ORDER BY id ASC`

	return r.queryBookings(ctx, query, roomID)
}

func (r *BookingRepository) FindDepartingOn(ctx context.Context, date time.Time) ([]*booking.Booking, error) {
	r.logger.InfoContext(ctx, "Attempting to find bookings departing on date", slog.Time("date", date))

	query := `
        SELECT ` + bookingColumns + `
        FROM bookings
        WHERE end_date = $1
        ORDER BY id ASC`

	return r.queryBookings(ctx, query, date)
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query bookings", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query bookings: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	bookings := make([]*booking.Booking, 0)
	for rows.Next() {
		var b booking.Booking
		err := rows.Scan(
			&b.BookingID,
			&b.Number,
			&b.StartDate,
			&b.EndDate,
			&b.RoomID,
			&b.CustomerID,
			&b.CreateDate,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan booking row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan booking row: %w", apperrors.ErrDatabase, err)
		}
		bookings = append(bookings, &b)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating booking rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating booking rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding bookings", slog.Int("count", len(bookings)))
	return bookings, nil
}

func (r *BookingRepository) DeleteByNumber(ctx context.Context, number string) error {
	r.logger.InfoContext(ctx, "Attempting to delete booking", slog.String("number", number))

	query := `DELETE FROM bookings WHERE number = $1`

	cmdTag, err := r.db.Exec(ctx, query, number)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete booking", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete booking: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, booking likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Booking deleted successfully")
	return nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
