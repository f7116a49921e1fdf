package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type RoomRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ room.RoomRepository = (*RoomRepository)(nil)

func NewRoomRepository(db DBPool, logger *slog.Logger) *RoomRepository {
	if db == nil {
		panic("DBPool cannot be nil for RoomRepository")
	}
	return &RoomRepository{db: db, logger: logger.With("component", "RoomRepository")}
}

func (r *RoomRepository) Save(ctx context.Context, rm *room.Room) error {
	if rm == nil {
		return fmt.Errorf("%w: room cannot be nil", apperrors.ErrInvalidArgument)
	}

	if rm.RoomID == 0 {
		return r.createRoom(ctx, rm)
	}
	return r.updateRoom(ctx, rm)
}

func (r *RoomRepository) createRoom(ctx context.Context, rm *room.Room) error {
	r.logger.InfoContext(ctx, "Attempting to insert new room", slog.String("name", rm.Name))

	query := `
        INSERT INTO rooms (name, level, nightly_rate, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		rm.Name,
		string(rm.Level),
		rm.NightlyRate,
	).Scan(
		&rm.RoomID,
		&rm.CreateDate,
		&rm.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert room due to unique constraint violation", slog.String("name", rm.Name))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert room", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert room: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Room inserted successfully", slog.Int64("roomID", rm.RoomID))
	return nil
}

func (r *RoomRepository) updateRoom(ctx context.Context, rm *room.Room) error {
	r.logger.InfoContext(ctx, "Attempting to update room", slog.Int64("roomID", rm.RoomID))

	query := `
        UPDATE rooms
        SET name = $1,
            level = $2,
            nightly_rate = $3,
            updated_at = NOW()
        WHERE id = $4`

	cmdTag, err := r.db.Exec(ctx, query,
		rm.Name,
		string(rm.Level),
		rm.NightlyRate,
		rm.RoomID,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to update room due to unique constraint violation", slog.String("name", rm.Name))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to update room", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update room: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, room likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Room updated successfully")
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, roomID int64) (*room.Room, error) {
	r.logger.InfoContext(ctx, "Attempting to find room by ID", slog.Int64("roomID", roomID))

	query := `
        SELECT id, name, level, nightly_rate, created_at, updated_at
        FROM rooms
        WHERE id = $1`

	return r.scanRoom(ctx, query, roomID)
}

func (r *RoomRepository) FindByName(ctx context.Context, name string) (*room.Room, error) {
	r.logger.InfoContext(ctx, "Attempting to find room by name", slog.String("name", name))

	query := `
        SELECT id, name, level, nightly_rate, created_at, updated_at
        FROM rooms
        WHERE name = $1`

	return r.scanRoom(ctx, query, name)
}

func (r *RoomRepository) scanRoom(ctx context.Context, query string, arg any) (*room.Room, error) {
	var rm room.Room
	var level string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&rm.RoomID,
		&rm.Name,
		&level,
		&rm.NightlyRate,
		&rm.CreateDate,
		&rm.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Room not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan room", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get room: %w", apperrors.ErrDatabase, err)
	}
	rm.Level = room.Level(level)

	r.logger.InfoContext(ctx, "Room found successfully", slog.Int64("roomID", rm.RoomID))
	return &rm, nil
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]*room.Room, error) {
	r.logger.InfoContext(ctx, "Attempting to find all rooms")

	query := `
        SELECT id, name, level, nightly_rate, created_at, updated_at
        FROM rooms
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query rooms", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query rooms: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	rooms := make([]*room.Room, 0)
	for rows.Next() {
		var rm room.Room
		var level string
		err := rows.Scan(
			&rm.RoomID,
			&rm.Name,
			&level,
			&rm.NightlyRate,
			&rm.CreateDate,
			&rm.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan room row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan room row: %w", apperrors.ErrDatabase, err)
		}
		rm.Level = room.Level(level)
		rooms = append(rooms, &rm)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating room rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating room rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding rooms", slog.Int("count", len(rooms)))
	return rooms, nil
}
