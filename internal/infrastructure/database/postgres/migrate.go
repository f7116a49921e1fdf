package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"hotel-booking-service/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded goose migrations. goose drives a
// database/sql connection, so the pgx config is bridged through the stdlib
// adapter rather than the pool used by the repositories.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	connConfig, err := pgxConnConfig(cfg)
	if err != nil {
		return err
	}

	db := stdlib.OpenDB(*connConfig)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Applying database migrations...")
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("Database migrations applied.", "version", version)
	return nil
}

func pgxConnConfig(cfg config.DatabaseConfig) (*pgx.ConnConfig, error) {
	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}
	return poolConfig.ConnConfig, nil
}
