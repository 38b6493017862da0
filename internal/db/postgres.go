package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/config"
)

// Connect opens the clinic store with OpenTelemetry instrumentation and
// verifies it is reachable. The handle is owned by the caller for the
// lifetime of the process.
func Connect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	attrs := otelsql.WithAttributes(
		semconv.DBSystemPostgreSQL,
		semconv.DBName(cfg.DBName),
	)

	db, err := otelsql.Open("postgres", cfg.DSN(), attrs)
	if err != nil {
		return nil, apperr.Unavailable("open database", err)
	}

	if err := otelsql.RegisterDBStatsMetrics(db, attrs); err != nil {
		logger.Warn().Err(err).Msg("failed to register database stats metrics")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperr.Unavailable("ping database", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	logger.Info().
		Str("host", cfg.DBHost).
		Str("database", cfg.DBName).
		Str("schema", cfg.DBSchema).
		Msg("connected to PostgreSQL")
	return db, nil
}

// WithTx runs fn inside a transaction. fn's error rolls everything back.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Classify("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return Classify("commit transaction", err)
	}
	return nil
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
