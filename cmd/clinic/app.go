package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/allan6757/Hospitali/internal/booking"
	"github.com/allan6757/Hospitali/internal/config"
	"github.com/allan6757/Hospitali/internal/db"
	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/messaging"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/report"
	"github.com/allan6757/Hospitali/internal/telemetry"
)

// app holds everything a command needs once startup has succeeded.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	db     *sql.DB

	telemetry *telemetry.Provider
	metrics   *telemetry.Metrics
	publisher messaging.PublisherInterface

	patientRepo *patient.Repository
	doctorRepo  *doctor.Repository

	patients *patient.Service
	doctors  *doctor.Service
	reports  *report.Service
	workflow *booking.Workflow
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

// loadConfig reads configuration and builds the logger.
func loadConfig(logOut io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, newLogger(cfg, logOut), nil
}

// connect opens the store and provisions the clinic schema. Either failure
// is fatal for every command.
func connect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	conn, err := db.Connect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Provision(ctx, conn, cfg.DBSchema); err != nil {
		conn.Close()
		return nil, err
	}
	logger.Info().Str("schema", cfg.DBSchema).Msg("database schema provisioned")
	return conn, nil
}

// bootstrap runs the full startup sequence shared by menu, serve and seed.
func bootstrap(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, logger, err := loadConfig(logOut)
	if err != nil {
		return nil, err
	}

	provider, err := telemetry.InitProvider(ctx, telemetry.FromConfig(cfg), logger)
	if err != nil {
		return nil, err
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize metrics")
	}

	conn, err := connect(ctx, cfg, logger)
	if err != nil {
		provider.Shutdown(ctx)
		return nil, err
	}

	// Events are optional; without a broker the clinic works the same.
	var publisher messaging.PublisherInterface
	if cfg.RabbitMQURL != "" {
		p, err := messaging.NewPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("continuing without event publishing")
		} else {
			publisher = p
		}
	}

	a := &app{
		cfg:         cfg,
		logger:      logger,
		db:          conn,
		telemetry:   provider,
		metrics:     metrics,
		publisher:   publisher,
		patientRepo: patient.NewRepository(conn, cfg.DBSchema),
		doctorRepo:  doctor.NewRepository(conn, cfg.DBSchema),
	}

	a.patients = patient.NewService(a.patientRepo, publisher, metrics, logger)
	a.doctors = doctor.NewService(a.doctorRepo, publisher, metrics, logger)
	a.reports = report.NewService(report.NewRepository(conn, cfg.DBSchema), a.patientRepo, publisher, metrics, logger)
	a.workflow = booking.NewWorkflow(a.patientRepo, a.doctorRepo, publisher, metrics, logger)
	return a, nil
}

func (a *app) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close publisher")
		}
	}

	if err := a.db.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("failed to shut down telemetry")
	}
}
