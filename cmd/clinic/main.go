package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/allan6757/Hospitali/internal/booking"
	"github.com/allan6757/Hospitali/internal/doctor"
	apphttp "github.com/allan6757/Hospitali/internal/http"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/report"
	"github.com/allan6757/Hospitali/internal/seed"
	"github.com/allan6757/Hospitali/internal/shell"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinic",
		Short:         "Clinic records and appointment booking",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context())
		},
	}

	rootCmd.AddCommand(menuCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(provisionCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive text menu (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context())
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample patients, doctors and reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			return runSeed(cmd.Context(), file)
		},
	}
	cmd.Flags().String("file", "", "YAML fixture to load (defaults to SEED_FILE, then the built-in sample data)")
	return cmd
}

func provisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the clinic schema and tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(os.Stdout)
			if err != nil {
				return err
			}

			conn, err := connect(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Println("Database tables created successfully.")
			return nil
		},
	}
}

func runMenu(ctx context.Context) error {
	// stdout belongs to the menu
	a, err := bootstrap(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	sh := shell.New(os.Stdin, os.Stdout, a.patients, a.doctors, a.reports, a.workflow, a.logger)
	return sh.Run(ctx)
}

func runSeed(ctx context.Context, file string) error {
	a, err := bootstrap(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	if file == "" {
		file = a.cfg.SeedFile
	}
	fixture, err := seed.Load(file)
	if err != nil {
		return err
	}

	summary, err := seed.NewSeeder(a.patients, a.doctors, a.reports, a.logger).Run(ctx, fixture)
	if err != nil {
		return err
	}

	fmt.Printf("Database seeded successfully! (%d patients, %d doctors, %d reports)\n",
		summary.Patients, summary.Doctors, summary.Reports)
	return nil
}

func runServer(ctx context.Context) error {
	a, err := bootstrap(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	router := apphttp.SetupRouter(apphttp.Handlers{
		Patients: patient.NewHandler(a.patients),
		Doctors:  doctor.NewHandler(a.doctors),
		Reports:  report.NewHandler(a.reports),
		Bookings: booking.NewHandler(a.workflow),
	}, a.metrics, a.cfg.OTelServiceName, a.cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	a.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	a.logger.Info().Msg("server stopped")
	return nil
}
