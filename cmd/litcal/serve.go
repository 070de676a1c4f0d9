package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmlarkin/tridentine-calendar/internal/api"
	"github.com/jmlarkin/tridentine-calendar/internal/calendar"
	"github.com/jmlarkin/tridentine-calendar/internal/config"
	"github.com/jmlarkin/tridentine-calendar/internal/logger"
	"github.com/jmlarkin/tridentine-calendar/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the liturgical calendar over a JSON HTTP API",
		Long: `Serve starts an HTTP server exposing resolved liturgical days and
years. Requested years are computed on first access and cached in a
SQLite database. Configuration comes from the environment (or a .env
file); see the README for the supported variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting calendar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.DatabasePath),
		slog.String("log_level", cfg.LogLevel),
	)

	// Open database and apply migrations
	db, err := store.Open(store.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := db.Migrate(context.Background())
	if err != nil {
		return err
	}
	if applied > 0 {
		log.Info("database migrated", slog.Int("applied", applied))
	}

	// Load the observance registry
	reg, err := calendar.LoadRegistry()
	if err != nil {
		return err
	}

	handlers := api.NewHandlers(db, reg, cfg, log)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	log.Info("calendar API ready", slog.String("addr", server.Addr))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	log.Info("calendar API stopped")
	return nil
}
