package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/ports"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "dispatchd",
	Short:         "Route dispatch service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema, then serve the HTTP API and background jobs",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE:  migrate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func migrate(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := NewLogger(cfg.Logging, os.Stdout)

	db, err := postgres.Open(cfg.Database.Options())
	if err != nil {
		return err
	}
	defer func() {
		_ = postgres.Close(db)
	}()

	if err = postgres.Migrate(db); err != nil {
		return err
	}
	logger.InfoContext(cmd.Context(), "Schema migrated")
	return nil
}

func serve(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := NewLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	db, err := postgres.Open(cfg.Database.Options())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := postgres.Close(db); closeErr != nil {
			logger.ErrorContext(ctx, "Failed to close database", "error", closeErr)
		}
	}()

	if err = postgres.Migrate(db); err != nil {
		return err
	}

	publisher, closePublisher, err := newEventPublisher(cfg.AMQP)
	if err != nil {
		return err
	}
	defer closePublisher()

	root, err := NewCompositionRoot(*cfg, db, publisher, logger)
	if err != nil {
		return err
	}

	e, err := root.CreateEcho()
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "address", cfg.HTTP.Address())
		if startErr := e.Start(cfg.HTTP.Address()); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serverErr <- startErr
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.InfoContext(ctx, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEventPublisher(cfg AMQPConfig) (ports.EventPublisher, func(), error) {
	if !cfg.Enabled {
		return rabbitmq.NopEventPublisher{}, func() {}, nil
	}

	publisher, err := rabbitmq.Dial(cfg.URL, cfg.Exchange)
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() { _ = publisher.Close() }, nil
}
