// Package cli provides common CLI initialization utilities shared by the
// entry point and its tests.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"pfm/internal/backend"
	"pfm/internal/config"
	"pfm/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger opens the log file named in cfg and tags every record with a
// fresh session id. The menu owns stdout, so logs never go there.
func SetupLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	logger, closer, err := log.OpenFile(cfg.LogFile, log.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, nil, err
	}
	logger = logger.With(log.FieldSessionID, uuid.NewString())
	log.SetDefault(logger)
	return logger, closer, nil
}

// InitStore builds the configured record store and bootstraps every record
// set.
func InitStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend)).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("initialize %s backend: %w", bcfg.Type, err)
	}
	return res, nil
}

// OnInterrupt runs cleanup and exits with status 130 when SIGINT or SIGTERM
// arrives. Record sets are always replaced whole, so exiting between writes
// is safe. stop disarms the handler.
func OnInterrupt(logger *log.Logger, cleanup func()) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			if cleanup != nil {
				cleanup()
			}
			os.Exit(130)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
