// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the database connection
//
// It provides the constructor and shutdown logic to run the application cleanly.
package server

import (
	"context"
	"fmt"

	"github.com/deppfellow/contact-repository/internal/config"
	"github.com/deppfellow/contact-repository/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/contact-repository/internal/logger"
)

// Server is the application container that holds shared resources.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL connection wrapper.
	DB *database.Database
}

// New constructs a Server and opens the database connection.
//
// A database that cannot be reached is returned as an error; nothing is
// left running in that case.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	logger.Debug().
		Str("dsn", cfg.Database.Redacted()).
		Msg("connecting to the database")

	db, err := database.Open(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Shutdown closes the database connection and flushes New Relic.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to flush telemetry: %w", err)
	}

	done := make(chan struct{})
	go func() {
		s.LoggerService.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to flush telemetry: %w", ctx.Err())
	}
}
