// Package database contains the logic for establishing the
// connection to the PostgreSQL database.
//
// It handles:
//   - parsing the DSN (key=value or postgres:// URL)
//   - holding exactly one live connection (pgxpool capped at one conn)
//   - wiring query tracing/logging (pgx tracelog, slow query log, New Relic nrpgx5)
//   - a background monitor that keeps the connection observed and logs
//     connection-level errors as they happen
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deppfellow/contact-repository/internal/config"
	loggerConfig "github.com/deppfellow/contact-repository/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the connection handle and a logger.
//
// Pool is capped at a single connection: concurrent callers wait for it,
// which is how the driver serializes access.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger

	stopMonitor context.CancelFunc
	monitorDone chan struct{}
	closeOnce   sync.Once
}

// DatabasePingTimeout is the number of seconds to wait for the initial ping
// when the configuration does not provide a connect timeout.
const DatabasePingTimeout = 10

// New opens the connection described by dsn.
//
// Inputs:
//   - dsn: connection string, e.g. "host=db user=test password=test dbname=test"
//   - cfg: application config; may be nil, in which case defaults apply
//   - logger: main app logger; nil discards output
//   - loggerService: optional New Relic service (nil if not configured)
//
// Behavior:
//   - Parse DSN, cap the pool at one connection, bound the connect time
//   - Attach tracers (New Relic, local SQL log, slow query log)
//   - Ping with a timeout so an unreachable database fails deterministically
//   - Start the background connection monitor
func New(ctx context.Context, dsn string, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if cfg == nil {
		cfg = &config.Config{Observability: config.DefaultObservabilityConfig()}
	}
	obs := cfg.Observability
	if obs == nil {
		obs = config.DefaultObservabilityConfig()
	}

	connectTimeout := time.Duration(cfg.Database.ConnectTimeout) * time.Second
	if connectTimeout <= 0 {
		connectTimeout = DatabasePingTimeout * time.Second
	}

	pgxPoolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	pgxPoolConfig.MaxConns = 1
	pgxPoolConfig.MinConns = 0
	if pgxPoolConfig.ConnConfig.ConnectTimeout == 0 {
		pgxPoolConfig.ConnConfig.ConnectTimeout = connectTimeout
	}
	if obs.HealthChecks.Enabled && obs.HealthChecks.Interval > 0 {
		pgxPoolConfig.HealthCheckPeriod = obs.HealthChecks.Interval
	}

	if tracer := buildTracer(cfg, obs, logger, loggerService); tracer != nil {
		pgxPoolConfig.ConnConfig.Tracer = tracer
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{
		Pool:        pool,
		log:         logger,
		monitorDone: make(chan struct{}),
	}

	if obs.HealthChecks.Enabled && obs.HealthChecks.Interval > 0 {
		timeout := obs.HealthChecks.Timeout
		if timeout <= 0 {
			timeout = connectTimeout
		}
		monitorCtx, stop := context.WithCancel(context.Background())
		database.stopMonitor = stop
		go database.monitor(monitorCtx, obs.HealthChecks.Interval, timeout)
	} else {
		close(database.monitorDone)
	}

	logger.Info().
		Str("host", pgxPoolConfig.ConnConfig.Host).
		Str("database", pgxPoolConfig.ConnConfig.Database).
		Msg("connected to the database")

	return database, nil
}

// Open is New with the connection string taken from cfg.Database.
func Open(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	return New(ctx, cfg.Database.ConnectionString(), cfg, logger, loggerService)
}

// buildTracer assembles the query tracers for this environment, or returns nil.
func buildTracer(cfg *config.Config, obs *config.ObservabilityConfig, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) pgx.QueryTracer {
	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// Full SQL logging is noisy, so only local runs or debug level get it.
	globalLevel := logger.GetLevel()
	if cfg.Primary.Env == "local" || globalLevel <= zerolog.DebugLevel {
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	if obs.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(obs.Logging.SlowQueryThreshold, logger))
	}

	switch len(tracers) {
	case 0:
		return nil
	case 1:
		return tracers[0]
	default:
		return &multiTracer{tracers: tracers}
	}
}

// monitor pings the connection every interval until ctx is canceled.
//
// A failure is logged once when the connection goes bad and again when it
// recovers; repeated failures in between are logged at debug level.
func (db *Database) monitor(ctx context.Context, interval, timeout time.Duration) {
	defer close(db.monitorDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		start := time.Now()
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err := db.Pool.Ping(pingCtx)
		cancel()

		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil && healthy:
			healthy = false
			db.log.Error().Err(err).Dur("response_time", time.Since(start)).Msg("database connection error")
		case err != nil:
			db.log.Debug().Err(err).Msg("database connection still unavailable")
		case !healthy:
			healthy = true
			db.log.Info().Dur("response_time", time.Since(start)).Msg("database connection recovered")
		}
	}
}

// Ping checks the connection with the given context.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close stops the monitor and closes the connection. It is safe to call more than once.
func (db *Database) Close() error {
	db.closeOnce.Do(func() {
		db.log.Info().Msg("closing database connection")
		if db.stopMonitor != nil {
			db.stopMonitor()
		}
		<-db.monitorDone
		db.Pool.Close()
	})
	return nil
}
