package server

import (
	"context"
	"testing"

	"github.com/deppfellow/contact-repository/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Should fail when the database is unreachable", func(t *testing.T) {
		logger := zerolog.Nop()
		cfg := &config.Config{
			Primary: config.Primary{Env: "test"},
			Database: config.DatabaseConfig{
				Host:           "127.0.0.1",
				Port:           1,
				User:           "test",
				Name:           "test",
				SSLMode:        "disable",
				ConnectTimeout: 1,
			},
			Observability: config.DefaultObservabilityConfig(),
		}

		srv, err := New(context.Background(), cfg, &logger, nil)
		require.Error(t, err)
		assert.Nil(t, srv)
		assert.Contains(t, err.Error(), "failed to initialize database")
	})
}

func TestServer_Shutdown(t *testing.T) {
	t.Run("Should succeed without a database or telemetry", func(t *testing.T) {
		srv := &Server{}
		assert.NoError(t, srv.Shutdown(context.Background()))
	})

	t.Run("Should report an expired context", func(t *testing.T) {
		srv := &Server{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := srv.Shutdown(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "failed to flush telemetry")
	})
}
