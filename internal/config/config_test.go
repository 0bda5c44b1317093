package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONTACTS_PRIMARY__ENV", "development")
	t.Setenv("CONTACTS_DATABASE__HOST", "postgresql")
	t.Setenv("CONTACTS_DATABASE__USER", "test")
	t.Setenv("CONTACTS_DATABASE__PASSWORD", "test")
	t.Setenv("CONTACTS_DATABASE__NAME", "test")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should load nested keys and apply defaults", func(t *testing.T) {
		setBaseEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Primary.Env)
		assert.Equal(t, "postgresql", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 10, cfg.Database.ConnectTimeout)
		assert.Equal(t, 5, cfg.Database.QueryTimeout)
		require.NotNil(t, cfg.Observability)
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "development", cfg.Observability.Environment)
		assert.Equal(t, 30*time.Second, cfg.Observability.HealthChecks.Interval)
	})

	t.Run("Should keep defaults for unset observability fields", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CONTACTS_OBSERVABILITY__LOGGING__LEVEL", "debug")
		t.Setenv("CONTACTS_OBSERVABILITY__HEALTH_CHECKS__INTERVAL", "2s")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Observability.Logging.Level)
		assert.Equal(t, "json", cfg.Observability.Logging.Format)
		assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Interval)
		assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
	})

	t.Run("Should accept a DSN instead of separate fields", func(t *testing.T) {
		t.Setenv("CONTACTS_PRIMARY__ENV", "production")
		t.Setenv("CONTACTS_DATABASE__DSN", "host=db user=test password=test dbname=test")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "host=db user=test password=test dbname=test", cfg.Database.ConnectionString())
		assert.True(t, cfg.Observability.IsProduction())
	})

	t.Run("Should fail when the database is not configured", func(t *testing.T) {
		t.Setenv("CONTACTS_PRIMARY__ENV", "development")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("Should fail on an invalid log level", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CONTACTS_OBSERVABILITY__LOGGING__LEVEL", "loud")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logging level")
	})

	t.Run("Should fail on a query timeout over a day", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CONTACTS_DATABASE__QUERY_TIMEOUT", "86401")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("Should fail on an unknown ssl mode", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CONTACTS_DATABASE__SSL_MODE", "sometimes")

		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	t.Run("Should build a key=value DSN", func(t *testing.T) {
		d := DatabaseConfig{Host: "postgresql", Port: 5432, User: "test", Password: "test", Name: "test", SSLMode: "disable", ConnectTimeout: 10}
		assert.Equal(t,
			"host=postgresql port=5432 user=test password=test dbname=test sslmode=disable connect_timeout=10",
			d.ConnectionString())
	})

	t.Run("Should quote values with spaces and quotes", func(t *testing.T) {
		d := DatabaseConfig{Host: "db", Port: 5432, User: "test", Password: `it's a secret`, Name: "test", SSLMode: "disable"}
		assert.Equal(t,
			`host=db port=5432 user=test password='it\'s a secret' dbname=test sslmode=disable`,
			d.ConnectionString())
	})

	t.Run("Should mask the password when redacted", func(t *testing.T) {
		d := DatabaseConfig{Host: "db", Port: 5432, User: "test", Password: "hunter2", Name: "test", SSLMode: "disable"}
		assert.NotContains(t, d.Redacted(), "hunter2")
		assert.Contains(t, d.Redacted(), "password=xxxxx")

		u := DatabaseConfig{DSN: "postgres://test:hunter2@db:5432/test"}
		assert.NotContains(t, u.Redacted(), "hunter2")
	})
}

func TestObservabilityConfig_Validate(t *testing.T) {
	t.Run("Should accept defaults", func(t *testing.T) {
		assert.NoError(t, DefaultObservabilityConfig().Validate())
	})

	t.Run("Should reject a short health check interval", func(t *testing.T) {
		c := DefaultObservabilityConfig()
		c.HealthChecks.Interval = 100 * time.Millisecond
		assert.Error(t, c.Validate())
	})

	t.Run("Should ignore health check timing when disabled", func(t *testing.T) {
		c := DefaultObservabilityConfig()
		c.HealthChecks.Enabled = false
		c.HealthChecks.Interval = 0
		assert.NoError(t, c.Validate())
	})

	t.Run("Should reject an unknown format", func(t *testing.T) {
		c := DefaultObservabilityConfig()
		c.Logging.Format = "xml"
		assert.Error(t, c.Validate())
	})
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""
	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())
	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())
	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}
