// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when one exists), loads them into structured Go types and
// validates that required values are present so they can be reused
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any config is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the CONTACTS_ prefix. Keys are lowercased,
	the prefix is removed and a double underscore marks nesting:

	  CONTACTS_DATABASE__HOST      -> database.host     -> Config.Database.Host
	  CONTACTS_DATABASE__SSL_MODE  -> database.ssl_mode -> Config.Database.SSLMode
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "CONTACTS_"

// ServiceName identifies this program in logs and APM.
const ServiceName = "contacts"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
//
// DSN wins when set; otherwise a key=value connection string is built
// from the individual fields. Timeouts are in seconds.
type DatabaseConfig struct {
	DSN            string `koanf:"dsn"`
	Host           string `koanf:"host" validate:"required_without=DSN"`
	Port           int    `koanf:"port" validate:"omitempty,min=1,max=65535"`
	User           string `koanf:"user" validate:"required_without=DSN"`
	Password       string `koanf:"password"`
	Name           string `koanf:"name" validate:"required_without=DSN"`
	SSLMode        string `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	ConnectTimeout int    `koanf:"connect_timeout" validate:"min=0,max=86400"`
	QueryTimeout   int    `koanf:"query_timeout" validate:"min=0,max=86400"`
}

const (
	defaultPort           = 5432
	defaultSSLMode        = "disable"
	defaultConnectTimeout = 10
	defaultQueryTimeout   = 5
)

// ConnectionString returns the DSN to hand to the driver.
//
// Example:
//
//	host=localhost port=5432 user=test password='p a ss' dbname=test sslmode=disable connect_timeout=10
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}

	parts := []string{
		"host=" + quoteDSNValue(d.Host),
		"port=" + strconv.Itoa(d.Port),
		"user=" + quoteDSNValue(d.User),
	}
	if d.Password != "" {
		parts = append(parts, "password="+quoteDSNValue(d.Password))
	}
	parts = append(parts,
		"dbname="+quoteDSNValue(d.Name),
		"sslmode="+quoteDSNValue(d.SSLMode),
	)
	if d.ConnectTimeout > 0 {
		parts = append(parts, "connect_timeout="+strconv.Itoa(d.ConnectTimeout))
	}

	return strings.Join(parts, " ")
}

// Redacted returns the connection string with the password masked, for logs.
func (d DatabaseConfig) Redacted() string {
	if d.DSN != "" {
		if u, err := url.Parse(d.DSN); err == nil && u.Scheme != "" {
			return u.Redacted()
		}
		return "<dsn>"
	}
	masked := d
	if masked.Password != "" {
		masked.Password = "xxxxx"
	}
	return masked.ConnectionString()
}

// quoteDSNValue quotes a keyword/value DSN value when it is empty or
// contains characters that would break the key=value syntax.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func (d *DatabaseConfig) applyDefaults() {
	if d.Port == 0 {
		d.Port = defaultPort
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultSSLMode
	}
	if d.ConnectTimeout == 0 {
		d.ConnectTimeout = defaultConnectTimeout
	}
	if d.QueryTimeout == 0 {
		d.QueryTimeout = defaultQueryTimeout
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix CONTACTS_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config
//   - Applies database defaults
//   - Validates required config blocks/fields
//   - Sets default observability if missing and validates it
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Observability is pre-filled so a partially configured block keeps
	// the defaults for everything it does not set.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.Database.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not user-tunable.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
