// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types and
// validates that required values are present so they can be reused
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional values.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every variable before it is mapped to a key.
//
// Nesting uses the "." delimiter, so BOOKSTORE_SERVER.PORT maps to
// server.port -> Config.Server.Port.
const EnvPrefix = "BOOKSTORE_"

// ServiceName tags logs and traces emitted by this service.
const ServiceName = "bookstore"

// listKeys are split on commas when read from the environment.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected by Load.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the number of requests per second a single client may
	// issue before receiving 429.
	RateLimit int `koanf:"rate_limit" validate:"required,min=1"`
}

// DatabaseConfig contains MongoDB connection parameters and pool tuning.
type DatabaseConfig struct {
	URI              string        `koanf:"uri" validate:"required"`
	Name             string        `koanf:"name" validate:"required"`
	BooksCollection  string        `koanf:"books_collection" validate:"required"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout" validate:"min=1s"`
	OperationTimeout time.Duration `koanf:"operation_timeout" validate:"min=1ms"`
	MaxPoolSize      uint64        `koanf:"max_pool_size" validate:"min=1"`
	MinPoolSize      uint64        `koanf:"min_pool_size" validate:"ltefield=MaxPoolSize"`
	MaxConnIdleTime  time.Duration `koanf:"max_conn_idle_time"`
}

// RedisConfig contains Redis connection details.
//
// Redis is optional: when Address is empty the rate limiter keeps its
// counters in process memory.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// Addr returns the address the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// Default returns a Config populated with every optional default.
// Values read from the environment are decoded on top of it.
func Default() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			ShutdownTimeout:    10,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
		},
		Database: DatabaseConfig{
			Name:             "bookstore",
			BooksCollection:  "books",
			ConnectTimeout:   10 * time.Second,
			OperationTimeout: 10 * time.Second,
			MaxPoolSize:      100,
			MinPoolSize:      0,
			MaxConnIdleTime:  5 * time.Minute,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// Load loads configuration from environment variables, unmarshals it into
// Config structs, validates it, applies defaults, and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix BOOKSTORE_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into a Config pre-populated with Default()
//   - Validates required config blocks/fields
//   - Sets default observability if missing and pins service name + environment
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces agree on them.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
