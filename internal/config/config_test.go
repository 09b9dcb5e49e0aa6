package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOOKSTORE_DATABASE.URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 20, cfg.Server.RateLimit)
	assert.Equal(t, "bookstore", cfg.Database.Name)
	assert.Equal(t, "books", cfg.Database.BooksCollection)
	assert.Equal(t, 10*time.Second, cfg.Database.OperationTimeout)
	assert.False(t, cfg.Redis.Enabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOOKSTORE_PRIMARY.ENV", "production")
	t.Setenv("BOOKSTORE_SERVER.PORT", "9090")
	t.Setenv("BOOKSTORE_SERVER.CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://books.example.com")
	t.Setenv("BOOKSTORE_DATABASE.URI", "mongodb://db:27017")
	t.Setenv("BOOKSTORE_DATABASE.BOOKS_COLLECTION", "cats")
	t.Setenv("BOOKSTORE_DATABASE.OPERATION_TIMEOUT", "250ms")
	t.Setenv("BOOKSTORE_REDIS.ADDRESS", "redis:6379")
	t.Setenv("BOOKSTORE_OBSERVABILITY.LOGGING.LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://books.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "cats", cfg.Database.BooksCollection)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.OperationTimeout)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
}

func TestLoad_MissingDatabaseURI(t *testing.T) {
	t.Setenv("BOOKSTORE_DATABASE.URI", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URI")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("BOOKSTORE_DATABASE.URI", "mongodb://localhost:27017")
	t.Setenv("BOOKSTORE_OBSERVABILITY.LOGGING.LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  string
	}{
		{name: "explicit level wins", env: "production", level: "error", want: "error"},
		{name: "production default", env: "production", want: "info"},
		{name: "development default", env: "development", want: "debug"},
		{name: "local default", env: "local", want: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultObservabilityConfig()
			cfg.Environment = tt.env
			cfg.Logging.Level = tt.level

			assert.Equal(t, tt.want, cfg.GetLogLevel())
		})
	}
}
