package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinevault/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":          "test",
			"PORT":             "8080",
			"SENTRY_DSN":       "https://test@sentry.io/123",
			"ALLOW_ORIGINS":    "*",
			"DB_NAME":          "testdb",
			"DB_HOST":          "localhost",
			"DB_PORT":          "5432",
			"DB_USER":          "testuser",
			"DB_PASS":          "testpass",
			"ENABLE_SSL":       "true",
			"AUTH_JWT_SECRET":  "supersecret",
			"AUTH_TOKEN_TTL":   "15",
			"AUTH_REFRESH_TTL": "1440",
			"OMDB_API_KEY":     "omdb-key",
			"OMDB_BASE_URL":    "https://www.omdbapi.com",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "testdb", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "supersecret", cfg.Auth.JWTSecret)
		assert.Equal(t, 15, cfg.Auth.TokenTTL)
		assert.Equal(t, 1440, cfg.Auth.RefreshTTL)
		assert.Equal(t, "omdb-key", cfg.OMDB.APIKey)
		assert.Equal(t, "https://www.omdbapi.com", cfg.OMDB.BaseURL)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}
