package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FUBBLE_APP_NAME":                  os.Getenv("FUBBLE_APP_NAME"),
		"FUBBLE_APP_ENV":                   os.Getenv("FUBBLE_APP_ENV"),
		"FUBBLE_APP_PORT":                  os.Getenv("FUBBLE_APP_PORT"),
		"FUBBLE_DATABASE_HOST":             os.Getenv("FUBBLE_DATABASE_HOST"),
		"FUBBLE_DATABASE_PORT":             os.Getenv("FUBBLE_DATABASE_PORT"),
		"FUBBLE_DATABASE_USER":             os.Getenv("FUBBLE_DATABASE_USER"),
		"FUBBLE_DATABASE_PASSWORD":         os.Getenv("FUBBLE_DATABASE_PASSWORD"),
		"FUBBLE_DATABASE_DBNAME":           os.Getenv("FUBBLE_DATABASE_DBNAME"),
		"FUBBLE_DATABASE_SSLMODE":          os.Getenv("FUBBLE_DATABASE_SSLMODE"),
		"FUBBLE_DATABASE_MAX_OPEN_CONNS":   os.Getenv("FUBBLE_DATABASE_MAX_OPEN_CONNS"),
		"FUBBLE_DATABASE_MAX_IDLE_CONNS":   os.Getenv("FUBBLE_DATABASE_MAX_IDLE_CONNS"),
		"FUBBLE_BILLING_PAYMENT_TERM_DAYS": os.Getenv("FUBBLE_BILLING_PAYMENT_TERM_DAYS"),
		"FUBBLE_BILLING_DEFAULT_FREQUENCY": os.Getenv("FUBBLE_BILLING_DEFAULT_FREQUENCY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "fubble-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "fubble", cfg.Database.DBName)
		assert.Equal(t, 30, cfg.Billing.PaymentTermDays)
		assert.Equal(t, "monthly", cfg.Billing.DefaultFrequency)
		assert.Equal(t, 5*time.Minute, cfg.Billing.SummaryCacheTTL)
	})

	t.Run("loads values from environment variables with FUBBLE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUBBLE_APP_NAME", "test-app")
		os.Setenv("FUBBLE_APP_PORT", "9000")
		os.Setenv("FUBBLE_DATABASE_HOST", "testdb.local")
		os.Setenv("FUBBLE_DATABASE_PORT", "5433")
		os.Setenv("FUBBLE_BILLING_PAYMENT_TERM_DAYS", "14")
		os.Setenv("FUBBLE_BILLING_DEFAULT_FREQUENCY", "quarterly")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 14, cfg.Billing.PaymentTermDays)
		assert.Equal(t, "quarterly", cfg.Billing.DefaultFrequency)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUBBLE_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("FUBBLE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects an unknown billing frequency", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUBBLE_BILLING_DEFAULT_FREQUENCY", "weekly")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_frequency")
	})

	t.Run("production requires a database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUBBLE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("production accepts a complete configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUBBLE_APP_ENV", "production")
		os.Setenv("FUBBLE_DATABASE_PASSWORD", "secret")
		os.Setenv("FUBBLE_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "fubble",
		Password: "p@ss:word/1",
		DBName:   "fubble",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password are escaped
	assert.NotContains(t, dsn, "p@ss:word/1")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
