package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the tests touch; viper ignores empty values
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LAWAI_APP_NAME", "LAWAI_APP_ENV", "LAWAI_APP_PORT",
		"LAWAI_DATABASE_URL", "LAWAI_DATABASE_HOST", "LAWAI_DATABASE_PORT", "LAWAI_DATABASE_PASSWORD",
		"LAWAI_DATABASE_MAX_OPEN_CONNS", "LAWAI_DATABASE_MAX_IDLE_CONNS",
		"LAWAI_JWT_SECRET", "LAWAI_AI_DEEPSEEK_API_KEY", "LAWAI_HTTP_CORS_ALLOW_ORIGINS",
		"LAWAI_SWAGGER_ENABLED", "LAWAI_SWAGGER_REQUIRE_AUTH", "LAWAI_TELEMETRY_DB_LOG_FULL_SQL",
		"DATABASE_URL", "SESSION_SECRET", "DEEPSEEK_API_KEY", "FRONTEND_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lawai-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "/api", cfg.App.APIPrefix)
	assert.Equal(t, "lawai", cfg.Database.DBName)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "deepseek-chat", cfg.AI.Model)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 10*time.Second, cfg.AI.TestTimeout)
	assert.Equal(t, []string{"http://localhost:5000"}, cfg.HTTP.CORSAllowOrigins)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_PrefixedEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAWAI_APP_PORT", "9000")
	t.Setenv("LAWAI_DATABASE_HOST", "db.internal")
	t.Setenv("LAWAI_DATABASE_PORT", "5433")
	t.Setenv("LAWAI_AI_DEEPSEEK_API_KEY", "sk-prefixed")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "sk-prefixed", cfg.AI.APIKey)
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@legacy:5432/lawai")
	t.Setenv("SESSION_SECRET", "legacy-secret")
	t.Setenv("DEEPSEEK_API_KEY", "sk-legacy")
	t.Setenv("FRONTEND_URL", "https://app.lawai.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@legacy:5432/lawai", cfg.Database.DSN())
	assert.Equal(t, "legacy-secret", cfg.JWT.Secret)
	assert.Equal(t, "sk-legacy", cfg.AI.APIKey)
	assert.Equal(t, []string{"https://app.lawai.example"}, cfg.HTTP.CORSAllowOrigins)
}

func TestLoad_PrefixedWinsOverLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "sk-legacy")
	t.Setenv("LAWAI_AI_DEEPSEEK_API_KEY", "sk-prefixed")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-prefixed", cfg.AI.APIKey)
}

func TestLoad_PoolValidation(t *testing.T) {
	t.Run("idle cannot exceed open", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LAWAI_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("LAWAI_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("negative idle rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LAWAI_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	base := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LAWAI_APP_ENV", "production")
		t.Setenv("LAWAI_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
	}

	t.Run("valid production config", func(t *testing.T) {
		base(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("short secret", func(t *testing.T) {
		base(t)
		t.Setenv("LAWAI_JWT_SECRET", "short")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("wildcard cors", func(t *testing.T) {
		base(t)
		t.Setenv("LAWAI_HTTP_CORS_ALLOW_ORIGINS", "*")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("unprotected swagger", func(t *testing.T) {
		base(t)
		t.Setenv("LAWAI_SWAGGER_ENABLED", "true")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger endpoint")
	})

	t.Run("full sql tracing", func(t *testing.T) {
		base(t)
		t.Setenv("LAWAI_TELEMETRY_DB_LOG_FULL_SQL", "true")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user",
		Password: "pass@word#123",
		DBName:   "lawai",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "pass%40word%23123")
	assert.Contains(t, dsn, "sslmode=disable")

	cfg.URL = "postgres://override/db"
	assert.Equal(t, "postgres://override/db", cfg.DSN())
}
