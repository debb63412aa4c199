package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "registry")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Security.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Equal(t,
		"host=localhost port=5432 user=app password= dbname=registry sslmode=disable",
		cfg.GetDatabaseDSN())
}

func TestLoadConfig_URLTakesPrecedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/registry?sslmode=disable")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:secret@db:5432/registry?sslmode=disable", cfg.GetDatabaseDSN())
}

func TestLoadConfig_PostgresRequiresCredentials(t *testing.T) {
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database user is required")
	assert.Contains(t, err.Error(), "database name is required")
}

func TestLoadConfig_Mongo(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "MongoDB")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required for mongodb")

	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "atofon", cfg.Database.MongoDatabase)
}

func TestLoadConfig_Memory(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("PORT", "8081")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Database.Driver failed oneof")
	assert.Contains(t, err.Error(), "Config.LogLevel failed oneof")
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "many")
	t.Setenv("X_BOOL", "perhaps")
	t.Setenv("X_DURATION", "soon")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, time.Second, getEnvAsDuration("X_DURATION", time.Second))
}
