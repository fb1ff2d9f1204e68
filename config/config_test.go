package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "access_token", cfg.TokenHeader)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 20, cfg.DBMaxOpenConns)
	assert.False(t, cfg.RabbitMQEnabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TOKEN_HEADER", "x-token")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "x-token", cfg.TokenHeader)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.DBMaxOpenConns)
	assert.Equal(t, 10, cfg.DBMaxIdleConns)
	assert.True(t, cfg.RabbitMQEnabled)
}

func TestSecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jwt")
	require.NoError(t, os.WriteFile(path, []byte("  s3cret\n"), 0o600))
	t.Setenv("JWT_SECRET_FILE", path)
	t.Setenv("JWT_SECRET", "ignored")

	assert.Equal(t, "s3cret", LoadConfig().JWTSecret)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "orders"}

	dsn := cfg.DSN()

	assert.True(t, strings.HasPrefix(dsn, "app:pw@tcp(db:3306)/orders?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
}
