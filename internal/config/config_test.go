package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Auth.HashReplicas)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: 9090\ndatabase:\n  driver: mysql\nsheets:\n  spreadsheet_id: abc\n  credentials_file: /tmp/key.json\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("NEXATECH_REDIS_ADDR", "redis:6380")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.True(t, cfg.Sheets.Enabled())
	// 未覆盖的字段保持默认
	assert.Equal(t, 8081, cfg.AdminServer.Port)
}

func TestServerAddrDefaultsHost(t *testing.T) {
	assert.Equal(t, "0.0.0.0:1234", ServerConfig{Port: 1234}.Addr())
}

func TestValidateJWTRejectsDefaultSecretOutsideDevelopment(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.ValidateJWT(), ErrInsecureJWTSecret)

	cfg.JWT.Secret = ""
	assert.ErrorIs(t, cfg.ValidateJWT(), ErrInsecureJWTSecret)

	cfg.Log.Development = true
	assert.NoError(t, cfg.ValidateJWT())

	t.Setenv("NEXATECH_JWT_SECRET", "rotated-secret")
	cfg, err = LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "rotated-secret", cfg.JWT.Secret)
	assert.NoError(t, cfg.ValidateJWT())
}
