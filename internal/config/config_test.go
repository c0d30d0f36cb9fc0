package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "/api/participation", cfg.Server.BasePath)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "0 * * * *", cfg.Jobs.DigestSchedule)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9000"
  mode: release
  base_path: /api/participation
database:
  host: db.internal
  name: participation_prod
  ssl_mode: require
jwt:
  secret: yaml-secret
renderer:
  base_url: http://renderer:8002
logger:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "participation_prod", cfg.Database.Name)
	assert.Equal(t, "yaml-secret", cfg.JWT.Secret)
	assert.Equal(t, "http://renderer:8002", cfg.Renderer.BaseURL)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("DB_HOST", "env-db")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_URL", "redis://env-redis:6379/2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.org,https://b.example.org")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "redis://env-redis:6379/2", cfg.Redis.URL)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.Server.AllowedOrigins)
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "pw",
		Name:     "participation",
		SSLMode:  "disable",
	}

	dsn := cfg.GetDSN()
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=participation sslmode=disable", dsn)
}
