package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/app"
auth:
  jwt_secret: "s3cret"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.AccessTTL())
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AITimeout())
	assert.Equal(t, "./files", cfg.Files.RootDir)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/app"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadConfigRequiresDSN(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "s3cret"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  url: "postgres://localhost/app"
auth:
  jwt_secret: "s3cret"
  access_ttl_minutes: 15
ai:
  api_key: "key"
  model: "gemini-2.5-pro"
  timeout_seconds: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	assert.Equal(t, 10*time.Second, cfg.AITimeout())
}
