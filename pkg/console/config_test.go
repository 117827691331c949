package console

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
base_url: https://console.example.com/api
timeout_seconds: 10
session:
  path: /tmp/hmes-session.json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://console.example.com/api", cfg.BaseURL)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, "/tmp/hmes-session.json", cfg.Session.Path)
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	t.Setenv("HMES_BASE_URL", "https://console.example.com/api")

	cfg, err := LoadConfig(writeConfig(t, "base_url: ${HMES_BASE_URL}\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://console.example.com/api", cfg.BaseURL)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "base_url: https://console.example.com\n"))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, defaultUserAgent, cfg.UserAgent)
	assert.NotEmpty(t, cfg.Session.Path, "a durable session path is always chosen")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestNewFromConfig_FileBackedSession(t *testing.T) {
	cfg := &Config{
		BaseURL: "https://console.example.com/api",
		Session: SessionConfig{Path: filepath.Join(t.TempDir(), "session.json")},
	}
	applyDefaults(cfg)

	c, err := NewFromConfig(cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Session().Current().Empty())
}

func TestNewFromConfig_RequiresBaseURL(t *testing.T) {
	_, err := NewFromConfig(&Config{})
	assert.Error(t, err)
}

func TestNewFromConfig_BadRedisURL(t *testing.T) {
	_, err := NewFromConfig(&Config{
		BaseURL: "https://console.example.com",
		Session: SessionConfig{RedisURL: "://bad"},
	})
	assert.Error(t, err)
}
