package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.Limits.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clinicdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://clinic.example.com/api/v1
  timeout: 5s
cache:
  ttl: 1m
  redis_url: redis://localhost:6379/0
`), 0o600))
	t.Setenv("CLINICDESK_API_TOKEN", "abc")
	t.Setenv("CLINICDESK_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://clinic.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "abc", cfg.API.Token)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := Config{API: APIConfig{BaseURL: "http://x", Timeout: time.Second}}
	require.NoError(t, good.Validate())

	bad := good
	bad.API.BaseURL = "clinic.local"
	assert.Error(t, bad.Validate())

	bad = good
	bad.API.Timeout = 0
	assert.Error(t, bad.Validate())

	bad = good
	bad.Limits.Burst = -1
	assert.Error(t, bad.Validate())
}
