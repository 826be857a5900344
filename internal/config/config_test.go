package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "BACKEND", "DATABASE_URL", "STORAGE_KIND", "STORAGE_PATH", "STORAGE_SLOT", "API_KEY", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "REFRESH_INTERVAL"} {
		t.Setenv(k, "")
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, "file", cfg.Storage.Kind)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
backend: remote
database_url: postgres://x@db/reminders
ai:
  api_key: from-file
  model: gemini-pro
`), 0644))

	t.Setenv("API_KEY", "from-env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendRemote, cfg.Backend)
	assert.Equal(t, "postgres://x@db/reminders", cfg.DatabaseURL)
	assert.Equal(t, "from-env", cfg.AI.APIKey)
	assert.Equal(t, "gemini-pro", cfg.AI.Model)
	assert.Equal(t, "reminders", cfg.Storage.Slot, "defaults survive a partial file")
}

func TestLoadFile_GeminiKeyAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.AI.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "sqlite", mutate: func(c *Config) { c.Storage.Kind = "sqlite" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "s3" }, wantErr: true},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Kind = "bolt" }, wantErr: true},
		{name: "refresh interval", mutate: func(c *Config) { c.RefreshInterval = "30s" }},
		{name: "bad refresh interval", mutate: func(c *Config) { c.RefreshInterval = "often" }, wantErr: true},
		{name: "remote without url", mutate: func(c *Config) { c.Backend = BackendRemote; c.DatabaseURL = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	clearEnv(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRefreshEvery(t *testing.T) {
	cfg := defaults()
	d, err := cfg.RefreshEvery()
	require.NoError(t, err)
	assert.Zero(t, d)

	cfg.RefreshInterval = "1m30s"
	d, err = cfg.RefreshEvery()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}
