package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/lockstep/internal/config"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lockstep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := config.Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(missing, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
start:
  name: AAA
final:
  name: ZZZ
log_level: debug
concurrency: "4"
cache:
  backend: redis
  addr: redis:6379
  ttl: 10m
`)
	cfg, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, domain.Selector{Name: "AAA", Suffix: "A"}, cfg.Start)
	assert.Equal(t, "ZZZ", cfg.Final.Name)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, config.CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "8080", cfg.HTTP.Port)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown key", content: "colour: blue\n", wantErr: "colour"},
		{name: "bad backend", content: "cache:\n  backend: memcached\n", wantErr: "unknown cache backend"},
		{name: "redis without addr", content: "cache:\n  backend: redis\n  addr: \"\"\n", wantErr: "needs an address"},
		{name: "bad level", content: "log_level: loud\n", wantErr: "unknown log level"},
		{name: "negative concurrency", content: "concurrency: -2\n", wantErr: "must not be negative"},
		{name: "bad ttl", content: "cache:\n  ttl: soon\n", wantErr: "ttl"},
		{name: "not yaml", content: "start: [\n", wantErr: "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecode_FlagStyleOverrides(t *testing.T) {
	cfg := config.Default()
	err := config.Decode(map[string]any{
		"final": map[string]any{"suffix": "Q"},
		"http":  map[string]any{"port": 9090},
	}, &cfg)
	require.NoError(t, err)
	assert.Equal(t, "Q", cfg.Final.Suffix)
	assert.Equal(t, "9090", cfg.HTTP.Port)
}
