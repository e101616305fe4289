package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lockstep/internal/cli"
	"github.com/aretw0/lockstep/internal/config"
	"github.com/aretw0/lockstep/internal/testutils"
	"github.com/aretw0/lockstep/pkg/adapters/memory"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_MemoryCache(t *testing.T) {
	app, err := cli.Setup(context.Background(), config.Default())
	require.NoError(t, err)
	defer app.Close()

	_, ok := app.Cache.(*memory.Cache)
	assert.True(t, ok)

	net, err := app.LoadNetwork("-", strings.NewReader(testutils.GhostNetwork))
	require.NoError(t, err)
	sol, err := app.Solver().Solve(context.Background(), net)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), sol.Steps)
}

func TestSetup_NoCache(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = config.CacheNone
	app, err := cli.Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, app.Cache)
	assert.NoError(t, app.Close())
}

func TestSetup_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Cache.Backend = config.CacheRedis
	cfg.Cache.Addr = mr.Addr()
	cfg.Cache.Prefix = "test:"

	app, err := cli.Setup(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	path := filepath.Join(t.TempDir(), "network.txt")
	require.NoError(t, os.WriteFile(path, []byte(testutils.GhostNetwork), 0o644))
	net, err := app.LoadNetwork(path, nil)
	require.NoError(t, err)

	_, err = app.Solver().Solve(context.Background(), net)
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 2)
	for _, k := range mr.Keys() {
		assert.True(t, strings.HasPrefix(k, "test:"), k)
	}

	// A second solve is served from redis.
	sol, err := app.Solver().Solve(context.Background(), net)
	require.NoError(t, err)
	for _, tr := range sol.Trajectories {
		assert.True(t, tr.Cached, tr.Start)
	}
}

func TestSetup_RedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Cache.Backend = config.CacheRedis
	cfg.Cache.Addr = addr
	_, err = cli.Setup(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to reach redis")
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(cli.FlagLogLevel, "info", "")
	fs.String(cli.FlagStart, "suffix=A", "")
	fs.String(cli.FlagFinal, "suffix=Z", "")
	fs.Int(cli.FlagConcurrency, 0, "")
	fs.String(cli.FlagCache, "memory", "")
	fs.String(cli.FlagRedisAddr, "", "")
	fs.String(cli.FlagPort, "8080", "")
	return fs
}

func TestApplyFlags(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{
		"--start", "name=AAA",
		"--concurrency", "3",
		"--cache", "redis",
		"--redis-addr", "cache:6379",
		"--port", "9000",
	}))

	cfg := config.Default()
	cfg.Final = domain.ByName("ZZZ")
	require.NoError(t, cli.ApplyFlags(fs, &cfg))

	assert.Equal(t, domain.ByName("AAA"), cfg.Start)
	assert.Equal(t, domain.ByName("ZZZ"), cfg.Final, "unset flags keep file values")
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, config.CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Addr)
	assert.Equal(t, "9000", cfg.HTTP.Port)
}

func TestApplyFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad selector", args: []string{"--final", "prefix=Z"}},
		{name: "bad backend", args: []string{"--cache", "disk"}},
		{name: "bad level", args: []string{"--log-level", "chatty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSet()
			require.NoError(t, fs.Parse(tt.args))
			cfg := config.Default()
			assert.Error(t, cli.ApplyFlags(fs, &cfg))
		})
	}
}
