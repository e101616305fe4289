package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/compiler"
	"github.com/aretw0/lockstep/internal/config"
	"github.com/aretw0/lockstep/internal/logging"
	"github.com/aretw0/lockstep/internal/metrics"
	"github.com/aretw0/lockstep/pkg/adapters/memory"
	"github.com/aretw0/lockstep/pkg/adapters/redis"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ports"
)

// App holds the collaborators shared by every command.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Cache   ports.ResultCache
	Parser  *compiler.Parser

	closers []func() error
}

// Setup builds an App from cfg. Close releases what it opened.
func Setup(ctx context.Context, cfg config.Config) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app := &App{
		Config:  cfg,
		Logger:  logging.New(level),
		Metrics: metrics.New(),
		Parser:  compiler.NewParser(),
	}
	if err := app.openCache(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) openCache(ctx context.Context) error {
	c := a.Config.Cache
	switch c.Backend {
	case config.CacheNone:
		return nil
	case config.CacheMemory:
		a.Cache = memory.NewCache()
		return nil
	case config.CacheRedis:
		var opts []redis.Option
		if c.TTL > 0 {
			opts = append(opts, redis.WithTTL(c.TTL))
		}
		if c.Prefix != "" {
			opts = append(opts, redis.WithPrefix(c.Prefix))
		}
		rc := redis.New(c.Addr, c.Password, c.DB, opts...)
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return fmt.Errorf("failed to reach redis at %s: %w", c.Addr, err)
		}
		a.Logger.Debug("Using redis result cache", "addr", c.Addr, "db", c.DB)
		a.Cache = rc
		a.closers = append(a.closers, rc.Close)
		return nil
	default:
		return fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

// SolverOptions returns the options every solver built by the app shares.
func (a *App) SolverOptions() []lockstep.Option {
	opts := []lockstep.Option{
		lockstep.WithLogger(a.Logger),
		lockstep.WithMetrics(a.Metrics),
		lockstep.WithConcurrency(a.Config.Concurrency),
	}
	if a.Cache != nil {
		opts = append(opts, lockstep.WithCache(a.Cache))
	}
	return opts
}

// Solver builds a solver using the configured selectors.
func (a *App) Solver() *lockstep.Solver {
	opts := append(a.SolverOptions(),
		lockstep.WithStart(a.Config.Start),
		lockstep.WithFinal(a.Config.Final),
	)
	return lockstep.New(opts...)
}

// LoadNetwork reads a network from path, or from stdin when path is "-".
func (a *App) LoadNetwork(path string, stdin io.Reader) (*domain.Network, error) {
	if path != "-" {
		return a.Parser.ParseFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read network from stdin: %w", err)
	}
	return a.Parser.Parse(data)
}

// Close releases the cache connection, if any.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
