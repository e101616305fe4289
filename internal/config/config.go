package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/lockstep/internal/logging"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "lockstep.yaml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds every setting of the command line and the server.
type Config struct {
	Start       domain.Selector `mapstructure:"start"`
	Final       domain.Selector `mapstructure:"final"`
	LogLevel    string          `mapstructure:"log_level"`
	Concurrency int             `mapstructure:"concurrency"`
	Cache       CacheConfig     `mapstructure:"cache"`
	HTTP        HTTPConfig      `mapstructure:"http"`
}

// CacheConfig selects and configures the trajectory result cache.
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Start:    domain.BySuffix(domain.DefaultStartSuffix),
		Final:    domain.BySuffix(domain.DefaultFinalSuffix),
		LogLevel: "warn",
		Cache: CacheConfig{
			Backend: CacheMemory,
			Addr:    "localhost:6379",
		},
		HTTP: HTTPConfig{Port: "8080"},
	}
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode merges raw settings into cfg. Unknown keys are rejected, durations
// may be written as strings such as "10m", and scalars are converted
// loosely.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks settings that cannot be expressed by types alone.
func (c Config) Validate() error {
	if c.Start.IsZero() {
		return errors.New("start selector needs a name or a suffix")
	}
	if c.Final.IsZero() {
		return errors.New("final selector needs a name or a suffix")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.Addr == "" {
			return errors.New("redis cache needs an address")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}
