package cli

import (
	"github.com/aretw0/lockstep/internal/config"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/spf13/pflag"
)

// Flag names shared by the commands.
const (
	FlagConfig      = "config"
	FlagLogLevel    = "log-level"
	FlagStart       = "start"
	FlagFinal       = "final"
	FlagConcurrency = "concurrency"
	FlagCache       = "cache"
	FlagRedisAddr   = "redis-addr"
	FlagPort        = "port"
)

// overrideKeys maps flags to config keys.
var overrideKeys = map[string][]string{
	FlagLogLevel:    {"log_level"},
	FlagConcurrency: {"concurrency"},
	FlagCache:       {"cache", "backend"},
	FlagRedisAddr:   {"cache", "addr"},
	FlagPort:        {"http", "port"},
}

// ApplyFlags overrides cfg with every flag the user set explicitly. Flags
// left at their default keep the value from the config file.
func ApplyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	raw := map[string]any{}
	var firstErr error
	flags.Visit(func(f *pflag.Flag) {
		if firstErr != nil {
			return
		}
		switch f.Name {
		case FlagStart, FlagFinal:
			sel, err := domain.ParseSelector(f.Value.String())
			if err != nil {
				firstErr = err
				return
			}
			// A parsed selector replaces both fields.
			raw[f.Name] = map[string]any{"name": sel.Name, "suffix": sel.Suffix}
		default:
			if path, ok := overrideKeys[f.Name]; ok {
				setPath(raw, path, f.Value.String())
			}
		}
	})
	if firstErr != nil {
		return firstErr
	}
	if len(raw) == 0 {
		return nil
	}
	if err := config.Decode(raw, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func setPath(m map[string]any, path []string, value string) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}
