package ports

import (
	"context"

	"github.com/aretw0/lockstep/pkg/ups"
)

// ResultCache memoizes trajectory sets. Cycle detection is deterministic, so
// a cached set stays valid for as long as its key does.
type ResultCache interface {
	// Get returns the set stored under key.
	// Returns domain.ErrCacheMiss if the key is absent.
	Get(ctx context.Context, key string) (*ups.UPS, error)

	// Put stores set under key, replacing any previous value.
	Put(ctx context.Context, key string, set *ups.UPS) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
