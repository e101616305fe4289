package memory

import (
	"context"
	"sync"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ups"
)

// Cache implements ports.ResultCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]*ups.UPS
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*ups.UPS),
	}
}

// Get retrieves a set from memory. Sets are immutable, so the stored
// pointer is handed out directly.
func (c *Cache) Get(ctx context.Context, key string) (*ups.UPS, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return set, nil
}

// Put stores the set in memory.
func (c *Cache) Put(ctx context.Context, key string, set *ups.UPS) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = set
	return nil
}

// Delete removes the set.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached sets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
