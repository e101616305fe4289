package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ups"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache
// implementation adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		set := ups.MustFromPrefix([]uint64{2, 7, 10, 13}, 9, 6)
		require.NoError(t, cache.Put(ctx, key, set), "Put should not return error")

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, set.Encode(), loaded.Encode())
	})

	t.Run("Put Replaces", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, ups.Everything()))
		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 1, 2}, loaded.Take(3))
	})

	t.Run("Empty Set", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key+"-empty", ups.Finite(nil)))
		loaded, err := cache.Get(ctx, key+"-empty")
		require.NoError(t, err)
		assert.True(t, loaded.IsEmpty())
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")
		require.NoError(t, cache.Delete(ctx, key+"-empty"))

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting twice should not fail")
	})
}
