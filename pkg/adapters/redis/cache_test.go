package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lockstep/pkg/adapters/redis"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ports"
	"github.com/aretw0/lockstep/pkg/ups"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := newTestClient(t)
	cache := redis.NewFromClient(client)
	require.NoError(t, cache.Ping(context.Background()))
	ports.RunResultCacheContract(t, cache)
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	mr, client := newTestClient(t)
	cache := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "k", ups.Everything()))
	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Prefix(t *testing.T) {
	mr, client := newTestClient(t)
	cache := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "abc", ups.Finite([]uint64{4})))
	assert.True(t, mr.Exists("test:abc"))

	raw, err := mr.Get("test:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"stem_len":5,"stem":[4],"loop_len":1,"loop":[]}`, raw)
}

func TestRedisCache_RejectsCorruptEntries(t *testing.T) {
	mr, client := newTestClient(t)
	cache := redis.NewFromClient(client)
	require.NoError(t, mr.Set("lockstep:ups:bad", `{"stem_len":0,"stem":[],"loop_len":0,"loop":[]}`))

	_, err := cache.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ups.ErrZeroPeriod)
}
