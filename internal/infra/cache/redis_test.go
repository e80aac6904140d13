package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

func setupTestCache(t *testing.T) (*LookupCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cache := &LookupCache{
		Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		TTL:   10 * time.Minute,
	}
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestLookupCacheMissThenHit(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	items, hit, err := cache.GetLookups(ctx, "industries")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, items)

	want := []entity.Lookup{{ID: "1", DisplayValue: "SaaS"}, {ID: "2", DisplayValue: "Fintech"}}
	require.NoError(t, cache.SetLookups(ctx, "industries", want))

	items, hit, err = cache.GetLookups(ctx, "industries")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, items)
}

func TestLookupCacheExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetLookups(ctx, "stacks", []entity.Lookup{{ID: "s1", DisplayValue: "Go"}}))
	assert.Equal(t, 10*time.Minute, mr.TTL(keyPrefix+"stacks"))

	mr.FastForward(11 * time.Minute)
	_, hit, err := cache.GetLookups(ctx, "stacks")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestLookupCacheInvalidate(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetLookups(ctx, "profiles", []entity.Lookup{}))
	require.NoError(t, cache.Invalidate(ctx, "profiles"))
	assert.False(t, mr.Exists(keyPrefix+"profiles"))
}

func TestLookupCacheCorruptValue(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set(keyPrefix+"industries", "{broken"))

	_, hit, err := cache.GetLookups(context.Background(), "industries")
	assert.Error(t, err)
	assert.False(t, hit)
}
