package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	radix "github.com/mediocregopher/radix/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/datamodels/product"
)

func newTestCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	pool, err := radix.NewPool("tcp", s.Addr(), 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	return NewProductCache(pool, time.Minute), s
}

func TestProductCacheRoundTrip(t *testing.T) {
	cache, s := newTestCache(t)
	ctx := context.Background()

	_, hit, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	list := []*product.Product{
		{ID: 1, Title: "Laptop", Price: 1_200_000, Category: "Electronics"},
		{ID: 3, Title: "T-shirt", Price: 150_000, Category: "Clothing"},
	}
	require.NoError(t, cache.SetAll(ctx, list))
	assert.Equal(t, time.Minute, s.TTL(productListKey))

	got, hit, err := cache.GetAll(ctx)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 2)
	assert.Equal(t, "T-shirt", got[1].Title)

	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, s.Exists(productListKey))
}

func TestProductCacheEmptyListIsAHit(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetAll(ctx, []*product.Product{}))
	got, hit, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, got)
}

func TestProductCacheDropsCorruptEntry(t *testing.T) {
	cache, s := newTestCache(t)
	require.NoError(t, s.Set(productListKey, "{not json"))

	_, hit, err := cache.GetAll(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, s.Exists(productListKey))
}

func TestProductCacheExpires(t *testing.T) {
	cache, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetAll(ctx, []*product.Product{{ID: 1, Title: "Laptop"}}))
	s.FastForward(2 * time.Minute)

	_, hit, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}
