// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsaka/atsaka-web/internal/model"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(RedisOptions{
		URL:        "redis://" + mr.Addr(),
		Prefix:     "test:",
		DefaultTTL: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

// exerciseCache runs the shared contract against a backend.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrCacheMiss), "expected ErrCacheMiss, got %v", err)

	require.NoError(t, c.Set(ctx, "catalog:products", []byte("p"), 0))
	require.NoError(t, c.Set(ctx, "catalog:gallery", []byte("g"), 0))
	require.NoError(t, c.Set(ctx, "other", []byte("o"), 0))

	got, err := c.Get(ctx, "catalog:products")
	require.NoError(t, err)
	assert.Equal(t, "p", string(got))

	require.NoError(t, c.Delete(ctx, "catalog:products"))
	_, err = c.Get(ctx, "catalog:products")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.DeleteByPrefix(ctx, "catalog:"))
	_, err = c.Get(ctx, "catalog:gallery")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "other")
	assert.NoError(t, err)

	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Close())
	_, err = c.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrCacheClosed)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache(time.Minute, 0))
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestMemoryCache_ReturnsCopy(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	v := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", v, 0))
	v[0] = 'x'

	got, _ := c.Get(ctx, "k")
	got[1] = 'y'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestRedisCache(t *testing.T) {
	c, _ := newRedisCache(t)
	exerciseCache(t, c)
}

func TestRedisCache_UsesPrefixAndTTL(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	assert.True(t, mr.Exists("test:k"))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(2 * time.Minute)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	c, backend := New(Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute}, nil)
	defer func() { _ = c.Close() }()

	assert.Equal(t, BackendMemory, backend)
	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}

func TestNew_UsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c, backend := New(Config{RedisURL: "redis://" + mr.Addr(), Prefix: "atsaka:"}, nil)
	defer func() { _ = c.Close() }()

	assert.Equal(t, BackendRedis, backend)
}

func TestCatalogCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	cc := NewCatalogCache(c, time.Minute, nil)
	ctx := context.Background()

	loads := 0
	load := func(context.Context) ([]model.Product, error) {
		loads++
		return []model.Product{{ID: 1, Name: "Pompa", Slug: "pompa", Features: []string{"a"}}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := cc.Products(ctx, load)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "pompa", got[0].Slug)
		assert.Equal(t, []string{"a"}, got[0].Features)
	}
	assert.Equal(t, 1, loads, "list should be loaded once while cached")

	cc.InvalidateProducts(ctx)
	_, err := cc.Products(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)

	cc.InvalidateAll(ctx)
	_, _ = cc.Products(ctx, load)
	assert.Equal(t, 3, loads)
}

func TestCatalogCache_LoadErrorNotCached(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	cc := NewCatalogCache(c, time.Minute, nil)
	ctx := context.Background()

	boom := errors.New("db down")
	_, err := cc.Categories(ctx, func(context.Context) ([]model.Category, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	got, err := cc.Categories(ctx, func(context.Context) ([]model.Category, error) {
		return []model.Category{{Slug: "pump"}}, nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
