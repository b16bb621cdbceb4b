package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/product"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRedis implements the two commands the cache uses.
type memRedis struct {
	redis.Cmdable
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	m.data[key] = string(value.([]byte))
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestSnapshotCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newMemRedis()
	c := NewSnapshotCache(rdb, time.Minute)

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, catalog.ErrCacheMiss)

	d := 15.0
	snap := &catalog.Snapshot{
		Categories: []*category.Category{{ID: "C1", Slug: "shoes", Subcategories: []*category.Subcategory{{ID: "C1-1"}}}},
		Products:   []*product.Product{{ID: "P1", Category: "C1-1", Discount: &d}},
		LoadedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Set(ctx, snap))
	assert.Equal(t, time.Minute, rdb.ttls[DefaultKey])

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C1-1", got.Categories[0].Subcategories[0].ID)
	assert.True(t, got.Products[0].OnSale())
	assert.True(t, snap.LoadedAt.Equal(got.LoadedAt))
}

func TestSnapshotCache_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("get failure", func(t *testing.T) {
		rdb := newMemRedis()
		rdb.getErr = errors.New("connection refused")

		_, err := NewSnapshotCache(rdb, time.Minute).Get(ctx)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, catalog.ErrCacheMiss)
	})

	t.Run("corrupt value", func(t *testing.T) {
		rdb := newMemRedis()
		rdb.data[DefaultKey] = "{not json"

		_, err := NewSnapshotCache(rdb, time.Minute).Get(ctx)
		assert.ErrorContains(t, err, "decode snapshot")
	})

	t.Run("set failure", func(t *testing.T) {
		rdb := newMemRedis()
		rdb.setErr = errors.New("readonly replica")

		err := NewSnapshotCache(rdb, time.Minute).Set(ctx, &catalog.Snapshot{})
		assert.Error(t, err)
	})
}

func TestNewClient(t *testing.T) {
	assert.Nil(t, NewClient("", ""))

	c := NewClient("localhost:6379", "")
	require.NotNil(t, c)
	assert.NoError(t, c.Close())
}
