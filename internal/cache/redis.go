package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/catalog"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "storefront:catalog:snapshot"

// SnapshotCache stores the catalog snapshot as one JSON value in Redis so
// several API instances share a single load from the database.
type SnapshotCache struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

func NewSnapshotCache(rdb redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, key: DefaultKey, ttl: ttl}
}

// NewClient returns nil when addr is empty: the cache is optional.
func NewClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func (c *SnapshotCache) Get(ctx context.Context) (*catalog.Snapshot, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, catalog.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", c.key, err)
	}
	return decode(raw)
}

func (c *SnapshotCache) Set(ctx context.Context, snap *catalog.Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.key, err)
	}
	return nil
}

func encode(snap *catalog.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (*catalog.Snapshot, error) {
	var snap catalog.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
