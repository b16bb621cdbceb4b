package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront-be/internal/category"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"

	"go.uber.org/zap"
)

const DefaultTTL = 5 * time.Minute

// Cache is a shared second-level store for snapshots, consulted before the
// Source. Get returns ErrCacheMiss when nothing is stored.
type Cache interface {
	Get(ctx context.Context) (*Snapshot, error)
	Set(ctx context.Context, snap *Snapshot) error
}

type entry struct {
	snap      *Snapshot
	fetchedAt time.Time
}

// Store serves read requests from an in-memory snapshot and refreshes it
// from the cache or the source once it is older than the TTL.
type Store struct {
	source Source
	cache  Cache
	ttl    time.Duration
	now    func() time.Time
	stats  *metrics.CatalogStats

	mu      sync.RWMutex
	current *entry

	// serializes refreshes so a stale snapshot triggers one load, not one per request
	loadMu sync.Mutex
}

type Option func(*Store)

func WithCache(c Cache) Option {
	return func(s *Store) { s.cache = c }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(source Source, opts ...Option) *Store {
	s := &Store{
		source: source,
		ttl:    DefaultTTL,
		now:    time.Now,
		stats:  &metrics.CatalogStats{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProductsByCategory runs SelectProducts over the current snapshot.
func (s *Store) ProductsByCategory(ctx context.Context, slug string) ([]*product.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.stats.FilterCalls.Inc()
	products := SelectProducts(slug, snap.Products, snap.Categories)

	logger.FromCtx(ctx).Debug("products selected",
		zap.String("slug", slug),
		zap.Int("count", len(products)),
	)
	return products, nil
}

func (s *Store) Categories(ctx context.Context) ([]*category.Category, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

func (s *Store) Product(ctx context.Context, id string) (*product.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if p := FindProduct(id, snap.Products); p != nil {
		return p, nil
	}
	return s.lookupProduct(ctx, id)
}

// lookupProduct asks the source for a product created after the snapshot
// was taken. Sources without single-product reads report not found.
func (s *Store) lookupProduct(ctx context.Context, id string) (*product.Product, error) {
	lookup, ok := s.source.(ProductLookup)
	if !ok {
		return nil, product.ErrProductNotFound
	}

	p, err := lookup.LookupProduct(ctx, id)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, product.ErrProductNotFound), errors.Is(err, product.ErrProductIDRequired):
		return nil, product.ErrProductNotFound
	default:
		logger.FromCtx(ctx).Error("product lookup failed",
			zap.String("layer", "store"),
			zap.String("method", "lookupProduct"),
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
}

// Reload loads from the source unconditionally, skipping the cache read,
// and publishes the result.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	snap, err := s.loadFromSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	s.publish(snap)
	return snap, nil
}

func (s *Store) Stats() map[string]uint64 {
	return s.stats.Snapshot()
}

func (s *Store) fresh(e *entry) bool {
	return e != nil && s.now().Sub(e.fetchedAt) < s.ttl
}

func (s *Store) load() *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) publish(snap *Snapshot) {
	s.publishAt(snap, s.now())
}

// publishAt installs snap as if it had been fetched at fetchedAt. Cached
// snapshots keep the age they had when the source produced them.
func (s *Store) publishAt(snap *Snapshot, fetchedAt time.Time) {
	s.mu.Lock()
	s.current = &entry{snap: snap, fetchedAt: fetchedAt}
	s.mu.Unlock()
}

func (s *Store) snapshot(ctx context.Context) (*Snapshot, error) {
	if e := s.load(); s.fresh(e) {
		return e.snap, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// another caller may have refreshed while we waited
	stale := s.load()
	if s.fresh(stale) {
		return stale.snap, nil
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "store"),
		zap.String("method", "snapshot"),
	)

	if snap := s.loadFromCache(ctx); snap != nil {
		s.publishAt(snap, snap.LoadedAt)
		return snap, nil
	}

	snap, err := s.loadFromSource(ctx)
	if err != nil {
		if stale != nil {
			log.Warn("catalog refresh failed, serving stale snapshot",
				zap.Error(err),
				zap.Time("loaded_at", stale.snap.LoadedAt),
			)
			return stale.snap, nil
		}
		log.Error("catalog load failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	s.publish(snap)
	return snap, nil
}

func (s *Store) loadFromCache(ctx context.Context) *Snapshot {
	if s.cache == nil {
		return nil
	}

	snap, err := s.cache.Get(ctx)
	switch {
	case err == nil && snap != nil && s.fresh(&entry{snap: snap, fetchedAt: snap.LoadedAt}):
		s.stats.CacheHits.Inc()
		return snap
	case err == nil, errors.Is(err, ErrCacheMiss):
		s.stats.CacheMisses.Inc()
	default:
		s.stats.CacheMisses.Inc()
		logger.FromCtx(ctx).Warn("catalog cache read failed", zap.Error(err))
	}
	return nil
}

func (s *Store) loadFromSource(ctx context.Context) (*Snapshot, error) {
	timer := metrics.StartTimer()

	snap, err := s.source.Load(ctx)
	if err != nil {
		s.stats.SourceFailures.Inc()
		return nil, err
	}
	s.stats.SourceLoads.Inc()

	logger.FromCtx(ctx).Info("catalog loaded",
		zap.Int("categories", len(snap.Categories)),
		zap.Int("products", len(snap.Products)),
		zap.Duration("duration", timer.Duration()),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, snap); err != nil {
			logger.FromCtx(ctx).Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return snap, nil
}
