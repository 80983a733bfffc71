// Package cached wraps a siteconfig.Repository with a read-through cache
// for slug lookups.
package cached

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores encoded records by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Repository caches GetRecordBySlug results. Writes go to the inner
// repository first and then drop the cached entry, so a cache failure can
// only cost a round trip, never serve a record older than the last write
// from this process.
type Repository struct {
	inner  siteconfig.Repository
	cache  Cache
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// Option configures a cached Repository.
type Option func(*Repository)

// WithTTL sets the cache entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) {
		r.ttl = ttl
	}
}

// WithKeyPrefix sets the cache key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(r *Repository) {
		r.prefix = prefix
	}
}

// WithLogger sets the logger used for cache errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New wraps inner with cache.
func New(inner siteconfig.Repository, cache Cache, opts ...Option) *Repository {
	r := &Repository{
		inner:  inner,
		cache:  cache,
		ttl:    5 * time.Minute,
		prefix: "siteconfig:",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) key(slug string) string {
	return r.prefix + slug
}

func (r *Repository) CreateRecord(ctx context.Context, record *siteconfig.Record) error {
	if err := r.inner.CreateRecord(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx, record.Slug)
	return nil
}

func (r *Repository) GetRecordBySlug(ctx context.Context, slug string) (*siteconfig.Record, error) {
	data, err := r.cache.Get(ctx, r.key(slug))
	if err == nil {
		var record siteconfig.Record
		if jsonErr := json.Unmarshal(data, &record); jsonErr == nil {
			return &record, nil
		}
		r.logger.Warn("Dropping undecodable cache entry", "slug", slug)
		r.invalidate(ctx, slug)
	} else if !errors.Is(err, ErrCacheMiss) {
		r.logger.Warn("Cache read failed", "slug", slug, "error", err)
	}

	record, err := r.inner.GetRecordBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(record); err == nil {
		if err := r.cache.Set(ctx, r.key(slug), data, r.ttl); err != nil {
			r.logger.Warn("Cache write failed", "slug", slug, "error", err)
		}
	}
	return record, nil
}

func (r *Repository) UpdateRecord(ctx context.Context, record *siteconfig.Record) error {
	if err := r.inner.UpdateRecord(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx, record.Slug)
	return nil
}

// ListRecords always reads through to the inner repository.
func (r *Repository) ListRecords(ctx context.Context, params siteconfig.ListParams) ([]*siteconfig.Record, error) {
	return r.inner.ListRecords(ctx, params)
}

func (r *Repository) invalidate(ctx context.Context, slug string) {
	if err := r.cache.Delete(ctx, r.key(slug)); err != nil {
		r.logger.Warn("Cache invalidation failed", "slug", slug, "error", err)
	}
}
