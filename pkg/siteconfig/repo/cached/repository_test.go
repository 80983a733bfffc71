package cached

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-site/pkg/siteconfig"
	"github.com/tendant/simple-site/pkg/siteconfig/repo/memory"
)

type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	failGet error
	failSet error
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet != nil {
		return nil, c.failGet
	}
	v, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet != nil {
		return c.failSet
	}
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type countingRepo struct {
	*memory.Repository
	gets int
}

func (r *countingRepo) GetRecordBySlug(ctx context.Context, slug string) (*siteconfig.Record, error) {
	r.gets++
	return r.Repository.GetRecordBySlug(ctx, slug)
}

func testRecord(slug string) *siteconfig.Record {
	now := time.Now().UTC()
	return &siteconfig.Record{
		ID:        uuid.New(),
		Slug:      slug,
		Niche:     siteconfig.NicheCleaning,
		Status:    siteconfig.StatusPreview,
		CreatedAt: now,
		UpdatedAt: now,
		Config:    siteconfig.Config{Slug: slug, Offer: siteconfig.Offer{ShortText: "v1"}},
	}
}

func TestRepository_ReadThrough(t *testing.T) {
	inner := &countingRepo{Repository: memory.New()}
	cache := newMapCache()
	repo := New(inner, cache, WithKeyPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, repo.CreateRecord(ctx, testRecord("elite-la")))

	for i := 0; i < 3; i++ {
		got, err := repo.GetRecordBySlug(ctx, "elite-la")
		require.NoError(t, err)
		assert.Equal(t, "v1", got.Config.Offer.ShortText)
	}
	assert.Equal(t, 1, inner.gets)
	assert.Contains(t, cache.data, "test:elite-la")
}

func TestRepository_UpdateInvalidates(t *testing.T) {
	inner := &countingRepo{Repository: memory.New()}
	repo := New(inner, newMapCache())
	ctx := context.Background()

	record := testRecord("elite-la")
	require.NoError(t, repo.CreateRecord(ctx, record))
	_, err := repo.GetRecordBySlug(ctx, "elite-la")
	require.NoError(t, err)

	record.Config.Offer.ShortText = "v2"
	require.NoError(t, repo.UpdateRecord(ctx, record))

	got, err := repo.GetRecordBySlug(ctx, "elite-la")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Config.Offer.ShortText)
	assert.Equal(t, 2, inner.gets)
}

func TestRepository_NotFoundIsNotCached(t *testing.T) {
	cache := newMapCache()
	repo := New(memory.New(), cache)

	_, err := repo.GetRecordBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, siteconfig.ErrNotFound)
	assert.Empty(t, cache.data)
}

func TestRepository_CacheFailuresFallThrough(t *testing.T) {
	cache := newMapCache()
	cache.failGet = errors.New("redis down")
	cache.failSet = errors.New("redis down")
	repo := New(memory.New(), cache)
	ctx := context.Background()

	require.NoError(t, repo.CreateRecord(ctx, testRecord("elite-la")))
	got, err := repo.GetRecordBySlug(ctx, "elite-la")
	require.NoError(t, err)
	assert.Equal(t, "elite-la", got.Slug)
}

func TestRepository_CorruptEntryDropped(t *testing.T) {
	cache := newMapCache()
	repo := New(memory.New(), cache)
	ctx := context.Background()

	require.NoError(t, repo.CreateRecord(ctx, testRecord("elite-la")))
	cache.data["siteconfig:elite-la"] = []byte("{not json")

	got, err := repo.GetRecordBySlug(ctx, "elite-la")
	require.NoError(t, err)
	assert.Equal(t, "elite-la", got.Slug)
	assert.NotEqual(t, "{not json", string(cache.data["siteconfig:elite-la"]))
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	cache, err := NewRedisCache(ctx, url)
	require.NoError(t, err)
	defer cache.Close()

	key := "siteconfig-test:" + uuid.NewString()
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, key, []byte("value"), time.Minute))
	v, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "value", string(v))

	require.NoError(t, cache.Delete(ctx, key))
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url")
	assert.Error(t, err)
}
