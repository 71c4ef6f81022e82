package taxonomy

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memKV) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memKV) DelPrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func TestCachingLoaderServesFromCache(t *testing.T) {
	loader := newFakeLoader()
	kv := newMemKV()
	c := NewCachingLoader(loader, kv, 5*time.Minute, nil)
	ctx := context.Background()

	first, err := c.Categories(ctx, "s1")
	require.NoError(t, err)
	second, err := c.Categories(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loader.count("categories/s1"))
	assert.Equal(t, 5*time.Minute, kv.ttls["taxonomy:categories:s1"])
}

func TestCachingLoaderFallsThroughOnCacheProblems(t *testing.T) {
	loader := newFakeLoader()
	kv := newMemKV()
	c := NewCachingLoader(loader, kv, time.Minute, nil)
	ctx := context.Background()

	kv.data["taxonomy:sectors"] = []byte("{not json")
	sectors, err := c.Sectors(ctx)
	require.NoError(t, err)
	assert.Len(t, sectors, 3)

	kv.getErr = errors.New("redis down")
	_, err = c.Sectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.count("sectors"))
}

func TestCachingLoaderInvalidate(t *testing.T) {
	loader := newFakeLoader()
	kv := newMemKV()
	c := NewCachingLoader(loader, kv, time.Minute, nil)
	ctx := context.Background()

	_, _ = c.Sectors(ctx)
	_, _ = c.Categories(ctx, "s1")
	_, _ = c.Categories(ctx, "s2")
	_, _ = c.SubCategories(ctx, "c1")

	require.NoError(t, c.Invalidate(ctx, "s1", "c1"))
	assert.NotContains(t, kv.data, "taxonomy:sectors")
	assert.NotContains(t, kv.data, "taxonomy:categories:s1")
	assert.NotContains(t, kv.data, "taxonomy:subcategories:c1")
	assert.Contains(t, kv.data, "taxonomy:categories:s2")

	require.NoError(t, c.Flush(ctx))
	assert.Empty(t, kv.data)
}
