package cache

import (
	"context"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*InMemorySearchCache, *time.Time) {
	t.Helper()
	cache := NewInMemorySearchCache(ttl, nil)
	t.Cleanup(cache.Stop)

	now := time.Now()
	cache.nowFunc = func() time.Time { return now }
	return cache, &now
}

func sampleEntry(fingerprint string) *connector.CacheEntry {
	return &connector.CacheEntry{
		Provider:    connector.ProviderApollo,
		Fingerprint: fingerprint,
		Query:       "solar",
		Results: []connector.NormalizedResult{
			{Name: "Morgan Reyes", Source: connector.ProviderApollo},
		},
	}
}

func TestInMemorySearchCache(t *testing.T) {
	ctx := context.Background()

	t.Run("put then get returns the entry", func(t *testing.T) {
		cache, _ := newTestCache(t, time.Minute)

		require.NoError(t, cache.Put(ctx, sampleEntry("fp-1")))
		entry, err := cache.Get(ctx, connector.ProviderApollo, "fp-1")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "solar", entry.Query)
	})

	t.Run("put stamps creation and expiry", func(t *testing.T) {
		cache, now := newTestCache(t, time.Minute)

		entry := sampleEntry("fp-2")
		require.NoError(t, cache.Put(ctx, entry))
		assert.Equal(t, *now, entry.CreatedAt)
		assert.Equal(t, now.Add(time.Minute), entry.ExpiresAt)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache, _ := newTestCache(t, time.Minute)

		entry, err := cache.Get(ctx, connector.ProviderApollo, "absent")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		cache, now := newTestCache(t, time.Minute)

		require.NoError(t, cache.Put(ctx, sampleEntry("fp-3")))

		*now = now.Add(59 * time.Second)
		entry, err := cache.Get(ctx, connector.ProviderApollo, "fp-3")
		require.NoError(t, err)
		assert.NotNil(t, entry)

		*now = now.Add(2 * time.Second)
		entry, err = cache.Get(ctx, connector.ProviderApollo, "fp-3")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("providers are isolated", func(t *testing.T) {
		cache, _ := newTestCache(t, time.Minute)

		require.NoError(t, cache.Put(ctx, sampleEntry("fp-4")))
		entry, err := cache.Get(ctx, connector.ProviderYelp, "fp-4")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("zero ttl uses the default", func(t *testing.T) {
		cache := NewInMemorySearchCache(0, nil)
		t.Cleanup(cache.Stop)
		assert.Equal(t, DefaultSearchTTL, cache.ttl)
	})
}
