package connector

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture(client *fakeClient, limiter connector.RateLimiter, envKeys map[connector.Provider]string) (*SearchService, *memoryCache) {
	registry := &fakeRegistry{clients: map[connector.Provider]connector.Client{
		client.provider: client,
	}}
	cache := newMemoryCache()
	resolver := NewCredentialResolver(envKeys, nil, nil)
	svc := NewSearchService(registry, resolver, cache, limiter, nil)
	return svc, cache
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	sample := []connector.RawRecord{
		{"id": "apollo-sample-1", "name": "Morgan Reyes", "email": "morgan@example.com"},
		{"id": "apollo-sample-2", "name": "Priya Natarajan", "email": "priya@example.com"},
	}

	t.Run("search without credentials flags mock data", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo, records: sample}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 10}, nil)

		resp, err := svc.Search(ctx, userID, SearchRequest{
			Provider: connector.ProviderApollo,
			Query:    "solar",
		})

		require.NoError(t, err)
		assert.Len(t, resp.Data, 2)
		assert.True(t, resp.UsingMockData)
		assert.False(t, resp.Cached)
		assert.Contains(t, resp.Message, "Apollo.io")
	})

	t.Run("search with environment key is live", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo, records: sample}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 10},
			map[connector.Provider]string{connector.ProviderApollo: "key"})

		resp, err := svc.Search(ctx, userID, SearchRequest{
			Provider: connector.ProviderApollo,
			Query:    "solar",
		})

		require.NoError(t, err)
		assert.False(t, resp.UsingMockData)
		assert.Empty(t, resp.Message)
		require.NotNil(t, client.lastCred)
		assert.Equal(t, "key", client.lastCred.Secret())
	})

	t.Run("second identical search is served from cache", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo, records: sample}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 10}, nil)

		req := SearchRequest{Provider: connector.ProviderApollo, Query: "solar"}
		first, err := svc.Search(ctx, userID, req)
		require.NoError(t, err)
		second, err := svc.Search(ctx, userID, req)
		require.NoError(t, err)

		assert.False(t, first.Cached)
		assert.True(t, second.Cached)
		assert.Equal(t, first.Data, second.Data)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("cache hit bypasses the rate limiter", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo, records: sample}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 1}, nil)

		req := SearchRequest{Provider: connector.ProviderApollo, Query: "solar"}
		_, err := svc.Search(ctx, userID, req)
		require.NoError(t, err)

		// The only rate-limit slot is spent; a cached repeat still works.
		resp, err := svc.Search(ctx, userID, req)
		require.NoError(t, err)
		assert.True(t, resp.Cached)
	})

	t.Run("rate-limited request does not populate the cache", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo, records: sample}
		svc, cache := newSearchFixture(client, &fakeLimiter{remaining: 0}, nil)

		_, err := svc.Search(ctx, userID, SearchRequest{
			Provider: connector.ProviderApollo,
			Query:    "solar",
		})

		assert.ErrorIs(t, err, connector.ErrRateLimited)
		assert.Zero(t, cache.puts)
		assert.Zero(t, client.calls)
	})

	t.Run("invalid provider is rejected before any work", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo, records: sample}
		svc, cache := newSearchFixture(client, &fakeLimiter{remaining: 10}, nil)

		_, err := svc.Search(ctx, userID, SearchRequest{
			Provider: connector.Provider("linkedin"),
			Query:    "solar",
		})

		assert.ErrorIs(t, err, connector.ErrInvalidProvider)
		assert.Zero(t, cache.puts)
	})

	t.Run("client error propagates and is not cached", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo, err: connector.ErrUnauthorized}
		svc, cache := newSearchFixture(client, &fakeLimiter{remaining: 10}, nil)

		_, err := svc.Search(ctx, userID, SearchRequest{
			Provider: connector.ProviderApollo,
			Query:    "solar",
		})

		assert.ErrorIs(t, err, connector.ErrUnauthorized)
		assert.Zero(t, cache.puts)
	})
}

func TestSearchService_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("configured via environment key", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderApollo}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 10},
			map[connector.Provider]string{connector.ProviderApollo: "key"})

		status, err := svc.Status(ctx, uuid.Nil, connector.ProviderApollo)
		require.NoError(t, err)
		assert.True(t, status.Configured)
		assert.True(t, status.HasEnvironmentKey)
		assert.False(t, status.HasUserToken)
		assert.Equal(t, "active", status.Status)
	})

	t.Run("not configured", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderYelp}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 10}, nil)

		status, err := svc.Status(ctx, uuid.Nil, connector.ProviderYelp)
		require.NoError(t, err)
		assert.False(t, status.Configured)
		assert.Equal(t, "not_configured", status.Status)
	})

	t.Run("invalid provider", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderYelp}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 10}, nil)

		_, err := svc.Status(ctx, uuid.Nil, connector.Provider("linkedin"))
		assert.ErrorIs(t, err, connector.ErrInvalidProvider)
	})

	t.Run("status all covers every provider", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderYelp}
		svc, _ := newSearchFixture(client, &fakeLimiter{remaining: 10}, nil)

		statuses := svc.StatusAll(ctx, uuid.Nil)
		assert.Len(t, statuses, len(connector.AllProviders()))
	})
}
