package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envCred(provider connector.Provider) *connector.Credential {
	return &connector.Credential{
		Source: provider,
		From:   connector.CredentialSourceEnvironment,
		APIKey: "test-key",
	}
}

func allClients() []connector.Client {
	return []connector.Client{
		NewApolloClient(time.Second, nil),
		NewGooglePlacesClient(time.Second, nil),
		NewYelpClient(time.Second, nil),
		NewHubSpotClient(time.Second, nil),
		NewSalesforceClient(time.Second, nil),
	}
}

func TestClients_SampleMode(t *testing.T) {
	ctx := context.Background()
	query := connector.SearchQuery{Query: "solar"}

	t.Run("nil credential serves exactly two sample records", func(t *testing.T) {
		for _, client := range allClients() {
			records, err := client.Search(ctx, query, nil)
			require.NoError(t, err, client.Provider())
			assert.Len(t, records, 2, client.Provider())
		}
	})

	t.Run("sample records are stable across calls", func(t *testing.T) {
		for _, client := range allClients() {
			first, err := client.Search(ctx, query, nil)
			require.NoError(t, err)
			second, err := client.Search(ctx, query, nil)
			require.NoError(t, err)
			assert.Equal(t, first, second, client.Provider())
		}
	})

	t.Run("mutating a returned record does not poison the canonical set", func(t *testing.T) {
		client := NewApolloClient(time.Second, nil)
		first, err := client.Search(ctx, query, nil)
		require.NoError(t, err)
		first[0]["first_name"] = "mutated"

		second, err := client.Search(ctx, query, nil)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", second[0]["first_name"])
	})
}

func TestClients_LiveCalls(t *testing.T) {
	ctx := context.Background()
	query := connector.SearchQuery{Query: "solar"}

	t.Run("live response is parsed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"people": [{"id": "p1", "first_name": "Live"}]}`))
		}))
		defer server.Close()

		client := NewApolloClient(time.Second, nil)
		client.baseURL = server.URL

		records, err := client.Search(ctx, query, envCred(connector.ProviderApollo))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Live", records[0]["first_name"])
	})

	t.Run("transport failure degrades to samples", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // immediately unreachable

		client := NewYelpClient(time.Second, nil)
		client.baseURL = server.URL

		records, err := client.Search(ctx, query, envCred(connector.ProviderYelp))
		require.NoError(t, err)
		assert.Equal(t, yelpSamples, records)
	})

	t.Run("malformed body degrades to samples", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewHubSpotClient(time.Second, nil)
		client.baseURL = server.URL

		records, err := client.Search(ctx, query, envCred(connector.ProviderHubSpot))
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("auth failure surfaces as unauthorized", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))

			client := NewSalesforceClient(time.Second, nil)
			client.baseURL = server.URL

			_, err := client.Search(ctx, query, envCred(connector.ProviderSalesforce))
			assert.ErrorIs(t, err, connector.ErrUnauthorized)
			server.Close()
		}
	})

	t.Run("provider rate limit surfaces as rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewGooglePlacesClient(time.Second, nil)
		client.baseURL = server.URL

		_, err := client.Search(ctx, query, envCred(connector.ProviderGooglePlaces))
		assert.ErrorIs(t, err, connector.ErrRateLimited)
	})

	t.Run("server error surfaces as provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewApolloClient(time.Second, nil)
		client.baseURL = server.URL

		_, err := client.Search(ctx, query, envCred(connector.ProviderApollo))
		assert.ErrorIs(t, err, connector.ErrProviderError)
	})

	t.Run("missing records key yields empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "OK"}`))
		}))
		defer server.Close()

		client := NewApolloClient(time.Second, nil)
		client.baseURL = server.URL

		records, err := client.Search(ctx, query, envCred(connector.ProviderApollo))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
