package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

const apolloBaseURL = "https://api.apollo.io/v1"

// apolloSamples is the fixed sample set served when no credential is
// configured. Exactly two records, byte-stable across calls.
var apolloSamples = []connector.RawRecord{
	{
		"id":                "apollo-sample-1",
		"first_name":        "Morgan",
		"last_name":         "Reyes",
		"email":             "morgan.reyes@brightpath.example.com",
		"organization_name": "BrightPath Analytics",
		"phone_number":      "+1 512-555-0142",
		"linkedin_url":      "https://linkedin.example.com/in/morgan-reyes",
	},
	{
		"id":                "apollo-sample-2",
		"first_name":        "Priya",
		"last_name":         "Natarajan",
		"email":             "priya.n@helioworks.example.com",
		"organization_name": "HelioWorks Energy",
		"phone_number":      "+1 415-555-0198",
		"linkedin_url":      "https://linkedin.example.com/in/priya-natarajan",
	},
}

// ApolloClient searches people and organizations via the Apollo.io API
type ApolloClient struct {
	baseClient
}

// NewApolloClient creates a new ApolloClient
func NewApolloClient(timeout time.Duration, logger *zap.Logger) *ApolloClient {
	return &ApolloClient{
		baseClient: newBaseClient(connector.ProviderApollo, apolloBaseURL, timeout, logger, apolloSamples),
	}
}

// Search performs a people search. A nil credential serves sample data.
func (c *ApolloClient) Search(ctx context.Context, query connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error) {
	return c.search(ctx, cred, func(ctx context.Context, secret string) (*http.Request, error) {
		payload := map[string]any{
			"q_keywords": query.Query,
			"page":       1,
			"per_page":   25,
		}
		for k, v := range query.Filters {
			payload[k] = v
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mixed_people/search", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Api-Key", secret)
		return req, nil
	}, "people")
}
