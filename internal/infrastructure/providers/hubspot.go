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

const hubspotBaseURL = "https://api.hubapi.com"

var hubspotSamples = []connector.RawRecord{
	{
		"id": "hubspot-sample-1",
		"properties": map[string]any{
			"firstname": "Dana",
			"lastname":  "Whitfield",
			"email":     "dana.whitfield@crestline.example.com",
			"company":   "Crestline Logistics",
			"phone":     "+1 303-555-0117",
			"city":      "Denver",
			"state":     "CO",
		},
	},
	{
		"id": "hubspot-sample-2",
		"properties": map[string]any{
			"firstname": "Tomas",
			"lastname":  "Herrera",
			"email":     "tomas.herrera@quillsoft.example.com",
			"company":   "QuillSoft",
			"phone":     "+1 720-555-0189",
			"city":      "Boulder",
			"state":     "CO",
		},
	},
}

// HubSpotClient searches CRM contacts via the HubSpot v3 search API
type HubSpotClient struct {
	baseClient
}

// NewHubSpotClient creates a new HubSpotClient
func NewHubSpotClient(timeout time.Duration, logger *zap.Logger) *HubSpotClient {
	return &HubSpotClient{
		baseClient: newBaseClient(connector.ProviderHubSpot, hubspotBaseURL, timeout, logger, hubspotSamples),
	}
}

// Search performs a contact search. A nil credential serves sample data.
func (c *HubSpotClient) Search(ctx context.Context, query connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error) {
	return c.search(ctx, cred, func(ctx context.Context, secret string) (*http.Request, error) {
		payload := map[string]any{
			"query": query.Query,
			"limit": 25,
			"properties": []string{
				"firstname", "lastname", "email", "company", "phone", "website", "city", "state",
			},
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/crm/v3/objects/contacts/search", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+secret)
		return req, nil
	}, "results")
}
