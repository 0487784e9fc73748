package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

const yelpBaseURL = "https://api.yelp.com/v3"

var yelpSamples = []connector.RawRecord{
	{
		"id":   "yelp-sample-1",
		"name": "Verde Kitchen",
		"location": map[string]any{
			"address1": "501 E 6th St",
			"city":     "Austin",
			"state":    "TX",
		},
		"display_phone": "(512) 555-0173",
		"url":           "https://yelp.example.com/biz/verde-kitchen",
		"categories": []any{
			map[string]any{"title": "New American"},
		},
	},
	{
		"id":   "yelp-sample-2",
		"name": "Copper Kettle Brewing",
		"location": map[string]any{
			"address1": "1100 Barton Springs Rd",
			"city":     "Austin",
			"state":    "TX",
		},
		"display_phone": "(512) 555-0126",
		"url":           "https://yelp.example.com/biz/copper-kettle",
		"categories": []any{
			map[string]any{"title": "Brewpubs"},
		},
	},
}

// YelpClient searches local businesses via the Yelp Fusion API
type YelpClient struct {
	baseClient
}

// NewYelpClient creates a new YelpClient
func NewYelpClient(timeout time.Duration, logger *zap.Logger) *YelpClient {
	return &YelpClient{
		baseClient: newBaseClient(connector.ProviderYelp, yelpBaseURL, timeout, logger, yelpSamples),
	}
}

// Search performs a business search. A nil credential serves sample data.
func (c *YelpClient) Search(ctx context.Context, query connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error) {
	return c.search(ctx, cred, func(ctx context.Context, secret string) (*http.Request, error) {
		params := url.Values{}
		params.Set("term", query.Query)
		if query.Location != nil {
			params.Set("latitude", fmt.Sprintf("%f", query.Location.Lat))
			params.Set("longitude", fmt.Sprintf("%f", query.Location.Lng))
		} else if loc, ok := query.Filters["location"]; ok {
			params.Set("location", loc)
		}
		if category, ok := query.Filters["category"]; ok {
			params.Set("categories", category)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+"/businesses/search?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+secret)
		return req, nil
	}, "businesses")
}
