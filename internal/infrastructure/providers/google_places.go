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

const googlePlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

var googlePlacesSamples = []connector.RawRecord{
	{
		"place_id":          "places-sample-1",
		"name":              "Lakeside Roasters",
		"formatted_address": "214 Congress Ave, Austin, TX 78701",
		"geometry": map[string]any{
			"location": map[string]any{"lat": 30.2655, "lng": -97.7447},
		},
		"types": []any{"cafe", "food", "point_of_interest"},
	},
	{
		"place_id":          "places-sample-2",
		"name":              "Hilltop Hardware",
		"formatted_address": "38 S Lamar Blvd, Austin, TX 78704",
		"geometry": map[string]any{
			"location": map[string]any{"lat": 30.2565, "lng": -97.7636},
		},
		"types": []any{"hardware_store", "store"},
	},
}

// GooglePlacesClient searches businesses via the Places text search API
type GooglePlacesClient struct {
	baseClient
}

// NewGooglePlacesClient creates a new GooglePlacesClient
func NewGooglePlacesClient(timeout time.Duration, logger *zap.Logger) *GooglePlacesClient {
	return &GooglePlacesClient{
		baseClient: newBaseClient(connector.ProviderGooglePlaces, googlePlacesBaseURL, timeout, logger, googlePlacesSamples),
	}
}

// Search performs a text search. A nil credential serves sample data.
func (c *GooglePlacesClient) Search(ctx context.Context, query connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error) {
	return c.search(ctx, cred, func(ctx context.Context, secret string) (*http.Request, error) {
		params := url.Values{}
		params.Set("query", query.Query)
		params.Set("key", secret)
		if query.Location != nil {
			params.Set("location", fmt.Sprintf("%f,%f", query.Location.Lat, query.Location.Lng))
		}
		if radius, ok := query.Filters["radius"]; ok {
			params.Set("radius", radius)
		}

		return http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+"/textsearch/json?"+params.Encode(), nil)
	}, "results")
}
