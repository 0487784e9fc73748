package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

const salesforceBaseURL = "https://login.salesforce.example.com"

var salesforceSamples = []connector.RawRecord{
	{
		"Id":          "salesforce-sample-1",
		"FirstName":   "Elena",
		"LastName":    "Vasquez",
		"Email":       "elena.vasquez@meridian.example.com",
		"Company":     "Meridian Group",
		"Phone":       "+1 206-555-0164",
		"MailingCity": "Seattle",
	},
	{
		"Id":          "salesforce-sample-2",
		"FirstName":   "Robert",
		"LastName":    "Okafor",
		"Email":       "r.okafor@stonebridge.example.com",
		"Company":     "Stonebridge Capital",
		"Phone":       "+1 425-555-0133",
		"MailingCity": "Bellevue",
	},
}

// SalesforceClient searches leads via the Salesforce REST query API
type SalesforceClient struct {
	baseClient
}

// NewSalesforceClient creates a new SalesforceClient
func NewSalesforceClient(timeout time.Duration, logger *zap.Logger) *SalesforceClient {
	return &SalesforceClient{
		baseClient: newBaseClient(connector.ProviderSalesforce, salesforceBaseURL, timeout, logger, salesforceSamples),
	}
}

// Search performs a lead search. A nil credential serves sample data.
func (c *SalesforceClient) Search(ctx context.Context, query connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error) {
	return c.search(ctx, cred, func(ctx context.Context, secret string) (*http.Request, error) {
		soql := fmt.Sprintf(
			"SELECT Id, FirstName, LastName, Email, Company, Phone, MailingCity, MailingState FROM Lead WHERE Name LIKE '%%%s%%' LIMIT 25",
			escapeSOQL(query.Query),
		)
		params := url.Values{}
		params.Set("q", soql)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+"/services/data/v58.0/query?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+secret)
		return req, nil
	}, "records")
}

// escapeSOQL escapes single quotes and backslashes in SOQL literals
func escapeSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
