package connector

// ---------------------------------------------------------------------------
// Provider represents an external data provider
// ---------------------------------------------------------------------------

// Provider identifies one of the supported external data providers.
// The set is closed; requests naming any other provider are rejected
// before any I/O happens.
type Provider string

const (
	// ProviderApollo represents the Apollo.io contact search API
	ProviderApollo Provider = "apollo"
	// ProviderGooglePlaces represents the Google Places business search API
	ProviderGooglePlaces Provider = "google_places"
	// ProviderYelp represents the Yelp Fusion business search API
	ProviderYelp Provider = "yelp"
	// ProviderHubSpot represents the HubSpot CRM API
	ProviderHubSpot Provider = "hubspot"
	// ProviderSalesforce represents the Salesforce CRM API
	ProviderSalesforce Provider = "salesforce"
)

// AllProviders returns the closed set of supported providers
func AllProviders() []Provider {
	return []Provider{
		ProviderApollo,
		ProviderGooglePlaces,
		ProviderYelp,
		ProviderHubSpot,
		ProviderSalesforce,
	}
}

// IsValid returns true if the provider is in the supported set
func (p Provider) IsValid() bool {
	switch p {
	case ProviderApollo, ProviderGooglePlaces, ProviderYelp,
		ProviderHubSpot, ProviderSalesforce:
		return true
	default:
		return false
	}
}

// String returns the string representation of Provider
func (p Provider) String() string {
	return string(p)
}

// DisplayName returns a human-readable name for the provider
func (p Provider) DisplayName() string {
	switch p {
	case ProviderApollo:
		return "Apollo.io"
	case ProviderGooglePlaces:
		return "Google Places"
	case ProviderYelp:
		return "Yelp"
	case ProviderHubSpot:
		return "HubSpot"
	case ProviderSalesforce:
		return "Salesforce"
	default:
		return string(p)
	}
}
