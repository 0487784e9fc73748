package connector

import "context"

// Client is the port interface for one external provider. Concrete
// adapters live in the infrastructure layer.
//
// Search degrades rather than fails: with a nil credential, or when the
// live call errors at the transport level, implementations return the
// provider's fixed sample set. An error return is reserved for the
// cases a client deliberately raises (see ClassifyStatus).
type Client interface {
	// Provider returns the provider this client handles
	Provider() Provider

	// Search performs a provider search. cred may be nil (sample mode).
	Search(ctx context.Context, query SearchQuery, cred *Credential) ([]RawRecord, error)
}

// Registry resolves a provider identity to its client. Lookup fails
// fast with ErrInvalidProvider for anything outside the closed set.
type Registry interface {
	// Client returns the client for the given provider
	Client(provider Provider) (Client, error)

	// Clients returns all registered clients
	Clients() []Client
}

// RateLimiter bounds request volume per (provider, user) key.
// The in-process implementation uses a fixed window; a distributed
// counter can be substituted without touching the façade.
type RateLimiter interface {
	// Allow records one request attempt and reports whether it is
	// within the limit. Denied attempts are not counted.
	Allow(provider Provider, userID string) bool
}
