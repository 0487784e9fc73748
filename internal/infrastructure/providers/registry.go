package providers

import (
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

// registry maps each supported provider to its client. The set is
// closed: lookups outside it fail fast with ErrInvalidProvider.
type registry struct {
	clients map[connector.Provider]connector.Client
}

// NewRegistry builds the full client registry
func NewRegistry(timeout time.Duration, logger *zap.Logger) connector.Registry {
	clients := []connector.Client{
		NewApolloClient(timeout, logger),
		NewGooglePlacesClient(timeout, logger),
		NewYelpClient(timeout, logger),
		NewHubSpotClient(timeout, logger),
		NewSalesforceClient(timeout, logger),
	}

	byProvider := make(map[connector.Provider]connector.Client, len(clients))
	for _, c := range clients {
		byProvider[c.Provider()] = c
	}
	return &registry{clients: byProvider}
}

// Client returns the client for the given provider
func (r *registry) Client(provider connector.Provider) (connector.Client, error) {
	c, ok := r.clients[provider]
	if !ok {
		return nil, connector.ErrInvalidProvider
	}
	return c, nil
}

// Clients returns all registered clients
func (r *registry) Clients() []connector.Client {
	out := make([]connector.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

var _ connector.Registry = (*registry)(nil)
