package providers

import (
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry(time.Second, nil)

	t.Run("resolves every supported provider", func(t *testing.T) {
		for _, p := range connector.AllProviders() {
			client, err := reg.Client(p)
			require.NoError(t, err)
			assert.Equal(t, p, client.Provider())
		}
	})

	t.Run("unknown provider fails fast", func(t *testing.T) {
		_, err := reg.Client(connector.Provider("linkedin"))
		assert.ErrorIs(t, err, connector.ErrInvalidProvider)
	})

	t.Run("lists all clients", func(t *testing.T) {
		assert.Len(t, reg.Clients(), len(connector.AllProviders()))
	})
}
