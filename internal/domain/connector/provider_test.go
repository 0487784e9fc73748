package connector

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvider_IsValid(t *testing.T) {
	for _, p := range AllProviders() {
		assert.True(t, p.IsValid(), "provider %s should be valid", p)
	}

	assert.False(t, Provider("linkedin").IsValid())
	assert.False(t, Provider("").IsValid())
	assert.False(t, Provider("APOLLO").IsValid())
}

func TestProvider_DisplayName(t *testing.T) {
	assert.Equal(t, "Apollo.io", ProviderApollo.DisplayName())
	assert.Equal(t, "Google Places", ProviderGooglePlaces.DisplayName())
	assert.Equal(t, "bogus", Provider("bogus").DisplayName())
}

func TestClassifyStatus(t *testing.T) {
	assert.ErrorIs(t, ClassifyStatus(http.StatusUnauthorized), ErrUnauthorized)
	assert.ErrorIs(t, ClassifyStatus(http.StatusForbidden), ErrUnauthorized)
	assert.ErrorIs(t, ClassifyStatus(http.StatusTooManyRequests), ErrRateLimited)
	assert.ErrorIs(t, ClassifyStatus(http.StatusInternalServerError), ErrProviderError)
	assert.ErrorIs(t, ClassifyStatus(http.StatusBadGateway), ErrProviderError)
}
