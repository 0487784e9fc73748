package connector

import (
	"context"
	"time"
)

// CacheEntry is a TTL-bounded snapshot of normalized results for one
// fingerprinted search. Entries are immutable after Put; expiry is
// checked lazily by readers.
type CacheEntry struct {
	Provider    Provider           `json:"provider"`
	Fingerprint string             `json:"fingerprint"`
	Query       string             `json:"query"`
	Results     []NormalizedResult `json:"results"`
	CreatedAt   time.Time          `json:"created_at"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// Expired reports whether the entry has passed its expiry at the given time
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// SearchCache stores normalized search results keyed by (provider,
// fingerprint). The cache treats the fingerprint as an opaque string;
// computing it is the caller's responsibility. Implementations must
// treat entries past ExpiresAt as absent even when still stored.
type SearchCache interface {
	// Get returns the live entry for the key, or nil when absent or expired
	Get(ctx context.Context, provider Provider, fingerprint string) (*CacheEntry, error)

	// Put stores the entry, stamping CreatedAt and ExpiresAt
	Put(ctx context.Context, entry *CacheEntry) error
}
