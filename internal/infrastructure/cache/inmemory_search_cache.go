package cache

import (
	"context"
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

const (
	// DefaultSearchTTL bounds how long search results stay reusable
	DefaultSearchTTL = 15 * time.Minute

	cleanupInterval = time.Minute
)

// InMemorySearchCache implements SearchCache with a mutex-guarded map.
// Expiry is checked lazily on Get; a background sweep reclaims entries
// nothing reads anymore. Suitable for single-instance deployments.
type InMemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]*connector.CacheEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	nowFunc func() time.Time
}

// NewInMemorySearchCache creates a new in-memory search cache. A zero
// ttl uses DefaultSearchTTL.
func NewInMemorySearchCache(ttl time.Duration, logger *zap.Logger) *InMemorySearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &InMemorySearchCache{
		entries: make(map[string]*connector.CacheEntry),
		ttl:     ttl,
		logger:  logger,
		stopCh:  make(chan struct{}),
		nowFunc: time.Now,
	}
	go c.cleanupExpired()
	return c
}

func cacheKey(provider connector.Provider, fingerprint string) string {
	return string(provider) + ":" + fingerprint
}

// Get returns the live entry for the key, or nil when absent or expired
func (c *InMemorySearchCache) Get(_ context.Context, provider connector.Provider, fingerprint string) (*connector.CacheEntry, error) {
	key := cacheKey(provider, fingerprint)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if entry.Expired(c.nowFunc()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry, nil
}

// Put stores the entry, stamping CreatedAt and ExpiresAt
func (c *InMemorySearchCache) Put(_ context.Context, entry *connector.CacheEntry) error {
	now := c.nowFunc()
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(c.ttl)

	c.mu.Lock()
	c.entries[cacheKey(entry.Provider, entry.Fingerprint)] = entry
	c.mu.Unlock()
	return nil
}

// Stop terminates the background cleanup goroutine
func (c *InMemorySearchCache) Stop() {
	close(c.stopCh)
}

func (c *InMemorySearchCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := c.nowFunc()
			removed := 0

			c.mu.Lock()
			for key, entry := range c.entries {
				if entry.Expired(now) {
					delete(c.entries, key)
					removed++
				}
			}
			c.mu.Unlock()

			if removed > 0 {
				c.logger.Debug("evicted expired search cache entries", zap.Int("count", removed))
			}
		}
	}
}

var _ connector.SearchCache = (*InMemorySearchCache)(nil)
