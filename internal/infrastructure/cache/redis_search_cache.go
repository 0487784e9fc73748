package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/redis/go-redis/v9"
)

// RedisSearchCache implements SearchCache using Redis. Entries are
// stored as JSON with a server-side TTL; the lazy expiry check is kept
// anyway so entries written by an instance with a longer TTL are never
// served stale.
type RedisSearchCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	nowFunc   func() time.Time
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisSearchCache creates a Redis-backed search cache. A zero ttl
// uses DefaultSearchTTL.
func NewRedisSearchCache(cfg RedisConfig, ttl time.Duration) (*RedisSearchCache, error) {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSearchCache{
		client:    client,
		keyPrefix: "connector:search:",
		ttl:       ttl,
		nowFunc:   time.Now,
	}, nil
}

// NewRedisSearchCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisSearchCacheWithClient(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &RedisSearchCache{
		client:    client,
		keyPrefix: "connector:search:",
		ttl:       ttl,
		nowFunc:   time.Now,
	}
}

func (c *RedisSearchCache) key(provider connector.Provider, fingerprint string) string {
	return c.keyPrefix + string(provider) + ":" + fingerprint
}

// Get returns the live entry for the key, or nil when absent or expired
func (c *RedisSearchCache) Get(ctx context.Context, provider connector.Provider, fingerprint string) (*connector.CacheEntry, error) {
	data, err := c.client.Get(ctx, c.key(provider, fingerprint)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read search cache: %w", err)
	}

	var entry connector.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode search cache entry: %w", err)
	}
	if entry.Expired(c.nowFunc()) {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the entry, stamping CreatedAt and ExpiresAt
func (c *RedisSearchCache) Put(ctx context.Context, entry *connector.CacheEntry) error {
	now := c.nowFunc()
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(c.ttl)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode search cache entry: %w", err)
	}

	if err := c.client.Set(ctx, c.key(entry.Provider, entry.Fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSearchCache) Close() error {
	return c.client.Close()
}

var _ connector.SearchCache = (*RedisSearchCache)(nil)
