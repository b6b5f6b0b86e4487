package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tsawler/litsense/internal/domain"
	"github.com/tsawler/litsense/internal/metrics"
)

const (
	keyPrefix  = "litsense:analysis:"
	DefaultTTL = 24 * time.Hour
)

// Cache stores analysis records in Redis keyed by text hash.
type Cache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// New creates a Cache. A non-positive ttl means DefaultTTL.
func New(rdb goredis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key returns the Redis key of a text hash.
func Key(hash string) string {
	return keyPrefix + hash
}

// Get returns the record cached under hash. A record that no longer decodes
// is reported as a miss.
func (c *Cache) Get(ctx context.Context, hash string) (*domain.Record, bool, error) {
	data, err := c.rdb.Get(ctx, Key(hash)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}

	var record domain.Record
	if err := json.Unmarshal(data, &record); err != nil {
		slog.Warn("Failed to unmarshal cached analysis, treating as miss", "hash", hash, "error", err)
		metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}

	metrics.CacheOperationsTotal.WithLabelValues("hit").Inc()
	record.Cached = true
	return &record, true, nil
}

// Set stores record under hash for the cache TTL.
func (c *Cache) Set(ctx context.Context, hash string, record *domain.Record) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(hash), encoded, c.ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to cache analysis: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
