// Package cache provides a Redis-backed memoization layer for public reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const versionKey = "cache:version"

// Store memoizes JSON-encodable values with a bounded TTL. Invalidation is
// coarse: bumping a namespace version orphans every existing entry at once,
// and orphans expire on their own TTL. All Redis failures degrade to a miss.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cache store with the given default TTL.
func New(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, logger: logger}
}

// Get loads a cached value into dest, reporting whether it was present.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := s.rdb.Get(ctx, s.versionedKey(ctx, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a value under the default TTL.
func (s *Store) Set(ctx context.Context, key string, value interface{}) {
	s.SetTTL(ctx, key, value, s.ttl)
}

// SetTTL stores a value under an explicit TTL.
func (s *Store) SetTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.rdb.Set(ctx, s.versionedKey(ctx, key), raw, ttl).Err(); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear invalidates the whole namespace by bumping the version.
func (s *Store) Clear(ctx context.Context) {
	if err := s.rdb.Incr(ctx, versionKey).Err(); err != nil {
		s.logger.Warn("cache clear failed", zap.Error(err))
	}
}

func (s *Store) versionedKey(ctx context.Context, key string) string {
	version, err := s.rdb.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		version = 0
	}
	return fmt.Sprintf("cache:v%d:%s", version, key)
}

// ListingKey builds the cache key for a paginated public listing.
func ListingKey(contentType string, page int) string {
	return fmt.Sprintf("listing:%s:%d", contentType, page)
}
