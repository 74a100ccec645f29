// internal/store/cache.go
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"finance-assistant/internal/common/errors"
	"finance-assistant/internal/common/metrics"
	"finance-assistant/pkg/patterns"
)

// AnswerCache memoizes rendered result bundles in Redis. Classification
// is deterministic, so identical (user, locale, query) triples produce
// identical bundles within the TTL window.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{client: client, ttl: ttl}
}

// cacheKey hashes the normalized query so case and whitespace variants
// of the same question share an entry.
func cacheKey(userID, locale, query string) string {
	sum := sha256.Sum256([]byte(patterns.Normalize(query)))
	return fmt.Sprintf("answer:%s:%s:%s", userID, locale, hex.EncodeToString(sum[:16]))
}

// Get returns the cached value unmarshaled into dest, or found=false
// on a miss. Nil receivers behave as a permanent miss.
func (c *AnswerCache) Get(ctx context.Context, userID, locale, query string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, cacheKey(userID, locale, query)).Bytes()
	if err == redis.Nil {
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		metrics.CacheHits.WithLabelValues("error").Inc()
		return false, errors.NewCacheError("reading cached answer", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheHits.WithLabelValues("error").Inc()
		return false, errors.NewCacheError("decoding cached answer", err)
	}
	metrics.CacheHits.WithLabelValues("hit").Inc()
	return true, nil
}

// Set stores the value under the query key with the configured TTL.
func (c *AnswerCache) Set(ctx context.Context, userID, locale, query string, value interface{}) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("encoding answer for cache", err)
	}
	if err := c.client.Set(ctx, cacheKey(userID, locale, query), raw, c.ttl).Err(); err != nil {
		return errors.NewCacheError("writing cached answer", err)
	}
	return nil
}
