// internal/store/cache_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "finance-assistant/internal/common/errors"
)

type cachedBundle struct {
	Intent string  `json:"intent"`
	Value  float64 `json:"value"`
}

func miniredisCache(t *testing.T, ttl time.Duration) *AnswerCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewAnswerCache(client, ttl)
}

func TestAnswerCache_RoundTrip(t *testing.T) {
	c := miniredisCache(t, time.Minute)
	ctx := context.Background()

	want := cachedBundle{Intent: "spending_total", Value: 240.5}
	require.NoError(t, c.Set(ctx, "user-1", "en", "how much did i spend this month", want))

	var got cachedBundle
	found, err := c.Get(ctx, "user-1", "en", "how much did i spend this month", &got)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestAnswerCache_NormalizesQueryKey(t *testing.T) {
	c := miniredisCache(t, time.Minute)
	ctx := context.Background()

	want := cachedBundle{Intent: "spending_total", Value: 240.5}
	require.NoError(t, c.Set(ctx, "user-1", "en", "How Much Did I Spend This Month  ", want))

	var got cachedBundle
	found, err := c.Get(ctx, "user-1", "en", "how much did i spend this month", &got)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestAnswerCache_MissOnDifferentQuery(t *testing.T) {
	c := miniredisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", "en", "query one", cachedBundle{Value: 1}))

	var got cachedBundle
	found, err := c.Get(ctx, "user-1", "en", "query two", &got)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestAnswerCache_KeysIsolatedByUserAndLocale(t *testing.T) {
	c := miniredisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", "en", "same query", cachedBundle{Value: 1}))

	var got cachedBundle
	found, err := c.Get(ctx, "user-2", "en", "same query", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.Get(ctx, "user-1", "es", "same query", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAnswerCache_NilReceiverIsMiss(t *testing.T) {
	var c *AnswerCache

	var got cachedBundle
	found, err := c.Get(context.Background(), "user-1", "en", "anything", &got)

	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Set(context.Background(), "user-1", "en", "anything", got))
}

func TestAnswerCache_RedisErrorSurfacesAsCacheError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewAnswerCache(client, time.Minute)

	mock.ExpectGet(cacheKey("user-1", "en", "boom")).SetErr(assert.AnError)

	var got cachedBundle
	found, err := c.Get(context.Background(), "user-1", "en", "boom", &got)

	assert.False(t, found)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeCacheUnavailable, stderrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
