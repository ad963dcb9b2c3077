package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisTranslationCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisTranslationCache(rdb, ttl), mr
}

func TestRedisTranslationCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	require.NoError(t, c.SetTexts(ctx, "pl", map[int]string{1: "Kurs", 2: "Opis"}))

	got, err := c.GetTexts(ctx, []int{1, 2, 3}, "pl")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Kurs", 2: "Opis"}, got)

	got, err = c.GetTexts(ctx, []int{1}, "en")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Equal(t, "Kurs", mr.HGet("translation:1", "pl"))
	assert.Equal(t, time.Minute, mr.TTL("translation:1"))
}

func TestRedisTranslationCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)

	require.NoError(t, c.SetTexts(ctx, "en", map[int]string{7: "Name"}))
	require.NoError(t, c.SetTexts(ctx, "pl", map[int]string{7: "Nazwa"}))
	require.NoError(t, c.Invalidate(ctx, 7))

	assert.False(t, mr.Exists("translation:7"))
	got, err := c.GetTexts(ctx, []int{7}, "pl")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c TranslationCache = Noop{}

	require.NoError(t, c.SetTexts(ctx, "en", map[int]string{1: "x"}))
	got, err := c.GetTexts(ctx, []int{1}, "en")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, c.Invalidate(ctx, 1))
}
