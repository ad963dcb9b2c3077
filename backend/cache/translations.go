package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TranslationCache keeps texts already resolved for a locale, fallback
// included, keyed by translation identifier.
type TranslationCache interface {
	// GetTexts returns the cached subset of identifiers.
	GetTexts(ctx context.Context, identifiers []int, locale string) (map[int]string, error)
	SetTexts(ctx context.Context, locale string, texts map[int]string) error
	// Invalidate drops every locale cached for the identifiers.
	Invalidate(ctx context.Context, identifiers ...int) error
}

const keyPrefix = "translation:"

func key(identifier int) string {
	return keyPrefix + strconv.Itoa(identifier)
}

type RedisTranslationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTranslationCache(rdb *redis.Client, ttl time.Duration) *RedisTranslationCache {
	return &RedisTranslationCache{rdb: rdb, ttl: ttl}
}

func (c *RedisTranslationCache) GetTexts(ctx context.Context, identifiers []int, locale string) (map[int]string, error) {
	found := make(map[int]string, len(identifiers))
	if len(identifiers) == 0 {
		return found, nil
	}

	pipe := c.rdb.Pipeline()
	cmds := make([]*redis.StringCmd, len(identifiers))
	for i, id := range identifiers {
		cmds[i] = pipe.HGet(ctx, key(id), locale)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	for i, cmd := range cmds {
		text, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found[identifiers[i]] = text
	}
	return found, nil
}

func (c *RedisTranslationCache) SetTexts(ctx context.Context, locale string, texts map[int]string) error {
	if len(texts) == 0 {
		return nil
	}
	pipe := c.rdb.TxPipeline()
	for id, text := range texts {
		pipe.HSet(ctx, key(id), locale, text)
		if c.ttl > 0 {
			pipe.Expire(ctx, key(id), c.ttl)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisTranslationCache) Invalidate(ctx context.Context, identifiers ...int) error {
	if len(identifiers) == 0 {
		return nil
	}
	keys := make([]string, len(identifiers))
	for i, id := range identifiers {
		keys[i] = key(id)
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Noop is used when no redis address is configured.
type Noop struct{}

func (Noop) GetTexts(context.Context, []int, string) (map[int]string, error) {
	return map[int]string{}, nil
}

func (Noop) SetTexts(context.Context, string, map[int]string) error { return nil }

func (Noop) Invalidate(context.Context, ...int) error { return nil }
