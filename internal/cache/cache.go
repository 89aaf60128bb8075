// Package cache memoises computed summaries in Redis behind a global version counter.
// Writers never delete entries; they bump the version so stale keys are never read again
// and expire on their own TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const versionKey = "tablero:summary:version"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a cache on client. A nil client yields a pass-through cache that always calls the loader.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current version, initialising it when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}

	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, fmt.Errorf("initialising cache version: %w", err)
		}

		ver, err = c.client.Get(ctx, versionKey).Int64()
	}

	if err != nil {
		return 0, fmt.Errorf("reading cache version: %w", err)
	}

	return ver, nil
}

// BuildKey joins parts and appends the current version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{"tablero"}, parts...), ":")
	if !c.enabled() {
		return joined, nil
	}

	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// FetchJSON decodes the value cached under key into dest, or runs loader and stores its result.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}

	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}

		if !errors.Is(err, redis.Nil) {
			return fmt.Errorf("reading cache entry: %w", err)
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if c.enabled() {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return fmt.Errorf("writing cache entry: %w", err)
		}
	}

	return json.Unmarshal(raw, dest)
}

// Bump invalidates every entry built before the call.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}

	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("bumping cache version: %w", err)
	}

	return nil
}
