package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const keyPrefix = "ligue-leads:lookups:"

// LookupCache keeps lookup lists as JSON with a TTL.
type LookupCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

// NewLookupCache parses redisURL and pings the server.
func NewLookupCache(redisURL string, ttl time.Duration) (*LookupCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &LookupCache{Redis: client, TTL: ttl}, nil
}

func (c *LookupCache) GetLookups(ctx context.Context, kind string) ([]entity.Lookup, bool, error) {
	raw, err := c.Redis.Get(ctx, keyPrefix+kind).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []entity.Lookup
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", kind, err)
	}
	return items, true, nil
}

func (c *LookupCache) SetLookups(ctx context.Context, kind string, items []entity.Lookup) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, keyPrefix+kind, raw, c.TTL).Err()
}

// Invalidate drops one cached list.
func (c *LookupCache) Invalidate(ctx context.Context, kind string) error {
	return c.Redis.Del(ctx, keyPrefix+kind).Err()
}

func (c *LookupCache) Close() error {
	return c.Redis.Close()
}
