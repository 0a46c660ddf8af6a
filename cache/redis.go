// Package cache persists the console state of admin sessions in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/collabhub/admin-console/state"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the console keys.
const KeyPrefix = "console:state:"

// DefaultTTL is how long an untouched session state is kept.
const DefaultTTL = 7 * 24 * time.Hour

// Connect initializes a Redis client from URL or host:port input.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cannot connect to redis: %w", err)
	}
	return client, nil
}

// RedisPersister stores session states as JSON values with a TTL that is
// refreshed on every save.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPersister creates the Redis state adapter. A zero ttl means
// DefaultTTL.
func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisPersister{client: client, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, key string) (state.State, error) {
	raw, err := p.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return state.State{}, state.ErrNotFound
	}
	if err != nil {
		return state.State{}, fmt.Errorf("get state: %w", err)
	}
	var s state.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return state.State{}, fmt.Errorf("decode state: %w", err)
	}
	return s, nil
}

func (p *RedisPersister) Save(ctx context.Context, key string, s state.State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return p.client.Set(ctx, KeyPrefix+key, raw, p.ttl).Err()
}

func (p *RedisPersister) Delete(ctx context.Context, key string) error {
	n, err := p.client.Del(ctx, KeyPrefix+key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return state.ErrNotFound
	}
	return nil
}

// Close releases the underlying client.
func (p *RedisPersister) Close() error {
	return p.client.Close()
}

var _ state.Persister = (*RedisPersister)(nil)
