package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the shared template cache.
type RedisConfig struct {
	URL          string
	Prefix       string
	TTL          time.Duration
	PoolSize     int
	MinIdleConns int
}

// Redis is a TemplateCache shared by every CLI session pointed at the same
// server. The list and the stale flag are separate keys so MarkStale never
// rewrites the list.
type Redis struct {
	client   *redis.Client
	ttl      time.Duration
	listKey  string
	staleKey string
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisWithClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = "clinicdesk"
	}
	return &Redis{
		client:   client,
		ttl:      ttl,
		listKey:  prefix + ":templates",
		staleKey: prefix + ":templates:stale",
	}
}

func (r *Redis) Load(ctx context.Context) (Entry, bool, error) {
	pipe := r.client.Pipeline()
	list := pipe.Get(ctx, r.listKey)
	stale := pipe.Exists(ctx, r.staleKey)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, false, fmt.Errorf("failed to load template cache: %w", err)
	}

	raw, err := list.Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to load template cache: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("failed to decode template cache: %w", err)
	}
	e.Stale = e.Stale || stale.Val() > 0
	return e, true, nil
}

func (r *Redis) Store(ctx context.Context, e Entry) error {
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode template cache: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.listKey, payload, r.ttl)
		pipe.Del(ctx, r.staleKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store template cache: %w", err)
	}
	return nil
}

func (r *Redis) MarkStale(ctx context.Context) error {
	if err := r.client.Set(ctx, r.staleKey, "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark template cache stale: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.listKey, r.staleKey).Err(); err != nil {
		return fmt.Errorf("failed to clear template cache: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
