package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// Redis stores each key as a plain string value.
type Redis struct {
	rdb    cmdable
	prefix string
	ttl    time.Duration
}

type RedisOption func(*Redis)

// WithPrefix namespaces every key, e.g. "storefront:" + "cart".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL expires values ttl after their last save. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// NewRedisClient builds a client. Connectivity is checked by NewRedis.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedis pings conn once and returns a store over it.
func NewRedis(ctx context.Context, conn *redis.Client, opts ...RedisOption) (*Redis, error) {
	if conn == nil {
		return nil, ErrNilClient
	}
	return newRedis(ctx, conn, opts...)
}

func newRedis(ctx context.Context, rdb cmdable, opts ...RedisOption) (*Redis, error) {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	r := &Redis{rdb: rdb}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrLoadFailed, key, err)
	}
	return v, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w %q: %v", ErrSaveFailed, key, err)
	}
	return nil
}
