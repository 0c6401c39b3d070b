package credstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "crm-console"

var _ Repo = (*RedisRepo)(nil)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisRepo keeps entries as plain string keys under a prefix, so several consoles
// can share one redis with distinct prefixes.
type RedisRepo struct {
	redis  *redis.Client
	prefix string
	owned  bool
}

// OpenRedisRepo connects to redis and checks the connection with a PING
func OpenRedisRepo(ctx context.Context, opts RedisOptions) (*RedisRepo, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, fmt.Errorf("[credstore.OpenRedisRepo] redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	repo := NewRedisRepo(client, opts.Prefix)
	repo.owned = true
	return repo, nil
}

// NewRedisRepo wraps an existing client. Close leaves the client open.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisRepo{redis: client, prefix: prefix}
}

func (r *RedisRepo) key(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	v, err := r.redis.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisRepo) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.redis.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisRepo) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.redis.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisRepo) Close() error {
	if !r.owned {
		return nil
	}
	return r.redis.Close()
}
