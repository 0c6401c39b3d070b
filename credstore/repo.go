// Package credstore persists the console session between runs: two string entries,
// the bearer token and the serialized user record.
package credstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/softnova/crm-console/internal/config"
)

// Keys of the persisted session entries
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repo is a string-keyed store. Get reports ok=false for a missing key; Delete of a
// missing key is not an error.
type Repo interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the Repo selected by the session backend setting
func Open(ctx context.Context, cfg config.SessionConfig) (Repo, error) {
	switch backend := strings.ToLower(cfg.GetSessionBackend()); backend {
	case config.BackendMemory:
		return NewInMemoryRepo(), nil
	case config.BackendFile:
		return NewFileRepo(cfg.GetSessionFile())
	case config.BackendSQLite:
		return OpenSQLiteRepo(cfg.GetSQLitePath())
	case config.BackendRedis:
		return OpenRedisRepo(ctx, RedisOptions{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
			Prefix:   cfg.GetRedisPrefix(),
		})
	default:
		return nil, fmt.Errorf("[credstore.Open] unknown session backend %q", backend)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}
	return nil
}
