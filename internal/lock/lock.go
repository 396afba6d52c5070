// Package lock keeps two scoring runs from writing score details at the
// same time.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/vijay-prabhu/empscore/internal/config"
)

// RunKey is the key held for the duration of a scoring run
const RunKey = "empscore:run"

// ErrLocked is returned when another run holds the lock
var ErrLocked = errors.New("another scoring run is in progress")

// Locker acquires and releases named locks
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// New returns a redis backed Locker when enabled, or a Dummy
func New(cfg config.RedisConfig) (Locker, error) {
	if !cfg.Enabled {
		return &Dummy{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedis(client, cfg.LockTTL()), nil
}

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is a Locker built on SET NX with expiry
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps client
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Acquire takes key or returns ErrLocked
func (r *Redis) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}
	return release, nil
}

// Close closes the redis client
func (r *Redis) Close() error {
	return r.client.Close()
}

// Dummy grants every lock. Used when redis is disabled.
type Dummy struct{}

func (d *Dummy) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
