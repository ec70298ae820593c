package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TryLocker is a non-blocking lock. TryLock reports whether the caller
// acquired it; a false return means another holder owns the key.
type TryLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type redisLock struct {
	client      *redis.Client
	serviceName string
	token       string
}

func NewRedisLock(addr, password string, db int, serviceName string) TryLocker {
	return &redisLock{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		serviceName: serviceName,
		token:       uuid.New().String(),
	}
}

func (l *redisLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.lockKey(key), l.token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquiring lock %s: %w", key, err)
	}
	return acquired, nil
}

// Unlock releases only a lock this instance acquired. A key held by
// another instance's token is left untouched.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *redisLock) Unlock(ctx context.Context, key string) error {
	if err := unlockScript.Run(ctx, l.client, []string{l.lockKey(key)}, l.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("releasing lock %s: %w", key, err)
	}
	return nil
}

func (l *redisLock) lockKey(key string) string {
	return fmt.Sprintf("%s:lock:%s", l.serviceName, key)
}
