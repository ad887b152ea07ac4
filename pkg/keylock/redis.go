package keylock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ErrLockLost means the lock expired or was taken over before it was released.
var ErrLockLost = errors.New("lock no longer held")

// Redis is a Locker shared by every instance talking to the same Redis.
// The TTL bounds how long a crashed holder can block a key.
type Redis struct {
	rdb       *redis.Client
	prefix    string
	ttl       time.Duration
	pollEvery time.Duration
}

func NewRedis(rdb *redis.Client, prefix string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Redis{
		rdb:       rdb,
		prefix:    prefix,
		ttl:       ttl,
		pollEvery: 50 * time.Millisecond,
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()

	for {
		acquired, err := r.rdb.SetNX(ctx, lockKey, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
		}
		if acquired {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() {
		if err := r.release(lockKey, token); err != nil {
			log.Printf("[WARN] Failed to release lock %s: %v", lockKey, err)
		}
	}, nil
}

// release deletes the lock if token still owns it. The TTL is not extended
// while held, so a holder that outlives it gets ErrLockLost here.
func (r *Redis) release(lockKey, token string) error {
	// Background: the caller's context may already be cancelled
	deleted, err := releaseScript.Run(context.Background(), r.rdb, []string{lockKey}, token).Int64()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLockLost
	}
	return nil
}
