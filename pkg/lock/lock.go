package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTimeout is returned when the lock stays held by another console past the acquire timeout.
var ErrTimeout = errors.New("timeout acquiring write lock")

const (
	initialBackoff = 50 * time.Millisecond
	maxBackoff     = 500 * time.Millisecond
)

// DistributedLock serializes backend writes across console instances through Redis.
type DistributedLock struct {
	client         redis.UniversalClient
	lockKey        string
	lockTTL        time.Duration
	acquireTimeout time.Duration
}

// New creates a DistributedLock.
//   - key: the Redis key used for the lock (e.g. "merchant_console:write_lock")
//   - ttl: how long the lock is held before auto-expiry
//   - acquireTimeout: max time to wait when trying to acquire the lock
func New(client redis.UniversalClient, key string, ttl, acquireTimeout time.Duration) *DistributedLock {
	return &DistributedLock{
		client:         client,
		lockKey:        key,
		lockTTL:        ttl,
		acquireTimeout: acquireTimeout,
	}
}

// Key returns the Redis key guarded by the lock.
func (l *DistributedLock) Key() string {
	return l.lockKey
}

// Acquire attempts to obtain the lock, blocking with exponential backoff
// until success or timeout. Returns a unique lockID used for Release.
func (l *DistributedLock) Acquire(ctx context.Context) (string, error) {
	lockID := uuid.NewString()
	deadline := time.Now().Add(l.acquireTimeout)
	backoff := initialBackoff

	for {
		ok, err := l.client.SetNX(ctx, l.lockKey, lockID, l.lockTTL).Result()
		if err != nil {
			return "", fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return lockID, nil
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, l.acquireTimeout)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// releaseScript deletes the key only while it still holds our lockID.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

// Release releases the lock only if it is still owned by the given lockID.
func (l *DistributedLock) Release(ctx context.Context, lockID string) error {
	_, err := releaseScript.Run(ctx, l.client, []string{l.lockKey}, lockID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// Do runs fn while holding the lock.
func (l *DistributedLock) Do(ctx context.Context, fn func(context.Context) error) error {
	lockID, err := l.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// release even when ctx is already cancelled
		_ = l.Release(context.WithoutCancel(ctx), lockID)
	}()
	return fn(ctx)
}
