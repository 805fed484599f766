package lock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// newTestLock connects to the Redis named by MERCHANT_CONSOLE_TEST_REDIS.
func newTestLock(t *testing.T, acquireTimeout time.Duration) *DistributedLock {
	t.Helper()
	addr := os.Getenv("MERCHANT_CONSOLE_TEST_REDIS")
	if addr == "" {
		t.Skip("MERCHANT_CONSOLE_TEST_REDIS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	key := "merchant_console:test_lock:" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), key) })
	return New(client, key, 5*time.Second, acquireTimeout)
}

func TestAcquireRelease(t *testing.T) {
	l := newTestLock(t, 200*time.Millisecond)
	ctx := context.Background()

	id, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := l.Acquire(ctx); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout while held, got %v", err)
	}
	if err := l.Release(ctx, id); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := l.Acquire(ctx); err != nil {
		t.Fatalf("re-acquire after release: %v", err)
	}
}

func TestReleaseIgnoresForeignID(t *testing.T) {
	l := newTestLock(t, 100*time.Millisecond)
	ctx := context.Background()

	if _, err := l.Acquire(ctx); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := l.Release(ctx, "someone-else"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := l.Acquire(ctx); !errors.Is(err, ErrTimeout) {
		t.Fatalf("lock must still be held, got %v", err)
	}
}

func TestDoReleasesAfterRun(t *testing.T) {
	l := newTestLock(t, 100*time.Millisecond)
	ctx := context.Background()

	ran := false
	if err := l.Do(ctx, func(context.Context) error { ran = true; return nil }); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !ran {
		t.Fatal("fn was not called")
	}
	if err := l.Do(ctx, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("lock not released after Do: %v", err)
	}
}
