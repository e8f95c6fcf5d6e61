// Package lock implements the distributed named-mutex contract (C3) over
// go-redsync/redsync, which already appears as an indirect dependency of
// the teacher's module graph and provides the exact SET-NX-EX plus
// compare-and-delete semantics the spec calls for as a library instead of
// hand-rolled Lua.
package lock

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	goredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lattice-sh/control-plane/pkg/errs"
)

// Handle is a value, not a scoped resource: callers must explicitly release
// it on every exit path, including conflict returns (spec.md §4.3, §9).
type Handle struct {
	Key     string
	OwnerID string
	mutex   *redsync.Mutex
}

// Locker acquires and releases named locks against a shared Redis instance.
type Locker struct {
	rs *redsync.Redsync
}

// NewLocker builds a Locker over an existing go-redis client.
func NewLocker(client *redis.Client) *Locker {
	pool := goredis.NewPool(client)
	return &Locker{rs: redsync.New(pool)}
}

// Lock atomically sets key in the shared KV store with the given ttl and a
// unique owner id, retrying with backoff up to retries times on contention.
// It returns errs.LockUnavailableError once the retry budget is exhausted.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration, retries int, backoff time.Duration) (Handle, error) {
	ownerID := uuid.NewString()

	m := l.rs.NewMutex(
		key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(retries+1),
		redsync.WithRetryDelay(backoff),
		redsync.WithGenValueFunc(func() (string, error) { return ownerID, nil }),
	)

	if err := m.LockContext(ctx); err != nil {
		return Handle{}, errs.LockUnavailableError{Key: key, Err: err}
	}

	return Handle{Key: key, OwnerID: ownerID, mutex: m}, nil
}

// Unlock performs the compare-and-delete release: it only succeeds when the
// stored owner token still equals the one recorded in the handle.
func (l *Locker) Unlock(ctx context.Context, h Handle) error {
	if h.mutex == nil {
		return errs.InternalError{Message: "unlock called with zero-value lock handle"}
	}

	ok, err := h.mutex.UnlockContext(ctx)
	if err != nil {
		return errs.StoreFailureError{Store: "redis-lock", Err: err}
	}

	if !ok {
		return errs.LockUnavailableError{Key: h.Key}
	}

	return nil
}

// recoveryLockKey is the fixed name guarding the workqueue's startup
// recovery sweep (spec.md §4.9): only one process at a time may move
// abandoned processing-list items back onto pending.
const recoveryLockKey = "v1_workqueue_recovery_lock"

// WithRecoveryLock runs fn while holding the global recovery lock, and
// satisfies internal/services/cleanup.RecoveryLocker. The lock is held
// for a generous fixed ttl since a recovery sweep is a bounded, one-shot
// scan rather than a long-running operation.
func (l *Locker) WithRecoveryLock(ctx context.Context, fn func() error) error {
	h, err := l.Lock(ctx, recoveryLockKey, 30*time.Second, 5, 250*time.Millisecond)
	if err != nil {
		return err
	}

	defer func() { _ = l.Unlock(ctx, h) }()

	return fn()
}
