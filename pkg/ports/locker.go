package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates same-session access across multiple engine
// replicas. The core assumes at most one in-flight event per session; a
// locker upgrades that assumption into a guarantee.
type DistributedLocker interface {
	// Lock acquires a lock for the given key (session key). It blocks until
	// the lock is acquired or the context is canceled. The returned
	// UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
