package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/pkg/adapters/memory"
	"github.com/scenekit/scenekit/pkg/ports"
	"github.com/scenekit/scenekit/pkg/session"
)

func TestManager_WithLockSerializesSameSession(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	var inside int32
	var overlapped atomic.Bool
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.WithLock(ctx, "chat/user", func(context.Context) error {
				if atomic.AddInt32(&inside, 1) > 1 {
					overlapped.Store(true)
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, overlapped.Load(), "two holders inside the same session lock")
}

func TestManager_DifferentSessionsDoNotBlockEachOther(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	release := make(chan struct{})
	held := make(chan struct{})

	go func() {
		_ = manager.WithLock(ctx, "chat/a", func(context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()

	<-held
	done := make(chan struct{})
	go func() {
		_ = manager.WithLock(ctx, "chat/b", func(context.Context) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("independent session blocked behind an unrelated lock")
	}
	close(release)
}

// fakeLocker records distributed lock traffic.
type fakeLocker struct {
	mu        sync.Mutex
	locked    []string
	unlocked  int
	unlockErr error
	lockErr   error
}

func (f *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	f.locked = append(f.locked, key)
	return func(context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unlocked++
		return f.unlockErr
	}, nil
}

func TestManager_DistributedLockerWrapsCallback(t *testing.T) {
	locker := &fakeLocker{}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker))

	err := manager.WithLock(context.Background(), "chat/user", func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"chat/user"}, locker.locked)
	assert.Equal(t, 1, locker.unlocked)
}

func TestManager_DistributedLockFailureAborts(t *testing.T) {
	locker := &fakeLocker{lockErr: errors.New("redis down")}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker))

	var ran bool
	err := manager.WithLock(context.Background(), "chat/user", func(context.Context) error {
		ran = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, ran, "callback must not run without the distributed lock")
}

func TestManager_UnlockFailureDoesNotMaskResult(t *testing.T) {
	// A failed release is logged and left to the TTL; the callback's own
	// result is what the caller sees.
	locker := &fakeLocker{unlockErr: errors.New("connection reset")}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker))

	err := manager.WithLock(context.Background(), "chat/user", func(context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestManager_StoreReturnsUnderlyingStore(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store)
	assert.Same(t, store, manager.Store())
}
