package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const (
	// LockFileName is the per-repository lock guarding mutating commands.
	LockFileName = ".relflow.lock"
	// LockTimeout defines the maximum time to wait for the lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ReleaseLock serializes mutating release operations against one repository.
// It guards the process, not state: the lock file carries no data.
type ReleaseLock struct {
	fl *flock.Flock
}

// NewReleaseLock creates a lock backed by the given file path.
func NewReleaseLock(path string) *ReleaseLock {
	return &ReleaseLock{fl: flock.New(path)}
}

// Acquire takes the lock, waiting up to LockTimeout. The returned function
// releases it.
func (l *ReleaseLock) Acquire(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	ok, err := l.fl.TryLockContext(ctx, LockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire release lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another release operation is in progress")
	}
	return func() {
		//nolint:errcheck // Releasing a held lock only fails if the fd is gone
		_ = l.fl.Unlock()
	}, nil
}
