package pool

import (
	"context"
	"sync"
)

// The process-wide pool has an explicit init-once / shutdown-drains
// lifecycle. Dependents receive the *Pool by injection; the package-level
// singleton exists only so initialization and shutdown have one owner.
var (
	defaultMu   sync.Mutex
	defaultPool *Pool
)

// Initialize constructs the process-wide pool exactly once. A second call
// is a no-op that returns the live pool, not a re-initialization.
func Initialize(ctx context.Context, cfg Config) (*Pool, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool != nil {
		return defaultPool, nil
	}

	p, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defaultPool = p
	return p, nil
}

// Shutdown drains and closes the process-wide pool. Acquire on the closed
// pool fails until Initialize is called again.
func Shutdown() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool != nil {
		defaultPool.Close()
		defaultPool = nil
	}
}
