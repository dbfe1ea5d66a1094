package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/sourcegraph/conc"
)

// Notice reports an optimistic edit the remote API rejected.
type Notice struct {
	Kind collection.MutationKind
	Key  string
	Err  error
}

// MessageKey returns the localization key used to render the notice.
func (n Notice) MessageKey() string {
	return "notice.rejected." + n.Kind.String()
}

// View is one visitor's mounted list.
type View[Q comparable, K comparable, T any] struct {
	cache *collection.Cache[Q, K, T]

	mu      sync.Mutex
	notices []Notice

	wg conc.WaitGroup
}

func newView[Q comparable, K comparable, T any](cache *collection.Cache[Q, K, T]) *View[Q, K, T] {
	return &View[Q, K, T]{cache: cache}
}

// Snapshot returns the current list state.
func (v *View[Q, K, T]) Snapshot() collection.Snapshot[Q, T] {
	return v.cache.Snapshot()
}

// Generation returns the generation of the mounted query.
func (v *View[Q, K, T]) Generation() uint64 {
	return v.cache.Generation()
}

// Get returns the visible item stored under key.
func (v *View[Q, K, T]) Get(key K) (T, bool) {
	return v.cache.Get(key)
}

// LoadNextPage fetches the following page, or retries a failed one.
func (v *View[Q, K, T]) LoadNextPage(ctx context.Context) <-chan struct{} {
	return v.cache.LoadNextPage(ctx)
}

// Subscribe streams snapshots of the mounted list, newest first wins.
func (v *View[Q, K, T]) Subscribe() (<-chan collection.Snapshot[Q, T], func()) {
	return v.cache.Subscribe()
}

// Settled waits until no page request is in flight and returns the latest
// snapshot. It gives up when ctx ends or wait elapses.
func (v *View[Q, K, T]) Settled(ctx context.Context, wait time.Duration) collection.Snapshot[Q, T] {
	updates, cancel := v.cache.Subscribe()
	defer cancel()
	timer := time.NewTimer(wait)
	defer timer.Stop()

	snap := v.cache.Snapshot()
	for snap.Status.Loading() {
		select {
		case next, ok := <-updates:
			if !ok {
				return v.cache.Snapshot()
			}
			snap = next
		case <-timer.C:
			return snap
		case <-ctx.Done():
			return snap
		}
	}
	return snap
}

// Mutate applies m optimistically and confirms it in the background. A
// rejection is rolled back and queued as a notice for the next render. The
// returned channel mirrors the commit result.
func (v *View[Q, K, T]) Mutate(ctx context.Context, m collection.Mutation[K, T], commit collection.CommitFunc[T]) (collection.MutationID, <-chan error, error) {
	id, result, err := v.cache.Mutate(ctx, m, commit)
	if err != nil {
		return 0, nil, err
	}
	out := make(chan error, 1)
	v.wg.Go(func() {
		defer close(out)
		err := <-result
		if collection.IsMutationRejected(err) {
			v.addNotice(err)
		}
		out <- err
	})
	return id, out, nil
}

// Notices drains the queued rejection notices.
func (v *View[Q, K, T]) Notices() []Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	notices := v.notices
	v.notices = nil
	return notices
}

func (v *View[Q, K, T]) addNotice(err error) {
	var rejected *collection.MutationRejectedError
	if !errors.As(err, &rejected) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, Notice{Kind: rejected.Kind, Key: rejected.Key, Err: rejected.Err})
}

func (v *View[Q, K, T]) close() {
	v.cache.Close()
	v.wg.Wait()
}
