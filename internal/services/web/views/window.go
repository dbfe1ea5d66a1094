package views

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/storage/cursor"
)

// Window is the part of a mounted list one response renders.
type Window[T any] struct {
	Items []T
	// Next continues the list. It is empty once the remote list is
	// exhausted.
	Next string
	// Loading marks a page still in flight when the wait ran out; Next
	// polls for it.
	Loading bool
	// Err is the fetch failure of the last page; Next retries it.
	Err error
	// Stale marks a token issued for a superseded generation or query. A
	// stale window renders nothing.
	Stale bool
}

// queryKey renders query for cursor hashing.
func queryKey[Q comparable](query Q) string {
	return fmt.Sprintf("%#v", query)
}

// keys lists the cursor form of every item key in snap.
func (v *View[Q, K, T]) keys(snap collection.Snapshot[Q, T]) []string {
	out := make([]string, len(snap.Items))
	for i, item := range snap.Items {
		out[i] = fmt.Sprint(v.cache.KeyOf(item))
	}
	return out
}

// First returns the window of a freshly mounted list: every item loaded so
// far plus the continuation.
func (v *View[Q, K, T]) First(ctx context.Context, wait time.Duration) (Window[T], error) {
	return v.window(v.Settled(ctx, wait), 0)
}

// Next resolves a continuation token. The list resumes behind the last rows
// the token saw, so optimistic edits above that point neither skip nor repeat
// rows. When nothing is left to render it loads the next page, or retries a
// failed one, and waits up to wait for it.
func (v *View[Q, K, T]) Next(ctx context.Context, raw string, wait time.Duration) (Window[T], error) {
	c, err := cursor.Decode(raw)
	if err != nil {
		return Window[T]{}, fmt.Errorf("decode continuation: %w", err)
	}
	snap := v.cache.Snapshot()
	if stale(c, snap) {
		return Window[T]{Stale: true}, nil
	}
	if cursor.Resume(c, v.keys(snap)) >= len(snap.Items) && snap.HasMore && !snap.Status.Loading() {
		v.cache.LoadNextPage(ctx)
	}
	snap = v.Settled(ctx, wait)
	if stale(c, snap) {
		return Window[T]{Stale: true}, nil
	}
	return v.window(snap, cursor.Resume(c, v.keys(snap)))
}

func stale[Q comparable, T any](c cursor.Cursor, snap collection.Snapshot[Q, T]) bool {
	return cursor.Stale(c, snap.Generation) || cursor.ValidateQuery(c, queryKey(snap.Query)) != nil
}

// window renders snap from position from. The token it issues anchors on
// the last rows of snap, which after this response are the last rows the
// visitor has.
func (v *View[Q, K, T]) window(snap collection.Snapshot[Q, T], from int) (Window[T], error) {
	from = min(from, len(snap.Items))
	w := Window[T]{
		Items:   snap.Items[from:],
		Loading: snap.Status.Loading(),
		Err:     snap.Err,
	}
	if !snap.HasMore && !w.Loading {
		return w, nil
	}
	next, err := cursor.Encode(cursor.New(snap.Generation, len(snap.Items), queryKey(snap.Query), v.keys(snap)...))
	if err != nil {
		return Window[T]{}, err
	}
	w.Next = next
	return w, nil
}
