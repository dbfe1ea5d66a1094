package collection

import (
	"context"
	"log"
)

// Page is one fetch's worth of items plus its continuation marker.
//
// Next is opaque to the cache and is handed back verbatim on the following
// fetch. HasMore false is the "no more pages" sentinel.
type Page[T any] struct {
	Items   []T
	Next    string
	HasMore bool
}

// FetchFunc loads the page addressed by cursor for query. The empty cursor
// addresses the first page.
type FetchFunc[Q comparable, T any] func(ctx context.Context, query Q, cursor string) (Page[T], error)

// KeyFunc extracts the stable identity of an item.
type KeyFunc[K comparable, T any] func(T) K

// CommitFunc performs the confirming request for an optimistic mutation. A
// non-nil item replaces the optimistic value on success.
type CommitFunc[T any] func(ctx context.Context) (*T, error)

// Config configures a Cache.
type Config[Q comparable, K comparable, T any] struct {
	// Name labels logs, spans and metrics.
	Name string
	// Fetch loads pages from the remote list endpoint.
	Fetch FetchFunc[Q, T]
	// Key returns the unique key of an item.
	Key KeyFunc[K, T]
	// Logger receives failure and rollback lines. Defaults to log.Default().
	Logger *log.Logger
}

// Snapshot is the read-only materialized view of a collection.
type Snapshot[Q comparable, T any] struct {
	Query      Q
	Generation uint64
	Items      []T
	Status     Status
	HasMore    bool
	// Err is set only while Status is StatusError.
	Err error
	// Pending counts optimistic mutations not yet confirmed or rolled back.
	Pending int
}

// Quiescent reports whether no request or optimistic mutation is outstanding.
func (s Snapshot[Q, T]) Quiescent() bool {
	return !s.Status.Loading() && s.Pending == 0
}
