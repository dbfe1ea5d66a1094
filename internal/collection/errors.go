package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("collection is closed")
	// ErrKeyExists rejects an optimistic insert whose key is already visible.
	ErrKeyExists = errors.New("item key already exists")
	// ErrNotFound rejects an update or remove for a key that is not visible.
	ErrNotFound = errors.New("item not found")
	// ErrMutationPending rejects a second optimistic mutation on the same key.
	ErrMutationPending = errors.New("item has a pending mutation")
	// ErrUnknownMutation is returned for handles that were already settled or
	// discarded by a reset.
	ErrUnknownMutation = errors.New("unknown mutation")
)

// FetchError records a failed page request.
type FetchError struct {
	Generation uint64
	FirstPage  bool
	Err        error
}

func (e *FetchError) Error() string {
	page := "next page"
	if e.FirstPage {
		page = "first page"
	}
	return fmt.Sprintf("fetch %s (generation %d): %v", page, e.Generation, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MutationRejectedError reports a confirming request that failed and was
// rolled back.
type MutationRejectedError struct {
	ID   MutationID
	Kind MutationKind
	Key  string
	Err  error
}

func (e *MutationRejectedError) Error() string {
	return fmt.Sprintf("%s %s rejected: %v", e.Kind, e.Key, e.Err)
}

func (e *MutationRejectedError) Unwrap() error { return e.Err }

// IsFetchFailed reports whether err is a page fetch failure.
func IsFetchFailed(err error) bool {
	var target *FetchError
	return errors.As(err, &target)
}

// IsMutationRejected reports whether err is a rolled back mutation.
func IsMutationRejected(err error) bool {
	var target *MutationRejectedError
	return errors.As(err, &target)
}
