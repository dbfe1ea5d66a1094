package listview

import (
	"context"
	"errors"

	"github.com/louisbranch/pawprint/internal/collection"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
	"github.com/louisbranch/pawprint/internal/services/web/views"
)

// Find returns the item stored under key in the visitor's mounted view.
func Find[Q comparable, K comparable, T any](registry *views.Registry[Q, K, T], visitorID string, key K) (T, bool) {
	var zero T
	if registry == nil {
		return zero, false
	}
	view, ok := registry.Lookup(visitorID)
	if !ok {
		return zero, false
	}
	return view.Get(key)
}

// Mutate applies m to the visitor's mounted view and confirms it with commit
// in the background, reporting true. When no mounted view holds the item,
// commit runs inline and its error is returned. A second edit of an item
// whose first edit is still in flight is a conflict.
func Mutate[Q comparable, K comparable, T any](ctx context.Context, registry *views.Registry[Q, K, T], visitorID string, m collection.Mutation[K, T], commit collection.CommitFunc[T]) (bool, error) {
	if commit == nil {
		return false, errors.New("listview: commit is required")
	}
	if registry != nil {
		if view, ok := registry.Lookup(visitorID); ok {
			_, _, err := view.Mutate(ctx, m, commit)
			switch {
			case err == nil:
				return true, nil
			case errors.Is(err, collection.ErrMutationPending):
				return false, apperrors.EK(apperrors.KindConflict, "error.conflict", err.Error())
			case errors.Is(err, collection.ErrNotFound), errors.Is(err, collection.ErrKeyExists), errors.Is(err, collection.ErrClosed):
			default:
				return false, err
			}
		}
	}
	_, err := commit(ctx)
	return false, err
}

// Toasts drains the visitor's queued rejection notices as error toasts.
func Toasts[Q comparable, K comparable, T any](registry *views.Registry[Q, K, T], visitorID string, loc *webi18n.Localizer) []webtemplates.Toast {
	if registry == nil {
		return nil
	}
	view, ok := registry.Lookup(visitorID)
	if !ok {
		return nil
	}
	return modulehandler.NoticeToasts(loc, view.Notices())
}
