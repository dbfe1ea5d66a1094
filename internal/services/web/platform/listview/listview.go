// Package listview connects mounted views to infinite-list rendering.
package listview

import (
	"context"
	"errors"
	"strings"

	"github.com/louisbranch/pawprint/internal/platform/timeouts"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
	"github.com/louisbranch/pawprint/internal/services/web/views"
)

// ErrMissingVisitor is returned when a list is opened without a visitor id.
var ErrMissingVisitor = errors.New("listview: visitor id is required")

// Result is the slice of a mounted list one response renders.
type Result[T any] struct {
	Items []T
	Tail  webtemplates.Tail
	// Error is the localized failure when nothing could be shown.
	Error string
	// Toasts carries rejected optimistic edits queued on the view.
	Toasts []webtemplates.Toast
	// Stale marks a continuation for a superseded list; render nothing.
	Stale bool
}

// Open mounts query for visitorID, starting a fresh generation, and returns
// its first window. morePath is the continuation route.
func Open[Q comparable, K comparable, T any](ctx context.Context, registry *views.Registry[Q, K, T], visitorID string, query Q, morePath string, loc *webi18n.Localizer) (Result[T], error) {
	if strings.TrimSpace(visitorID) == "" {
		return Result[T]{}, ErrMissingVisitor
	}
	view, _, err := registry.Mount(ctx, visitorID, query)
	if err != nil {
		return Result[T]{}, err
	}
	window, err := view.First(ctx, timeouts.FirstPage)
	if err != nil {
		return Result[T]{}, err
	}
	return build(view, window, morePath, loc), nil
}

// Resume renders the visitor's mounted view as it stands when it still
// holds query, keeping optimistic edits made since the last render. Any
// other state falls back to Open.
func Resume[Q comparable, K comparable, T any](ctx context.Context, registry *views.Registry[Q, K, T], visitorID string, query Q, morePath string, loc *webi18n.Localizer) (Result[T], error) {
	if strings.TrimSpace(visitorID) == "" {
		return Result[T]{}, ErrMissingVisitor
	}
	view, ok := registry.Lookup(visitorID)
	if !ok {
		return Open(ctx, registry, visitorID, query, morePath, loc)
	}
	if snap := view.Snapshot(); snap.Generation == 0 || snap.Query != query {
		return Open(ctx, registry, visitorID, query, morePath, loc)
	}
	window, err := view.First(ctx, timeouts.FirstPage)
	if err != nil {
		return Result[T]{}, err
	}
	return build(view, window, morePath, loc), nil
}

// Continue resolves a continuation token against the visitor's mounted
// view. A view that is gone, or a token from an older generation, yields a
// stale result.
func Continue[Q comparable, K comparable, T any](ctx context.Context, registry *views.Registry[Q, K, T], visitorID, token, morePath string, loc *webi18n.Localizer) (Result[T], error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Result[T]{}, apperrors.E(apperrors.KindInvalidInput, "continuation token is required")
	}
	view, ok := registry.Lookup(visitorID)
	if !ok {
		return Result[T]{Stale: true}, nil
	}
	window, err := view.Next(ctx, token, timeouts.FirstPage)
	if err != nil {
		return Result[T]{}, apperrors.E(apperrors.KindInvalidInput, err.Error())
	}
	if window.Stale {
		return Result[T]{Stale: true}, nil
	}
	return build(view, window, morePath, loc), nil
}

func build[Q comparable, K comparable, T any](view *views.View[Q, K, T], window views.Window[T], morePath string, loc *webi18n.Localizer) Result[T] {
	result := Result[T]{
		Items: window.Items,
		Tail: webtemplates.Tail{
			Path:    morePath,
			Next:    window.Next,
			Loading: window.Loading,
		},
		Toasts: modulehandler.NoticeToasts(loc, view.Notices()),
	}
	if window.Err != nil {
		message := weberror.PublicMessage(loc, window.Err)
		result.Tail.Error = message
		if len(window.Items) == 0 {
			result.Error = message
		}
	}
	return result
}
