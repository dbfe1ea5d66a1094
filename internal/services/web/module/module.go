// Package module defines the feature contract used by web composition.
package module

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
)

// RoleAdmin is the role that unlocks the admin screens.
const RoleAdmin = "admin"

// Viewer is the signed-in user as seen by page chrome and handlers.
type Viewer struct {
	SignedIn    bool
	UserID      string
	DisplayName string
	Email       string
	AvatarURL   string
	Role        string
}

// IsAdmin reports whether the viewer may use the admin screens.
func (v Viewer) IsAdmin() bool {
	return v.SignedIn && strings.EqualFold(strings.TrimSpace(v.Role), RoleAdmin)
}

type viewerKey struct{}

// WithViewer stores the resolved viewer in ctx.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFromContext returns the viewer stored by WithViewer.
func ViewerFromContext(ctx context.Context) Viewer {
	if ctx == nil {
		return Viewer{}
	}
	viewer, _ := ctx.Value(viewerKey{}).(Viewer)
	return viewer
}

// ResolveViewer resolves the viewer for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveVisitor returns the stable browser id that keys mounted views,
// issuing one when the request has none.
type ResolveVisitor func(http.ResponseWriter, *http.Request) string

// Dependencies carries request resolvers shared by every module.
type Dependencies struct {
	ResolveViewer  ResolveViewer
	ResolveVisitor ResolveVisitor
	SchemePolicy   requestmeta.SchemePolicy
}

// ViewerFromRequest is the default ResolveViewer.
func ViewerFromRequest(r *http.Request) Viewer {
	if r == nil {
		return Viewer{}
	}
	return ViewerFromContext(r.Context())
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
