// Package principal resolves the signed-in user once per request.
package principal

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/pawprint/internal/platform/requestctx"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/pawprint/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
)

// SessionReader is the narrow session store surface needed per request.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (storage.Session, bool, error)
}

// Resolver maps session cookies to viewers.
type Resolver struct {
	sessions SessionReader
	policy   requestmeta.SchemePolicy
	logger   *log.Logger
}

// New builds a resolver over sessions.
func New(sessions SessionReader, policy requestmeta.SchemePolicy, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{sessions: sessions, policy: policy, logger: logger}
}

// Middleware loads the session named by the cookie and stores the viewer,
// user id, and bearer token on the request context. Unknown or expired
// sessions clear the cookie and continue anonymously.
func (p *Resolver) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := p.lookup(w, r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := requestctx.WithUserID(r.Context(), session.UserID)
			ctx = requestctx.WithBearerToken(ctx, session.Token)
			ctx = module.WithViewer(ctx, ViewerFromSession(session))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (p *Resolver) lookup(w http.ResponseWriter, r *http.Request) (storage.Session, bool) {
	sessionID, ok := sessioncookie.Read(r)
	if !ok || p.sessions == nil {
		return storage.Session{}, false
	}
	session, found, err := p.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		p.logger.Printf("session lookup failed request_id=%s err=%v", httpx.RequestIDFromContext(r.Context()), err)
		return storage.Session{}, false
	}
	if !found || strings.TrimSpace(session.UserID) == "" {
		sessioncookie.Clear(w, r, p.policy)
		return storage.Session{}, false
	}
	return session, true
}

// Viewer returns the viewer stored by Middleware.
func (p *Resolver) Viewer(r *http.Request) module.Viewer {
	return module.ViewerFromRequest(r)
}

// Visitor returns the browser id that keys mounted views, issuing a cookie
// on first contact.
func (p *Resolver) Visitor(w http.ResponseWriter, r *http.Request) string {
	return sessioncookie.EnsureVisitor(w, r, p.policy)
}

// Dependencies returns the module resolvers backed by p.
func (p *Resolver) Dependencies() module.Dependencies {
	return module.Dependencies{
		ResolveViewer:  p.Viewer,
		ResolveVisitor: p.Visitor,
		SchemePolicy:   p.policy,
	}
}

// ViewerFromSession projects a stored session onto page chrome state.
func ViewerFromSession(session storage.Session) module.Viewer {
	return module.Viewer{
		SignedIn:    true,
		UserID:      session.UserID,
		DisplayName: session.DisplayName,
		Email:       session.Email,
		AvatarURL:   session.AvatarURL,
		Role:        session.Role,
	}
}
