// Package sessioncookie owns the two browser cookies the site issues: the
// signed-in session and the long-lived visitor id that keys mounted views.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
)

const (
	// Name holds the session id.
	Name = "pawprint_session"
	// VisitorName identifies a browser across anonymous and signed-in pages.
	VisitorName = "pawprint_visitor"

	visitorMaxAge = 365 * 24 * time.Hour
)

// Read returns the session id when the cookie is present.
func Read(r *http.Request) (string, bool) {
	return read(r, Name)
}

// Write sets the session cookie. A zero expiresAt makes it a browser-session
// cookie.
func Write(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, sessionID string, expiresAt time.Time) {
	cookie := newCookie(r, policy, Name, strings.TrimSpace(sessionID))
	if !expiresAt.IsZero() {
		cookie.Expires = expiresAt.UTC()
	}
	set(w, cookie)
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	cookie := newCookie(r, policy, Name, "")
	cookie.MaxAge = -1
	set(w, cookie)
}

// ReadVisitor returns the visitor id when the cookie holds a valid uuid.
func ReadVisitor(r *http.Request) (string, bool) {
	value, ok := read(r, VisitorName)
	if !ok {
		return "", false
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// EnsureVisitor returns the visitor id, issuing a new cookie when the request
// carries none.
func EnsureVisitor(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) string {
	if visitorID, ok := ReadVisitor(r); ok {
		return visitorID
	}
	visitorID := uuid.NewString()
	cookie := newCookie(r, policy, VisitorName, visitorID)
	cookie.MaxAge = int(visitorMaxAge / time.Second)
	set(w, cookie)
	return visitorID
}

func newCookie(r *http.Request, policy requestmeta.SchemePolicy, name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.Secure(r),
		SameSite: http.SameSiteLaxMode,
	}
}

func set(w http.ResponseWriter, cookie *http.Cookie) {
	if w == nil {
		return
	}
	http.SetCookie(w, cookie)
}

func read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}
