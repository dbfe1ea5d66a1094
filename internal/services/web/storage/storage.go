package storage

import (
	"context"
	"time"
)

// Session is one signed-in browser session.
type Session struct {
	ID          string
	UserID      string
	DisplayName string
	Email       string
	AvatarURL   string
	Role        string
	// Token is the verified ID token forwarded to the remote API.
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// SessionStore persists sessions keyed by their opaque cookie value.
type SessionStore interface {
	Close() error
	PutSession(ctx context.Context, session Session) error
	// GetSession returns false for unknown and expired sessions.
	GetSession(ctx context.Context, sessionID string) (Session, bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
