package auth

import (
	"context"

	"github.com/louisbranch/pawprint/internal/services/web/integration/identity"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
)

// Verifier checks ID tokens posted by the sign-in widget.
type Verifier interface {
	Verify(token string) (identity.Claims, error)
}

// UserGateway reads and creates account records on the remote API.
type UserGateway interface {
	FindUserByEmail(ctx context.Context, email string) (petapi.User, bool, error)
	RegisterUser(ctx context.Context, user petapi.User) (petapi.User, error)
}

// SessionWriter stores and revokes browser sessions.
type SessionWriter interface {
	PutSession(ctx context.Context, session storage.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
}
