package auth

import (
	"context"

	"github.com/louisbranch/pawprint/internal/services/web/integration/identity"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
)

type unavailableVerifier struct{}

func (unavailableVerifier) Verify(string) (identity.Claims, error) {
	return identity.Claims{}, apperrors.E(apperrors.KindUnavailable, "sign-in is not configured")
}

type unavailableUsers struct{}

func (unavailableUsers) FindUserByEmail(context.Context, string) (petapi.User, bool, error) {
	return petapi.User{}, false, apperrors.E(apperrors.KindUnavailable, "user service is not configured")
}

func (unavailableUsers) RegisterUser(context.Context, petapi.User) (petapi.User, error) {
	return petapi.User{}, apperrors.E(apperrors.KindUnavailable, "user service is not configured")
}

type unavailableSessions struct{}

func (unavailableSessions) PutSession(context.Context, storage.Session) error {
	return apperrors.E(apperrors.KindUnavailable, "session store is not configured")
}

func (unavailableSessions) DeleteSession(context.Context, string) error {
	return nil
}
