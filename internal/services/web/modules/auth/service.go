package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/pawprint/internal/services/web/integration/identity"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
)

type service struct {
	verifier Verifier
	users    UserGateway
	sessions SessionWriter
	now      func() time.Time
}

// signIn verifies token, looks up the account it belongs to and stores a
// session. The session lasts as long as the token, which the remote API
// also receives.
func (s service) signIn(ctx context.Context, token string) (storage.Session, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return storage.Session{}, err
	}
	user, found, err := s.users.FindUserByEmail(ctx, claims.Email)
	if err != nil {
		return storage.Session{}, fmt.Errorf("find user: %w", err)
	}
	if !found {
		return storage.Session{}, missingAccountError{email: claims.Email}
	}
	return s.startSession(ctx, token, claims, user)
}

// missingAccountError is returned when a verified identity has not
// registered yet.
type missingAccountError struct {
	email string
}

func (e missingAccountError) Error() string {
	return "no account for " + e.email
}

func (e missingAccountError) Unwrap() error {
	return apperrors.EK(apperrors.KindUnauthorized, "auth.account_missing", "account not registered")
}

// registration is the raw register form.
type registration struct {
	Token       string
	DisplayName string
	PhotoURL    string
}

func (in registration) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Token) == "" {
		errs["id_token"] = "validation.token"
	}
	if in.DisplayName == "" {
		errs["display_name"] = "validation.required"
	}
	if in.PhotoURL != "" && !isWebURL(in.PhotoURL) {
		errs["photo_url"] = "validation.url"
	}
	return errs
}

func isWebURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// register creates the account for a verified token and signs it in. An
// email that already has an account is a conflict.
func (s service) register(ctx context.Context, in registration) (storage.Session, error) {
	claims, err := s.verifier.Verify(in.Token)
	if err != nil {
		return storage.Session{}, err
	}
	_, found, err := s.users.FindUserByEmail(ctx, claims.Email)
	if err != nil {
		return storage.Session{}, fmt.Errorf("find user: %w", err)
	}
	if found {
		return storage.Session{}, apperrors.EK(apperrors.KindConflict, "auth.account_exists", "account already exists")
	}
	photo := in.PhotoURL
	if photo == "" {
		photo = claims.PictureURL
	}
	user, err := s.users.RegisterUser(ctx, petapi.User{
		UID:         claims.UserID,
		DisplayName: in.DisplayName,
		Email:       claims.Email,
		PhotoURL:    photo,
	})
	if err != nil {
		return storage.Session{}, fmt.Errorf("register user: %w", err)
	}
	return s.startSession(ctx, in.Token, claims, user)
}

func (s service) startSession(ctx context.Context, token string, claims identity.Claims, user petapi.User) (storage.Session, error) {
	session := storage.Session{
		ID:          uuid.NewString(),
		UserID:      firstNonEmpty(user.ID, claims.UserID),
		DisplayName: firstNonEmpty(user.DisplayName, claims.DisplayName, claims.Email),
		Email:       firstNonEmpty(user.Email, claims.Email),
		AvatarURL:   firstNonEmpty(user.PhotoURL, claims.PictureURL),
		Role:        user.Role,
		Token:       strings.TrimSpace(token),
		ExpiresAt:   claims.ExpiresAt,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.sessions.PutSession(ctx, session); err != nil {
		return storage.Session{}, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
