// Package identity verifies ID tokens minted by the sign-in provider.
package identity

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
)

// Config defines how ID tokens are verified.
type Config struct {
	Issuer   string
	Audience string
	Secret   []byte
	Now      func() time.Time
}

// Claims captures a verified identity.
type Claims struct {
	UserID      string
	DisplayName string
	Email       string
	PictureURL  string
	ExpiresAt   time.Time
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Verifier validates ID tokens.
type Verifier struct {
	cfg Config
}

// NewVerifier validates cfg. Secret may be raw bytes or base64 text.
func NewVerifier(cfg Config) (*Verifier, error) {
	cfg.Issuer = strings.TrimSpace(cfg.Issuer)
	cfg.Audience = strings.TrimSpace(cfg.Audience)
	if cfg.Issuer == "" {
		return nil, errors.New("identity issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("identity audience is required")
	}
	if len(cfg.Secret) < 32 {
		return nil, fmt.Errorf("identity secret must be at least 32 bytes, got %d", len(cfg.Secret))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Verifier{cfg: cfg}, nil
}

// DecodeSecret accepts base64 (padded or raw) text and falls back to the
// literal bytes.
func DecodeSecret(value string) []byte {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(value); err == nil {
		return decoded
	}
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		return decoded
	}
	return []byte(value)
}

// Verify checks signature, issuer, audience and lifetime of token.
func (v *Verifier) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_required", "id token is required")
	}

	var parsed idTokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.Issuer != v.cfg.Issuer {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token issuer mismatch")
	}
	if !slices.Contains([]string(parsed.Audience), v.cfg.Audience) {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token audience mismatch")
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token subject is required")
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token exp is required")
	}

	now := v.cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_expired", "id token is expired")
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time.UTC()) {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token not active yet")
	}

	return Claims{
		UserID:      parsed.Subject,
		DisplayName: strings.TrimSpace(parsed.Name),
		Email:       strings.TrimSpace(parsed.Email),
		PictureURL:  strings.TrimSpace(parsed.Picture),
		ExpiresAt:   exp,
	}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token alg is invalid")
	}
	return apperrors.EK(apperrors.KindUnauthorized, "error.auth.token_invalid", "id token is invalid")
}
