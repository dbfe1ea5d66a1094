package auth

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/pawprint/internal/services/web/integration/identity"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
)

const (
	testIssuer   = "https://id.pawprint.test"
	testAudience = "pawprint-web"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

// signToken mints an ID token for email that the test verifier accepts.
func signToken(t *testing.T, subject string, email string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":     testIssuer,
		"aud":     testAudience,
		"sub":     subject,
		"exp":     testNow().Add(time.Hour).Unix(),
		"name":    "Google Name",
		"email":   email,
		"picture": "https://img.example.test/google.png",
	}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

type fakeUsers struct {
	mu         sync.Mutex
	users      []petapi.User
	registered []petapi.User
	findErr    error
}

func (f *fakeUsers) FindUserByEmail(_ context.Context, email string) (petapi.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return petapi.User{}, false, f.findErr
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return petapi.User{}, false, nil
}

func (f *fakeUsers) RegisterUser(_ context.Context, user petapi.User) (petapi.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, user)
	user.ID = "user-new"
	f.users = append(f.users, user)
	return user, nil
}

type fakeSessions struct {
	mu      sync.Mutex
	stored  map[string]storage.Session
	deleted []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{stored: map[string]storage.Session{}}
}

func (f *fakeSessions) PutSession(_ context.Context, session storage.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[session.ID] = session
	return nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, sessionID)
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func (f *fakeSessions) only(t *testing.T) storage.Session {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.stored) != 1 {
		t.Fatalf("stored sessions = %d, want 1", len(f.stored))
	}
	for _, session := range f.stored {
		return session
	}
	return storage.Session{}
}

type testEnv struct {
	users    *fakeUsers
	sessions *fakeSessions
	cfg      Config
	viewer   module.Viewer
}

func newTestEnv(t *testing.T, users ...petapi.User) *testEnv {
	t.Helper()
	verifier, err := identity.NewVerifier(identity.Config{Issuer: testIssuer, Audience: testAudience, Secret: testSecret, Now: testNow})
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	env := &testEnv{users: &fakeUsers{users: users}, sessions: newFakeSessions()}
	env.cfg = Config{
		Verifier:       verifier,
		Users:          env.users,
		Sessions:       env.sessions,
		ProviderConfig: "web-client",
		Now:            testNow,
		Deps: module.Dependencies{
			ResolveViewer: func(*http.Request) module.Viewer { return env.viewer },
		},
	}
	return env
}

func (e *testEnv) mux() *http.ServeMux {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(e.cfg))
	return mux
}
