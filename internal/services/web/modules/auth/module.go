// Package auth serves sign-in, registration and sign-out.
package auth

import (
	"net/http"
	"strings"
	"time"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// Config carries what the auth module needs at mount time.
type Config struct {
	Verifier Verifier
	Users    UserGateway
	Sessions SessionWriter
	// ProviderConfig is handed to the sign-in widget on the auth pages.
	ProviderConfig string
	Deps           module.Dependencies
	Now            func() time.Time
}

// Module provides the /auth/ routes.
type Module struct {
	cfg Config
}

// New returns the auth module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "auth" }

// Mount wires the module's routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.cfg))
	return module.Mount{Prefix: routepath.AuthPrefix, Handler: mux}, nil
}

func newHandlers(cfg Config) handlers {
	if cfg.Verifier == nil {
		cfg.Verifier = unavailableVerifier{}
	}
	if cfg.Users == nil {
		cfg.Users = unavailableUsers{}
	}
	if cfg.Sessions == nil {
		cfg.Sessions = unavailableSessions{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return handlers{
		Base:           modulehandler.NewBase(cfg.Deps),
		service:        service{verifier: cfg.Verifier, users: cfg.Users, sessions: cfg.Sessions, now: cfg.Now},
		providerConfig: strings.TrimSpace(cfg.ProviderConfig),
	}
}
