// Package admin serves the moderation screens for pets, campaigns and
// users. Composition only routes admins here.
package admin

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// Config carries what the admin module needs at mount time.
type Config struct {
	Gateway   Gateway
	Pets      *PetViews
	Campaigns *CampaignViews
	Users     *UserViews
	Deps      module.Dependencies
}

// Module provides the /app/admin/ routes.
type Module struct {
	cfg Config
}

// New returns the admin module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "admin" }

// Mount wires the module's routes.
func (m Module) Mount() (module.Mount, error) {
	h, err := newHandlers(m.cfg)
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AdminPrefix, Handler: mux}, nil
}

func newHandlers(cfg Config) (handlers, error) {
	if cfg.Pets == nil || cfg.Campaigns == nil || cfg.Users == nil {
		return handlers{}, errors.New("admin: view registries are required")
	}
	if cfg.Gateway == nil {
		cfg.Gateway = unavailableGateway{}
	}
	return handlers{
		Base:      modulehandler.NewBase(cfg.Deps),
		gateway:   cfg.Gateway,
		pets:      cfg.Pets,
		campaigns: cfg.Campaigns,
		users:     cfg.Users,
	}, nil
}
