// Package campaigns serves the public donation campaigns, the owner's
// campaign management screens and the donation flow.
package campaigns

import (
	"errors"
	"net/http"
	"strings"
	"time"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// Config carries what the campaign modules need at mount time.
type Config struct {
	Gateway Gateway
	Images  ImageUploader
	// Public backs the campaign grid.
	Public *CampaignViews
	// Owned backs the owner's campaign table.
	Owned *CampaignViews
	// PublishableKey configures the payment widget on the donate page.
	PublishableKey string
	Deps           module.Dependencies
	Now            func() time.Time
}

// Module provides one group of campaign routes.
type Module struct {
	cfg            Config
	id             string
	prefix         string
	registerRoutes func(*http.ServeMux, handlers)
}

// NewPublic returns the campaign listing module mounted at /campaigns/.
func NewPublic(cfg Config) Module {
	return newModule("campaigns", routepath.CampaignsPrefix, registerPublicRoutes, cfg)
}

// NewOwner returns the signed-in campaign module mounted at /app/campaigns/.
func NewOwner(cfg Config) Module {
	return newModule("campaigns-owner", routepath.AppCampaignsPrefix, registerOwnerRoutes, cfg)
}

func newModule(id string, prefix string, registerRoutes func(*http.ServeMux, handlers), cfg Config) Module {
	return Module{cfg: cfg, id: strings.TrimSpace(id), prefix: prefix, registerRoutes: registerRoutes}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string { return m.id }

// Mount wires the module's routes.
func (m Module) Mount() (module.Mount, error) {
	if m.registerRoutes == nil {
		return module.Mount{}, errors.New("campaigns: module has no routes")
	}
	h, err := newHandlers(m.cfg)
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	m.registerRoutes(mux, h)
	return module.Mount{Prefix: m.prefix, Handler: mux}, nil
}

func newHandlers(cfg Config) (handlers, error) {
	if cfg.Public == nil || cfg.Owned == nil {
		return handlers{}, errors.New("campaigns: view registries are required")
	}
	if cfg.Gateway == nil {
		cfg.Gateway = unavailableGateway{}
	}
	if cfg.Images == nil {
		cfg.Images = unavailableUploader{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return handlers{
		Base:           modulehandler.NewBase(cfg.Deps),
		service:        service{gateway: cfg.Gateway, images: cfg.Images, now: cfg.Now},
		public:         cfg.Public,
		owned:          cfg.Owned,
		publishableKey: strings.TrimSpace(cfg.PublishableKey),
	}, nil
}
