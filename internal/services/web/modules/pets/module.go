// Package pets serves the public pet catalogue, the owner's pet management
// screens and the adoption request workflow.
package pets

import (
	"errors"
	"net/http"
	"strings"
	"time"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// Config carries what the pet modules need at mount time.
type Config struct {
	Gateway Gateway
	Images  ImageUploader
	// Public backs the catalogue grid.
	Public *PetViews
	// Owned backs the owner's pet table.
	Owned *PetViews
	// Adoptions backs the owner's adoption request table.
	Adoptions *AdoptionViews
	Deps      module.Dependencies
	Now       func() time.Time
}

// Module provides one group of pet routes.
type Module struct {
	cfg            Config
	id             string
	prefix         string
	registerRoutes func(*http.ServeMux, handlers)
}

// NewPublic returns the catalogue module mounted at /pets/.
func NewPublic(cfg Config) Module {
	return newModule("pets", routepath.PetsPrefix, registerPublicRoutes, cfg)
}

// NewOwner returns the signed-in pet management module mounted at /app/pets/.
func NewOwner(cfg Config) Module {
	return newModule("pets-owner", routepath.AppPetsPrefix, registerOwnerRoutes, cfg)
}

// NewAdoptions returns the adoption request module mounted at /app/adoptions/.
func NewAdoptions(cfg Config) Module {
	return newModule("adoptions", routepath.AppAdoptionsPrefix, registerAdoptionRoutes, cfg)
}

func newModule(id string, prefix string, registerRoutes func(*http.ServeMux, handlers), cfg Config) Module {
	return Module{cfg: cfg, id: strings.TrimSpace(id), prefix: prefix, registerRoutes: registerRoutes}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string { return m.id }

// Mount wires the module's routes.
func (m Module) Mount() (module.Mount, error) {
	if m.registerRoutes == nil {
		return module.Mount{}, errors.New("pets: module has no routes")
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
	if cfg.Public == nil || cfg.Owned == nil || cfg.Adoptions == nil {
		return handlers{}, errors.New("pets: view registries are required")
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
		Base:      modulehandler.NewBase(cfg.Deps),
		service:   newService(cfg.Gateway, cfg.Images, cfg.Now),
		public:    cfg.Public,
		owned:     cfg.Owned,
		adoptions: cfg.Adoptions,
	}, nil
}
