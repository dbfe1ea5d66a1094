// Package public serves the landing page, the health check and the
// site-wide not-found fallback.
package public

import (
	"context"
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// CampaignGateway loads the campaigns featured on the landing page.
type CampaignGateway interface {
	RecommendedCampaignsFor(ctx context.Context, excludeID string, limit int) ([]petapi.Campaign, error)
}

// Module provides the unauthenticated root routes.
type Module struct {
	gateway CampaignGateway
	deps    module.Dependencies
}

// New returns the public module. A nil gateway renders the landing page
// without recommendations.
func New(gateway CampaignGateway, deps module.Dependencies) Module {
	return Module{gateway: gateway, deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires the root routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), modulehandler.NewBase(m.deps))
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
