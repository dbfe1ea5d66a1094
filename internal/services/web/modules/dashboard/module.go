// Package dashboard serves the signed-in landing page and the viewer's
// donation history.
package dashboard

import (
	"context"
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// DonationGateway lists a user's donations.
type DonationGateway interface {
	ListUserDonations(ctx context.Context, userID string) ([]petapi.Donation, error)
}

// Module provides the /app/ root routes.
type Module struct {
	gateway DonationGateway
	deps    module.Dependencies
}

// New returns the dashboard module. A nil gateway serves the donations page
// as unavailable.
func New(gateway DonationGateway, deps module.Dependencies) Module {
	return Module{gateway: gateway, deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires the dashboard routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.gateway, modulehandler.NewBase(m.deps)))
	return module.Mount{Prefix: routepath.AppPrefix, Handler: mux}, nil
}

type unavailableGateway struct{}

func (unavailableGateway) ListUserDonations(context.Context, string) ([]petapi.Donation, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "donation service is not configured")
}
