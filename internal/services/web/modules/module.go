// Package modules composes the web feature modules from shared
// dependencies.
package modules

import (
	"time"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/modules/admin"
	"github.com/louisbranch/pawprint/internal/services/web/modules/auth"
	"github.com/louisbranch/pawprint/internal/services/web/modules/campaigns"
	"github.com/louisbranch/pawprint/internal/services/web/modules/dashboard"
	"github.com/louisbranch/pawprint/internal/services/web/modules/pets"
	"github.com/louisbranch/pawprint/internal/services/web/modules/public"
	"github.com/louisbranch/pawprint/internal/services/web/platform/imageform"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// API is the remote API surface the modules share. Each module receives it
// through its own narrow gateway interface.
type API interface {
	pets.Gateway
	campaigns.Gateway
	admin.Gateway
	auth.UserGateway
	dashboard.DonationGateway
	public.CampaignGateway
}

// Dependencies carries the collaborators and shared config required to
// compose the web module registry. Nil collaborators leave the affected
// screens reporting the service as unavailable.
type Dependencies struct {
	API      API
	Images   imageform.Uploader
	Verifier auth.Verifier
	Sessions auth.SessionWriter
	// Views holds the mounted-view registries behind every list screen.
	Views *Views

	// ProviderConfig is handed to the identity provider widget.
	ProviderConfig string
	// PublishableKey is handed to the payment widget.
	PublishableKey string

	Resolvers module.Dependencies
	Now       func() time.Time
}
