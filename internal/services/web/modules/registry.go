package modules

import (
	"github.com/louisbranch/pawprint/internal/services/web/modules/admin"
	"github.com/louisbranch/pawprint/internal/services/web/modules/auth"
	"github.com/louisbranch/pawprint/internal/services/web/modules/campaigns"
	"github.com/louisbranch/pawprint/internal/services/web/modules/dashboard"
	"github.com/louisbranch/pawprint/internal/services/web/modules/pets"
	"github.com/louisbranch/pawprint/internal/services/web/modules/public"
)

// DefaultPublicModules returns the modules served without a session.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		public.New(publicGateway(deps), deps.Resolvers),
		pets.NewPublic(petConfig(deps)),
		campaigns.NewPublic(campaignConfig(deps)),
		auth.New(authConfig(deps)),
	}
}

// DefaultProtectedModules returns the modules mounted under /app/.
func DefaultProtectedModules(deps Dependencies) []Module {
	return []Module{
		dashboard.New(donationGateway(deps), deps.Resolvers),
		pets.NewOwner(petConfig(deps)),
		pets.NewAdoptions(petConfig(deps)),
		campaigns.NewOwner(campaignConfig(deps)),
	}
}

// DefaultAdminModules returns the modules mounted under /app/admin/.
func DefaultAdminModules(deps Dependencies) []Module {
	cfg := admin.Config{Deps: deps.Resolvers}
	if deps.API != nil {
		cfg.Gateway = deps.API
	}
	if deps.Views != nil {
		cfg.Pets = deps.Views.AdminPets
		cfg.Campaigns = deps.Views.AdminCampaigns
		cfg.Users = deps.Views.Users
	}
	return []Module{admin.New(cfg)}
}

func petConfig(deps Dependencies) pets.Config {
	cfg := pets.Config{Images: deps.Images, Deps: deps.Resolvers, Now: deps.Now}
	if deps.API != nil {
		cfg.Gateway = deps.API
	}
	if deps.Views != nil {
		cfg.Public = deps.Views.PublicPets
		cfg.Owned = deps.Views.OwnedPets
		cfg.Adoptions = deps.Views.Adoptions
	}
	return cfg
}

func campaignConfig(deps Dependencies) campaigns.Config {
	cfg := campaigns.Config{Images: deps.Images, PublishableKey: deps.PublishableKey, Deps: deps.Resolvers, Now: deps.Now}
	if deps.API != nil {
		cfg.Gateway = deps.API
	}
	if deps.Views != nil {
		cfg.Public = deps.Views.PublicCampaigns
		cfg.Owned = deps.Views.OwnedCampaigns
	}
	return cfg
}

func authConfig(deps Dependencies) auth.Config {
	cfg := auth.Config{
		Verifier:       deps.Verifier,
		Sessions:       deps.Sessions,
		ProviderConfig: deps.ProviderConfig,
		Deps:           deps.Resolvers,
		Now:            deps.Now,
	}
	if deps.API != nil {
		cfg.Users = deps.API
	}
	return cfg
}

// publicGateway keeps a nil API a nil interface so the landing page drops
// its recommendations instead of calling through a nil client.
func publicGateway(deps Dependencies) public.CampaignGateway {
	if deps.API == nil {
		return nil
	}
	return deps.API
}

func donationGateway(deps Dependencies) dashboard.DonationGateway {
	if deps.API == nil {
		return nil
	}
	return deps.API
}
