package modules

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/modules/admin"
	"github.com/louisbranch/pawprint/internal/services/web/modules/pets"
	"github.com/louisbranch/pawprint/internal/services/web/views"
)

// ViewSource loads the remote collections behind mounted views.
type ViewSource interface {
	PetFetcher(limit int) collection.FetchFunc[petapi.PetQuery, petapi.Pet]
	CampaignFetcher(limit int) collection.FetchFunc[petapi.CampaignQuery, petapi.Campaign]
	ListOwnerAdoptions(ctx context.Context, ownerID string) ([]petapi.AdoptionRequest, error)
	ListUsers(ctx context.Context) ([]petapi.User, error)
}

// ViewConfig bounds every registry.
type ViewConfig struct {
	// PageSize is the remote page size. Zero keeps each listing's default.
	PageSize int
	Capacity int
	TTL      time.Duration
	Logger   *log.Logger
}

// Views holds one registry per list screen. A visitor has at most one
// mounted view per registry.
type Views struct {
	PublicPets      *pets.PetViews
	OwnedPets       *pets.PetViews
	AdminPets       *admin.PetViews
	PublicCampaigns *views.Registry[petapi.CampaignQuery, string, petapi.Campaign]
	OwnedCampaigns  *views.Registry[petapi.CampaignQuery, string, petapi.Campaign]
	AdminCampaigns  *views.Registry[petapi.CampaignQuery, string, petapi.Campaign]
	Adoptions       *pets.AdoptionViews
	Users           *admin.UserViews

	closers []func()
}

// NewViews builds every registry over source.
func NewViews(source ViewSource, cfg ViewConfig) (*Views, error) {
	if source == nil {
		return nil, errors.New("view source is required")
	}
	v := &Views{}
	petFetch := source.PetFetcher(cfg.PageSize)
	campaignFetch := source.CampaignFetcher(cfg.PageSize)

	petViews := func(name string) (*pets.PetViews, error) {
		return register(v, views.Config[petapi.PetQuery, string, petapi.Pet]{
			Name: name, Fetch: petFetch, Key: petapi.Pet.Key,
			Capacity: cfg.Capacity, TTL: cfg.TTL, Logger: cfg.Logger,
		})
	}
	campaignViews := func(name string) (*views.Registry[petapi.CampaignQuery, string, petapi.Campaign], error) {
		return register(v, views.Config[petapi.CampaignQuery, string, petapi.Campaign]{
			Name: name, Fetch: campaignFetch, Key: petapi.Campaign.Key,
			Capacity: cfg.Capacity, TTL: cfg.TTL, Logger: cfg.Logger,
		})
	}

	var err error
	if v.PublicPets, err = petViews("pets.public"); err != nil {
		return nil, v.fail(err)
	}
	if v.OwnedPets, err = petViews("pets.owned"); err != nil {
		return nil, v.fail(err)
	}
	if v.AdminPets, err = petViews("pets.admin"); err != nil {
		return nil, v.fail(err)
	}
	if v.PublicCampaigns, err = campaignViews("campaigns.public"); err != nil {
		return nil, v.fail(err)
	}
	if v.OwnedCampaigns, err = campaignViews("campaigns.owned"); err != nil {
		return nil, v.fail(err)
	}
	if v.AdminCampaigns, err = campaignViews("campaigns.admin"); err != nil {
		return nil, v.fail(err)
	}
	if v.Adoptions, err = register(v, views.Config[pets.AdoptionQuery, string, petapi.AdoptionRequest]{
		Name: "adoptions", Fetch: pets.AdoptionFetcher(source.ListOwnerAdoptions), Key: petapi.AdoptionRequest.Key,
		Capacity: cfg.Capacity, TTL: cfg.TTL, Logger: cfg.Logger,
	}); err != nil {
		return nil, v.fail(err)
	}
	if v.Users, err = register(v, views.Config[admin.UserQuery, string, petapi.User]{
		Name: "users", Fetch: admin.UserFetcher(source.ListUsers), Key: petapi.User.Key,
		Capacity: cfg.Capacity, TTL: cfg.TTL, Logger: cfg.Logger,
	}); err != nil {
		return nil, v.fail(err)
	}
	return v, nil
}

func register[Q comparable, T any](v *Views, cfg views.Config[Q, string, T]) (*views.Registry[Q, string, T], error) {
	registry, err := views.NewRegistry(cfg)
	if err != nil {
		return nil, err
	}
	v.closers = append(v.closers, registry.Close)
	return registry, nil
}

func (v *Views) fail(err error) error {
	v.Close()
	return err
}

// Close unmounts every view and waits for in-flight requests to drain.
func (v *Views) Close() {
	if v == nil {
		return
	}
	for _, closeRegistry := range v.closers {
		closeRegistry()
	}
	v.closers = nil
}
