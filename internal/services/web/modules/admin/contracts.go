package admin

import (
	"context"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/views"
)

// Gateway performs the moderation writes behind the admin screens.
type Gateway interface {
	GetPet(ctx context.Context, id string) (petapi.Pet, error)
	GetCampaign(ctx context.Context, id string) (petapi.Campaign, error)
	SetPetAdopted(ctx context.Context, id string, adopted bool) error
	DeletePet(ctx context.Context, id string) error
	SetCampaignPaused(ctx context.Context, id string, paused bool) error
	DeleteCampaign(ctx context.Context, id string) error
	PromoteToAdmin(ctx context.Context, id string) error
}

// PetViews holds the per-visitor listing of every pet.
type PetViews = views.Registry[petapi.PetQuery, string, petapi.Pet]

// CampaignViews holds the per-visitor listing of every campaign.
type CampaignViews = views.Registry[petapi.CampaignQuery, string, petapi.Campaign]

// UserQuery selects every account. The API offers no filters.
type UserQuery struct{}

// UserViews holds the per-visitor users table.
type UserViews = views.Registry[UserQuery, string, petapi.User]

// UserLister loads every account.
type UserLister func(ctx context.Context) ([]petapi.User, error)

// UserFetcher adapts the unpaginated users endpoint to a single-page
// collection fetch.
func UserFetcher(list UserLister) collection.FetchFunc[UserQuery, petapi.User] {
	return func(ctx context.Context, _ UserQuery, _ string) (collection.Page[petapi.User], error) {
		users, err := list(ctx)
		if err != nil {
			return collection.Page[petapi.User]{}, err
		}
		return collection.Page[petapi.User]{Items: users}, nil
	}
}
