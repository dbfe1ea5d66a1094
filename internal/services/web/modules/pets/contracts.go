package pets

import (
	"context"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/platform/imageform"
	"github.com/louisbranch/pawprint/internal/services/web/views"
)

// Gateway performs the pet and adoption writes behind the pet screens.
type Gateway interface {
	GetPet(ctx context.Context, id string) (petapi.Pet, error)
	CreatePet(ctx context.Context, pet petapi.Pet) (petapi.Pet, error)
	UpdatePet(ctx context.Context, id string, patch petapi.PetPatch) error
	SetPetAdopted(ctx context.Context, id string, adopted bool) error
	DeletePet(ctx context.Context, id string) error
	RequestAdoption(ctx context.Context, req petapi.AdoptionRequest) (petapi.AdoptionRequest, error)
	ListOwnerAdoptions(ctx context.Context, ownerID string) ([]petapi.AdoptionRequest, error)
	AcceptAdoption(ctx context.Context, id string) error
	RejectAdoption(ctx context.Context, id string) error
}

// ImageUploader stores an uploaded pet photo and returns its public URL.
type ImageUploader = imageform.Uploader

// PetViews holds the per-visitor pet lists.
type PetViews = views.Registry[petapi.PetQuery, string, petapi.Pet]

// AdoptionQuery selects the adoption requests received by one owner.
type AdoptionQuery struct {
	OwnerID string
}

// AdoptionViews holds the per-visitor adoption request lists.
type AdoptionViews = views.Registry[AdoptionQuery, string, petapi.AdoptionRequest]

// AdoptionLister loads every request an owner received.
type AdoptionLister func(ctx context.Context, ownerID string) ([]petapi.AdoptionRequest, error)

// AdoptionFetcher adapts an unpaginated request listing to a single-page
// collection fetch.
func AdoptionFetcher(list AdoptionLister) collection.FetchFunc[AdoptionQuery, petapi.AdoptionRequest] {
	return func(ctx context.Context, query AdoptionQuery, _ string) (collection.Page[petapi.AdoptionRequest], error) {
		requests, err := list(ctx, query.OwnerID)
		if err != nil {
			return collection.Page[petapi.AdoptionRequest]{}, err
		}
		return collection.Page[petapi.AdoptionRequest]{Items: requests}, nil
	}
}
