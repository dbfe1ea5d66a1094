package admin

import (
	"context"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "admin service is not configured")
}

func (unavailableGateway) GetPet(context.Context, string) (petapi.Pet, error) {
	return petapi.Pet{}, errUnavailable()
}

func (unavailableGateway) GetCampaign(context.Context, string) (petapi.Campaign, error) {
	return petapi.Campaign{}, errUnavailable()
}

func (unavailableGateway) SetPetAdopted(context.Context, string, bool) error { return errUnavailable() }

func (unavailableGateway) DeletePet(context.Context, string) error { return errUnavailable() }

func (unavailableGateway) SetCampaignPaused(context.Context, string, bool) error {
	return errUnavailable()
}

func (unavailableGateway) DeleteCampaign(context.Context, string) error { return errUnavailable() }

func (unavailableGateway) PromoteToAdmin(context.Context, string) error { return errUnavailable() }
