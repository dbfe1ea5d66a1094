package campaigns

import (
	"context"
	"io"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/shopspring/decimal"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "campaign service is not configured")
}

func (unavailableGateway) GetCampaign(context.Context, string) (petapi.Campaign, error) {
	return petapi.Campaign{}, errUnavailable()
}

func (unavailableGateway) CreateCampaign(context.Context, petapi.Campaign) (petapi.Campaign, error) {
	return petapi.Campaign{}, errUnavailable()
}

func (unavailableGateway) UpdateCampaign(context.Context, string, petapi.CampaignPatch) error {
	return errUnavailable()
}

func (unavailableGateway) SetCampaignPaused(context.Context, string, bool) error {
	return errUnavailable()
}

func (unavailableGateway) RecommendedCampaignsFor(context.Context, string, int) ([]petapi.Campaign, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) CreatePaymentIntent(context.Context, decimal.Decimal) (string, error) {
	return "", errUnavailable()
}

func (unavailableGateway) RecordDonation(context.Context, petapi.Donation) (petapi.Donation, error) {
	return petapi.Donation{}, errUnavailable()
}

type unavailableUploader struct{}

func (unavailableUploader) Upload(context.Context, string, io.Reader) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "image upload is not configured")
}
