package campaigns

import (
	"context"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/platform/imageform"
	"github.com/louisbranch/pawprint/internal/services/web/views"
	"github.com/shopspring/decimal"
)

// Gateway performs the campaign and donation calls behind the campaign
// screens.
type Gateway interface {
	GetCampaign(ctx context.Context, id string) (petapi.Campaign, error)
	CreateCampaign(ctx context.Context, campaign petapi.Campaign) (petapi.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, patch petapi.CampaignPatch) error
	SetCampaignPaused(ctx context.Context, id string, paused bool) error
	RecommendedCampaignsFor(ctx context.Context, excludeID string, limit int) ([]petapi.Campaign, error)
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error)
	RecordDonation(ctx context.Context, donation petapi.Donation) (petapi.Donation, error)
}

// ImageUploader stores an uploaded pet photo and returns its public URL.
type ImageUploader = imageform.Uploader

// CampaignViews holds the per-visitor campaign lists.
type CampaignViews = views.Registry[petapi.CampaignQuery, string, petapi.Campaign]
