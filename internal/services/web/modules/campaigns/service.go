package campaigns

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
	"github.com/shopspring/decimal"
)

// pendingPrefix marks keys of optimistic inserts not yet confirmed.
const pendingPrefix = "pending-"

type service struct {
	gateway Gateway
	images  ImageUploader
	now     func() time.Time
}

// fieldErrors maps form fields to message keys.
type fieldErrors map[string]string

func (f fieldErrors) localize(loc *webi18n.Localizer) webtemplates.FieldError {
	if len(f) == 0 {
		return nil
	}
	out := make(webtemplates.FieldError, len(f))
	for field, key := range f {
		out[field] = loc.Sprintf(key)
	}
	return out
}

// campaignInput is the raw create and update campaign form.
type campaignInput struct {
	PetName          string
	MaxDonation      string
	LastDate         string
	ShortDescription string
	LongDescription  string
	CurrentImage     string
}

func readCampaignInput(r *http.Request) campaignInput {
	value := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	return campaignInput{
		PetName:          value("pet_name"),
		MaxDonation:      value("max_donation"),
		LastDate:         value("last_date"),
		ShortDescription: value("short_description"),
		LongDescription:  value("long_description"),
		CurrentImage:     value("current_image"),
	}
}

// validate checks the form. The last date may not be before today, so a
// campaign cannot be created already closed.
func (in campaignInput) validate(now time.Time) fieldErrors {
	errs := fieldErrors{}
	for field, value := range map[string]string{
		"pet_name":          in.PetName,
		"short_description": in.ShortDescription,
		"long_description":  in.LongDescription,
	} {
		if value == "" {
			errs[field] = "validation.required"
		}
	}
	if goal, err := decimal.NewFromString(in.MaxDonation); err != nil || !goal.IsPositive() {
		errs["max_donation"] = "validation.max_donation"
	}
	last, err := time.Parse(time.DateOnly, in.LastDate)
	today := now.UTC().Truncate(24 * time.Hour)
	if err != nil || last.Before(today) {
		errs["last_date"] = "validation.date"
	}
	return errs
}

func (in campaignInput) goal() decimal.Decimal {
	goal, _ := decimal.NewFromString(in.MaxDonation)
	return goal.Round(2)
}

func (in campaignInput) form(loc *webi18n.Localizer, errs fieldErrors) webtemplates.CampaignForm {
	return webtemplates.CampaignForm{
		PetName:          in.PetName,
		PetImage:         in.CurrentImage,
		MaxDonation:      in.MaxDonation,
		LastDate:         in.LastDate,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Errors:           errs.localize(loc),
	}
}

func (in campaignInput) campaign(image string) petapi.Campaign {
	return petapi.Campaign{
		PetName:          in.PetName,
		PetImage:         image,
		MaxDonation:      in.goal(),
		LastDate:         in.LastDate,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
	}
}

func (in campaignInput) patch(image string) petapi.CampaignPatch {
	goal := in.goal()
	patch := petapi.CampaignPatch{
		PetName:          &in.PetName,
		MaxDonation:      &goal,
		LastDate:         &in.LastDate,
		ShortDescription: &in.ShortDescription,
		LongDescription:  &in.LongDescription,
	}
	if image != "" {
		patch.PetImage = &image
	}
	return patch
}

// applyPatch returns campaign with the form's fields, for optimistic display.
func applyPatch(campaign petapi.Campaign, in campaignInput, image string) petapi.Campaign {
	updated := campaign
	updated.PetName = in.PetName
	updated.MaxDonation = in.goal()
	updated.LastDate = in.LastDate
	updated.ShortDescription = in.ShortDescription
	updated.LongDescription = in.LongDescription
	if image != "" {
		updated.PetImage = image
	}
	return updated
}

// pendingCampaign is the optimistic row shown until the API assigns an id.
func (s service) pendingCampaign(campaign petapi.Campaign, ownerID string) petapi.Campaign {
	campaign.ID = pendingPrefix + uuid.NewString()
	campaign.OwnerID = ownerID
	campaign.CreatedAt = s.now()
	return campaign
}

func canManage(viewer module.Viewer, campaign petapi.Campaign) bool {
	return viewer.IsAdmin() || (viewer.UserID != "" && campaign.OwnerID == viewer.UserID)
}

func errNotOwner() error {
	return apperrors.EK(apperrors.KindForbidden, "error.forbidden", "campaign belongs to another user")
}

func (s service) loadCampaign(ctx context.Context, campaignID string) (petapi.Campaign, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" || strings.HasPrefix(campaignID, pendingPrefix) {
		return petapi.Campaign{}, apperrors.E(apperrors.KindNotFound, "campaign not found")
	}
	return s.gateway.GetCampaign(ctx, campaignID)
}

// loadManaged returns the campaign when viewer may edit it.
func (s service) loadManaged(ctx context.Context, viewer module.Viewer, campaignID string) (petapi.Campaign, error) {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return petapi.Campaign{}, err
	}
	if !canManage(viewer, campaign) {
		return petapi.Campaign{}, errNotOwner()
	}
	return campaign, nil
}

// loadOpen returns a campaign that still accepts donations.
func (s service) loadOpen(ctx context.Context, campaignID string) (petapi.Campaign, error) {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return petapi.Campaign{}, err
	}
	if campaign.Closed(s.now()) {
		return petapi.Campaign{}, apperrors.EK(apperrors.KindConflict, "campaigns.closed", "campaign is closed")
	}
	return campaign, nil
}

// recommended lists other campaigns for the detail page. Failures only
// hide the strip.
func (s service) recommended(ctx context.Context, excludeID string) []petapi.Campaign {
	campaigns, err := s.gateway.RecommendedCampaignsFor(ctx, excludeID, petapi.RecommendedCampaigns)
	if err != nil {
		log.Printf("recommended campaigns failed campaign_id=%s err=%v", excludeID, err)
		return nil
	}
	return campaigns
}

// remaining is how much campaign can still take.
func remaining(campaign petapi.Campaign) decimal.Decimal {
	left := campaign.MaxDonation.Sub(campaign.DonatedAmount)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// parseAmount validates a donation amount against campaign. The returned
// message is localized and empty when the amount is acceptable.
func parseAmount(loc *webi18n.Localizer, campaign petapi.Campaign, raw string) (decimal.Decimal, string) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, loc.Sprintf("validation.amount")
	}
	amount = amount.Round(2)
	if left := remaining(campaign); amount.GreaterThan(left) {
		return decimal.Zero, loc.Sprintf("validation.amount_exceeds", loc.Money(left))
	}
	return amount, ""
}

// donation builds the record stored once the payment has been confirmed.
// paymentIntent is the provider reference the record is reconciled against.
func (s service) donation(viewer module.Viewer, campaign petapi.Campaign, amount decimal.Decimal, paymentIntent string) petapi.Donation {
	return petapi.Donation{
		CampaignID:    campaign.ID,
		Amount:        amount,
		DonorName:     viewer.DisplayName,
		UserID:        viewer.UserID,
		PetName:       campaign.PetName,
		PetImage:      campaign.PetImage,
		PaymentIntent: paymentIntent,
		CreatedAt:     s.now(),
	}
}
