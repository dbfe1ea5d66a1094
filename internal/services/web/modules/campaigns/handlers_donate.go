package campaigns

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/pawprint/internal/services/web/platform/flash"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/platform/weberror"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
	"github.com/shopspring/decimal"
)

// intentResponse is the body the payment widget reads.
type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h handlers) handleDonateForm(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	campaign, err := h.service.loadOpen(httpx.RequestContext(r), r.PathValue("campaignID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeDonate(w, r, loc, webtemplates.DonateForm{Campaign: campaign}, http.StatusOK)
}

func (h handlers) writeDonate(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, form webtemplates.DonateForm, status int) {
	form.PublishableKey = h.publishableKey
	h.WritePage(w, r, loc, pagerender.Page{
		Title:      loc.Sprintf("donations.title", form.Campaign.PetName),
		StatusCode: status,
		Main:       webtemplates.DonatePage(form, loc),
		Scripts:    []string{routepath.StaticPrefix + "donate.js"},
	})
}

// handleIntent starts a payment for the posted amount and returns the
// provider's client secret as JSON.
func (h handlers) handleIntent(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	ctx := httpx.RequestContext(r)
	campaign, err := h.service.loadOpen(ctx, r.PathValue("campaignID"))
	if err != nil {
		_ = httpx.WriteJSONError(w, apperrors.HTTPStatus(err), weberror.PublicMessage(loc, err))
		return
	}
	amount, message := parseAmount(loc, campaign, r.FormValue("amount"))
	if message != "" {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, message)
		return
	}
	secret, err := h.service.gateway.CreatePaymentIntent(ctx, amount)
	if err != nil {
		log.Printf("payment intent failed campaign_id=%s err=%v", campaign.ID, err)
		_ = httpx.WriteJSONError(w, http.StatusBadGateway, loc.Sprintf("donations.payment_failed"))
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, intentResponse{ClientSecret: secret})
}

// handleDonate records a donation the provider has already confirmed.
func (h handlers) handleDonate(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	ctx := httpx.RequestContext(r)
	campaign, err := h.service.loadOpen(ctx, r.PathValue("campaignID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	form := webtemplates.DonateForm{Campaign: campaign, Amount: strings.TrimSpace(r.FormValue("amount"))}
	amount, message := parseAmount(loc, campaign, form.Amount)
	if message != "" {
		form.Errors = webtemplates.FieldError{"amount": message}
		h.writeDonate(w, r, loc, form, http.StatusBadRequest)
		return
	}
	paymentIntent := strings.TrimSpace(r.FormValue("payment_intent"))
	if paymentIntent == "" {
		form.Alert = loc.Sprintf("donations.payment_unconfirmed")
		h.writeDonate(w, r, loc, form, http.StatusBadRequest)
		return
	}
	if _, err := h.service.gateway.RecordDonation(ctx, h.service.donation(h.Viewer(r), campaign, amount, paymentIntent)); err != nil {
		log.Printf("record donation failed campaign_id=%s payment_intent=%s err=%v", campaign.ID, paymentIntent, err)
		err = apperrors.MapUpstreamError(err, apperrors.UpstreamMapping{
			FallbackKind:    apperrors.KindUnavailable,
			FallbackKey:     "donations.record_failed",
			FallbackMessage: "donation not recorded",
		})
		form.Alert = weberror.PublicMessage(loc, err)
		h.writeDonate(w, r, loc, form, apperrors.HTTPStatus(err))
		return
	}
	h.refreshRaised(w, r, campaign, amount)
	notice := flashnotice.NoticeSuccess("donations.thanks", loc.Money(amount))
	h.Redirect(w, r, routepath.Campaign(campaign.ID), &notice)
}

// refreshRaised updates the raised amount in the visitor's campaign grid
// when the campaign is on it. The donation is already stored, so the
// commit has nothing left to send.
func (h handlers) refreshRaised(w http.ResponseWriter, r *http.Request, campaign petapi.Campaign, amount decimal.Decimal) {
	visitor := h.Visitor(w, r)
	listed, ok := listview.Find(h.public, visitor, campaign.ID)
	if !ok {
		return
	}
	listed.DonatedAmount = listed.DonatedAmount.Add(amount)
	noop := func(context.Context) (*petapi.Campaign, error) { return nil, nil }
	if _, err := listview.Mutate(httpx.RequestContext(r), h.public, visitor, collection.Update[string](listed), noop); err != nil {
		log.Printf("refresh raised amount failed campaign_id=%s err=%v", campaign.ID, err)
	}
}
