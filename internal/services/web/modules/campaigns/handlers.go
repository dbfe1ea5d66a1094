package campaigns

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service        service
	public         *CampaignViews
	owned          *CampaignViews
	publishableKey string
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, h.Localizer(w, r))
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := listview.Open(httpx.RequestContext(r), h.public, h.Visitor(w, r), petapi.CampaignQuery{}, routepath.CampaignsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("campaigns.title"),
		Main: webtemplates.CampaignsListing(webtemplates.CampaignsPage{
			Campaigns: result.Items,
			Tail:      result.Tail,
			Error:     result.Error,
		}, loc),
		Toasts: result.Toasts,
	})
}

func (h handlers) handleMore(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := listview.Continue(httpx.RequestContext(r), h.public, h.Visitor(w, r), r.URL.Query().Get(routepath.CursorParam), routepath.CampaignsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeMore(w, r, loc, result, webtemplates.CampaignCards(result.Items, result.Tail, loc))
}

// writeMore renders one continuation. A stale continuation renders nothing.
func (h handlers) writeMore(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, result listview.Result[petapi.Campaign], rows templ.Component) {
	if result.Stale {
		w.WriteHeader(http.StatusOK)
		return
	}
	h.WriteFragment(w, r, loc, http.StatusOK, webtemplates.Fragment(result.Toasts, rows))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	ctx := httpx.RequestContext(r)
	campaign, err := h.service.loadCampaign(ctx, r.PathValue("campaignID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: campaign.PetName,
		Main: webtemplates.CampaignDetail(webtemplates.CampaignDetailPage{
			Campaign:    campaign,
			Closed:      campaign.Closed(h.service.now()),
			SignedIn:    h.Viewer(r).SignedIn,
			Recommended: h.service.recommended(ctx, campaign.ID),
		}, loc),
	})
}
