package admin

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

func (h handlers) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := openList(h, w, r, h.campaigns, petapi.CampaignQuery{}, routepath.AdminCampaignsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("admin.campaigns"),
		Main: webtemplates.CampaignTablePage(webtemplates.CampaignTable{
			Title:     loc.Sprintf("admin.campaigns"),
			Campaigns: result.Items,
			Tail:      result.Tail,
			Error:     result.Error,
			Actions:   campaignActions,
		}, loc),
		Toasts: result.Toasts,
	})
}

func (h handlers) handleCampaignsMore(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := listview.Continue(httpx.RequestContext(r), h.campaigns, h.Visitor(w, r), r.URL.Query().Get(routepath.CursorParam), routepath.AdminCampaignsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	writeMore(h, w, r, loc, result, webtemplates.CampaignRows(result.Items, result.Tail, campaignActions, loc))
}

func (h handlers) campaign(w http.ResponseWriter, r *http.Request) (petapi.Campaign, error) {
	id, err := pathID(r, "campaignID")
	if err != nil {
		return petapi.Campaign{}, err
	}
	if campaign, ok := listview.Find(h.campaigns, h.Visitor(w, r), id); ok {
		return campaign, nil
	}
	return h.gateway.GetCampaign(httpx.RequestContext(r), id)
}

func (h handlers) handleTogglePaused(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	campaign, err := h.campaign(w, r)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	updated := campaign
	updated.Paused = !campaign.Paused
	gateway := h.gateway
	commit := func(ctx context.Context) (*petapi.Campaign, error) {
		return nil, gateway.SetCampaignPaused(ctx, campaign.ID, updated.Paused)
	}
	visitor := h.Visitor(w, r)
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.campaigns, visitor, collection.Update[string](updated), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeRowChange(w, r, loc, listview.Toasts(h.campaigns, visitor, loc), webtemplates.CampaignRow(updated, campaignActions(updated), loc), routepath.AdminCampaigns, optimistic)
}

func (h handlers) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	campaign, err := h.campaign(w, r)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	gateway := h.gateway
	commit := func(ctx context.Context) (*petapi.Campaign, error) {
		return nil, gateway.DeleteCampaign(ctx, campaign.ID)
	}
	visitor := h.Visitor(w, r)
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.campaigns, visitor, collection.Remove[string, petapi.Campaign](campaign.ID), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeRowChange(w, r, loc, listview.Toasts(h.campaigns, visitor, loc), templ.NopComponent, routepath.AdminCampaigns, optimistic)
}
