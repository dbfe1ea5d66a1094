package campaigns

import (
	"context"
	"net/http"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/pawprint/internal/services/web/platform/flash"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/imageform"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/platform/weberror"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

func ownerActions(campaign petapi.Campaign) webtemplates.CampaignRowActions {
	return webtemplates.CampaignRowActions{
		Pause: routepath.AppCampaignPause(campaign.ID),
		Edit:  routepath.AppCampaignEdit(campaign.ID),
	}
}

func (h handlers) handleOwned(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	query := petapi.CampaignQuery{OwnerID: h.Viewer(r).UserID}
	open := listview.Open[petapi.CampaignQuery, string, petapi.Campaign]
	if r.URL.Query().Get(routepath.ResumeParam) != "" {
		open = listview.Resume[petapi.CampaignQuery, string, petapi.Campaign]
	}
	result, err := open(httpx.RequestContext(r), h.owned, h.Visitor(w, r), query, routepath.AppCampaignsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("campaigns.mine"),
		Main: webtemplates.CampaignTablePage(webtemplates.CampaignTable{
			Title:     loc.Sprintf("campaigns.mine"),
			NewURL:    routepath.AppCampaignsNew,
			Campaigns: result.Items,
			Tail:      result.Tail,
			Error:     result.Error,
			Actions:   ownerActions,
		}, loc),
		Toasts: result.Toasts,
	})
}

func (h handlers) handleOwnedMore(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := listview.Continue(httpx.RequestContext(r), h.owned, h.Visitor(w, r), r.URL.Query().Get(routepath.CursorParam), routepath.AppCampaignsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeMore(w, r, loc, result, webtemplates.CampaignRows(result.Items, result.Tail, ownerActions, loc))
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	h.writeForm(w, r, loc, createForm(loc, webtemplates.CampaignForm{}), http.StatusOK)
}

func createForm(loc *webi18n.Localizer, form webtemplates.CampaignForm) webtemplates.CampaignForm {
	form.Title = loc.Sprintf("campaigns.add_title")
	form.Action = routepath.AppCampaignsNew
	form.Submit = loc.Sprintf("campaigns.add")
	return form
}

func updateForm(loc *webi18n.Localizer, campaign petapi.Campaign, form webtemplates.CampaignForm) webtemplates.CampaignForm {
	form.Title = loc.Sprintf("campaigns.edit_title", campaign.PetName)
	form.Action = routepath.AppCampaignUpdate(campaign.ID)
	form.Submit = loc.Sprintf("common.save")
	return form
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, form webtemplates.CampaignForm, status int) {
	h.WritePage(w, r, loc, pagerender.Page{
		Title:      form.Title,
		StatusCode: status,
		Main:       webtemplates.CampaignFormPage(form, loc),
	})
}

// readValidCampaign parses, validates and uploads the campaign form. The
// image is only uploaded once every other field is valid.
func (h handlers) readValidCampaign(w http.ResponseWriter, r *http.Request, requireImage bool) (campaignInput, string, fieldErrors) {
	if key := imageform.Parse(w, r); key != "" {
		return readCampaignInput(r), "", fieldErrors{imageform.Field: key}
	}
	in := readCampaignInput(r)
	errs := in.validate(h.service.now())
	if len(errs) > 0 {
		return in, "", errs
	}
	image, key := imageform.Upload(httpx.RequestContext(r), r, h.service.images)
	if key != "" {
		errs[imageform.Field] = key
		return in, "", errs
	}
	if image != "" {
		in.CurrentImage = image
	}
	if requireImage && in.CurrentImage == "" {
		errs[imageform.Field] = "validation.image"
	}
	return in, image, errs
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	in, _, errs := h.readValidCampaign(w, r, true)
	if len(errs) > 0 {
		h.writeForm(w, r, loc, createForm(loc, in.form(loc, errs)), http.StatusBadRequest)
		return
	}

	pending := h.service.pendingCampaign(in.campaign(in.CurrentImage), h.Viewer(r).UserID)
	gateway := h.service.gateway
	commit := func(ctx context.Context) (*petapi.Campaign, error) {
		draft := pending
		draft.ID = ""
		created, err := gateway.CreateCampaign(ctx, draft)
		if err != nil {
			return nil, err
		}
		if created.OwnerID == "" {
			created.OwnerID = pending.OwnerID
		}
		return &created, nil
	}
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.owned, h.Visitor(w, r), collection.InsertAt[string](pending, 0), commit)
	if err != nil {
		form := createForm(loc, in.form(loc, nil))
		form.Alert = weberror.PublicMessage(loc, err)
		h.writeForm(w, r, loc, form, apperrors.HTTPStatus(err))
		return
	}
	notice := flashnotice.NoticeSuccess("campaigns.created", pending.PetName)
	h.Redirect(w, r, listRoute(optimistic), &notice)
}

// listRoute resumes the mounted table after an optimistic edit so the edit
// stays visible while its request completes.
func listRoute(optimistic bool) string {
	if optimistic {
		return routepath.Resumed(routepath.AppCampaigns)
	}
	return routepath.AppCampaigns
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	campaign, err := h.service.loadManaged(httpx.RequestContext(r), h.Viewer(r), r.PathValue("campaignID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeForm(w, r, loc, updateForm(loc, campaign, webtemplates.CampaignFormFrom(campaign)), http.StatusOK)
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	ctx := httpx.RequestContext(r)
	campaign, err := h.service.loadManaged(ctx, h.Viewer(r), r.PathValue("campaignID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	in, image, errs := h.readValidCampaign(w, r, false)
	if in.CurrentImage == "" {
		in.CurrentImage = campaign.PetImage
	}
	if len(errs) > 0 {
		h.writeForm(w, r, loc, updateForm(loc, campaign, in.form(loc, errs)), http.StatusBadRequest)
		return
	}

	patch := in.patch(image)
	updated := applyPatch(campaign, in, image)
	gateway := h.service.gateway
	commit := func(ctx context.Context) (*petapi.Campaign, error) {
		return nil, gateway.UpdateCampaign(ctx, campaign.ID, patch)
	}
	optimistic, err := listview.Mutate(ctx, h.owned, h.Visitor(w, r), collection.Update[string](updated), commit)
	if err != nil {
		form := updateForm(loc, campaign, in.form(loc, nil))
		form.Alert = weberror.PublicMessage(loc, err)
		h.writeForm(w, r, loc, form, apperrors.HTTPStatus(err))
		return
	}
	notice := flashnotice.NoticeSuccess("campaigns.updated", updated.PetName)
	h.Redirect(w, r, listRoute(optimistic), &notice)
}

// managedCampaign prefers the copy in the visitor's table so toggles see
// the latest optimistic state.
func (h handlers) managedCampaign(w http.ResponseWriter, r *http.Request) (petapi.Campaign, error) {
	viewer := h.Viewer(r)
	campaignID := r.PathValue("campaignID")
	if campaign, ok := listview.Find(h.owned, h.Visitor(w, r), campaignID); ok {
		if !canManage(viewer, campaign) {
			return petapi.Campaign{}, errNotOwner()
		}
		return campaign, nil
	}
	return h.service.loadManaged(httpx.RequestContext(r), viewer, campaignID)
}

func (h handlers) handleTogglePaused(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	campaign, err := h.managedCampaign(w, r)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	updated := campaign
	updated.Paused = !campaign.Paused
	gateway := h.service.gateway
	commit := func(ctx context.Context) (*petapi.Campaign, error) {
		return nil, gateway.SetCampaignPaused(ctx, campaign.ID, updated.Paused)
	}
	visitor := h.Visitor(w, r)
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.owned, visitor, collection.Update[string](updated), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	if httpx.IsHTMXRequest(r) {
		toasts := listview.Toasts(h.owned, visitor, loc)
		h.WriteFragment(w, r, loc, http.StatusOK, webtemplates.Fragment(toasts, webtemplates.CampaignRow(updated, ownerActions(updated), loc)))
		return
	}
	h.Redirect(w, r, listRoute(optimistic), nil)
}
