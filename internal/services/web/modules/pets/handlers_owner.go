package pets

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/pawprint/internal/services/web/platform/flash"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/imageform"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/platform/weberror"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

func ownerActions(pet petapi.Pet) webtemplates.PetRowActions {
	return webtemplates.PetRowActions{
		Adopted: routepath.AppPetAdopted(pet.ID),
		Delete:  routepath.AppPetDelete(pet.ID),
		Edit:    routepath.AppPetEdit(pet.ID),
	}
}

func (h handlers) handleOwned(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	query := petapi.PetQuery{OwnerID: h.Viewer(r).UserID}
	open := listview.Open[petapi.PetQuery, string, petapi.Pet]
	if r.URL.Query().Get(routepath.ResumeParam) != "" {
		open = listview.Resume[petapi.PetQuery, string, petapi.Pet]
	}
	result, err := open(httpx.RequestContext(r), h.owned, h.Visitor(w, r), query, routepath.AppPetsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("pets.mine"),
		Main: webtemplates.PetTablePage(webtemplates.PetTable{
			Title:   loc.Sprintf("pets.mine"),
			NewURL:  routepath.AppPetsNew,
			Pets:    result.Items,
			Tail:    result.Tail,
			Error:   result.Error,
			Actions: ownerActions,
		}, loc),
		Toasts: result.Toasts,
	})
}

func (h handlers) handleOwnedMore(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := listview.Continue(httpx.RequestContext(r), h.owned, h.Visitor(w, r), r.URL.Query().Get(routepath.CursorParam), routepath.AppPetsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeMore(w, r, loc, result, webtemplates.PetRows(result.Items, result.Tail, ownerActions, loc))
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	h.writeForm(w, r, loc, h.createForm(loc, webtemplates.PetForm{}), http.StatusOK)
}

func (h handlers) createForm(loc *webi18n.Localizer, form webtemplates.PetForm) webtemplates.PetForm {
	form.Title = loc.Sprintf("pets.add_title")
	form.Action = routepath.AppPetsNew
	form.Submit = loc.Sprintf("pets.add")
	return form
}

func (h handlers) updateForm(loc *webi18n.Localizer, pet petapi.Pet, form webtemplates.PetForm) webtemplates.PetForm {
	form.Title = loc.Sprintf("pets.edit_title", pet.Name)
	form.Action = routepath.AppPetUpdate(pet.ID)
	form.Submit = loc.Sprintf("common.save")
	return form
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, form webtemplates.PetForm, status int) {
	h.WritePage(w, r, loc, pagerender.Page{
		Title:      form.Title,
		StatusCode: status,
		Main:       webtemplates.PetFormPage(form, loc),
	})
}

// readValidPet parses, validates and uploads the pet form. The image is
// only uploaded once every other field is valid.
func (h handlers) readValidPet(w http.ResponseWriter, r *http.Request, requireImage bool) (petInput, string, fieldErrors) {
	if key := imageform.Parse(w, r); key != "" {
		return readPetInput(r), "", fieldErrors{imageform.Field: key}
	}
	in := readPetInput(r)
	errs := in.validate()
	if len(errs) > 0 {
		return in, "", errs
	}
	image, key := imageform.Upload(httpx.RequestContext(r), r, h.service.images)
	if key != "" {
		errs["image"] = key
		return in, "", errs
	}
	if image != "" {
		in.CurrentImage = image
	}
	if requireImage && in.CurrentImage == "" {
		errs["image"] = "validation.image"
	}
	return in, image, errs
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	viewer := h.Viewer(r)
	in, _, errs := h.readValidPet(w, r, true)
	if len(errs) > 0 {
		h.writeForm(w, r, loc, h.createForm(loc, in.form(loc, errs)), http.StatusBadRequest)
		return
	}

	pending := h.service.pendingPet(in.pet(in.CurrentImage), viewer.UserID)
	gateway := h.service.gateway
	commit := func(ctx context.Context) (*petapi.Pet, error) {
		draft := pending
		draft.ID = ""
		created, err := gateway.CreatePet(ctx, draft)
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
		form := h.createForm(loc, in.form(loc, nil))
		form.Alert = weberror.PublicMessage(loc, err)
		h.writeForm(w, r, loc, form, apperrors.HTTPStatus(err))
		return
	}
	notice := flashnotice.NoticeSuccess("pets.created", pending.Name)
	h.Redirect(w, r, listRoute(routepath.AppPets, optimistic), &notice)
}

// listRoute resumes the mounted list after an optimistic edit so the edit
// stays visible while its request completes.
func listRoute(path string, optimistic bool) string {
	if optimistic {
		return routepath.Resumed(path)
	}
	return path
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	pet, err := h.service.loadManaged(httpx.RequestContext(r), h.Viewer(r), r.PathValue("petID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeForm(w, r, loc, h.updateForm(loc, pet, webtemplates.PetFormFrom(pet)), http.StatusOK)
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	ctx := httpx.RequestContext(r)
	pet, err := h.service.loadManaged(ctx, h.Viewer(r), r.PathValue("petID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	in, image, errs := h.readValidPet(w, r, false)
	if in.CurrentImage == "" {
		in.CurrentImage = pet.Image
	}
	if len(errs) > 0 {
		h.writeForm(w, r, loc, h.updateForm(loc, pet, in.form(loc, errs)), http.StatusBadRequest)
		return
	}

	patch := in.patch(image)
	updated := applyPatch(pet, in, image)
	gateway := h.service.gateway
	commit := func(ctx context.Context) (*petapi.Pet, error) {
		return nil, gateway.UpdatePet(ctx, pet.ID, patch)
	}
	optimistic, err := listview.Mutate(ctx, h.owned, h.Visitor(w, r), collection.Update[string](updated), commit)
	if err != nil {
		form := h.updateForm(loc, pet, in.form(loc, nil))
		form.Alert = weberror.PublicMessage(loc, err)
		h.writeForm(w, r, loc, form, apperrors.HTTPStatus(err))
		return
	}
	notice := flashnotice.NoticeSuccess("pets.updated", updated.Name)
	h.Redirect(w, r, listRoute(routepath.AppPets, optimistic), &notice)
}

// managedPet prefers the copy in the visitor's table so toggles see the
// latest optimistic state.
func (h handlers) managedPet(w http.ResponseWriter, r *http.Request) (petapi.Pet, error) {
	viewer := h.Viewer(r)
	petID := r.PathValue("petID")
	if pet, ok := listview.Find(h.owned, h.Visitor(w, r), petID); ok {
		if !canManage(viewer, pet) {
			return petapi.Pet{}, errNotOwner()
		}
		return pet, nil
	}
	return h.service.loadManaged(httpx.RequestContext(r), viewer, petID)
}

func (h handlers) handleToggleAdopted(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	pet, err := h.managedPet(w, r)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	updated := pet
	updated.Adopted = !pet.Adopted
	gateway := h.service.gateway
	commit := func(ctx context.Context) (*petapi.Pet, error) {
		return nil, gateway.SetPetAdopted(ctx, pet.ID, updated.Adopted)
	}
	visitor := h.Visitor(w, r)
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.owned, visitor, collection.Update[string](updated), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeRowChange(w, r, loc, listview.Toasts(h.owned, visitor, loc), webtemplates.PetRow(updated, ownerActions(updated), loc), optimistic)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	pet, err := h.managedPet(w, r)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	gateway := h.service.gateway
	commit := func(ctx context.Context) (*petapi.Pet, error) {
		return nil, gateway.DeletePet(ctx, pet.ID)
	}
	visitor := h.Visitor(w, r)
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.owned, visitor, collection.Remove[string, petapi.Pet](pet.ID), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeRowChange(w, r, loc, listview.Toasts(h.owned, visitor, loc), templ.NopComponent, optimistic)
}

// writeRowChange swaps the changed row for HTMX callers and sends everyone
// else back to the table.
func (h handlers) writeRowChange(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, toasts []webtemplates.Toast, row templ.Component, optimistic bool) {
	if httpx.IsHTMXRequest(r) {
		h.WriteFragment(w, r, loc, http.StatusOK, webtemplates.Fragment(toasts, row))
		return
	}
	h.Redirect(w, r, listRoute(routepath.AppPets, optimistic), nil)
}

func (h handlers) handleRequestAdoption(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	ctx := httpx.RequestContext(r)
	viewer := h.Viewer(r)
	pet, err := h.service.loadPet(ctx, r.PathValue("petID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	in := readAdoptionInput(r)
	page := detailPage(viewer, pet)
	page.Form = webtemplates.AdoptionForm{Phone: in.Phone, Address: in.Address}
	if errs := in.validate(); len(errs) > 0 {
		page.Form.Errors = errs.localize(loc)
		h.writeDetail(w, r, loc, page, http.StatusBadRequest)
		return
	}
	request, err := h.service.adoptionRequest(viewer, pet, in)
	if err == nil {
		_, err = h.service.gateway.RequestAdoption(ctx, request)
	}
	if err != nil {
		page.Form.Alert = adoptionAlert(loc, err)
		h.writeDetail(w, r, loc, page, apperrors.HTTPStatus(err))
		return
	}
	page.Requested = true
	h.writeDetail(w, r, loc, page, http.StatusOK)
}

// adoptionAlert names duplicate requests, which the API reports as conflicts.
func adoptionAlert(loc *webi18n.Localizer, err error) string {
	if apperrors.LocalizationKey(err) == "" && apperrors.HTTPStatus(err) == http.StatusConflict {
		return loc.Sprintf("adoptions.duplicate")
	}
	return weberror.PublicMessage(loc, err)
}
