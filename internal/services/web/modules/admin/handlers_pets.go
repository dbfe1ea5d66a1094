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

func (h handlers) handlePets(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := openList(h, w, r, h.pets, petapi.PetQuery{}, routepath.AdminPetsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("admin.pets"),
		Main: webtemplates.PetTablePage(webtemplates.PetTable{
			Title:   loc.Sprintf("admin.pets"),
			Pets:    result.Items,
			Tail:    result.Tail,
			Error:   result.Error,
			Actions: petActions,
		}, loc),
		Toasts: result.Toasts,
	})
}

func (h handlers) handlePetsMore(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := listview.Continue(httpx.RequestContext(r), h.pets, h.Visitor(w, r), r.URL.Query().Get(routepath.CursorParam), routepath.AdminPetsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	writeMore(h, w, r, loc, result, webtemplates.PetRows(result.Items, result.Tail, petActions, loc))
}

// pet prefers the copy in the visitor's table so toggles see the latest
// optimistic state.
func (h handlers) pet(w http.ResponseWriter, r *http.Request) (petapi.Pet, error) {
	id, err := pathID(r, "petID")
	if err != nil {
		return petapi.Pet{}, err
	}
	if pet, ok := listview.Find(h.pets, h.Visitor(w, r), id); ok {
		return pet, nil
	}
	return h.gateway.GetPet(httpx.RequestContext(r), id)
}

func (h handlers) handleToggleAdopted(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	pet, err := h.pet(w, r)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	updated := pet
	updated.Adopted = !pet.Adopted
	gateway := h.gateway
	commit := func(ctx context.Context) (*petapi.Pet, error) {
		return nil, gateway.SetPetAdopted(ctx, pet.ID, updated.Adopted)
	}
	visitor := h.Visitor(w, r)
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.pets, visitor, collection.Update[string](updated), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeRowChange(w, r, loc, listview.Toasts(h.pets, visitor, loc), webtemplates.PetRow(updated, petActions(updated), loc), routepath.AdminPets, optimistic)
}

func (h handlers) handleDeletePet(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	pet, err := h.pet(w, r)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	gateway := h.gateway
	commit := func(ctx context.Context) (*petapi.Pet, error) {
		return nil, gateway.DeletePet(ctx, pet.ID)
	}
	visitor := h.Visitor(w, r)
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.pets, visitor, collection.Remove[string, petapi.Pet](pet.ID), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeRowChange(w, r, loc, listview.Toasts(h.pets, visitor, loc), templ.NopComponent, routepath.AdminPets, optimistic)
}
