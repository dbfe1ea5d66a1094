package pets

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
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
	service   service
	public    *PetViews
	owned     *PetViews
	adoptions *AdoptionViews
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, h.Localizer(w, r))
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	query := petapi.PetQuery{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Category: petapi.ParseCategory(r.URL.Query().Get("category")),
	}
	result, err := listview.Open(httpx.RequestContext(r), h.public, h.Visitor(w, r), query, routepath.PetsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("pets.title"),
		Main: webtemplates.PetsListing(webtemplates.PetsPage{
			Search:   query.Search,
			Category: query.Category,
			Pets:     result.Items,
			Tail:     result.Tail,
			Error:    result.Error,
		}, loc),
		Toasts: result.Toasts,
	})
}

func (h handlers) handleMore(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := listview.Continue(httpx.RequestContext(r), h.public, h.Visitor(w, r), r.URL.Query().Get(routepath.CursorParam), routepath.PetsMore, loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeMore(w, r, loc, result, webtemplates.PetCards(result.Items, result.Tail, loc))
}

// writeMore renders one continuation. A stale continuation renders nothing
// so the outdated sentinel is simply removed.
func (h handlers) writeMore(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, result listview.Result[petapi.Pet], rows templ.Component) {
	if result.Stale {
		w.WriteHeader(http.StatusOK)
		return
	}
	h.WriteFragment(w, r, loc, http.StatusOK, webtemplates.Fragment(result.Toasts, rows))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	pet, err := h.service.loadPet(httpx.RequestContext(r), r.PathValue("petID"))
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeDetail(w, r, loc, detailPage(h.Viewer(r), pet), http.StatusOK)
}

func (h handlers) writeDetail(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, page webtemplates.PetDetailPage, status int) {
	h.WritePage(w, r, loc, pagerender.Page{
		Title:      page.Pet.Name,
		StatusCode: status,
		Main:       webtemplates.PetDetail(page, loc),
	})
}

func detailPage(viewer module.Viewer, pet petapi.Pet) webtemplates.PetDetailPage {
	return webtemplates.PetDetailPage{
		Pet:        pet,
		SignedIn:   viewer.SignedIn,
		CanRequest: viewer.SignedIn && !pet.Adopted && pet.OwnerID != viewer.UserID,
		UserName:   viewer.DisplayName,
		UserEmail:  viewer.Email,
	}
}
