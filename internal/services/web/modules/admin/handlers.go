package admin

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	"github.com/louisbranch/pawprint/internal/services/web/views"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	gateway   Gateway
	pets      *PetViews
	campaigns *CampaignViews
	users     *UserViews
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.Redirect(w, r, routepath.AdminUsers, nil)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, h.Localizer(w, r))
}

// openList mounts a fresh view, or resumes the mounted one after an
// optimistic edit redirected back to the table.
func openList[Q comparable, T any](h handlers, w http.ResponseWriter, r *http.Request, registry *views.Registry[Q, string, T], query Q, morePath string, loc *webi18n.Localizer) (listview.Result[T], error) {
	open := listview.Open[Q, string, T]
	if r.URL.Query().Get(routepath.ResumeParam) != "" {
		open = listview.Resume[Q, string, T]
	}
	return open(httpx.RequestContext(r), registry, h.Visitor(w, r), query, morePath, loc)
}

// writeMore renders one continuation. A stale continuation renders nothing.
func writeMore[T any](h handlers, w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, result listview.Result[T], rows templ.Component) {
	if result.Stale {
		w.WriteHeader(http.StatusOK)
		return
	}
	h.WriteFragment(w, r, loc, http.StatusOK, webtemplates.Fragment(result.Toasts, rows))
}

// writeRowChange swaps the changed row for HTMX callers and sends everyone
// else back to the table.
func (h handlers) writeRowChange(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, toasts []webtemplates.Toast, row templ.Component, table string, optimistic bool) {
	if httpx.IsHTMXRequest(r) {
		h.WriteFragment(w, r, loc, http.StatusOK, webtemplates.Fragment(toasts, row))
		return
	}
	if optimistic {
		table = routepath.Resumed(table)
	}
	h.Redirect(w, r, table, nil)
}

// pathID reads a path value, refusing keys of rows not yet confirmed.
func pathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" || strings.HasPrefix(id, "pending-") {
		return "", apperrors.E(apperrors.KindNotFound, name+" not found")
	}
	return id, nil
}

func petActions(pet petapi.Pet) webtemplates.PetRowActions {
	return webtemplates.PetRowActions{
		Adopted: routepath.AdminPetAdopted(pet.ID),
		Delete:  routepath.AdminPetDelete(pet.ID),
	}
}

func campaignActions(campaign petapi.Campaign) webtemplates.CampaignRowActions {
	return webtemplates.CampaignRowActions{
		Pause:  routepath.AdminCampaignPause(campaign.ID),
		Delete: routepath.AdminCampaignDelete(campaign.ID),
	}
}
