package pets

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

func (h handlers) handleAdoptions(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	query := AdoptionQuery{OwnerID: h.Viewer(r).UserID}
	open := listview.Open[AdoptionQuery, string, petapi.AdoptionRequest]
	if r.URL.Query().Get(routepath.ResumeParam) != "" {
		open = listview.Resume[AdoptionQuery, string, petapi.AdoptionRequest]
	}
	result, err := open(httpx.RequestContext(r), h.adoptions, h.Visitor(w, r), query, "", loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title:  loc.Sprintf("adoptions.title"),
		Main:   webtemplates.Adoptions(webtemplates.AdoptionsPage{Requests: result.Items, Error: result.Error}, loc),
		Toasts: result.Toasts,
	})
}

func (h handlers) handleAccept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h handlers) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h handlers) decide(w http.ResponseWriter, r *http.Request, accept bool) {
	loc := h.Localizer(w, r)
	visitor := h.Visitor(w, r)
	request, err := h.receivedRequest(r, visitor)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	if request.EffectiveStatus() != petapi.AdoptionPending {
		h.WriteError(w, r, loc, apperrors.EK(apperrors.KindConflict, "error.conflict", "adoption request already decided"))
		return
	}

	decided := request
	decided.Status = petapi.AdoptionRejected
	if accept {
		decided.Status = petapi.AdoptionAccepted
	}
	svc := h.service
	commit := func(ctx context.Context) (*petapi.AdoptionRequest, error) {
		return nil, svc.decide(ctx, request, accept)
	}
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.adoptions, visitor, collection.Update[string](decided), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	if httpx.IsHTMXRequest(r) {
		toasts := listview.Toasts(h.adoptions, visitor, loc)
		h.WriteFragment(w, r, loc, http.StatusOK, webtemplates.Fragment(toasts, webtemplates.AdoptionRow(decided, loc)))
		return
	}
	h.Redirect(w, r, listRoute(routepath.AppAdoptions, optimistic), nil)
}

// receivedRequest finds a request addressed to the viewer, from the mounted
// table when possible.
func (h handlers) receivedRequest(r *http.Request, visitor string) (petapi.AdoptionRequest, error) {
	viewer := h.Viewer(r)
	requestID := strings.TrimSpace(r.PathValue("requestID"))
	notFound := apperrors.E(apperrors.KindNotFound, "adoption request not found")
	if request, ok := listview.Find(h.adoptions, visitor, requestID); ok {
		if request.OwnerID != "" && request.OwnerID != viewer.UserID {
			return petapi.AdoptionRequest{}, notFound
		}
		return request, nil
	}
	requests, err := h.service.gateway.ListOwnerAdoptions(httpx.RequestContext(r), viewer.UserID)
	if err != nil {
		return petapi.AdoptionRequest{}, err
	}
	for _, request := range requests {
		if request.ID == requestID {
			return request, nil
		}
	}
	return petapi.AdoptionRequest{}, notFound
}
