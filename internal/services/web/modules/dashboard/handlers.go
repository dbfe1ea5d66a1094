package dashboard

import (
	"net/http"
	"slices"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	gateway DonationGateway
}

func newHandlers(gateway DonationGateway, base modulehandler.Base) handlers {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return handlers{Base: base, gateway: gateway}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("dashboard.title"),
		Main:  webtemplates.Dashboard(h.Viewer(r), loc),
	})
}

func (h handlers) handleDonations(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	donations, err := h.gateway.ListUserDonations(httpx.RequestContext(r), h.Viewer(r).UserID)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	sortNewestFirst(donations)
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("donations.mine"),
		Main:  webtemplates.DonationsPage(donations, loc),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, h.Localizer(w, r))
}

func sortNewestFirst(donations []petapi.Donation) {
	slices.SortStableFunc(donations, func(a, b petapi.Donation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
