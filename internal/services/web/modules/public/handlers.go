package public

import (
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	page := webtemplates.HomePage{
		Recommended: h.service.recommended(httpx.RequestContext(r)),
		SignedIn:    h.Viewer(r).SignedIn,
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title: loc.Sprintf("home.headline"),
		Main:  webtemplates.Home(page, loc),
	})
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, h.Localizer(w, r))
}
