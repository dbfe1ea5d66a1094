package dashboard

import (
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDonations, h.handleDonations)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPrefix+"{rest...}", h.handleNotFound)
}
