package campaigns

import (
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

func registerPublicRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Campaigns, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.CampaignsPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.CampaignsMore, h.handleMore)
	mux.HandleFunc(http.MethodGet+" "+routepath.CampaignPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.CampaignsPrefix+"{rest...}", h.handleNotFound)
}

func registerOwnerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppCampaigns, h.handleOwned)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppCampaignsPrefix+"{$}", h.handleOwned)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppCampaignsMore, h.handleOwnedMore)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppCampaignsNew, h.handleNew)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppCampaignsNew, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppCampaignEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppCampaignUpdatePattern, h.handleUpdate)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppCampaignPausePattern, h.handleTogglePaused)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppCampaignDonatePattern, h.handleDonateForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppCampaignDonatePattern, h.handleDonate)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppCampaignIntentPattern, h.handleIntent)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppCampaignsPrefix+"{rest...}", h.handleNotFound)
}
