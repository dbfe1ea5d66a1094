package admin

import (
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPets, h.handlePets)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPetsMore, h.handlePetsMore)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminPetAdoptedPattern, h.handleToggleAdopted)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminPetDeletePattern, h.handleDeletePet)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminCampaigns, h.handleCampaigns)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminCampaignsMore, h.handleCampaignsMore)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminCampaignPausePattern, h.handleTogglePaused)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminCampaignDeletePattern, h.handleDeleteCampaign)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminUsers, h.handleUsers)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminUserPromotePattern, h.handlePromote)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPrefix+"{rest...}", h.handleNotFound)
}
