package pets

import (
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

func registerPublicRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Pets, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.PetsPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.PetsMore, h.handleMore)
	mux.HandleFunc(http.MethodGet+" "+routepath.PetPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.PetsPrefix+"{rest...}", h.handleNotFound)
}

func registerOwnerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPets, h.handleOwned)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPetsPrefix+"{$}", h.handleOwned)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPetsMore, h.handleOwnedMore)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPetsNew, h.handleNew)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppPetsNew, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPetEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppPetUpdatePattern, h.handleUpdate)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppPetAdoptedPattern, h.handleToggleAdopted)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppPetDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppPetAdoptRequestPattern, h.handleRequestAdoption)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPetsPrefix+"{rest...}", h.handleNotFound)
}

func registerAdoptionRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAdoptions, h.handleAdoptions)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAdoptionsPrefix+"{$}", h.handleAdoptions)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppAdoptionAcceptPattern, h.handleAccept)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppAdoptionRejectPattern, h.handleReject)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAdoptionsPrefix+"{rest...}", h.handleNotFound)
}
