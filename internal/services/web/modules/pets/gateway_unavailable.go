package pets

import (
	"context"
	"io"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "pet service is not configured")
}

func (unavailableGateway) GetPet(context.Context, string) (petapi.Pet, error) {
	return petapi.Pet{}, errUnavailable()
}

func (unavailableGateway) CreatePet(context.Context, petapi.Pet) (petapi.Pet, error) {
	return petapi.Pet{}, errUnavailable()
}

func (unavailableGateway) UpdatePet(context.Context, string, petapi.PetPatch) error {
	return errUnavailable()
}

func (unavailableGateway) SetPetAdopted(context.Context, string, bool) error {
	return errUnavailable()
}

func (unavailableGateway) DeletePet(context.Context, string) error {
	return errUnavailable()
}

func (unavailableGateway) RequestAdoption(context.Context, petapi.AdoptionRequest) (petapi.AdoptionRequest, error) {
	return petapi.AdoptionRequest{}, errUnavailable()
}

func (unavailableGateway) ListOwnerAdoptions(context.Context, string) ([]petapi.AdoptionRequest, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) AcceptAdoption(context.Context, string) error {
	return errUnavailable()
}

func (unavailableGateway) RejectAdoption(context.Context, string) error {
	return errUnavailable()
}

type unavailableUploader struct{}

func (unavailableUploader) Upload(context.Context, string, io.Reader) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "image upload is not configured")
}
