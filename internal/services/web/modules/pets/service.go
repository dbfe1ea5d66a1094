package pets

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

const (
	maxPetAge = 60
	// pendingPrefix marks keys of optimistic inserts not yet confirmed.
	pendingPrefix = "pending-"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-.]{7,20}$`)

type service struct {
	gateway Gateway
	images  ImageUploader
	now     func() time.Time
}

func newService(gateway Gateway, images ImageUploader, now func() time.Time) service {
	return service{gateway: gateway, images: images, now: now}
}

// fieldErrors maps form fields to message keys.
type fieldErrors map[string]string

func (f fieldErrors) localize(loc *webi18n.Localizer) webtemplates.FieldError {
	if len(f) == 0 {
		return nil
	}
	out := make(webtemplates.FieldError, len(f))
	for field, key := range f {
		out[field] = loc.Sprintf(key)
	}
	return out
}

// petInput is the raw add and update pet form.
type petInput struct {
	Name             string
	Age              string
	Category         string
	Location         string
	Color            string
	Breed            string
	ShortDescription string
	LongDescription  string
	CurrentImage     string
}

func readPetInput(r *http.Request) petInput {
	value := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	return petInput{
		Name:             value("name"),
		Age:              value("age"),
		Category:         value("category"),
		Location:         value("location"),
		Color:            value("color"),
		Breed:            value("breed"),
		ShortDescription: value("short_description"),
		LongDescription:  value("long_description"),
		CurrentImage:     value("current_image"),
	}
}

func (in petInput) validate() fieldErrors {
	errs := fieldErrors{}
	for field, value := range map[string]string{
		"name":              in.Name,
		"location":          in.Location,
		"short_description": in.ShortDescription,
		"long_description":  in.LongDescription,
	} {
		if value == "" {
			errs[field] = "validation.required"
		}
	}
	if age, err := strconv.Atoi(in.Age); err != nil || age < 0 || age > maxPetAge {
		errs["age"] = "validation.age"
	}
	if petapi.ParseCategory(in.Category) == "" {
		errs["category"] = "validation.category"
	}
	return errs
}

func (in petInput) form(loc *webi18n.Localizer, errs fieldErrors) webtemplates.PetForm {
	return webtemplates.PetForm{
		Name:             in.Name,
		Image:            in.CurrentImage,
		Age:              in.Age,
		Category:         petapi.ParseCategory(in.Category),
		Location:         in.Location,
		Color:            in.Color,
		Breed:            in.Breed,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Errors:           errs.localize(loc),
	}
}

func (in petInput) pet(image string) petapi.Pet {
	age, _ := strconv.Atoi(in.Age)
	return petapi.Pet{
		Name:             in.Name,
		Image:            image,
		Age:              age,
		Category:         petapi.ParseCategory(in.Category),
		Location:         in.Location,
		Color:            in.Color,
		Breed:            in.Breed,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
	}
}

func (in petInput) patch(image string) petapi.PetPatch {
	age, _ := strconv.Atoi(in.Age)
	category := string(petapi.ParseCategory(in.Category))
	patch := petapi.PetPatch{
		Name:             &in.Name,
		Age:              &age,
		Category:         &category,
		Location:         &in.Location,
		Color:            &in.Color,
		Breed:            &in.Breed,
		ShortDescription: &in.ShortDescription,
		LongDescription:  &in.LongDescription,
	}
	if image != "" {
		patch.Image = &image
	}
	return patch
}

// applyPatch returns pet with the form's fields, for optimistic display.
func applyPatch(pet petapi.Pet, in petInput, image string) petapi.Pet {
	updated := in.pet(image)
	updated.ID = pet.ID
	updated.OwnerID = pet.OwnerID
	updated.Adopted = pet.Adopted
	updated.CreatedAt = pet.CreatedAt
	if image == "" {
		updated.Image = pet.Image
	}
	return updated
}

// pendingPet is the optimistic row shown until the API assigns an id.
func (s service) pendingPet(pet petapi.Pet, ownerID string) petapi.Pet {
	pet.ID = pendingPrefix + uuid.NewString()
	pet.OwnerID = ownerID
	pet.CreatedAt = s.now()
	return pet
}

func canManage(viewer module.Viewer, pet petapi.Pet) bool {
	return viewer.IsAdmin() || (viewer.UserID != "" && pet.OwnerID == viewer.UserID)
}

func errNotOwner() error {
	return apperrors.EK(apperrors.KindForbidden, "error.forbidden", "pet belongs to another user")
}

// loadManaged returns the pet when viewer may edit it.
func (s service) loadManaged(ctx context.Context, viewer module.Viewer, petID string) (petapi.Pet, error) {
	pet, err := s.loadPet(ctx, petID)
	if err != nil {
		return petapi.Pet{}, err
	}
	if !canManage(viewer, pet) {
		return petapi.Pet{}, errNotOwner()
	}
	return pet, nil
}

func (s service) loadPet(ctx context.Context, petID string) (petapi.Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || strings.HasPrefix(petID, pendingPrefix) {
		return petapi.Pet{}, apperrors.E(apperrors.KindNotFound, "pet not found")
	}
	return s.gateway.GetPet(ctx, petID)
}

// adoptionInput is the raw adoption request form.
type adoptionInput struct {
	Phone   string
	Address string
}

func readAdoptionInput(r *http.Request) adoptionInput {
	return adoptionInput{
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Address: strings.TrimSpace(r.FormValue("address")),
	}
}

func (in adoptionInput) validate() fieldErrors {
	errs := fieldErrors{}
	if in.Phone == "" {
		errs["phone"] = "validation.required"
	} else if !phonePattern.MatchString(in.Phone) {
		errs["phone"] = "validation.phone"
	}
	if in.Address == "" {
		errs["address"] = "validation.required"
	}
	return errs
}

// adoptionRequest builds the request viewer files for pet.
func (s service) adoptionRequest(viewer module.Viewer, pet petapi.Pet, in adoptionInput) (petapi.AdoptionRequest, error) {
	switch {
	case pet.Adopted:
		return petapi.AdoptionRequest{}, apperrors.EK(apperrors.KindConflict, "pets.already_adopted", "pet is already adopted")
	case pet.OwnerID != "" && pet.OwnerID == viewer.UserID:
		return petapi.AdoptionRequest{}, apperrors.EK(apperrors.KindInvalidInput, "adoptions.own_pet", "owners cannot adopt their own pet")
	}
	return petapi.AdoptionRequest{
		PetID:     pet.ID,
		PetName:   pet.Name,
		PetImage:  pet.Image,
		UserName:  viewer.DisplayName,
		UserEmail: viewer.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Date:      s.now(),
		OwnerID:   pet.OwnerID,
		Status:    petapi.AdoptionPending,
	}, nil
}

// decide settles an adoption request. Accepting also marks the pet adopted.
func (s service) decide(ctx context.Context, request petapi.AdoptionRequest, accept bool) error {
	if !accept {
		return s.gateway.RejectAdoption(ctx, request.ID)
	}
	if err := s.gateway.AcceptAdoption(ctx, request.ID); err != nil {
		return err
	}
	if request.PetID == "" {
		return nil
	}
	return s.gateway.SetPetAdopted(ctx, request.PetID, true)
}
