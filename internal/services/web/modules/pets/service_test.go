package pets

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
)

func TestPetInputValidate(t *testing.T) {
	t.Parallel()

	valid := petInput{
		Name:             "Bolt",
		Age:              "4",
		Category:         "dog",
		Location:         "Recife",
		ShortDescription: "Friendly",
		LongDescription:  "Loves walks.",
	}
	tests := []struct {
		name  string
		edit  func(*petInput)
		wants fieldErrors
	}{
		{name: "valid", edit: func(*petInput) {}, wants: fieldErrors{}},
		{name: "missing name", edit: func(in *petInput) { in.Name = "" }, wants: fieldErrors{"name": "validation.required"}},
		{name: "age not a number", edit: func(in *petInput) { in.Age = "four" }, wants: fieldErrors{"age": "validation.age"}},
		{name: "negative age", edit: func(in *petInput) { in.Age = "-1" }, wants: fieldErrors{"age": "validation.age"}},
		{name: "age above limit", edit: func(in *petInput) { in.Age = "61" }, wants: fieldErrors{"age": "validation.age"}},
		{name: "age at limit", edit: func(in *petInput) { in.Age = "60" }, wants: fieldErrors{}},
		{name: "unknown category", edit: func(in *petInput) { in.Category = "dragon" }, wants: fieldErrors{"category": "validation.category"}},
		{
			name: "several fields",
			edit: func(in *petInput) { in.Location = ""; in.LongDescription = "" },
			wants: fieldErrors{
				"location":         "validation.required",
				"long_description": "validation.required",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := valid
			tc.edit(&in)
			if diff := cmp.Diff(tc.wants, in.validate()); diff != "" {
				t.Fatalf("validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdoptionInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    adoptionInput
		wants fieldErrors
	}{
		{name: "valid", in: adoptionInput{Phone: "+55 (81) 99999-0000", Address: "Rua A"}, wants: fieldErrors{}},
		{name: "empty", in: adoptionInput{}, wants: fieldErrors{"phone": "validation.required", "address": "validation.required"}},
		{name: "letters in phone", in: adoptionInput{Phone: "call me", Address: "Rua A"}, wants: fieldErrors{"phone": "validation.phone"}},
		{name: "short phone", in: adoptionInput{Phone: "12345", Address: "Rua A"}, wants: fieldErrors{"phone": "validation.phone"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.wants, tc.in.validate()); diff != "" {
				t.Fatalf("validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyPatchKeepsIdentity(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	pet := petapi.Pet{ID: "p-1", OwnerID: "owner-1", Image: "old.png", Adopted: true, CreatedAt: created}
	in := petInput{Name: "Rex II", Age: "5", Category: "cat", Location: "Olinda"}

	got := applyPatch(pet, in, "")
	if got.ID != "p-1" || got.OwnerID != "owner-1" || !got.Adopted || !got.CreatedAt.Equal(created) {
		t.Fatalf("applyPatch() = %+v, want identity kept", got)
	}
	if got.Image != "old.png" || got.Name != "Rex II" || got.Age != 5 {
		t.Fatalf("applyPatch() = %+v, want form fields and old image", got)
	}
	if got := applyPatch(pet, in, "new.png"); got.Image != "new.png" {
		t.Fatalf("Image = %q, want new.png", got.Image)
	}
}

func TestPatchOmitsImageWhenUnchanged(t *testing.T) {
	t.Parallel()

	in := petInput{Name: "Rex", Age: "3", Category: "dog"}
	if patch := in.patch(""); patch.Image != nil {
		t.Fatalf("Image = %q, want nil", *patch.Image)
	}
	patch := in.patch("new.png")
	if patch.Image == nil || *patch.Image != "new.png" {
		t.Fatalf("Image = %v, want new.png", patch.Image)
	}
	if patch.Age == nil || *patch.Age != 3 {
		t.Fatalf("Age = %v, want 3", patch.Age)
	}
}

func TestLoadPetRejectsPendingKeys(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeGateway(ownedPets()...), fakeUploader{}, time.Now)
	for _, id := range []string{"", "  ", pendingPrefix + "abc"} {
		_, err := svc.loadPet(t.Context(), id)
		if got := apperrors.HTTPStatus(err); got != http.StatusNotFound {
			t.Fatalf("loadPet(%q) status = %d, want %d", id, got, http.StatusNotFound)
		}
	}
	pet, err := svc.loadPet(t.Context(), "p-1")
	if err != nil || pet.Name != "Rex" {
		t.Fatalf("loadPet(p-1) = %+v, %v", pet, err)
	}
}

func TestLoadManagedChecksOwnership(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeGateway(ownedPets()...), fakeUploader{}, time.Now)
	owner := module.Viewer{SignedIn: true, UserID: "owner-1"}
	if _, err := svc.loadManaged(t.Context(), owner, "p-1"); err != nil {
		t.Fatalf("loadManaged(own) error = %v", err)
	}
	_, err := svc.loadManaged(t.Context(), owner, "p-2")
	if got := apperrors.HTTPStatus(err); got != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", got, http.StatusForbidden)
	}
	admin := module.Viewer{SignedIn: true, UserID: "root", Role: "admin"}
	if _, err := svc.loadManaged(t.Context(), admin, "p-2"); err != nil {
		t.Fatalf("loadManaged(admin) error = %v", err)
	}
}

func TestPendingPetIsMarked(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newService(newFakeGateway(), fakeUploader{}, func() time.Time { return now })
	first := svc.pendingPet(petapi.Pet{Name: "Bolt"}, "owner-1")
	second := svc.pendingPet(petapi.Pet{Name: "Bolt"}, "owner-1")
	if first.ID == second.ID {
		t.Fatalf("pending ids collide: %q", first.ID)
	}
	if first.OwnerID != "owner-1" || !first.CreatedAt.Equal(now) {
		t.Fatalf("pendingPet() = %+v", first)
	}
	if _, err := svc.loadPet(t.Context(), first.ID); apperrors.HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("pending pet should not be loadable, err = %v", err)
	}
}

func TestAdoptionRequestRules(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeGateway(), fakeUploader{}, time.Now)
	viewer := module.Viewer{SignedIn: true, UserID: "u-1", DisplayName: "Bo", Email: "bo@example.test"}
	in := adoptionInput{Phone: "+55 81 99999-0000", Address: "Rua A"}

	_, err := svc.adoptionRequest(viewer, petapi.Pet{ID: "p-1", OwnerID: "o-1", Adopted: true}, in)
	if got := apperrors.LocalizationKey(err); got != "pets.already_adopted" {
		t.Fatalf("adopted key = %q", got)
	}
	_, err = svc.adoptionRequest(viewer, petapi.Pet{ID: "p-1", OwnerID: "u-1"}, in)
	if got := apperrors.LocalizationKey(err); got != "adoptions.own_pet" {
		t.Fatalf("own pet key = %q", got)
	}
	req, err := svc.adoptionRequest(viewer, petapi.Pet{ID: "p-1", Name: "Rex", OwnerID: "o-1"}, in)
	if err != nil {
		t.Fatalf("adoptionRequest() error = %v", err)
	}
	if req.UserName != "Bo" || req.OwnerID != "o-1" || req.PetName != "Rex" || req.Status != petapi.AdoptionPending {
		t.Fatalf("request = %+v", req)
	}
}

func TestDecideRejectLeavesPetAlone(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := newService(gateway, fakeUploader{}, time.Now)
	if err := svc.decide(t.Context(), petapi.AdoptionRequest{ID: "r-1", PetID: "p-1"}, false); err != nil {
		t.Fatalf("decide() error = %v", err)
	}
	if len(gateway.rejected) != 1 || len(gateway.adopted) != 0 {
		t.Fatalf("rejected = %v adopted = %v", gateway.rejected, gateway.adopted)
	}
}

func TestDecideAcceptStopsOnFailure(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	gateway.writeErr = errors.New("down")
	svc := newService(gateway, fakeUploader{}, time.Now)
	if err := svc.decide(t.Context(), petapi.AdoptionRequest{ID: "r-1", PetID: "p-1"}, true); err == nil {
		t.Fatal("decide() error = nil, want failure")
	}
	if len(gateway.adopted) != 0 {
		t.Fatalf("adopted = %v, want untouched", gateway.adopted)
	}
}

func TestAdoptionFetcherReturnsSinglePage(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	gateway.requests = []petapi.AdoptionRequest{
		{ID: "r-1", OwnerID: "o-1"},
		{ID: "r-2", OwnerID: "o-2"},
	}
	fetch := AdoptionFetcher(gateway.ListOwnerAdoptions)
	page, err := fetch(t.Context(), AdoptionQuery{OwnerID: "o-1"}, "")
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	want := collection.Page[petapi.AdoptionRequest]{Items: []petapi.AdoptionRequest{{ID: "r-1", OwnerID: "o-1"}}}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}
