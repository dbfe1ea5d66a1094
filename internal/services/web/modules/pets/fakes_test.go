package pets

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/views"
)

// fakeGateway records writes and serves pets from memory. Commits run in the
// background, so every field is guarded.
type fakeGateway struct {
	mu         sync.Mutex
	pets       []petapi.Pet
	requests   []petapi.AdoptionRequest
	created    []petapi.Pet
	adopted    map[string]bool
	deleted    []string
	patches    map[string]petapi.PetPatch
	filed      []petapi.AdoptionRequest
	accepted   []string
	rejected   []string
	fetches    int
	writeErr   error
	requestErr error
}

func newFakeGateway(pets ...petapi.Pet) *fakeGateway {
	return &fakeGateway{pets: pets, adopted: map[string]bool{}, patches: map[string]petapi.PetPatch{}}
}

func (f *fakeGateway) fetchPets(_ context.Context, query petapi.PetQuery, _ string) (collection.Page[petapi.Pet], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	var items []petapi.Pet
	for _, pet := range f.pets {
		if query.OwnerID != "" && pet.OwnerID != query.OwnerID {
			continue
		}
		if query.Category != "" && pet.Category != query.Category {
			continue
		}
		items = append(items, pet)
	}
	return collection.Page[petapi.Pet]{Items: items}, nil
}

func (f *fakeGateway) GetPet(_ context.Context, id string) (petapi.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pet := range f.pets {
		if pet.ID == id {
			return pet, nil
		}
	}
	return petapi.Pet{}, apperrors.E(apperrors.KindNotFound, "pet not found")
}

func (f *fakeGateway) CreatePet(_ context.Context, pet petapi.Pet) (petapi.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return petapi.Pet{}, f.writeErr
	}
	f.created = append(f.created, pet)
	pet.ID = "created-1"
	return pet, nil
}

func (f *fakeGateway) UpdatePet(_ context.Context, id string, patch petapi.PetPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.patches[id] = patch
	return nil
}

func (f *fakeGateway) SetPetAdopted(_ context.Context, id string, adopted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.adopted[id] = adopted
	return nil
}

func (f *fakeGateway) DeletePet(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGateway) RequestAdoption(_ context.Context, req petapi.AdoptionRequest) (petapi.AdoptionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.requestErr != nil {
		return petapi.AdoptionRequest{}, f.requestErr
	}
	f.filed = append(f.filed, req)
	req.ID = "req-new"
	return req, nil
}

func (f *fakeGateway) ListOwnerAdoptions(_ context.Context, ownerID string) ([]petapi.AdoptionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []petapi.AdoptionRequest
	for _, req := range f.requests {
		if req.OwnerID == ownerID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeGateway) AcceptAdoption(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.accepted = append(f.accepted, id)
	return nil
}

func (f *fakeGateway) RejectAdoption(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.rejected = append(f.rejected, id)
	return nil
}

func (f *fakeGateway) snapshot(read func(*fakeGateway) bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return read(f)
}

type fakeUploader struct {
	url string
	err error
}

func (f fakeUploader) Upload(_ context.Context, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return f.url, f.err
}

type testEnv struct {
	gateway *fakeGateway
	cfg     Config
	viewer  module.Viewer
}

func newTestEnv(t *testing.T, gateway *fakeGateway) *testEnv {
	t.Helper()
	env := &testEnv{
		gateway: gateway,
		viewer:  module.Viewer{SignedIn: true, UserID: "owner-1", DisplayName: "Ana", Email: "ana@example.test"},
	}
	petViews := func(name string) *PetViews {
		registry, err := views.NewRegistry(views.Config[petapi.PetQuery, string, petapi.Pet]{
			Name:  name,
			Fetch: gateway.fetchPets,
			Key:   petapi.Pet.Key,
		})
		if err != nil {
			t.Fatalf("NewRegistry(%s) error = %v", name, err)
		}
		t.Cleanup(registry.Close)
		return registry
	}
	adoptions, err := views.NewRegistry(views.Config[AdoptionQuery, string, petapi.AdoptionRequest]{
		Name:  "adoptions",
		Fetch: AdoptionFetcher(gateway.ListOwnerAdoptions),
		Key:   petapi.AdoptionRequest.Key,
	})
	if err != nil {
		t.Fatalf("NewRegistry(adoptions) error = %v", err)
	}
	t.Cleanup(adoptions.Close)

	env.cfg = Config{
		Gateway:   gateway,
		Images:    fakeUploader{url: "https://img.example.test/rex.png"},
		Public:    petViews("pets.public"),
		Owned:     petViews("pets.owned"),
		Adoptions: adoptions,
		Now:       func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		Deps: module.Dependencies{
			ResolveViewer:  func(*http.Request) module.Viewer { return env.viewer },
			ResolveVisitor: func(http.ResponseWriter, *http.Request) string { return "visitor-1" },
		},
	}
	return env
}

func (e *testEnv) mux(t *testing.T, register func(*http.ServeMux, handlers)) *http.ServeMux {
	t.Helper()
	h, err := newHandlers(e.cfg)
	if err != nil {
		t.Fatalf("newHandlers() error = %v", err)
	}
	mux := http.NewServeMux()
	register(mux, h)
	return mux
}

// eventually polls cond until it holds or a second passes.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
