package admin

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/views"
	"github.com/shopspring/decimal"
)

// fakeGateway serves every listing from memory and records moderation
// writes. Commits run in the background, so every field is guarded.
type fakeGateway struct {
	mu        sync.Mutex
	pets      []petapi.Pet
	campaigns []petapi.Campaign
	users     []petapi.User
	adopted   map[string]bool
	paused    map[string]bool
	deleted   []string
	promoted  []string
	writeErr  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		pets: []petapi.Pet{
			{ID: "p-1", Name: "Rex", OwnerID: "owner-1", Category: petapi.CategoryDog},
			{ID: "p-2", Name: "Mia", OwnerID: "owner-2", Category: petapi.CategoryCat},
		},
		campaigns: []petapi.Campaign{
			{ID: "c-1", PetName: "Rex", OwnerID: "owner-1", MaxDonation: decimal.NewFromInt(500)},
			{ID: "c-2", PetName: "Mia", OwnerID: "owner-2", MaxDonation: decimal.NewFromInt(200), Paused: true},
		},
		users: []petapi.User{
			{ID: "owner-1", DisplayName: "Ana", Email: "ana@example.test", Role: petapi.RoleAdmin},
			{ID: "owner-2", DisplayName: "Bo", Email: "bo@example.test"},
		},
		adopted: map[string]bool{},
		paused:  map[string]bool{},
	}
}

func (f *fakeGateway) fetchPets(_ context.Context, _ petapi.PetQuery, _ string) (collection.Page[petapi.Pet], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return collection.Page[petapi.Pet]{Items: append([]petapi.Pet(nil), f.pets...)}, nil
}

func (f *fakeGateway) fetchCampaigns(_ context.Context, _ petapi.CampaignQuery, _ string) (collection.Page[petapi.Campaign], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return collection.Page[petapi.Campaign]{Items: append([]petapi.Campaign(nil), f.campaigns...)}, nil
}

func (f *fakeGateway) ListUsers(context.Context) ([]petapi.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]petapi.User(nil), f.users...), nil
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

func (f *fakeGateway) GetCampaign(_ context.Context, id string) (petapi.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, campaign := range f.campaigns {
		if campaign.ID == id {
			return campaign, nil
		}
	}
	return petapi.Campaign{}, apperrors.E(apperrors.KindNotFound, "campaign not found")
}

func (f *fakeGateway) write(apply func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	apply()
	return nil
}

func (f *fakeGateway) SetPetAdopted(_ context.Context, id string, adopted bool) error {
	return f.write(func() { f.adopted[id] = adopted })
}

func (f *fakeGateway) DeletePet(_ context.Context, id string) error {
	return f.write(func() { f.deleted = append(f.deleted, id) })
}

func (f *fakeGateway) SetCampaignPaused(_ context.Context, id string, paused bool) error {
	return f.write(func() { f.paused[id] = paused })
}

func (f *fakeGateway) DeleteCampaign(_ context.Context, id string) error {
	return f.write(func() { f.deleted = append(f.deleted, id) })
}

func (f *fakeGateway) PromoteToAdmin(_ context.Context, id string) error {
	return f.write(func() { f.promoted = append(f.promoted, id) })
}

func (f *fakeGateway) snapshot(read func(*fakeGateway) bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return read(f)
}

func newRegistry[Q comparable, T any](t *testing.T, cfg views.Config[Q, string, T]) *views.Registry[Q, string, T] {
	t.Helper()
	registry, err := views.NewRegistry(cfg)
	if err != nil {
		t.Fatalf("NewRegistry(%s) error = %v", cfg.Name, err)
	}
	t.Cleanup(registry.Close)
	return registry
}

func newTestConfig(t *testing.T, gateway *fakeGateway) Config {
	t.Helper()
	return Config{
		Gateway: gateway,
		Pets: newRegistry(t, views.Config[petapi.PetQuery, string, petapi.Pet]{
			Name: "pets.admin", Fetch: gateway.fetchPets, Key: petapi.Pet.Key,
		}),
		Campaigns: newRegistry(t, views.Config[petapi.CampaignQuery, string, petapi.Campaign]{
			Name: "campaigns.admin", Fetch: gateway.fetchCampaigns, Key: petapi.Campaign.Key,
		}),
		Users: newRegistry(t, views.Config[UserQuery, string, petapi.User]{
			Name: "users", Fetch: UserFetcher(gateway.ListUsers), Key: petapi.User.Key,
		}),
		Deps: module.Dependencies{
			ResolveViewer: func(*http.Request) module.Viewer {
				return module.Viewer{SignedIn: true, UserID: "owner-1", DisplayName: "Ana", Role: module.RoleAdmin}
			},
			ResolveVisitor: func(http.ResponseWriter, *http.Request) string { return "visitor-1" },
		},
	}
}

func newMux(t *testing.T, gateway *fakeGateway) *http.ServeMux {
	t.Helper()
	h, err := newHandlers(newTestConfig(t, gateway))
	if err != nil {
		t.Fatalf("newHandlers() error = %v", err)
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
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
