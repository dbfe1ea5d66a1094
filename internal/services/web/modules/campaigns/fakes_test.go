package campaigns

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
	"github.com/shopspring/decimal"
)

// fakeGateway records writes and serves campaigns from memory. Commits run
// in the background, so every field is guarded.
type fakeGateway struct {
	mu           sync.Mutex
	campaigns    []petapi.Campaign
	recommended  []petapi.Campaign
	created      []petapi.Campaign
	patches      map[string]petapi.CampaignPatch
	paused       map[string]bool
	intents      []decimal.Decimal
	donations    []petapi.Donation
	writeErr     error
	intentErr    error
	recommendErr error
}

func newFakeGateway(campaigns ...petapi.Campaign) *fakeGateway {
	return &fakeGateway{campaigns: campaigns, patches: map[string]petapi.CampaignPatch{}, paused: map[string]bool{}}
}

func (f *fakeGateway) fetchCampaigns(_ context.Context, query petapi.CampaignQuery, _ string) (collection.Page[petapi.Campaign], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []petapi.Campaign
	for _, campaign := range f.campaigns {
		if query.OwnerID != "" && campaign.OwnerID != query.OwnerID {
			continue
		}
		items = append(items, campaign)
	}
	return collection.Page[petapi.Campaign]{Items: items}, nil
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

func (f *fakeGateway) CreateCampaign(_ context.Context, campaign petapi.Campaign) (petapi.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return petapi.Campaign{}, f.writeErr
	}
	f.created = append(f.created, campaign)
	campaign.ID = "created-1"
	return campaign, nil
}

func (f *fakeGateway) UpdateCampaign(_ context.Context, id string, patch petapi.CampaignPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.patches[id] = patch
	return nil
}

func (f *fakeGateway) SetCampaignPaused(_ context.Context, id string, paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.paused[id] = paused
	return nil
}

func (f *fakeGateway) RecommendedCampaignsFor(_ context.Context, excludeID string, limit int) ([]petapi.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recommendErr != nil {
		return nil, f.recommendErr
	}
	var out []petapi.Campaign
	for _, campaign := range f.recommended {
		if campaign.ID != excludeID && len(out) < limit {
			out = append(out, campaign)
		}
	}
	return out, nil
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, amount decimal.Decimal) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.intentErr != nil {
		return "", f.intentErr
	}
	f.intents = append(f.intents, amount)
	return "pi_secret_1", nil
}

func (f *fakeGateway) RecordDonation(_ context.Context, donation petapi.Donation) (petapi.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return petapi.Donation{}, f.writeErr
	}
	f.donations = append(f.donations, donation)
	donation.ID = "d-1"
	return donation, nil
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

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

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
	campaignViews := func(name string) *CampaignViews {
		registry, err := views.NewRegistry(views.Config[petapi.CampaignQuery, string, petapi.Campaign]{
			Name:  name,
			Fetch: gateway.fetchCampaigns,
			Key:   petapi.Campaign.Key,
		})
		if err != nil {
			t.Fatalf("NewRegistry(%s) error = %v", name, err)
		}
		t.Cleanup(registry.Close)
		return registry
	}
	env.cfg = Config{
		Gateway:        gateway,
		Images:         fakeUploader{url: "https://img.example.test/rex.png"},
		Public:         campaignViews("campaigns.public"),
		Owned:          campaignViews("campaigns.owned"),
		PublishableKey: "pk_test_1",
		Now:            func() time.Time { return testNow },
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

func campaignFixtures() []petapi.Campaign {
	return []petapi.Campaign{
		{ID: "c-1", PetName: "Rex", OwnerID: "owner-1", MaxDonation: decimal.NewFromInt(500), DonatedAmount: decimal.NewFromInt(100), LastDate: "2026-04-01"},
		{ID: "c-2", PetName: "Mia", OwnerID: "owner-2", MaxDonation: decimal.NewFromInt(200), LastDate: "2026-04-01"},
		{ID: "c-3", PetName: "Old", OwnerID: "owner-2", MaxDonation: decimal.NewFromInt(200), LastDate: "2026-01-01"},
	}
}
