package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	"github.com/shopspring/decimal"
)

type fakeGateway struct {
	donations []petapi.Donation
	err       error
	userID    string
}

func (f *fakeGateway) ListUserDonations(_ context.Context, userID string) ([]petapi.Donation, error) {
	f.userID = userID
	return f.donations, f.err
}

func newMux(gateway DonationGateway, viewer module.Viewer) *http.ServeMux {
	mux := http.NewServeMux()
	base := modulehandler.NewBase(module.Dependencies{
		ResolveViewer: func(*http.Request) module.Viewer { return viewer },
	})
	registerRoutes(mux, newHandlers(gateway, base))
	return mux
}

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

var ana = module.Viewer{SignedIn: true, UserID: "owner-1", DisplayName: "Ana"}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, handlers{})
}

func TestRoutesPathAndMethodContracts(t *testing.T) {
	t.Parallel()

	mux := newMux(&fakeGateway{}, ana)
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "dashboard", method: http.MethodGet, path: routepath.AppDashboard, wantStatus: http.StatusOK},
		{name: "donations", method: http.MethodGet, path: routepath.AppDonations, wantStatus: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: routepath.AppPrefix + "missing", wantStatus: http.StatusNotFound},
		{name: "dashboard post rejected", method: http.MethodPost, path: routepath.AppDashboard, wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if rr := serve(mux, tc.method, tc.path); rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
		})
	}
}

func TestDashboardShowsAdminLinksOnlyToAdmins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		viewer    module.Viewer
		wantAdmin bool
	}{
		{name: "user", viewer: ana, wantAdmin: false},
		{name: "admin", viewer: module.Viewer{SignedIn: true, UserID: "admin-1", DisplayName: "Root", Role: module.RoleAdmin}, wantAdmin: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := serve(newMux(&fakeGateway{}, tc.viewer), http.MethodGet, routepath.AppDashboard).Body.String()
			if !strings.Contains(body, "Hello, "+tc.viewer.DisplayName) {
				t.Fatalf("body missing greeting for %q", tc.viewer.DisplayName)
			}
			if got := strings.Contains(body, `href="`+routepath.AdminUsers+`"`); got != tc.wantAdmin {
				t.Fatalf("admin link shown = %v, want %v", got, tc.wantAdmin)
			}
		})
	}
}

func TestDonationsListsViewerDonationsNewestFirst(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{donations: []petapi.Donation{
		{ID: "d-1", CampaignID: "c-1", PetName: "Rex", Amount: decimal.NewFromInt(10), CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "d-2", CampaignID: "c-2", PetName: "Mia", Amount: decimal.RequireFromString("25.5"), CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}}
	rr := serve(newMux(gateway, ana), http.MethodGet, routepath.AppDonations)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if gateway.userID != "owner-1" {
		t.Fatalf("ListUserDonations user = %q, want owner-1", gateway.userID)
	}
	body := rr.Body.String()
	mia, rex := strings.Index(body, "Mia"), strings.Index(body, "Rex")
	if mia < 0 || rex < 0 || mia > rex {
		t.Fatalf("donations out of order: Mia at %d, Rex at %d", mia, rex)
	}
	if !strings.Contains(body, "$25.50") {
		t.Fatal("body missing formatted amount $25.50")
	}
}

func TestDonationsFailureRendersError(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{err: &petapi.StatusError{Status: http.StatusServiceUnavailable}}
	rr := serve(newMux(gateway, ana), http.MethodGet, routepath.AppDonations)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestDonationsWithoutGatewayIsUnavailable(t *testing.T) {
	t.Parallel()

	rr := serve(newMux(nil, ana), http.MethodGet, routepath.AppDonations)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestSortNewestFirstKeepsOrderOfTies(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	donations := []petapi.Donation{{ID: "a", CreatedAt: day}, {ID: "b", CreatedAt: day}, {ID: "c", CreatedAt: day.Add(time.Hour)}}
	sortNewestFirst(donations)
	var got []string
	for _, d := range donations {
		got = append(got, d.ID)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestModuleMountsAtAppPrefix(t *testing.T) {
	t.Parallel()

	m := New(nil, module.Dependencies{})
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if m.ID() != "dashboard" || mount.Prefix != routepath.AppPrefix || mount.Handler == nil {
		t.Fatalf("module %q mounted at %q", m.ID(), mount.Prefix)
	}
}
