package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
)

func TestBuildRootHandlerGatesOnTheResolvedViewer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		viewer module.Viewer
		path   string
		want   int
	}{
		{name: "anonymous protected", viewer: module.Viewer{}, path: "/app/pets/", want: http.StatusFound},
		{name: "member protected", viewer: module.Viewer{SignedIn: true, UserID: "u-1"}, path: "/app/pets/", want: http.StatusNoContent},
		{name: "member admin", viewer: module.Viewer{SignedIn: true, UserID: "u-1"}, path: "/app/admin/users", want: http.StatusFound},
		{name: "admin admin", viewer: module.Viewer{SignedIn: true, UserID: "u-1", Role: module.RoleAdmin}, path: "/app/admin/users", want: http.StatusNoContent},
		{name: "anonymous public", viewer: module.Viewer{}, path: "/pets/", want: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			viewer := tc.viewer
			h, err := BuildRootHandler(Config{
				Dependencies: module.Dependencies{
					ResolveViewer: func(*http.Request) module.Viewer { return viewer },
				},
				PublicModules:    []module.Module{stub("pets", "/pets/")},
				ProtectedModules: []module.Module{stub("owned", "/app/pets/")},
				AdminModules:     []module.Module{stub("admin", "/app/admin/")},
			})
			if err != nil {
				t.Fatalf("BuildRootHandler() error = %v", err)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func TestBuildRootHandlerDefaultsToContextViewer(t *testing.T) {
	t.Parallel()

	h, err := BuildRootHandler(Config{ProtectedModules: []module.Module{stub("owned", "/app/pets/")}})
	if err != nil {
		t.Fatalf("BuildRootHandler() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/app/pets/", nil)
	req = req.WithContext(module.WithViewer(req.Context(), module.Viewer{SignedIn: true, UserID: "u-1"}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}
