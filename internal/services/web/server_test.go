package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
	websqlite "github.com/louisbranch/pawprint/internal/services/web/storage/sqlite"
	"golang.org/x/net/html"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pets":
			_, _ = io.WriteString(w, `{"pets":[{"_id":"p-1","petName":"Rex","petCategory":"dog","petLocation":"Recife","petAge":3,"shortDescription":"good boy","longDescription":"a very good boy"}],"total":1}`)
		case "/donation-campaigns":
			_, _ = io.WriteString(w, `[]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestConfig(t *testing.T) (Config, *websqlite.Store) {
	t.Helper()
	client, err := petapi.New(petapi.Options{BaseURL: fakeAPI(t).URL})
	if err != nil {
		t.Fatalf("petapi.New() error = %v", err)
	}
	store, err := websqlite.Open(context.Background(), filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return Config{
		HTTPAddr:     "127.0.0.1:0",
		Backend:      client,
		Sessions:     store,
		SessionSweep: -1,
	}, store
}

func newTestHandler(t *testing.T) (http.Handler, *websqlite.Store) {
	t.Helper()
	cfg, store := newTestConfig(t)
	t.Cleanup(func() { _ = store.Close() })
	h, views, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	t.Cleanup(views.Close)
	return h, store
}

// pageText returns the visible text of an HTML document.
func pageText(t *testing.T, body string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

func TestNewHandlerRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected missing backend error")
	}
	cfg, store := newTestConfig(t)
	_ = store.Close()
	cfg.Sessions = nil
	if _, _, err := NewHandler(cfg); err == nil {
		t.Fatal("expected missing session store error")
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	cfg, store := newTestConfig(t)
	t.Cleanup(func() { _ = store.Close() })
	cfg.HTTPAddr = " "
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatal("expected missing address error")
	}
}

func TestHandlerServesHealthWithRequestID(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestHandlerServesStaticAssets(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	for _, path := range []string{"/static/app.css", "/static/auth.js", "/static/donate.js"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}

func TestHandlerRendersPetListingFromAPI(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pets/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if text := pageText(t, rr.Body.String()); !strings.Contains(text, "Rex") {
		t.Fatalf("listing text = %q, want pet name", text)
	}
	var visitor bool
	for _, cookie := range rr.Result().Cookies() {
		visitor = visitor || cookie.Name == sessioncookie.VisitorName
	}
	if !visitor {
		t.Fatal("expected visitor cookie for the mounted view")
	}
}

func TestHandlerRedirectsAnonymousDashboardToLogin(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); !strings.HasPrefix(got, "/auth/login") {
		t.Fatalf("Location = %q, want login", got)
	}
}

func TestHandlerResolvesSessionCookie(t *testing.T) {
	t.Parallel()

	h, store := newTestHandler(t)
	err := store.PutSession(context.Background(), storage.Session{
		ID:          "sess-1",
		UserID:      "user-1",
		DisplayName: "Ana",
		Email:       "ana@example.test",
		Token:       "token",
		ExpiresAt:   time.Now().Add(time.Hour),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("PutSession() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/app/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "sess-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if text := pageText(t, rr.Body.String()); !strings.Contains(text, "Ana") {
		t.Fatalf("dashboard text = %q, want display name", text)
	}
}

func TestHandlerKeepsAdminScreensFromMembers(t *testing.T) {
	t.Parallel()

	h, store := newTestHandler(t)
	err := store.PutSession(context.Background(), storage.Session{
		ID:        "sess-2",
		UserID:    "user-2",
		Token:     "token",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("PutSession() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/app/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "sess-2"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/app/" {
		t.Fatalf("Location = %q, want %q", got, "/app/")
	}
}

func TestListenAndServeStopsWithContext(t *testing.T) {
	t.Parallel()

	cfg, _ := newTestConfig(t)
	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestCloseIsNilSafe(t *testing.T) {
	t.Parallel()

	var srv *Server
	srv.Close()
}
