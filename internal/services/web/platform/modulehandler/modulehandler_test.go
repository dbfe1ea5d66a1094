package modulehandler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/collection"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	flashnotice "github.com/louisbranch/pawprint/internal/services/web/platform/flash"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/views"
	"golang.org/x/text/language"
)

func TestViewerDelegatesToResolver(t *testing.T) {
	t.Parallel()

	want := module.Viewer{SignedIn: true, DisplayName: "Ada"}
	base := NewBase(module.Dependencies{ResolveViewer: func(*http.Request) module.Viewer { return want }})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.Viewer(r); got != want {
		t.Fatalf("Viewer() = %+v, want %+v", got, want)
	}
}

func TestViewerFallsBackToContext(t *testing.T) {
	t.Parallel()

	want := module.Viewer{SignedIn: true, UserID: "user-1"}
	base := NewBase(module.Dependencies{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(module.WithViewer(r.Context(), want))
	if got := base.Viewer(r); got != want {
		t.Fatalf("Viewer() = %+v, want %+v", got, want)
	}
	if got := base.Viewer(nil); got != (module.Viewer{}) {
		t.Fatalf("Viewer(nil) = %+v, want zero", got)
	}
}

func TestVisitorTrimsResolvedID(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{ResolveVisitor: func(http.ResponseWriter, *http.Request) string { return " v-1 " }})
	if got := base.Visitor(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); got != "v-1" {
		t.Fatalf("Visitor() = %q, want %q", got, "v-1")
	}
	if got := NewBase(module.Dependencies{}).Visitor(nil, nil); got != "" {
		t.Fatalf("Visitor() without resolver = %q, want empty", got)
	}
}

func TestWritePageRendersError(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/pets/", nil)
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return errors.New("render failed") })
	base.WritePage(rr, r, webi18n.NewLocalizer(language.AmericanEnglish), pagerender.Page{Title: "Pets", Main: failing})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestWriteNotFound(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	rr := httptest.NewRecorder()
	base.WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil), webi18n.NewLocalizer(language.AmericanEnglish))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestRedirectWritesFlashAndHXRedirect(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/app/pets/new", nil)
	r.Header.Set("HX-Request", "true")
	notice := flashnotice.NoticeSuccess("pets.created", "Rex")
	base.Redirect(rr, r, "/app/pets/", &notice)

	if got := rr.Header().Get("HX-Redirect"); got != "/app/pets/" {
		t.Fatalf("HX-Redirect = %q, want %q", got, "/app/pets/")
	}
	found := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flashnotice.CookieName && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected flash cookie")
	}
}

func TestWritePageShowsFlashOnce(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	seed := httptest.NewRecorder()
	base.Flash(seed, httptest.NewRequest(http.MethodPost, "/app/pets/new", nil), flashnotice.NoticeSuccess("pets.created", "Rex"))

	r := httptest.NewRequest(http.MethodGet, "/app/pets/", nil)
	for _, cookie := range seed.Result().Cookies() {
		r.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	base.WritePage(rr, r, webi18n.NewLocalizer(language.AmericanEnglish), pagerender.Page{Title: "Pets", Main: templ.NopComponent})
	if !strings.Contains(rr.Body.String(), "Rex") {
		t.Fatalf("body missing flash toast: %q", rr.Body.String())
	}
	cleared := false
	for _, cookie := range rr.Result().Cookies() {
		cleared = cleared || (cookie.Name == flashnotice.CookieName && cookie.MaxAge < 0)
	}
	if !cleared {
		t.Fatal("expected flash cookie to be cleared")
	}
}

func TestRedirectWithoutNotice(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	rr := httptest.NewRecorder()
	base.Redirect(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", nil), "/", nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("unexpected cookies: %v", rr.Result().Cookies())
	}
}

func TestNoticeToastsLocalizesRejections(t *testing.T) {
	t.Parallel()

	loc := webi18n.NewLocalizer(language.AmericanEnglish)
	toasts := NoticeToasts(loc, []views.Notice{{Kind: collection.MutationRemove, Key: "p1"}})
	if len(toasts) != 1 {
		t.Fatalf("len(toasts) = %d, want 1", len(toasts))
	}
	if toasts[0].Kind != "error" {
		t.Fatalf("toast kind = %q, want error", toasts[0].Kind)
	}
	if toasts[0].Message == "" || strings.HasPrefix(toasts[0].Message, "notice.") {
		t.Fatalf("toast message = %q, want localized text", toasts[0].Message)
	}
	if NoticeToasts(loc, nil) != nil {
		t.Fatal("expected nil toasts for no notices")
	}
}
