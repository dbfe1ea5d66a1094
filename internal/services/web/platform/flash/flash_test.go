package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
)

// carry copies the cookies set on rr onto a fresh request.
func carry(t *testing.T, rr *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/app/pets/", nil)
	for _, cookie := range rr.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestWriteThenTake(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "/app/pets/new", nil), requestmeta.SchemePolicy{}, NoticeSuccess("pets.created", " Rex "))

	next := httptest.NewRecorder()
	notice, ok := Take(next, carry(t, rr), requestmeta.SchemePolicy{})
	if !ok {
		t.Fatal("Take() ok = false, want true")
	}
	want := Notice{Kind: KindSuccess, Key: "pets.created", Args: []string{"Rex"}}
	if diff := cmp.Diff(want, notice); diff != "" {
		t.Fatalf("notice mismatch (-want +got):\n%s", diff)
	}
	cookies := next.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected the flash cookie to be expired, got %v", cookies)
	}
}

func TestTakeWithoutCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if _, ok := Take(rr, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{}); ok {
		t.Fatal("Take() ok = true, want false")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie writes")
	}
	if _, ok := Take(nil, nil, requestmeta.SchemePolicy{}); ok {
		t.Fatal("Take(nil) ok = true, want false")
	}
}

func TestTakeExpiresUnreadableCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/pets/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64!"})
	rr := httptest.NewRecorder()
	if _, ok := Take(rr, req, requestmeta.SchemePolicy{}); ok {
		t.Fatal("Take() ok = true, want false")
	}
	if len(rr.Result().Cookies()) != 1 {
		t.Fatal("expected the flash cookie to be expired")
	}
}

func TestWriteDropsInvalidNotices(t *testing.T) {
	t.Parallel()

	for _, notice := range []Notice{
		{Kind: KindSuccess},
		{Kind: "party", Key: "pets.created"},
	} {
		rr := httptest.NewRecorder()
		Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{}, notice)
		if got := rr.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("Write(%+v) Set-Cookie = %q, want none", notice, got)
		}
	}
}

func TestWriteCapsArguments(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{}, Notice{
		Kind: "ERROR",
		Key:  "notice.failed",
		Args: []string{strings.Repeat("á", 200), "b", "c", "d"},
	})
	notice, ok := Take(httptest.NewRecorder(), carry(t, rr), requestmeta.SchemePolicy{})
	if !ok {
		t.Fatal("Take() ok = false, want true")
	}
	if notice.Kind != KindError || len(notice.Args) != maxArgs {
		t.Fatalf("notice = %+v", notice)
	}
	if got := len([]rune(notice.Args[0])); got != maxArgLength {
		t.Fatalf("first arg runes = %d, want %d", got, maxArgLength)
	}
}

func TestWriteHonorsSchemePolicy(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "http://pawprint.test/app/pets/new", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()
	Write(rr, req, requestmeta.SchemePolicy{TrustForwardedProto: true}, NoticeSuccess("pets.created"))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].Secure {
		t.Fatalf("expected a secure flash cookie, got %v", cookies)
	}
}
