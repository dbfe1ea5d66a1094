// Package flash carries one-time notices across a redirect, such as "Rex was
// listed for adoption" after the new pet form posts.
package flash

import (
	"encoding/base64"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
)

// CookieName holds the pending notice.
const CookieName = "pawprint_flash"

// Kind selects the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

const (
	maxArgs      = 3
	maxArgLength = 80
)

// Notice is a catalog key plus its format arguments.
type Notice struct {
	Kind Kind     `json:"kind"`
	Key  string   `json:"key"`
	Args []string `json:"args,omitempty"`
}

// NoticeSuccess creates a success notice for key.
func NoticeSuccess(key string, args ...string) Notice {
	return Notice{Kind: KindSuccess, Key: key, Args: args}
}

// Write stores notice for the next rendered page. Notices without a key or
// with an unknown kind are dropped.
func Write(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, notice Notice) {
	if w == nil {
		return
	}
	clean, ok := notice.normalized()
	if !ok {
		return
	}
	payload, err := json.Marshal(clean)
	if err != nil {
		return
	}
	setCookie(w, r, policy, base64.RawURLEncoding.EncodeToString(payload), 0)
}

// Take returns the pending notice, if any, and expires the cookie. An
// unreadable cookie is expired as well.
func Take(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		setCookie(w, r, policy, "", -1)
	}
	return decode(cookie.Value)
}

func setCookie(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.Secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func decode(raw string) (Notice, bool) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil || len(decoded) == 0 {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return notice.normalized()
}

// normalized trims the notice and caps its arguments so a cookie stays small.
func (n Notice) normalized() (Notice, bool) {
	out := Notice{
		Kind: Kind(strings.ToLower(strings.TrimSpace(string(n.Kind)))),
		Key:  strings.TrimSpace(n.Key),
	}
	if out.Key == "" {
		return Notice{}, false
	}
	switch out.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
	default:
		return Notice{}, false
	}
	for i, arg := range n.Args {
		if i == maxArgs {
			break
		}
		arg = strings.TrimSpace(arg)
		if runes := []rune(arg); len(runes) > maxArgLength {
			arg = string(runes[:maxArgLength])
		}
		out.Args = append(out.Args, arg)
	}
	return out, true
}
