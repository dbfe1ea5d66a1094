// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Main       templ.Component
	Toasts     []webtemplates.Toast
	Scripts    []string
}

// WritePage renders page inside the app shell, or as a bare fragment for
// HTMX requests.
func WritePage(w http.ResponseWriter, r *http.Request, viewer module.Viewer, loc *webi18n.Localizer, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	main := page.Main
	if main == nil {
		main = templ.NopComponent
	}
	toasts := page.Toasts
	var out templ.Component
	if httpx.IsHTMXRequest(r) && !isBoosted(r) {
		out = webtemplates.Fragment(toasts, main)
	} else {
		path := ""
		if r != nil && r.URL != nil {
			path = r.URL.Path
		}
		out = webtemplates.Layout(webtemplates.Chrome{
			Title:     page.Title,
			Path:      path,
			Viewer:    viewer,
			Languages: webi18n.LanguageOptions(loc, r),
			Toasts:    toasts,
			Scripts:   page.Scripts,
		}, loc, main)
	}
	return write(w, r, statusCode, out)
}

// WriteFragment renders component alone, for HTMX swaps of rows and list
// pages.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	if w == nil {
		return nil
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if component == nil {
		component = templ.NopComponent
	}
	return write(w, r, statusCode, component)
}

func write(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// isBoosted reports whether HTMX is navigating the whole page, which swaps
// the full document body.
func isBoosted(r *http.Request) bool {
	return r != nil && r.Header.Get("HX-Boosted") == "true"
}
