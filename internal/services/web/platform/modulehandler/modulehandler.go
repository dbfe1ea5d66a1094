// Package modulehandler provides a composable base for web module handlers.
//
// Modules share the same scaffold for viewer resolution, localization, page
// rendering, redirects, and error handling. Handlers embed Base rather than
// duplicating it.
package modulehandler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	flashnotice "github.com/louisbranch/pawprint/internal/services/web/platform/flash"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/pawprint/internal/services/web/platform/weberror"
	"github.com/louisbranch/pawprint/internal/services/web/views"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

// Base carries the request-scoped resolvers shared by module handlers.
type Base struct {
	resolveViewer  module.ResolveViewer
	resolveVisitor module.ResolveVisitor
	policy         requestmeta.SchemePolicy
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{
		resolveViewer:  deps.ResolveViewer,
		resolveVisitor: deps.ResolveVisitor,
		policy:         deps.SchemePolicy,
	}
}

// Viewer resolves the signed-in user for r. Without a resolver it falls back
// to the viewer stored on the request context.
func (b Base) Viewer(r *http.Request) module.Viewer {
	if r == nil {
		return module.Viewer{}
	}
	if b.resolveViewer == nil {
		return module.ViewerFromRequest(r)
	}
	return b.resolveViewer(r)
}

// Visitor returns the id that keys the visitor's mounted views.
func (b Base) Visitor(w http.ResponseWriter, r *http.Request) string {
	if b.resolveVisitor == nil {
		return ""
	}
	return strings.TrimSpace(b.resolveVisitor(w, r))
}

// Localizer resolves the request language.
func (b Base) Localizer(w http.ResponseWriter, r *http.Request) *webi18n.Localizer {
	return webi18n.ResolveLocalizer(w, r)
}

// WritePage renders a page in the app shell, or as a fragment for HTMX. A
// pending flash notice is shown first and then cleared.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, page pagerender.Page) {
	if toast, ok := b.takeFlash(w, r, loc); ok {
		page.Toasts = append([]webtemplates.Toast{toast}, page.Toasts...)
	}
	if err := pagerender.WritePage(w, r, b.Viewer(r), loc, page); err != nil {
		b.WriteError(w, r, loc, err)
	}
}

// WriteFragment renders component alone, for row swaps and list pages.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, statusCode int, component templ.Component) {
	if err := pagerender.WriteFragment(w, r, statusCode, component); err != nil {
		b.WriteError(w, r, loc, err)
	}
}

// WriteError renders a localized error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, err error) {
	weberror.WriteError(w, r, b.Viewer(r), loc, err)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer) {
	weberror.WriteStatus(w, r, b.Viewer(r), loc, http.StatusNotFound)
}

// Flash stores a one-time notice for the next rendered page.
func (b Base) Flash(w http.ResponseWriter, r *http.Request, notice flashnotice.Notice) {
	flashnotice.Write(w, r, b.policy, notice)
}

// Redirect sends the browser to location, optionally carrying a notice.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, location string, notice *flashnotice.Notice) {
	if notice != nil {
		b.Flash(w, r, *notice)
	}
	httpx.WriteRedirect(w, r, location)
}

func (b Base) takeFlash(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer) (webtemplates.Toast, bool) {
	notice, ok := flashnotice.Take(w, r, b.policy)
	if !ok {
		return webtemplates.Toast{}, false
	}
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, arg)
	}
	message := strings.TrimSpace(loc.Sprintf(notice.Key, args...))
	if message == "" {
		return webtemplates.Toast{}, false
	}
	return webtemplates.Toast{Kind: string(notice.Kind), Message: message}, true
}

// SchemePolicy returns the scheme policy used for cookies.
func (b Base) SchemePolicy() requestmeta.SchemePolicy {
	return b.policy
}

// NoticeToasts renders rejected optimistic edits as error toasts.
func NoticeToasts(loc *webi18n.Localizer, notices []views.Notice) []webtemplates.Toast {
	if len(notices) == 0 {
		return nil
	}
	toasts := make([]webtemplates.Toast, 0, len(notices))
	for _, notice := range notices {
		toasts = append(toasts, webtemplates.Toast{
			Kind:    string(flashnotice.KindError),
			Message: loc.Sprintf(notice.MessageKey()),
		})
	}
	return toasts
}
