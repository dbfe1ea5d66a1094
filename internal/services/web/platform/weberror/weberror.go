// Package weberror renders shared error responses for web modules.
package weberror

import (
	"log"
	"net/http"
	"strings"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

// PublicMessage resolves a user-safe localized error message. Raw error
// text never reaches the response.
func PublicMessage(loc *webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
			return localized
		}
	}
	return StatusMessage(loc, apperrors.HTTPStatus(err))
}

// StatusMessage returns the generic localized message for statusCode.
func StatusMessage(loc *webi18n.Localizer, statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return loc.Sprintf("error.bad_request")
	case http.StatusUnauthorized:
		return loc.Sprintf("error.unauthorized")
	case http.StatusForbidden:
		return loc.Sprintf("error.forbidden")
	case http.StatusNotFound:
		return loc.Sprintf("error.not_found")
	case http.StatusConflict:
		return loc.Sprintf("error.conflict")
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return loc.Sprintf("error.unavailable")
	default:
		return loc.Sprintf("error.server_error")
	}
}

// WriteError writes a localized error page for full-page and HTMX requests.
func WriteError(w http.ResponseWriter, r *http.Request, viewer module.Viewer, loc *webi18n.Localizer, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if statusCode >= http.StatusInternalServerError && r != nil {
		log.Printf("web error method=%s path=%s status=%d request_id=%s err=%v",
			r.Method, r.URL.Path, statusCode, httpx.RequestIDFromContext(r.Context()), err)
	}
	message := PublicMessage(loc, err)
	writeErr := pagerender.WritePage(w, r, viewer, loc, pagerender.Page{
		Title:      webtemplates.ErrorTitle(statusCode, loc),
		StatusCode: statusCode,
		Main:       webtemplates.ErrorState(statusCode, message, loc),
	})
	if writeErr != nil {
		http.Error(w, message, statusCode)
	}
}

// WriteStatus writes the generic error page for statusCode.
func WriteStatus(w http.ResponseWriter, r *http.Request, viewer module.Viewer, loc *webi18n.Localizer, statusCode int) {
	WriteError(w, r, viewer, loc, statusError(statusCode))
}

func statusError(statusCode int) error {
	switch statusCode {
	case http.StatusNotFound:
		return apperrors.E(apperrors.KindNotFound, "not found")
	case http.StatusForbidden:
		return apperrors.E(apperrors.KindForbidden, "forbidden")
	case http.StatusUnauthorized:
		return apperrors.E(apperrors.KindUnauthorized, "unauthorized")
	case http.StatusBadRequest:
		return apperrors.E(apperrors.KindInvalidInput, "bad request")
	default:
		return apperrors.E(apperrors.KindUnknown, http.StatusText(statusCode))
	}
}
