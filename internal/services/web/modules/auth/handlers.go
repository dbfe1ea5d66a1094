package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/pawprint/internal/services/web/platform/flash"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/pawprint/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/pawprint/internal/services/web/platform/weberror"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
)

const authScript = routepath.StaticPrefix + "auth.js"

type handlers struct {
	modulehandler.Base
	service        service
	providerConfig string
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, h.Localizer(w, r))
}

// nextPath is the local page to continue to after signing in.
func nextPath(r *http.Request) string {
	return requestmeta.LocalRedirectPath(r.FormValue("next"), routepath.AppDashboard)
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.Viewer(r).SignedIn {
		h.Redirect(w, r, nextPath(r), nil)
		return
	}
	loc := h.Localizer(w, r)
	h.writeLogin(w, r, loc, webtemplates.AuthPage{Next: nextPath(r)}, http.StatusOK)
}

func (h handlers) writeLogin(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, page webtemplates.AuthPage, status int) {
	page.ProviderConfig = h.providerConfig
	h.WritePage(w, r, loc, pagerender.Page{
		Title:      loc.Sprintf("auth.login_title"),
		StatusCode: status,
		Main:       webtemplates.Login(page, loc),
		Scripts:    []string{authScript},
	})
}

func (h handlers) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.Viewer(r).SignedIn {
		h.Redirect(w, r, nextPath(r), nil)
		return
	}
	loc := h.Localizer(w, r)
	h.writeRegister(w, r, loc, webtemplates.AuthPage{Next: nextPath(r)}, http.StatusOK)
}

func (h handlers) writeRegister(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, page webtemplates.AuthPage, status int) {
	page.ProviderConfig = h.providerConfig
	h.WritePage(w, r, loc, pagerender.Page{
		Title:      loc.Sprintf("auth.register_title"),
		StatusCode: status,
		Main:       webtemplates.Register(page, loc),
		Scripts:    []string{authScript},
	})
}

func (h handlers) handleSignIn(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	next := nextPath(r)
	session, err := h.service.signIn(httpx.RequestContext(r), r.FormValue("id_token"))
	if err != nil {
		h.logFailure(r, "sign-in", err)
		h.writeLogin(w, r, loc, webtemplates.AuthPage{Next: next, Alert: authAlert(loc, err)}, apperrors.HTTPStatus(err))
		return
	}
	h.finish(w, r, session, flashnotice.NoticeSuccess("auth.signed_in", session.DisplayName), next)
}

func (h handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	in := registration{
		Token:       r.FormValue("id_token"),
		DisplayName: strings.TrimSpace(r.FormValue("display_name")),
		PhotoURL:    strings.TrimSpace(r.FormValue("photo_url")),
	}
	page := webtemplates.AuthPage{Next: nextPath(r), DisplayName: in.DisplayName, PhotoURL: in.PhotoURL}
	if errs := in.validate(); len(errs) > 0 {
		page.Errors = make(webtemplates.FieldError, len(errs))
		for field, key := range errs {
			page.Errors[field] = loc.Sprintf(key)
		}
		h.writeRegister(w, r, loc, page, http.StatusBadRequest)
		return
	}
	session, err := h.service.register(httpx.RequestContext(r), in)
	if err != nil {
		h.logFailure(r, "register", err)
		page.Alert = authAlert(loc, err)
		h.writeRegister(w, r, loc, page, apperrors.HTTPStatus(err))
		return
	}
	h.finish(w, r, session, flashnotice.NoticeSuccess("auth.registered", session.DisplayName), page.Next)
}

// finish sets the session cookie and continues to next.
func (h handlers) finish(w http.ResponseWriter, r *http.Request, session storage.Session, notice flashnotice.Notice, next string) {
	sessioncookie.Write(w, r, h.SchemePolicy(), session.ID, session.ExpiresAt)
	h.Redirect(w, r, next, &notice)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := sessioncookie.Read(r); ok {
		if err := h.service.sessions.DeleteSession(httpx.RequestContext(r), sessionID); err != nil {
			h.logFailure(r, "sign-out", err)
		}
	}
	sessioncookie.Clear(w, r, h.SchemePolicy())
	notice := flashnotice.NoticeSuccess("auth.signed_out")
	h.Redirect(w, r, routepath.Root, &notice)
}

func (h handlers) logFailure(r *http.Request, action string, err error) {
	if apperrors.HTTPStatus(err) < http.StatusInternalServerError {
		return
	}
	log.Printf("%s failed request_id=%s err=%v", action, httpx.RequestIDFromContext(r.Context()), err)
}

// authAlert names the missing account by email when the token carried one.
func authAlert(loc *webi18n.Localizer, err error) string {
	var missing missingAccountError
	if errors.As(err, &missing) {
		return loc.Sprintf("auth.account_missing", missing.email)
	}
	return weberror.PublicMessage(loc, err)
}
