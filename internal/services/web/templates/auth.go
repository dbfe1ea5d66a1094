package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// AuthPage holds the login and register form state.
type AuthPage struct {
	// Next is the local path to continue to after signing in.
	Next        string
	DisplayName string
	PhotoURL    string
	Errors      FieldError
	Alert       string
	// ProviderConfig is handed to the identity provider widget, which
	// fills the id_token field before the form is submitted.
	ProviderConfig string
}

// Login renders the sign-in form.
func Login(page AuthPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("section", "class", "auth-card")
		m.el("h1", T(loc, "auth.login_title"))
		formAlert(m, page.Alert)
		m.open("form", "method", "post", "action", routepath.AuthSession, "id", "auth-form",
			"data-provider", page.ProviderConfig, "hx-boost", "false")
		hiddenInput(m, "id_token", "")
		hiddenInput(m, "next", page.Next)
		m.el("button", T(loc, "auth.login_google"), "type", "button", "class", "provider", "data-provider-signin", "popup")
		m.el("button", T(loc, "auth.login_submit"), "type", "submit", "hidden", "")
		m.close("form")
		m.open("p")
		m.text(T(loc, "auth.no_account") + " ")
		m.el("a", T(loc, "nav.register"), "href", routepath.Register)
		m.close("p")
		m.close("section")
	})
}

// Register renders the sign-up form.
func Register(page AuthPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("section", "class", "auth-card")
		m.el("h1", T(loc, "auth.register_title"))
		formAlert(m, page.Alert)
		m.open("form", "method", "post", "action", routepath.Register, "id", "auth-form",
			"data-provider", page.ProviderConfig, "hx-boost", "false", "class", "stack")
		hiddenInput(m, "id_token", "")
		hiddenInput(m, "next", page.Next)
		textInput(m, page.Errors, T(loc, "auth.field.display_name"), "text", "display_name", page.DisplayName, true)
		textInput(m, page.Errors, T(loc, "auth.field.photo_url"), "url", "photo_url", page.PhotoURL, false)
		fieldError(m, page.Errors, "id_token")
		m.el("button", T(loc, "auth.register_google"), "type", "button", "class", "provider", "data-provider-signin", "popup")
		m.close("form")
		m.open("p")
		m.text(T(loc, "auth.have_account") + " ")
		m.el("a", T(loc, "nav.login"), "href", routepath.Login)
		m.close("p")
		m.close("section")
	})
}
