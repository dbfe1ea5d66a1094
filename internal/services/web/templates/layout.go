package templates

import (
	"github.com/a-h/templ"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

const appName = "Pawprint"

// htmxScript is the pinned htmx build served from its public CDN.
const htmxScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Toast is a one-shot notice shown above the page content.
type Toast struct {
	Kind    string
	Message string
}

// Chrome carries the page shell state around a main component.
type Chrome struct {
	Title     string
	Path      string
	Viewer    module.Viewer
	Languages []webi18n.LanguageOption
	Toasts    []Toast
	// Scripts lists extra script URLs the page needs, such as the identity
	// provider or payment SDK.
	Scripts []string
}

// Layout renders a full HTML document.
func Layout(chrome Chrome, loc Localizer, main templ.Component) templ.Component {
	return component(func(m *markup) {
		m.raw("<!DOCTYPE html>")
		m.open("html", "lang", lang(loc))
		m.open("head")
		m.open("meta", "charset", "utf-8")
		m.open("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		m.open("meta", "name", "description", "content", T(loc, "common.meta_description"))
		title := appName
		if chrome.Title != "" {
			title = chrome.Title + " · " + appName
		}
		m.el("title", title)
		m.open("link", "rel", "stylesheet", "href", routepath.StaticPrefix+"app.css")
		m.open("script", "src", htmxScript, "defer", "")
		m.close("script")
		for _, src := range chrome.Scripts {
			m.open("script", "src", src, "defer", "")
			m.close("script")
		}
		m.close("head")

		m.open("body", "hx-boost", "true")
		m.render(navigation(chrome, loc))
		m.render(Toasts(chrome.Toasts, false))
		m.open("main", "id", "main", "class", "container")
		m.render(main)
		m.close("main")
		m.open("footer", "class", "footer")
		m.el("p", T(loc, "common.footer"))
		m.render(languageSwitcher(chrome.Languages, loc))
		m.close("footer")
		m.close("body")
		m.close("html")
	})
}

// Fragment renders main for an HTMX swap, with toasts swapped out of band.
func Fragment(toasts []Toast, main templ.Component) templ.Component {
	return component(func(m *markup) {
		if len(toasts) > 0 {
			m.render(Toasts(toasts, true))
		}
		m.render(main)
	})
}

// Toasts renders the toast region.
func Toasts(toasts []Toast, outOfBand bool) templ.Component {
	return component(func(m *markup) {
		oob := ""
		if outOfBand {
			oob = "hx-swap-oob"
		}
		m.open("div", "id", "toasts", "class", "toasts", "aria-live", "polite", oob, "true")
		for _, toast := range toasts {
			kind := toast.Kind
			if kind == "" {
				kind = "info"
			}
			m.el("div", toast.Message, "class", "toast toast-"+kind, "role", "status")
		}
		m.close("div")
	})
}

func navigation(chrome Chrome, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("header", "class", "navbar")
		m.el("a", appName, "href", routepath.Root, "class", "brand")
		m.open("nav")
		navLink(m, chrome.Path, routepath.Pets, T(loc, "nav.pets"))
		navLink(m, chrome.Path, routepath.Campaigns, T(loc, "nav.campaigns"))
		if chrome.Viewer.SignedIn {
			navLink(m, chrome.Path, routepath.AppDashboard, T(loc, "nav.dashboard"))
			if chrome.Viewer.IsAdmin() {
				navLink(m, chrome.Path, routepath.AdminPets, T(loc, "nav.admin"))
			}
			m.open("span", "class", "viewer")
			if chrome.Viewer.AvatarURL != "" {
				m.open("img", "src", chrome.Viewer.AvatarURL, "alt", "", "class", "avatar")
			}
			m.text(chrome.Viewer.DisplayName)
			m.close("span")
			m.open("form", "method", "post", "action", routepath.Logout, "class", "inline")
			m.el("button", T(loc, "nav.logout"), "type", "submit")
			m.close("form")
		} else {
			navLink(m, chrome.Path, routepath.Login, T(loc, "nav.login"))
			navLink(m, chrome.Path, routepath.Register, T(loc, "nav.register"))
		}
		m.close("nav")
		m.close("header")
	})
}

func navLink(m *markup, current, href, label string) {
	if current == href {
		m.el("a", label, "href", href, "aria-current", "page")
		return
	}
	m.el("a", label, "href", href)
}

func languageSwitcher(options []webi18n.LanguageOption, loc Localizer) templ.Component {
	return component(func(m *markup) {
		if len(options) == 0 {
			return
		}
		m.open("ul", "class", "languages", "aria-label", T(loc, "nav.language"))
		for _, option := range options {
			m.open("li")
			if option.Active {
				m.el("strong", option.Label)
			} else {
				m.el("a", option.Label, "href", option.URL, "hx-boost", "false")
			}
			m.close("li")
		}
		m.close("ul")
	})
}
