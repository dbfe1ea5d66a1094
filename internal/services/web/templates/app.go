package templates

import (
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

type dashboardLink struct {
	href, titleKey, bodyKey string
}

var (
	userLinks = []dashboardLink{
		{routepath.AppPetsNew, "dashboard.add_pet", "dashboard.add_pet_body"},
		{routepath.AppPets, "dashboard.my_pets", "dashboard.my_pets_body"},
		{routepath.AppAdoptions, "dashboard.adoptions", "dashboard.adoptions_body"},
		{routepath.AppCampaignsNew, "dashboard.new_campaign", "dashboard.new_campaign_body"},
		{routepath.AppCampaigns, "dashboard.my_campaigns", "dashboard.my_campaigns_body"},
		{routepath.AppDonations, "dashboard.my_donations", "dashboard.my_donations_body"},
	}
	adminLinks = []dashboardLink{
		{routepath.AdminUsers, "admin.users", "admin.users_body"},
		{routepath.AdminPets, "admin.pets", "admin.pets_body"},
		{routepath.AdminCampaigns, "admin.campaigns", "admin.campaigns_body"},
	}
)

// Dashboard renders the signed-in landing page.
func Dashboard(viewer module.Viewer, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", T(loc, "dashboard.greeting", viewer.DisplayName))
		profilePanel(m, viewer, loc)
		dashboardGrid(m, userLinks, loc)
		if viewer.IsAdmin() {
			m.el("h2", T(loc, "admin.title"))
			dashboardGrid(m, adminLinks, loc)
		}
	})
}

// profilePanel shows the account details the identity provider reported.
// It is read-only; the provider owns name and photo.
func profilePanel(m *markup, viewer module.Viewer, loc Localizer) {
	name := strings.TrimSpace(viewer.DisplayName)
	if name == "" {
		name = T(loc, "profile.anonymous")
	}
	email := strings.TrimSpace(viewer.Email)
	if email == "" {
		email = T(loc, "profile.not_provided")
	}
	role := T(loc, "profile.role_user")
	if viewer.IsAdmin() {
		role = T(loc, "profile.role_admin")
	}

	m.open("section", "class", "profile", "aria-label", T(loc, "profile.title"))
	if avatar := strings.TrimSpace(viewer.AvatarURL); avatar != "" {
		m.open("img", "src", avatar, "alt", T(loc, "profile.avatar_alt", name), "class", "avatar avatar-lg")
	} else {
		m.el("span", initials(viewer.DisplayName), "class", "avatar avatar-lg initials", "aria-hidden", "true")
	}
	m.open("dl")
	for _, row := range [][2]string{
		{T(loc, "profile.name"), name},
		{T(loc, "profile.email"), email},
		{T(loc, "profile.role"), role},
	} {
		m.el("dt", row[0])
		m.el("dd", row[1])
	}
	m.close("dl")
	m.close("section")
}

// initials returns the upper-cased first letters of the first and last
// words of name, or "U" for a blank name.
func initials(name string) string {
	words := strings.Fields(name)
	first := func(word string) string {
		for _, r := range word {
			return string(unicode.ToUpper(r))
		}
		return ""
	}
	switch len(words) {
	case 0:
		return "U"
	case 1:
		return first(words[0])
	default:
		return first(words[0]) + first(words[len(words)-1])
	}
}

func dashboardGrid(m *markup, links []dashboardLink, loc Localizer) {
	m.open("div", "class", "grid")
	for _, link := range links {
		m.open("a", "href", link.href, "class", "card")
		m.el("h3", T(loc, link.titleKey))
		m.el("p", T(loc, link.bodyKey), "class", "muted")
		m.close("a")
	}
	m.close("div")
}

// AdoptionsPage lists adoption requests received by the signed-in owner.
type AdoptionsPage struct {
	Requests []petapi.AdoptionRequest
	Error    string
}

// Adoptions renders the adoption requests table.
func Adoptions(page AdoptionsPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", T(loc, "adoptions.title"))
		formAlert(m, page.Error)
		if len(page.Requests) == 0 {
			if page.Error == "" {
				m.render(Empty(T(loc, "adoptions.empty")))
			}
			return
		}
		m.open("table", "class", "table")
		m.open("thead")
		m.open("tr")
		for _, key := range []string{"adoptions.field.pet", "adoptions.field.name", "adoptions.field.email", "adoptions.field.phone", "adoptions.field.address", "common.actions"} {
			m.el("th", T(loc, key), "scope", "col")
		}
		m.close("tr")
		m.close("thead")
		m.open("tbody")
		for _, request := range page.Requests {
			m.render(AdoptionRow(request, loc))
		}
		m.close("tbody")
		m.close("table")
	})
}

// AdoptionRow renders one adoption request row.
func AdoptionRow(request petapi.AdoptionRequest, loc Localizer) templ.Component {
	return component(func(m *markup) {
		rowID := "adoption-row-" + request.ID
		m.open("tr", "id", rowID)
		m.open("td")
		m.el("a", request.PetName, "href", routepath.Pet(request.PetID))
		m.close("td")
		m.el("td", request.UserName)
		m.el("td", request.UserEmail)
		m.el("td", request.Phone)
		m.el("td", request.Address)
		m.open("td", "class", "actions")
		switch request.EffectiveStatus() {
		case petapi.AdoptionAccepted:
			m.el("span", T(loc, "adoptions.status.accepted"), "class", "badge badge-success")
		case petapi.AdoptionRejected:
			m.el("span", T(loc, "adoptions.status.rejected"), "class", "badge badge-muted")
		default:
			postButton(m, routepath.AppAdoptionAccept(request.ID), T(loc, "adoptions.accept"), "", "#"+rowID)
			postButton(m, routepath.AppAdoptionReject(request.ID), T(loc, "adoptions.reject"), "danger", "#"+rowID)
		}
		m.close("td")
		m.close("tr")
	})
}

// UsersPage lists every account for admins.
type UsersPage struct {
	Users []petapi.User
	Error string
}

// Users renders the admin users table.
func Users(page UsersPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", T(loc, "admin.users"))
		formAlert(m, page.Error)
		if len(page.Users) == 0 {
			if page.Error == "" {
				m.render(Empty(T(loc, "admin.users_empty")))
			}
			return
		}
		m.open("table", "class", "table")
		m.open("thead")
		m.open("tr")
		for _, key := range []string{"admin.field.name", "admin.field.email", "admin.field.role", "common.actions"} {
			m.el("th", T(loc, key), "scope", "col")
		}
		m.close("tr")
		m.close("thead")
		m.open("tbody")
		for _, user := range page.Users {
			m.render(UserRow(user, loc))
		}
		m.close("tbody")
		m.close("table")
	})
}

// UserRow renders one user row.
func UserRow(user petapi.User, loc Localizer) templ.Component {
	return component(func(m *markup) {
		rowID := "user-row-" + user.ID
		m.open("tr", "id", rowID)
		m.el("td", user.DisplayName)
		m.el("td", user.Email)
		if user.IsAdmin() {
			m.el("td", T(loc, "admin.role_admin"))
		} else {
			m.el("td", T(loc, "admin.role_user"))
		}
		m.open("td", "class", "actions")
		if !user.IsAdmin() {
			postButton(m, routepath.AdminUserPromote(user.ID), T(loc, "admin.promote"), "", "#"+rowID)
		}
		m.close("td")
		m.close("tr")
	})
}
