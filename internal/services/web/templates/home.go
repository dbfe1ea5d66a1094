package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// HomePage is the landing page.
type HomePage struct {
	Recommended []petapi.Campaign
	SignedIn    bool
}

// Home renders the landing page.
func Home(page HomePage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("section", "class", "hero")
		m.el("h1", T(loc, "home.headline"))
		m.el("p", T(loc, "home.tagline"), "class", "lead")
		m.el("a", T(loc, "home.browse_pets"), "href", routepath.Pets, "class", "button")
		if !page.SignedIn {
			m.el("a", T(loc, "home.join"), "href", routepath.Register, "class", "button secondary")
		}
		m.close("section")

		m.open("section", "class", "categories")
		m.el("h2", T(loc, "home.categories"))
		m.open("ul", "class", "chips")
		for _, category := range petapi.Categories {
			m.open("li")
			m.el("a", T(loc, "pets.category."+string(category)), "href", routepath.PetsFiltered("", string(category)))
			m.close("li")
		}
		m.close("ul")
		m.close("section")

		m.open("section", "class", "about")
		m.el("h2", T(loc, "home.about_title"))
		m.el("p", T(loc, "home.about_body"))
		m.close("section")

		if len(page.Recommended) > 0 {
			m.open("section", "class", "recommended")
			m.el("h2", T(loc, "home.campaigns"))
			m.open("div", "class", "grid")
			m.render(CampaignCards(page.Recommended, Tail{}, loc))
			m.close("div")
			m.el("a", T(loc, "home.all_campaigns"), "href", routepath.Campaigns)
			m.close("section")
		}
	})
}
