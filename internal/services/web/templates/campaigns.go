package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// CampaignsPage is the public campaign listing.
type CampaignsPage struct {
	Campaigns []petapi.Campaign
	Tail      Tail
	Error     string
}

// CampaignsListing renders the infinite campaign grid.
func CampaignsListing(page CampaignsPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", T(loc, "campaigns.title"))
		m.el("p", T(loc, "campaigns.subtitle"), "class", "lead")
		m.open("div", "id", "campaign-grid", "class", "grid")
		switch {
		case page.Error != "" && len(page.Campaigns) == 0:
			m.render(ListTail(Tail{Path: page.Tail.Path, Next: page.Tail.Next, Error: page.Error}, loc))
		case len(page.Campaigns) == 0 && !page.Tail.Loading:
			m.render(Empty(T(loc, "campaigns.empty")))
		default:
			m.render(CampaignCards(page.Campaigns, page.Tail, loc))
		}
		m.close("div")
	})
}

// CampaignCards renders campaign cards followed by the list tail.
func CampaignCards(campaigns []petapi.Campaign, tail Tail, loc Localizer) templ.Component {
	return component(func(m *markup) {
		for _, campaign := range campaigns {
			m.open("article", "class", "card campaign-card", "id", "campaign-"+campaign.ID)
			if campaign.PetImage != "" {
				m.open("img", "src", campaign.PetImage, "alt", campaign.PetName, "loading", "lazy")
			}
			m.el("h3", campaign.PetName)
			progressBar(m, campaign, loc)
			m.el("p", campaign.ShortDescription, "class", "muted")
			m.el("a", T(loc, "campaigns.view_details"), "href", routepath.Campaign(campaign.ID), "class", "button")
			m.close("article")
		}
		m.render(ListTail(tail, loc))
	})
}

func progressBar(m *markup, campaign petapi.Campaign, loc Localizer) {
	progress := campaign.Progress()
	m.open("progress", "max", "100", "value", strconv.Itoa(progress), "aria-label", T(loc, "campaigns.progress_label"))
	m.close("progress")
	m.el("p", T(loc, "campaigns.raised", money(loc, campaign.DonatedAmount), money(loc, campaign.MaxDonation)), "class", "muted")
}

// CampaignDetailPage is the public campaign detail.
type CampaignDetailPage struct {
	Campaign    petapi.Campaign
	Closed      bool
	SignedIn    bool
	Recommended []petapi.Campaign
}

// CampaignDetail renders one campaign and its recommendations.
func CampaignDetail(page CampaignDetailPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		campaign := page.Campaign
		m.open("article", "class", "campaign-detail")
		if campaign.PetImage != "" {
			m.open("img", "src", campaign.PetImage, "alt", campaign.PetName)
		}
		m.el("h1", campaign.PetName)
		progressBar(m, campaign, loc)
		if campaign.LastDate != "" {
			m.el("p", T(loc, "campaigns.last_date", campaign.LastDate), "class", "muted")
		}
		m.el("p", campaign.ShortDescription, "class", "lead")
		m.el("p", campaign.LongDescription)
		switch {
		case page.Closed:
			m.el("p", T(loc, "campaigns.closed"), "class", "badge")
		case page.SignedIn:
			m.el("a", T(loc, "campaigns.donate"), "href", routepath.AppCampaignDonate(campaign.ID), "class", "button")
		default:
			m.el("a", T(loc, "campaigns.login_to_donate"), "href", routepath.Login+"?next="+routepath.Campaign(campaign.ID), "class", "button")
		}
		m.close("article")

		if len(page.Recommended) > 0 {
			m.open("section", "class", "recommended")
			m.el("h2", T(loc, "campaigns.recommended"))
			m.open("div", "class", "grid")
			m.render(CampaignCards(page.Recommended, Tail{}, loc))
			m.close("div")
			m.close("section")
		}
	})
}

// CampaignRowActions picks the routes a campaign row links to.
type CampaignRowActions struct {
	Pause string
	// Edit is empty on admin rows.
	Edit string
	// Delete is empty on owner rows.
	Delete string
}

// CampaignTable is an owner or admin campaign table.
type CampaignTable struct {
	Title     string
	NewURL    string
	Campaigns []petapi.Campaign
	Tail      Tail
	Error     string
	Actions   func(petapi.Campaign) CampaignRowActions
}

const campaignTableColumns = 5

// CampaignTablePage renders a campaign management table.
func CampaignTablePage(table CampaignTable, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("div", "class", "page-header")
		m.el("h1", table.Title)
		if table.NewURL != "" {
			m.el("a", T(loc, "campaigns.add"), "href", table.NewURL, "class", "button")
		}
		m.close("div")
		if table.Error != "" && len(table.Campaigns) == 0 {
			formAlert(m, table.Error)
		}
		if len(table.Campaigns) == 0 && table.Tail.Next == "" {
			m.render(Empty(T(loc, "campaigns.empty_owned")))
			return
		}
		m.open("table", "class", "table")
		m.open("thead")
		m.open("tr")
		for _, key := range []string{"campaigns.field.pet_name", "campaigns.field.max_donation", "campaigns.field.progress", "campaigns.field.status", "common.actions"} {
			m.el("th", T(loc, key), "scope", "col")
		}
		m.close("tr")
		m.close("thead")
		m.open("tbody", "id", "campaign-rows")
		m.render(CampaignRows(table.Campaigns, table.Tail, table.Actions, loc))
		m.close("tbody")
		m.close("table")
	})
}

// CampaignRows renders table rows followed by the list tail.
func CampaignRows(campaigns []petapi.Campaign, tail Tail, actions func(petapi.Campaign) CampaignRowActions, loc Localizer) templ.Component {
	return component(func(m *markup) {
		for _, campaign := range campaigns {
			m.render(CampaignRow(campaign, actions(campaign), loc))
		}
		tail.Columns = campaignTableColumns
		m.render(ListTail(tail, loc))
	})
}

// CampaignRow renders one campaign table row.
func CampaignRow(campaign petapi.Campaign, actions CampaignRowActions, loc Localizer) templ.Component {
	return component(func(m *markup) {
		rowID := "campaign-row-" + campaign.ID
		m.open("tr", "id", rowID)
		m.open("td")
		m.el("a", campaign.PetName, "href", routepath.Campaign(campaign.ID))
		m.close("td")
		m.el("td", money(loc, campaign.MaxDonation))
		m.el("td", T(loc, "campaigns.percent", campaign.Progress()))
		status, toggle := T(loc, "campaigns.status_active"), T(loc, "campaigns.pause")
		if campaign.Paused {
			status, toggle = T(loc, "campaigns.status_paused"), T(loc, "campaigns.resume")
		}
		m.el("td", status)
		m.open("td", "class", "actions")
		if actions.Edit != "" {
			m.el("a", T(loc, "common.edit"), "href", actions.Edit, "class", "button secondary")
		}
		postButton(m, actions.Pause, toggle, "secondary", "#"+rowID)
		if actions.Delete != "" {
			m.open("form", "method", "post", "action", actions.Delete, "class", "inline",
				"hx-post", actions.Delete, "hx-target", "#"+rowID, "hx-swap", "outerHTML",
				"hx-confirm", T(loc, "campaigns.delete_confirm", campaign.PetName))
			m.el("button", T(loc, "common.delete"), "type", "submit", "class", "danger")
			m.close("form")
		}
		m.close("td")
		m.close("tr")
	})
}

// CampaignForm holds the create and update campaign form state.
type CampaignForm struct {
	Title            string
	Action           string
	Submit           string
	PetName          string
	PetImage         string
	MaxDonation      string
	LastDate         string
	ShortDescription string
	LongDescription  string
	Errors           FieldError
	Alert            string
}

// CampaignFormFrom fills a form from a stored campaign.
func CampaignFormFrom(campaign petapi.Campaign) CampaignForm {
	return CampaignForm{
		PetName:          campaign.PetName,
		PetImage:         campaign.PetImage,
		MaxDonation:      campaign.MaxDonation.StringFixed(2),
		LastDate:         campaign.LastDate,
		ShortDescription: campaign.ShortDescription,
		LongDescription:  campaign.LongDescription,
	}
}

// CampaignFormPage renders the create or update campaign form.
func CampaignFormPage(form CampaignForm, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", form.Title)
		formAlert(m, form.Alert)
		m.open("form", "method", "post", "action", form.Action, "enctype", "multipart/form-data", "class", "stack")
		textInput(m, form.Errors, T(loc, "campaigns.field.pet_name"), "text", "pet_name", form.PetName, true)
		textInput(m, form.Errors, T(loc, "campaigns.field.max_donation"), "number", "max_donation", form.MaxDonation, true, "min", "1", "step", "0.01")
		textInput(m, form.Errors, T(loc, "campaigns.field.last_date"), "date", "last_date", form.LastDate, true)
		textInput(m, form.Errors, T(loc, "campaigns.field.short_description"), "text", "short_description", form.ShortDescription, true)
		textArea(m, form.Errors, T(loc, "campaigns.field.long_description"), "long_description", form.LongDescription, true)
		if form.PetImage != "" {
			m.open("img", "src", form.PetImage, "alt", form.PetName, "class", "thumb")
			hiddenInput(m, "current_image", form.PetImage)
		}
		textInput(m, form.Errors, T(loc, "campaigns.field.pet_image"), "file", "image", "", form.PetImage == "", "accept", "image/*")
		m.el("button", form.Submit, "type", "submit")
		m.close("form")
	})
}

// DonateForm holds the donation form state.
type DonateForm struct {
	Campaign petapi.Campaign
	Amount   string
	Errors   FieldError
	Alert    string
	// PublishableKey configures the payment provider widget.
	PublishableKey string
}

// DonatePage renders the donation form. The payment widget requests a
// client secret from the intent route, confirms the card with the provider
// and then submits the form with the resulting payment intent id.
func DonatePage(form DonateForm, loc Localizer) templ.Component {
	return component(func(m *markup) {
		campaign := form.Campaign
		m.el("h1", T(loc, "donations.title", campaign.PetName))
		progressBar(m, campaign, loc)
		formAlert(m, form.Alert)
		action := routepath.AppCampaignDonate(campaign.ID)
		m.open("form", "method", "post", "action", action, "class", "stack", "id", "donate-form",
			"data-intent-url", routepath.AppCampaignIntent(campaign.ID),
			"data-publishable-key", form.PublishableKey)
		textInput(m, form.Errors, T(loc, "donations.field.amount"), "number", "amount", form.Amount, true, "min", "1", "step", "0.01")
		m.open("div", "id", "card-element", "class", "card-element")
		m.close("div")
		hiddenInput(m, "payment_intent", "")
		m.el("button", T(loc, "donations.submit"), "type", "submit")
		m.close("form")
	})
}

// DonationsPage lists the signed-in user's donations.
func DonationsPage(donations []petapi.Donation, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", T(loc, "donations.mine"))
		if len(donations) == 0 {
			m.render(Empty(T(loc, "donations.empty")))
			return
		}
		m.open("table", "class", "table")
		m.open("thead")
		m.open("tr")
		for _, key := range []string{"campaigns.field.pet_name", "donations.field.amount", "donations.field.date"} {
			m.el("th", T(loc, key), "scope", "col")
		}
		m.close("tr")
		m.close("thead")
		m.open("tbody")
		for _, donation := range donations {
			m.open("tr")
			m.open("td")
			m.el("a", donation.PetName, "href", routepath.Campaign(donation.CampaignID))
			m.close("td")
			m.el("td", money(loc, donation.Amount))
			date := ""
			if !donation.CreatedAt.IsZero() {
				date = donation.CreatedAt.Format("2006-01-02")
			}
			m.el("td", date)
			m.close("tr")
		}
		m.close("tbody")
		m.close("table")
	})
}
