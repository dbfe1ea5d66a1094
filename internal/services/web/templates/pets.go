package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// PetsPage is the public pet listing.
type PetsPage struct {
	Search   string
	Category petapi.Category
	Pets     []petapi.Pet
	Tail     Tail
	// Error is set when the first page failed.
	Error string
}

// PetsListing renders the filter bar and the infinite pet grid.
func PetsListing(page PetsPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", T(loc, "pets.title"))
		m.open("form", "method", "get", "action", routepath.Pets, "class", "filters", "role", "search")
		m.open("input", "type", "search", "name", "search", "value", page.Search,
			"placeholder", T(loc, "pets.search_placeholder"), "aria-label", T(loc, "pets.search_label"))
		m.open("select", "name", "category", "aria-label", T(loc, "pets.category_label"))
		m.el("option", T(loc, "pets.category_all"), "value", "")
		for _, category := range petapi.Categories {
			m.el("option", T(loc, "pets.category."+string(category)),
				"value", string(category), flag("selected", category == page.Category), "")
		}
		m.close("select")
		m.el("button", T(loc, "pets.search_submit"), "type", "submit")
		m.close("form")

		m.open("div", "id", "pet-grid", "class", "grid")
		switch {
		case page.Error != "" && len(page.Pets) == 0:
			m.render(ListTail(Tail{Path: page.Tail.Path, Next: page.Tail.Next, Error: page.Error}, loc))
		case len(page.Pets) == 0 && !page.Tail.Loading:
			m.render(Empty(T(loc, "pets.empty")))
		default:
			m.render(PetCards(page.Pets, page.Tail, loc))
		}
		m.close("div")
	})
}

// PetCards renders pet cards followed by the list tail.
func PetCards(pets []petapi.Pet, tail Tail, loc Localizer) templ.Component {
	return component(func(m *markup) {
		for _, pet := range pets {
			m.open("article", "class", "card pet-card", "id", "pet-"+pet.ID)
			if pet.Image != "" {
				m.open("img", "src", pet.Image, "alt", pet.Name, "loading", "lazy")
			}
			m.el("h3", pet.Name)
			m.el("p", T(loc, "pets.age", pet.Age), "class", "muted")
			if pet.Location != "" {
				m.el("p", pet.Location, "class", "muted")
			}
			if pet.Adopted {
				m.el("span", T(loc, "pets.adopted"), "class", "badge")
			}
			m.el("a", T(loc, "pets.view_details"), "href", routepath.Pet(pet.ID), "class", "button")
			m.close("article")
		}
		m.render(ListTail(tail, loc))
	})
}

// AdoptionForm holds the adoption request form state.
type AdoptionForm struct {
	Phone   string
	Address string
	Errors  FieldError
	Alert   string
}

// PetDetailPage is the public pet detail.
type PetDetailPage struct {
	Pet petapi.Pet
	// CanRequest is true for signed-in visitors who do not own the pet.
	CanRequest bool
	SignedIn   bool
	UserName   string
	UserEmail  string
	Form       AdoptionForm
	Requested  bool
}

// PetDetail renders one pet and the adoption request form.
func PetDetail(page PetDetailPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		pet := page.Pet
		m.open("article", "class", "pet-detail")
		if pet.Image != "" {
			m.open("img", "src", pet.Image, "alt", pet.Name)
		}
		m.el("h1", pet.Name)
		m.open("dl", "class", "facts")
		fact(m, T(loc, "pets.field.age"), T(loc, "pets.age", pet.Age))
		fact(m, T(loc, "pets.field.category"), T(loc, "pets.category."+string(pet.Category)))
		fact(m, T(loc, "pets.field.location"), pet.Location)
		fact(m, T(loc, "pets.field.color"), pet.Color)
		fact(m, T(loc, "pets.field.breed"), pet.Breed)
		m.close("dl")
		m.el("p", pet.ShortDescription, "class", "lead")
		m.el("p", pet.LongDescription)
		m.close("article")

		m.open("section", "id", "adopt", "class", "adopt")
		switch {
		case pet.Adopted:
			m.el("p", T(loc, "pets.already_adopted"), "class", "badge")
		case page.Requested:
			m.el("p", T(loc, "adoptions.requested"), "class", "alert alert-success", "role", "status")
		case !page.SignedIn:
			m.el("a", T(loc, "pets.login_to_adopt"), "href", routepath.Login+"?next="+routepath.Pet(pet.ID), "class", "button")
		case page.CanRequest:
			m.render(adoptionRequestForm(page, loc))
		}
		m.close("section")
	})
}

func adoptionRequestForm(page PetDetailPage, loc Localizer) templ.Component {
	return component(func(m *markup) {
		action := routepath.AppPetAdoptRequest(page.Pet.ID)
		m.el("h2", T(loc, "adoptions.form_title"))
		formAlert(m, page.Form.Alert)
		m.open("form", "method", "post", "action", action, "hx-post", action, "hx-target", "#adopt", "hx-select", "#adopt", "hx-swap", "outerHTML")
		textInput(m, nil, T(loc, "adoptions.field.name"), "text", "user_name", page.UserName, false, "readonly", "readonly")
		textInput(m, nil, T(loc, "adoptions.field.email"), "email", "user_email", page.UserEmail, false, "readonly", "readonly")
		textInput(m, page.Form.Errors, T(loc, "adoptions.field.phone"), "tel", "phone", page.Form.Phone, true)
		textInput(m, page.Form.Errors, T(loc, "adoptions.field.address"), "text", "address", page.Form.Address, true)
		m.el("button", T(loc, "adoptions.submit"), "type", "submit")
		m.close("form")
	})
}

func fact(m *markup, label, value string) {
	if value == "" {
		return
	}
	m.el("dt", label)
	m.el("dd", value)
}

// PetRowActions picks the routes a pet row links to.
type PetRowActions struct {
	Adopted string
	Delete  string
	// Edit is empty on admin rows.
	Edit string
}

// PetTable is an owner or admin pet table.
type PetTable struct {
	Title   string
	NewURL  string
	Pets    []petapi.Pet
	Tail    Tail
	Error   string
	Actions func(petapi.Pet) PetRowActions
}

const petTableColumns = 5

// PetTablePage renders a pet management table.
func PetTablePage(table PetTable, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("div", "class", "page-header")
		m.el("h1", table.Title)
		if table.NewURL != "" {
			m.el("a", T(loc, "pets.add"), "href", table.NewURL, "class", "button")
		}
		m.close("div")
		if table.Error != "" && len(table.Pets) == 0 {
			formAlert(m, table.Error)
		}
		if len(table.Pets) == 0 && table.Tail.Next == "" {
			m.render(Empty(T(loc, "pets.empty_owned")))
			return
		}
		m.open("table", "class", "table")
		m.open("thead")
		m.open("tr")
		for _, key := range []string{"pets.field.image", "pets.field.name", "pets.field.category", "pets.field.status", "common.actions"} {
			m.el("th", T(loc, key), "scope", "col")
		}
		m.close("tr")
		m.close("thead")
		m.open("tbody", "id", "pet-rows")
		m.render(PetRows(table.Pets, table.Tail, table.Actions, loc))
		m.close("tbody")
		m.close("table")
	})
}

// PetRows renders table rows followed by the list tail.
func PetRows(pets []petapi.Pet, tail Tail, actions func(petapi.Pet) PetRowActions, loc Localizer) templ.Component {
	return component(func(m *markup) {
		for _, pet := range pets {
			m.render(PetRow(pet, actions(pet), loc))
		}
		tail.Columns = petTableColumns
		m.render(ListTail(tail, loc))
	})
}

// PetRow renders one pet table row. Toggle responses swap this row.
func PetRow(pet petapi.Pet, actions PetRowActions, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("tr", "id", "pet-row-"+pet.ID)
		m.open("td")
		if pet.Image != "" {
			m.open("img", "src", pet.Image, "alt", pet.Name, "class", "thumb")
		}
		m.close("td")
		m.open("td")
		m.el("a", pet.Name, "href", routepath.Pet(pet.ID))
		m.close("td")
		m.el("td", T(loc, "pets.category."+string(pet.Category)))
		status := T(loc, "pets.status_available")
		toggle := T(loc, "pets.mark_adopted")
		if pet.Adopted {
			status = T(loc, "pets.adopted")
			toggle = T(loc, "pets.mark_available")
		}
		m.el("td", status)
		m.open("td", "class", "actions")
		if actions.Edit != "" {
			m.el("a", T(loc, "common.edit"), "href", actions.Edit, "class", "button secondary")
		}
		postButton(m, actions.Adopted, toggle, "secondary", "#pet-row-"+pet.ID)
		m.open("form", "method", "post", "action", actions.Delete, "class", "inline",
			"hx-post", actions.Delete, "hx-target", "#pet-row-"+pet.ID, "hx-swap", "outerHTML",
			"hx-confirm", T(loc, "pets.delete_confirm", pet.Name))
		m.el("button", T(loc, "common.delete"), "type", "submit", "class", "danger")
		m.close("form")
		m.close("td")
		m.close("tr")
	})
}

// PetForm holds the add and update pet form state.
type PetForm struct {
	Title            string
	Action           string
	Submit           string
	Name             string
	Image            string
	Age              string
	Category         petapi.Category
	Location         string
	Color            string
	Breed            string
	ShortDescription string
	LongDescription  string
	Errors           FieldError
	Alert            string
}

// PetFormFrom fills a form from a stored pet.
func PetFormFrom(pet petapi.Pet) PetForm {
	return PetForm{
		Name:             pet.Name,
		Image:            pet.Image,
		Age:              strconv.Itoa(pet.Age),
		Category:         pet.Category,
		Location:         pet.Location,
		Color:            pet.Color,
		Breed:            pet.Breed,
		ShortDescription: pet.ShortDescription,
		LongDescription:  pet.LongDescription,
	}
}

// PetFormPage renders the add or update pet form.
func PetFormPage(form PetForm, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.el("h1", form.Title)
		formAlert(m, form.Alert)
		m.open("form", "method", "post", "action", form.Action, "enctype", "multipart/form-data", "class", "stack")
		textInput(m, form.Errors, T(loc, "pets.field.name"), "text", "name", form.Name, true)
		textInput(m, form.Errors, T(loc, "pets.field.age"), "number", "age", form.Age, true, "min", "0", "max", "60")
		m.open("label", "for", "category")
		m.text(T(loc, "pets.field.category"))
		m.close("label")
		m.open("select", "id", "category", "name", "category", "required", "")
		for _, category := range petapi.Categories {
			m.el("option", T(loc, "pets.category."+string(category)),
				"value", string(category), flag("selected", category == form.Category), "")
		}
		m.close("select")
		fieldError(m, form.Errors, "category")
		textInput(m, form.Errors, T(loc, "pets.field.location"), "text", "location", form.Location, true)
		textInput(m, form.Errors, T(loc, "pets.field.color"), "text", "color", form.Color, false)
		textInput(m, form.Errors, T(loc, "pets.field.breed"), "text", "breed", form.Breed, false)
		textInput(m, form.Errors, T(loc, "pets.field.short_description"), "text", "short_description", form.ShortDescription, true)
		textArea(m, form.Errors, T(loc, "pets.field.long_description"), "long_description", form.LongDescription, true)
		if form.Image != "" {
			m.open("img", "src", form.Image, "alt", form.Name, "class", "thumb")
			hiddenInput(m, "current_image", form.Image)
		}
		textInput(m, form.Errors, T(loc, "pets.field.image"), "file", "image", "", form.Image == "", "accept", "image/*")
		m.el("button", form.Submit, "type", "submit")
		m.close("form")
	})
}
