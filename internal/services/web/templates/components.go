package templates

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// Tail is the end of an infinite list: a sentinel that loads the next page
// when revealed, a retry affordance after a failed page, or nothing once
// the list is exhausted.
type Tail struct {
	// Path is the continuation route, for example routepath.PetsMore.
	Path string
	// Next is the opaque continuation token; empty ends the list.
	Next    string
	Loading bool
	// Error is the localized failure message of the last page.
	Error string
	// Columns renders the tail as a table row spanning that many cells.
	Columns int
}

// ListTail renders t.
func ListTail(t Tail, loc Localizer) templ.Component {
	return component(func(m *markup) {
		if t.Next == "" {
			return
		}
		url := routepath.More(t.Path, t.Next)
		wrap, inner := "div", ""
		if t.Columns > 0 {
			wrap, inner = "tr", "td"
		}
		switch {
		case t.Error != "":
			m.open(wrap, "class", "load-error", "role", "alert")
			if inner != "" {
				m.open(inner, "colspan", strconv.Itoa(t.Columns))
			}
			m.el("p", t.Error)
			m.el("button", T(loc, "common.retry"),
				"type", "button",
				"hx-get", url,
				"hx-target", "closest .load-error",
				"hx-swap", "outerHTML",
			)
		default:
			trigger := "revealed"
			if t.Loading {
				trigger = "load delay:1s"
			}
			m.open(wrap, "class", "sentinel", "hx-get", url, "hx-trigger", trigger, "hx-swap", "outerHTML")
			if inner != "" {
				m.open(inner, "colspan", strconv.Itoa(t.Columns))
			}
			m.el("span", T(loc, "common.loading"), "class", "loading", "aria-busy", "true")
		}
		if inner != "" {
			m.close(inner)
		}
		m.close(wrap)
	})
}

// Empty renders an empty-state message.
func Empty(message string) templ.Component {
	return component(func(m *markup) {
		m.el("p", message, "class", "empty")
	})
}

// ErrorState renders the body of an error page.
func ErrorState(statusCode int, message string, loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.open("section", "class", "error-state")
		m.el("h1", ErrorTitle(statusCode, loc))
		m.el("p", message)
		m.el("a", T(loc, "error.back_home"), "href", routepath.Root, "class", "button")
		m.close("section")
	})
}

// ErrorTitle returns the heading for an error status.
func ErrorTitle(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, "error.title_not_found")
	case http.StatusForbidden, http.StatusUnauthorized:
		return T(loc, "error.title_forbidden")
	case http.StatusBadRequest, http.StatusConflict:
		return T(loc, "error.title_bad_request")
	default:
		return T(loc, "error.title_server_error")
	}
}

// FieldError is a localized validation message for one form field.
type FieldError map[string]string

func fieldError(m *markup, errs FieldError, field string) {
	if msg := errs[field]; msg != "" {
		m.el("small", msg, "class", "field-error", "id", field+"-error")
	}
}

func formAlert(m *markup, message string) {
	if message != "" {
		m.el("p", message, "class", "alert alert-error", "role", "alert")
	}
}

// hiddenInput writes an input of type hidden.
func hiddenInput(m *markup, name, value string) {
	m.open("input", "type", "hidden", "name", name, "value", value)
}

// textInput writes a labelled input.
func textInput(m *markup, errs FieldError, label, inputType, name, value string, required bool, extra ...string) {
	m.open("label", "for", name)
	m.text(label)
	m.close("label")
	attrs := append([]string{"id", name, "type", inputType, "name", name, "value", value, flag("required", required), ""}, extra...)
	if errs[name] != "" {
		attrs = append(attrs, "aria-invalid", "true", "aria-describedby", name+"-error")
	}
	m.open("input", attrs...)
	fieldError(m, errs, name)
}

func textArea(m *markup, errs FieldError, label, name, value string, required bool) {
	m.open("label", "for", name)
	m.text(label)
	m.close("label")
	m.open("textarea", "id", name, "name", name, "rows", "4", flag("required", required), "")
	m.text(value)
	m.close("textarea")
	fieldError(m, errs, name)
}

func postButton(m *markup, action, label, class, target string) {
	m.open("form", "method", "post", "action", action, "class", "inline",
		"hx-post", action, "hx-target", target, "hx-swap", "outerHTML")
	m.el("button", label, "type", "submit", "class", class)
	m.close("form")
}
