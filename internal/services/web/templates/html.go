package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// markup writes escaped HTML and remembers the first write error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx, w: w}
		fn(m)
		return m.err
	})
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs alternate name and value; an empty value
// writes a bare boolean attribute.
func (m *markup) open(tag string, attrs ...string) {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if name == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(name)
		if value == "" && isBooleanAttr(name) {
			continue
		}
		b.WriteString(`="`)
		if isURLAttr(name) {
			value = string(templ.URL(value))
		}
		b.WriteString(templ.EscapeString(value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	m.raw(b.String())
}

func (m *markup) close(tag string) {
	m.raw("</" + tag + ">")
}

// el writes a complete element with escaped text content.
func (m *markup) el(tag, content string, attrs ...string) {
	m.open(tag, attrs...)
	m.text(content)
	m.close(tag)
}

func (m *markup) render(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

func isBooleanAttr(name string) bool {
	switch name {
	case "required", "checked", "selected", "disabled", "multiple", "hidden", "defer":
		return true
	}
	return false
}

// isURLAttr lists the attributes whose values are navigated to or fetched,
// so they go through templ's URL sanitizer.
func isURLAttr(name string) bool {
	switch name {
	case "href", "src", "action", "formaction", "poster",
		"hx-get", "hx-post", "hx-put", "hx-patch", "hx-delete":
		return true
	}
	return false
}

// flag returns name when on is true, for optional boolean attributes.
func flag(name string, on bool) string {
	if on {
		return name
	}
	return ""
}
