package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	module "github.com/louisbranch/pawprint/internal/services/web/module"
	webi18n "github.com/louisbranch/pawprint/internal/services/web/platform/i18n"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	"golang.org/x/net/html"
)

func englishLocalizer() *webi18n.Localizer {
	return webi18n.NewLocalizer(webi18n.Default())
}

// parseFragment renders c and parses the output. Table rows are wrapped in a
// table so the parser keeps them.
func parseFragment(t *testing.T, c templ.Component) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	source := buf.String()
	if strings.HasPrefix(source, "<tr") {
		source = "<table><tbody>" + source + "</tbody></table>"
	}
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	value, _ := attr(n, "class")
	for _, field := range strings.Fields(value) {
		if field == class {
			return true
		}
	}
	return false
}

// findAll returns the element nodes under root matching pred, in document
// order.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestPetCardsEndWithRevealedSentinel(t *testing.T) {
	t.Parallel()

	pets := []petapi.Pet{{ID: "p-1", Name: "Rex", Age: 3}, {ID: "p-2", Name: "Mia", Age: 1}}
	doc := parseFragment(t, PetCards(pets, Tail{Path: routepath.PetsMore, Next: "tok-2"}, englishLocalizer()))

	cards := findAll(doc, byClass("pet-card"))
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}
	sentinels := findAll(doc, byClass("sentinel"))
	if len(sentinels) != 1 {
		t.Fatalf("sentinels = %d, want 1", len(sentinels))
	}
	if got, _ := attr(sentinels[0], "hx-get"); got != routepath.More(routepath.PetsMore, "tok-2") {
		t.Fatalf("hx-get = %q", got)
	}
	if got, _ := attr(sentinels[0], "hx-trigger"); got != "revealed" {
		t.Fatalf("hx-trigger = %q, want revealed", got)
	}
}

func TestListTailRendersNothingWhenExhausted(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, PetCards([]petapi.Pet{{ID: "p-1", Name: "Rex"}}, Tail{Path: routepath.PetsMore}, englishLocalizer()))
	if got := findAll(doc, byClass("sentinel")); len(got) != 0 {
		t.Fatalf("sentinels = %d, want 0", len(got))
	}
	if got := findAll(doc, byClass("load-error")); len(got) != 0 {
		t.Fatalf("retry blocks = %d, want 0", len(got))
	}
}

func TestListTailOffersRetryAfterFailure(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, ListTail(Tail{Path: routepath.PetsMore, Next: "tok-3", Error: "Could not load more"}, englishLocalizer()))
	blocks := findAll(doc, byClass("load-error"))
	if len(blocks) != 1 {
		t.Fatalf("retry blocks = %d, want 1", len(blocks))
	}
	if role, _ := attr(blocks[0], "role"); role != "alert" {
		t.Fatalf("role = %q, want alert", role)
	}
	buttons := findAll(blocks[0], byTag("button"))
	if len(buttons) != 1 || strings.TrimSpace(text(buttons[0])) != "Try again" {
		t.Fatalf("retry button missing: %d buttons", len(buttons))
	}
	if got, _ := attr(buttons[0], "hx-get"); got != routepath.More(routepath.PetsMore, "tok-3") {
		t.Fatalf("retry hx-get = %q", got)
	}
}

func TestTableTailSpansColumns(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, ListTail(Tail{Path: routepath.AdminPetsMore, Next: "tok", Columns: 5}, englishLocalizer()))
	rows := findAll(doc, func(n *html.Node) bool { return n.Data == "tr" && hasClass(n, "sentinel") })
	if len(rows) != 1 {
		t.Fatalf("sentinel rows = %d, want 1", len(rows))
	}
	cells := findAll(rows[0], byTag("td"))
	if len(cells) != 1 {
		t.Fatalf("cells = %d, want 1", len(cells))
	}
	if span, _ := attr(cells[0], "colspan"); span != "5" {
		t.Fatalf("colspan = %q, want 5", span)
	}
}

func TestMarkupEscapesTextAndSanitizesURLs(t *testing.T) {
	t.Parallel()

	pets := []petapi.Pet{{ID: "p-1", Name: "<b>Rex</b>", Image: "javascript:alert(1)"}}
	doc := parseFragment(t, PetCards(pets, Tail{}, englishLocalizer()))

	if got := findAll(doc, byTag("b")); len(got) != 0 {
		t.Fatal("pet name rendered as markup")
	}
	headings := findAll(doc, byTag("h3"))
	if len(headings) != 1 {
		t.Fatalf("headings = %d, want 1", len(headings))
	}
	if got := text(headings[0]); got != "<b>Rex</b>" {
		t.Fatalf("heading text = %q", got)
	}
	images := findAll(doc, byTag("img"))
	if len(images) != 1 {
		t.Fatalf("images = %d, want 1", len(images))
	}
	if src, _ := attr(images[0], "src"); strings.HasPrefix(src, "javascript:") {
		t.Fatalf("src = %q, want sanitized", src)
	}
}

func TestLayoutLoadsAssetsAndExtraScripts(t *testing.T) {
	t.Parallel()

	loc := englishLocalizer()
	doc := parseFragment(t, Layout(Chrome{Title: "Pets", Scripts: []string{routepath.StaticPrefix + "auth.js"}}, loc, Empty("nothing")))

	htmlNodes := findAll(doc, byTag("html"))
	if len(htmlNodes) != 1 {
		t.Fatalf("html elements = %d, want 1", len(htmlNodes))
	}
	if lang, _ := attr(htmlNodes[0], "lang"); lang == "" {
		t.Fatal("missing lang attribute")
	}
	titles := findAll(doc, byTag("title"))
	if len(titles) != 1 {
		t.Fatalf("titles = %d, want 1", len(titles))
	}
	if got := text(titles[0]); got != "Pets · Pawprint" {
		t.Fatalf("title = %q", got)
	}
	var scripts []string
	for _, n := range findAll(doc, byTag("script")) {
		src, _ := attr(n, "src")
		scripts = append(scripts, src)
	}
	want := []string{htmxScript, routepath.StaticPrefix + "auth.js"}
	if strings.Join(scripts, ",") != strings.Join(want, ",") {
		t.Fatalf("scripts = %v, want %v", scripts, want)
	}
	if main := findAll(doc, byTag("main")); len(main) != 1 || strings.TrimSpace(text(main[0])) != "nothing" {
		t.Fatal("main content missing")
	}
}

func TestMarkupSanitizesURLAttributes(t *testing.T) {
	t.Parallel()

	c := component(func(m *markup) {
		m.open("button",
			"formaction", "javascript:alert(1)",
			"hx-patch", "javascript:alert(2)",
			"hx-delete", "/app/pets/p-1",
			"title", "javascript:is just text here",
		)
		m.close("button")
	})
	buttons := findAll(parseFragment(t, c), byTag("button"))
	if len(buttons) != 1 {
		t.Fatalf("buttons = %d, want 1", len(buttons))
	}
	for _, name := range []string{"formaction", "hx-patch"} {
		if value, _ := attr(buttons[0], name); strings.HasPrefix(value, "javascript:") {
			t.Fatalf("%s = %q, want sanitized", name, value)
		}
	}
	if value, _ := attr(buttons[0], "hx-delete"); value != "/app/pets/p-1" {
		t.Fatalf("hx-delete = %q, want local path kept", value)
	}
	if value, _ := attr(buttons[0], "title"); value != "javascript:is just text here" {
		t.Fatalf("title = %q, want text attribute untouched", value)
	}
}

func TestDashboardProfilePanel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		viewer     module.Viewer
		wantValues []string
		wantAvatar string
		wantBadge  string
	}{
		{
			name: "full profile",
			viewer: module.Viewer{
				SignedIn: true, DisplayName: "Ana Souza", Email: "ana@example.com",
				AvatarURL: "https://cdn.example.com/ana.png", Role: module.RoleAdmin,
			},
			wantValues: []string{"Ana Souza", "ana@example.com", "Administrator"},
			wantAvatar: "https://cdn.example.com/ana.png",
		},
		{
			name:       "missing details",
			viewer:     module.Viewer{SignedIn: true, Role: "user"},
			wantValues: []string{"Anonymous user", "Not provided", "Member"},
			wantBadge:  "U",
		},
		{
			name:       "initials without photo",
			viewer:     module.Viewer{SignedIn: true, DisplayName: "maria da silva", Email: "m@example.com"},
			wantValues: []string{"maria da silva", "m@example.com", "Member"},
			wantBadge:  "MS",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := parseFragment(t, Dashboard(tc.viewer, englishLocalizer()))
			panels := findAll(doc, func(n *html.Node) bool { return n.Data == "section" && hasClass(n, "profile") })
			if len(panels) != 1 {
				t.Fatalf("profile panels = %d, want 1", len(panels))
			}
			var values []string
			for _, dd := range findAll(panels[0], byTag("dd")) {
				values = append(values, text(dd))
			}
			if diff := cmp.Diff(tc.wantValues, values); diff != "" {
				t.Fatalf("profile values mismatch (-want +got):\n%s", diff)
			}
			images := findAll(panels[0], byTag("img"))
			if tc.wantAvatar != "" {
				if len(images) != 1 {
					t.Fatalf("avatars = %d, want 1", len(images))
				}
				if src, _ := attr(images[0], "src"); src != tc.wantAvatar {
					t.Fatalf("avatar src = %q, want %q", src, tc.wantAvatar)
				}
				return
			}
			if len(images) != 0 {
				t.Fatalf("avatars = %d, want none", len(images))
			}
			badges := findAll(panels[0], byClass("initials"))
			if len(badges) != 1 || text(badges[0]) != tc.wantBadge {
				t.Fatalf("initials badge mismatch, want %q", tc.wantBadge)
			}
		})
	}
}
