// Package i18n resolves the request language and localizes web copy.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/pawprint/internal/platform/i18n/catalog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textcatalog "golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "pawprint_lang"
)

var (
	setupOnce sync.Once
	supported []language.Tag
	matcher   language.Matcher
	messages  textcatalog.Catalog
)

func setup() {
	setupOnce.Do(func() {
		bundle := catalog.Default()
		supported = bundle.Tags()
		matcher = language.NewMatcher(supported)
		cat, err := bundle.Catalog()
		if err != nil {
			panic(err)
		}
		messages = cat
	})
}

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	setup()
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.MustParse(catalog.BaseLocale)
}

// ParseTag matches value against the supported languages.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	return match(tag)
}

func match(tags ...language.Tag) (language.Tag, bool) {
	setup()
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default(), false
	}
	return supported[index], true
}

// ResolveTag determines the best language for r. The bool reports whether
// the tag came from the lang query parameter and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if value := r.URL.Query().Get(LangParam); value != "" {
		if tag, ok := ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			tag, _ := match(tags...)
			return tag, false
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Localizer renders catalog messages for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a localizer for tag.
func NewLocalizer(tag language.Tag) *Localizer {
	setup()
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// ResolveLocalizer resolves the request language, persisting an explicit
// choice as a cookie.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) *Localizer {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return NewLocalizer(tag)
}

// Tag returns the localizer language.
func (l *Localizer) Tag() language.Tag {
	if l == nil {
		return Default()
	}
	return l.tag
}

// Lang returns the BCP 47 string for the html lang attribute.
func (l *Localizer) Lang() string {
	return l.Tag().String()
}

// Sprintf formats the message registered under key.
func (l *Localizer) Sprintf(key message.Reference, args ...any) string {
	if l == nil {
		return NewLocalizer(Default()).Sprintf(key, args...)
	}
	return l.printer.Sprintf(key, args...)
}

// T formats the message registered under key.
func (l *Localizer) T(key string, args ...any) string {
	return l.Sprintf(key, args...)
}

// Money formats a dollar amount with the locale's separators.
func (l *Localizer) Money(amount decimal.Decimal) string {
	if l == nil {
		l = NewLocalizer(Default())
	}
	return "$" + l.printer.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// Number formats an integer with the locale's grouping separators.
func (l *Localizer) Number(value int) string {
	if l == nil {
		l = NewLocalizer(Default())
	}
	return l.printer.Sprint(number.Decimal(value))
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// LanguageOptions builds the language switcher for the current page.
func LanguageOptions(l *Localizer, r *http.Request) []LanguageOption {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	active := l.Tag()
	tags := Supported()
	options := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  l.T("common.lang." + tag.String()),
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag == active,
		})
	}
	return options
}

// LanguageURL returns path with the language parameter replaced.
func LanguageURL(path, rawQuery, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
