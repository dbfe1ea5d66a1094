package templates

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// Localizer provides translated strings and locale formatting for web
// components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
	Money(amount decimal.Decimal) string
	Number(value int) string
	Lang() string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

func money(loc Localizer, amount decimal.Decimal) string {
	if loc == nil {
		return "$" + amount.StringFixed(2)
	}
	return loc.Money(amount)
}

func lang(loc Localizer) string {
	if loc == nil {
		return "en-US"
	}
	return loc.Lang()
}
