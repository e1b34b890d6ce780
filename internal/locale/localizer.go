package locale

import (
	"proppilot/internal/core"
	"proppilot/internal/i18n"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	formatSpanish = language.MustParse("es-AR")
	formatEnglish = language.MustParse("en-US")
)

// Localizer resolves text and formats numbers for one locale. It is a
// value snapshot: a later change to the Selection needs a new Localizer.
type Localizer struct {
	dict    *i18n.Dictionary
	locale  Locale
	printer *message.Printer
}

// NewLocalizer binds the dictionary to a locale.
func NewLocalizer(dict *i18n.Dictionary, loc Locale) Localizer {
	tag := formatEnglish
	if loc.Language == Spanish {
		tag = formatSpanish
	}
	return Localizer{dict: dict, locale: loc, printer: message.NewPrinter(tag)}
}

// Localizer returns a localizer for the selection's current locale.
func (s *Selection) Localizer(dict *i18n.Dictionary) Localizer {
	return NewLocalizer(dict, s.Current())
}

// Locale returns the locale the localizer was built for.
func (l Localizer) Locale() Locale {
	return l.locale
}

// Lookup exposes the raw lookup result, including misses.
func (l Localizer) Lookup(key string) i18n.Result {
	return l.dict.Lookup(string(l.locale.Language), key)
}

// T translates key, interpolating the first params map when given.
func (l Localizer) T(key string, params ...i18n.Params) string {
	var p i18n.Params
	if len(params) > 0 {
		p = params[0]
	}
	return l.dict.Translate(string(l.locale.Language), key, p)
}

// FormatNumber groups digits the way the active language does
// (es: 1.234,5; otherwise 1,234.5), with at most three fraction digits.
func (l Localizer) FormatNumber(amount float64) string {
	return l.printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// FormatCurrency prefixes the formatted amount with the symbol for code,
// taken from the dictionary. code defaults to the active currency. No
// conversion happens: only the symbol changes.
func (l Localizer) FormatCurrency(amount float64, code ...Currency) string {
	currency := l.locale.Currency
	if len(code) > 0 {
		currency = code[0]
	}
	return l.T("currencySymbol."+string(currency)) + l.FormatNumber(amount)
}

// FormatMoney formats a cent amount with the active currency symbol.
func (l Localizer) FormatMoney(m core.Money, code ...Currency) string {
	return l.FormatCurrency(m.Amount(), code...)
}

// Plural returns the plural suffix registered for kind when count is not one.
func (l Localizer) Plural(count int, kind string) string {
	if count == 1 {
		return ""
	}
	return l.T("pluralSuffix." + kind)
}
