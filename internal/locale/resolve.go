package locale

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the browser's language preference.
	LangCookieName = "pp_lang"
	// CurrencyCookieName stores the browser's currency preference.
	CurrencyCookieName = "pp_currency"
)

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

// Option is a selectable language or currency for the locale selector.
type Option struct {
	Code   string
	Label  string
	Active bool
}

// ResolveLanguage determines the initial language for a request from the
// lang query parameter, then the cookie, then Accept-Language.
func ResolveLanguage(r *http.Request, fallback Language) Language {
	if r == nil {
		return fallback
	}
	if v := Language(strings.TrimSpace(r.URL.Query().Get(LangParam))); v.IsValid() {
		return v
	}
	if c, err := r.Cookie(LangCookieName); err == nil && Language(c.Value).IsValid() {
		return Language(c.Value)
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return Languages[index]
			}
		}
	}
	return fallback
}

// ResolveCurrency reads the currency cookie.
func ResolveCurrency(r *http.Request, fallback Currency) Currency {
	if r == nil {
		return fallback
	}
	if c, err := r.Cookie(CurrencyCookieName); err == nil && Currency(c.Value).IsValid() {
		return Currency(c.Value)
	}
	return fallback
}

// SetCookies persists the selection on the response.
func SetCookies(w http.ResponseWriter, loc Locale) {
	for name, value := range map[string]string{
		LangCookieName:     string(loc.Language),
		CurrencyCookieName: string(loc.Currency),
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// LanguageOptions lists the languages with their names in the active language.
func (l Localizer) LanguageOptions() []Option {
	opts := make([]Option, 0, len(Languages))
	for _, lang := range Languages {
		opts = append(opts, Option{
			Code:   string(lang),
			Label:  l.T("languageName." + string(lang)),
			Active: lang == l.locale.Language,
		})
	}
	return opts
}

// CurrencyOptions lists the currencies with their names in the active language.
func (l Localizer) CurrencyOptions() []Option {
	opts := make([]Option, 0, len(Currencies))
	for _, c := range Currencies {
		opts = append(opts, Option{
			Code:   string(c),
			Label:  l.T("currencyName." + string(c)),
			Active: c == l.locale.Currency,
		})
	}
	return opts
}
