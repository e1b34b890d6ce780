// Package validation checks form values against declarative field rules
// and reports localized, per-field error messages.
//
// The payment, tenant and property-unit forms all run through the same
// engine; each is only a Schema.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"proppilot/internal/core"
	"proppilot/internal/i18n"
)

// Kind selects how a field's raw value is interpreted.
type Kind int

const (
	KindText Kind = iota
	KindDecimal
	KindDate
	KindEmail
	KindChoice
	KindID
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Translator resolves message keys. locale.Localizer satisfies it.
type Translator interface {
	T(key string, params ...i18n.Params) string
}

// Values are raw form inputs keyed by field name.
type Values map[string]string

// ErrorMap maps a field name to its message. An empty map means the form
// may be submitted.
type ErrorMap map[string]string

// Field describes the rules for one input. Message keys left empty
// disable the corresponding rule.
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	RequiredKey string
	// InvalidKey is used when the value cannot be interpreted: a bad date,
	// a malformed email, an id that is not a positive integer or a value
	// outside Choices.
	InvalidKey string
	// PositiveKey is used for decimals that are not a positive amount,
	// including unparseable ones.
	PositiveKey string
	// PrecisionKey is used for decimals with more than two fraction digits.
	PrecisionKey string

	MaxCents int64
	MaxKey   string

	MaxLen    int
	MaxLenKey string

	NotFuture bool
	FutureKey string

	Choices []string
}

// Schema is the ordered rule set of a form.
type Schema []Field

// Validate checks every field, without short-circuiting, and returns the
// errors found. now bounds fields marked NotFuture.
func (s Schema) Validate(values Values, tr Translator, now time.Time) ErrorMap {
	errs := make(ErrorMap)
	for _, f := range s {
		if key := f.check(values[f.Name], now); key != "" {
			errs[f.Name] = tr.T(key)
		}
	}
	return errs
}

// check returns the message key of the first failing rule, or "".
func (f Field) check(raw string, now time.Time) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		if f.Required {
			return f.RequiredKey
		}
		return ""
	}

	switch f.Kind {
	case KindDecimal:
		cents, err := core.ParseDecimalToCents(value)
		if err != nil {
			if errors.Is(err, core.ErrAmountPrecision) && f.PrecisionKey != "" {
				return f.PrecisionKey
			}
			if errors.Is(err, core.ErrInvalidAmount) && f.PositiveKey != "" {
				return f.PositiveKey
			}
			return f.InvalidKey
		}
		if f.MaxKey != "" && cents > f.MaxCents {
			return f.MaxKey
		}
	case KindDate:
		d, err := core.ParseDate(value)
		if err != nil {
			return f.InvalidKey
		}
		if f.NotFuture && d.AfterNow(now) {
			return f.FutureKey
		}
	case KindEmail:
		if !emailPattern.MatchString(value) {
			return f.InvalidKey
		}
	case KindID:
		if id, err := strconv.ParseInt(value, 10, 64); err != nil || id <= 0 {
			return f.InvalidKey
		}
	case KindChoice:
		if !contains(f.Choices, value) {
			return f.InvalidKey
		}
	}

	// Length counts characters of the value as typed.
	if f.MaxLenKey != "" && utf8.RuneCountInString(raw) > f.MaxLen {
		return f.MaxLenKey
	}
	return ""
}

func contains(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}

// Empty reports whether no field failed.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

// Has reports whether field has an error.
func (m ErrorMap) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Merge copies other's entries into m, overwriting only the fields other
// names. It returns m for chaining; a nil m yields a new map.
func (m ErrorMap) Merge(other map[string]string) ErrorMap {
	if m == nil {
		m = make(ErrorMap, len(other))
	}
	for k, v := range other {
		m[k] = v
	}
	return m
}

// Clear removes field's error.
func (m ErrorMap) Clear(field string) {
	delete(m, field)
}
