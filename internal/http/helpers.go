package http

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"proppilot/internal/core"
	"proppilot/internal/forms"
	"proppilot/internal/i18n"
	"proppilot/internal/validation"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// templateFuncs are the helpers available to every template.
var templateFuncs = template.FuncMap{
	// params builds placeholder values from key/value pairs:
	// {{.L.T "totalUnits" (params "count" 3 "plural" "s")}}
	"params": func(pairs ...any) (i18n.Params, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("params: odd number of arguments")
		}
		p := make(i18n.Params, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("params: key %v is not a string", pairs[i])
			}
			p[key] = pairs[i+1]
		}
		return p, nil
	},
	"idstr": func(id int64) string {
		return strconv.FormatInt(id, 10)
	},
	"dateValue": func(d *core.Date) string {
		if d == nil {
			return ""
		}
		return d.String()
	},
	"runeCount": func(s string) int {
		return len([]rune(s))
	},
	"isSubmitting": func(st forms.Status) bool {
		return st == forms.StatusSubmitting
	},
	"isEdit": func(m forms.DialogMode) bool {
		return m == forms.DialogEdit
	},
	"isOpen": func(m forms.DialogMode) bool {
		return m != forms.DialogClosed
	},
	"propertyTypes": func() []core.PropertyType {
		return core.PropertyTypes
	},
	"paymentTypes": func() []core.PaymentType {
		return core.PaymentTypes
	},
	"maxDescription": func() int {
		return validation.MaxDescriptionLen
	},
}
