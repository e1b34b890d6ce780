package i18n

import (
	"strings"
	"testing"
)

func TestDefaultTablesComplete(t *testing.T) {
	d := Default()
	if missing := d.MissingKeys(); len(missing) != 0 {
		t.Fatalf("translation tables out of sync: %v", missing)
	}
}

func TestLookupEveryKeyEveryLanguage(t *testing.T) {
	d := Default()
	for _, lang := range d.Languages() {
		for _, key := range d.Keys(lang) {
			res := d.Lookup(lang, key)
			if res.Missing {
				t.Fatalf("%s: key %q reported missing", lang, key)
			}
			got := d.Translate(lang, key, nil)
			if got == "" || got == key {
				t.Fatalf("%s: key %q translated to %q", lang, key, got)
			}
		}
	}
}

func TestLookupMiss(t *testing.T) {
	d := Default()
	cases := []struct {
		name string
		lang string
		key  string
	}{
		{"unknown key", "es", "doesNotExist"},
		{"unknown nested key", "en", "currencySymbol.EUR"},
		{"key through a leaf", "en", "appTitle.extra"},
		{"subtree is not a string", "es", "currencySymbol"},
		{"unknown language", "fr", "appTitle"},
		{"empty key", "es", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := d.Lookup(tc.lang, tc.key)
			if !res.Missing {
				t.Fatalf("expected miss, got %+v", res)
			}
			if res.String() != tc.key {
				t.Fatalf("expected raw key %q, got %q", tc.key, res.String())
			}
			if got := d.Translate(tc.lang, tc.key, Params{"x": 1}); got != tc.key {
				t.Fatalf("expected raw key %q, got %q", tc.key, got)
			}
		})
	}
}

func TestLookupNested(t *testing.T) {
	d := Default()
	cases := []struct {
		lang, key, want string
	}{
		{"es", "currencySymbol.ARS", "$"},
		{"es", "currencySymbol.USD", "US$"},
		{"en", "currencySymbol.ARS", "AR$"},
		{"en", "currencySymbol.USD", "$"},
		{"en", "paymentTypes.DEPOSIT", "Security Deposit"},
		{"en", "validation.amountMax", "Payment amount cannot exceed 999,999.99"},
	}
	for _, tc := range cases {
		if got := d.Translate(tc.lang, tc.key, nil); got != tc.want {
			t.Fatalf("%s %s: expected %q, got %q", tc.lang, tc.key, tc.want, got)
		}
	}
}

func TestInterpolate(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		params Params
		want   string
	}{
		{"all present", "Total: {count} unit{plural}", Params{"count": 3, "plural": "s"}, "Total: 3 units"},
		{"absent name left literal", "Hello {name}, {missing}", Params{"name": "Ana"}, "Hello Ana, {missing}"},
		{"empty value substituted", "unit{plural}", Params{"plural": ""}, "unit"},
		{"zero value substituted", "{count} items", Params{"count": 0}, "0 items"},
		{"repeated placeholder", "{a}-{a}", Params{"a": "x"}, "x-x"},
		{"no params", "{count}", nil, "{count}"},
		{"non word braces untouched", "{not a name}", Params{"not a name": "x"}, "{not a name}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Interpolate(tc.in, tc.params); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTranslateWithParams(t *testing.T) {
	d := Default()
	got := d.Translate("es", "totalUnits", Params{"count": 2, "plural": "es"})
	if got != "Total: 2 unidades de propiedad" {
		t.Fatalf("unexpected translation %q", got)
	}
	got = d.Translate("en", "confirmDeleteMessage", Params{"name": "John Smith"})
	if !strings.Contains(got, "John Smith") {
		t.Fatalf("expected name interpolated, got %q", got)
	}
}

func TestMissingKeysReportsGaps(t *testing.T) {
	d := New(map[string]Table{
		"es": {"a": "uno", "nested": Table{"b": "dos"}},
		"en": {"a": "one", "nested": Table{"c": "three"}},
	})
	missing := d.MissingKeys()
	if len(missing["es"]) != 1 || missing["es"][0] != "nested.c" {
		t.Fatalf("unexpected es gaps %v", missing["es"])
	}
	if len(missing["en"]) != 1 || missing["en"][0] != "nested.b" {
		t.Fatalf("unexpected en gaps %v", missing["en"])
	}
}
