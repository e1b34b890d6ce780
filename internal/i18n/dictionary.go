// Package i18n holds the translation tables and the dot-path lookup used
// for every piece of user-facing text.
package i18n

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Table is one language's nested string table. Values are either strings
// or nested Tables.
type Table map[string]any

// Params are the values substituted into {name} placeholders.
type Params map[string]any

// Result is the outcome of a lookup. A miss is not an error: the caller
// decides whether to show the raw key.
type Result struct {
	Key     string
	Value   string
	Missing bool
}

// String returns the translated text, or the raw key on a miss.
func (r Result) String() string {
	if r.Missing {
		return r.Key
	}
	return r.Value
}

// Dictionary maps language codes to their tables. It is immutable after
// construction and safe for concurrent use.
type Dictionary struct {
	tables map[string]Table
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// New builds a dictionary from per-language tables.
func New(tables map[string]Table) *Dictionary {
	return &Dictionary{tables: tables}
}

// Default returns the built-in Spanish and English dictionary.
func Default() *Dictionary {
	return New(map[string]Table{
		"es": spanish,
		"en": english,
	})
}

// Languages returns the language codes with a table, sorted.
func (d *Dictionary) Languages() []string {
	langs := make([]string, 0, len(d.tables))
	for lang := range d.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Has reports whether the dictionary carries a table for lang.
func (d *Dictionary) Has(lang string) bool {
	_, ok := d.tables[lang]
	return ok
}

// Lookup walks the dot-separated key through lang's table. Unknown
// languages, missing segments and keys naming a subtree all produce a
// Missing result.
func (d *Dictionary) Lookup(lang, key string) Result {
	miss := Result{Key: key, Missing: true}
	var node any = d.tables[lang]
	if node == nil || key == "" {
		return miss
	}
	for _, segment := range strings.Split(key, ".") {
		table, ok := node.(Table)
		if !ok {
			return miss
		}
		node, ok = table[segment]
		if !ok {
			return miss
		}
	}
	value, ok := node.(string)
	if !ok {
		return miss
	}
	return Result{Key: key, Value: value}
}

// Translate returns the interpolated text for key, or the raw key when the
// lookup misses.
func (d *Dictionary) Translate(lang, key string, params Params) string {
	res := d.Lookup(lang, key)
	if res.Missing {
		return res.Key
	}
	return Interpolate(res.Value, params)
}

// Interpolate replaces every {name} with params[name]. Placeholders whose
// name is absent from params are left untouched.
func Interpolate(s string, params Params) string {
	if len(params) == 0 || !strings.Contains(s, "{") {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := params[name]
		if !ok {
			return match
		}
		return fmt.Sprint(value)
	})
}

// Keys returns every leaf key of lang's table in dot notation, sorted.
func (d *Dictionary) Keys(lang string) []string {
	var keys []string
	collectKeys(d.tables[lang], "", &keys)
	sort.Strings(keys)
	return keys
}

func collectKeys(table Table, prefix string, keys *[]string) {
	for k, v := range table {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch node := v.(type) {
		case Table:
			collectKeys(node, path, keys)
		case string:
			*keys = append(*keys, path)
		}
	}
}

// MissingKeys reports, per language, the keys present in some other
// language's table but absent from its own. An empty map means every
// table is complete.
func (d *Dictionary) MissingKeys() map[string][]string {
	union := make(map[string]struct{})
	perLang := make(map[string]map[string]struct{}, len(d.tables))
	for lang := range d.tables {
		set := make(map[string]struct{})
		for _, k := range d.Keys(lang) {
			set[k] = struct{}{}
			union[k] = struct{}{}
		}
		perLang[lang] = set
	}

	missing := make(map[string][]string)
	for lang, set := range perLang {
		for k := range union {
			if _, ok := set[k]; !ok {
				missing[lang] = append(missing[lang], k)
			}
		}
		sort.Strings(missing[lang])
	}
	for lang, keys := range missing {
		if len(keys) == 0 {
			delete(missing, lang)
		}
	}
	return missing
}
