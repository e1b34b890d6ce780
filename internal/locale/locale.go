// Package locale holds the active language and currency selection and
// the localizer built from it.
//
// A Selection is owned by one browser session and passed explicitly to
// whatever renders text for that session; there is no process-wide locale.
package locale

import (
	"sync"
)

const (
	Spanish Language = "es"
	English Language = "en"

	ARS Currency = "ARS"
	USD Currency = "USD"
)

type (
	Language string
	Currency string

	// Locale is the pair controlling displayed text and number formatting.
	Locale struct {
		Language Language
		Currency Currency
	}
)

// Languages lists the supported languages in display order.
var Languages = []Language{Spanish, English}

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{ARS, USD}

// Default returns the initial selection: Spanish and Argentine pesos.
func Default() Locale {
	return Locale{Language: Spanish, Currency: ARS}
}

func (l Language) IsValid() bool {
	return l == Spanish || l == English
}

func (c Currency) IsValid() bool {
	return c == ARS || c == USD
}

// Selection is the mutable locale of one session. Setters overwrite without
// validating the code: an unknown language degrades lookups to raw keys.
// Subscribers are called synchronously, in subscription order, after every
// write.
type Selection struct {
	mu      sync.Mutex
	current Locale
	nextID  int
	subs    []subscriber
}

type subscriber struct {
	id int
	fn func(Locale)
}

// NewSelection creates a selection starting at initial.
func NewSelection(initial Locale) *Selection {
	return &Selection{current: initial}
}

// Current returns the active locale.
func (s *Selection) Current() Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetLanguage overwrites the active language and notifies subscribers.
func (s *Selection) SetLanguage(code Language) {
	s.update(func(l *Locale) { l.Language = code })
}

// SetCurrency overwrites the active currency and notifies subscribers.
func (s *Selection) SetCurrency(code Currency) {
	s.update(func(l *Locale) { l.Currency = code })
}

// Set overwrites both fields with a single notification.
func (s *Selection) Set(loc Locale) {
	s.update(func(l *Locale) { *l = loc })
}

func (s *Selection) update(apply func(*Locale)) {
	s.mu.Lock()
	apply(&s.current)
	current := s.current
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(current)
	}
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription; calling it more than once is harmless.
func (s *Selection) Subscribe(fn func(Locale)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
		})
	}
}
