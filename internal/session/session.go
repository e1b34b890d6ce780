// Package session keeps the per-browser state: locale selection, form
// controllers and the search debouncer. Sessions live in an LRU cache
// whose TTL slides on every request.
package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"proppilot/internal/backend"
	"proppilot/internal/cache"
	"proppilot/internal/forms"
	"proppilot/internal/locale"
	"proppilot/internal/log"
	"proppilot/internal/metrics"
	"proppilot/internal/search"
)

// CookieName carries the session id.
const CookieName = "pp_session"

// Session is the state of one browser.
type Session struct {
	ID       string
	Locale   *locale.Selection
	Payment  *forms.PaymentForm
	Tenant   *forms.TenantForm
	Property *forms.PropertyForm
	Search   *search.Controller

	unsubscribe func()
}

func (s *Session) close() {
	s.Search.Cancel()
	s.unsubscribe()
}

// Config controls session lifetime and defaults.
type Config struct {
	TTL         time.Duration
	MaxSessions int
	SearchDelay time.Duration
	Defaults    locale.Locale
	// Secure marks the session cookie Secure.
	Secure bool
}

// Store creates and looks up sessions.
type Store struct {
	backend backend.Backend
	cfg     Config
	cache   *cache.LRUCache[*Session]
	manager *cache.Manager
	logger  *slog.Logger
}

func NewStore(b backend.Backend, cfg Config) *Store {
	s := &Store{
		backend: b,
		cfg:     cfg,
		manager: cache.NewManager(),
		logger:  slog.Default().With(log.FieldComponent, log.ComponentSession),
	}
	s.cache = cache.NewLRUCache[*Session](cfg.MaxSessions, cfg.TTL,
		cache.WithSlidingTTL[*Session](),
		cache.WithEvictCallback(s.evicted))
	s.manager.Register(s.cache)
	return s
}

// StartCleanup removes idle sessions every interval until Close.
func (s *Store) StartCleanup(interval time.Duration) {
	s.manager.StartCleanup(interval)
}

func (s *Store) Close() {
	s.manager.Stop()
}

// Get returns a live session and refreshes its expiry.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return s.cache.Get(id)
}

// Create starts a new session with the given locale.
func (s *Store) Create(initial locale.Locale) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		Locale:   locale.NewSelection(initial),
		Payment:  forms.NewPaymentForm(s.backend),
		Tenant:   forms.NewTenantForm(s.backend),
		Property: forms.NewPropertyForm(s.backend),
		Search:   search.NewController(s.backend, s.cfg.SearchDelay),
	}
	id := sess.ID
	sess.unsubscribe = sess.Locale.Subscribe(func(l locale.Locale) {
		s.logger.Debug("Session locale changed",
			log.FieldSessionID, id,
			log.FieldLanguage, l.Language,
			log.FieldCurrency, l.Currency)
	})
	s.cache.Set(sess.ID, sess)
	metrics.SetActiveSessions(s.cache.Size())
	return sess
}

// FromRequest returns the request's session, creating one and setting the
// cookie when the request has none or it expired. A new session starts
// with the locale the request asks for.
func (s *Store) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.Get(c.Value); ok {
			return sess
		}
	}
	sess := s.Create(locale.Locale{
		Language: locale.ResolveLanguage(r, s.cfg.Defaults.Language),
		Currency: locale.ResolveCurrency(r, s.cfg.Defaults.Currency),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Size()
}

func (s *Store) evicted(id string, sess *Session) {
	sess.close()
	metrics.SetActiveSessions(s.cache.Size())
	s.logger.Debug("Session ended", log.FieldSessionID, id)
}
