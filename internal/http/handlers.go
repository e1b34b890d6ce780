package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"proppilot/internal/core"
	"proppilot/internal/forms"
	"proppilot/internal/locale"
	"proppilot/internal/log"
	"proppilot/internal/session"
)

// viewData is what every template receives. Pages fill the parts they show.
type viewData struct {
	L    locale.Localizer
	Page string

	Summary  core.Summary
	Units    []core.PropertyUnit
	Tenants  []core.Tenant
	Query    string
	Error    string
	Selected *core.PropertyUnit

	Payment  forms.Snapshot
	Tenant   forms.TenantSnapshot
	Property forms.PropertySnapshot
}

// view loads the request's session and a localizer for its locale.
func (s *Server) view(w http.ResponseWriter, r *http.Request, page string) (*session.Session, viewData) {
	sess := s.sessions.FromRequest(w, r)
	return sess, viewData{L: sess.Locale.Localizer(s.dict), Page: page}
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if err := s.service.Ready(ctx); err != nil {
		checks["backend"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["backend"] = "ok"
	}

	checks["sessions"] = map[string]any{"active": s.sessions.Len()}

	rl := s.rateLimiter.GetMetrics()
	sec := s.detector.GetMetrics()
	checks["security"] = map[string]any{
		"rate_limit_hits":     rl.TotalHits,
		"rate_limit_clients":  rl.ClientCount,
		"suspicious_requests": sec.SuspiciousRequests,
		"invalid_ip_attempts": sec.InvalidIPAttempts,
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleLocale switches the session's language and/or currency. The page
// reloads so every rendered string picks up the new locale.
func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.FromRequest(w, r)

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	lang := locale.Language(p.Get("language"))
	currency := locale.Currency(p.Get("currency"))
	if (lang != "" && !lang.IsValid()) || (currency != "" && !currency.IsValid()) {
		BadRequestError("Unsupported language or currency").Write(w)
		return
	}

	resp := NewHTMXResponse().Status(http.StatusNoContent)
	cancel := sess.Locale.Subscribe(func(l locale.Locale) {
		locale.SetCookies(w, l)
		resp.TriggerLocaleChanged(string(l.Language), string(l.Currency)).Refresh()
		log.FromContext(r.Context()).Info("Locale changed",
			log.FieldSessionID, sess.ID,
			log.FieldLanguage, l.Language,
			log.FieldCurrency, l.Currency)
	})
	defer cancel()

	current := sess.Locale.Current()
	if lang != "" {
		current.Language = lang
	}
	if currency != "" {
		current.Currency = currency
	}
	sess.Locale.Set(current)

	resp.Write(w)
}
