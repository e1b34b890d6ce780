package http

import (
	"net/http"

	"proppilot/internal/log"
)

// handleDashboard renders the portfolio overview page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	_, data := s.view(w, r, "dashboard")
	s.loadSummary(r, &data)
	s.respond(w, r, NewHTMXResponse(), "dashboard_page", data)
}

// handleDashboardSummary returns the overview cards, reloaded after writes.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	_, data := s.view(w, r, "dashboard")
	s.loadSummary(r, &data)
	s.respond(w, r, NewHTMXResponse(), "dashboard_summary", data)
}

func (s *Server) loadSummary(r *http.Request, data *viewData) {
	ctx := r.Context()
	summary, err := s.service.Summary(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load dashboard summary", err, log.ComponentBackend, log.OpRead, log.NewFields())
		data.Error = data.L.T("errorOccurred")
		return
	}
	data.Summary = summary
}
