package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"proppilot/internal/i18n"
	"proppilot/internal/log"
	"proppilot/internal/metrics"
	"proppilot/internal/middleware/ratelimit"
	"proppilot/internal/middleware/security"
	"proppilot/internal/middleware/trace"
	"proppilot/internal/services"
	"proppilot/internal/session"
	appweb "proppilot/web"
)

// Options configures NewServer.
type Options struct {
	Addr       string
	Service    *services.RentalService
	Sessions   *session.Store
	Dictionary *i18n.Dictionary
	// RateLimitPerMinute applies to mutating requests per client IP.
	RateLimitPerMinute int
	// TrustedProxies are extra CIDRs allowed to set forwarding headers.
	TrustedProxies []string
	Logger         *log.Logger
}

// Server wraps http.Server with the application's handlers and state.
type Server struct {
	*http.Server
	templates    *template.Template
	service      *services.RentalService
	sessions     *session.Store
	dict         *i18n.Dictionary
	rateLimiter  *ratelimit.Limiter
	detector     *security.Detector
	logger       *log.Logger
	events       *log.StructuredLogger
	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options) (*Server, error) {
	if opts.Service == nil || opts.Sessions == nil {
		return nil, errors.New("http: service and session store are required")
	}
	if opts.Dictionary == nil {
		opts.Dictionary = i18n.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	logger := opts.Logger.WithComponent(log.ComponentHTTP)

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	rlConfig := ratelimit.DefaultConfig()
	if opts.RateLimitPerMinute > 0 {
		rlConfig.RequestsPerMinute = opts.RateLimitPerMinute
		rlConfig.Burst = opts.RateLimitPerMinute
	}

	detector := security.NewDetector()
	for _, cidr := range opts.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
	}

	s := &Server{
		templates:   t,
		service:     opts.Service,
		sessions:    opts.Sessions,
		dict:        opts.Dictionary,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		detector:    detector,
		logger:      logger,
		events:      log.NewStructuredLogger(logger),
		startedAt:   time.Now(),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	traceMW := trace.NewMiddleware(logger, detector.ExtractClientIP)
	limit := s.rateLimiter.Middleware(detector.ExtractClientIP, isMutating, s.handleRateLimited)

	var handler http.Handler = mux
	handler = limit(handler)
	handler = detector.Middleware(handler)
	handler = headers.Middleware(handler)
	handler = traceMW.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "proppilot",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
		}))

	s.Server = &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := security.StaticAssetMiddleware(3600)(http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
		mux.Handle("GET /static/", static)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.route(mux, "GET /{$}", "dashboard", s.handleDashboard)
	s.route(mux, "GET /dashboard/summary", "dashboard_summary", s.handleDashboardSummary)
	s.route(mux, "POST /locale", "locale", s.handleLocale)

	s.route(mux, "GET /properties", "properties", s.handleProperties)
	s.route(mux, "GET /properties/search", "properties_search", s.handlePropertySearch)
	s.route(mux, "GET /properties/table", "properties_table", s.handlePropertyTable)
	s.route(mux, "GET /properties/new", "properties_new", s.handlePropertyNew)
	s.route(mux, "POST /properties/field", "properties_field", s.handlePropertyField)
	s.route(mux, "POST /properties/close", "properties_close", s.handlePropertyClose)
	s.route(mux, "POST /properties", "properties_create", s.handlePropertyCreate)
	s.route(mux, "GET /properties/{id}/delete", "properties_confirm_delete", s.handlePropertyConfirmDelete)
	s.route(mux, "DELETE /properties/{id}", "properties_delete", s.handlePropertyDelete)

	s.route(mux, "GET /tenants", "tenants", s.handleTenants)
	s.route(mux, "GET /tenants/table", "tenants_table", s.handleTenantTable)
	s.route(mux, "GET /tenants/new", "tenants_new", s.handleTenantNew)
	s.route(mux, "GET /tenants/{id}/edit", "tenants_edit", s.handleTenantEdit)
	s.route(mux, "POST /tenants/field", "tenants_field", s.handleTenantField)
	s.route(mux, "POST /tenants/close", "tenants_close", s.handleTenantClose)
	s.route(mux, "POST /tenants", "tenants_save", s.handleTenantSave)
	s.route(mux, "GET /tenants/{id}/delete", "tenants_confirm_delete", s.handleTenantConfirmDelete)
	s.route(mux, "DELETE /tenants/{id}", "tenants_delete", s.handleTenantDelete)

	s.route(mux, "GET /payments/new", "payments", s.handlePaymentPage)
	s.route(mux, "GET /payments/unit", "payments_unit", s.handlePaymentUnit)
	s.route(mux, "POST /payments/field", "payments_field", s.handlePaymentField)
	s.route(mux, "POST /payments/reset", "payments_reset", s.handlePaymentReset)
	s.route(mux, "POST /payments", "payments_submit", s.handlePaymentSubmit)
}

func (s *Server) route(mux *http.ServeMux, pattern, name string, h http.HandlerFunc) {
	mux.Handle(pattern, metrics.HTTPMetricsMiddleware(name, h))
}

func isMutating(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).Warn("Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.").Write(w)
}

// render executes the named template into memory so a failure never
// leaves a half-written page.
func (s *Server) render(ctx context.Context, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.events.LogError(ctx, "Template execution failed", err, log.ComponentTemplate, log.OpRender,
			log.LogFields{"template": name})
		return nil, err
	}
	return buf.Bytes(), nil
}

// respond renders name into b and writes it, or a 500 when rendering fails.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, name string, data any) {
	body, err := s.render(r.Context(), name, data)
	if err != nil {
		InternalServerError("Internal error").Write(w)
		return
	}
	b.BodyHTML(body).Write(w)
}

// Shutdown stops background workers and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
		s.sessions.Close()
	})
	return err
}
