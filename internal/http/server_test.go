package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"proppilot/internal/i18n"
	"proppilot/internal/locale"
	"proppilot/internal/log"
	"proppilot/internal/rental/memory"
	"proppilot/internal/services"
	"proppilot/internal/session"
)

// testClient replays the cookies the server sets, like a browser.
type testClient struct {
	t       *testing.T
	srv     *Server
	cookies map[string]*http.Cookie
}

func newTestServer(t *testing.T) (*testClient, *memory.Store) {
	t.Helper()
	store := memory.NewFromFiles(t.TempDir())
	svc := services.NewRentalService(store, nil)
	sessions := session.NewStore(svc, session.Config{
		TTL:         time.Hour,
		MaxSessions: 100,
		Defaults:    locale.Locale{Language: locale.English, Currency: locale.USD},
	})
	srv, err := NewServer(Options{
		Addr:       ":0",
		Service:    svc,
		Sessions:   sessions,
		Dictionary: i18n.Default(),
		Logger:     log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)}),
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return &testClient{t: t, srv: srv, cookies: map[string]*http.Cookie{}}, store
}

func (c *testClient) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.srv.Handler.ServeHTTP(rr, req)
	for _, ck := range rr.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rr
}

func TestDashboardAndHealth(t *testing.T) {
	c, _ := newTestServer(t)

	rr := c.do(http.MethodGet, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{"PropPilot", "Total Properties", "Occupied Units", "Occupancy: "} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if c.cookies[session.CookieName] == nil {
		t.Errorf("session cookie not set")
	}

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rr := c.do(http.MethodGet, path, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	c, _ := newTestServer(t)

	rr := c.do(http.MethodGet, "/properties", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("X-Frame-Options = %q", rr.Header().Get("X-Frame-Options"))
	}
	if rr.Header().Get("Content-Security-Policy") == "" {
		t.Errorf("missing Content-Security-Policy")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing X-Request-ID")
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	c, _ := newTestServer(t)

	if rr := c.do(http.MethodGet, "/nope", nil); rr.Code != http.StatusNotFound {
		t.Errorf("unknown path status=%d, want 404", rr.Code)
	}
	if rr := c.do(http.MethodGet, "/payments", nil); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /payments status=%d, want 405", rr.Code)
	}
}

func TestPropertySearch(t *testing.T) {
	c, _ := newTestServer(t)

	rr := c.do(http.MethodGet, "/properties/search?q="+url.QueryEscape("Colón"), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Av. Colón 1234") {
		t.Errorf("search result missing matching unit: %s", body)
	}
	if strings.Contains(body, "Rondeau") {
		t.Errorf("search result contains non-matching unit")
	}
	if !strings.Contains(body, "Total: 1 property unit</p>") {
		t.Errorf("singular total missing: %s", body)
	}

	rr = c.do(http.MethodGet, "/properties/table", nil)
	if !strings.Contains(rr.Body.String(), "Total: 3 property units") {
		t.Errorf("table missing total: %s", rr.Body.String())
	}
}

func TestPaymentSubmit(t *testing.T) {
	c, store := newTestServer(t)

	rr := c.do(http.MethodGet, "/payments/new?propertyUnitId=3", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("payment page status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Selected Property Details") {
		t.Errorf("preselected unit panel missing")
	}

	// Missing amount: field error, nothing recorded.
	rr = c.do(http.MethodPost, "/payments", url.Values{
		"propertyUnitId": {"3"},
		"paymentDate":    {time.Now().Format("2006-01-02")},
		"paymentType":    {"RENT"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("invalid submit status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Payment amount is required") {
		t.Errorf("missing amount error: %s", rr.Body.String())
	}
	if len(store.Payments()) != 0 {
		t.Fatalf("invalid payment reached the backend")
	}

	rr = c.do(http.MethodPost, "/payments", url.Values{
		"propertyUnitId": {"3"},
		"amount":         {"1500.50"},
		"paymentDate":    {time.Now().Format("2006-01-02")},
		"paymentType":    {"RENT"},
		"description":    {"March rent"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("submit status=%d", rr.Code)
	}
	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, EventPaymentRegistered) || !strings.Contains(trigger, "Payment registered successfully!") {
		t.Errorf("HX-Trigger = %s", trigger)
	}
	payments := store.Payments()
	if len(payments) != 1 || payments[0].Amount.Cents != 150050 || payments[0].PropertyUnitID != 3 {
		t.Fatalf("payments = %+v", payments)
	}
}

func TestPaymentDescriptionCounter(t *testing.T) {
	c, _ := newTestServer(t)

	rr := c.do(http.MethodPost, "/payments/field", url.Values{"description": {"hola"}})
	if !strings.Contains(rr.Body.String(), "4/500 characters") {
		t.Errorf("counter = %s", rr.Body.String())
	}
	rr = c.do(http.MethodPost, "/payments/field", url.Values{"amount": {"10"}})
	if rr.Code != http.StatusNoContent {
		t.Errorf("non-description field status=%d, want 204", rr.Code)
	}
}

func TestTenantDuplicateNationalID(t *testing.T) {
	c, _ := newTestServer(t)

	c.do(http.MethodGet, "/tenants/new", nil)
	rr := c.do(http.MethodPost, "/tenants", url.Values{
		"fullName":   {"Otra Persona"},
		"nationalId": {"27-30111222-4"},
		"email":      {"otra@example.com"},
		"phone":      {"555"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "A tenant with this national ID already exists") {
		t.Errorf("conflict message missing: %s", rr.Body.String())
	}
	if strings.Contains(rr.Header().Get("HX-Trigger"), EventTenantsChanged) {
		t.Errorf("failed create announced a change")
	}
}

func TestTenantCreateAndDelete(t *testing.T) {
	c, _ := newTestServer(t)

	rr := c.do(http.MethodPost, "/tenants", url.Values{
		"fullName":   {"Lucía Pérez"},
		"nationalId": {"27-1-1"},
		"email":      {"lucia@example.com"},
		"phone":      {"555"},
	})
	if !strings.Contains(rr.Header().Get("HX-Trigger"), EventTenantsChanged) {
		t.Fatalf("create not announced: %s", rr.Body.String())
	}

	rr = c.do(http.MethodGet, "/tenants/2/delete", nil)
	if !strings.Contains(rr.Body.String(), "Carlos Rodríguez") {
		t.Errorf("confirmation missing tenant name: %s", rr.Body.String())
	}
	rr = c.do(http.MethodDelete, "/tenants/2", nil)
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "Tenant deleted successfully!") {
		t.Errorf("delete trigger = %s", rr.Header().Get("HX-Trigger"))
	}

	rr = c.do(http.MethodGet, "/tenants/table", nil)
	if strings.Contains(rr.Body.String(), "Carlos Rodríguez") {
		t.Errorf("deleted tenant still listed")
	}
	if !strings.Contains(rr.Body.String(), "Lucía Pérez") {
		t.Errorf("created tenant not listed")
	}
}

func TestPropertyDelete(t *testing.T) {
	c, _ := newTestServer(t)

	if rr := c.do(http.MethodGet, "/properties/99/delete", nil); rr.Code != http.StatusNotFound {
		t.Errorf("unknown unit status=%d, want 404", rr.Code)
	}
	if rr := c.do(http.MethodDelete, "/properties/abc", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("bad id status=%d, want 400", rr.Code)
	}

	rr := c.do(http.MethodDelete, "/properties/4", nil)
	if !strings.Contains(rr.Header().Get("HX-Trigger"), EventPropertiesChanged) {
		t.Fatalf("delete not announced: %s", rr.Body.String())
	}
	rr = c.do(http.MethodGet, "/properties/table", nil)
	if strings.Contains(rr.Body.String(), "Bv. San Juan") {
		t.Errorf("deleted unit still listed")
	}
}

func TestPropertyCreateValidation(t *testing.T) {
	c, _ := newTestServer(t)

	c.do(http.MethodGet, "/properties/new", nil)
	rr := c.do(http.MethodPost, "/properties", url.Values{"address": {"Calle 1"}})
	body := rr.Body.String()
	for _, want := range []string{"Property type is required", "Base rent is required", "Please fix the validation errors below"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in %s", want, body)
		}
	}
	// The dialog keeps the entered address.
	if !strings.Contains(body, `value="Calle 1"`) {
		t.Errorf("address value lost")
	}
}

func TestLocaleSwitch(t *testing.T) {
	c, _ := newTestServer(t)

	c.do(http.MethodGet, "/", nil)
	rr := c.do(http.MethodPost, "/locale", url.Values{"language": {"es"}, "currency": {"ARS"}})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Header().Get("HX-Refresh") != "true" {
		t.Errorf("HX-Refresh not set")
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), EventLocaleChanged) {
		t.Errorf("HX-Trigger = %s", rr.Header().Get("HX-Trigger"))
	}
	if ck := c.cookies[locale.LangCookieName]; ck == nil || ck.Value != "es" {
		t.Errorf("language cookie = %+v", ck)
	}

	rr = c.do(http.MethodGet, "/tenants", nil)
	if !strings.Contains(rr.Body.String(), "INQUILINOS") && !strings.Contains(rr.Body.String(), "Inquilinos") {
		t.Errorf("page not rendered in Spanish")
	}

	rr = c.do(http.MethodPost, "/locale", url.Values{"language": {"fr"}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unsupported language status=%d, want 400", rr.Code)
	}
}
