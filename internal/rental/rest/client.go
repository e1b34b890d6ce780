// Package rest talks to the rental backend's JSON REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"proppilot/internal/core"
	"proppilot/internal/metrics"
	"proppilot/internal/rental"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 1 << 20

// Client implements the rental ports over HTTP. Calls are not retried;
// they end when the response arrives, the context is cancelled, or the
// optional client timeout fires.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout bounds every call. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.http.Timeout = d
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a client for the API rooted at baseURL
// (e.g. http://localhost:8080/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type propertyUnitRequest struct {
	Address        string            `json:"address"`
	Type           core.PropertyType `json:"type"`
	BaseRentAmount core.Money        `json:"baseRentAmount"`
	LeaseStartDate *core.Date        `json:"leaseStartDate"`
}

// errorBody is the union of error shapes the backend sends.
type errorBody struct {
	Code             string            `json:"code"`
	Message          string            `json:"message"`
	Error            string            `json:"error"`
	ValidationErrors map[string]string `json:"validationErrors"`
}

func (c *Client) ListPropertyUnits(ctx context.Context) ([]core.PropertyUnit, error) {
	var units []core.PropertyUnit
	if err := c.do(ctx, "list_property_units", http.MethodGet, "/property-units", nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (c *Client) SearchPropertyUnits(ctx context.Context, address string) ([]core.PropertyUnit, error) {
	var units []core.PropertyUnit
	path := "/property-units/search?address=" + url.QueryEscape(address)
	if err := c.do(ctx, "search_property_units", http.MethodGet, path, nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (c *Client) CreatePropertyUnit(ctx context.Context, u core.PropertyUnit) (core.PropertyUnit, error) {
	req := propertyUnitRequest{
		Address:        u.Address,
		Type:           u.Type,
		BaseRentAmount: u.BaseRentAmount,
		LeaseStartDate: u.LeaseStartDate,
	}
	var created core.PropertyUnit
	if err := c.do(ctx, "create_property_unit", http.MethodPost, "/property-units", req, &created); err != nil {
		return core.PropertyUnit{}, err
	}
	return created, nil
}

func (c *Client) DeletePropertyUnit(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_property_unit", http.MethodDelete, "/property-units/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListTenants(ctx context.Context) ([]core.Tenant, error) {
	var tenants []core.Tenant
	if err := c.do(ctx, "list_tenants", http.MethodGet, "/tenants", nil, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

func (c *Client) CreateTenant(ctx context.Context, t core.Tenant) (core.Tenant, error) {
	t.ID = 0
	var created core.Tenant
	if err := c.do(ctx, "create_tenant", http.MethodPost, "/tenants", t, &created); err != nil {
		return core.Tenant{}, err
	}
	return created, nil
}

func (c *Client) UpdateTenant(ctx context.Context, t core.Tenant) (core.Tenant, error) {
	var updated core.Tenant
	path := "/tenants/" + strconv.FormatInt(t.ID, 10)
	if err := c.do(ctx, "update_tenant", http.MethodPut, path, t, &updated); err != nil {
		return core.Tenant{}, err
	}
	return updated, nil
}

func (c *Client) DeleteTenant(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_tenant", http.MethodDelete, "/tenants/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) CreatePayment(ctx context.Context, p core.Payment) error {
	return c.do(ctx, "create_payment", http.MethodPost, "/payments", p, nil)
}

// do performs one call and decodes a success body into out when out is
// non-nil. Every failure is returned as a *rental.Error.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if e, ok := rental.AsError(err); ok {
			outcome = e.Kind.String()
		} else if err != nil {
			outcome = "decode"
		}
		metrics.ObserveBackendCall(op, outcome, time.Since(start))
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// A cancelled context surfaces as the context error so callers
		// can discard the late result.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &rental.Error{Kind: rental.KindTransport, Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &rental.Error{Kind: rental.KindTransport, Status: resp.StatusCode, Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, raw, textConflictOps[op])
		c.logger.DebugContext(ctx, "Backend call failed",
			"operation", op,
			"status", resp.StatusCode,
			"kind", apiErr.Kind.String(),
			"code", apiErr.Code)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// textConflictOps are the operations whose 400 bodies may name a duplicate
// field in plain text.
var textConflictOps = map[string]bool{
	"create_tenant": true,
	"update_tenant": true,
}

// decodeError classifies a non-2xx response. A structured validation
// payload wins, then a structured conflict code or 409, then, when
// textConflicts is set, the text heuristic on a 400; everything else is
// generic.
func decodeError(status int, raw []byte, textConflicts bool) *rental.Error {
	text := strings.TrimSpace(string(raw))
	var eb errorBody
	structured := json.Unmarshal(raw, &eb) == nil

	message := eb.Message
	if message == "" {
		message = eb.Error
	}

	e := &rental.Error{Kind: rental.KindGeneric, Status: status, Code: eb.Code, Message: message}
	if !structured && text != "" {
		e.Err = errors.New(truncate(text, 200))
	}

	switch {
	case status == http.StatusBadRequest && len(eb.ValidationErrors) > 0:
		e.Kind = rental.KindValidation
		e.FieldErrors = eb.ValidationErrors
	case status == http.StatusConflict || rental.ReasonFromCode(eb.Code) != rental.ConflictUnknown:
		e.Kind = rental.KindConflict
		if textConflicts {
			e.Reason = rental.ClassifyConflict(eb.Code, text)
		} else {
			e.Reason = rental.ReasonFromCode(eb.Code)
		}
	case textConflicts && status == http.StatusBadRequest && rental.ReasonFromText(text) != rental.ConflictUnknown:
		e.Kind = rental.KindConflict
		e.Reason = rental.ReasonFromText(text)
	}
	return e
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
