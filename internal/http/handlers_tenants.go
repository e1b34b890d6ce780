package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"proppilot/internal/core"
	"proppilot/internal/forms"
	"proppilot/internal/log"
	"proppilot/internal/validation"
)

var tenantFields = []string{
	validation.FieldFullName,
	validation.FieldNationalID,
	validation.FieldEmail,
	validation.FieldPhone,
}

// handleTenants renders the tenants page.
func (s *Server) handleTenants(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "tenants")
	s.loadTenants(r, &data)
	data.Tenant = sess.Tenant.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "tenants_page", data)
}

// handleTenantTable reloads the tenant table after a write.
func (s *Server) handleTenantTable(w http.ResponseWriter, r *http.Request) {
	_, data := s.view(w, r, "tenants")
	s.loadTenants(r, &data)
	s.respond(w, r, NewHTMXResponse(), "tenant_table", data)
}

func (s *Server) loadTenants(r *http.Request, data *viewData) {
	ctx := r.Context()

	tenants, err := s.service.ListTenants(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load tenants", err, log.ComponentBackend, log.OpList, log.NewFields())
		data.Error = data.L.T("failedToLoadTenants")
		return
	}
	data.Tenants = tenants
}

// handleTenantNew opens the create dialog.
func (s *Server) handleTenantNew(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "tenants")
	sess.Tenant.OpenCreate()
	data.Tenant = sess.Tenant.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "tenant_dialog", data)
}

// handleTenantEdit opens the edit dialog prefilled with the tenant.
func (s *Server) handleTenantEdit(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "tenants")
	tenant, ok := s.findTenant(w, r, data)
	if !ok {
		return
	}
	sess.Tenant.OpenEdit(tenant)
	data.Tenant = sess.Tenant.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "tenant_dialog", data)
}

// handleTenantField stores edited values. Editing a field clears its
// error, so the response swaps the error slots out of band.
func (s *Server) handleTenantField(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.FromRequest(w, r)
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	var body strings.Builder
	for field, value := range p.Present(tenantFields...) {
		sess.Tenant.Set(field, value)
		body.WriteString(`<span id="tenant-error-` + template.HTMLEscapeString(field) +
			`" class="field-error" hx-swap-oob="true"></span>`)
	}
	NewHTMXResponse().BodyHTML([]byte(body.String())).Write(w)
}

// handleTenantClose dismisses the open dialog.
func (s *Server) handleTenantClose(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "tenants")
	sess.Tenant.Close()
	data.Tenant = sess.Tenant.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "tenant_dialog", data)
}

// handleTenantSave creates or updates depending on the open dialog.
func (s *Server) handleTenantSave(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "tenants")
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	if sess.Tenant.Snapshot().Mode == forms.DialogClosed {
		sess.Tenant.OpenCreate()
	}
	for field, value := range p.Values(tenantFields...) {
		sess.Tenant.Set(field, value)
	}

	ctx := r.Context()

	snap, err := sess.Tenant.Submit(ctx, data.L)
	if errors.Is(err, forms.ErrSubmitting) {
		s.stillSubmitting(w, data)
		return
	}
	s.events.LogFormSubmitted(ctx, "tenant", snap.Status.String(), len(snap.Errors))

	b := NewHTMXResponse()
	if snap.Status == forms.StatusSuccess {
		b.TriggerTenantsChanged().TriggerSuccessNotification(snap.Message)
	}
	data.Tenant = snap
	s.respond(w, r, b, "tenant_dialog", data)
}

// handleTenantConfirmDelete opens the delete confirmation.
func (s *Server) handleTenantConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "tenants")
	tenant, ok := s.findTenant(w, r, data)
	if !ok {
		return
	}
	sess.Tenant.ConfirmDelete(tenant)
	data.Tenant = sess.Tenant.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "tenant_delete_dialog", data)
}

// handleTenantDelete deletes the tenant named in the path.
func (s *Server) handleTenantDelete(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "tenants")
	if pending := sess.Tenant.Snapshot().Deleting; pending == nil || idMismatch(r, pending.ID) {
		tenant, ok := s.findTenant(w, r, data)
		if !ok {
			return
		}
		sess.Tenant.ConfirmDelete(tenant)
	}

	ctx := r.Context()

	snap, err := sess.Tenant.Delete(ctx, data.L)
	if errors.Is(err, forms.ErrSubmitting) {
		s.stillSubmitting(w, data)
		return
	}
	s.events.LogFormSubmitted(ctx, "tenant_delete", snap.Status.String(), 0)

	b := NewHTMXResponse()
	if snap.Status == forms.StatusSuccess {
		b.TriggerTenantsChanged().TriggerSuccessNotification(snap.Message)
	}
	data.Tenant = snap
	s.respond(w, r, b, "tenant_delete_dialog", data)
}

func (s *Server) findTenant(w http.ResponseWriter, r *http.Request, data viewData) (core.Tenant, bool) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return core.Tenant{}, false
	}

	ctx := r.Context()

	tenants, err := s.service.ListTenants(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load tenants", err, log.ComponentBackend, log.OpList, log.NewFields())
		BadGatewayError(data.L.T("failedToLoadTenants")).Write(w)
		return core.Tenant{}, false
	}
	for _, t := range tenants {
		if t.ID == id {
			return t, true
		}
	}
	NotFoundError(data.L.T("notAvailable")).Write(w)
	return core.Tenant{}, false
}
