package http

import (
	"context"
	"errors"
	"net/http"

	"proppilot/internal/core"
	"proppilot/internal/forms"
	"proppilot/internal/log"
	"proppilot/internal/search"
	"proppilot/internal/session"
	"proppilot/internal/validation"
)

var propertyFields = []string{
	validation.FieldAddress,
	validation.FieldType,
	validation.FieldBaseRentAmount,
	validation.FieldLeaseStartDate,
}

// handleProperties renders the property units page, filtered by ?q=.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	s.loadUnits(r, sess, &data, false)
	data.Property = sess.Property.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "properties_page", data)
}

// handlePropertySearch serves search-as-you-type. A request replaced by a
// newer keystroke gets 204 so htmx leaves the table alone.
func (s *Server) handlePropertySearch(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	if superseded := s.loadUnits(r, sess, &data, true); superseded {
		NewHTMXResponse().Status(http.StatusNoContent).Write(w)
		return
	}
	s.respond(w, r, NewHTMXResponse(), "property_table", data)
}

// handlePropertyTable reloads the table without debouncing.
func (s *Server) handlePropertyTable(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	s.loadUnits(r, sess, &data, false)
	s.respond(w, r, NewHTMXResponse(), "property_table", data)
}

// loadUnits fills data.Units for the ?q= query and reports whether a
// debounced search was superseded.
func (s *Server) loadUnits(r *http.Request, sess *session.Session, data *viewData, debounced bool) bool {
	ctx := r.Context()

	data.Query = sanitizeInput(r.URL.Query().Get("q"))

	var (
		units []core.PropertyUnit
		err   error
	)
	if debounced {
		units, err = sess.Search.Type(ctx, data.Query)
	} else {
		units, err = sess.Search.Run(ctx, data.Query)
	}
	switch {
	case errors.Is(err, search.ErrSuperseded), errors.Is(err, context.Canceled):
		return true
	case err != nil:
		s.events.LogError(ctx, "Failed to load property units", err, log.ComponentBackend, log.OpSearch,
			log.LogFields{log.FieldQuery: data.Query})
		data.Error = data.L.T("failedToLoadProperties")
	}
	data.Units = units
	return false
}

// handlePropertyNew opens the add-property dialog.
func (s *Server) handlePropertyNew(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	sess.Property.OpenCreate()
	data.Property = sess.Property.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "property_dialog", data)
}

// handlePropertyField stores edited field values as the user types.
func (s *Server) handlePropertyField(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.FromRequest(w, r)
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}
	for field, value := range p.Present(propertyFields...) {
		sess.Property.Set(field, value)
	}
	NewHTMXResponse().Status(http.StatusNoContent).Write(w)
}

// handlePropertyClose dismisses the add or delete dialog.
func (s *Server) handlePropertyClose(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	sess.Property.Close()
	data.Property = sess.Property.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "property_dialog", data)
}

// handlePropertyCreate submits the add-property dialog.
func (s *Server) handlePropertyCreate(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	if !sess.Property.Snapshot().Open {
		sess.Property.OpenCreate()
	}
	for field, value := range p.Values(propertyFields...) {
		sess.Property.Set(field, value)
	}

	ctx := r.Context()

	snap, err := sess.Property.Submit(ctx, data.L)
	if errors.Is(err, forms.ErrSubmitting) {
		s.stillSubmitting(w, data)
		return
	}
	s.events.LogFormSubmitted(ctx, "property_unit", snap.Status.String(), len(snap.Errors))

	b := NewHTMXResponse()
	if snap.Status == forms.StatusSuccess {
		b.TriggerPropertiesChanged().TriggerSuccessNotification(snap.Message)
	}
	data.Property = snap
	s.respond(w, r, b, "property_dialog", data)
}

// handlePropertyConfirmDelete opens the delete confirmation for a unit.
func (s *Server) handlePropertyConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	unit, ok := s.findUnit(w, r, data)
	if !ok {
		return
	}
	sess.Property.ConfirmDelete(unit)
	data.Property = sess.Property.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "property_delete_dialog", data)
}

// handlePropertyDelete deletes the unit named in the path.
func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "properties")
	if pending := sess.Property.Snapshot().Deleting; pending == nil || idMismatch(r, pending.ID) {
		unit, ok := s.findUnit(w, r, data)
		if !ok {
			return
		}
		sess.Property.ConfirmDelete(unit)
	}

	ctx := r.Context()

	snap, err := sess.Property.Delete(ctx, data.L)
	if errors.Is(err, forms.ErrSubmitting) {
		s.stillSubmitting(w, data)
		return
	}
	s.events.LogFormSubmitted(ctx, "property_unit_delete", snap.Status.String(), 0)

	b := NewHTMXResponse()
	if snap.Status == forms.StatusSuccess {
		b.TriggerPropertiesChanged().TriggerSuccessNotification(snap.Message)
	}
	data.Property = snap
	s.respond(w, r, b, "property_delete_dialog", data)
}

// findUnit resolves the {id} path segment against the backend, writing
// the error response itself when it cannot.
func (s *Server) findUnit(w http.ResponseWriter, r *http.Request, data viewData) (core.PropertyUnit, bool) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return core.PropertyUnit{}, false
	}

	ctx := r.Context()

	units, err := s.service.ListPropertyUnits(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load property units", err, log.ComponentBackend, log.OpList, log.NewFields())
		BadGatewayError(data.L.T("failedToLoadProperties")).Write(w)
		return core.PropertyUnit{}, false
	}
	for _, u := range units {
		if u.ID == id {
			return u, true
		}
	}
	NotFoundError(data.L.T("notAvailable")).Write(w)
	return core.PropertyUnit{}, false
}

func idMismatch(r *http.Request, want int64) bool {
	id, err := pathID(r)
	return err != nil || id != want
}

// stillSubmitting answers a submit that arrived while the previous one is
// still waiting for the backend.
func (s *Server) stillSubmitting(w http.ResponseWriter, data viewData) {
	NewHTMXResponse().
		Status(http.StatusNoContent).
		TriggerNotification(NotificationWarning, data.L.T("submitting"), 2000).
		Write(w)
}
