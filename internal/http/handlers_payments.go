package http

import (
	"errors"
	"net/http"
	"strconv"

	"proppilot/internal/core"
	"proppilot/internal/forms"
	"proppilot/internal/log"
	"proppilot/internal/session"
	"proppilot/internal/validation"
)

var paymentFields = []string{
	validation.FieldPropertyUnitID,
	validation.FieldAmount,
	validation.FieldPaymentDate,
	validation.FieldPaymentType,
	validation.FieldDescription,
}

// handlePaymentPage renders the register-payment page.
func (s *Server) handlePaymentPage(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "payments")
	if q := sanitizeInput(r.URL.Query().Get(validation.FieldPropertyUnitID)); q != "" {
		sess.Payment.Set(validation.FieldPropertyUnitID, q)
	}
	s.loadPaymentForm(r, sess, &data)
	s.respond(w, r, NewHTMXResponse(), "payment_page", data)
}

// handlePaymentUnit selects a property unit and returns its detail panel.
func (s *Server) handlePaymentUnit(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "payments")
	sess.Payment.Set(validation.FieldPropertyUnitID, sanitizeInput(r.URL.Query().Get(validation.FieldPropertyUnitID)))
	s.loadPaymentForm(r, sess, &data)
	s.respond(w, r, NewHTMXResponse(), "selected_property", data)
}

// handlePaymentField stores edited values. A description edit returns the
// updated character counter.
func (s *Server) handlePaymentField(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "payments")
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	values := p.Present(paymentFields...)
	for field, value := range values {
		sess.Payment.Set(field, value)
	}
	if _, ok := values[validation.FieldDescription]; !ok {
		NewHTMXResponse().Status(http.StatusNoContent).Write(w)
		return
	}
	data.Payment = sess.Payment.Snapshot()
	s.respond(w, r, NewHTMXResponse(), "description_counter", data)
}

// handlePaymentReset restores the form defaults.
func (s *Server) handlePaymentReset(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "payments")
	sess.Payment.Reset()
	s.loadPaymentForm(r, sess, &data)
	s.respond(w, r, NewHTMXResponse().TriggerFormReset(), "payment_form", data)
}

// handlePaymentSubmit registers the payment.
func (s *Server) handlePaymentSubmit(w http.ResponseWriter, r *http.Request) {
	sess, data := s.view(w, r, "payments")
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	values := p.Values(paymentFields...)
	for field, value := range values {
		sess.Payment.Set(field, value)
	}

	ctx := r.Context()

	snap, err := sess.Payment.Submit(ctx, data.L)
	if errors.Is(err, forms.ErrSubmitting) {
		s.stillSubmitting(w, data)
		return
	}
	s.events.LogFormSubmitted(ctx, "payment", snap.Status.String(), len(snap.Errors))

	b := NewHTMXResponse()
	if snap.Status == forms.StatusSuccess {
		unitID, _ := strconv.ParseInt(values[validation.FieldPropertyUnitID], 10, 64)
		cents, _ := core.ParseDecimalToCents(values[validation.FieldAmount])
		s.events.LogPaymentRegistered(ctx, unitID, cents, values[validation.FieldPaymentType])
		b.TriggerPaymentRegistered(unitID).TriggerSuccessNotification(snap.Message)
	}

	s.loadPaymentForm(r, sess, &data)
	data.Payment = snap
	s.respond(w, r, b, "payment_form", data)
}

// loadPaymentForm fills the unit picker, the selected unit and the form.
func (s *Server) loadPaymentForm(r *http.Request, sess *session.Session, data *viewData) {
	ctx := r.Context()

	data.Payment = sess.Payment.Snapshot()
	units, err := s.service.ListPropertyUnits(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load property units", err, log.ComponentBackend, log.OpList, log.NewFields())
		data.Error = data.L.T("failedToLoadProperties")
		return
	}
	data.Units = units

	selected := data.Payment.Value(validation.FieldPropertyUnitID)
	for i := range units {
		if strconv.FormatInt(units[i].ID, 10) == selected {
			u := units[i]
			data.Selected = &u
			break
		}
	}
}
