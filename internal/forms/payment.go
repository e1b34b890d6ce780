package forms

import (
	"context"
	"strconv"
	"strings"
	"time"

	"proppilot/internal/core"
	"proppilot/internal/metrics"
	"proppilot/internal/rental"
	"proppilot/internal/validation"
)

// PaymentForm is the register-payment page.
type PaymentForm struct {
	state
	writer rental.PaymentWriter
	now    func() time.Time
}

func NewPaymentForm(w rental.PaymentWriter) *PaymentForm {
	f := &PaymentForm{writer: w, now: time.Now}
	f.values = f.defaults()
	f.errors = validation.ErrorMap{}
	return f
}

// WithClock overrides the time source used for defaults and the
// no-future-date rule.
func (f *PaymentForm) WithClock(now func() time.Time) *PaymentForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
	f.values = f.defaults()
	return f
}

func (f *PaymentForm) defaults() validation.Values {
	return validation.Values{
		validation.FieldPropertyUnitID: "",
		validation.FieldAmount:         "",
		validation.FieldPaymentDate:    core.Date{Time: f.now()}.String(),
		validation.FieldPaymentType:    string(core.PaymentRent),
		validation.FieldDescription:    "",
	}
}

// Set updates one field.
func (f *PaymentForm) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(field, value)
}

// Submit validates the form and, when valid, registers the payment.
// On success the fields return to their defaults.
func (f *PaymentForm) Submit(ctx context.Context, tr validation.Translator) (Snapshot, error) {
	f.mu.Lock()
	ok, err := f.begin(validation.ValidatePayment(f.values, tr, f.now()), tr)
	if !ok {
		if err == nil {
			metrics.ObserveFormSubmission("payment", "invalid")
		}
		snap := f.snapshot()
		f.mu.Unlock()
		return snap, err
	}
	payment, err := paymentFromValues(f.values)
	if err != nil {
		f.finish(ctx, err, tr, "paymentSuccess", "paymentFailed")
		snap := f.snapshot()
		f.mu.Unlock()
		return snap, nil
	}
	f.mu.Unlock()

	err = f.writer.CreatePayment(ctx, payment)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(ctx, err, tr, "paymentSuccess", "paymentFailed")
	if f.status == StatusSuccess {
		f.values = f.defaults()
		f.errors = validation.ErrorMap{}
	}
	metrics.ObserveFormSubmission("payment", f.status.String())
	return f.snapshot(), nil
}

// Reset clears the form back to its defaults.
func (f *PaymentForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return
	}
	f.values = f.defaults()
	f.errors = validation.ErrorMap{}
	f.message = ""
	f.setStatus(StatusIdle)
}

func (f *PaymentForm) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// Observe registers fn to be called on every status change.
func (f *PaymentForm) Observe(fn func(Status)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observe(fn)
}

// paymentFromValues builds the request from values that passed validation.
func paymentFromValues(v validation.Values) (core.Payment, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(v[validation.FieldPropertyUnitID]), 10, 64)
	if err != nil || id <= 0 {
		return core.Payment{}, core.ErrMissingPropertyUnit
	}
	cents, err := core.ParseDecimalToCents(v[validation.FieldAmount])
	if err != nil {
		return core.Payment{}, err
	}
	date, err := core.ParseDate(strings.TrimSpace(v[validation.FieldPaymentDate]))
	if err != nil {
		return core.Payment{}, err
	}
	paymentType := core.PaymentType(strings.TrimSpace(v[validation.FieldPaymentType]))
	if paymentType == "" {
		paymentType = core.PaymentRent
	}
	return core.Payment{
		PropertyUnitID: id,
		Amount:         core.Money{Cents: cents},
		PaymentDate:    date,
		PaymentType:    paymentType,
		Description:    v[validation.FieldDescription],
	}, nil
}
