package forms

import (
	"context"
	"strings"
	"time"

	"proppilot/internal/core"
	"proppilot/internal/metrics"
	"proppilot/internal/rental"
	"proppilot/internal/validation"
)

// PropertyForm drives the add-property and delete-property dialogs.
type PropertyForm struct {
	state
	writer   rental.PropertyUnitWriter
	now      func() time.Time
	open     bool
	deleting *core.PropertyUnit
	created  *core.PropertyUnit
}

// PropertySnapshot adds the dialog state to Snapshot.
type PropertySnapshot struct {
	Snapshot
	Open     bool
	Deleting *core.PropertyUnit
	// Created is the unit returned by the last successful create.
	Created *core.PropertyUnit
}

func NewPropertyForm(w rental.PropertyUnitWriter) *PropertyForm {
	return &PropertyForm{
		state:  state{values: emptyPropertyValues(), errors: validation.ErrorMap{}},
		writer: w,
		now:    time.Now,
	}
}

// WithClock overrides the time source of the no-future-date rule.
func (f *PropertyForm) WithClock(now func() time.Time) *PropertyForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
	return f
}

func emptyPropertyValues() validation.Values {
	return validation.Values{
		validation.FieldAddress:        "",
		validation.FieldType:           "",
		validation.FieldBaseRentAmount: "",
		validation.FieldLeaseStartDate: "",
	}
}

// OpenCreate opens an empty add-property dialog.
func (f *PropertyForm) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return
	}
	f.open = true
	f.values = emptyPropertyValues()
	f.errors = validation.ErrorMap{}
	f.message = ""
	f.setStatus(StatusIdle)
}

// Close dismisses the open dialog.
func (f *PropertyForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return
	}
	f.open, f.deleting = false, nil
	f.values = emptyPropertyValues()
	f.errors = validation.ErrorMap{}
}

// Set updates one field.
func (f *PropertyForm) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(field, value)
}

// Submit validates and creates the property unit. Success closes the
// dialog and resets its fields.
func (f *PropertyForm) Submit(ctx context.Context, tr validation.Translator) (PropertySnapshot, error) {
	f.mu.Lock()
	ok, err := f.begin(validation.ValidatePropertyUnit(f.values, tr, f.now()), tr)
	if !ok {
		if err == nil {
			metrics.ObserveFormSubmission("property_unit", "invalid")
		}
		snap := f.propertySnapshot()
		f.mu.Unlock()
		return snap, err
	}
	unit, err := propertyFromValues(f.values)
	if err != nil {
		f.finish(ctx, err, tr, "propertyCreatedSuccess", "failedToCreateProperty")
		snap := f.propertySnapshot()
		f.mu.Unlock()
		return snap, nil
	}
	f.mu.Unlock()

	created, err := f.writer.CreatePropertyUnit(ctx, unit)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(ctx, err, tr, "propertyCreatedSuccess", "failedToCreateProperty")
	if f.status == StatusSuccess {
		f.open = false
		f.created = &created
		f.values = emptyPropertyValues()
		f.errors = validation.ErrorMap{}
	}
	metrics.ObserveFormSubmission("property_unit", f.status.String())
	return f.propertySnapshot(), nil
}

// ConfirmDelete opens the delete confirmation for u.
func (f *PropertyForm) ConfirmDelete(u core.PropertyUnit) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return
	}
	f.deleting = &u
	f.message = ""
	f.setStatus(StatusIdle)
}

// Delete removes the unit awaiting confirmation.
func (f *PropertyForm) Delete(ctx context.Context, tr validation.Translator) (PropertySnapshot, error) {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return PropertySnapshot{}, ErrSubmitting
	}
	if f.deleting == nil {
		snap := f.propertySnapshot()
		f.mu.Unlock()
		return snap, nil
	}
	id := f.deleting.ID
	f.message = ""
	f.setStatus(StatusSubmitting)
	f.mu.Unlock()

	err := f.writer.DeletePropertyUnit(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(ctx, err, tr, "propertyDeletedSuccess", "failedToDeleteProperty")
	if f.status == StatusSuccess {
		f.deleting = nil
	}
	metrics.ObserveFormSubmission("property_unit_delete", f.status.String())
	return f.propertySnapshot(), nil
}

func (f *PropertyForm) Snapshot() PropertySnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.propertySnapshot()
}

// Observe registers fn to be called on every status change.
func (f *PropertyForm) Observe(fn func(Status)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observe(fn)
}

func (f *PropertyForm) propertySnapshot() PropertySnapshot {
	snap := PropertySnapshot{Snapshot: f.snapshot(), Open: f.open}
	if f.deleting != nil {
		u := *f.deleting
		snap.Deleting = &u
	}
	if f.created != nil {
		u := *f.created
		snap.Created = &u
	}
	return snap
}

func propertyFromValues(v validation.Values) (core.PropertyUnit, error) {
	cents, err := core.ParseDecimalToCents(v[validation.FieldBaseRentAmount])
	if err != nil {
		return core.PropertyUnit{}, err
	}
	u := core.PropertyUnit{
		Address:        strings.TrimSpace(v[validation.FieldAddress]),
		Type:           core.PropertyType(strings.TrimSpace(v[validation.FieldType])),
		BaseRentAmount: core.Money{Cents: cents},
	}
	if d, err := core.ParseDate(v[validation.FieldLeaseStartDate]); err == nil {
		u.LeaseStartDate = &d
	}
	return u, nil
}
