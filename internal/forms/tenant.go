package forms

import (
	"context"
	"net/http"
	"strings"

	"proppilot/internal/core"
	"proppilot/internal/metrics"
	"proppilot/internal/rental"
	"proppilot/internal/validation"
)

// DialogMode is which tenant dialog, if any, is open.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreate
	DialogEdit
)

// TenantForm drives the create, edit and delete dialogs of the tenants page.
type TenantForm struct {
	state
	writer   rental.TenantWriter
	mode     DialogMode
	editing  int64
	deleting *core.Tenant
}

// TenantSnapshot adds the dialog state to Snapshot.
type TenantSnapshot struct {
	Snapshot
	Mode      DialogMode
	EditingID int64
	Deleting  *core.Tenant
}

func NewTenantForm(w rental.TenantWriter) *TenantForm {
	return &TenantForm{
		state:  state{values: emptyTenantValues(), errors: validation.ErrorMap{}},
		writer: w,
	}
}

func emptyTenantValues() validation.Values {
	return validation.Values{
		validation.FieldFullName:   "",
		validation.FieldNationalID: "",
		validation.FieldEmail:      "",
		validation.FieldPhone:      "",
	}
}

// OpenCreate opens an empty create dialog.
func (f *TenantForm) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open(DialogCreate, 0, emptyTenantValues())
}

// OpenEdit opens the edit dialog prefilled with t.
func (f *TenantForm) OpenEdit(t core.Tenant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open(DialogEdit, t.ID, validation.Values{
		validation.FieldFullName:   t.FullName,
		validation.FieldNationalID: t.NationalID,
		validation.FieldEmail:      t.Email,
		validation.FieldPhone:      t.Phone,
	})
}

func (f *TenantForm) open(mode DialogMode, id int64, values validation.Values) {
	if f.status == StatusSubmitting {
		return
	}
	f.mode, f.editing = mode, id
	f.values = values
	f.errors = validation.ErrorMap{}
	f.message = ""
	f.setStatus(StatusIdle)
}

// Close dismisses whichever dialog is open. The banner of the last
// completed operation is kept.
func (f *TenantForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return
	}
	f.mode, f.editing, f.deleting = DialogClosed, 0, nil
	f.values = emptyTenantValues()
	f.errors = validation.ErrorMap{}
}

// Set updates one field and clears that field's error.
func (f *TenantForm) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.set(field, value) {
		f.errors.Clear(field)
	}
}

// Submit creates or updates the tenant depending on the open dialog.
// Success closes the dialog.
func (f *TenantForm) Submit(ctx context.Context, tr validation.Translator) (TenantSnapshot, error) {
	f.mu.Lock()
	ok, err := f.begin(validation.ValidateTenant(f.values, tr), tr)
	if !ok {
		if err == nil {
			metrics.ObserveFormSubmission("tenant", "invalid")
		}
		snap := f.tenantSnapshot()
		f.mu.Unlock()
		return snap, err
	}
	mode := f.mode
	tenant := tenantFromValues(f.values)
	tenant.ID = f.editing
	f.mu.Unlock()

	successKey, failureKey := "tenantCreatedSuccess", "failedToCreateTenant"
	if mode == DialogEdit {
		successKey, failureKey = "tenantUpdatedSuccess", "failedToUpdateTenant"
		_, err = f.writer.UpdateTenant(ctx, tenant)
	} else {
		_, err = f.writer.CreateTenant(ctx, tenant)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(ctx, err, tr, successKey, failureKey)
	if f.status == StatusFailed && unexplainedRejection(err) {
		f.message = tr.T("errorOccurred")
	}
	if f.status == StatusSuccess {
		f.mode, f.editing = DialogClosed, 0
		f.values = emptyTenantValues()
		f.errors = validation.ErrorMap{}
	}
	metrics.ObserveFormSubmission("tenant", f.status.String())
	return f.tenantSnapshot(), nil
}

// unexplainedRejection reports a 400 that named neither invalid fields nor
// a duplicate.
func unexplainedRejection(err error) bool {
	re, ok := rental.AsError(err)
	return ok && re.Kind == rental.KindGeneric && re.Status == http.StatusBadRequest
}

// ConfirmDelete opens the delete confirmation for t.
func (f *TenantForm) ConfirmDelete(t core.Tenant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return
	}
	f.deleting = &t
	f.message = ""
	f.setStatus(StatusIdle)
}

// Delete removes the tenant awaiting confirmation.
func (f *TenantForm) Delete(ctx context.Context, tr validation.Translator) (TenantSnapshot, error) {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return TenantSnapshot{}, ErrSubmitting
	}
	if f.deleting == nil {
		snap := f.tenantSnapshot()
		f.mu.Unlock()
		return snap, nil
	}
	id := f.deleting.ID
	f.message = ""
	f.setStatus(StatusSubmitting)
	f.mu.Unlock()

	err := f.writer.DeleteTenant(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(ctx, err, tr, "tenantDeletedSuccess", "failedToDeleteTenant")
	if f.status == StatusSuccess {
		f.deleting = nil
	}
	metrics.ObserveFormSubmission("tenant_delete", f.status.String())
	return f.tenantSnapshot(), nil
}

func (f *TenantForm) Snapshot() TenantSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tenantSnapshot()
}

// Observe registers fn to be called on every status change.
func (f *TenantForm) Observe(fn func(Status)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observe(fn)
}

func (f *TenantForm) tenantSnapshot() TenantSnapshot {
	snap := TenantSnapshot{Snapshot: f.snapshot(), Mode: f.mode, EditingID: f.editing}
	if f.deleting != nil {
		t := *f.deleting
		snap.Deleting = &t
	}
	return snap
}

func tenantFromValues(v validation.Values) core.Tenant {
	return core.Tenant{
		FullName:   strings.TrimSpace(v[validation.FieldFullName]),
		NationalID: strings.TrimSpace(v[validation.FieldNationalID]),
		Email:      strings.TrimSpace(v[validation.FieldEmail]),
		Phone:      strings.TrimSpace(v[validation.FieldPhone]),
	}
}
