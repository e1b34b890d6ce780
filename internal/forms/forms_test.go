package forms

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"proppilot/internal/core"
	"proppilot/internal/i18n"
	"proppilot/internal/locale"
	"proppilot/internal/rental"
	"proppilot/internal/validation"
)

var (
	english  = locale.NewLocalizer(i18n.Default(), locale.Locale{Language: locale.English, Currency: locale.USD})
	spanish  = locale.NewLocalizer(i18n.Default(), locale.Default())
	fixedNow = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
)

type fakeBackend struct {
	calls    int
	err      error
	payments []core.Payment
	tenants  []core.Tenant
	deleted  []int64
	block    chan struct{}
}

func (b *fakeBackend) CreatePayment(ctx context.Context, p core.Payment) error {
	b.calls++
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.err != nil {
		return b.err
	}
	b.payments = append(b.payments, p)
	return nil
}

func (b *fakeBackend) CreateTenant(_ context.Context, t core.Tenant) (core.Tenant, error) {
	b.calls++
	if b.err != nil {
		return core.Tenant{}, b.err
	}
	b.tenants = append(b.tenants, t)
	t.ID = 42
	return t, nil
}

func (b *fakeBackend) UpdateTenant(_ context.Context, t core.Tenant) (core.Tenant, error) {
	b.calls++
	if b.err != nil {
		return core.Tenant{}, b.err
	}
	b.tenants = append(b.tenants, t)
	return t, nil
}

func (b *fakeBackend) DeleteTenant(_ context.Context, id int64) error {
	b.calls++
	if b.err != nil {
		return b.err
	}
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *fakeBackend) CreatePropertyUnit(_ context.Context, u core.PropertyUnit) (core.PropertyUnit, error) {
	b.calls++
	if b.err != nil {
		return core.PropertyUnit{}, b.err
	}
	u.ID = 7
	return u, nil
}

func (b *fakeBackend) DeletePropertyUnit(_ context.Context, id int64) error {
	b.calls++
	if b.err != nil {
		return b.err
	}
	b.deleted = append(b.deleted, id)
	return nil
}

func fillPayment(f *PaymentForm) {
	f.Set(validation.FieldPropertyUnitID, "3")
	f.Set(validation.FieldAmount, "1500.50")
	f.Set(validation.FieldPaymentDate, "2024-06-01")
	f.Set(validation.FieldPaymentType, "DEPOSIT")
	f.Set(validation.FieldDescription, "  June deposit  ")
}

func TestPaymentForm_Defaults(t *testing.T) {
	f := NewPaymentForm(&fakeBackend{}).WithClock(fixedNow)
	snap := f.Snapshot()

	if snap.Status != StatusIdle {
		t.Errorf("Status = %v, want idle", snap.Status)
	}
	if got := snap.Value(validation.FieldPaymentType); got != "RENT" {
		t.Errorf("default payment type = %q, want RENT", got)
	}
	if got := snap.Value(validation.FieldPaymentDate); got != "2024-06-15" {
		t.Errorf("default payment date = %q, want 2024-06-15", got)
	}
}

func TestPaymentForm_SubmitSuccess(t *testing.T) {
	b := &fakeBackend{}
	f := NewPaymentForm(b).WithClock(fixedNow)
	var seen []Status
	f.Observe(func(s Status) { seen = append(seen, s) })
	fillPayment(f)

	snap, err := f.Submit(context.Background(), english)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if want := []Status{StatusSubmitting, StatusSuccess}; !reflect.DeepEqual(seen, want) {
		t.Errorf("transitions = %v, want %v", seen, want)
	}
	if snap.Message != "Payment registered successfully!" {
		t.Errorf("Message = %q", snap.Message)
	}
	if snap.Value(validation.FieldAmount) != "" || snap.Value(validation.FieldPaymentType) != "RENT" {
		t.Errorf("fields should reset to defaults, got %v", snap.Values)
	}
	if len(b.payments) != 1 {
		t.Fatalf("backend got %d payments, want 1", len(b.payments))
	}
	p := b.payments[0]
	if p.PropertyUnitID != 3 || p.Amount.Cents != 150050 || p.PaymentType != core.PaymentDeposit || p.PaymentDate.String() != "2024-06-01" {
		t.Errorf("payment = %+v", p)
	}
}

func TestPaymentForm_InvalidDoesNotCallBackend(t *testing.T) {
	b := &fakeBackend{}
	f := NewPaymentForm(b).WithClock(fixedNow)
	f.Set(validation.FieldAmount, "0")
	f.Set(validation.FieldPaymentDate, "2024-06-16")

	snap, err := f.Submit(context.Background(), english)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if b.calls != 0 {
		t.Errorf("backend called %d times for an invalid form", b.calls)
	}
	if snap.Status != StatusFailed {
		t.Errorf("Status = %v, want failed", snap.Status)
	}
	if snap.Message != "Please fix the validation errors below" {
		t.Errorf("Message = %q", snap.Message)
	}
	for _, field := range []string{validation.FieldPropertyUnitID, validation.FieldAmount, validation.FieldPaymentDate} {
		if snap.Error(field) == "" {
			t.Errorf("expected error on %s", field)
		}
	}
}

func TestPaymentForm_SetAfterFailureReturnsToIdle(t *testing.T) {
	f := NewPaymentForm(&fakeBackend{}).WithClock(fixedNow)
	f.Submit(context.Background(), english)

	f.Set(validation.FieldAmount, "10")
	snap := f.Snapshot()

	if snap.Status != StatusIdle || snap.Message != "" {
		t.Errorf("after edit: status %v message %q, want idle and empty", snap.Status, snap.Message)
	}
	if snap.Error(validation.FieldAmount) == "" {
		t.Error("field errors should stay until the next validation")
	}
}

func TestPaymentForm_BackendFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantMsg    string
		wantFields map[string]string
	}{
		{
			name:       "validation rejection",
			err:        &rental.Error{Kind: rental.KindValidation, FieldErrors: map[string]string{"amount": "too much"}},
			wantMsg:    "Please fix the validation errors below",
			wantFields: map[string]string{"amount": "too much"},
		},
		{
			name:    "generic with message",
			err:     &rental.Error{Kind: rental.KindGeneric, Message: "Property unit is archived"},
			wantMsg: "Property unit is archived",
		},
		{
			name:    "generic without message",
			err:     &rental.Error{Kind: rental.KindGeneric},
			wantMsg: "Failed to register payment",
		},
		{
			name:    "transport",
			err:     &rental.Error{Kind: rental.KindTransport, Message: "dial tcp: refused"},
			wantMsg: "Failed to register payment",
		},
		{
			name:    "unclassified",
			err:     errors.New("boom"),
			wantMsg: "Failed to register payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPaymentForm(&fakeBackend{err: tt.err}).WithClock(fixedNow)
			fillPayment(f)

			snap, err := f.Submit(context.Background(), english)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if snap.Status != StatusFailed {
				t.Errorf("Status = %v, want failed", snap.Status)
			}
			if snap.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", snap.Message, tt.wantMsg)
			}
			for field, msg := range tt.wantFields {
				if snap.Error(field) != msg {
					t.Errorf("Error(%s) = %q, want %q", field, snap.Error(field), msg)
				}
			}
			if snap.Value(validation.FieldAmount) != "1500.50" {
				t.Error("values should be kept after a failure")
			}
		})
	}
}

func TestPaymentForm_CancelledRequestGoesIdle(t *testing.T) {
	b := &fakeBackend{block: make(chan struct{})}
	f := NewPaymentForm(b).WithClock(fixedNow)
	fillPayment(f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Snapshot)
	go func() {
		snap, _ := f.Submit(ctx, english)
		done <- snap
	}()

	deadline := time.Now().Add(time.Second)
	for f.Snapshot().Status != StatusSubmitting {
		if time.Now().After(deadline) {
			t.Fatal("form never reached submitting")
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := f.Submit(context.Background(), english); !errors.Is(err, ErrSubmitting) {
		t.Errorf("second Submit error = %v, want ErrSubmitting", err)
	}
	cancel()

	snap := <-done
	if snap.Status != StatusIdle || snap.Message != "" {
		t.Errorf("after cancel: status %v message %q", snap.Status, snap.Message)
	}
	if snap.Value(validation.FieldPropertyUnitID) != "3" {
		t.Error("values should survive a cancelled submit")
	}
}

func TestPaymentForm_DeadlineIsAFailure(t *testing.T) {
	b := &fakeBackend{block: make(chan struct{})}
	f := NewPaymentForm(b).WithClock(fixedNow)
	fillPayment(f)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	snap, err := f.Submit(ctx, english)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if snap.Status != StatusFailed || snap.Message != "Failed to register payment" {
		t.Errorf("after deadline: status %v message %q", snap.Status, snap.Message)
	}
	if snap.Value(validation.FieldAmount) != "1500.50" {
		t.Error("values should survive a timed out submit")
	}
}

func TestPaymentForm_RejectsMalformedUnitAndAmount(t *testing.T) {
	b := &fakeBackend{}
	f := NewPaymentForm(b).WithClock(fixedNow)
	fillPayment(f)
	f.Set(validation.FieldPropertyUnitID, "abc")
	f.Set(validation.FieldAmount, "1.٥")

	snap, err := f.Submit(context.Background(), english)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if snap.Status != StatusFailed {
		t.Errorf("Status = %v, want failed", snap.Status)
	}
	if !snap.Errors.Has(validation.FieldPropertyUnitID) || !snap.Errors.Has(validation.FieldAmount) {
		t.Errorf("Errors = %v, want unit and amount", snap.Errors)
	}
	if b.calls != 0 || len(b.payments) != 0 {
		t.Errorf("backend called %d times with %+v", b.calls, b.payments)
	}
}

func TestPaymentForm_Reset(t *testing.T) {
	f := NewPaymentForm(&fakeBackend{}).WithClock(fixedNow)
	fillPayment(f)
	f.Set(validation.FieldAmount, "-1")
	f.Submit(context.Background(), english)

	f.Reset()
	snap := f.Snapshot()

	if snap.Status != StatusIdle || !snap.Errors.Empty() || snap.Value(validation.FieldPropertyUnitID) != "" {
		t.Errorf("Reset left %+v", snap)
	}
}

func TestTenantForm_CreateFlow(t *testing.T) {
	b := &fakeBackend{}
	f := NewTenantForm(b)
	f.OpenCreate()
	f.Set(validation.FieldFullName, " Ana Pérez ")
	f.Set(validation.FieldNationalID, "27-1")
	f.Set(validation.FieldEmail, "ana@example.com")
	f.Set(validation.FieldPhone, "555")

	snap, err := f.Submit(context.Background(), spanish)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if snap.Status != StatusSuccess || snap.Mode != DialogClosed {
		t.Errorf("status %v mode %v, want success and closed dialog", snap.Status, snap.Mode)
	}
	if snap.Message != "¡Inquilino creado exitosamente!" {
		t.Errorf("Message = %q", snap.Message)
	}
	if len(b.tenants) != 1 || b.tenants[0].FullName != "Ana Pérez" || b.tenants[0].ID != 0 {
		t.Errorf("backend tenants = %+v", b.tenants)
	}
}

func TestTenantForm_EditSendsID(t *testing.T) {
	b := &fakeBackend{}
	f := NewTenantForm(b)
	f.OpenEdit(core.Tenant{ID: 9, FullName: "Ana", NationalID: "1", Email: "a@b.co", Phone: "1"})
	f.Set(validation.FieldPhone, "2")

	snap, _ := f.Submit(context.Background(), english)

	if snap.Message != "Tenant updated successfully!" {
		t.Errorf("Message = %q", snap.Message)
	}
	if len(b.tenants) != 1 || b.tenants[0].ID != 9 || b.tenants[0].Phone != "2" {
		t.Errorf("backend tenants = %+v", b.tenants)
	}
}

func TestTenantForm_SetClearsFieldError(t *testing.T) {
	f := NewTenantForm(&fakeBackend{})
	f.OpenCreate()
	f.Submit(context.Background(), english)

	f.Set(validation.FieldEmail, "x")
	snap := f.Snapshot()

	if snap.Error(validation.FieldEmail) != "" {
		t.Error("editing a field should clear its error")
	}
	if snap.Error(validation.FieldFullName) == "" {
		t.Error("other field errors should remain")
	}
}

func TestTenantForm_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"national id code", rental.Conflict(rental.CodeDuplicateNationalID, ""), "A tenant with this national ID already exists"},
		{"email code", rental.Conflict(rental.CodeDuplicateEmail, ""), "A tenant with this email already exists"},
		{"email from text", &rental.Error{Kind: rental.KindConflict, Reason: rental.ReasonFromText("Tenant with email x already exists")}, "A tenant with this email already exists"},
		{"unknown conflict", &rental.Error{Kind: rental.KindConflict, Message: "Duplicate"}, "Duplicate"},
		{"bad request without hint", &rental.Error{Kind: rental.KindGeneric, Status: 400, Message: "Bad input"}, "An error occurred"},
		{"server error with message", &rental.Error{Kind: rental.KindGeneric, Status: 500, Message: "Backend down"}, "Backend down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTenantForm(&fakeBackend{err: tt.err})
			f.OpenCreate()
			f.Set(validation.FieldFullName, "Ana")
			f.Set(validation.FieldNationalID, "1")
			f.Set(validation.FieldEmail, "a@b.co")
			f.Set(validation.FieldPhone, "1")

			snap, _ := f.Submit(context.Background(), english)
			if snap.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", snap.Message, tt.wantMsg)
			}
			if snap.Mode != DialogCreate {
				t.Error("dialog should stay open after a failure")
			}
		})
	}
}

func TestTenantForm_Delete(t *testing.T) {
	b := &fakeBackend{}
	f := NewTenantForm(b)

	snap, _ := f.Delete(context.Background(), english)
	if b.calls != 0 || snap.Status != StatusIdle {
		t.Fatal("Delete without confirmation should do nothing")
	}

	f.ConfirmDelete(core.Tenant{ID: 5, FullName: "Ana"})
	if got := f.Snapshot().Deleting; got == nil || got.ID != 5 {
		t.Fatalf("Deleting = %+v", got)
	}
	snap, _ = f.Delete(context.Background(), english)

	if snap.Status != StatusSuccess || snap.Deleting != nil {
		t.Errorf("status %v deleting %v", snap.Status, snap.Deleting)
	}
	if !reflect.DeepEqual(b.deleted, []int64{5}) {
		t.Errorf("deleted = %v", b.deleted)
	}
}

func TestPropertyForm_CreateAndDelete(t *testing.T) {
	b := &fakeBackend{}
	f := NewPropertyForm(b).WithClock(fixedNow)
	f.OpenCreate()
	f.Set(validation.FieldAddress, "Av. Colón 1")
	f.Set(validation.FieldType, "Loft")
	f.Set(validation.FieldBaseRentAmount, "1500")
	f.Set(validation.FieldLeaseStartDate, "2024-01-01")

	snap, err := f.Submit(context.Background(), english)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if snap.Status != StatusSuccess || snap.Open {
		t.Errorf("status %v open %v", snap.Status, snap.Open)
	}
	if snap.Created == nil || snap.Created.ID != 7 || snap.Created.BaseRentAmount.Cents != 150000 {
		t.Errorf("Created = %+v", snap.Created)
	}

	f.ConfirmDelete(*snap.Created)
	snap, _ = f.Delete(context.Background(), english)
	if snap.Message != "Property deleted successfully!" {
		t.Errorf("Message = %q", snap.Message)
	}
}

func TestPropertyForm_RejectsFutureLease(t *testing.T) {
	b := &fakeBackend{}
	f := NewPropertyForm(b).WithClock(fixedNow)
	f.OpenCreate()
	f.Set(validation.FieldAddress, "Av. Colón 1")
	f.Set(validation.FieldType, "Loft")
	f.Set(validation.FieldBaseRentAmount, "1500")
	f.Set(validation.FieldLeaseStartDate, "2024-07-01")

	snap, _ := f.Submit(context.Background(), english)
	if b.calls != 0 {
		t.Error("backend should not be called")
	}
	if snap.Error(validation.FieldLeaseStartDate) != "Lease start date cannot be in the future" {
		t.Errorf("lease error = %q", snap.Error(validation.FieldLeaseStartDate))
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{StatusIdle: "idle", StatusSubmitting: "submitting", StatusSuccess: "success", StatusFailed: "failed"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
