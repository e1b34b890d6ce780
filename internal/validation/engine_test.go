package validation

import (
	"strings"
	"testing"
	"time"

	"proppilot/internal/i18n"
	"proppilot/internal/locale"
)

var (
	now = time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC)
	en  = locale.NewLocalizer(i18n.Default(), locale.Locale{Language: locale.English, Currency: locale.USD})
	es  = locale.NewLocalizer(i18n.Default(), locale.Default())
)

func validPayment() Values {
	return Values{
		FieldPropertyUnitID: "3",
		FieldAmount:         "1500.50",
		FieldPaymentDate:    "2025-05-20",
		FieldPaymentType:    "RENT",
		FieldDescription:    "May rent",
	}
}

func with(v Values, field, value string) Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	out[field] = value
	return out
}

func TestValidatePayment(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		field  string
		want   string
	}{
		{"valid", validPayment(), "", ""},
		{"valid comma decimal", with(validPayment(), FieldAmount, "1500,50"), "", ""},
		{"valid max", with(validPayment(), FieldAmount, "999999.99"), "", ""},
		{"valid without description", with(validPayment(), FieldDescription, ""), "", ""},
		{"valid yesterday", with(validPayment(), FieldPaymentDate, "2025-05-19"), "", ""},
		{"missing unit", with(validPayment(), FieldPropertyUnitID, ""), FieldPropertyUnitID, "Property unit is required"},
		{"missing amount", with(validPayment(), FieldAmount, ""), FieldAmount, "Payment amount is required"},
		{"zero amount", with(validPayment(), FieldAmount, "0"), FieldAmount, "Payment amount must be greater than 0"},
		{"negative amount", with(validPayment(), FieldAmount, "-10"), FieldAmount, "Payment amount must be greater than 0"},
		{"not a number", with(validPayment(), FieldAmount, "abc"), FieldAmount, "Payment amount must be greater than 0"},
		{"exceeds max", with(validPayment(), FieldAmount, "1000000"), FieldAmount, "Payment amount cannot exceed 999,999.99"},
		{"just above max", with(validPayment(), FieldAmount, "999999.991"), FieldAmount, "Amount allows at most two decimal places"},
		{"just above zero", with(validPayment(), FieldAmount, "0.001"), FieldAmount, "Amount allows at most two decimal places"},
		{"arabic-indic digit", with(validPayment(), FieldAmount, "1.٥"), FieldAmount, "Payment amount must be greater than 0"},
		{"unit not numeric", with(validPayment(), FieldPropertyUnitID, "abc"), FieldPropertyUnitID, "Property unit is not valid"},
		{"unit zero", with(validPayment(), FieldPropertyUnitID, "0"), FieldPropertyUnitID, "Property unit is not valid"},
		{"missing date", with(validPayment(), FieldPaymentDate, ""), FieldPaymentDate, "Payment date is required"},
		{"future date", with(validPayment(), FieldPaymentDate, "2025-05-21"), FieldPaymentDate, "Payment date cannot be in the future"},
		{"bad payment type", with(validPayment(), FieldPaymentType, "GIFT"), FieldPaymentType, "Payment type is not valid"},
		{"long description", with(validPayment(), FieldDescription, strings.Repeat("a", 501)), FieldDescription, "Description cannot exceed 500 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePayment(tt.values, en, now)
			if tt.field == "" {
				if !errs.Empty() {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("expected only %s to fail, got %v", tt.field, errs)
			}
			if errs[tt.field] != tt.want {
				t.Fatalf("expected %q on %s, got %q", tt.want, tt.field, errs[tt.field])
			}
		})
	}
}

func TestValidatePaymentChecksEveryField(t *testing.T) {
	errs := ValidatePayment(Values{FieldDescription: strings.Repeat("é", 501)}, en, now)
	for _, f := range []string{FieldPropertyUnitID, FieldAmount, FieldPaymentDate, FieldDescription} {
		if !errs.Has(f) {
			t.Fatalf("expected error on %s, got %v", f, errs)
		}
	}
	if errs.Has(FieldPaymentType) {
		t.Fatalf("payment type is optional")
	}
}

func TestDescriptionCountsCharacters(t *testing.T) {
	errs := ValidatePayment(with(validPayment(), FieldDescription, strings.Repeat("ñ", 500)), en, now)
	if !errs.Empty() {
		t.Fatalf("500 multi-byte characters should be accepted, got %v", errs)
	}
}

func TestValidatePaymentLocalized(t *testing.T) {
	errs := ValidatePayment(with(validPayment(), FieldAmount, "0"), es, now)
	if errs[FieldAmount] != "El monto del pago debe ser mayor a 0" {
		t.Fatalf("unexpected spanish message %q", errs[FieldAmount])
	}
}

func validTenant() Values {
	return Values{
		FieldFullName:   "Juan Pérez",
		FieldNationalID: "20-12345678-9",
		FieldEmail:      "juan@example.com",
		FieldPhone:      "+54 351 123-4567",
	}
}

func TestValidateTenant(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"valid", "", "", ""},
		{"blank name", FieldFullName, "   ", "El nombre completo es requerido"},
		{"missing national id", FieldNationalID, "", "El DNI/CUIT es requerido"},
		{"missing email", FieldEmail, "", "El email es requerido"},
		{"invalid email", FieldEmail, "not-an-email", "El formato del email no es válido"},
		{"email without tld", FieldEmail, "a@b", "El formato del email no es válido"},
		{"email with space", FieldEmail, "a b@c.com", "El formato del email no es válido"},
		{"missing phone", FieldPhone, "", "El teléfono es requerido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validTenant()
			if tt.field != "" {
				values = with(values, tt.field, tt.value)
			}
			errs := ValidateTenant(values, es)
			if tt.field == "" {
				if !errs.Empty() {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 || errs[tt.field] != tt.want {
				t.Fatalf("expected only %s=%q, got %v", tt.field, tt.want, errs)
			}
		})
	}
}

func TestValidatePropertyUnit(t *testing.T) {
	valid := Values{
		FieldAddress:        "Av. Colón 1234",
		FieldType:           "Apartment",
		FieldBaseRentAmount: "85000",
		FieldLeaseStartDate: "2025-01-01",
	}
	if errs := ValidatePropertyUnit(valid, en, now); !errs.Empty() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs := ValidatePropertyUnit(Values{FieldType: "Castle", FieldBaseRentAmount: "0", FieldLeaseStartDate: "2026-01-01"}, en, now)
	want := map[string]string{
		FieldAddress:        "Address is required",
		FieldType:           "Property type is not valid",
		FieldBaseRentAmount: "Base rent must be greater than 0",
		FieldLeaseStartDate: "Lease start date cannot be in the future",
	}
	for f, msg := range want {
		if errs[f] != msg {
			t.Fatalf("expected %q on %s, got %q", msg, f, errs[f])
		}
	}
}

func TestErrorMapMerge(t *testing.T) {
	local := ErrorMap{FieldAmount: "client message", FieldDescription: "too long"}
	merged := local.Merge(map[string]string{FieldAmount: "server message", FieldPropertyUnitID: "unit not found"})
	if merged[FieldAmount] != "server message" {
		t.Fatalf("server entry should overwrite same field, got %q", merged[FieldAmount])
	}
	if merged[FieldDescription] != "too long" {
		t.Fatalf("unrelated field should be kept")
	}
	if merged[FieldPropertyUnitID] != "unit not found" {
		t.Fatalf("new server field should be added")
	}

	var empty ErrorMap
	if got := empty.Merge(map[string]string{"a": "b"}); got["a"] != "b" {
		t.Fatalf("merge into nil map should allocate")
	}
}
