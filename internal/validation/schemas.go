package validation

import (
	"time"

	"proppilot/internal/core"
)

// Payment form fields.
const (
	FieldPropertyUnitID = "propertyUnitId"
	FieldAmount         = "amount"
	FieldPaymentDate    = "paymentDate"
	FieldPaymentType    = "paymentType"
	FieldDescription    = "description"
)

// Tenant form fields.
const (
	FieldFullName   = "fullName"
	FieldNationalID = "nationalId"
	FieldEmail      = "email"
	FieldPhone      = "phone"
)

// Property unit form fields.
const (
	FieldAddress        = "address"
	FieldType           = "type"
	FieldBaseRentAmount = "baseRentAmount"
	FieldLeaseStartDate = "leaseStartDate"
)

// MaxPaymentCents is the largest accepted payment, 999999.99.
const MaxPaymentCents = 99999999

// MaxDescriptionLen is the longest accepted payment description.
const MaxDescriptionLen = 500

// PaymentSchema describes the payment registration form.
var PaymentSchema = Schema{
	{
		Name: FieldPropertyUnitID, Kind: KindID, Required: true,
		RequiredKey: "validation.propertyUnitRequired",
		InvalidKey:  "validation.propertyUnitInvalid",
	},
	{
		Name: FieldAmount, Kind: KindDecimal, Required: true,
		RequiredKey:  "validation.amountRequired",
		PositiveKey:  "validation.amountPositive",
		PrecisionKey: "validation.amountPrecision",
		MaxCents:     MaxPaymentCents,
		MaxKey:       "validation.amountMax",
	},
	{
		Name: FieldPaymentDate, Kind: KindDate, Required: true,
		RequiredKey: "validation.paymentDateRequired",
		InvalidKey:  "validation.paymentDateRequired",
		NotFuture:   true,
		FutureKey:   "validation.paymentDateFuture",
	},
	{Name: FieldPaymentType, Kind: KindChoice, Choices: paymentTypeChoices(), InvalidKey: "validation.paymentTypeInvalid"},
	{Name: FieldDescription, Kind: KindText, MaxLen: MaxDescriptionLen, MaxLenKey: "validation.descriptionTooLong"},
}

// TenantSchema describes the tenant create and edit form.
var TenantSchema = Schema{
	{Name: FieldFullName, Kind: KindText, Required: true, RequiredKey: "validation.fullNameRequired"},
	{Name: FieldNationalID, Kind: KindText, Required: true, RequiredKey: "validation.nationalIdRequired"},
	{Name: FieldEmail, Kind: KindEmail, Required: true, RequiredKey: "validation.emailRequired", InvalidKey: "validation.emailInvalid"},
	{Name: FieldPhone, Kind: KindText, Required: true, RequiredKey: "validation.phoneRequired"},
}

// PropertyUnitSchema describes the add-property dialog.
var PropertyUnitSchema = Schema{
	{Name: FieldAddress, Kind: KindText, Required: true, RequiredKey: "validation.addressRequired"},
	{
		Name: FieldType, Kind: KindChoice, Required: true, Choices: propertyTypeChoices(),
		RequiredKey: "validation.propertyTypeRequired",
		InvalidKey:  "validation.propertyTypeInvalid",
	},
	{
		Name: FieldBaseRentAmount, Kind: KindDecimal, Required: true,
		RequiredKey:  "validation.baseRentRequired",
		PositiveKey:  "validation.baseRentPositive",
		PrecisionKey: "validation.amountPrecision",
	},
	{
		Name: FieldLeaseStartDate, Kind: KindDate, Required: true,
		RequiredKey: "validation.leaseStartRequired",
		InvalidKey:  "validation.leaseStartRequired",
		NotFuture:   true,
		FutureKey:   "validation.leaseStartFuture",
	},
}

// ValidatePayment checks a payment form.
func ValidatePayment(values Values, tr Translator, now time.Time) ErrorMap {
	return PaymentSchema.Validate(values, tr, now)
}

// ValidateTenant checks a tenant form. Uniqueness of the national ID and
// email is left to the backend.
func ValidateTenant(values Values, tr Translator) ErrorMap {
	return TenantSchema.Validate(values, tr, time.Time{})
}

// ValidatePropertyUnit checks the add-property form.
func ValidatePropertyUnit(values Values, tr Translator, now time.Time) ErrorMap {
	return PropertyUnitSchema.Validate(values, tr, now)
}

func paymentTypeChoices() []string {
	out := make([]string, len(core.PaymentTypes))
	for i, p := range core.PaymentTypes {
		out[i] = string(p)
	}
	return out
}

func propertyTypeChoices() []string {
	out := make([]string, len(core.PropertyTypes))
	for i, p := range core.PropertyTypes {
		out[i] = string(p)
	}
	return out
}
