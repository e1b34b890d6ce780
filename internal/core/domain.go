package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and form format for calendar dates.
const DateLayout = "2006-01-02"

const (
	PaymentRent        PaymentType = "RENT"
	PaymentDeposit     PaymentType = "DEPOSIT"
	PaymentMaintenance PaymentType = "MAINTENANCE"
	PaymentUtility     PaymentType = "UTILITY"
	PaymentOther       PaymentType = "OTHER"
)

const (
	PropertyApartment PropertyType = "Apartment"
	PropertyHouse     PropertyType = "House"
	PropertyDuplex    PropertyType = "Duplex"
	PropertyTownhouse PropertyType = "Townhouse"
	PropertyStudio    PropertyType = "Studio"
	PropertyLoft      PropertyType = "Loft"
)

type (
	PaymentType  string
	PropertyType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// TenantRef is the tenant summary embedded in a property unit.
	TenantRef struct {
		ID        int64  `json:"id"`
		FullName  string `json:"fullName,omitempty"`
		FirstName string `json:"firstName,omitempty"`
		LastName  string `json:"lastName,omitempty"`
	}

	PropertyUnit struct {
		ID             int64        `json:"id"`
		Address        string       `json:"address"`
		Type           PropertyType `json:"type"`
		BaseRentAmount Money        `json:"baseRentAmount"`
		LeaseStartDate *Date        `json:"leaseStartDate"`
		Tenant         *TenantRef   `json:"tenant"`
	}

	Tenant struct {
		ID         int64  `json:"id,omitempty"`
		FullName   string `json:"fullName"`
		NationalID string `json:"nationalId"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
	}

	// Payment is write-only from the client side: created, never edited.
	Payment struct {
		PropertyUnitID int64
		Amount         Money
		PaymentDate    Date
		PaymentType    PaymentType
		Description    string
	}
)

var (
	ErrInvalidDay          = errors.New("invalid day")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrAmountPrecision     = errors.New("amount has more than two decimal places")
	ErrInvalidDate         = errors.New("invalid date")
	ErrMissingPropertyUnit = errors.New("missing property unit")
	ErrInvalidPaymentType  = errors.New("invalid payment type")
	ErrDescriptionTooLong  = errors.New("description too long")
)

// PaymentTypes lists payment types in display order.
var PaymentTypes = []PaymentType{PaymentRent, PaymentDeposit, PaymentMaintenance, PaymentUtility, PaymentOther}

// PropertyTypes lists property types in display order.
var PropertyTypes = []PropertyType{PropertyApartment, PropertyHouse, PropertyDuplex, PropertyTownhouse, PropertyStudio, PropertyLoft}

func (p PaymentType) IsValid() bool {
	for _, v := range PaymentTypes {
		if p == v {
			return true
		}
	}
	return false
}

// TranslationKey returns the dictionary key holding the display label.
func (p PaymentType) TranslationKey() string {
	return "paymentTypes." + string(p)
}

func (p PropertyType) IsValid() bool {
	for _, v := range PropertyTypes {
		if p == v {
			return true
		}
	}
	return false
}

// TranslationKey maps the type to its dictionary key (Apartment -> apartment).
func (p PropertyType) TranslationKey() string {
	return strings.ToLower(string(p))
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String formats the date as yyyy-MM-dd, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// AfterNow reports whether the calendar day is strictly after now,
// comparing the start of the day in now's location.
func (d Date) AfterNow(now time.Time) bool {
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	return start.After(now)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}
	// Backends sometimes send full timestamps; keep the calendar day.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// DisplayName returns the full name, or first and last name joined.
func (t TenantRef) DisplayName() string {
	if t.FullName != "" {
		return t.FullName
	}
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// Ref returns the summary form of the tenant.
func (t Tenant) Ref() TenantRef {
	return TenantRef{ID: t.ID, FullName: t.FullName}
}

// Occupied reports whether the unit has a tenant.
func (u PropertyUnit) Occupied() bool {
	return u.Tenant != nil
}

func (p Payment) Validate() error {
	if p.PropertyUnitID <= 0 {
		return ErrMissingPropertyUnit
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if err := p.PaymentDate.Validate(); err != nil {
		return err
	}
	if !p.PaymentType.IsValid() {
		return ErrInvalidPaymentType
	}
	if len([]rune(p.Description)) > 500 {
		return ErrDescriptionTooLong
	}
	return nil
}

type paymentWire struct {
	PropertyUnit struct {
		ID int64 `json:"id"`
	} `json:"propertyUnit"`
	Amount      Money       `json:"amount"`
	PaymentDate Date        `json:"paymentDate"`
	PaymentType PaymentType `json:"paymentType"`
	Description *string     `json:"description"`
}

// MarshalJSON produces the backend's payment body: the unit is nested
// and an empty description is sent as null.
func (p Payment) MarshalJSON() ([]byte, error) {
	var w paymentWire
	w.PropertyUnit.ID = p.PropertyUnitID
	w.Amount = p.Amount
	w.PaymentDate = p.PaymentDate
	w.PaymentType = p.PaymentType
	if desc := strings.TrimSpace(p.Description); desc != "" {
		w.Description = &desc
	}
	return json.Marshal(w)
}

func (p *Payment) UnmarshalJSON(b []byte) error {
	var w paymentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	p.PropertyUnitID = w.PropertyUnit.ID
	p.Amount = w.Amount
	p.PaymentDate = w.PaymentDate
	p.PaymentType = w.PaymentType
	p.Description = ""
	if w.Description != nil {
		p.Description = *w.Description
	}
	return nil
}
