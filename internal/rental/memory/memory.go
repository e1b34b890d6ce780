// Package memory is an in-process rental backend for development and
// tests. It mimics the REST backend's observable rules: ids are assigned
// on create, national IDs and emails are unique, and payments must
// reference an existing unit.
package memory

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"proppilot/internal/core"
	"proppilot/internal/rental"
)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	units    map[int64]core.PropertyUnit
	tenants  map[int64]core.Tenant
	payments []core.Payment
}

func New(units []core.PropertyUnit, tenants []core.Tenant) *Store {
	s := &Store{
		units:   make(map[int64]core.PropertyUnit),
		tenants: make(map[int64]core.Tenant),
	}
	for _, u := range units {
		s.units[u.ID] = u
		s.bump(u.ID)
	}
	for _, t := range tenants {
		s.tenants[t.ID] = t
		s.bump(t.ID)
	}
	return s
}

// NewFromFiles seeds the store from property_units.json and tenants.json
// under base, falling back to a small built-in portfolio.
func NewFromFiles(base string) *Store {
	units := readJSON[core.PropertyUnit](filepath.Join(base, "property_units.json"))
	tenants := readJSON[core.Tenant](filepath.Join(base, "tenants.json"))
	if len(units) == 0 && len(tenants) == 0 {
		units, tenants = defaultSeed()
	}
	return New(units, tenants)
}

func (s *Store) bump(id int64) {
	if id > s.nextID {
		s.nextID = id
	}
}

func (s *Store) ListPropertyUnits(_ context.Context) ([]core.PropertyUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedUnits(func(core.PropertyUnit) bool { return true }), nil
}

// SearchPropertyUnits matches a case-insensitive address fragment.
func (s *Store) SearchPropertyUnits(_ context.Context, address string) ([]core.PropertyUnit, error) {
	needle := strings.ToLower(strings.TrimSpace(address))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedUnits(func(u core.PropertyUnit) bool {
		return strings.Contains(strings.ToLower(u.Address), needle)
	}), nil
}

func (s *Store) sortedUnits(keep func(core.PropertyUnit) bool) []core.PropertyUnit {
	out := make([]core.PropertyUnit, 0, len(s.units))
	for _, u := range s.units {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CreatePropertyUnit(_ context.Context, u core.PropertyUnit) (core.PropertyUnit, error) {
	fields := map[string]string{}
	if strings.TrimSpace(u.Address) == "" {
		fields["address"] = "Address is required"
	}
	if !u.Type.IsValid() {
		fields["type"] = "Unknown property type"
	}
	if u.BaseRentAmount.Validate() != nil {
		fields["baseRentAmount"] = "Base rent must be positive"
	}
	if len(fields) > 0 {
		return core.PropertyUnit{}, validationError(fields)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	u.Tenant = nil
	s.units[u.ID] = u
	return u, nil
}

func (s *Store) DeletePropertyUnit(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[id]; !ok {
		return notFound("Property unit not found")
	}
	delete(s.units, id)
	return nil
}

func (s *Store) ListTenants(_ context.Context) ([]core.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateTenant(_ context.Context, t core.Tenant) (core.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUnique(t, 0); err != nil {
		return core.Tenant{}, err
	}
	s.nextID++
	t.ID = s.nextID
	s.tenants[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTenant(_ context.Context, t core.Tenant) (core.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.ID]; !ok {
		return core.Tenant{}, notFound("Tenant not found")
	}
	if err := s.checkUnique(t, t.ID); err != nil {
		return core.Tenant{}, err
	}
	s.tenants[t.ID] = t
	for id, u := range s.units {
		if u.Tenant != nil && u.Tenant.ID == t.ID {
			ref := t.Ref()
			u.Tenant = &ref
			s.units[id] = u
		}
	}
	return t, nil
}

func (s *Store) DeleteTenant(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[id]; !ok {
		return notFound("Tenant not found")
	}
	delete(s.tenants, id)
	for uid, u := range s.units {
		if u.Tenant != nil && u.Tenant.ID == id {
			u.Tenant = nil
			s.units[uid] = u
		}
	}
	return nil
}

func (s *Store) checkUnique(t core.Tenant, self int64) error {
	for id, other := range s.tenants {
		if id == self {
			continue
		}
		if strings.EqualFold(other.NationalID, t.NationalID) {
			return conflict(rental.CodeDuplicateNationalID, "Tenant with national ID "+t.NationalID+" already exists")
		}
		if strings.EqualFold(other.Email, t.Email) {
			return conflict(rental.CodeDuplicateEmail, "Tenant with email "+t.Email+" already exists")
		}
	}
	return nil
}

// CreatePayment records the payment after checking the unit exists.
func (s *Store) CreatePayment(_ context.Context, p core.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[p.PropertyUnitID]; !ok {
		return validationError(map[string]string{"propertyUnitId": "Property unit not found"})
	}
	if err := p.Validate(); err != nil {
		return &rental.Error{Kind: rental.KindGeneric, Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}
	s.payments = append(s.payments, p)
	return nil
}

// Payments returns the payments recorded so far.
func (s *Store) Payments() []core.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Payment(nil), s.payments...)
}

func validationError(fields map[string]string) *rental.Error {
	return &rental.Error{
		Kind:        rental.KindValidation,
		Status:      http.StatusBadRequest,
		Code:        rental.CodeValidation,
		Message:     "Validation failed",
		FieldErrors: fields,
	}
}

func conflict(code, message string) *rental.Error {
	e := rental.Conflict(code, message)
	e.Status = http.StatusConflict
	return e
}

func notFound(message string) *rental.Error {
	return &rental.Error{Kind: rental.KindGeneric, Status: http.StatusNotFound, Message: message}
}

func readJSON[T any](path string) []T {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func defaultSeed() ([]core.PropertyUnit, []core.Tenant) {
	tenants := []core.Tenant{
		{ID: 1, FullName: "María González", NationalID: "27-30111222-4", Email: "maria.gonzalez@example.com", Phone: "+54 351 555-0101"},
		{ID: 2, FullName: "Carlos Rodríguez", NationalID: "20-28999888-1", Email: "carlos.rodriguez@example.com", Phone: "+54 351 555-0102"},
	}
	lease := func(y, m, d int) *core.Date {
		date := core.NewDate(y, m, d)
		return &date
	}
	ref := func(t core.Tenant) *core.TenantRef {
		r := t.Ref()
		return &r
	}
	units := []core.PropertyUnit{
		{ID: 3, Address: "Av. Colón 1234, Nueva Córdoba", Type: core.PropertyApartment, BaseRentAmount: core.Money{Cents: 8500000}, LeaseStartDate: lease(2024, 3, 1), Tenant: ref(tenants[0])},
		{ID: 4, Address: "Bv. San Juan 456, Centro", Type: core.PropertyStudio, BaseRentAmount: core.Money{Cents: 5500000}},
		{ID: 5, Address: "Rondeau 789, Güemes", Type: core.PropertyHouse, BaseRentAmount: core.Money{Cents: 12000000}, LeaseStartDate: lease(2023, 11, 15), Tenant: ref(tenants[1])},
	}
	return units, tenants
}
