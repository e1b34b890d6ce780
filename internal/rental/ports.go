// Package rental defines the outbound ports to the rental backend and the
// error taxonomy every adapter reports through.
package rental

import (
	"context"

	"proppilot/internal/core"
)

// Ports for outbound adapters.
type (
	PropertyUnitReader interface {
		ListPropertyUnits(ctx context.Context) ([]core.PropertyUnit, error)
		// SearchPropertyUnits matches units by address fragment.
		SearchPropertyUnits(ctx context.Context, address string) ([]core.PropertyUnit, error)
	}

	PropertyUnitWriter interface {
		// CreatePropertyUnit returns the unit with the id assigned by the backend.
		CreatePropertyUnit(ctx context.Context, u core.PropertyUnit) (core.PropertyUnit, error)
		DeletePropertyUnit(ctx context.Context, id int64) error
	}

	TenantReader interface {
		ListTenants(ctx context.Context) ([]core.Tenant, error)
	}

	TenantWriter interface {
		CreateTenant(ctx context.Context, t core.Tenant) (core.Tenant, error)
		UpdateTenant(ctx context.Context, t core.Tenant) (core.Tenant, error)
		DeleteTenant(ctx context.Context, id int64) error
	}

	PaymentWriter interface {
		CreatePayment(ctx context.Context, p core.Payment) error
	}
)
