package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"proppilot/internal/amqp"
	"proppilot/internal/backend"
	"proppilot/internal/core"
	"proppilot/internal/metrics"
)

// Publisher sends activity events. Implemented by *amqp.Client.
type Publisher interface {
	PublishActivity(ctx context.Context, ev *amqp.ActivityEvent) error
	Close() error
}

// RentalService fronts the rental backend. Writes accepted by the backend
// are announced through the optional publisher; identical concurrent list
// fetches share one backend call.
type RentalService struct {
	backend   backend.Backend
	publisher Publisher
	cleanup   backend.CleanupFunc
	group     singleflight.Group
}

func NewRentalService(b backend.Backend, publisher Publisher) *RentalService {
	return &RentalService{
		backend:   b,
		publisher: publisher,
	}
}

// WithCleanup registers a function run by Close to release the backend.
func (s *RentalService) WithCleanup(fn backend.CleanupFunc) *RentalService {
	s.cleanup = fn
	return s
}

func (s *RentalService) ListPropertyUnits(ctx context.Context) ([]core.PropertyUnit, error) {
	v, err, _ := s.group.Do("property-units", func() (any, error) {
		return s.backend.ListPropertyUnits(ctx)
	})
	if err != nil {
		return nil, err
	}
	return cloneSlice(v.([]core.PropertyUnit)), nil
}

func (s *RentalService) SearchPropertyUnits(ctx context.Context, address string) ([]core.PropertyUnit, error) {
	v, err, _ := s.group.Do("property-units?address="+address, func() (any, error) {
		return s.backend.SearchPropertyUnits(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return cloneSlice(v.([]core.PropertyUnit)), nil
}

func (s *RentalService) CreatePropertyUnit(ctx context.Context, u core.PropertyUnit) (core.PropertyUnit, error) {
	created, err := s.backend.CreatePropertyUnit(ctx, u)
	if err != nil {
		return core.PropertyUnit{}, err
	}
	s.publish(ctx, amqp.EventPropertyCreated, created.ID)
	return created, nil
}

func (s *RentalService) DeletePropertyUnit(ctx context.Context, id int64) error {
	if err := s.backend.DeletePropertyUnit(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EventPropertyDeleted, id)
	return nil
}

func (s *RentalService) ListTenants(ctx context.Context) ([]core.Tenant, error) {
	v, err, _ := s.group.Do("tenants", func() (any, error) {
		return s.backend.ListTenants(ctx)
	})
	if err != nil {
		return nil, err
	}
	return cloneSlice(v.([]core.Tenant)), nil
}

func (s *RentalService) CreateTenant(ctx context.Context, t core.Tenant) (core.Tenant, error) {
	created, err := s.backend.CreateTenant(ctx, t)
	if err != nil {
		return core.Tenant{}, err
	}
	s.publish(ctx, amqp.EventTenantCreated, created.ID)
	return created, nil
}

func (s *RentalService) UpdateTenant(ctx context.Context, t core.Tenant) (core.Tenant, error) {
	updated, err := s.backend.UpdateTenant(ctx, t)
	if err != nil {
		return core.Tenant{}, err
	}
	s.publish(ctx, amqp.EventTenantUpdated, t.ID)
	return updated, nil
}

func (s *RentalService) DeleteTenant(ctx context.Context, id int64) error {
	if err := s.backend.DeleteTenant(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EventTenantDeleted, id)
	return nil
}

func (s *RentalService) CreatePayment(ctx context.Context, p core.Payment) error {
	if err := s.backend.CreatePayment(ctx, p); err != nil {
		return err
	}
	s.publish(ctx, amqp.EventPaymentRegistered, p.PropertyUnitID)
	return nil
}

// Summary fetches units and tenants concurrently and summarizes them.
func (s *RentalService) Summary(ctx context.Context) (core.Summary, error) {
	var (
		units   []core.PropertyUnit
		tenants []core.Tenant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		units, err = s.ListPropertyUnits(gctx)
		if err != nil {
			return fmt.Errorf("list property units: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tenants, err = s.ListTenants(gctx)
		if err != nil {
			return fmt.Errorf("list tenants: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(units, tenants), nil
}

// Ready reports whether the backend answers a list request.
func (s *RentalService) Ready(ctx context.Context) error {
	if _, err := s.ListPropertyUnits(ctx); err != nil {
		return fmt.Errorf("backend not ready: %w", err)
	}
	return nil
}

func (s *RentalService) publish(ctx context.Context, eventType string, id int64) {
	if s.publisher == nil {
		metrics.ObserveEventPublished("skipped")
		return
	}
	if err := s.publisher.PublishActivity(ctx, amqp.NewActivityEvent(eventType, id)); err != nil {
		metrics.ObserveEventPublished("error")
		// Don't fail the request - the backend already accepted the change
		slog.WarnContext(ctx, "Failed to publish activity event",
			"type", eventType,
			"id", id,
			"error", err)
		return
	}
	metrics.ObserveEventPublished("success")
}

// Close releases the publisher and the backend.
func (s *RentalService) Close() error {
	var errs []error

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if s.cleanup != nil {
		if err := s.cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("backend: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close rental service: %v", errs)
	}

	return nil
}

// cloneSlice copies a shared singleflight result so callers can mutate it.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

var _ backend.Backend = (*RentalService)(nil)
