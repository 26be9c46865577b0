package ports

import (
	"context"

	"dispatch/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
type RouteRepository interface {
	// Add stores a new route and returns it with its assigned identity.
	Add(ctx context.Context, aggregate *route.Route) (*route.Route, error)

	// Update persists status and assigned driver of an existing route.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get returns errs.ErrObjectNotFound for an unknown identity.
	Get(ctx context.Context, id route.ID) (*route.Route, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	// Concurrent callers for the same route wait for each other.
	GetForUpdate(ctx context.Context, id route.ID) (*route.Route, error)

	// GetUnassigned returns up to limit unassigned routes, oldest first.
	GetUnassigned(ctx context.Context, limit int) ([]*route.Route, error)
}
