// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// AggregateTracker exposes the aggregates written inside the transaction.
	AggregateTracker interface {
		TrackedAggregates() []ports.TrackedAggregate
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// RouteUoW manages transactions for route-only operations.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// UoW spans drivers, routes and assignments. The assignment engine uses it
	// to change all three atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   r, err := uow.RouteRepository().GetForUpdate(ctx, routeID)
	//   drivers, err := uow.DriverRepository().GetAvailableForUpdate(ctx, 1)
	//   // ... dispatch, update, add assignment
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		RouteRepoFactory
		AssignmentRepoFactory
		AggregateTracker
	}

	UoWFactory interface {
		Create() UoW
	}
)
