package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command so concurrent
// commands never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TrackedAggregate is an aggregate written through a repository of the unit
// of work.
type TrackedAggregate struct {
	ID        any
	Aggregate any
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Repositories are bound to the transaction started by Begin, or to the
	// plain connection when none is active.
	DriverRepository() DriverRepository
	RouteRepository() RouteRepository
	AssignmentRepository() AssignmentRepository

	// TrackedAggregates lists aggregates added or updated so far, in write
	// order.
	TrackedAggregates() []TrackedAggregate
}
