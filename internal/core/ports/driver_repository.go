// Package ports defines the contracts between the application core and its
// infrastructure: repositories, the unit of work and event publishing.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver. It fails with errs.ErrDuplicateKey when the
	// identity is taken and never stores a partial record.
	Add(ctx context.Context, aggregate *driver.Driver) (*driver.Driver, error)

	// Update persists the availability of an existing driver.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get returns errs.ErrObjectNotFound for an unknown identity.
	Get(ctx context.Context, id driver.ID) (*driver.Driver, error)

	// GetAvailableForUpdate returns up to limit available drivers in
	// registration order and row-locks them until the transaction ends.
	// Rows locked by other transactions are skipped, not waited for.
	//
	// Must run inside a transaction.
	GetAvailableForUpdate(ctx context.Context, limit int) ([]*driver.Driver, error)
}
