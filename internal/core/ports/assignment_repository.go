package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/route"
)

// AssignmentRepository stores the assignment history. Records are append
// only.
type AssignmentRepository interface {
	// Add stores a new assignment and returns it with its assigned identity.
	// A second assignment for the same route fails with errs.ErrDuplicateKey.
	Add(ctx context.Context, aggregate *assignment.Assignment) (*assignment.Assignment, error)

	// GetByRoute returns errs.ErrObjectNotFound when the route has none.
	GetByRoute(ctx context.Context, routeID route.ID) (*assignment.Assignment, error)
}
