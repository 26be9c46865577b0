package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
)

// EventPublisher announces committed assignments to other systems. Delivery
// is best effort: callers log failures and carry on.
type EventPublisher interface {
	PublishRouteAssigned(ctx context.Context, event assignment.RouteAssigned) error
}
