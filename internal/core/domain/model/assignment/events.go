package assignment

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/route"
)

// RouteAssignedEventName is the routing key and type name of RouteAssigned.
const RouteAssignedEventName = "route.assigned"

// RouteAssigned is published after the transaction that created an
// assignment has committed.
type RouteAssigned struct {
	AssignmentID ID        `json:"assignmentId"`
	RouteID      route.ID  `json:"routeId"`
	DriverID     driver.ID `json:"driverId"`
	AssignedAt   time.Time `json:"assignedAt"`
}

func (RouteAssigned) Name() string {
	return RouteAssignedEventName
}
