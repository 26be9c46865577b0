package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignRouteCommandIsNotConstructed = errors.New(
	"AssignRouteCommand must be created via NewAssignRouteCommand constructor",
)

// AssignRouteCommand asks the assignment engine to find a driver for one
// persisted route.
type AssignRouteCommand struct {
	routeID route.ID

	guard guard.ConstructorGuard
}

func NewAssignRouteCommand(routeID route.ID) (AssignRouteCommand, error) {
	if routeID <= 0 {
		return AssignRouteCommand{}, errs.NewValueIsOutOfRangeError("route id", routeID, 1, "max int64")
	}
	return AssignRouteCommand{
		routeID: routeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRouteCommand) Validate() error {
	return c.guard.Validate(ErrAssignRouteCommandIsNotConstructed)
}

func (c AssignRouteCommand) RouteID() route.ID {
	return c.routeID
}

// AssignResult reports whether the route ended up with a driver. DriverID is
// set exactly when Assigned is true.
type AssignResult struct {
	Assigned bool
	DriverID *driver.ID
}
