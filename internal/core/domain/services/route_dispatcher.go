package services

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/route"
)

// RouteDispatcher is the domain service that hands a route to a driver.
//
// Business rules:
//   - the route must be persisted and unassigned
//   - the driver must be available
//   - on success the driver is occupied, the route is assigned to it and a
//     new open Assignment is returned
//
// Dispatch checks every precondition before mutating anything, so a failed
// call leaves both aggregates untouched.
//
// Example usage:
//
//	dispatcher := services.NewRouteDispatcher()
//	a, err := dispatcher.Dispatch(r, d, time.Now())
//	if errors.Is(err, route.ErrRouteIsAlreadyAssigned) {
//	    return
//	}
type RouteDispatcher struct{}

func NewRouteDispatcher() RouteDispatcher {
	return RouteDispatcher{}
}

func (RouteDispatcher) Dispatch(r *route.Route, d *driver.Driver, now time.Time) (*assignment.Assignment, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := r.ValidateAssign(); err != nil {
		return nil, err
	}
	if !d.IsAvailable() {
		return nil, driver.ErrDriverIsNotAvailable
	}

	a, err := assignment.NewAssignment(d.ID(), r.ID(), now)
	if err != nil {
		return nil, err
	}

	if err = d.Occupy(); err != nil {
		return nil, err
	}
	if err = r.Assign(d.ID()); err != nil {
		return nil, err
	}

	return a, nil
}
