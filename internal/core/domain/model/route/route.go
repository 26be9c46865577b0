package route

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrRouteIsNotConstructed is returned when a Route was not created through
	// NewRoute or RestoreRoute.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

	// ErrRouteIsAlreadyAssigned is returned when assigning a route twice.
	ErrRouteIsAlreadyAssigned = errors.New("route is already assigned")
)

// ID is the storage assigned identity of a route. Identities increase
// strictly and are never reused.
type ID int64

// Route is a transport task from one place to another.
//
// A route starts Unassigned with no driver and is assigned at most once; the
// assigned driver is set if and only if the status is Assigned.
type Route struct {
	id               ID
	start            kernel.Place
	end              kernel.Place
	distance         kernel.Distance
	estimatedTime    kernel.Minutes
	status           Status
	assignedDriverID *driver.ID

	guard guard.ConstructorGuard
}

// NewRoute creates an unassigned route that has no identity until persisted.
func NewRoute(start, end kernel.Place, distance kernel.Distance, estimatedTime kernel.Minutes) (*Route, error) {
	if err := errors.Join(start.Validate(), end.Validate()); err != nil {
		return nil, err
	}
	if distance < 0 {
		return nil, errs.NewValueIsOutOfRangeError("distance", distance, 0, "max float64")
	}
	if estimatedTime < 0 {
		return nil, errs.NewValueIsOutOfRangeError("estimated time", estimatedTime, 0, "max int32")
	}

	return &Route{
		start:         start,
		end:           end,
		distance:      distance,
		estimatedTime: estimatedTime,
		status:        Unassigned,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreRoute rebuilds a persisted route. It rejects rows whose status and
// driver reference disagree.
func RestoreRoute(
	id ID,
	start, end kernel.Place,
	distance kernel.Distance,
	estimatedTime kernel.Minutes,
	status Status,
	assignedDriverID *driver.ID,
) (*Route, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("route id", id, 1, "max int64")
	}

	r, err := NewRoute(start, end, distance, estimatedTime)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), status.ValidateCanHaveDriver(assignedDriverID != nil)); err != nil {
		return nil, err
	}

	r.id = id
	r.status = status
	if assignedDriverID != nil {
		driverID := *assignedDriverID
		r.assignedDriverID = &driverID
	}
	return r, nil
}

func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r *Route) ID() ID {
	return r.id
}

func (r *Route) Start() kernel.Place {
	return r.start
}

func (r *Route) End() kernel.Place {
	return r.end
}

func (r *Route) Distance() kernel.Distance {
	return r.distance
}

func (r *Route) EstimatedTime() kernel.Minutes {
	return r.estimatedTime
}

func (r *Route) Status() Status {
	return r.status
}

func (r *Route) IsAssigned() bool {
	return r.status == Assigned
}

// AssignedDriverID returns a copy of the assigned driver's identity, or nil
// while the route is unassigned.
func (r *Route) AssignedDriverID() *driver.ID {
	if r.assignedDriverID == nil {
		return nil
	}
	id := *r.assignedDriverID
	return &id
}

// ValidateAssign reports whether Assign would succeed, without changing the
// route.
func (r *Route) ValidateAssign() error {
	_, err := r.status.Assign()
	return err
}

// Assign hands the route to a driver. It fails with ErrRouteIsAlreadyAssigned
// if the route already has one.
func (r *Route) Assign(driverID driver.ID) error {
	if _, err := driver.NewID(driverID.String()); err != nil {
		return err
	}

	next, err := r.status.Assign()
	if err != nil {
		return err
	}

	r.status = next
	r.assignedDriverID = &driverID
	return nil
}
