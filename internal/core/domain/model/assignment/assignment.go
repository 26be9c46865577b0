package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not created
// through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// ID is the storage assigned identity of an assignment.
type ID int64

// Assignment records that a driver was given a route at a point in time.
type Assignment struct {
	id          ID
	driverID    driver.ID
	routeID     route.ID
	assignedAt  time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewAssignment creates an assignment that has no identity until persisted.
// assignedAt is normalised to UTC.
func NewAssignment(driverID driver.ID, routeID route.ID, assignedAt time.Time) (*Assignment, error) {
	var errList []error
	if _, err := driver.NewID(driverID.String()); err != nil {
		errList = append(errList, err)
	}
	if routeID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("route id", routeID, 1, "max int64"))
	}
	if assignedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("assigned at"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Assignment{
		driverID:   driverID,
		routeID:    routeID,
		assignedAt: assignedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment rebuilds a persisted assignment.
func RestoreAssignment(
	id ID,
	driverID driver.ID,
	routeID route.ID,
	assignedAt time.Time,
	completedAt *time.Time,
) (*Assignment, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("assignment id", id, 1, "max int64")
	}

	a, err := NewAssignment(driverID, routeID, assignedAt)
	if err != nil {
		return nil, err
	}

	a.id = id
	if completedAt != nil {
		if completedAt.Before(a.assignedAt) {
			return nil, errs.NewValueIsInvalidError("completed at")
		}
		c := completedAt.UTC()
		a.completedAt = &c
	}
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() ID {
	return a.id
}

func (a *Assignment) DriverID() driver.ID {
	return a.driverID
}

func (a *Assignment) RouteID() route.ID {
	return a.routeID
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// CompletedAt is nil while the assignment is open.
func (a *Assignment) CompletedAt() *time.Time {
	if a.completedAt == nil {
		return nil
	}
	c := *a.completedAt
	return &c
}

func (a *Assignment) IsOpen() bool {
	return a.completedAt == nil
}

// RouteAssigned builds the event announcing this assignment. It needs the
// persisted identity, so it is only meaningful after the assignment was
// stored.
func (a *Assignment) RouteAssigned() RouteAssigned {
	return RouteAssigned{
		AssignmentID: a.id,
		RouteID:      a.routeID,
		DriverID:     a.driverID,
		AssignedAt:   a.assignedAt,
	}
}
