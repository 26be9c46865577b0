package route

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a route.
//
//	Unassigned ──> Assigned
//
// Assigned is final in the current scope: there is no cancellation and no
// reassignment.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Unassigned
	Assigned
)

const (
	unassignedText = "unassigned"
	assignedText   = "assigned"
)

// ParseStatus converts the persisted text form back into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case unassignedText:
		return Unassigned, nil
	case assignedText:
		return Assigned, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a route status", s))
	}
}

func (s Status) Validate() error {
	if s != Unassigned && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the text stored in the routes.status column.
func (s Status) String() string {
	switch s {
	case Unassigned:
		return unassignedText
	case Assigned:
		return assignedText
	default:
		return "unknown"
	}
}

// Assign is the only transition: Unassigned -> Assigned.
func (s Status) Assign() (Status, error) {
	if s != Unassigned {
		return Unknown, ErrRouteIsAlreadyAssigned
	}
	return Assigned, nil
}

// ValidateCanHaveDriver checks that a driver reference is present exactly when
// the route is assigned.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s route cannot reference a driver", s),
		)
	}
	if !hasDriver && s == Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s route must reference a driver", s),
		)
	}
	return nil
}
