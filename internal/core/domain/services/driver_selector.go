package services

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
)

// ErrNoAvailableDriver is returned when none of the candidates can take a
// route.
var ErrNoAvailableDriver = errors.New("no available driver")

// DriverSelector ranks candidate drivers for a route. Implementations must
// only return a driver from the given slice.
type DriverSelector interface {
	Select(candidates []*driver.Driver) (*driver.Driver, error)
}

// FirstRegisteredSelector picks the available driver that registered first,
// i.e. the one with the lowest registration sequence.
//
// Example:
//
//	selector := services.NewFirstRegisteredSelector()
//	d, err := selector.Select(candidates)
//	if errors.Is(err, services.ErrNoAvailableDriver) {
//	    // leave the route unassigned
//	}
type FirstRegisteredSelector struct{}

func NewFirstRegisteredSelector() FirstRegisteredSelector {
	return FirstRegisteredSelector{}
}

// Select skips unavailable candidates. Ties on registration sequence (only
// possible for drivers that were never persisted) keep slice order.
func (FirstRegisteredSelector) Select(candidates []*driver.Driver) (*driver.Driver, error) {
	var best *driver.Driver

	for _, d := range candidates {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.IsAvailable() {
			continue
		}
		if best == nil || d.RegistrationSeq() < best.RegistrationSeq() {
			best = d
		}
	}

	if best == nil {
		return nil, ErrNoAvailableDriver
	}
	return best, nil
}
