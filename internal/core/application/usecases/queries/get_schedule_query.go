// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregates and read flat rows straight from the tables.
package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetScheduleQueryIsNotConstructed = errors.New(
	"GetScheduleQuery must be created via NewGetScheduleQuery constructor",
)

// GetScheduleQuery lists every route with its assigned driver.
type GetScheduleQuery struct {
	guard guard.ConstructorGuard
}

func NewGetScheduleQuery() GetScheduleQuery {
	return GetScheduleQuery{guard: guard.NewConstructorGuard()}
}

func (q GetScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduleQueryIsNotConstructed)
}

// ScheduleEntry pairs a route with its driver; Driver is nil while the route
// is unassigned.
type ScheduleEntry struct {
	Route  RouteView
	Driver *DriverSummary
}
