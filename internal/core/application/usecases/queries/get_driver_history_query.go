package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverHistoryQueryIsNotConstructed = errors.New(
	"GetDriverHistoryQuery must be created via NewGetDriverHistoryQuery constructor",
)

// GetDriverHistoryQuery lists the assignments of one driver, newest first.
type GetDriverHistoryQuery struct {
	driverID driver.ID

	guard guard.ConstructorGuard
}

func NewGetDriverHistoryQuery(driverID string) (GetDriverHistoryQuery, error) {
	id, err := driver.NewID(driverID)
	if err != nil {
		return GetDriverHistoryQuery{}, err
	}
	return GetDriverHistoryQuery{driverID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverHistoryQueryIsNotConstructed)
}

func (q GetDriverHistoryQuery) DriverID() driver.ID {
	return q.driverID
}

type GetDriverHistoryQueryResponse struct {
	Driver  DriverSummary
	History []HistoryEntry
}
