package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultPendingBatchSize bounds how many unassigned routes one backlog run
// looks at.
const DefaultPendingBatchSize = 100

var ErrAssignPendingRoutesCommandIsNotConstructed = errors.New(
	"AssignPendingRoutesCommand must be created via NewAssignPendingRoutesCommand constructor",
)

// AssignPendingRoutesCommand retries assignment for routes that were stored
// while no driver was free.
type AssignPendingRoutesCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewAssignPendingRoutesCommand(batchSize int) (AssignPendingRoutesCommand, error) {
	if batchSize < 1 {
		return AssignPendingRoutesCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "max int")
	}
	return AssignPendingRoutesCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPendingRoutesCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingRoutesCommandIsNotConstructed)
}

func (c AssignPendingRoutesCommand) BatchSize() int {
	return c.batchSize
}
