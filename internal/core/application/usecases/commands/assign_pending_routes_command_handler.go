package commands

import (
	"context"
)

// AssignPendingRoutesCommandHandler walks unassigned routes oldest first and
// runs the assignment engine on each one. It stops at the first route that
// finds no driver, since every later route would find none either.
//
// Example:
//
//	cmd, _ := NewAssignPendingRoutesCommand(DefaultPendingBatchSize)
//	assigned, err := handler.Handle(ctx, cmd)
type AssignPendingRoutesCommandHandler struct {
	uowFactory RouteUoWFactory
	assigner   RouteAssigner
}

func NewAssignPendingRoutesCommandHandler(
	uowFactory RouteUoWFactory,
	assigner RouteAssigner,
) AssignPendingRoutesCommandHandler {
	return AssignPendingRoutesCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
	}
}

// Handle returns how many routes got a driver during this run.
func (h AssignPendingRoutesCommandHandler) Handle(ctx context.Context, cmd AssignPendingRoutesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.uowFactory.Create().RouteRepository().GetUnassigned(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, r := range pending {
		if err = ctx.Err(); err != nil {
			return assigned, err
		}

		assignCmd, cmdErr := NewAssignRouteCommand(r.ID())
		if cmdErr != nil {
			return assigned, cmdErr
		}

		result, assignErr := h.assigner.Handle(ctx, assignCmd)
		if assignErr != nil {
			return assigned, assignErr
		}
		if !result.Assigned {
			break
		}
		assigned++
	}

	return assigned, nil
}
