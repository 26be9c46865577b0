package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/route"
)

// RouteAssigner is the assignment engine as seen by its callers.
type RouteAssigner interface {
	Handle(ctx context.Context, cmd AssignRouteCommand) (AssignResult, error)
}

// CreateRouteCommandHandler stores a route and immediately tries to assign
// it. The insert commits on its own, so a failed assignment attempt leaves a
// persisted unassigned route behind instead of losing the submission.
type CreateRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	assigner   RouteAssigner
	logger     *slog.Logger
}

func NewCreateRouteCommandHandler(
	uowFactory RouteUoWFactory,
	assigner RouteAssigner,
	logger *slog.Logger,
) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		logger:     logger.With("component", "create_route_command_handler"),
	}
}

// Handle returns the route with its final status: Assigned when a driver was
// free, Unassigned otherwise.
func (h CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) (*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	stored, err := h.insert(ctx, cmd)
	if err != nil {
		return nil, err
	}

	assignCmd, err := NewAssignRouteCommand(stored.ID())
	if err != nil {
		return nil, err
	}

	result, err := h.assigner.Handle(ctx, assignCmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "Route stored but assignment attempt failed",
			"route_id", int64(stored.ID()), "error", err)
		return stored, nil
	}

	if result.Assigned && result.DriverID != nil {
		if err = stored.Assign(*result.DriverID); err != nil {
			return nil, err
		}
	}

	return stored, nil
}

func (h CreateRouteCommandHandler) insert(ctx context.Context, cmd CreateRouteCommand) (*route.Route, error) {
	r, err := route.NewRoute(cmd.Start(), cmd.End(), cmd.Distance(), cmd.EstimatedTime())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stored, err := uow.RouteRepository().Add(ctx, r)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}
