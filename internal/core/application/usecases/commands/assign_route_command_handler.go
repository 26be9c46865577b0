package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// DefaultCandidateWindow is how many available drivers are locked per
// attempt when no other value is configured.
const DefaultCandidateWindow = 1

// AssignRouteCommandHandler is the assignment engine. One call is one
// transaction that either changes driver, route and assignment together or
// changes nothing.
//
// Concurrency: the route row is locked first, so two calls for the same route
// serialise and the second one sees the route already assigned. Candidate
// drivers are locked with SKIP LOCKED, so calls for different routes never
// pick the same driver and never wait on each other's candidates.
//
// Example:
//
//	cmd, _ := NewAssignRouteCommand(routeID)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if !result.Assigned {
//	    // no driver was free; the route stays unassigned
//	}
type AssignRouteCommandHandler struct {
	uowFactory      UoWFactory
	selector        services.DriverSelector
	dispatcher      services.RouteDispatcher
	publisher       ports.EventPublisher
	recorder        AssignmentRecorder
	logger          *slog.Logger
	candidateWindow int
	now             func() time.Time
}

type AssignRouteOption func(*AssignRouteCommandHandler)

// WithCandidateWindow sets how many available drivers are locked and handed
// to the selector. Values below 1 are ignored.
func WithCandidateWindow(n int) AssignRouteOption {
	return func(h *AssignRouteCommandHandler) {
		if n >= 1 {
			h.candidateWindow = n
		}
	}
}

// WithClock replaces time.Now as the source of assignment timestamps.
func WithClock(now func() time.Time) AssignRouteOption {
	return func(h *AssignRouteCommandHandler) {
		if now != nil {
			h.now = now
		}
	}
}

func NewAssignRouteCommandHandler(
	uowFactory UoWFactory,
	selector services.DriverSelector,
	publisher ports.EventPublisher,
	recorder AssignmentRecorder,
	logger *slog.Logger,
	opts ...AssignRouteOption,
) AssignRouteCommandHandler {
	if recorder == nil {
		recorder = NopAssignmentRecorder{}
	}

	h := AssignRouteCommandHandler{
		uowFactory:      uowFactory,
		selector:        selector,
		dispatcher:      services.NewRouteDispatcher(),
		publisher:       publisher,
		recorder:        recorder,
		logger:          logger.With("component", "assign_route_command_handler"),
		candidateWindow: DefaultCandidateWindow,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Handle is idempotent: for a route that is already assigned it returns the
// existing driver and writes nothing.
func (h AssignRouteCommandHandler) Handle(ctx context.Context, cmd AssignRouteCommand) (AssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignResult{}, err
	}

	started := time.Now()
	result, outcome, tracked, err := h.tryAssign(ctx, cmd)
	if err != nil {
		outcome = OutcomeFailed
	}
	h.recorder.ObserveAssignment(outcome, time.Since(started))
	if err != nil {
		return AssignResult{}, err
	}

	h.publish(ctx, tracked)
	return result, nil
}

func (h AssignRouteCommandHandler) tryAssign(
	ctx context.Context,
	cmd AssignRouteCommand,
) (AssignResult, AssignOutcome, []ports.TrackedAggregate, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	driverRepo := uow.DriverRepository()

	r, err := routeRepo.GetForUpdate(ctx, cmd.RouteID())
	if err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}
	if r.IsAssigned() {
		return AssignResult{Assigned: true, DriverID: r.AssignedDriverID()}, OutcomeAlreadyAssigned, nil, nil
	}

	candidates, err := driverRepo.GetAvailableForUpdate(ctx, h.candidateWindow)
	if err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}
	if len(candidates) == 0 {
		return AssignResult{Assigned: false}, OutcomeNoDriver, nil, nil
	}

	d, err := h.selector.Select(candidates)
	if errors.Is(err, services.ErrNoAvailableDriver) {
		return AssignResult{Assigned: false}, OutcomeNoDriver, nil, nil
	}
	if err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}

	a, err := h.dispatcher.Dispatch(r, d, h.now())
	if err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}
	if _, err = uow.AssignmentRepository().Add(ctx, a); err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignResult{}, OutcomeFailed, nil, err
	}

	driverID := d.ID()
	return AssignResult{Assigned: true, DriverID: &driverID}, OutcomeAssigned, uow.TrackedAggregates(), nil
}

// publish announces committed assignments. The data is already durable, so
// a failed publish is logged and otherwise ignored.
func (h AssignRouteCommandHandler) publish(ctx context.Context, tracked []ports.TrackedAggregate) {
	if h.publisher == nil {
		return
	}

	for _, t := range tracked {
		a, ok := t.Aggregate.(*assignment.Assignment)
		if !ok {
			continue
		}
		event := a.RouteAssigned()
		if err := h.publisher.PublishRouteAssigned(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "Failed to publish route assigned event",
				"route_id", int64(event.RouteID), "driver_id", event.DriverID.String(), "error", err)
		}
	}
}
