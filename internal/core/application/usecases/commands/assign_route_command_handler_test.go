package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)

type assignFixture struct {
	uow         *MockUoW
	factory     *MockUoWFactory
	drivers     *MockDriverRepository
	routes      *MockRouteRepository
	assignments *MockAssignmentRepository
	publisher   *MockEventPublisher
	recorder    *MockAssignmentRecorder
}

func newAssignFixture() *assignFixture {
	f := &assignFixture{
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		drivers:     new(MockDriverRepository),
		routes:      new(MockRouteRepository),
		assignments: new(MockAssignmentRepository),
		publisher:   new(MockEventPublisher),
		recorder:    new(MockAssignmentRecorder),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("DriverRepository").Return(f.drivers).Maybe()
	f.uow.On("RouteRepository").Return(f.routes).Maybe()
	f.uow.On("AssignmentRepository").Return(f.assignments).Maybe()
	return f
}

func (f *assignFixture) handler(opts ...commands.AssignRouteOption) commands.AssignRouteCommandHandler {
	opts = append([]commands.AssignRouteOption{commands.WithClock(func() time.Time { return fixedNow })}, opts...)
	return commands.NewAssignRouteCommandHandler(
		f.factory,
		services.NewFirstRegisteredSelector(),
		f.publisher,
		f.recorder,
		slog.New(slog.DiscardHandler),
		opts...,
	)
}

func (f *assignFixture) expectOutcome(outcome commands.AssignOutcome) {
	f.recorder.On("ObserveAssignment", outcome, mock.AnythingOfType("time.Duration")).Return().Once()
}

func unassignedRoute(t *testing.T, id route.ID) *route.Route {
	t.Helper()
	r, err := route.RestoreRoute(id, kernel.MustNewPlace("A"), kernel.MustNewPlace("B"), 5, 10, route.Unassigned, nil)
	require.NoError(t, err)
	return r
}

func availableDriver(t *testing.T, id string, seq int64) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(driver.ID(id), "Driver "+id, "C", true, seq)
	require.NoError(t, err)
	return d
}

func TestAssignRouteCommandHandler_Handle_AssignsFirstRegisteredDriver(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	r := unassignedRoute(t, 5)
	d := availableDriver(t, "d1", 1)
	stored, err := assignment.RestoreAssignment(9, "d1", 5, fixedNow, nil)
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.routes.On("GetForUpdate", ctx, route.ID(5)).Return(r, nil).Once()
	f.drivers.On("GetAvailableForUpdate", ctx, commands.DefaultCandidateWindow).Return([]*driver.Driver{d}, nil).Once()
	f.drivers.On("Update", ctx, d).Return(nil).Once()
	f.routes.On("Update", ctx, r).Return(nil).Once()
	f.assignments.On("Add", ctx, mock.MatchedBy(func(a *assignment.Assignment) bool {
		return a.DriverID() == "d1" && a.RouteID() == 5 && a.AssignedAt().Equal(fixedNow)
	})).Return(stored, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(errors.New("no active transaction")).Once()
	f.uow.On("TrackedAggregates").Return([]ports.TrackedAggregate{
		{ID: d.ID(), Aggregate: d},
		{ID: r.ID(), Aggregate: r},
		{ID: stored.ID(), Aggregate: stored},
	}).Once()
	f.publisher.On("PublishRouteAssigned", ctx, stored.RouteAssigned()).Return(nil).Once()
	f.expectOutcome(commands.OutcomeAssigned)

	cmd, err := commands.NewAssignRouteCommand(5)
	require.NoError(t, err)

	result, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Assigned)
	require.NotNil(t, result.DriverID)
	assert.Equal(t, driver.ID("d1"), *result.DriverID)
	assert.False(t, d.IsAvailable())
	assert.Equal(t, route.Assigned, r.Status())
	f.uow.AssertExpectations(t)
	f.drivers.AssertExpectations(t)
	f.routes.AssertExpectations(t)
	f.assignments.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
}

func TestAssignRouteCommandHandler_Handle_AlreadyAssignedIsIdempotent(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	existing := driver.ID("d7")
	r, err := route.RestoreRoute(5, kernel.MustNewPlace("A"), kernel.MustNewPlace("B"), 5, 10, route.Assigned, &existing)
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.routes.On("GetForUpdate", ctx, route.ID(5)).Return(r, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.expectOutcome(commands.OutcomeAlreadyAssigned)

	cmd, _ := commands.NewAssignRouteCommand(5)
	result, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Assigned)
	assert.Equal(t, existing, *result.DriverID)
	f.drivers.AssertNotCalled(t, "GetAvailableForUpdate", mock.Anything, mock.Anything)
	f.routes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assignments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishRouteAssigned", mock.Anything, mock.Anything)
	f.recorder.AssertExpectations(t)
}

func TestAssignRouteCommandHandler_Handle_NoAvailableDriver(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	r := unassignedRoute(t, 5)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.routes.On("GetForUpdate", ctx, route.ID(5)).Return(r, nil).Once()
	f.drivers.On("GetAvailableForUpdate", ctx, 1).Return([]*driver.Driver{}, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.expectOutcome(commands.OutcomeNoDriver)

	cmd, _ := commands.NewAssignRouteCommand(5)
	result, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Assigned)
	assert.Nil(t, result.DriverID)
	assert.Equal(t, route.Unassigned, r.Status())
	f.routes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.recorder.AssertExpectations(t)
}

func TestAssignRouteCommandHandler_Handle_UnknownRoute(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.routes.On("GetForUpdate", ctx, route.ID(404)).
		Return(nil, errs.NewObjectNotFoundError("route", int64(404))).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.expectOutcome(commands.OutcomeFailed)

	cmd, _ := commands.NewAssignRouteCommand(404)
	_, err := f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.recorder.AssertExpectations(t)
}

func TestAssignRouteCommandHandler_Handle_StorageFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	r := unassignedRoute(t, 5)
	d := availableDriver(t, "d1", 1)
	storageErr := errs.NewInfrastructureFailureError("add assignment", errors.New("connection reset"))

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.routes.On("GetForUpdate", ctx, route.ID(5)).Return(r, nil).Once()
	f.drivers.On("GetAvailableForUpdate", ctx, 1).Return([]*driver.Driver{d}, nil).Once()
	f.drivers.On("Update", ctx, d).Return(nil).Once()
	f.routes.On("Update", ctx, r).Return(nil).Once()
	f.assignments.On("Add", ctx, mock.Anything).Return(nil, storageErr).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.expectOutcome(commands.OutcomeFailed)

	cmd, _ := commands.NewAssignRouteCommand(5)
	result, err := f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInfrastructureFailure)
	assert.False(t, result.Assigned)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.uow.AssertExpectations(t)
	f.publisher.AssertNotCalled(t, "PublishRouteAssigned", mock.Anything, mock.Anything)
}

func TestAssignRouteCommandHandler_Handle_PublishFailureDoesNotFailAssignment(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	r := unassignedRoute(t, 5)
	d := availableDriver(t, "d1", 1)
	stored, _ := assignment.RestoreAssignment(9, "d1", 5, fixedNow, nil)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.routes.On("GetForUpdate", ctx, route.ID(5)).Return(r, nil).Once()
	f.drivers.On("GetAvailableForUpdate", ctx, 1).Return([]*driver.Driver{d}, nil).Once()
	f.drivers.On("Update", ctx, d).Return(nil).Once()
	f.routes.On("Update", ctx, r).Return(nil).Once()
	f.assignments.On("Add", ctx, mock.Anything).Return(stored, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.uow.On("TrackedAggregates").Return([]ports.TrackedAggregate{{ID: stored.ID(), Aggregate: stored}}).Once()
	f.publisher.On("PublishRouteAssigned", ctx, mock.Anything).Return(errors.New("broker down")).Once()
	f.expectOutcome(commands.OutcomeAssigned)

	cmd, _ := commands.NewAssignRouteCommand(5)
	result, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Assigned)
	f.publisher.AssertExpectations(t)
}

func TestAssignRouteCommandHandler_Handle_CandidateWindow(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	r := unassignedRoute(t, 5)
	later := availableDriver(t, "later", 8)
	earlier := availableDriver(t, "earlier", 3)
	stored, _ := assignment.RestoreAssignment(9, "earlier", 5, fixedNow, nil)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.routes.On("GetForUpdate", ctx, route.ID(5)).Return(r, nil).Once()
	f.drivers.On("GetAvailableForUpdate", ctx, 3).Return([]*driver.Driver{later, earlier}, nil).Once()
	f.drivers.On("Update", ctx, earlier).Return(nil).Once()
	f.routes.On("Update", ctx, r).Return(nil).Once()
	f.assignments.On("Add", ctx, mock.Anything).Return(stored, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.uow.On("TrackedAggregates").Return([]ports.TrackedAggregate{}).Once()
	f.expectOutcome(commands.OutcomeAssigned)

	cmd, _ := commands.NewAssignRouteCommand(5)
	result, err := f.handler(commands.WithCandidateWindow(3)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, driver.ID("earlier"), *result.DriverID)
	assert.True(t, later.IsAvailable())
	f.drivers.AssertExpectations(t)
}

func TestAssignRouteCommandHandler_Handle_BeginFails(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	beginErr := errs.NewInfrastructureFailureError("begin transaction", errors.New("pool exhausted"))

	f.uow.On("Begin", ctx).Return(beginErr).Once()
	f.expectOutcome(commands.OutcomeFailed)

	cmd, _ := commands.NewAssignRouteCommand(5)
	_, err := f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInfrastructureFailure)
	f.uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestAssignRouteCommandHandler_Handle_InvalidCommand(t *testing.T) {
	f := newAssignFixture()

	_, err := f.handler().Handle(t.Context(), commands.AssignRouteCommand{})

	require.ErrorIs(t, err, commands.ErrAssignRouteCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}
