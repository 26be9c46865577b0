package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPendingRoutesAssigner struct {
	mock.Mock
	calls atomic.Int32
}

func (m *MockPendingRoutesAssigner) Handle(ctx context.Context, cmd commands.AssignPendingRoutesCommand) (int, error) {
	m.calls.Add(1)
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPendingAssignmentJob_RunsOnSchedule(t *testing.T) {
	handler := &MockPendingRoutesAssigner{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignPendingRoutesCommand) bool {
		return cmd.BatchSize() == 5
	})).Return(2, nil)

	job := jobs.NewPendingAssignmentJob(handler, "* * * * * *", 5, discardLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Eventually(t, func() bool { return handler.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestPendingAssignmentJob_KeepsRunningAfterFailure(t *testing.T) {
	handler := &MockPendingRoutesAssigner{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("database down"))

	job := jobs.NewPendingAssignmentJob(handler, "* * * * * *", 0, discardLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Eventually(t, func() bool { return handler.calls.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
}

func TestPendingAssignmentJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewPendingAssignmentJob(&MockPendingRoutesAssigner{}, "every now and then", 1, discardLogger())

	require.Error(t, job.Start())
}

type fakeJob struct {
	name     string
	startErr error
	started  bool
	stopped  bool
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	j.started = true
	return nil
}

func (j *fakeJob) Stop() { j.stopped = true }

func TestJobManager_StartAndStop(t *testing.T) {
	first := &fakeJob{name: "first"}
	second := &fakeJob{name: "second"}
	manager := jobs.NewJobManager(first, nil, second)

	require.NoError(t, manager.StartAll())
	assert.True(t, first.started)
	assert.True(t, second.started)

	manager.StopAll()
	assert.True(t, first.stopped)
	assert.True(t, second.stopped)
}

func TestJobManager_StopsStartedJobsWhenOneFails(t *testing.T) {
	first := &fakeJob{name: "first"}
	broken := &fakeJob{name: "broken", startErr: errors.New("bad schedule")}
	manager := jobs.NewJobManager(first, broken)

	err := manager.StartAll()

	require.ErrorContains(t, err, "failed to start broken job")
	assert.True(t, first.stopped)
	assert.False(t, broken.stopped)
}
