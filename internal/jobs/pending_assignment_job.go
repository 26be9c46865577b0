package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultPendingAssignmentSchedule runs the backlog sweep every thirty
// seconds. The expression has a leading seconds field.
const DefaultPendingAssignmentSchedule = "*/30 * * * * *"

type PendingRoutesAssigner interface {
	Handle(ctx context.Context, cmd commands.AssignPendingRoutesCommand) (int, error)
}

// PendingAssignmentJob periodically retries assignment for routes that were
// stored while no driver was free. A run that is still going when the next
// tick fires makes that tick a no-op.
type PendingAssignmentJob struct {
	handler   PendingRoutesAssigner
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingAssignmentJob creates the job. An empty schedule falls back to
// DefaultPendingAssignmentSchedule and a batch size below 1 to
// commands.DefaultPendingBatchSize.
func NewPendingAssignmentJob(
	handler PendingRoutesAssigner,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *PendingAssignmentJob {
	if schedule == "" {
		schedule = DefaultPendingAssignmentSchedule
	}
	if batchSize < 1 {
		batchSize = commands.DefaultPendingBatchSize
	}

	return &PendingAssignmentJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "pending_assignment_job"),
	}
}

func (j *PendingAssignmentJob) Name() string {
	return "pending assignment"
}

func (j *PendingAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending assignment job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *PendingAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending assignment job stopped")
}

func (j *PendingAssignmentJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewAssignPendingRoutesCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending assignment job misconfigured", "error", err)
		return
	}

	assigned, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending assignment job failed", "assigned", assigned, "error", err)
		return
	}
	if assigned > 0 {
		j.logger.InfoContext(ctx, "Pending routes assigned", "assigned", assigned)
	}
}
