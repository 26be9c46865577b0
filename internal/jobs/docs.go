// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use six fields, the first one being seconds.
//
// # Available Jobs
//
// PendingAssignmentJob sweeps routes that are still unassigned and runs the
// assignment engine on them, oldest first. Routes normally get a driver the
// moment they are created; the sweep only matters when drivers are registered
// after routes piled up. It is disabled unless configured.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewPendingAssignmentJob(assignPendingHandler, "*/30 * * * * *", 100, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Handler errors are logged and the next tick tries again. A failed start
// stops every job that was already started.
package jobs
