// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. PendingAssignmentJob - retries agent assignment for CONFIRMED orders that have no agent yet
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	retry := jobs.NewPendingAssignmentJob(awaitingOrdersHandler, assignAgentHandler, "*/10 * * * * *", 50, logger)
//	jobManager := jobs.NewJobManager(retry)
//
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - "No agent available", lost reservations and orders that moved on are logged at debug level
// - Anything else is logged as an error; the next round tries again
// - Rounds never overlap: a slow round makes the scheduler skip the next tick
package jobs
