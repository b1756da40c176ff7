// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance required by the service.
//
// # Available Jobs
//
// 1. OrderExpirationJob - Removes PENDING orders that outlived the retention
// window without any payment attempt
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(removeExpiredOrdersHandler, interval, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiration job runs at the configured interval (REAPER_INTERVAL,
// default five minutes). Retention is a separate knob (ORDER_RETENTION); the
// sweep deletes orders created before now minus retention.
//
// # Error Handling
//
// A failed sweep is logged and the schedule keeps running; the next tick
// retries the same work.
package jobs
