// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to keep tracking records reconciled with the authoritative order state.
//
// # Available Jobs
//
// One TrackingSyncJob runs per workflow phase: packing, loading and delivery.
// Each pass loads the orders in that phase's statuses and reconciles their
// tracking records, so direct database edits and missed operations still end
// up reflected in the tracking view.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(syncHandler, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Every job takes a six-field cron expression with a seconds column, so the
// three phases can run at different frequencies. Packing typically syncs
// more often than delivery because warehouse state changes faster.
//
// # Error Handling
//
// - A failed pass is logged and retried on the next tick; passes are idempotent
// - Failed job starts will stop any already running jobs
package jobs
