package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/tracking"
)

// SyncSchedule names the cron expression for each workflow phase.
type SyncSchedule struct {
	Packing  string
	Loading  string
	Delivery string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	packingSyncJob  *TrackingSyncJob
	loadingSyncJob  *TrackingSyncJob
	deliverySyncJob *TrackingSyncJob
}

// NewJobManager creates a job manager running one tracking sync job per
// workflow phase.
func NewJobManager(
	syncHandler commands.SyncTrackingCommandHandler,
	schedule SyncSchedule,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		packingSyncJob:  NewTrackingSyncJob(syncHandler, tracking.PhasePacking, schedule.Packing, logger),
		loadingSyncJob:  NewTrackingSyncJob(syncHandler, tracking.PhaseLoading, schedule.Loading, logger),
		deliverySyncJob: NewTrackingSyncJob(syncHandler, tracking.PhaseDelivery, schedule.Delivery, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.packingSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start packing sync job: %w", err)
	}

	if err := jm.loadingSyncJob.Start(); err != nil {
		jm.packingSyncJob.Stop()
		return fmt.Errorf("failed to start loading sync job: %w", err)
	}

	if err := jm.deliverySyncJob.Start(); err != nil {
		jm.loadingSyncJob.Stop()
		jm.packingSyncJob.Stop()
		return fmt.Errorf("failed to start delivery sync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliverySyncJob.Stop()
	jm.loadingSyncJob.Stop()
	jm.packingSyncJob.Stop()
}
