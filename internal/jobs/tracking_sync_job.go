package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/robfig/cron/v3"
)

// TrackingSyncJob runs the tracking reconciliation pass for one workflow
// phase on a cron schedule. Each phase gets its own job so packing, loading
// and delivery can be synced at different frequencies.
type TrackingSyncJob struct {
	handler commands.SyncTrackingCommandHandler
	phase   tracking.SyncPhase
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTrackingSyncJob creates a reconciliation job for one phase. The spec is
// a six-field cron expression with a seconds column.
func NewTrackingSyncJob(
	handler commands.SyncTrackingCommandHandler,
	phase tracking.SyncPhase,
	spec string,
	logger *slog.Logger,
) *TrackingSyncJob {
	return &TrackingSyncJob{
		handler: handler,
		phase:   phase,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "tracking_sync_job", "phase", string(phase)),
	}
}

// Start schedules the reconciliation pass.
func (j *TrackingSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		cmd, err := commands.NewSyncTrackingCommand(j.phase)
		if err != nil {
			j.logger.ErrorContext(ctx, "Tracking sync command rejected", "error", err)
			return
		}

		synced, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Tracking sync pass failed", "error", err)
			return
		}

		if synced > 0 {
			j.logger.InfoContext(ctx, "Tracking sync pass completed", "synced", synced)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking sync job started", "schedule", j.spec)
	return nil
}

// Stop stops the reconciliation job.
func (j *TrackingSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking sync job stopped")
}
