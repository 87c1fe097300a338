package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/services"
)

// SyncTrackingCommandHandler runs the catch-up reconciliation for one phase.
// Records that already match their order's expectation are left alone, so a
// pass over an already converged phase writes nothing. A failure on one order
// is logged and the pass moves on; records are independent and one bad row
// must not starve the rest of the phase.
type SyncTrackingCommandHandler struct {
	uowFactory TrackingUoWFactory
	reconciler services.TrackingReconciler
	logger     *slog.Logger
}

// NewSyncTrackingCommandHandler creates a handler for reconciliation passes.
func NewSyncTrackingCommandHandler(
	uowFactory TrackingUoWFactory,
	logger *slog.Logger,
) SyncTrackingCommandHandler {
	return SyncTrackingCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewTrackingReconciler(),
		logger:     logger.With("component", "sync_tracking"),
	}
}

// Handle processes one pass and returns the number of tracking records it
// created or modified.
func (h SyncTrackingCommandHandler) Handle(ctx context.Context, cmd SyncTrackingCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	trackingRepo := uow.TrackingRepository()

	orders, err := orderRepo.GetAllInStatuses(ctx, cmd.Phase().Statuses())
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	updated := 0
	for _, ord := range orders {
		record, created, provisionErr := provisionTrackingRecord(ctx, trackingRepo, ord)
		if provisionErr != nil {
			h.logger.WarnContext(ctx, "skipping order in sync pass",
				"phase", string(cmd.Phase()),
				"orderId", ord.ID().String(),
				"error", provisionErr)
			continue
		}

		changed, reconcileErr := h.reconciler.Reconcile(ord, record, now)
		if reconcileErr != nil {
			h.logger.WarnContext(ctx, "skipping order in sync pass",
				"phase", string(cmd.Phase()),
				"orderId", ord.ID().String(),
				"error", reconcileErr)
			continue
		}

		if !changed && !created {
			continue
		}

		if saveErr := saveTrackingRecord(ctx, trackingRepo, record, created); saveErr != nil {
			h.logger.WarnContext(ctx, "skipping order in sync pass",
				"phase", string(cmd.Phase()),
				"orderId", ord.ID().String(),
				"error", saveErr)
			continue
		}
		updated++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return updated, nil
}
