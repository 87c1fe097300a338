package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/tracking"
)

// VerifyLoadingItemCommandHandler applies a loading mark to one order line.
// Every mark pushes the fresh loading progress percentage into the loaded
// stage payload; the final mark completes the stage with the vehicle detail
// and advances the order to "loaded".
type VerifyLoadingItemCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewVerifyLoadingItemCommandHandler creates a handler for loading operations.
func NewVerifyLoadingItemCommandHandler(uowFactory TrackingUoWFactory) VerifyLoadingItemCommandHandler {
	return VerifyLoadingItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the loading command. Loading requires the order to carry
// assignment details; the aggregate rejects the mark otherwise.
func (h VerifyLoadingItemCommandHandler) Handle(ctx context.Context, cmd VerifyLoadingItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	trackingRepo := uow.TrackingRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = ord.VerifyLoadingItem(cmd.ItemIndex(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	record, created, err := provisionTrackingRecord(ctx, trackingRepo, ord)
	if err != nil {
		return err
	}

	progress := tracking.StagePayload{LoadingProgress: ord.LoadingProgress()}
	if ord.AllItemsLoadingVerified() {
		if assignment := ord.Assignment(); assignment != nil {
			progress.VehicleID = assignment.VehicleID.String()
		}
		err = record.CompleteStage(tracking.StageLoaded, now, cmd.Actor(), progress)
		if err != nil && !errors.Is(err, tracking.ErrStageAlreadyCompleted) {
			return err
		}
	} else if err = record.AmendStagePayload(tracking.StageLoaded, progress); err != nil {
		return err
	}

	if _, err = record.SetCurrentStatus(ord.Status()); err != nil {
		return err
	}

	if err = saveTrackingRecord(ctx, trackingRepo, record, created); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
