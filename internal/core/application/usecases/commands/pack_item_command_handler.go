package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/tracking"
)

// PackItemCommandHandler applies a packing mark to one order line.
// Persists the order and, when the mark finishes the packing stage, completes
// the packed stage of the tracking record inside the same transaction.
type PackItemCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewPackItemCommandHandler creates a handler for packing operations.
func NewPackItemCommandHandler(uowFactory TrackingUoWFactory) PackItemCommandHandler {
	return PackItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the packing command. The status advance to "packed" and
// the tracking mirror happen only once every line of the order carries a
// packing mark.
func (h PackItemCommandHandler) Handle(ctx context.Context, cmd PackItemCommand) error {
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
	if err = ord.PackItem(cmd.ItemIndex(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if ord.AllItemsPacked() {
		record, created, provisionErr := provisionTrackingRecord(ctx, trackingRepo, ord)
		if provisionErr != nil {
			return provisionErr
		}

		err = record.CompleteStage(tracking.StagePacked, now, cmd.Actor(), tracking.StagePayload{})
		if err != nil && !errors.Is(err, tracking.ErrStageAlreadyCompleted) {
			return err
		}
		if _, err = record.SetCurrentStatus(ord.Status()); err != nil {
			return err
		}

		if err = saveTrackingRecord(ctx, trackingRepo, record, created); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
