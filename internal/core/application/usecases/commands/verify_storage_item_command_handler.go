package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/tracking"
)

// VerifyStorageItemCommandHandler applies a storage verification mark to one
// order line. When the last line passes the check the order becomes ready for
// pickup and the storage stage is mirrored into the tracking record.
type VerifyStorageItemCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewVerifyStorageItemCommandHandler creates a handler for storage checks.
func NewVerifyStorageItemCommandHandler(uowFactory TrackingUoWFactory) VerifyStorageItemCommandHandler {
	return VerifyStorageItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the storage verification command.
func (h VerifyStorageItemCommandHandler) Handle(ctx context.Context, cmd VerifyStorageItemCommand) error {
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
	if err = ord.VerifyStorageItem(cmd.ItemIndex(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if ord.AllItemsStorageVerified() {
		record, created, provisionErr := provisionTrackingRecord(ctx, trackingRepo, ord)
		if provisionErr != nil {
			return provisionErr
		}

		err = record.CompleteStage(tracking.StageStorage, now, cmd.Actor(), tracking.StagePayload{})
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
