package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/tracking"
)

// StartRouteCommandHandler moves an assigned order to "on-way" and completes
// the in-transit stage of its tracking record in one transaction.
type StartRouteCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewStartRouteCommandHandler creates a handler for route start reports.
func NewStartRouteCommandHandler(uowFactory TrackingUoWFactory) StartRouteCommandHandler {
	return StartRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the route start command.
func (h StartRouteCommandHandler) Handle(ctx context.Context, cmd StartRouteCommand) error {
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

	if err = ord.StartRoute(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	record, created, err := provisionTrackingRecord(ctx, trackingRepo, ord)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = record.CompleteStage(tracking.StageInTransit, now, cmd.Actor(), tracking.StagePayload{})
	if err != nil && !errors.Is(err, tracking.ErrStageAlreadyCompleted) {
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
