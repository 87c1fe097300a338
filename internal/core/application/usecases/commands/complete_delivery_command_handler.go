package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/tracking"
)

// CompleteDeliveryCommandHandler finishes an order's delivery. It advances
// the order to "processed", completes the delivered stage with the handover
// payload and frees the driver's assignment slot, all in one transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory AssignmentUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery completion command. Releasing the driver slot
// tolerates an already drained counter so that a replayed completion does not
// fail the whole write.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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
	employeeRepo := uow.EmployeeRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ord.CompleteDelivery(); err != nil {
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
	payload := tracking.StagePayload{
		Signature:         cmd.Signature(),
		Notes:             cmd.Notes(),
		SatisfactionScore: cmd.SatisfactionScore(),
	}
	err = record.CompleteStage(tracking.StageDelivered, now, cmd.Actor(), payload)
	if err != nil && !errors.Is(err, tracking.ErrStageAlreadyCompleted) {
		return err
	}
	if _, err = record.SetCurrentStatus(ord.Status()); err != nil {
		return err
	}

	if err = saveTrackingRecord(ctx, trackingRepo, record, created); err != nil {
		return err
	}

	if assignment := ord.Assignment(); assignment != nil {
		err = employeeRepo.ReleaseAssignment(ctx, assignment.DriverID)
		if err != nil && !errors.Is(err, employee.ErrNoAssignmentsToRelease) {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
