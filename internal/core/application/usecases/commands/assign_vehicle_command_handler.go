package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
)

var (
	ErrVehicleNotActive = errors.New("vehicle is not active")
	ErrNotADriver       = errors.New("employee does not have the driver role")
)

// AssignVehicleCommandHandler orchestrates vehicle assignment. The capacity
// of the requested vehicle is checked against the order's estimated
// requirements before any state changes; a rejection therefore leaves the
// order, the driver counter and the tracking record untouched.
//
// On success four effects land in one transaction: the order carries the
// assignment details, its status advances to "allocated-driver", the driver's
// assignment counter is incremented and the tracking record's assigned stage
// completes with the driver and vehicle payload.
type AssignVehicleCommandHandler struct {
	uowFactory AssignmentUoWFactory
	estimator  services.LoadEstimator
	selector   services.VehicleSelector
}

// NewAssignVehicleCommandHandler creates a handler for vehicle assignment.
func NewAssignVehicleCommandHandler(uowFactory AssignmentUoWFactory) AssignVehicleCommandHandler {
	return AssignVehicleCommandHandler{
		uowFactory: uowFactory,
		estimator:  services.NewLoadEstimator(),
		selector:   services.NewVehicleSelector(),
	}
}

// Handle processes the assignment command and returns the recorded assignment
// details. Callers distinguish rejections with errors.Is against
// errs.ErrObjectNotFound, services.ErrCapacityExceeded,
// employee.ErrDriverAtCapacity and order.ErrOrderAlreadyAssigned.
func (h AssignVehicleCommandHandler) Handle(
	ctx context.Context,
	cmd AssignVehicleCommand,
) (order.AssignmentDetails, error) {
	if err := cmd.Validate(); err != nil {
		return order.AssignmentDetails{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.AssignmentDetails{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	trackingRepo := uow.TrackingRepository()
	vehicleRepo := uow.VehicleRepository()
	employeeRepo := uow.EmployeeRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.AssignmentDetails{}, err
	}

	if ord.Assignment() != nil {
		return order.AssignmentDetails{}, order.ErrOrderAlreadyAssigned
	}
	if err = ord.Status().ValidateAllocate(); err != nil {
		return order.AssignmentDetails{}, err
	}

	veh, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return order.AssignmentDetails{}, err
	}
	if !veh.IsActive() {
		return order.AssignmentDetails{}, ErrVehicleNotActive
	}

	req, err := h.estimator.Estimate(ord)
	if err != nil {
		return order.AssignmentDetails{}, err
	}
	if err = h.selector.CheckCapacity(req, veh); err != nil {
		return order.AssignmentDetails{}, err
	}

	driver, err := employeeRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return order.AssignmentDetails{}, err
	}
	if !driver.HasRole(employee.RoleDriver) {
		return order.AssignmentDetails{}, ErrNotADriver
	}

	// The conditional increment in the store is what makes two concurrent
	// assignments to the same driver safe.
	if err = employeeRepo.ReserveAssignment(ctx, cmd.DriverID()); err != nil {
		return order.AssignmentDetails{}, err
	}

	now := time.Now().UTC()
	details, err := order.NewAssignmentDetails(
		cmd.VehicleID(), cmd.DriverID(), driver.Name(),
		cmd.AssignedBy(), cmd.AssignedByName(), now, cmd.Notes(),
	)
	if err != nil {
		return order.AssignmentDetails{}, err
	}

	if err = ord.AssignVehicle(details); err != nil {
		return order.AssignmentDetails{}, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return order.AssignmentDetails{}, err
	}

	record, created, err := provisionTrackingRecord(ctx, trackingRepo, ord)
	if err != nil {
		return order.AssignmentDetails{}, err
	}

	payload := tracking.StagePayload{
		DriverID:       cmd.DriverID().String(),
		DriverName:     driver.Name(),
		AssignedByID:   cmd.AssignedBy().String(),
		AssignedByName: cmd.AssignedByName(),
		VehicleID:      cmd.VehicleID().String(),
		VehicleType:    veh.Type(),
		Notes:          cmd.Notes(),
	}
	err = record.CompleteStage(tracking.StageAssigned, now, cmd.AssignedByName(), payload)
	if err != nil && !errors.Is(err, tracking.ErrStageAlreadyCompleted) {
		return order.AssignmentDetails{}, err
	}
	if _, err = record.SetCurrentStatus(ord.Status()); err != nil {
		return order.AssignmentDetails{}, err
	}

	if err = saveTrackingRecord(ctx, trackingRepo, record, created); err != nil {
		return order.AssignmentDetails{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.AssignmentDetails{}, err
	}

	return details, nil
}
