package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignedOrderOnWay(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()

	details, err := order.NewAssignmentDetails(
		kernel.NewUUID(), driverID, "Sergey Volkov",
		kernel.NewUUID(), "dispatcher.petrova", time.Now().UTC(), "",
	)
	require.NoError(t, err)

	ord, err := order.RestoreOrder(
		kernel.NewUUID(), order.OnWay,
		"Anna Kuznetsova", "+79990001122", "12 Lesnaya St",
		1500, testItems(t, 1), &details,
	)
	require.NoError(t, err)
	return ord
}

func TestCompleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	ord := assignedOrderOnWay(t, driverID)

	record, err := tracking.NewTrackingRecord(kernel.NewUUID(), ord.ID(), tracking.Seed{
		CurrentStatus:   order.OnWay,
		CustomerName:    ord.CustomerName(),
		CustomerPhone:   ord.CustomerPhone(),
		DeliveryAddress: ord.DeliveryAddress(),
	})
	require.NoError(t, err)

	cmd, err := commands.NewCompleteDeliveryCommand(ord.ID(), "Sergey Volkov", "sig-274", "left at door", 5)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		trackingRepo.On("GetByOrderID", ctx, ord.ID()).Return(record, nil).Once(),
		trackingRepo.On("Update", ctx, mock.AnythingOfType("*tracking.TrackingRecord")).Return(nil).Once(),
		employeeRepo.On("ReleaseAssignment", ctx, driverID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Processed, ord.Status())

	stage, err := record.Stage(tracking.StageDelivered)
	require.NoError(t, err)
	assert.True(t, stage.Completed())
	assert.Equal(t, "Sergey Volkov", stage.Actor())
	assert.Equal(t, "sig-274", stage.Payload().Signature)
	assert.Equal(t, 5, stage.Payload().SatisfactionScore)

	orderRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
	employeeRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_ToleratesDrainedCounter(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	ord := assignedOrderOnWay(t, driverID)

	cmd, err := commands.NewCompleteDeliveryCommand(ord.ID(), "Sergey Volkov", "", "", 0)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		trackingRepo.On("GetByOrderID", ctx, ord.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", ord.ID().String())).
			Once(),
		trackingRepo.On("Add", ctx, mock.AnythingOfType("*tracking.TrackingRecord")).Return(nil).Once(),
		employeeRepo.On("ReleaseAssignment", ctx, driverID).
			Return(employee.ErrNoAssignmentsToRelease).
			Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()

	ord := testOrderInStatus(t, order.Packing, 1)
	cmd, err := commands.NewCompleteDeliveryCommand(ord.ID(), "Sergey Volkov", "", "", 0)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCompleteDeliveryCommand_ScoreOutOfRange(t *testing.T) {
	_, err := commands.NewCompleteDeliveryCommand(kernel.NewUUID(), "Sergey Volkov", "", "", 6)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
