package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testVan(t *testing.T, active bool) *vehicle.Vehicle {
	t.Helper()

	van, err := vehicle.NewVehicle(
		kernel.NewUUID(), "van",
		vehicle.Specifications{MaxWeight: 100, MaxVolume: 10, MaxPackages: 20},
		1, active,
	)
	require.NoError(t, err)
	return van
}

func testDriver(t *testing.T) *employee.Employee {
	t.Helper()

	driver, err := employee.NewEmployee(
		kernel.NewUUID(), "Sergey Volkov", "+79990003344",
		[]string{employee.RoleDriver}, 3,
	)
	require.NoError(t, err)
	return driver
}

func TestAssignVehicleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	ord := testOrderInStatus(t, order.ReadyToPickup, 2)
	van := testVan(t, true)
	driver := testDriver(t)
	staffID := kernel.NewUUID()

	cmd, err := commands.NewAssignVehicleCommand(
		ord.ID(), van.ID(), driver.ID(), staffID, "dispatcher.petrova", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	vehicleRepo := new(MockVehicleRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		vehicleRepo.On("Get", ctx, van.ID()).Return(van, nil).Once(),
		employeeRepo.On("Get", ctx, driver.ID()).Return(driver, nil).Once(),
		employeeRepo.On("ReserveAssignment", ctx, driver.ID()).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		trackingRepo.On("GetByOrderID", ctx, ord.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", ord.ID().String())).
			Once(),
		trackingRepo.On("Add", ctx, mock.AnythingOfType("*tracking.TrackingRecord")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignVehicleCommandHandler(factory)
	details, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, van.ID(), details.VehicleID)
	assert.Equal(t, driver.ID(), details.DriverID)
	assert.Equal(t, "Sergey Volkov", details.DriverName)
	assert.Equal(t, "dispatcher.petrova", details.AssignedByName)
	assert.False(t, details.AssignedAt.IsZero())

	assert.Equal(t, order.AllocatedDriver, ord.Status())
	require.NotNil(t, ord.Assignment())

	record := trackingRepo.Calls[1].Arguments[1].(*tracking.TrackingRecord)
	stage, err := record.Stage(tracking.StageAssigned)
	require.NoError(t, err)
	assert.True(t, stage.Completed())
	assert.Equal(t, "dispatcher.petrova", stage.Actor())
	assert.Equal(t, driver.ID().String(), stage.Payload().DriverID)
	assert.Equal(t, "van", stage.Payload().VehicleType)

	orderRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
	employeeRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignVehicleCommandHandler_Handle_CapacityExceeded(t *testing.T) {
	ctx := t.Context()

	// Five lines against a vehicle that takes two packages at most.
	ord := testOrderInStatus(t, order.ReadyToPickup, 5)
	tiny, err := vehicle.NewVehicle(
		kernel.NewUUID(), "scooter",
		vehicle.Specifications{MaxWeight: 3, MaxVolume: 0.3, MaxPackages: 2},
		1, true,
	)
	require.NoError(t, err)
	driver := testDriver(t)

	cmd, err := commands.NewAssignVehicleCommand(
		ord.ID(), tiny.ID(), driver.ID(), kernel.NewUUID(), "dispatcher.petrova", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	vehicleRepo := new(MockVehicleRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		vehicleRepo.On("Get", ctx, tiny.ID()).Return(tiny, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignVehicleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrCapacityExceeded)

	// Rejection happens before any mutation.
	assert.Equal(t, order.ReadyToPickup, ord.Status())
	assert.Nil(t, ord.Assignment())
	employeeRepo.AssertNotCalled(t, "ReserveAssignment", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignVehicleCommandHandler_Handle_DriverAtCapacity(t *testing.T) {
	ctx := t.Context()

	ord := testOrderInStatus(t, order.ReadyToPickup, 1)
	van := testVan(t, true)
	driver := testDriver(t)

	cmd, err := commands.NewAssignVehicleCommand(
		ord.ID(), van.ID(), driver.ID(), kernel.NewUUID(), "dispatcher.petrova", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	vehicleRepo := new(MockVehicleRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		vehicleRepo.On("Get", ctx, van.ID()).Return(van, nil).Once(),
		employeeRepo.On("Get", ctx, driver.ID()).Return(driver, nil).Once(),
		employeeRepo.On("ReserveAssignment", ctx, driver.ID()).
			Return(employee.ErrDriverAtCapacity).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignVehicleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, employee.ErrDriverAtCapacity)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssignVehicleCommandHandler_Handle_OrderStillInStorageCheck(t *testing.T) {
	ctx := t.Context()

	ord := testOrderInStatus(t, order.StorageCheck, 1)
	van := testVan(t, true)

	cmd, err := commands.NewAssignVehicleCommand(
		ord.ID(), van.ID(), kernel.NewUUID(), kernel.NewUUID(), "dispatcher.petrova", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	vehicleRepo := new(MockVehicleRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignVehicleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid status to allocate")
	assert.Nil(t, ord.Assignment())
	vehicleRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	employeeRepo.AssertNotCalled(t, "ReserveAssignment", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignVehicleCommandHandler_Handle_InactiveVehicle(t *testing.T) {
	ctx := t.Context()

	ord := testOrderInStatus(t, order.ReadyToPickup, 1)
	parked := testVan(t, false)

	cmd, err := commands.NewAssignVehicleCommand(
		ord.ID(), parked.ID(), kernel.NewUUID(), kernel.NewUUID(), "dispatcher.petrova", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	vehicleRepo := new(MockVehicleRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		vehicleRepo.On("Get", ctx, parked.ID()).Return(parked, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignVehicleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrVehicleNotActive)
}

func TestAssignVehicleCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()

	details, err := order.NewAssignmentDetails(
		kernel.NewUUID(), kernel.NewUUID(), "Sergey Volkov",
		kernel.NewUUID(), "dispatcher.petrova", time.Now().UTC(), "",
	)
	require.NoError(t, err)

	ord, err := order.RestoreOrder(
		kernel.NewUUID(), order.AllocatedDriver,
		"Anna Kuznetsova", "+79990001122", "12 Lesnaya St",
		1500, testItems(t, 1), &details,
	)
	require.NoError(t, err)

	cmd, err := commands.NewAssignVehicleCommand(
		ord.ID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "dispatcher.petrova", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	vehicleRepo := new(MockVehicleRepository)
	employeeRepo := new(MockEmployeeRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		uow.On("EmployeeRepository").Return(employeeRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignVehicleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderAlreadyAssigned)
	vehicleRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
