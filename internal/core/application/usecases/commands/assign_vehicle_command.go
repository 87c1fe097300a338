package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAssignVehicleCommandIsNotConstructed = errors.New(
		"AssignVehicleCommand must be created via NewAssignVehicleCommand constructor",
	)
	ErrAssignedByNameIsRequired = errors.New("assignedByName is required")
)

// AssignVehicleCommand allocates a vehicle and a driver to an order that has
// passed storage verification. The handler checks the requested vehicle's
// capacity against the order's estimated requirements before touching any
// state.
//
// Example:
//
//	cmd, err := NewAssignVehicleCommand(orderID, vehicleID, driverID, staffID, "dispatcher.petrova", "fragile load")
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrCapacityExceeded):
//	    // pick a bigger vehicle
//	case errors.Is(err, employee.ErrDriverAtCapacity):
//	    // pick another driver
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("assigned at %s", details.AssignedAt)
//	}
type AssignVehicleCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	vehicleID      kernel.UUID
	driverID       kernel.UUID
	assignedBy     kernel.UUID
	assignedByName string
	notes          string

	guard guard.ConstructorGuard
}

// NewAssignVehicleCommand creates a command to assign a vehicle and driver to
// an order. Notes are optional.
func NewAssignVehicleCommand(
	orderID, vehicleID, driverID, assignedBy kernel.UUID,
	assignedByName, notes string,
) (AssignVehicleCommand, error) {
	cmd := AssignVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVehicleID(vehicleID),
		cmd.setDriverID(driverID),
		cmd.setAssignedBy(assignedBy, assignedByName),
	); err != nil {
		return AssignVehicleCommand{}, err
	}

	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAssignVehicleCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignVehicleCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VehicleID returns the identifier of the requested catalog vehicle.
func (c AssignVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// DriverID returns the identifier of the driver taking the order.
func (c AssignVehicleCommand) DriverID() kernel.UUID {
	return c.driverID
}

// AssignedBy returns the identifier of the dispatcher making the assignment.
func (c AssignVehicleCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}

// AssignedByName returns the dispatcher's display name.
func (c AssignVehicleCommand) AssignedByName() string {
	return c.assignedByName
}

// Notes returns optional free-form assignment notes.
func (c AssignVehicleCommand) Notes() string {
	return c.notes
}

func (c *AssignVehicleCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignVehicleCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *AssignVehicleCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *AssignVehicleCommand) setAssignedBy(assignedBy kernel.UUID, assignedByName string) error {
	if err := assignedBy.Validate(); err != nil {
		return err
	}
	if assignedByName == "" {
		return ErrAssignedByNameIsRequired
	}

	c.assignedBy = assignedBy
	c.assignedByName = assignedByName
	return nil
}
