package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrBulkAssignVehiclesCommandIsNotConstructed = errors.New(
		"BulkAssignVehiclesCommand must be created via NewBulkAssignVehiclesCommand constructor",
	)
	ErrNoAssignmentEntries = errors.New("at least one assignment entry is required")
)

// BulkAssignmentEntry names one order/vehicle/driver triple of a bulk
// assignment request.
type BulkAssignmentEntry struct {
	OrderID   kernel.UUID
	VehicleID kernel.UUID
	DriverID  kernel.UUID
}

func (e BulkAssignmentEntry) validate() error {
	return errors.Join(
		e.OrderID.Validate(),
		e.VehicleID.Validate(),
		e.DriverID.Validate(),
	)
}

// BulkAssignVehiclesCommand assigns vehicles to several orders in one
// request. Entries are independent: one rejection never rolls back the
// others.
type BulkAssignVehiclesCommand struct { //nolint:recvcheck //using for validation
	entries        []BulkAssignmentEntry
	assignedBy     kernel.UUID
	assignedByName string
	notes          string

	guard guard.ConstructorGuard
}

// NewBulkAssignVehiclesCommand creates a command for a bulk assignment run.
func NewBulkAssignVehiclesCommand(
	entries []BulkAssignmentEntry,
	assignedBy kernel.UUID,
	assignedByName, notes string,
) (BulkAssignVehiclesCommand, error) {
	cmd := BulkAssignVehiclesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEntries(entries),
		cmd.setAssignedBy(assignedBy, assignedByName),
	); err != nil {
		return BulkAssignVehiclesCommand{}, err
	}

	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignVehiclesCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignVehiclesCommandIsNotConstructed)
}

// Entries returns the order/vehicle/driver triples of the run.
func (c BulkAssignVehiclesCommand) Entries() []BulkAssignmentEntry {
	return c.entries
}

// AssignedBy returns the identifier of the dispatcher running the bulk assignment.
func (c BulkAssignVehiclesCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}

// AssignedByName returns the dispatcher's display name.
func (c BulkAssignVehiclesCommand) AssignedByName() string {
	return c.assignedByName
}

// Notes returns optional free-form notes applied to every assignment of the run.
func (c BulkAssignVehiclesCommand) Notes() string {
	return c.notes
}

func (c *BulkAssignVehiclesCommand) setEntries(entries []BulkAssignmentEntry) error {
	if len(entries) == 0 {
		return ErrNoAssignmentEntries
	}
	for _, entry := range entries {
		if err := entry.validate(); err != nil {
			return err
		}
	}

	c.entries = entries
	return nil
}

func (c *BulkAssignVehiclesCommand) setAssignedBy(assignedBy kernel.UUID, assignedByName string) error {
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
