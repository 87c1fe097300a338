package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
)

// EmployeeRepository defines the persistence contract for employees and the
// per-driver assignment counter.
//
// The counter is the one point of real cross-order contention: two concurrent
// assignments may target the same driver. ReserveAssignment must therefore be
// an atomic check-and-increment against the store (a conditional update), not
// a read-modify-write through the aggregate.
type EmployeeRepository interface {
	// Get retrieves an employee by id. Returns an ObjectNotFoundError when no
	// employee exists for the id.
	Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error)

	// ReserveAssignment atomically increments the driver's assignment counter
	// if and only if it is below the driver's maximum. Returns
	// employee.ErrDriverAtCapacity when the driver is full, and an
	// ObjectNotFoundError when the driver does not exist.
	ReserveAssignment(ctx context.Context, driverID kernel.UUID) error

	// ReleaseAssignment atomically decrements the driver's assignment counter
	// when an order reaches a terminal state. The counter never goes below zero.
	ReleaseAssignment(ctx context.Context, driverID kernel.UUID) error
}
