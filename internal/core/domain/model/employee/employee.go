// Package employee provides the Employee aggregate for drivers and warehouse
// staff, including the per-driver assignment counter that bounds how many
// orders a driver may carry concurrently.
package employee

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Employee roles known to the fulfillment workflow.
const (
	RoleDriver         = "driver"
	RolePackingStaff   = "packing-staff"
	RoleStorageOfficer = "storage-officer"
	RoleDispatcher     = "dispatcher"
)

var (
	// ErrEmployeeIsNotConstructed is returned when an Employee was not created
	// through NewEmployee or RestoreEmployee.
	ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee or RestoreEmployee")

	// ErrDriverAtCapacity is returned when taking an assignment would push the
	// driver past their concurrency limit.
	ErrDriverAtCapacity = errors.New("driver at maximum concurrent assignments")

	// ErrNoAssignmentsToRelease is returned when releasing a slot on a driver
	// that carries no assignments. It signals a bookkeeping bug upstream.
	ErrNoAssignmentsToRelease = errors.New("driver has no assignments to release")
)

// Employee is a staff member. For drivers, currentAssignments/maxAssignments
// bound how many orders they carry at once.
//
// The in-memory TakeAssignment/ReleaseAssignment methods express the business
// rule; the persistence adapter enforces the same bound atomically with a
// conditional update so that two concurrent assignments cannot both pass the
// check against a stale counter.
type Employee struct {
	id                 kernel.UUID
	name               string
	phone              string
	roles              []string
	currentAssignments int
	maxAssignments     int
	guard              guard.ConstructorGuard
}

// NewEmployee creates an employee with no current assignments.
// maxAssignments must be positive for employees holding the driver role.
func NewEmployee(id kernel.UUID, name, phone string, roles []string, maxAssignments int) (*Employee, error) {
	e := &Employee{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setName(name),
		e.setRoles(roles, maxAssignments),
	); err != nil {
		return nil, err
	}

	e.phone = phone
	e.maxAssignments = maxAssignments
	return e, nil
}

// RestoreEmployee reconstructs an employee from persistence, including the
// current assignment counter.
func RestoreEmployee(
	id kernel.UUID,
	name, phone string,
	roles []string,
	currentAssignments, maxAssignments int,
) (*Employee, error) {
	e, err := NewEmployee(id, name, phone, roles, maxAssignments)
	if err != nil {
		return nil, err
	}

	if currentAssignments < 0 || currentAssignments > maxAssignments {
		return nil, errs.NewValueIsOutOfRangeError("currentAssignments", currentAssignments, 0, maxAssignments)
	}
	e.currentAssignments = currentAssignments
	return e, nil
}

// Validate ensures the Employee was created through a constructor.
func (e *Employee) Validate() error {
	if e == nil {
		return ErrEmployeeIsNotConstructed
	}
	return e.guard.Validate(ErrEmployeeIsNotConstructed)
}

// ID returns the employee's unique identifier.
func (e *Employee) ID() kernel.UUID {
	return e.id
}

// Name returns the employee's display name.
func (e *Employee) Name() string {
	return e.name
}

// Phone returns the employee's contact number.
func (e *Employee) Phone() string {
	return e.phone
}

// Roles returns the employee's workflow roles.
func (e *Employee) Roles() []string {
	return e.roles
}

// HasRole reports whether the employee holds the given role.
func (e *Employee) HasRole(role string) bool {
	for _, r := range e.roles {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentAssignments returns how many orders the employee currently carries.
func (e *Employee) CurrentAssignments() int {
	return e.currentAssignments
}

// MaxAssignments returns the concurrency limit.
func (e *Employee) MaxAssignments() int {
	return e.maxAssignments
}

// AtCapacity reports whether the employee can take no further assignments.
func (e *Employee) AtCapacity() bool {
	return e.currentAssignments >= e.maxAssignments
}

// TakeAssignment increments the assignment counter, rejecting the take when
// the employee is already at capacity.
func (e *Employee) TakeAssignment() error {
	if e.AtCapacity() {
		return ErrDriverAtCapacity
	}
	e.currentAssignments++
	return nil
}

// ReleaseAssignment decrements the assignment counter when an order reaches a
// terminal state.
func (e *Employee) ReleaseAssignment() error {
	if e.currentAssignments == 0 {
		return ErrNoAssignmentsToRelease
	}
	e.currentAssignments--
	return nil
}

func (e *Employee) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Employee) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	e.name = name
	return nil
}

func (e *Employee) setRoles(roles []string, maxAssignments int) error {
	if len(roles) == 0 {
		return errs.NewValueIsRequiredError("roles")
	}
	for _, r := range roles {
		if r == RoleDriver && maxAssignments <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("maxAssignments is invalid",
				fmt.Errorf("%d is not greater than 0 for a driver", maxAssignments))
		}
	}
	e.roles = roles
	return nil
}
