package employeerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEmployeeRepository implements EmployeeRepository using GORM.
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GORM employee repository.
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Add saves a new employee to the database. The roster is normally managed by
// the staff system; this exists for seeding and tests.
func (r *GormEmployeeRepository) Add(ctx context.Context, aggregate *employee.Employee) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an employee by ID.
func (r *GormEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ReserveAssignment increments the driver's assignment counter if and only if
// it is below the maximum. The check and the increment are one statement, so
// two concurrent reservations can never push a driver past the bound.
func (r *GormEmployeeRepository) ReserveAssignment(ctx context.Context, driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE employees
		SET current_assignments = current_assignments + 1
		WHERE id = ? AND current_assignments < max_assignments
	`, driverID.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// No row changed: either the driver is full or it does not exist.
	var count int64
	err := r.db.WithContext(ctx).Model(&EmployeeDTO{}).
		Where("id = ?", driverID.Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("employee", driverID.String())
	}
	return employee.ErrDriverAtCapacity
}

// ReleaseAssignment decrements the driver's assignment counter without ever
// taking it below zero.
func (r *GormEmployeeRepository) ReleaseAssignment(ctx context.Context, driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE employees
		SET current_assignments = current_assignments - 1
		WHERE id = ? AND current_assignments > 0
	`, driverID.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&EmployeeDTO{}).
		Where("id = ?", driverID.Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("employee", driverID.String())
	}
	return employee.ErrNoAssignmentsToRelease
}
