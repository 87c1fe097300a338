// Package employeerepo provides data transfer objects and mapping functions
// for employee persistence, including the per-driver assignment counter.
package employeerepo

import (
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EmployeeDTO represents the database structure for persisting employees.
// Roles are stored as a native text array.
type EmployeeDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name               string         `gorm:"type:varchar(255);not null"`
	Phone              string         `gorm:"type:varchar(32)"`
	Roles              pq.StringArray `gorm:"type:text[];not null"`
	CurrentAssignments int            `gorm:"type:int;not null;default:0"`
	MaxAssignments     int            `gorm:"type:int;not null"`
}

// TableName specifies the database table name for employees.
func (EmployeeDTO) TableName() string {
	return "employees"
}

// fromDomain converts an employee aggregate to its database representation.
func fromDomain(aggregate *employee.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:                 aggregate.ID().Bytes(),
		Name:               aggregate.Name(),
		Phone:              aggregate.Phone(),
		Roles:              pq.StringArray(aggregate.Roles()),
		CurrentAssignments: aggregate.CurrentAssignments(),
		MaxAssignments:     aggregate.MaxAssignments(),
	}
}

// toDomain converts a database DTO to an employee aggregate using RestoreEmployee.
func toDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return employee.RestoreEmployee(
		id, dto.Name, dto.Phone, []string(dto.Roles),
		dto.CurrentAssignments, dto.MaxAssignments,
	)
}
