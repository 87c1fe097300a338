// Package vehiclerepo provides read-only access to the externally managed
// vehicle catalog. The fulfillment core never writes vehicle rows; the fleet
// system owns them.
package vehiclerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure of a catalog vehicle.
type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleType string    `gorm:"type:varchar(64);not null"`
	MaxWeight   float64   `gorm:"not null"`
	MaxVolume   float64   `gorm:"not null"`
	MaxPackages int       `gorm:"not null"`
	Priority    int       `gorm:"not null;index"`
	IsActive    bool      `gorm:"not null;index"`
}

// TableName specifies the database table name for catalog vehicles.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// toDomain converts a database DTO to a vehicle catalog entity.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return vehicle.NewVehicle(id, dto.VehicleType, vehicle.Specifications{
		MaxWeight:   dto.MaxWeight,
		MaxVolume:   dto.MaxVolume,
		MaxPackages: dto.MaxPackages,
	}, dto.Priority, dto.IsActive)
}
