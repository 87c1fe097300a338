package vehiclerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVehicleRepository implements VehicleRepository using GORM.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GORM vehicle repository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Get retrieves one catalog vehicle by ID.
func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every vehicle available for assignment. The ordering
// by priority then id is the stable catalog order the fit selector's
// first-wins tie-break depends on.
func (r *GormVehicleRepository) GetAllActive(ctx context.Context) ([]*vehicle.Vehicle, error) {
	var dtos []VehicleDTO
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	vehicles := make([]*vehicle.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		v, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}
