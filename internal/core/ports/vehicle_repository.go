package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
)

// VehicleRepository defines read-only access to the externally managed
// vehicle catalog. This core never mutates vehicles.
type VehicleRepository interface {
	// Get retrieves one catalog entry by id. Returns an ObjectNotFoundError
	// when no vehicle exists for the id.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetAllActive retrieves every vehicle available for assignment, in
	// stable catalog order. The fit selector relies on that order for its
	// tie-break.
	GetAllActive(ctx context.Context) ([]*vehicle.Vehicle, error)
}
