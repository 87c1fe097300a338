package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for workflow tracking
// records. Records are keyed by order: at most one exists per order id.
type TrackingRepository interface {
	// Add persists a newly created tracking record.
	Add(ctx context.Context, record *tracking.TrackingRecord) error

	// Update persists changes to an existing tracking record.
	Update(ctx context.Context, record *tracking.TrackingRecord) error

	// GetByOrderID retrieves the tracking record for an order. Returns an
	// ObjectNotFoundError when the order has not been touched by any
	// stage-aware operation yet; callers create the record lazily in that case.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*tracking.TrackingRecord, error)
}
