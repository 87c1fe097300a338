// Package ports defines repository interfaces for the fulfillment domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its items and assignment details. Returns an ObjectNotFoundError when
	// no order exists for the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatuses retrieves every order whose status is in the given
	// set. Reconciliation passes use this with a phase's trackable filter.
	GetAllInStatuses(ctx context.Context, statuses []order.Status) ([]*order.Order, error)
}
