package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
	"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
)

// GetUnassignedOrdersQuery retrieves the orders waiting for a vehicle. These
// are the orders a dispatcher can act on: storage check passed, no assignment
// yet.
//
// Example:
//
//	query := NewGetUnassignedOrdersQuery()
//	waiting, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load dispatch queue: %w", err)
//	}
//	fmt.Printf("%d orders waiting for a vehicle\n", len(waiting))
type GetUnassignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates a query for the dispatch queue.
// This is a parameterless query.
func NewGetUnassignedOrdersQuery() GetUnassignedOrdersQuery {
	return GetUnassignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

// GetUnassignedOrdersQueryResponse is one row of the dispatch queue.
type GetUnassignedOrdersQueryResponse struct {
	ID           kernel.UUID `json:"id"`
	CustomerName string      `json:"customerName"`
	Status       string      `json:"status"`
	TotalAmount  float64     `json:"totalAmount"`
	ItemCount    int         `json:"itemCount"`
}
