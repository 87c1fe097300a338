package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the stage-by-stage progress view of one
// order for customer-facing tracking pages.
//
// Example:
//
//	query, err := NewGetOrderTrackingQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load tracking view: %w", err)
//	}
//	for _, stage := range view.Stages {
//	    fmt.Printf("%s completed=%v\n", stage.Stage, stage.Completed)
//	}
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a query for one order's tracking view.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return GetOrderTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to look up.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StageView is one workflow stage of the tracking response, in display form.
type StageView struct {
	Stage       string                `json:"stage"`
	Completed   bool                  `json:"completed"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
	Actor       string                `json:"actor,omitempty"`
	Payload     tracking.StagePayload `json:"payload"`
}

// GetOrderTrackingQueryResponse is the tracking view of one order. Stages are
// listed in workflow order, incomplete ones included.
type GetOrderTrackingQueryResponse struct {
	OrderID         kernel.UUID `json:"orderId"`
	CurrentStatus   string      `json:"currentStatus"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Stages          []StageView `json:"stages"`
}
