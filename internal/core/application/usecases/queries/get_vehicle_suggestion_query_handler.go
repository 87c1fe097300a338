package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetVehicleSuggestionQueryHandler runs the fit selection over the live
// catalog. Unlike the other read models this one goes through the aggregate:
// the estimate and the ranking are domain logic, not a projection.
type GetVehicleSuggestionQueryHandler struct {
	orders    ports.OrderRepository
	catalog   ports.VehicleRepository
	estimator services.LoadEstimator
	selector  services.VehicleSelector
}

// NewGetVehicleSuggestionQueryHandler creates a handler for vehicle
// suggestion queries.
func NewGetVehicleSuggestionQueryHandler(
	orders ports.OrderRepository,
	catalog ports.VehicleRepository,
) GetVehicleSuggestionQueryHandler {
	return GetVehicleSuggestionQueryHandler{
		orders:    orders,
		catalog:   catalog,
		estimator: services.NewLoadEstimator(),
		selector:  services.NewVehicleSelector(),
	}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// does not exist and ErrNoFeasibleVehicle when no active vehicle can carry
// the order's estimated load.
func (h GetVehicleSuggestionQueryHandler) Handle(
	ctx context.Context,
	query GetVehicleSuggestionQuery,
) (GetVehicleSuggestionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetVehicleSuggestionQueryResponse{}, err
	}

	ord, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetVehicleSuggestionQueryResponse{}, err
	}

	req, err := h.estimator.Estimate(ord)
	if err != nil {
		return GetVehicleSuggestionQueryResponse{}, err
	}

	vehicles, err := h.catalog.GetAllActive(ctx)
	if err != nil {
		return GetVehicleSuggestionQueryResponse{}, err
	}

	best, err := h.selector.SelectBest(req, vehicles)
	if err != nil {
		return GetVehicleSuggestionQueryResponse{}, err
	}

	return GetVehicleSuggestionQueryResponse{
		OrderID:         ord.ID(),
		VehicleID:       best.ID(),
		VehicleType:     best.Type(),
		EfficiencyScore: best.EfficiencyScore(),
		Requirements: LoadRequirementsView{
			Volume:   req.Volume,
			Weight:   req.Weight,
			Packages: req.Packages,
		},
	}, nil
}
