package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetVehicleSuggestionQueryIsNotConstructed = errors.New(
	"GetVehicleSuggestionQuery must be created via NewGetVehicleSuggestionQuery constructor",
)

// GetVehicleSuggestionQuery asks which catalog vehicle fits one order best.
// Dispatchers use the answer to pre-fill the assignment form; the suggestion
// is advisory and the actual assignment still validates whatever vehicle the
// dispatcher picks.
type GetVehicleSuggestionQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetVehicleSuggestionQuery creates a suggestion query for one order.
func NewGetVehicleSuggestionQuery(orderID kernel.UUID) (GetVehicleSuggestionQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetVehicleSuggestionQuery{}, err
	}

	return GetVehicleSuggestionQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVehicleSuggestionQuery) Validate() error {
	return q.guard.Validate(ErrGetVehicleSuggestionQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to suggest a vehicle for.
func (q GetVehicleSuggestionQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LoadRequirementsView is the estimated footprint the suggestion was ranked
// against, echoed back so dispatchers can sanity-check the pick.
type LoadRequirementsView struct {
	Volume   float64 `json:"volume"`
	Weight   float64 `json:"weight"`
	Packages int     `json:"packages"`
}

// GetVehicleSuggestionQueryResponse names the most efficient feasible vehicle
// for the order.
type GetVehicleSuggestionQueryResponse struct {
	OrderID         kernel.UUID          `json:"orderId"`
	VehicleID       kernel.UUID          `json:"vehicleId"`
	VehicleType     string               `json:"vehicleType"`
	EfficiencyScore float64              `json:"efficiencyScore"`
	Requirements    LoadRequirementsView `json:"requirements"`
}
