package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/vehicle"
)

var (
	// ErrNoFeasibleVehicle is returned when no active vehicle in the catalog
	// can carry the order. Callers must surface this as a hard error: an order
	// cannot be assigned to an undersized vehicle.
	ErrNoFeasibleVehicle = errors.New("no feasible vehicle")

	// ErrCapacityExceeded is the sentinel wrapped by CapacityExceededError,
	// for classification via errors.Is.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// CapacityExceededError reports one capacity constraint an order's
// requirements violate on a specific vehicle, with enough detail for a
// dispatcher to pick a different vehicle without re-deriving the requirements.
type CapacityExceededError struct {
	Constraint string
	Required   float64
	Available  float64
}

// Error implements the error interface.
func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s required %.2f exceeds vehicle maximum %.2f",
		ErrCapacityExceeded, e.Constraint, e.Required, e.Available)
}

// Unwrap returns the sentinel ErrCapacityExceeded for errors.Is matching.
func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// VehicleSelector is a domain service that filters the vehicle catalog down
// to feasible candidates for an order and ranks them by efficiency.
//
// Selection algorithm:
//   - Only active vehicles are considered
//   - A vehicle is feasible when every requirement fits within its limits
//   - Feasible vehicles are ranked ascending by EfficiencyScore, so the
//     smallest vehicle that still fits wins
//   - Ties keep the first vehicle in catalog iteration order; the catalog's
//     priority field is intentionally not consulted here
type VehicleSelector struct{}

// NewVehicleSelector creates a VehicleSelector.
func NewVehicleSelector() VehicleSelector {
	return VehicleSelector{}
}

// SelectBest returns the most efficient feasible vehicle for the given
// requirements, or ErrNoFeasibleVehicle when the catalog holds none.
// The returned suggestion is advisory: assignment validates the dispatcher's
// actual vehicle choice through CheckCapacity instead.
func (s VehicleSelector) SelectBest(req Requirements, vehicles []*vehicle.Vehicle) (*vehicle.Vehicle, error) {
	var (
		best      *vehicle.Vehicle
		bestScore float64
	)

	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if !v.IsActive() || !v.Fits(req.Volume, req.Weight, req.Packages) {
			continue
		}

		score := v.EfficiencyScore()
		if best == nil || score < bestScore {
			best = v
			bestScore = score
		}
	}

	if best == nil {
		return nil, ErrNoFeasibleVehicle
	}
	return best, nil
}

// CheckCapacity validates the requirements against one specific vehicle,
// independent of whether a better vehicle exists. On violation it returns a
// CapacityExceededError per failed constraint, joined.
func (s VehicleSelector) CheckCapacity(req Requirements, v *vehicle.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}

	specs := v.Specifications()
	var violations []error

	if req.Volume > specs.MaxVolume {
		violations = append(violations, &CapacityExceededError{
			Constraint: "volume",
			Required:   req.Volume,
			Available:  specs.MaxVolume,
		})
	}
	if req.Weight > specs.MaxWeight {
		violations = append(violations, &CapacityExceededError{
			Constraint: "weight",
			Required:   req.Weight,
			Available:  specs.MaxWeight,
		})
	}
	if req.Packages > specs.MaxPackages {
		violations = append(violations, &CapacityExceededError{
			Constraint: "packages",
			Required:   float64(req.Packages),
			Available:  float64(specs.MaxPackages),
		})
	}

	return errors.Join(violations...)
}
