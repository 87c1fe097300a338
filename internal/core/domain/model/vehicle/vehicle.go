// Package vehicle provides the read-only vehicle catalog entity consulted
// during order assignment. Vehicles are managed by an external fleet system;
// this core only reads their capacity specifications.
package vehicle

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle was not created
// through NewVehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle")

// Specifications are the hard capacity limits of one vehicle.
// Weight is in kilograms, volume in cubic meters.
type Specifications struct {
	MaxWeight   float64
	MaxVolume   float64
	MaxPackages int
}

// Validate checks that all capacity limits are positive.
func (s Specifications) Validate() error {
	if s.MaxWeight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxWeight is invalid",
			fmt.Errorf("%f is not greater than 0", s.MaxWeight))
	}
	if s.MaxVolume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxVolume is invalid",
			fmt.Errorf("%f is not greater than 0", s.MaxVolume))
	}
	if s.MaxPackages <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxPackages is invalid",
			fmt.Errorf("%d is not greater than 0", s.MaxPackages))
	}
	return nil
}

// Vehicle is a catalog entry describing one physical vehicle. It is read-only
// from this core's perspective: assignment consults its specifications but
// never mutates it.
type Vehicle struct {
	id          kernel.UUID
	vehicleType string
	specs       Specifications
	priority    int
	isActive    bool
	guard       guard.ConstructorGuard
}

// NewVehicle creates a catalog entry with validated specifications.
func NewVehicle(id kernel.UUID, vehicleType string, specs Specifications, priority int, isActive bool) (*Vehicle, error) {
	if err := errors.Join(id.Validate(), specs.Validate()); err != nil {
		return nil, err
	}
	if vehicleType == "" {
		return nil, errs.NewValueIsRequiredError("vehicleType")
	}

	return &Vehicle{
		id:          id,
		vehicleType: vehicleType,
		specs:       specs,
		priority:    priority,
		isActive:    isActive,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Vehicle was created through NewVehicle.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// Type returns the human-readable vehicle class, e.g. "van" or "box-truck".
func (v *Vehicle) Type() string {
	return v.vehicleType
}

// Specifications returns the vehicle's capacity limits.
func (v *Vehicle) Specifications() Specifications {
	return v.specs
}

// Priority returns the catalog's dispatch priority. The fit selector does not
// consult it when breaking efficiency ties; see the selector's documentation.
func (v *Vehicle) Priority() int {
	return v.priority
}

// IsActive reports whether the vehicle is available for assignment.
func (v *Vehicle) IsActive() bool {
	return v.isActive
}

// Fits reports whether the given load fits within every capacity limit.
func (v *Vehicle) Fits(volume, weight float64, packages int) bool {
	return v.specs.MaxVolume >= volume &&
		v.specs.MaxWeight >= weight &&
		v.specs.MaxPackages >= packages
}

// EfficiencyScore is the proxy used to rank feasible vehicles: the sum of the
// three capacity limits. A smaller score means a smaller vehicle, and the
// smallest vehicle that still fits wins.
func (v *Vehicle) EfficiencyScore() float64 {
	return v.specs.MaxVolume + v.specs.MaxWeight + float64(v.specs.MaxPackages)
}
