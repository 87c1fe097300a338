package services

import (
	"math"

	"fulfillment/internal/core/domain/model/order"
)

const (
	// unitVolume is the volume assumed for one item line, in cubic meters.
	// No per-product volume data exists in the catalog, so this is a coarse
	// approximation, not a measurement.
	unitVolume = 0.1

	// fallbackUnitWeight is assumed per unit, in kilograms, when an item's
	// free-text weight has no parseable leading numeric token.
	fallbackUnitWeight = 1.0
)

// Requirements is the estimated physical footprint of one order: what the
// assigned vehicle must be able to carry.
type Requirements struct {
	// Volume in cubic meters.
	Volume float64
	// Weight in kilograms.
	Weight float64
	// Packages is the number of item lines, each handled as one package.
	Packages int
}

// LoadEstimator derives an order's Requirements from its item lines.
//
// The estimate is deliberately coarse: package count is the number of item
// lines, volume is a fixed constant per line, and weight is parsed from each
// item's free-text weight string with a fixed per-unit fallback when parsing
// fails. Malformed weight strings never produce an error; the fallback
// always applies.
type LoadEstimator struct{}

// NewLoadEstimator creates a LoadEstimator.
func NewLoadEstimator() LoadEstimator {
	return LoadEstimator{}
}

// Estimate computes the order's requirements. All three outputs are rounded
// to two decimal places.
func (e LoadEstimator) Estimate(o *order.Order) (Requirements, error) {
	if err := o.Validate(); err != nil {
		return Requirements{}, err
	}

	items := o.Items()

	var weight float64
	for _, item := range items {
		unit, ok := item.Weight().Magnitude()
		if !ok {
			unit = fallbackUnitWeight
		}
		weight += unit * float64(item.Quantity())
	}

	return Requirements{
		Volume:   round2(float64(len(items)) * unitVolume),
		Weight:   round2(weight),
		Packages: len(items),
	}, nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
