package vehicle_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpecs() vehicle.Specifications {
	return vehicle.Specifications{MaxWeight: 100, MaxVolume: 10, MaxPackages: 20}
}

func TestNewVehicle(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create valid vehicle", func(t *testing.T) {
		v, err := vehicle.NewVehicle(validID, "van", validSpecs(), 2, true)

		require.NoError(t, err)
		require.NoError(t, v.Validate())
		assert.True(t, v.ID().IsEqual(validID))
		assert.Equal(t, "van", v.Type())
		assert.Equal(t, validSpecs(), v.Specifications())
		assert.Equal(t, 2, v.Priority())
		assert.True(t, v.IsActive())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		v, err := vehicle.NewVehicle(invalidID, "van", validSpecs(), 1, true)

		require.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("should fail with empty type", func(t *testing.T) {
		v, err := vehicle.NewVehicle(validID, "", validSpecs(), 1, true)

		require.Error(t, err)
		assert.Nil(t, v)
		assert.Contains(t, err.Error(), "vehicleType")
	})

	t.Run("should fail with non-positive capacity limits", func(t *testing.T) {
		specs := validSpecs()
		specs.MaxWeight = 0

		v, err := vehicle.NewVehicle(validID, "van", specs, 1, true)

		require.Error(t, err)
		assert.Nil(t, v)
		assert.Contains(t, err.Error(), "maxWeight is invalid")
	})
}

func TestVehicle_Fits(t *testing.T) {
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "van", validSpecs(), 1, true)
	require.NoError(t, err)

	t.Run("should fit a load within every limit", func(t *testing.T) {
		assert.True(t, v.Fits(5, 50, 10))
	})

	t.Run("should fit a load exactly at the limits", func(t *testing.T) {
		assert.True(t, v.Fits(10, 100, 20))
	})

	t.Run("should reject a load over any single limit", func(t *testing.T) {
		assert.False(t, v.Fits(11, 50, 10))
		assert.False(t, v.Fits(5, 101, 10))
		assert.False(t, v.Fits(5, 50, 21))
	})
}

func TestVehicle_EfficiencyScore(t *testing.T) {
	small, err := vehicle.NewVehicle(kernel.NewUUID(), "scooter",
		vehicle.Specifications{MaxWeight: 10, MaxVolume: 0.3, MaxPackages: 2}, 1, true)
	require.NoError(t, err)

	big, err := vehicle.NewVehicle(kernel.NewUUID(), "box-truck",
		vehicle.Specifications{MaxWeight: 1000, MaxVolume: 40, MaxPackages: 100}, 1, true)
	require.NoError(t, err)

	assert.Less(t, small.EfficiencyScore(), big.EfficiencyScore())
	assert.InDelta(t, 12.3, small.EfficiencyScore(), 0.001)
}
