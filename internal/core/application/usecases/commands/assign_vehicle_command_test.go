package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignVehicleCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	staffID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewAssignVehicleCommand(
			orderID, vehicleID, driverID, staffID, "dispatcher.petrova", "fragile",
		)
		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, vehicleID, cmd.VehicleID())
		assert.Equal(t, driverID, cmd.DriverID())
		assert.Equal(t, staffID, cmd.AssignedBy())
		assert.Equal(t, "dispatcher.petrova", cmd.AssignedByName())
		assert.Equal(t, "fragile", cmd.Notes())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("notes optional", func(t *testing.T) {
		cmd, err := commands.NewAssignVehicleCommand(
			orderID, vehicleID, driverID, staffID, "dispatcher.petrova", "",
		)
		require.NoError(t, err)
		assert.Empty(t, cmd.Notes())
	})

	t.Run("invalid vehicle id", func(t *testing.T) {
		_, err := commands.NewAssignVehicleCommand(
			orderID, kernel.UUID{}, driverID, staffID, "dispatcher.petrova", "",
		)
		require.Error(t, err)
	})

	t.Run("empty assigner name", func(t *testing.T) {
		_, err := commands.NewAssignVehicleCommand(
			orderID, vehicleID, driverID, staffID, "", "",
		)
		require.ErrorIs(t, err, commands.ErrAssignedByNameIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AssignVehicleCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrAssignVehicleCommandIsNotConstructed)
	})
}
