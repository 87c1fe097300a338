package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartRouteCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewStartRouteCommand(orderID, "driver.volkov")
		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, "driver.volkov", cmd.Actor())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("invalid order id", func(t *testing.T) {
		_, err := commands.NewStartRouteCommand(kernel.UUID{}, "driver.volkov")
		require.Error(t, err)
	})

	t.Run("empty actor", func(t *testing.T) {
		_, err := commands.NewStartRouteCommand(orderID, "")
		require.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.StartRouteCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrStartRouteCommandIsNotConstructed)
	})
}
