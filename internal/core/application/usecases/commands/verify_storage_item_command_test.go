package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerifyStorageItemCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewVerifyStorageItemCommand(orderID, 1, "storage.smirnov")
		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, 1, cmd.ItemIndex())
		assert.Equal(t, "storage.smirnov", cmd.Actor())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("negative item index", func(t *testing.T) {
		_, err := commands.NewVerifyStorageItemCommand(orderID, -1, "storage.smirnov")
		require.ErrorIs(t, err, commands.ErrItemIndexIsNegative)
	})

	t.Run("empty actor", func(t *testing.T) {
		_, err := commands.NewVerifyStorageItemCommand(orderID, 0, "")
		require.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.VerifyStorageItemCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrVerifyStorageItemCommandIsNotConstructed)
	})
}
