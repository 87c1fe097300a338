package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept every known lifecycle value", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			assert.NoError(t, s.Validate(), "status %s should be valid", s)
		}
	})

	t.Run("should reject unknown value", func(t *testing.T) {
		err := order.Status("teleported").Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid order status")
	})

	t.Run("should reject empty value", func(t *testing.T) {
		err := order.Status("").Validate()
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[order.Status]bool{
		order.Complete:  true,
		order.Cancelled: true,
		order.Refunded:  true,
		order.Returned:  true,
	}

	for _, s := range order.AllStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), "IsTerminal(%s)", s)
	}
}

func TestStatus_Allocate(t *testing.T) {
	t.Run("should allocate from ready-to-pickup", func(t *testing.T) {
		next, err := order.ReadyToPickup.Allocate()
		require.NoError(t, err)
		assert.Equal(t, order.AllocatedDriver, next)
	})

	t.Run("should reject storage-check while verification is still running", func(t *testing.T) {
		_, err := order.StorageCheck.Allocate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to allocate")
	})

	t.Run("should reject every other status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			if s == order.ReadyToPickup {
				continue
			}
			_, err := s.Allocate()
			require.Error(t, err, "Allocate from %s should fail", s)
			assert.Contains(t, err.Error(), "not a valid status to allocate")
		}
	})
}

func TestStatus_StartRoute(t *testing.T) {
	allowed := []order.Status{order.AllocatedDriver, order.PickedUp, order.Loading, order.Loaded}

	t.Run("should start route from any post-allocation status", func(t *testing.T) {
		for _, s := range allowed {
			next, err := s.StartRoute()
			require.NoError(t, err, "StartRoute from %s", s)
			assert.Equal(t, order.OnWay, next)
		}
	})

	t.Run("should reject statuses before allocation", func(t *testing.T) {
		_, err := order.Packed.StartRoute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to start a route")
	})

	t.Run("should reject an order already on the way", func(t *testing.T) {
		_, err := order.OnWay.StartRoute()
		require.Error(t, err)
	})
}

func TestStatus_CompleteDelivery(t *testing.T) {
	allowed := []order.Status{order.OnWay, order.DriverConfirmed, order.Arrived}

	t.Run("should complete from in-transit statuses", func(t *testing.T) {
		for _, s := range allowed {
			next, err := s.CompleteDelivery()
			require.NoError(t, err, "CompleteDelivery from %s", s)
			assert.Equal(t, order.Processed, next)
		}
	})

	t.Run("should reject an order still in the warehouse", func(t *testing.T) {
		_, err := order.ReadyToPickup.CompleteDelivery()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to complete a delivery")
	})

	t.Run("should reject a processed order", func(t *testing.T) {
		_, err := order.Processed.CompleteDelivery()
		require.Error(t, err)
	})
}
