package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconcilerOrder(t *testing.T, status order.Status, items []*order.Item, assignment *order.AssignmentDetails) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(
		kernel.NewUUID(), status,
		"Anna Kuznetsova", "+79990001122", "12 Lesnaya St",
		1500, items, assignment,
	)
	require.NoError(t, err)
	return o
}

func reconcilerRecord(t *testing.T, o *order.Order) *tracking.TrackingRecord {
	t.Helper()

	record, err := tracking.NewTrackingRecord(kernel.NewUUID(), o.ID(), tracking.Seed{
		CurrentStatus:   o.Status(),
		CustomerName:    o.CustomerName(),
		CustomerPhone:   o.CustomerPhone(),
		DeliveryAddress: o.DeliveryAddress(),
	})
	require.NoError(t, err)
	return record
}

func plainItems(t *testing.T, n int) []*order.Item {
	t.Helper()

	items := make([]*order.Item, 0, n)
	for range n {
		item, err := order.NewItem(kernel.NewUUID(), 1, kernel.NewWeight("1kg"))
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func packedItems(t *testing.T, n int, actor string, at time.Time) []*order.Item {
	t.Helper()

	items := make([]*order.Item, 0, n)
	for range n {
		item, err := order.RestoreItem(
			kernel.NewUUID(), 1, kernel.NewWeight("1kg"),
			order.RestoreVerification(true, actor, at),
			order.Verification{}, order.Verification{}, nil,
		)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func TestTrackingReconciler_Reconcile(t *testing.T) {
	reconciler := services.NewTrackingReconciler()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should complete every expected stage in one pass", func(t *testing.T) {
		o := reconcilerOrder(t, order.ReadyToPickup, plainItems(t, 1), nil)
		record := reconcilerRecord(t, o)

		changed, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t,
			[]tracking.Stage{tracking.StagePending, tracking.StagePacked, tracking.StageStorage},
			record.CompletedStages())
		assert.True(t, record.HasPrefixShape())
	})

	t.Run("should change nothing on a second pass", func(t *testing.T) {
		o := reconcilerOrder(t, order.ReadyToPickup, plainItems(t, 1), nil)
		record := reconcilerRecord(t, o)

		changed, err := reconciler.Reconcile(o, record, now)
		require.NoError(t, err)
		require.True(t, changed)

		changed, err = reconciler.Reconcile(o, record, now.Add(time.Hour))

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should leave untrackable orders untouched", func(t *testing.T) {
		o := reconcilerOrder(t, order.Cancelled, plainItems(t, 1), nil)
		record := reconcilerRecord(t, o)

		changed, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, record.CompletedStages())
	})

	t.Run("should use the packing audit trail for the packed stage", func(t *testing.T) {
		packedAt := time.Date(2026, 2, 28, 16, 45, 0, 0, time.UTC)
		o := reconcilerOrder(t, order.Packed, packedItems(t, 2, "warehouse:petrov", packedAt), nil)
		record := reconcilerRecord(t, o)

		_, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		state, stageErr := record.Stage(tracking.StagePacked)
		require.NoError(t, stageErr)
		assert.True(t, state.Completed())
		assert.Equal(t, "warehouse:petrov", state.Actor())
		assert.Equal(t, packedAt, *state.CompletedAt())
	})

	t.Run("should fall back to the system actor and now", func(t *testing.T) {
		o := reconcilerOrder(t, order.Packed, plainItems(t, 1), nil)
		record := reconcilerRecord(t, o)

		_, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		state, stageErr := record.Stage(tracking.StagePacked)
		require.NoError(t, stageErr)
		assert.Equal(t, services.SystemActor, state.Actor())
		assert.Equal(t, now, *state.CompletedAt())
	})

	t.Run("should fill the assigned stage from assignment details", func(t *testing.T) {
		assignedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		assignment, err := order.NewAssignmentDetails(
			kernel.NewUUID(), kernel.NewUUID(), "Sergey Volkov",
			kernel.NewUUID(), "Dispatcher Ivanova", assignedAt, "",
		)
		require.NoError(t, err)

		o := reconcilerOrder(t, order.Loading, plainItems(t, 1), &assignment)
		record := reconcilerRecord(t, o)

		_, err = reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		state, stageErr := record.Stage(tracking.StageAssigned)
		require.NoError(t, stageErr)
		assert.True(t, state.Completed())
		assert.Equal(t, "Dispatcher Ivanova", state.Actor())
		assert.Equal(t, assignedAt, *state.CompletedAt())
		assert.Equal(t, "Sergey Volkov", state.Payload().DriverName)
		assert.Equal(t, assignment.DriverID.String(), state.Payload().DriverID)
	})

	t.Run("should fall back to the system actor when the assigner name is blank", func(t *testing.T) {
		assignedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		assignment, err := order.NewAssignmentDetails(
			kernel.NewUUID(), kernel.NewUUID(), "Sergey Volkov",
			kernel.NewUUID(), "", assignedAt, "",
		)
		require.NoError(t, err)

		o := reconcilerOrder(t, order.Loading, plainItems(t, 1), &assignment)
		record := reconcilerRecord(t, o)

		changed, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		assert.True(t, changed)
		state, stageErr := record.Stage(tracking.StageAssigned)
		require.NoError(t, stageErr)
		assert.True(t, state.Completed())
		assert.Equal(t, services.SystemActor, state.Actor())
		assert.Equal(t, assignedAt, *state.CompletedAt())
		assert.Equal(t, "Sergey Volkov", state.Payload().DriverName)
	})

	t.Run("should not clobber detail written by a direct operation", func(t *testing.T) {
		o := reconcilerOrder(t, order.Packed, plainItems(t, 1), nil)
		record := reconcilerRecord(t, o)
		direct := time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC)
		require.NoError(t, record.CompleteStage(tracking.StagePacked, direct, "warehouse:ivanov", tracking.StagePayload{}))

		changed, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		// Only the pending stage was missing.
		assert.True(t, changed)
		state, stageErr := record.Stage(tracking.StagePacked)
		require.NoError(t, stageErr)
		assert.Equal(t, "warehouse:ivanov", state.Actor())
		assert.Equal(t, direct, *state.CompletedAt())
	})

	t.Run("should mirror the order status into the record", func(t *testing.T) {
		o := reconcilerOrder(t, order.Packed, packedItems(t, 1, "warehouse:petrov", now), nil)
		record, err := tracking.NewTrackingRecord(kernel.NewUUID(), o.ID(), tracking.Seed{
			CurrentStatus: order.Confirmed,
		})
		require.NoError(t, err)

		changed, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Packed, record.CurrentStatus())
	})

	t.Run("should report a pure status mirror repair as a change", func(t *testing.T) {
		o := reconcilerOrder(t, order.Processing, plainItems(t, 1), nil)
		record, err := tracking.NewTrackingRecord(kernel.NewUUID(), o.ID(), tracking.Seed{
			CurrentStatus: order.Confirmed,
		})
		require.NoError(t, err)
		require.NoError(t, record.CompleteStage(tracking.StagePending, now, services.SystemActor, tracking.StagePayload{}))

		changed, err := reconciler.Reconcile(o, record, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Processing, record.CurrentStatus())
	})

	t.Run("should reject an order that was not constructed", func(t *testing.T) {
		record := reconcilerRecord(t, reconcilerOrder(t, order.Packed, plainItems(t, 1), nil))

		_, err := reconciler.Reconcile(&order.Order{}, record, now)

		require.Error(t, err)
	})
}
