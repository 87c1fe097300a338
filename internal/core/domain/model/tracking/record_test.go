package tracking_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecord(t *testing.T, status order.Status) *tracking.TrackingRecord {
	t.Helper()

	record, err := tracking.NewTrackingRecord(kernel.NewUUID(), kernel.NewUUID(), tracking.Seed{
		CurrentStatus:   status,
		CustomerName:    "Anna Kuznetsova",
		CustomerPhone:   "+79990001122",
		DeliveryAddress: "12 Lesnaya St",
	})
	require.NoError(t, err)
	return record
}

func TestNewTrackingRecord(t *testing.T) {
	t.Run("should create record with all stages incomplete", func(t *testing.T) {
		record := makeRecord(t, order.Confirmed)

		require.NoError(t, record.Validate())
		assert.Equal(t, order.Confirmed, record.CurrentStatus())
		assert.Equal(t, "Anna Kuznetsova", record.CustomerName())
		assert.Equal(t, "+79990001122", record.CustomerPhone())
		assert.Equal(t, "12 Lesnaya St", record.DeliveryAddress())
		assert.Empty(t, record.CompletedStages())
		assert.True(t, record.HasPrefixShape())

		for _, stage := range tracking.StageSequence() {
			state, err := record.Stage(stage)
			require.NoError(t, err)
			assert.False(t, state.Completed())
		}
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID

		record, err := tracking.NewTrackingRecord(invalidID, kernel.NewUUID(), tracking.Seed{
			CurrentStatus: order.Confirmed,
		})

		require.Error(t, err)
		assert.Nil(t, record)
	})

	t.Run("should fail with unknown seed status", func(t *testing.T) {
		record, err := tracking.NewTrackingRecord(kernel.NewUUID(), kernel.NewUUID(), tracking.Seed{
			CurrentStatus: order.Status("teleported"),
		})

		require.Error(t, err)
		assert.Nil(t, record)
	})
}

func TestRestoreTrackingRecord(t *testing.T) {
	t.Run("should restore completed stages and leave absent ones incomplete", func(t *testing.T) {
		at := time.Now().UTC()
		stages := map[tracking.Stage]tracking.StageRecord{
			tracking.StagePending: tracking.RestoreStageRecord(true, &at, "system", tracking.StagePayload{}),
			tracking.StagePacked:  tracking.RestoreStageRecord(true, &at, "warehouse:petrov", tracking.StagePayload{}),
		}

		record, err := tracking.RestoreTrackingRecord(
			kernel.NewUUID(), kernel.NewUUID(),
			tracking.Seed{CurrentStatus: order.Packed},
			stages,
		)

		require.NoError(t, err)
		assert.Equal(t,
			[]tracking.Stage{tracking.StagePending, tracking.StagePacked},
			record.CompletedStages())

		loaded, err := record.Stage(tracking.StageLoaded)
		require.NoError(t, err)
		assert.False(t, loaded.Completed())
	})

	t.Run("should fail with an unknown stage key", func(t *testing.T) {
		stages := map[tracking.Stage]tracking.StageRecord{
			tracking.Stage("warp"): {},
		}

		record, err := tracking.RestoreTrackingRecord(
			kernel.NewUUID(), kernel.NewUUID(),
			tracking.Seed{CurrentStatus: order.Confirmed},
			stages,
		)

		require.Error(t, err)
		assert.Nil(t, record)
	})
}

func TestTrackingRecord_CompleteStage(t *testing.T) {
	t.Run("should record actor, timestamp and payload", func(t *testing.T) {
		record := makeRecord(t, order.AllocatedDriver)
		at := time.Now().UTC()
		payload := tracking.StagePayload{DriverName: "Sergey Volkov", VehicleType: "van"}

		err := record.CompleteStage(tracking.StageAssigned, at, "Dispatcher Ivanova", payload)

		require.NoError(t, err)
		state, err := record.Stage(tracking.StageAssigned)
		require.NoError(t, err)
		assert.True(t, state.Completed())
		assert.Equal(t, "Dispatcher Ivanova", state.Actor())
		require.NotNil(t, state.CompletedAt())
		assert.Equal(t, at, *state.CompletedAt())
		assert.Equal(t, "Sergey Volkov", state.Payload().DriverName)
	})

	t.Run("should keep original mark on repeated completion", func(t *testing.T) {
		record := makeRecord(t, order.Packed)
		first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, record.CompleteStage(tracking.StagePacked, first, "warehouse:petrov", tracking.StagePayload{}))

		err := record.CompleteStage(tracking.StagePacked, time.Now().UTC(), "warehouse:ivanov", tracking.StagePayload{})

		assert.ErrorIs(t, err, tracking.ErrStageAlreadyCompleted)
		state, stageErr := record.Stage(tracking.StagePacked)
		require.NoError(t, stageErr)
		assert.Equal(t, "warehouse:petrov", state.Actor())
		assert.Equal(t, first, *state.CompletedAt())
	})

	t.Run("should require an actor", func(t *testing.T) {
		record := makeRecord(t, order.Packed)

		err := record.CompleteStage(tracking.StagePacked, time.Now().UTC(), "", tracking.StagePayload{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "actor")
	})

	t.Run("should reject an unknown stage", func(t *testing.T) {
		record := makeRecord(t, order.Packed)

		err := record.CompleteStage(tracking.Stage("warp"), time.Now().UTC(), "system", tracking.StagePayload{})

		require.Error(t, err)
	})

	t.Run("should preserve payload written before completion", func(t *testing.T) {
		record := makeRecord(t, order.Loading)
		require.NoError(t, record.AmendStagePayload(tracking.StageLoaded, tracking.StagePayload{
			VehicleID:       "van-7",
			LoadingProgress: 50,
		}))

		err := record.CompleteStage(tracking.StageLoaded, time.Now().UTC(), "dispatch:orlov", tracking.StagePayload{
			VehicleID:       "should-not-win",
			LoadingProgress: 100,
		})

		require.NoError(t, err)
		state, stageErr := record.Stage(tracking.StageLoaded)
		require.NoError(t, stageErr)
		assert.Equal(t, "van-7", state.Payload().VehicleID)
		assert.InDelta(t, 50, state.Payload().LoadingProgress, 0.001)
	})
}

func TestTrackingRecord_AmendStagePayload(t *testing.T) {
	t.Run("should fill gaps without clobbering existing fields", func(t *testing.T) {
		record := makeRecord(t, order.AllocatedDriver)
		require.NoError(t, record.AmendStagePayload(tracking.StageAssigned, tracking.StagePayload{
			DriverName: "Sergey Volkov",
		}))

		err := record.AmendStagePayload(tracking.StageAssigned, tracking.StagePayload{
			DriverName:  "Impostor",
			VehicleType: "van",
		})

		require.NoError(t, err)
		state, stageErr := record.Stage(tracking.StageAssigned)
		require.NoError(t, stageErr)
		assert.Equal(t, "Sergey Volkov", state.Payload().DriverName)
		assert.Equal(t, "van", state.Payload().VehicleType)
	})

	t.Run("should let the latest loading progress win", func(t *testing.T) {
		record := makeRecord(t, order.Loading)
		require.NoError(t, record.AmendStagePayload(tracking.StageLoaded, tracking.StagePayload{LoadingProgress: 75}))

		err := record.AmendStagePayload(tracking.StageLoaded, tracking.StagePayload{LoadingProgress: 25})

		require.NoError(t, err)
		state, stageErr := record.Stage(tracking.StageLoaded)
		require.NoError(t, stageErr)
		assert.InDelta(t, 25, state.Payload().LoadingProgress, 0.001)
	})

	t.Run("should not mark the stage completed", func(t *testing.T) {
		record := makeRecord(t, order.Loading)

		err := record.AmendStagePayload(tracking.StageLoaded, tracking.StagePayload{LoadingProgress: 50})

		require.NoError(t, err)
		state, stageErr := record.Stage(tracking.StageLoaded)
		require.NoError(t, stageErr)
		assert.False(t, state.Completed())
	})
}

func TestTrackingRecord_SetCurrentStatus(t *testing.T) {
	t.Run("should report a change", func(t *testing.T) {
		record := makeRecord(t, order.Confirmed)

		changed, err := record.SetCurrentStatus(order.Packed)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Packed, record.CurrentStatus())
	})

	t.Run("should report no change for the same status", func(t *testing.T) {
		record := makeRecord(t, order.Packed)

		changed, err := record.SetCurrentStatus(order.Packed)

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		record := makeRecord(t, order.Packed)

		_, err := record.SetCurrentStatus(order.Status("teleported"))

		require.Error(t, err)
		assert.Equal(t, order.Packed, record.CurrentStatus())
	})
}

func TestTrackingRecord_HasPrefixShape(t *testing.T) {
	t.Run("should accept a clean prefix", func(t *testing.T) {
		record := makeRecord(t, order.Packed)
		require.NoError(t, record.CompleteStage(tracking.StagePending, time.Now().UTC(), "system", tracking.StagePayload{}))
		require.NoError(t, record.CompleteStage(tracking.StagePacked, time.Now().UTC(), "warehouse:petrov", tracking.StagePayload{}))

		assert.True(t, record.HasPrefixShape())
	})

	t.Run("should flag a completed stage after a gap", func(t *testing.T) {
		record := makeRecord(t, order.Loaded)
		require.NoError(t, record.CompleteStage(tracking.StageLoaded, time.Now().UTC(), "dispatch:orlov", tracking.StagePayload{}))

		assert.False(t, record.HasPrefixShape())
	})
}

func TestTrackingRecord_Validate(t *testing.T) {
	t.Run("should reject nil record", func(t *testing.T) {
		var record *tracking.TrackingRecord
		assert.ErrorIs(t, record.Validate(), tracking.ErrTrackingRecordIsNotConstructed)
	})

	t.Run("should reject zero-value record", func(t *testing.T) {
		record := &tracking.TrackingRecord{}
		assert.ErrorIs(t, record.Validate(), tracking.ErrTrackingRecordIsNotConstructed)
	})
}
