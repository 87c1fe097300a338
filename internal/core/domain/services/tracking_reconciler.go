package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

// SystemActor is recorded on stage completions performed by reconciliation
// when the order's own audit fields name no actor.
const SystemActor = "system"

// TrackingReconciler converges one order's tracking record to the expectation
// implied by the order's authoritative status.
//
// The reconciler is a pure function over the expectation table: it completes
// every expected-but-incomplete stage (catch-up semantics, possibly several
// in one pass), mirrors the order status into the record, and reports whether
// anything changed. It never flips a completed stage back, and the payload it
// supplies only fills gaps, so richer stage detail written by direct
// operations survives.
//
// Running the reconciler twice with no intervening order mutation changes
// nothing on the second run.
type TrackingReconciler struct{}

// NewTrackingReconciler creates a TrackingReconciler.
func NewTrackingReconciler() TrackingReconciler {
	return TrackingReconciler{}
}

// Reconcile converges record to the expectation for o's status. It returns
// whether the record was modified. Orders whose status carries no expectation
// are left untouched.
func (r TrackingReconciler) Reconcile(o *order.Order, record *tracking.TrackingRecord, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := record.Validate(); err != nil {
		return false, err
	}

	expected, trackable := tracking.ExpectedStages(o.Status())
	if !trackable {
		return false, nil
	}

	changed := false
	for _, stage := range expected {
		state, err := record.Stage(stage)
		if err != nil {
			return changed, err
		}
		if state.Completed() {
			continue
		}

		at, actor, payload := r.stageCompletion(o, stage, now)
		if err = record.CompleteStage(stage, at, actor, payload); err != nil {
			return changed, err
		}
		changed = true
	}

	statusChanged, err := record.SetCurrentStatus(o.Status())
	if err != nil {
		return changed, err
	}

	return changed || statusChanged, nil
}

// stageCompletion derives the timestamp, actor and payload for completing one
// stage from the order's own audit fields, falling back to now/SystemActor
// where the order records nothing.
func (r TrackingReconciler) stageCompletion(o *order.Order, stage tracking.Stage, now time.Time) (time.Time, string, tracking.StagePayload) {
	at := now
	actor := SystemActor
	var payload tracking.StagePayload

	switch stage {
	case tracking.StagePacked:
		if packedAt := o.PackingCompletedAt(); packedAt != nil {
			at = *packedAt
		}
		if a := lastMarkActor(o, func(i *order.Item) order.Verification { return i.Packed() }); a != "" {
			actor = a
		}

	case tracking.StageStorage:
		if a := lastMarkActor(o, func(i *order.Item) order.Verification { return i.StorageVerified() }); a != "" {
			actor = a
		}

	case tracking.StageAssigned:
		if assignment := o.Assignment(); assignment != nil {
			at = assignment.AssignedAt
			if assignment.AssignedByName != "" {
				actor = assignment.AssignedByName
			}
			payload = tracking.StagePayload{
				DriverID:       assignment.DriverID.String(),
				DriverName:     assignment.DriverName,
				AssignedByID:   assignment.AssignedBy.String(),
				AssignedByName: assignment.AssignedByName,
			}
		}

	case tracking.StageLoaded:
		payload = tracking.StagePayload{LoadingProgress: o.LoadingProgress()}
		if assignment := o.Assignment(); assignment != nil {
			payload.VehicleID = assignment.VehicleID.String()
		}
		if a := lastMarkActor(o, func(i *order.Item) order.Verification { return i.LoadingVerified() }); a != "" {
			actor = a
		}
	}

	return at, actor, payload
}

// lastMarkActor returns the actor of the latest completed mark selected by
// pick across the order's items, or "" when no item carries the mark.
func lastMarkActor(o *order.Order, pick func(*order.Item) order.Verification) string {
	var (
		latest time.Time
		actor  string
	)
	for _, item := range o.Items() {
		mark := pick(item)
		if !mark.Completed() {
			continue
		}
		if actor == "" || mark.At().After(latest) {
			latest = mark.At()
			actor = mark.Actor()
		}
	}
	return actor
}
