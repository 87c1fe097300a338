package tracking

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrTrackingRecordIsNotConstructed is returned when a TrackingRecord was not
	// created through NewTrackingRecord or RestoreTrackingRecord.
	ErrTrackingRecordIsNotConstructed = errors.New(
		"TrackingRecord must be created via NewTrackingRecord or RestoreTrackingRecord")

	// ErrStageAlreadyCompleted is returned when CompleteStage targets a stage
	// that is already done. Stage completion is monotonic; repairs that need to
	// un-complete a stage are administrative operations outside this aggregate.
	ErrStageAlreadyCompleted = errors.New("stage already completed")
)

// Seed is the order/customer snapshot captured when a tracking record is
// lazily created on first touch. This is the only place customer data enters
// the tracking representation.
type Seed struct {
	CurrentStatus   order.Status
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
}

// TrackingRecord is the derived, stage-by-stage view of one order's progress.
// At most one record exists per order; it is created lazily the first time a
// stage-aware operation touches the order and is never deleted.
//
// The record is purely derived: it can be rebuilt at any time from the Order
// and its item marks, which is what makes reconciliation safe. Its
// currentStatus field mirrors Order.Status opportunistically and is never
// authoritative.
type TrackingRecord struct {
	id              kernel.UUID
	orderID         kernel.UUID
	currentStatus   order.Status
	customerName    string
	customerPhone   string
	deliveryAddress string
	stages          map[Stage]StageRecord
	guard           guard.ConstructorGuard
}

// NewTrackingRecord creates a tracking record for an order with all seven
// stages incomplete, seeded with the order's customer snapshot.
func NewTrackingRecord(id, orderID kernel.UUID, seed Seed) (*TrackingRecord, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if err := seed.CurrentStatus.Validate(); err != nil {
		return nil, err
	}

	stages := make(map[Stage]StageRecord, len(StageSequence()))
	for _, stage := range StageSequence() {
		stages[stage] = StageRecord{}
	}

	return &TrackingRecord{
		id:              id,
		orderID:         orderID,
		currentStatus:   seed.CurrentStatus,
		customerName:    seed.CustomerName,
		customerPhone:   seed.CustomerPhone,
		deliveryAddress: seed.DeliveryAddress,
		stages:          stages,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreTrackingRecord reconstructs a tracking record from persistence.
// Stages absent from the supplied map are restored as incomplete.
func RestoreTrackingRecord(
	id, orderID kernel.UUID,
	seed Seed,
	stages map[Stage]StageRecord,
) (*TrackingRecord, error) {
	record, err := NewTrackingRecord(id, orderID, seed)
	if err != nil {
		return nil, err
	}

	for stage, state := range stages {
		if err = stage.Validate(); err != nil {
			return nil, err
		}
		record.stages[stage] = state
	}
	return record, nil
}

// Validate ensures the record was created through a constructor.
func (t *TrackingRecord) Validate() error {
	if t == nil {
		return ErrTrackingRecordIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingRecordIsNotConstructed)
}

// ID returns the record's unique identifier.
func (t *TrackingRecord) ID() kernel.UUID {
	return t.id
}

// OrderID returns the order this record tracks.
func (t *TrackingRecord) OrderID() kernel.UUID {
	return t.orderID
}

// CurrentStatus returns the mirrored order status.
func (t *TrackingRecord) CurrentStatus() order.Status {
	return t.currentStatus
}

// CustomerName returns the seeded customer snapshot name.
func (t *TrackingRecord) CustomerName() string {
	return t.customerName
}

// CustomerPhone returns the seeded customer snapshot phone.
func (t *TrackingRecord) CustomerPhone() string {
	return t.customerPhone
}

// DeliveryAddress returns the seeded destination snapshot.
func (t *TrackingRecord) DeliveryAddress() string {
	return t.deliveryAddress
}

// Stage returns the record for one workflow stage.
func (t *TrackingRecord) Stage(stage Stage) (StageRecord, error) {
	if err := stage.Validate(); err != nil {
		return StageRecord{}, err
	}
	return t.stages[stage], nil
}

// CompletedStages returns the completed stages in workflow order.
func (t *TrackingRecord) CompletedStages() []Stage {
	completed := make([]Stage, 0, len(t.stages))
	for _, stage := range StageSequence() {
		if t.stages[stage].Completed() {
			completed = append(completed, stage)
		}
	}
	return completed
}

// HasPrefixShape reports whether the completed stages form a prefix of the
// workflow sequence, i.e. no completed stage follows an incomplete one.
func (t *TrackingRecord) HasPrefixShape() bool {
	seenGap := false
	for _, stage := range StageSequence() {
		if !t.stages[stage].Completed() {
			seenGap = true
			continue
		}
		if seenGap {
			return false
		}
	}
	return true
}

// SetCurrentStatus updates the mirrored order status. It reports whether the
// mirror actually changed, so callers can count drift repairs.
func (t *TrackingRecord) SetCurrentStatus(status order.Status) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if t.currentStatus == status {
		return false, nil
	}
	t.currentStatus = status
	return true, nil
}

// CompleteStage marks one stage as done. Completion is monotonic: a stage that
// is already completed returns ErrStageAlreadyCompleted and keeps its original
// actor, timestamp and payload. Payload fields already written to the pending
// stage by a direct operation are preserved; the supplied payload only fills
// gaps (see StagePayload.merge).
func (t *TrackingRecord) CompleteStage(stage Stage, at time.Time, actor string, payload StagePayload) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	current := t.stages[stage]
	if current.Completed() {
		return ErrStageAlreadyCompleted
	}
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	completedAt := at
	t.stages[stage] = StageRecord{
		completed:   true,
		completedAt: &completedAt,
		actor:       actor,
		payload:     current.payload.merge(payload),
	}
	return nil
}

// AmendStagePayload enriches the payload of a stage without touching its
// completion mark. Direct operations use this for convenience writes such as
// loading progress; existing non-zero payload fields are preserved.
func (t *TrackingRecord) AmendStagePayload(stage Stage, payload StagePayload) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	current := t.stages[stage]
	current.payload = current.payload.merge(payload)
	// Progress is a moving value, not an accreted fact: the latest reading wins.
	if payload.LoadingProgress > 0 {
		current.payload.LoadingProgress = payload.LoadingProgress
	}
	t.stages[stage] = current
	return nil
}
