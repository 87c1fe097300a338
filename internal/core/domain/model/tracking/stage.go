package tracking

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Stage names one of the seven workflow milestones an order passes through.
// The milestones are strictly ordered; see StageSequence.
type Stage string

// The seven workflow stages, in order.
const (
	StagePending   Stage = "pending"
	StagePacked    Stage = "packed"
	StageStorage   Stage = "storage"
	StageAssigned  Stage = "assigned"
	StageLoaded    Stage = "loaded"
	StageInTransit Stage = "inTransit"
	StageDelivered Stage = "delivered"
)

// StageSequence returns the seven stages in workflow order. The slice is
// freshly allocated on each call.
func StageSequence() []Stage {
	return []Stage{
		StagePending, StagePacked, StageStorage, StageAssigned,
		StageLoaded, StageInTransit, StageDelivered,
	}
}

// Index returns the position of the stage in the workflow sequence.
func (s Stage) Index() (int, error) {
	for i, stage := range StageSequence() {
		if stage == s {
			return i, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
		fmt.Errorf("%q is not a workflow stage", string(s)))
}

// Validate checks that the stage is one of the seven workflow milestones.
func (s Stage) Validate() error {
	_, err := s.Index()
	return err
}

// StagePayload carries the stage-specific detail recorded alongside a
// completion mark. It is a single flat structure with fields meaningful only
// for particular stages: the assigned stage fills the driver and assigner
// fields, the loaded stage the vehicle and progress fields, the delivered
// stage the handover fields. Unused fields stay at their zero value.
type StagePayload struct {
	DriverID          string  `json:"driverId,omitempty"`
	DriverName        string  `json:"driverName,omitempty"`
	AssignedByID      string  `json:"assignedById,omitempty"`
	AssignedByName    string  `json:"assignedByName,omitempty"`
	VehicleID         string  `json:"vehicleId,omitempty"`
	VehicleType       string  `json:"vehicleType,omitempty"`
	LoadingProgress   float64 `json:"loadingProgress,omitempty"`
	Signature         string  `json:"signature,omitempty"`
	Notes             string  `json:"notes,omitempty"`
	SatisfactionScore int     `json:"satisfactionScore,omitempty"`
}

// merge returns p with zero-value fields filled in from other. Existing
// non-zero fields always win, so a richer payload written by a direct
// operation is never clobbered by a later, poorer write.
func (p StagePayload) merge(other StagePayload) StagePayload {
	if p.DriverID == "" {
		p.DriverID = other.DriverID
	}
	if p.DriverName == "" {
		p.DriverName = other.DriverName
	}
	if p.AssignedByID == "" {
		p.AssignedByID = other.AssignedByID
	}
	if p.AssignedByName == "" {
		p.AssignedByName = other.AssignedByName
	}
	if p.VehicleID == "" {
		p.VehicleID = other.VehicleID
	}
	if p.VehicleType == "" {
		p.VehicleType = other.VehicleType
	}
	if p.LoadingProgress == 0 {
		p.LoadingProgress = other.LoadingProgress
	}
	if p.Signature == "" {
		p.Signature = other.Signature
	}
	if p.Notes == "" {
		p.Notes = other.Notes
	}
	if p.SatisfactionScore == 0 {
		p.SatisfactionScore = other.SatisfactionScore
	}
	return p
}

// StageRecord is the per-stage completion mark inside a tracking record:
// whether the stage is done, when, by whom, and its stage-specific payload.
//
// Completion is monotonic per execution path: once completed, only
// administrative repair outside this core may flip it back.
type StageRecord struct {
	completed   bool
	completedAt *time.Time
	actor       string
	payload     StagePayload
}

// RestoreStageRecord reconstructs a stage record from persistence.
func RestoreStageRecord(completed bool, completedAt *time.Time, actor string, payload StagePayload) StageRecord {
	return StageRecord{
		completed:   completed,
		completedAt: completedAt,
		actor:       actor,
		payload:     payload,
	}
}

// Completed reports whether the stage is done.
func (r StageRecord) Completed() bool {
	return r.completed
}

// CompletedAt returns when the stage completed, or nil while pending.
func (r StageRecord) CompletedAt() *time.Time {
	return r.completedAt
}

// Actor returns who completed the stage, or "" while pending.
func (r StageRecord) Actor() string {
	return r.actor
}

// Payload returns the stage-specific detail.
func (r StageRecord) Payload() StagePayload {
	return r.payload
}
