package tracking

import "fulfillment/internal/core/domain/model/order"

// stagePrefixByStatus is the single declarative table mapping each
// authoritative order status to the number of workflow stages expected to be
// completed. Expectations are always a prefix of StageSequence: the system
// never expresses "stage five done but stage three not done".
//
// Statuses absent from the table carry no expectation; reconciliation takes
// no action for orders in those states (unpaid, cancelled, reverse logistics).
func stagePrefixByStatus() map[order.Status]int {
	return map[order.Status]int{
		order.Confirmed:  1,
		order.Processing: 1,
		order.Picking:    1,
		order.Packing:    1,

		order.Packed:          2,
		order.StorageCheck:    2,
		order.AllocatedDriver: 2,

		order.ReadyToPickup: 3,

		order.Loading: 4,

		order.Loaded:   5,
		order.PickedUp: 5,

		order.OnWay:           6,
		order.DriverConfirmed: 6,
		order.Arrived:         6,

		order.Processed: 7,
		order.Complete:  7,
	}
}

// ExpectedStages returns the stages expected to be completed for an
// authoritative status, as a prefix of the workflow sequence, and whether the
// status carries any expectation at all.
//
// Note the staircase is not strictly monotone in lifecycle order: allocation
// (AllocatedDriver) happens while the tracking-side assigned stage is still
// being written by the assignment path itself, so AllocatedDriver only
// expects the packed prefix; the assigned stage is owned by the assignment
// write and caught up by the loading-phase sync once loading begins.
func ExpectedStages(status order.Status) ([]Stage, bool) {
	prefix, ok := stagePrefixByStatus()[status]
	if !ok {
		return nil, false
	}
	return StageSequence()[:prefix], true
}

// SyncPhase identifies one of the three independently invokable
// reconciliation passes. Each phase scans its own subset of trackable
// statuses so operational roles can repair just the drift they own.
type SyncPhase string

// The three reconciliation phases.
const (
	PhasePacking  SyncPhase = "packing"
	PhaseLoading  SyncPhase = "loading"
	PhaseDelivery SyncPhase = "delivery"
)

// Statuses returns the trackable status filter for the phase.
func (p SyncPhase) Statuses() []order.Status {
	switch p {
	case PhasePacking:
		return []order.Status{
			order.Confirmed, order.Processing, order.Picking, order.Packing,
			order.Packed, order.StorageCheck, order.ReadyToPickup,
		}
	case PhaseLoading:
		return []order.Status{
			order.AllocatedDriver, order.Loading, order.Loaded, order.PickedUp,
		}
	case PhaseDelivery:
		return []order.Status{
			order.OnWay, order.DriverConfirmed, order.Arrived,
			order.Processed, order.Complete,
		}
	default:
		return nil
	}
}

// AllPhases returns the three reconciliation phases in pipeline order.
func AllPhases() []SyncPhase {
	return []SyncPhase{PhasePacking, PhaseLoading, PhaseDelivery}
}
