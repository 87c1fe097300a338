package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSyncTrackingCommandIsNotConstructed = errors.New(
		"SyncTrackingCommand must be created via NewSyncTrackingCommand constructor",
	)
	ErrUnknownSyncPhase = errors.New("unknown sync phase")
)

// SyncTrackingCommand triggers one reconciliation pass over the orders of a
// workflow phase, converging their tracking records to the expectation for
// their current status.
type SyncTrackingCommand struct { //nolint:recvcheck //using for validation
	phase tracking.SyncPhase

	guard guard.ConstructorGuard
}

// NewSyncTrackingCommand creates a command for one reconciliation pass.
func NewSyncTrackingCommand(phase tracking.SyncPhase) (SyncTrackingCommand, error) {
	cmd := SyncTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPhase(phase); err != nil {
		return SyncTrackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncTrackingCommand) Validate() error {
	return c.guard.Validate(ErrSyncTrackingCommandIsNotConstructed)
}

// Phase returns the workflow phase this pass covers.
func (c SyncTrackingCommand) Phase() tracking.SyncPhase {
	return c.phase
}

func (c *SyncTrackingCommand) setPhase(phase tracking.SyncPhase) error {
	for _, known := range tracking.AllPhases() {
		if phase == known {
			c.phase = phase
			return nil
		}
	}
	return ErrUnknownSyncPhase
}
