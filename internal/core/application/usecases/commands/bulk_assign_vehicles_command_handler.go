package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// BulkAssignmentResult reports the outcome for one order of a bulk run.
// Err is nil on success; on rejection it carries the same sentinel the single
// assignment handler would return for that order.
type BulkAssignmentResult struct {
	OrderID kernel.UUID
	Details order.AssignmentDetails
	Err     error
}

// BulkAssignVehiclesCommandHandler runs a bulk assignment entry by entry.
// Each entry gets its own transaction through the single-assignment handler,
// so one rejected order never unwinds the assignments that already landed.
type BulkAssignVehiclesCommandHandler struct {
	assignHandler AssignVehicleCommandHandler
}

// NewBulkAssignVehiclesCommandHandler creates a handler for bulk assignment runs.
func NewBulkAssignVehiclesCommandHandler(uowFactory AssignmentUoWFactory) BulkAssignVehiclesCommandHandler {
	return BulkAssignVehiclesCommandHandler{
		assignHandler: NewAssignVehicleCommandHandler(uowFactory),
	}
}

// Handle processes the bulk command. The returned slice is ordered like the
// command's entries, one result per entry.
func (h BulkAssignVehiclesCommandHandler) Handle(
	ctx context.Context,
	cmd BulkAssignVehiclesCommand,
) ([]BulkAssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	results := make([]BulkAssignmentResult, 0, len(cmd.Entries()))
	for _, entry := range cmd.Entries() {
		assignCmd, err := NewAssignVehicleCommand(
			entry.OrderID, entry.VehicleID, entry.DriverID,
			cmd.AssignedBy(), cmd.AssignedByName(), cmd.Notes(),
		)
		if err != nil {
			results = append(results, BulkAssignmentResult{OrderID: entry.OrderID, Err: err})
			continue
		}

		details, err := h.assignHandler.Handle(ctx, assignCmd)
		results = append(results, BulkAssignmentResult{
			OrderID: entry.OrderID,
			Details: details,
			Err:     err,
		})
	}

	return results, nil
}
