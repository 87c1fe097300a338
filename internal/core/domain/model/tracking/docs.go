// Package tracking provides the derived workflow representation of order
// progress: the TrackingRecord aggregate with its seven per-stage completion
// marks, and the declarative expectation table that maps authoritative order
// statuses to expected stage prefixes.
//
// The package includes:
//   - Stage / StageRecord / StagePayload: the seven-milestone stage model
//   - TrackingRecord: at most one per order, lazily created, never deleted
//   - ExpectedStages: the single status→stage-prefix table shared by every
//     reconciliation entry point
//   - SyncPhase: the three trackable-status filters (packing, loading, delivery)
//
// Key business rules:
//   - Stage completion is monotonic; only reconciliation may complete several
//     stages in one pass (catch-up semantics)
//   - Completed stages always form a prefix of the stage sequence
//   - The record is purely derived from the Order and can be rebuilt at any time
package tracking
