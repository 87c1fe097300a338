package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// provisionTrackingRecord loads the tracking record for an order, creating a
// fresh one seeded from the order when no record exists yet. Orders entered
// the system before tracking went live, so every stage-aware handler has to
// tolerate a missing record.
func provisionTrackingRecord(
	ctx context.Context,
	repo ports.TrackingRepository,
	o *order.Order,
) (*tracking.TrackingRecord, bool, error) {
	record, err := repo.GetByOrderID(ctx, o.ID())
	if err == nil {
		return record, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	record, err = tracking.NewTrackingRecord(kernel.NewUUID(), o.ID(), tracking.Seed{
		CurrentStatus:   o.Status(),
		CustomerName:    o.CustomerName(),
		CustomerPhone:   o.CustomerPhone(),
		DeliveryAddress: o.DeliveryAddress(),
	})
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// saveTrackingRecord routes a record to Add or Update depending on whether it
// was provisioned in this unit of work.
func saveTrackingRecord(
	ctx context.Context,
	repo ports.TrackingRepository,
	record *tracking.TrackingRecord,
	created bool,
) error {
	if created {
		return repo.Add(ctx, record)
	}
	return repo.Update(ctx, record)
}
