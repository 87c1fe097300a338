package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the authoritative lifecycle state of an order.
// It is the single source of truth for "where this order is": every other
// representation of progress, including the workflow tracking record, is
// derived from it.
//
// Statuses are string-backed because they originate from (and are persisted
// for) external operational tooling that works with the literal values.
type Status string

// Order lifecycle values, roughly in the sequence an order moves through them.
// The reverse-logistics and failure values at the bottom sit outside the main
// staircase and carry no workflow-stage expectation.
const (
	PendingPayment  Status = "pending-payment"
	PaymentFailed   Status = "payment-failed"
	Confirmed       Status = "confirmed"
	Processing      Status = "processing"
	Picking         Status = "picking"
	Packing         Status = "packing"
	Packed          Status = "packed"
	StorageCheck    Status = "storage-check"
	ReadyToPickup   Status = "ready-to-pickup"
	AllocatedDriver Status = "allocated-driver"
	PickedUp        Status = "picked-up"
	Loading         Status = "loading"
	Loaded          Status = "loaded"
	OnWay           Status = "on-way"
	DriverConfirmed Status = "driver-confirmed"
	Arrived         Status = "arrived"
	Processed       Status = "processed"
	Complete        Status = "complete"
	Cancelled       Status = "cancelled"
	Refunded        Status = "refunded"
	ReturnRequested Status = "return-requested"
	Returned        Status = "returned"
)

// AllStatuses returns every valid lifecycle value. The slice is freshly
// allocated on each call so callers may reorder it.
func AllStatuses() []Status {
	return []Status{
		PendingPayment, PaymentFailed, Confirmed, Processing, Picking,
		Packing, Packed, StorageCheck, ReadyToPickup, AllocatedDriver,
		PickedUp, Loading, Loaded, OnWay, DriverConfirmed, Arrived,
		Processed, Complete, Cancelled, Refunded, ReturnRequested, Returned,
	}
}

func validStatuses() map[Status]struct{} {
	set := make(map[Status]struct{})
	for _, s := range AllStatuses() {
		set[s] = struct{}{}
	}
	return set
}

// Validate checks that the status is one of the known lifecycle values.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String returns the literal lifecycle value.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the order has reached a final state.
// Terminal orders are historical records: they are never mutated again and
// their assigned driver slot, if any, has been released.
func (s Status) IsTerminal() bool {
	switch s {
	case Complete, Cancelled, Refunded, Returned:
		return true
	default:
		return false
	}
}

// ValidateAllocate checks that a vehicle and driver may be bound to an order
// in this status. Allocation requires the storage check to have passed, which
// is only true once the order reached ReadyToPickup; an order still in
// StorageCheck has unverified items and cannot be allocated yet.
func (s Status) ValidateAllocate() error {
	switch s {
	case ReadyToPickup:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to allocate a vehicle", s))
	}
}

// Allocate transitions the status to AllocatedDriver.
// Only orders that passed their storage check can be allocated.
func (s Status) Allocate() (Status, error) {
	if err := s.ValidateAllocate(); err != nil {
		return "", err
	}
	return AllocatedDriver, nil
}

// StartRoute transitions the status to OnWay.
// The order must have been allocated and physically loaded first.
func (s Status) StartRoute() (Status, error) {
	switch s {
	case AllocatedDriver, PickedUp, Loading, Loaded:
		return OnWay, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start a route", s))
	}
}

// CompleteDelivery transitions the status to Processed, the value recorded
// when the driver hands the goods over. Settlement to Complete happens in a
// separate back-office step outside this core.
func (s Status) CompleteDelivery() (Status, error) {
	switch s {
	case OnWay, DriverConfirmed, Arrived:
		return Processed, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete a delivery", s))
	}
}
