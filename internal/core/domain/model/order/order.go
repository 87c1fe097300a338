package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderAlreadyAssigned is returned when a vehicle allocation targets an
	// order that already carries assignment details.
	ErrOrderAlreadyAssigned = errors.New("order already has a vehicle assigned")

	// ErrOrderNotAssigned is returned by operations that require an allocated
	// vehicle, such as the loading check or starting the route.
	ErrOrderNotAssigned = errors.New("order has no vehicle assigned")
)

// AssignmentDetails captures the binding of a vehicle and driver to an order:
// which vehicle, which driver, who performed the assignment and when.
type AssignmentDetails struct {
	VehicleID      kernel.UUID
	DriverID       kernel.UUID
	DriverName     string
	AssignedBy     kernel.UUID
	AssignedByName string
	AssignedAt     time.Time
	Notes          string
}

// NewAssignmentDetails creates assignment details, validating the identifiers.
func NewAssignmentDetails(
	vehicleID, driverID kernel.UUID,
	driverName string,
	assignedBy kernel.UUID,
	assignedByName string,
	assignedAt time.Time,
	notes string,
) (AssignmentDetails, error) {
	if err := errors.Join(
		vehicleID.Validate(),
		driverID.Validate(),
		assignedBy.Validate(),
	); err != nil {
		return AssignmentDetails{}, err
	}
	if driverName == "" {
		return AssignmentDetails{}, errs.NewValueIsRequiredError("driverName")
	}

	return AssignmentDetails{
		VehicleID:      vehicleID,
		DriverID:       driverID,
		DriverName:     driverName,
		AssignedBy:     assignedBy,
		AssignedByName: assignedByName,
		AssignedAt:     assignedAt,
		Notes:          notes,
	}, nil
}

// Order is the aggregate root for a purchase moving through the fulfillment
// pipeline. Its status field is the authoritative statement of progress;
// the derived workflow tracking record is converged to it by reconciliation.
//
// Order enforces these invariants:
//   - Must have a valid unique identifier and at least one item
//   - Item handling marks only move false→true, through the verification operations
//   - Status transitions follow the lifecycle rules in Status
//   - A vehicle can be allocated at most once, after the storage check
//
// Human operations (packing, storage check, loading check, route start,
// delivery completion) mutate the Order directly. Where a completed operation
// implies a lifecycle advance (e.g. the last item packed), the Order performs
// that advance itself so the authoritative status never lags the item marks.
type Order struct {
	id              kernel.UUID
	status          Status
	items           []*Item
	totalAmount     float64
	deliveryAddress string
	customerName    string
	customerPhone   string
	assignment      *AssignmentDetails
	guard           guard.ConstructorGuard
}

// NewOrder creates a confirmed order ready to enter the packing workflow.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customerName, customerPhone: customer snapshot, also seeded into the
//     tracking record on first touch
//   - deliveryAddress: free-text destination (required)
//   - totalAmount: order total (must not be negative)
//   - items: at least one item line
func NewOrder(
	id kernel.UUID,
	customerName, customerPhone, deliveryAddress string,
	totalAmount float64,
	items []*Item,
) (*Order, error) {
	o := &Order{
		status: Confirmed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerName, customerPhone),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotalAmount(totalAmount),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, preserving its status,
// item marks and assignment details. The restored aggregate behaves
// identically to one built up through domain operations.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	customerName, customerPhone, deliveryAddress string,
	totalAmount float64,
	items []*Item,
	assignment *AssignmentDetails,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setCustomer(customerName, customerPhone),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotalAmount(totalAmount),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.assignment = assignment
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the authoritative lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's item lines in their original sequence.
func (o *Order) Items() []*Item {
	return o.items
}

// TotalAmount returns the order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// DeliveryAddress returns the free-text destination.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// CustomerName returns the customer snapshot name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the customer snapshot phone.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// Assignment returns the vehicle/driver binding, or nil when unassigned.
func (o *Order) Assignment() *AssignmentDetails {
	return o.assignment
}

// Item returns the item at idx, or a ValueIsOutOfRange error when the index
// does not name an existing item line.
func (o *Order) Item(idx int) (*Item, error) {
	if idx < 0 || idx >= len(o.items) {
		return nil, errs.NewValueIsOutOfRangeError("itemIndex", idx, 0, len(o.items)-1)
	}
	return o.items[idx], nil
}

// PackItem marks one item as packed by the given actor. When the last item is
// packed, the order advances to the Packed status so the authoritative record
// reflects the completed packing step immediately.
func (o *Order) PackItem(idx int, actor string, at time.Time) error {
	item, err := o.Item(idx)
	if err != nil {
		return err
	}
	if err = item.markPacked(actor, at); err != nil {
		return err
	}

	if o.AllItemsPacked() {
		switch o.status {
		case Confirmed, Processing, Picking, Packing:
			o.status = Packed
		}
	}
	return nil
}

// VerifyStorageItem records the storage officer's check of one item. When the
// last item passes, the order advances to ReadyToPickup.
func (o *Order) VerifyStorageItem(idx int, actor string, at time.Time) error {
	item, err := o.Item(idx)
	if err != nil {
		return err
	}
	if err = item.markStorageVerified(actor, at); err != nil {
		return err
	}

	if o.AllItemsStorageVerified() {
		switch o.status {
		case Packed, StorageCheck:
			o.status = ReadyToPickup
		}
	}
	return nil
}

// VerifyLoadingItem records the dispatch officer's loading check of one item.
// Loading requires an allocated vehicle. When the last item is on the vehicle,
// the order advances to Loaded.
func (o *Order) VerifyLoadingItem(idx int, actor string, at time.Time) error {
	if o.assignment == nil {
		return ErrOrderNotAssigned
	}

	item, err := o.Item(idx)
	if err != nil {
		return err
	}
	if err = item.markLoadingVerified(actor, at); err != nil {
		return err
	}

	if o.AllItemsLoadingVerified() {
		switch o.status {
		case AllocatedDriver, PickedUp, Loading:
			o.status = Loaded
		}
	}
	return nil
}

// FileItemComplaint attaches a complaint sub-record to one item.
func (o *Order) FileItemComplaint(idx int, description, filedBy string, at time.Time) error {
	item, err := o.Item(idx)
	if err != nil {
		return err
	}
	return item.fileComplaint(description, filedBy, at)
}

// AssignVehicle binds a vehicle and driver to the order and advances the
// status to AllocatedDriver. The order must have passed its storage check and
// must not already be assigned. Capacity validation against the vehicle is the
// caller's responsibility; the aggregate only guards its own lifecycle.
func (o *Order) AssignVehicle(details AssignmentDetails) error {
	if o.assignment != nil {
		return ErrOrderAlreadyAssigned
	}

	newStatus, err := o.status.Allocate()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignment = &details
	return nil
}

// StartRoute marks the driver as underway, advancing the status to OnWay.
func (o *Order) StartRoute() error {
	if o.assignment == nil {
		return ErrOrderNotAssigned
	}

	newStatus, err := o.status.StartRoute()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// CompleteDelivery marks the goods as handed over, advancing the status to
// Processed. The released driver slot is handled by the assignment
// orchestration, not the aggregate.
func (o *Order) CompleteDelivery() error {
	newStatus, err := o.status.CompleteDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AllItemsPacked reports whether every item carries a packing mark.
func (o *Order) AllItemsPacked() bool {
	for _, item := range o.items {
		if !item.Packed().Completed() {
			return false
		}
	}
	return true
}

// AllItemsStorageVerified reports whether every item passed the storage check.
func (o *Order) AllItemsStorageVerified() bool {
	for _, item := range o.items {
		if !item.StorageVerified().Completed() {
			return false
		}
	}
	return true
}

// AllItemsLoadingVerified reports whether every item passed the loading check.
func (o *Order) AllItemsLoadingVerified() bool {
	for _, item := range o.items {
		if !item.LoadingVerified().Completed() {
			return false
		}
	}
	return true
}

// LoadingProgress returns the share of items that passed the loading check,
// as a percentage in [0, 100].
func (o *Order) LoadingProgress() float64 {
	if len(o.items) == 0 {
		return 0
	}

	loaded := 0
	for _, item := range o.items {
		if item.LoadingVerified().Completed() {
			loaded++
		}
	}
	return float64(loaded) / float64(len(o.items)) * 100
}

// PackingCompletedAt returns the moment packing finished: the latest packing
// mark across all items, or nil while any item remains unpacked. Reconciliation
// prefers this audit timestamp over "now" when completing the packed stage.
func (o *Order) PackingCompletedAt() *time.Time {
	var latest time.Time
	for _, item := range o.items {
		mark := item.Packed()
		if !mark.Completed() {
			return nil
		}
		if mark.At().After(latest) {
			latest = mark.At()
		}
	}
	if latest.IsZero() {
		return nil
	}
	return &latest
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCustomer(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	o.customerPhone = phone
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setTotalAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount is invalid",
			fmt.Errorf("%f is negative", amount))
	}
	o.totalAmount = amount
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if item == nil {
			return errs.NewValueIsRequiredError("item")
		}
	}
	o.items = items
	return nil
}
