package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrItemStageAlreadyCompleted is returned when a verification operation
	// targets an item mark that is already set. Marks only move false→true
	// through their verification operation, so a repeat is an operator error,
	// not an idempotent no-op: the original actor and timestamp are kept.
	ErrItemStageAlreadyCompleted = errors.New("item stage already completed")

	// ErrItemStagePrerequisiteMissing is returned when a verification is
	// attempted out of order, e.g. a storage check on an unpacked item.
	ErrItemStagePrerequisiteMissing = errors.New("item stage prerequisite missing")
)

// Verification records a single per-item handling mark: whether it happened,
// who did it, and when. The zero value means "not yet done".
type Verification struct {
	done  bool
	actor string
	at    time.Time
}

// RestoreVerification reconstructs a verification mark from persistence.
func RestoreVerification(done bool, actor string, at time.Time) Verification {
	if !done {
		return Verification{}
	}
	return Verification{done: true, actor: actor, at: at}
}

// Completed reports whether the mark is set.
func (v Verification) Completed() bool {
	return v.done
}

// Actor returns who set the mark, or "" when unset.
func (v Verification) Actor() string {
	return v.actor
}

// At returns when the mark was set; the zero time when unset.
func (v Verification) At() time.Time {
	return v.at
}

// Complaint is a customer- or staff-filed issue against one item of an order.
type Complaint struct {
	Description string
	FiledBy     string
	FiledAt     time.Time
}

// Item is one line of an order. Items are owned by exactly one Order and
// carry three independent handling marks, one per physical workflow step:
// packing, the storage check, and the loading check. Each mark can only be
// set through the corresponding verification operation on the Order; it is
// never inferred from the order status.
type Item struct {
	productID  kernel.UUID
	quantity   int
	weight     kernel.Weight
	packed     Verification
	storage    Verification
	loading    Verification
	complaints []Complaint
}

// NewItem creates an order item. Quantity must be positive; the weight string
// is free text and accepted as-is (see kernel.Weight).
func NewItem(productID kernel.UUID, quantity int, weight kernel.Weight) (*Item, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return &Item{
		productID: productID,
		quantity:  quantity,
		weight:    weight,
	}, nil
}

// RestoreItem reconstructs an item from persistence, including its handling
// marks and complaints.
func RestoreItem(
	productID kernel.UUID,
	quantity int,
	weight kernel.Weight,
	packed, storage, loading Verification,
	complaints []Complaint,
) (*Item, error) {
	item, err := NewItem(productID, quantity, weight)
	if err != nil {
		return nil, err
	}

	item.packed = packed
	item.storage = storage
	item.loading = loading
	item.complaints = complaints
	return item, nil
}

// ProductID returns the catalog product this line refers to.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units on this line.
func (i *Item) Quantity() int {
	return i.quantity
}

// Weight returns the free-text weight description of one unit.
func (i *Item) Weight() kernel.Weight {
	return i.weight
}

// Packed returns the packing mark.
func (i *Item) Packed() Verification {
	return i.packed
}

// StorageVerified returns the storage-check mark.
func (i *Item) StorageVerified() Verification {
	return i.storage
}

// LoadingVerified returns the loading-check mark.
func (i *Item) LoadingVerified() Verification {
	return i.loading
}

// Complaints returns the complaints filed against this item.
func (i *Item) Complaints() []Complaint {
	return i.complaints
}

// markPacked sets the packing mark. Fails if already packed.
func (i *Item) markPacked(actor string, at time.Time) error {
	if i.packed.Completed() {
		return ErrItemStageAlreadyCompleted
	}
	i.packed = Verification{done: true, actor: actor, at: at}
	return nil
}

// markStorageVerified sets the storage-check mark. The item must be packed first.
func (i *Item) markStorageVerified(actor string, at time.Time) error {
	if i.storage.Completed() {
		return ErrItemStageAlreadyCompleted
	}
	if !i.packed.Completed() {
		return ErrItemStagePrerequisiteMissing
	}
	i.storage = Verification{done: true, actor: actor, at: at}
	return nil
}

// markLoadingVerified sets the loading-check mark. The storage check must have passed first.
func (i *Item) markLoadingVerified(actor string, at time.Time) error {
	if i.loading.Completed() {
		return ErrItemStageAlreadyCompleted
	}
	if !i.storage.Completed() {
		return ErrItemStagePrerequisiteMissing
	}
	i.loading = Verification{done: true, actor: actor, at: at}
	return nil
}

// fileComplaint appends a complaint sub-record to the item.
func (i *Item) fileComplaint(description, filedBy string, at time.Time) error {
	if description == "" {
		return errs.NewValueIsRequiredError("complaint description")
	}
	i.complaints = append(i.complaints, Complaint{
		Description: description,
		FiledBy:     filedBy,
		FiledAt:     at,
	})
	return nil
}
