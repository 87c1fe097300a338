package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPackItemCommandIsNotConstructed = errors.New(
		"PackItemCommand must be created via NewPackItemCommand constructor",
	)
	ErrActorIsRequired     = errors.New("actor is required")
	ErrItemIndexIsNegative = errors.New("item index must not be negative")
)

// PackItemCommand marks one line of an order as packed by a member of the
// packing staff. When the mark completes the last unpacked line, the handler
// advances the order status and mirrors the packed stage into the order's
// tracking record.
//
// Example:
//
//	cmd, err := NewPackItemCommand(orderID, 0, "warehouse.ivanov")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("pack item: %w", err)
//	}
type PackItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	itemIndex int
	actor     string

	guard guard.ConstructorGuard
}

// NewPackItemCommand creates a command to mark an order line as packed.
func NewPackItemCommand(orderID kernel.UUID, itemIndex int, actor string) (PackItemCommand, error) {
	cmd := PackItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemIndex(itemIndex),
		cmd.setActor(actor),
	); err != nil {
		return PackItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PackItemCommand) Validate() error {
	return c.guard.Validate(ErrPackItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being packed.
func (c PackItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemIndex returns the zero-based position of the line within the order.
func (c PackItemCommand) ItemIndex() int {
	return c.itemIndex
}

// Actor returns the name of the staff member performing the packing.
func (c PackItemCommand) Actor() string {
	return c.actor
}

func (c *PackItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PackItemCommand) setItemIndex(itemIndex int) error {
	if itemIndex < 0 {
		return ErrItemIndexIsNegative
	}

	c.itemIndex = itemIndex
	return nil
}

func (c *PackItemCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
