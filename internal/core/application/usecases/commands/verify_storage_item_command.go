package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrVerifyStorageItemCommandIsNotConstructed = errors.New(
	"VerifyStorageItemCommand must be created via NewVerifyStorageItemCommand constructor",
)

// VerifyStorageItemCommand records the storage officer's check of one packed
// order line. Storage verification requires the line to be packed first.
type VerifyStorageItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	itemIndex int
	actor     string

	guard guard.ConstructorGuard
}

// NewVerifyStorageItemCommand creates a command to verify a packed line in storage.
func NewVerifyStorageItemCommand(
	orderID kernel.UUID,
	itemIndex int,
	actor string,
) (VerifyStorageItemCommand, error) {
	cmd := VerifyStorageItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemIndex(itemIndex),
		cmd.setActor(actor),
	); err != nil {
		return VerifyStorageItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyStorageItemCommand) Validate() error {
	return c.guard.Validate(ErrVerifyStorageItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being verified.
func (c VerifyStorageItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemIndex returns the zero-based position of the line within the order.
func (c VerifyStorageItemCommand) ItemIndex() int {
	return c.itemIndex
}

// Actor returns the name of the storage officer performing the check.
func (c VerifyStorageItemCommand) Actor() string {
	return c.actor
}

func (c *VerifyStorageItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyStorageItemCommand) setItemIndex(itemIndex int) error {
	if itemIndex < 0 {
		return ErrItemIndexIsNegative
	}

	c.itemIndex = itemIndex
	return nil
}

func (c *VerifyStorageItemCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
