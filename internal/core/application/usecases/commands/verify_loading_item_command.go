package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrVerifyLoadingItemCommandIsNotConstructed = errors.New(
	"VerifyLoadingItemCommand must be created via NewVerifyLoadingItemCommand constructor",
)

// VerifyLoadingItemCommand records that one order line has been loaded onto
// the assigned vehicle. Each mark moves the loading progress percentage on
// the tracking record; the last mark completes the loaded stage.
type VerifyLoadingItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	itemIndex int
	actor     string

	guard guard.ConstructorGuard
}

// NewVerifyLoadingItemCommand creates a command to mark a line as loaded.
func NewVerifyLoadingItemCommand(
	orderID kernel.UUID,
	itemIndex int,
	actor string,
) (VerifyLoadingItemCommand, error) {
	cmd := VerifyLoadingItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemIndex(itemIndex),
		cmd.setActor(actor),
	); err != nil {
		return VerifyLoadingItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyLoadingItemCommand) Validate() error {
	return c.guard.Validate(ErrVerifyLoadingItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being loaded.
func (c VerifyLoadingItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemIndex returns the zero-based position of the line within the order.
func (c VerifyLoadingItemCommand) ItemIndex() int {
	return c.itemIndex
}

// Actor returns the name of the staff member loading the vehicle.
func (c VerifyLoadingItemCommand) Actor() string {
	return c.actor
}

func (c *VerifyLoadingItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyLoadingItemCommand) setItemIndex(itemIndex int) error {
	if itemIndex < 0 {
		return ErrItemIndexIsNegative
	}

	c.itemIndex = itemIndex
	return nil
}

func (c *VerifyLoadingItemCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
