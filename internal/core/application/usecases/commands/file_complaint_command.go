package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrFileComplaintCommandIsNotConstructed = errors.New(
		"FileComplaintCommand must be created via NewFileComplaintCommand constructor",
	)
	ErrComplaintDescriptionIsRequired = errors.New("complaint description is required")
)

// FileComplaintCommand attaches a complaint to one line of an order. Any role
// may file one at any point of the workflow; complaints never block stage
// progression.
type FileComplaintCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	itemIndex   int
	description string
	filedBy     string

	guard guard.ConstructorGuard
}

// NewFileComplaintCommand creates a command to file a complaint on an order line.
func NewFileComplaintCommand(
	orderID kernel.UUID,
	itemIndex int,
	description, filedBy string,
) (FileComplaintCommand, error) {
	cmd := FileComplaintCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemIndex(itemIndex),
		cmd.setDescription(description),
		cmd.setFiledBy(filedBy),
	); err != nil {
		return FileComplaintCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FileComplaintCommand) Validate() error {
	return c.guard.Validate(ErrFileComplaintCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the complaint targets.
func (c FileComplaintCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemIndex returns the zero-based position of the line within the order.
func (c FileComplaintCommand) ItemIndex() int {
	return c.itemIndex
}

// Description returns the complaint text.
func (c FileComplaintCommand) Description() string {
	return c.description
}

// FiledBy returns the name of the person filing the complaint.
func (c FileComplaintCommand) FiledBy() string {
	return c.filedBy
}

func (c *FileComplaintCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FileComplaintCommand) setItemIndex(itemIndex int) error {
	if itemIndex < 0 {
		return ErrItemIndexIsNegative
	}

	c.itemIndex = itemIndex
	return nil
}

func (c *FileComplaintCommand) setDescription(description string) error {
	if description == "" {
		return ErrComplaintDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *FileComplaintCommand) setFiledBy(filedBy string) error {
	if filedBy == "" {
		return ErrActorIsRequired
	}

	c.filedBy = filedBy
	return nil
}
