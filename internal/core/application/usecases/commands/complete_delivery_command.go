package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

const (
	minSatisfactionScore = 0
	maxSatisfactionScore = 5
)

// CompleteDeliveryCommand records the handover of an order to the customer.
// Carries the proof-of-delivery detail: recipient signature, driver notes and
// the customer's satisfaction score.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	actor             string
	signature         string
	notes             string
	satisfactionScore int

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
// The satisfaction score must fall in [0, 5]; zero means not collected.
func NewCompleteDeliveryCommand(
	orderID kernel.UUID,
	actor, signature, notes string,
	satisfactionScore int,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setSatisfactionScore(satisfactionScore),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	cmd.signature = signature
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the delivered order.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the name of the driver completing the delivery.
func (c CompleteDeliveryCommand) Actor() string {
	return c.actor
}

// Signature returns the recipient's signature reference, if collected.
func (c CompleteDeliveryCommand) Signature() string {
	return c.signature
}

// Notes returns free-form handover notes.
func (c CompleteDeliveryCommand) Notes() string {
	return c.notes
}

// SatisfactionScore returns the customer's score, zero when not collected.
func (c CompleteDeliveryCommand) SatisfactionScore() int {
	return c.satisfactionScore
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *CompleteDeliveryCommand) setSatisfactionScore(score int) error {
	if score < minSatisfactionScore || score > maxSatisfactionScore {
		return errs.NewValueIsOutOfRangeError(
			"satisfactionScore", score, minSatisfactionScore, maxSatisfactionScore,
		)
	}

	c.satisfactionScore = score
	return nil
}
