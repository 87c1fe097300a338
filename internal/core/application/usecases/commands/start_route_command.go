package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartRouteCommandIsNotConstructed = errors.New(
	"StartRouteCommand must be created via NewStartRouteCommand constructor",
)

// StartRouteCommand moves an assigned order onto the road. The driver reports
// departure and the order enters the in-transit part of the workflow.
type StartRouteCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewStartRouteCommand creates a command to report route start.
func NewStartRouteCommand(orderID kernel.UUID, actor string) (StartRouteCommand, error) {
	cmd := StartRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return StartRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartRouteCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteCommandIsNotConstructed)
}

// OrderID returns the identifier of the departing order.
func (c StartRouteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the name of the driver reporting departure.
func (c StartRouteCommand) Actor() string {
	return c.actor
}

func (c *StartRouteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartRouteCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
