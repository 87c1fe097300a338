package commands

import (
	"context"
	"time"
)

// FileComplaintCommandHandler attaches a complaint to an order line.
type FileComplaintCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewFileComplaintCommandHandler creates a handler for complaint filing.
func NewFileComplaintCommandHandler(uowFactory OrderUoWFactory) FileComplaintCommandHandler {
	return FileComplaintCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the complaint command.
func (h FileComplaintCommandHandler) Handle(ctx context.Context, cmd FileComplaintCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ord.FileItemComplaint(cmd.ItemIndex(), cmd.Description(), cmd.FiledBy(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
