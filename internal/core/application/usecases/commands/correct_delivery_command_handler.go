package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"
)

// CorrectDeliveryCommandHandler amends a DELIVERED order. Only the difference
// between the revised figures and what the ledger currently holds for the
// delivery is posted, so repeated corrections never double count.
//
// Example:
//
//	// delivered 5, returned 2 was recorded; the driver actually left 4
//	cmd, _ := NewCorrectDeliveryCommand(orderID, 4, 2, &pay, "driver miscounted")
//	err := handler.Handle(ctx, cmd) // posts a CORRECTION of -1 bottle
type CorrectDeliveryCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewCorrectDeliveryCommandHandler(uowFactory LedgerUoWFactory) CorrectDeliveryCommandHandler {
	return CorrectDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CorrectDeliveryCommandHandler) Handle(ctx context.Context, cmd CorrectDeliveryCommand) error {
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

	o, history, err := lockOrder(ctx, uow, cmd.OrderID())
	if err != nil {
		return err
	}

	entry, err := services.NewCorrectionHandler().Correct(
		o, cmd.BottlesDelivered(), cmd.BottlesReturned(), cmd.Payment(), cmd.Reason(), history, kernel.NewUUID(),
	)
	if err != nil {
		return err
	}

	if err = post(ctx, uow, entry); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
