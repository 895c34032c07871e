package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"
)

// SoftDeleteOrderCommandHandler flags an order as deleted. If the order still
// contributes an open delivery to its customer's counters, a SOFT_DELETED entry
// negating that contribution is posted in the same transaction, so a deleted
// order never keeps bottles or money on the customer's account.
type SoftDeleteOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewSoftDeleteOrderCommandHandler(uowFactory LedgerUoWFactory) SoftDeleteOrderCommandHandler {
	return SoftDeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SoftDeleteOrderCommandHandler) Handle(ctx context.Context, cmd SoftDeleteOrderCommand) error {
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

	entry, err := services.NewCorrectionHandler().SoftDelete(o, cmd.Reason(), history, kernel.NewUUID())
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
