package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"
)

// RevertDeliveryCommandHandler posts a DELIVERY_REVERTED entry negating the
// net effect of the order's open delivery, corrections included, and returns
// the order to ASSIGNED. The customer ends where it was before the delivery.
type RevertDeliveryCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewRevertDeliveryCommandHandler(uowFactory LedgerUoWFactory) RevertDeliveryCommandHandler {
	return RevertDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RevertDeliveryCommandHandler) Handle(ctx context.Context, cmd RevertDeliveryCommand) error {
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

	entry, err := services.NewCorrectionHandler().RevertDelivery(o, cmd.Reason(), history, kernel.NewUUID())
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
