package commands

import (
	"context"

	"waterdelivery/internal/core/domain/services"
)

// CancelOrderCommandHandler cancels PENDING, ASSIGNED and OUT_FOR_DELIVERY
// orders. An order whose ledger still holds an un-reversed delivery is
// rejected, since cancelling it would leave bottles and money posted for an
// order that no longer counts.
type CancelOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory LedgerUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = services.NewOrderLifecycle().Cancel(o, cmd.Reason(), history); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
