package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"
)

// DeliverOrderCommandHandler completes a delivery. The order transition, the
// DELIVERED ledger entry and the customer counter update commit together or not
// at all.
//
// A repeated delivery of the same order fails with *errs.InvalidTransitionError
// because the order is already DELIVERED, so callers may retry a request whose
// outcome they did not see without double-posting.
type DeliverOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewDeliverOrderCommandHandler(uowFactory LedgerUoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with errs.ErrValueIsOutOfRange when the customer's bottles in
// hand would leave the allowed bounds; nothing is written in that case.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	entry, err := services.NewOrderLifecycle().Deliver(
		o, cmd.BottlesDelivered(), cmd.BottlesReturned(), cmd.Payment(), kernel.NewUUID(),
	)
	if err != nil {
		return err
	}

	if err = post(ctx, uow, entry); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
