package commands

import (
	"context"
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/services"
)

// lockOrder loads the order with its row locked and drains its ledger history.
// The history is read after the lock so no concurrent transition of the same
// order can slip in between.
func lockOrder(ctx context.Context, uow LedgerUoW, orderID kernel.ID) (*order.Order, []*ledger.Entry, error) {
	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	history, err := ledger.Collect(uow.LedgerRepository().EntriesForOrder(ctx, orderID))
	if err != nil {
		return nil, nil, fmt.Errorf("read ledger of order %s: %w", orderID, err)
	}
	return o, history, nil
}

// post applies the entry to its customer's counters and appends it. The
// customer row is locked first, so concurrent postings for one customer are
// serialized and the bound check sees the latest counters. A nil entry is a
// no-op.
func post(ctx context.Context, uow LedgerUoW, entry *ledger.Entry) error {
	if entry == nil {
		return nil
	}

	projector := services.NewBalanceProjector()
	if customerID := entry.CustomerID(); customerID != nil {
		c, err := uow.CustomerRepository().GetForUpdate(ctx, *customerID)
		if err != nil {
			return err
		}
		if err := projector.Apply(c, entry); err != nil {
			return err
		}
		if err := uow.CustomerRepository().Update(ctx, c); err != nil {
			return err
		}
	}

	_, err := uow.LedgerRepository().Append(ctx, entry)
	return err
}
