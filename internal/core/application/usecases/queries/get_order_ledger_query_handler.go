package queries

import (
	"context"
)

type GetOrderLedgerQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetOrderLedgerQueryHandler(uowFactory ReadUoWFactory) GetOrderLedgerQueryHandler {
	return GetOrderLedgerQueryHandler{uowFactory: uowFactory}
}

// Handle checks that the order exists, so an unknown order is
// errs.ErrObjectNotFound rather than an empty history.
func (h GetOrderLedgerQueryHandler) Handle(ctx context.Context, query GetOrderLedgerQuery) ([]EntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]EntryView, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		if _, err := uow.OrderRepository().Get(ctx, query.OrderID()); err != nil {
			return err
		}
		for e, err := range uow.LedgerRepository().EntriesForOrder(ctx, query.OrderID()) {
			if err != nil {
				return err
			}
			entries = append(entries, newEntryView(e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
