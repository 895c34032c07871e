package queries

import (
	"context"
)

type GetCustomerLedgerQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetCustomerLedgerQueryHandler(uowFactory ReadUoWFactory) GetCustomerLedgerQueryHandler {
	return GetCustomerLedgerQueryHandler{uowFactory: uowFactory}
}

func (h GetCustomerLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerLedgerQuery,
) (CustomerLedgerView, error) {
	if err := query.Validate(); err != nil {
		return CustomerLedgerView{}, err
	}

	var view CustomerLedgerView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		c, err := uow.CustomerRepository().Get(ctx, query.CustomerID())
		if err != nil {
			return err
		}
		view = CustomerLedgerView{
			CustomerID:     c.ID(),
			FullName:       c.FullName(),
			AccountStatus:  c.Status().String(),
			BottlesInHand:  c.BottlesInHand(),
			AccountBalance: c.AccountBalance(),
			Entries:        make([]EntryView, 0),
		}
		for e, err := range uow.LedgerRepository().EntriesForCustomer(ctx, c.ID()) {
			if err != nil {
				return err
			}
			view.Entries = append(view.Entries, newEntryView(e))
		}
		return nil
	})
	if err != nil {
		return CustomerLedgerView{}, err
	}
	return view, nil
}
