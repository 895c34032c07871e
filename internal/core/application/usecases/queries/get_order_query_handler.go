package queries

import (
	"context"
)

type GetOrderQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetOrderQueryHandler(uowFactory ReadUoWFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrObjectNotFound for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var view OrderView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		o, err := uow.OrderRepository().Get(ctx, query.OrderID())
		if err != nil {
			return err
		}
		view = newOrderView(o)
		return nil
	})
	if err != nil {
		return OrderView{}, err
	}
	return view, nil
}
