package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
)

type ListCustomerIDsQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewListCustomerIDsQueryHandler(uowFactory ReadUoWFactory) ListCustomerIDsQueryHandler {
	return ListCustomerIDsQueryHandler{uowFactory: uowFactory}
}

// Handle returns at most query.Limit() ids. A short page is the last one.
func (h ListCustomerIDsQueryHandler) Handle(ctx context.Context, query ListCustomerIDsQuery) ([]kernel.ID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var ids []kernel.ID
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		var err error
		ids, err = uow.CustomerRepository().ListIDs(ctx, query.After(), query.Limit())
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
