package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/order"
)

// CreateOrderCommandHandler creates PENDING orders priced from the product
// catalog.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory CatalogUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks that the customer may order, snapshots the current unit price
// of every line and persists the order. Unknown or inactive products fail with
// errs.ErrObjectNotFound.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	if customerID := cmd.CustomerID(); customerID != nil {
		c, err := uow.CustomerRepository().Get(ctx, *customerID)
		if err != nil {
			return err
		}
		if err = c.CanOrder(); err != nil {
			return err
		}
	}

	catalog := uow.ProductCatalog()
	lines := cmd.Lines()
	items := make([]*order.Item, 0, len(lines))
	for _, line := range lines {
		product, err := catalog.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}
		item, err := order.NewItem(product.ID, line.Quantity, product.Price)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(cmd.OrderID(), order.Details{
		CustomerID:            cmd.CustomerID(),
		AddressID:             cmd.AddressID(),
		RequestedDeliveryDate: cmd.RequestedDeliveryDate(),
		DeliveryWindow:        cmd.DeliveryWindow(),
	}, items)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
