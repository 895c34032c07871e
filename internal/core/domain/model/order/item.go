package order

import (
	"errors"
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
)

// Item is one order line. The unit price is a snapshot taken from the product
// catalog when the line is created and does not follow later price changes.
type Item struct {
	id        kernel.ID
	productID kernel.ID
	quantity  int
	unitPrice kernel.Money
}

func NewItem(productID kernel.ID, quantity int, unitPrice kernel.Money) (*Item, error) {
	return RestoreItem(kernel.NewID(), productID, quantity, unitPrice)
}

func RestoreItem(id, productID kernel.ID, quantity int, unitPrice kernel.Money) (*Item, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice))
	}

	return &Item{
		id:        id,
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i *Item) ID() kernel.ID           { return i.id }
func (i *Item) ProductID() kernel.ID    { return i.productID }
func (i *Item) Quantity() int           { return i.quantity }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// Total is quantity × unit price.
func (i *Item) Total() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}
