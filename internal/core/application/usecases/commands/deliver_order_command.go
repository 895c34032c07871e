package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand records a completed drop: full bottles left with the
// customer, empties taken back and the payment collected, if any.
//
// Example:
//
//	pay, _ := order.NewPayment(kernel.MustMoney("25.00"), order.Cash)
//	cmd, err := NewDeliverOrderCommand(orderID, 5, 2, &pay)
//	if err != nil {
//	    return err // negative counts are rejected here, before any write
//	}
//	err = handler.Handle(ctx, cmd)
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.ID
	bottlesDelivered int
	bottlesReturned  int
	payment          *order.Payment

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(
	orderID kernel.ID,
	bottlesDelivered, bottlesReturned int,
	payment *order.Payment,
) (DeliverOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		order.ValidateBottles(bottlesDelivered, bottlesReturned),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return DeliverOrderCommand{
		orderID:          orderID,
		bottlesDelivered: bottlesDelivered,
		bottlesReturned:  bottlesReturned,
		payment:          payment,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.ID      { return c.orderID }
func (c DeliverOrderCommand) BottlesDelivered() int   { return c.bottlesDelivered }
func (c DeliverOrderCommand) BottlesReturned() int    { return c.bottlesReturned }
func (c DeliverOrderCommand) Payment() *order.Payment { return c.payment }
