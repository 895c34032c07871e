package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/guard"
)

var ErrCorrectDeliveryCommandIsNotConstructed = errors.New(
	"CorrectDeliveryCommand must be created via NewCorrectDeliveryCommand constructor",
)

// CorrectDeliveryCommand carries the revised figures of a delivery: what should
// have been recorded, not the difference. A nil payment means nothing was
// collected.
type CorrectDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.ID
	bottlesDelivered int
	bottlesReturned  int
	payment          *order.Payment
	reason           string

	guard guard.ConstructorGuard
}

func NewCorrectDeliveryCommand(
	orderID kernel.ID,
	bottlesDelivered, bottlesReturned int,
	payment *order.Payment,
	reason string,
) (CorrectDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		order.ValidateBottles(bottlesDelivered, bottlesReturned),
		requireReason(reason),
	); err != nil {
		return CorrectDeliveryCommand{}, err
	}

	return CorrectDeliveryCommand{
		orderID:          orderID,
		bottlesDelivered: bottlesDelivered,
		bottlesReturned:  bottlesReturned,
		payment:          payment,
		reason:           reason,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CorrectDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCorrectDeliveryCommandIsNotConstructed)
}

func (c CorrectDeliveryCommand) OrderID() kernel.ID      { return c.orderID }
func (c CorrectDeliveryCommand) BottlesDelivered() int   { return c.bottlesDelivered }
func (c CorrectDeliveryCommand) BottlesReturned() int    { return c.bottlesReturned }
func (c CorrectDeliveryCommand) Payment() *order.Payment { return c.payment }
func (c CorrectDeliveryCommand) Reason() string          { return c.reason }
