package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrSoftDeleteOrderCommandIsNotConstructed = errors.New(
	"SoftDeleteOrderCommand must be created via NewSoftDeleteOrderCommand constructor",
)

// SoftDeleteOrderCommand hides an order from operational lists while keeping
// its row and ledger history.
type SoftDeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	reason  string

	guard guard.ConstructorGuard
}

func NewSoftDeleteOrderCommand(orderID kernel.ID, reason string) (SoftDeleteOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), requireReason(reason)); err != nil {
		return SoftDeleteOrderCommand{}, err
	}

	return SoftDeleteOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SoftDeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteOrderCommandIsNotConstructed)
}

func (c SoftDeleteOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c SoftDeleteOrderCommand) Reason() string     { return c.reason }
