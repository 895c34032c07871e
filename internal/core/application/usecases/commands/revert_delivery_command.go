package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrRevertDeliveryCommandIsNotConstructed = errors.New(
		"RevertDeliveryCommand must be created via NewRevertDeliveryCommand constructor",
	)
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// RevertDeliveryCommand undoes a delivery recorded by mistake. The reason is
// required and kept in the details of the reversal entry.
type RevertDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	reason  string

	guard guard.ConstructorGuard
}

func NewRevertDeliveryCommand(orderID kernel.ID, reason string) (RevertDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), requireReason(reason)); err != nil {
		return RevertDeliveryCommand{}, err
	}

	return RevertDeliveryCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RevertDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRevertDeliveryCommandIsNotConstructed)
}

func (c RevertDeliveryCommand) OrderID() kernel.ID { return c.orderID }
func (c RevertDeliveryCommand) Reason() string     { return c.reason }

func requireReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	return nil
}
