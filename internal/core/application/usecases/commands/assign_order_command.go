package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand hands a PENDING order to a driver.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.ID
	driverID kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID, driverID kernel.ID) (AssignOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.ID  { return c.orderID }
func (c AssignOrderCommand) DriverID() kernel.ID { return c.driverID }
