package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetOrderLedgerQueryIsNotConstructed = errors.New(
	"GetOrderLedgerQuery must be created via NewGetOrderLedgerQuery constructor",
)

// GetOrderLedgerQuery lists the ledger entries of one order in posting order.
type GetOrderLedgerQuery struct {
	orderID kernel.ID
	guard   guard.ConstructorGuard
}

func NewGetOrderLedgerQuery(orderID kernel.ID) (GetOrderLedgerQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderLedgerQuery{}, err
	}
	return GetOrderLedgerQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderLedgerQueryIsNotConstructed)
}

func (q GetOrderLedgerQuery) OrderID() kernel.ID { return q.orderID }
