package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrReconcileCustomerQueryIsNotConstructed = errors.New(
	"ReconcileCustomerQuery must be created via NewReconcileCustomerQuery constructor",
)

// ReconcileCustomerQuery compares a customer's stored counters with the sum of
// their ledger deltas. It never changes either side.
type ReconcileCustomerQuery struct {
	customerID kernel.ID
	guard      guard.ConstructorGuard
}

func NewReconcileCustomerQuery(customerID kernel.ID) (ReconcileCustomerQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ReconcileCustomerQuery{}, err
	}
	return ReconcileCustomerQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ReconcileCustomerQuery) Validate() error {
	return q.guard.Validate(ErrReconcileCustomerQueryIsNotConstructed)
}

func (q ReconcileCustomerQuery) CustomerID() kernel.ID { return q.customerID }
