package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetCustomerLedgerQueryIsNotConstructed = errors.New(
	"GetCustomerLedgerQuery must be created via NewGetCustomerLedgerQuery constructor",
)

// GetCustomerLedgerQuery reads a customer's counters together with the full
// history they are derived from.
type GetCustomerLedgerQuery struct {
	customerID kernel.ID
	guard      guard.ConstructorGuard
}

func NewGetCustomerLedgerQuery(customerID kernel.ID) (GetCustomerLedgerQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerLedgerQuery{}, err
	}
	return GetCustomerLedgerQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerLedgerQueryIsNotConstructed)
}

func (q GetCustomerLedgerQuery) CustomerID() kernel.ID { return q.customerID }

// CustomerLedgerView is a customer's counters and ledger history as of one
// snapshot.
type CustomerLedgerView struct {
	CustomerID     kernel.ID
	FullName       string
	AccountStatus  string
	BottlesInHand  int
	AccountBalance kernel.Money
	Entries        []EntryView
}
