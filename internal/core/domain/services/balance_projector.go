package services

import (
	"fmt"
	"iter"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/pkg/errs"
)

// BalanceProjector keeps a customer's aggregate counters equal to the fold of
// the customer's ledger entries.
//
// Apply is the only writer of the counters and must run in the same
// transaction as the append of the entry it applies, with the customer row
// locked. Reconcile recomputes the counters from history and reports drift; it
// never corrects either side.
//
// Example usage:
//
//	projector := NewBalanceProjector()
//	if err := projector.Apply(c, entry); err != nil {
//	    // errs.ErrValueIsOutOfRange: abort the transaction
//	}
type BalanceProjector struct{}

func NewBalanceProjector() BalanceProjector {
	return BalanceProjector{}
}

// Apply posts the deltas of e on c. Entries without a customer belong to walk-in
// orders and touch no counters; c may be nil for them.
//
// On an *errs.ValueIsOutOfRangeError the customer is left unchanged and the
// caller must not append e.
func (p BalanceProjector) Apply(c *customer.Customer, e *ledger.Entry) error {
	if e == nil {
		return errs.NewValueIsRequiredError("entry")
	}
	if e.CustomerID() == nil {
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.ID().IsEqual(*e.CustomerID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"customer",
			fmt.Errorf("entry belongs to customer %s, got %s", e.CustomerID(), c.ID()),
		)
	}

	effect := e.Effect()
	return c.Post(effect.BottlesDelta(), effect.BalanceDelta())
}

// Reconciliation compares the stored counters of one customer with the values
// derived from the ledger. Drift is stored minus derived.
type Reconciliation struct {
	CustomerID     kernel.ID
	Entries        int
	StoredBottles  int
	StoredBalance  kernel.Money
	DerivedBottles int
	DerivedBalance kernel.Money
	BottlesDrift   int
	BalanceDrift   kernel.Money
}

func (r Reconciliation) HasDrift() bool {
	return r.BottlesDrift != 0 || !r.BalanceDrift.IsZero()
}

// Err returns an *errs.ConsistencyDriftError when the counters drifted.
func (r Reconciliation) Err() error {
	if !r.HasDrift() {
		return nil
	}
	return errs.NewConsistencyDriftError(
		fmt.Sprintf("customer %s", r.CustomerID),
		r.BottlesDrift,
		r.BalanceDrift.String(),
	)
}

// Reconcile folds the customer's full history. The returned error is only for
// failures reading entries; drift is reported through the Reconciliation.
func (p BalanceProjector) Reconcile(c *customer.Customer, entries iter.Seq2[*ledger.Entry, error]) (Reconciliation, error) {
	if err := c.Validate(); err != nil {
		return Reconciliation{}, err
	}

	r := Reconciliation{
		CustomerID:     c.ID(),
		StoredBottles:  c.BottlesInHand(),
		StoredBalance:  c.AccountBalance(),
		DerivedBalance: kernel.ZeroMoney,
	}
	for e, err := range entries {
		if err != nil {
			return Reconciliation{}, err
		}
		effect := e.Effect()
		r.Entries++
		r.DerivedBottles += effect.BottlesDelta()
		r.DerivedBalance = r.DerivedBalance.Add(effect.BalanceDelta())
	}

	r.BottlesDrift = r.StoredBottles - r.DerivedBottles
	r.BalanceDrift = r.StoredBalance.Sub(r.DerivedBalance)
	return r, nil
}
