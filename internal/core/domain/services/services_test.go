package services_test

import (
	"slices"
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// book is an in-memory ledger plus one customer, enough to drive the
// services through whole scenarios.
type book struct {
	t        *testing.T
	customer *customer.Customer
	entries  []*ledger.Entry
}

type applier interface {
	Apply(*customer.Customer, *ledger.Entry) error
}

func newBook(t *testing.T, bottles int, balance string) *book {
	t.Helper()
	c, err := customer.RestoreCustomer(kernel.MustID(7), "Fatma Kaya", bottles, kernel.MustMoney(balance), customer.Active)
	require.NoError(t, err)
	return &book{t: t, customer: c}
}

// post applies e and appends it the way the application layer does: project
// first, append only on success.
func (b *book) post(p applier, e *ledger.Entry) error {
	b.t.Helper()
	if err := p.Apply(b.customer, e); err != nil {
		return err
	}
	id := int64(len(b.entries) + 1)
	stored, err := ledger.RestoreEntry(id, time.Unix(id, 0), e.Posting())
	require.NoError(b.t, err)
	b.entries = append(b.entries, stored)
	return nil
}

func (b *book) orderHistory(orderID kernel.ID) []*ledger.Entry {
	var out []*ledger.Entry
	for _, e := range b.entries {
		if e.OrderID().IsEqual(orderID) {
			out = append(out, e)
		}
	}
	return out
}

func (b *book) all() func(yield func(*ledger.Entry, error) bool) {
	return func(yield func(*ledger.Entry, error) bool) {
		for _, e := range slices.Clone(b.entries) {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func assignedOrder(t *testing.T, customerID *kernel.ID) *order.Order {
	t.Helper()
	it, err := order.NewItem(kernel.MustID(100), 1, kernel.MustMoney("25.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewID(), order.Details{CustomerID: customerID}, []*order.Item{it})
	require.NoError(t, err)
	require.NoError(t, o.Assign(kernel.MustID(3)))
	return o
}

func cash(t *testing.T, amount string) *order.Payment {
	t.Helper()
	p, err := order.NewPayment(kernel.MustMoney(amount), order.Cash)
	require.NoError(t, err)
	return &p
}
