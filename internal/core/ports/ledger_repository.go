package ports

import (
	"context"
	"iter"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
)

// LedgerRepository is the append-only entry store. It exposes no update or
// delete.
type LedgerRepository interface {
	// Append stores a new entry and returns it with its sequence id and
	// creation time. Unknown order or customer references are rejected with
	// errs.ErrValueIsInvalid.
	Append(ctx context.Context, entry *ledger.Entry) (*ledger.Entry, error)

	// EntriesForOrder lazily yields the order's entries ordered by creation
	// time, ties broken by sequence id. Each range over the sequence runs a
	// fresh query.
	EntriesForOrder(ctx context.Context, orderID kernel.ID) iter.Seq2[*ledger.Entry, error]

	// EntriesForCustomer is EntriesForOrder for all entries of a customer.
	EntriesForCustomer(ctx context.Context, customerID kernel.ID) iter.Seq2[*ledger.Entry, error]
}
