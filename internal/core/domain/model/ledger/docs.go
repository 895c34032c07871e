// Package ledger holds the append-only record of every bottle and balance
// movement caused by an order.
//
// Entries are never updated or removed. A customer's bottles_in_hand and
// account_balance must always equal the fold of that customer's entries;
// mistakes are undone by appending compensating entries.
package ledger
