// Package customer holds the customer aggregate as seen by the ledger: identity,
// account status and the bottles_in_hand and account_balance counters.
//
// Identity records themselves live in the customer records system. This package
// mirrors only what the order lifecycle needs and guards the counter bounds.
package customer
