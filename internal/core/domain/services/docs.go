// Package services holds the domain services of the ledger: the balance
// projector, the forward order lifecycle that posts deliveries and the
// correction handler for reversals, corrections and soft deletes.
//
// Services are stateless. They mutate aggregates in memory and return the
// ledger entries to append; the application layer persists the order, the
// entries and the customer counters in one transaction.
package services
