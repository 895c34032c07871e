// Package order models a bottled-water delivery order and its lifecycle.
//
// Status transitions are driven by an explicit table keyed by (Status, Event):
//
//	pending ──assign──▶ assigned ──dispatch──▶ out_for_delivery
//	   │                  │   ▲                      │
//	   │                  │   └──────revert─────┐    │
//	   │                  └──deliver──▶ delivered ◀──┘ deliver
//	   └────────cancel (also from assigned, out_for_delivery)──▶ cancelled
//
// Soft deletion is a separate flag on the order; a deleted order accepts no
// events. The order does not write ledger entries itself: services compute the
// compensating effects and the application layer persists both in one
// transaction.
package order
