package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and the
// items they own.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Items are rewritten: the
	// previous rows are deleted and the current ones inserted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items. Deleted orders are returned too;
	// callers decide what a deleted order may do.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	// Concurrent transitions of the same order are serialized on this lock.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)
}
