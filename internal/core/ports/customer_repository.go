package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
)

// CustomerRepository stores the ledger-relevant mirror of customer records.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update writes counters and account status.
	Update(ctx context.Context, aggregate *customer.Customer) error

	Get(ctx context.Context, id kernel.ID) (*customer.Customer, error)

	// GetForUpdate locks the customer row until the transaction ends. Every
	// counter change goes through this lock, which serializes postings per
	// customer while leaving other customers unaffected.
	GetForUpdate(ctx context.Context, id kernel.ID) (*customer.Customer, error)

	// ListIDs pages through customer ids in ascending order, starting after
	// the given id.
	ListIDs(ctx context.Context, after int64, limit int) ([]kernel.ID, error)
}
