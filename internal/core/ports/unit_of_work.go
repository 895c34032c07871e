package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. An order transition, its
// ledger append and the customer counter update share one UnitOfWork.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns errs.ErrTransactionConflict when the store aborted the
	// transaction because of a concurrent writer; the whole command may be
	// retried.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	CustomerRepository() CustomerRepository

	LedgerRepository() LedgerRepository

	ProductCatalog() ProductCatalog
}
