// Package postgres provides the GORM-based Unit of Work and database setup.
//
// One UnitOfWork is one database transaction. An order transition, the ledger
// entries it appends and the customer counter update all go through the same
// UnitOfWork, so they commit or roll back together.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	// ... transition, append, project
//
//	return uow.Commit(ctx)
//
// Commit failures caused by serialization conflicts or deadlocks are returned
// as errs.ErrTransactionConflict and may be retried by the caller.
package postgres

import (
	"context"
	"database/sql"

	"waterdelivery/internal/adapters/out/postgres/customerrepo"
	"waterdelivery/internal/adapters/out/postgres/ledgerrepo"
	"waterdelivery/internal/adapters/out/postgres/orderrepo"
	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/adapters/out/postgres/productrepo"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/ports"

	"gorm.io/gorm"
)

// CommitObserver receives the aggregates written by a unit of work once its
// transaction has committed. Rolled back work is never reported.
type CommitObserver interface {
	Committed(aggregates []any)
}

type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one *gorm.DB.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	observer CommitObserver
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// WithCommitObserver returns a factory whose units of work report committed
// aggregates to o.
func (f *GormUnitOfWorkFactory) WithCommitObserver(o CommitObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: f.db, observer: o}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.create(nil)
}

// CreateSnapshot returns a unit of work for consistent reads. On PostgreSQL
// its transaction is READ ONLY with REPEATABLE READ isolation, so every query
// sees the same snapshot without blocking writers. SQLite transactions are
// already serializable and get no options.
func (f *GormUnitOfWorkFactory) CreateSnapshot() ports.UnitOfWork {
	var opts *sql.TxOptions
	if f.db.Dialector.Name() == "postgres" {
		opts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return f.create(opts)
}

func (f *GormUnitOfWorkFactory) create(opts *sql.TxOptions) *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		txOptions:         opts,
		observer:          f.observer,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	txOptions         *sql.TxOptions
	observer          CommitObserver
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	var tx *gorm.DB
	if uow.txOptions != nil {
		tx = uow.db.WithContext(ctx).Begin(uow.txOptions)
	} else {
		tx = uow.db.WithContext(ctx).Begin()
	}
	if tx.Error != nil {
		return pgerrs.Translate(tx.Error)
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit commits the transaction and then reports tracked aggregates to the
// observer.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return pgerrs.Translate(err)
	}

	if uow.observer != nil && len(uow.trackedAggregates) > 0 {
		aggregates := make([]any, 0, len(uow.trackedAggregates))
		for _, t := range uow.trackedAggregates {
			aggregates = append(aggregates, t.Aggregate)
		}
		uow.observer.Committed(aggregates)
	}
	return nil
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction when
// nothing is active, which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductCatalog() ports.ProductCatalog {
	return productrepo.NewGormProductCatalog(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written in the current transaction.
func (uow *GormUnitOfWork) TrackedAggregates() []any {
	out := make([]any, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		out = append(out, t.Aggregate)
	}
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
