package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// recordingObserver collects what committed units of work report.
type recordingObserver struct {
	mu         sync.Mutex
	aggregates []any
}

func (o *recordingObserver) Committed(aggregates []any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.aggregates = append(o.aggregates, aggregates...)
}

func (o *recordingObserver) entries() []*ledger.Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []*ledger.Entry
	for _, a := range o.aggregates {
		if e, ok := a.(*ledger.Entry); ok {
			out = append(out, e)
		}
	}
	return out
}

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	observer  *recordingObserver
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE order_audit_log, order_items, orders, customers, products RESTART IDENTITY",
	).Error
	suite.Require().NoError(err)

	suite.observer = &recordingObserver{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db).WithCommitObserver(suite.observer)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CustomerRepository())
	suite.NotNil(uow1.LedgerRepository())
	suite.NotNil(uow2.ProductCatalog())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

// TestUnitOfWork_DeliveryCommitsAtomically writes the three parts of a delivery
// in one transaction: the order transition, its ledger entry and the counters.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeliveryCommitsAtomically() {
	ctx := context.Background()
	c, o := suite.seedAssignedOrder(ctx)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	pay := cashPayment(suite.T(), "25.00")
	suite.Require().NoError(locked.Deliver(5, 2, &pay))

	entry := suite.deliveryEntry(locked)
	stored, err := uow.LedgerRepository().Append(ctx, entry)
	suite.Require().NoError(err)
	suite.Positive(stored.ID())
	suite.False(stored.CreatedAt().IsZero())

	cust, err := uow.CustomerRepository().GetForUpdate(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(cust.Post(3, kernel.MustMoney("25.00")))
	suite.Require().NoError(uow.CustomerRepository().Update(ctx, cust))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))

	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	gotOrder, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, gotOrder.Status())
	suite.Equal(5, gotOrder.BottlesDelivered())
	suite.True(gotOrder.IsPaid())

	gotCustomer, err := reader.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(3, gotCustomer.BottlesInHand())
	suite.True(kernel.MustMoney("25.00").IsEqual(gotCustomer.AccountBalance()))

	entries, err := ledger.Collect(reader.LedgerRepository().EntriesForCustomer(ctx, c.ID()))
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(ledger.Delivered, entries[0].Action())
	suite.True(entries[0].Effect().IsEqual(ledger.NewEffect(3, kernel.MustMoney("25.00"))))

	reported := suite.observer.entries()
	suite.Require().Len(reported, 1)
	suite.Equal(stored.ID(), reported[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	c, o := suite.seedAssignedOrder(ctx)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	_, err := uow.LedgerRepository().Append(ctx, suite.deliveryEntryFor(o, c.ID()))
	suite.Require().NoError(err)
	cust, err := uow.CustomerRepository().GetForUpdate(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(cust.Post(3, kernel.ZeroMoney))
	suite.Require().NoError(uow.CustomerRepository().Update(ctx, cust))

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	entries, err := ledger.Collect(reader.LedgerRepository().EntriesForOrder(ctx, o.ID()))
	suite.Require().NoError(err)
	suite.Empty(entries, "Entries should not exist after rollback")

	gotCustomer, err := reader.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Zero(gotCustomer.BottlesInHand())
	suite.Empty(suite.observer.entries(), "Rolled back work is not reported")
}

// TestUnitOfWork_CustomerBoundsEnforcedByDatabase verifies the check constraint
// catches counters that bypass the domain bounds.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CustomerBoundsEnforcedByDatabase() {
	ctx := context.Background()
	c := suite.seedCustomer(ctx)

	overflow, err := customer.RestoreCustomer(c.ID(), c.FullName(), customer.MaxBottlesInHand+1,
		kernel.ZeroMoney, customer.Active)
	suite.Require().NoError(err)

	err = suite.factory.Create().CustomerRepository().Update(ctx, overflow)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrValueIsOutOfRange)
}

// TestUnitOfWork_CustomerLockSerializesPostings verifies a second transaction
// cannot lock a customer row held by the first, while other customers stay
// available.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CustomerLockSerializesPostings() {
	ctx := context.Background()
	first := suite.seedCustomer(ctx)
	second := suite.seedCustomer(ctx)

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.CustomerRepository().GetForUpdate(ctx, first.ID())
	suite.Require().NoError(err)

	waiter := suite.factory.Create()
	suite.Require().NoError(waiter.Begin(ctx))
	defer func() { _ = waiter.Rollback(ctx) }()

	_, err = waiter.CustomerRepository().GetForUpdate(ctx, second.ID())
	suite.Require().NoError(err, "Other customers are not blocked")

	timeoutCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = waiter.CustomerRepository().GetForUpdate(timeoutCtx, first.ID())
	suite.Require().Error(err, "Locked customer should block until the holder finishes")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SnapshotIsReadOnly() {
	ctx := context.Background()
	c := suite.seedCustomer(ctx)

	snapshot := suite.factory.CreateSnapshot()
	suite.Require().NoError(snapshot.Begin(ctx))
	defer func() { _ = snapshot.Rollback(ctx) }()

	got, err := snapshot.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(got.Post(1, kernel.ZeroMoney))

	err = snapshot.CustomerRepository().Update(ctx, got)
	suite.Require().Error(err, "Snapshot transactions reject writes")
}

// TestUnitOfWork_SnapshotSeesConsistentState verifies counters committed after
// the snapshot began are not visible to it.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SnapshotSeesConsistentState() {
	ctx := context.Background()
	c := suite.seedCustomer(ctx)

	snapshot := suite.factory.CreateSnapshot()
	suite.Require().NoError(snapshot.Begin(ctx))
	defer func() { _ = snapshot.Rollback(ctx) }()
	_, err := snapshot.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	cust, err := writer.CustomerRepository().GetForUpdate(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(cust.Post(4, kernel.ZeroMoney))
	suite.Require().NoError(writer.CustomerRepository().Update(ctx, cust))
	suite.Require().NoError(writer.Commit(ctx))

	again, err := snapshot.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Zero(again.BottlesInHand())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	c := suite.seedCustomer(ctx)

	got, err := suite.factory.Create().CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(c.FullName(), got.FullName())
}

func (suite *UnitOfWorkIntegrationTestSuite) seedCustomer(ctx context.Context) *customer.Customer {
	c, err := customer.NewCustomer(kernel.NewID(), "Jane Doe")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CustomerRepository().Add(ctx, c))
	return c
}

func (suite *UnitOfWorkIntegrationTestSuite) seedAssignedOrder(ctx context.Context) (*customer.Customer, *order.Order) {
	c := suite.seedCustomer(ctx)

	item, err := order.NewItem(kernel.NewID(), 5, kernel.MustMoney("5.00"))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewID(), order.Details{CustomerID: c.ID().Ptr()}, []*order.Item{item})
	suite.Require().NoError(err)
	suite.Require().NoError(o.Assign(kernel.NewID()))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))
	return c, o
}

func (suite *UnitOfWorkIntegrationTestSuite) deliveryEntry(o *order.Order) *ledger.Entry {
	return suite.deliveryEntryFor(o, *o.CustomerID())
}

func (suite *UnitOfWorkIntegrationTestSuite) deliveryEntryFor(o *order.Order, customerID kernel.ID) *ledger.Entry {
	e, err := ledger.NewEntry(ledger.Posting{
		OrderID:     o.ID(),
		CustomerID:  customerID.Ptr(),
		Action:      ledger.Delivered,
		OldStatus:   order.Assigned,
		NewStatus:   order.Delivered,
		Effect:      ledger.NewEffect(3, kernel.MustMoney("25.00")),
		OperationID: kernel.NewUUID(),
	})
	suite.Require().NoError(err)
	return e
}

func cashPayment(t *testing.T, amount string) order.Payment {
	t.Helper()
	p, err := order.NewPayment(kernel.MustMoney(amount), order.Cash)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

var _ ports.UnitOfWorkFactory = (*postgres_adapter.GormUnitOfWorkFactory)(nil)
