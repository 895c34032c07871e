package commands_test

import (
	"context"
	"iter"
	"slices"
	"testing"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListIDs(ctx context.Context, after int64, limit int) ([]kernel.ID, error) {
	args := m.Called(ctx, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.ID), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Append(ctx context.Context, e *ledger.Entry) (*ledger.Entry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) EntriesForOrder(ctx context.Context, id kernel.ID) iter.Seq2[*ledger.Entry, error] {
	args := m.Called(ctx, id)
	return seq(args.Get(0).([]*ledger.Entry))
}

func (m *MockLedgerRepository) EntriesForCustomer(ctx context.Context, id kernel.ID) iter.Seq2[*ledger.Entry, error] {
	args := m.Called(ctx, id)
	return seq(args.Get(0).([]*ledger.Entry))
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) Get(ctx context.Context, id kernel.ID) (ports.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Product), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

func (m *MockUoW) ProductCatalog() ports.ProductCatalog {
	args := m.Called()
	return args.Get(0).(ports.ProductCatalog)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogUoW)
}

type MockCustomerUoWFactory struct{ mock.Mock }

func (m *MockCustomerUoWFactory) Create() commands.CustomerUoW {
	args := m.Called()
	return args.Get(0).(commands.CustomerUoW)
}

func seq(entries []*ledger.Entry) iter.Seq2[*ledger.Entry, error] {
	return func(yield func(*ledger.Entry, error) bool) {
		for _, e := range slices.Clone(entries) {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// env bundles the mocks behind one ledger unit of work.
type env struct {
	uow       *MockUoW
	orders    *MockOrderRepository
	customers *MockCustomerRepository
	ledger    *MockLedgerRepository
	factory   *MockLedgerUoWFactory
}

func newEnv() *env {
	e := &env{
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		customers: new(MockCustomerRepository),
		ledger:    new(MockLedgerRepository),
		factory:   new(MockLedgerUoWFactory),
	}
	e.factory.On("Create").Return(e.uow).Once()
	e.uow.On("OrderRepository").Return(e.orders).Maybe()
	e.uow.On("CustomerRepository").Return(e.customers).Maybe()
	e.uow.On("LedgerRepository").Return(e.ledger).Maybe()
	return e
}

func (e *env) assertExpectations(t *testing.T) {
	t.Helper()
	e.orders.AssertExpectations(t)
	e.customers.AssertExpectations(t)
	e.ledger.AssertExpectations(t)
	e.uow.AssertExpectations(t)
	e.factory.AssertExpectations(t)
}

func newCustomer(t *testing.T, bottles int, balance string) *customer.Customer {
	t.Helper()
	c, err := customer.RestoreCustomer(kernel.NewID(), "Jane Doe", bottles, kernel.MustMoney(balance), customer.Active)
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, customerID *kernel.ID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewID(), 5, kernel.MustMoney("5.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewID(), order.Details{CustomerID: customerID}, []*order.Item{item})
	require.NoError(t, err)
	return o
}

func assignedOrder(t *testing.T, customerID *kernel.ID) *order.Order {
	t.Helper()
	o := newOrder(t, customerID)
	require.NoError(t, o.Assign(kernel.NewID()))
	return o
}

func cash(t *testing.T, amount string) *order.Payment {
	t.Helper()
	p, err := order.NewPayment(kernel.MustMoney(amount), order.Cash)
	require.NoError(t, err)
	return &p
}

// deliveredWithHistory returns a DELIVERED order together with the stored
// DELIVERED entry that recorded it.
func deliveredWithHistory(
	t *testing.T,
	c *customer.Customer,
	delivered, returned int,
	payment *order.Payment,
) (*order.Order, []*ledger.Entry) {
	t.Helper()
	o := assignedOrder(t, c.ID().Ptr())
	require.NoError(t, o.Deliver(delivered, returned, payment))

	effect := ledger.BottlesOnly(delivered - returned)
	if payment != nil {
		effect = ledger.NewEffect(delivered-returned, payment.Amount())
	}
	entry, err := ledger.RestoreEntry(1, o.CreatedAt(), ledger.Posting{
		OrderID:     o.ID(),
		CustomerID:  c.ID().Ptr(),
		Action:      ledger.Delivered,
		OldStatus:   order.Assigned,
		NewStatus:   order.Delivered,
		Effect:      effect,
		OperationID: kernel.NewUUID(),
	})
	require.NoError(t, err)
	return o, []*ledger.Entry{entry}
}
