package ledgerrepo_test

import (
	"context"
	"testing"

	postgres_adapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/customerrepo"
	"waterdelivery/internal/adapters/out/postgres/ledgerrepo"
	"waterdelivery/internal/adapters/out/postgres/orderrepo"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.ID, aggregate any) {
	m.Called(id, aggregate)
}

type fixture struct {
	db         *gorm.DB
	repo       *ledgerrepo.GormLedgerRepository
	tracker    *MockAggregateTracker
	orderID    kernel.ID
	customerID kernel.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := postgres_adapter.Open(postgres_adapter.Options{
		Driver:     postgres_adapter.DriverSQLite,
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:         db,
		tracker:    new(MockAggregateTracker),
		orderID:    kernel.NewID(),
		customerID: kernel.NewID(),
	}
	f.repo = ledgerrepo.NewGormLedgerRepository(db, f.tracker)

	require.NoError(t, db.Create(&customerrepo.CustomerDTO{
		ID:             f.customerID.Int64(),
		FullName:       "Jane Doe",
		AccountBalance: decimal.Zero,
		Status:         "active",
	}).Error)
	customerID := f.customerID.Int64()
	require.NoError(t, db.Create(&orderrepo.OrderDTO{
		ID:          f.orderID.Int64(),
		CustomerID:  &customerID,
		Status:      order.Delivered.String(),
		TotalAmount: decimal.RequireFromString("25.00"),
	}).Error)
	return f
}

func (f *fixture) entry(t *testing.T, action ledger.Action, effect ledger.Effect, reverses *int64) *ledger.Entry {
	t.Helper()
	e, err := ledger.NewEntry(ledger.Posting{
		OrderID:     f.orderID,
		CustomerID:  f.customerID.Ptr(),
		Action:      action,
		OldStatus:   order.Assigned,
		NewStatus:   order.Delivered,
		Effect:      effect,
		Reverses:    reverses,
		OperationID: kernel.NewUUID(),
		Details:     ledger.Details{"reason": "driver miscounted"},
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) append(t *testing.T, e *ledger.Entry) *ledger.Entry {
	t.Helper()
	stored, err := f.repo.Append(context.Background(), e)
	require.NoError(t, err)
	return stored
}

func TestGormLedgerRepository_Append(t *testing.T) {
	f := newFixture(t)
	f.tracker.On("TrackAggregate", f.orderID, mock.AnythingOfType("*ledger.Entry")).Once()

	e := f.entry(t, ledger.Delivered, ledger.NewEffect(3, kernel.MustMoney("25.00")), nil)
	stored, err := f.repo.Append(context.Background(), e)

	require.NoError(t, err)
	assert.Positive(t, stored.ID())
	assert.False(t, stored.CreatedAt().IsZero())
	assert.Zero(t, e.ID(), "the caller's entry stays unappended")
	assert.Equal(t, ledger.Delivered, stored.Action())
	assert.Equal(t, order.Assigned, stored.OldStatus())
	assert.Equal(t, order.Delivered, stored.NewStatus())
	assert.True(t, e.OperationID().IsEqual(stored.OperationID()))
	assert.Equal(t, "driver miscounted", stored.Details()["reason"])
	f.tracker.AssertExpectations(t)
}

func TestGormLedgerRepository_AppendRejects(t *testing.T) {
	t.Run("unknown order", func(t *testing.T) {
		f := newFixture(t)
		e, err := ledger.NewEntry(ledger.Posting{
			OrderID:     kernel.NewID(),
			Action:      ledger.Delivered,
			Effect:      ledger.BottlesOnly(1),
			OperationID: kernel.NewUUID(),
		})
		require.NoError(t, err)

		_, err = f.repo.Append(context.Background(), e)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.tracker.AssertNotCalled(t, "TrackAggregate", mock.Anything, mock.Anything)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newFixture(t)
		e, err := ledger.NewEntry(ledger.Posting{
			OrderID:     f.orderID,
			CustomerID:  kernel.NewID().Ptr(),
			Action:      ledger.Delivered,
			Effect:      ledger.BottlesOnly(1),
			OperationID: kernel.NewUUID(),
		})
		require.NoError(t, err)

		_, err = f.repo.Append(context.Background(), e)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("already appended", func(t *testing.T) {
		f := newFixture(t)
		f.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
		stored := f.append(t, f.entry(t, ledger.Delivered, ledger.BottlesOnly(1), nil))

		_, err := f.repo.Append(context.Background(), stored)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("nil entry", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.repo.Append(context.Background(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGormLedgerRepository_EntriesForOrder(t *testing.T) {
	f := newFixture(t)
	f.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	delivery := f.append(t, f.entry(t, ledger.Delivered, ledger.NewEffect(3, kernel.MustMoney("25.00")), nil))
	correction := f.append(t, f.entry(t, ledger.Correction, ledger.NewEffect(-1, kernel.ZeroMoney), nil))
	ref := delivery.ID()
	reversal := f.append(t, f.entry(t, ledger.DeliveryReverted, ledger.NewEffect(-2, kernel.MustMoney("-25.00")), &ref))

	entries, err := ledger.Collect(f.repo.EntriesForOrder(context.Background(), f.orderID))

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []int64{delivery.ID(), correction.ID(), reversal.ID()},
		[]int64{entries[0].ID(), entries[1].ID(), entries[2].ID()})
	require.NotNil(t, entries[2].Reverses())
	assert.Equal(t, delivery.ID(), *entries[2].Reverses())
	assert.True(t, ledger.Fold(entries).IsZero())

	again, err := ledger.Collect(f.repo.EntriesForOrder(context.Background(), f.orderID))
	require.NoError(t, err)
	assert.Len(t, again, 3, "the sequence can be ranged more than once")
}

func TestGormLedgerRepository_AbsentDeltasStayAbsent(t *testing.T) {
	f := newFixture(t)
	f.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	f.append(t, f.entry(t, ledger.Delivered, ledger.BottlesOnly(4), nil))

	entries, err := ledger.Collect(f.repo.EntriesForCustomer(context.Background(), f.customerID))

	require.NoError(t, err)
	require.Len(t, entries, 1)
	effect := entries[0].Effect()
	require.NotNil(t, effect.Bottles)
	assert.Equal(t, 4, *effect.Bottles)
	assert.Nil(t, effect.Balance)
}

func TestGormLedgerRepository_EntriesStopEarly(t *testing.T) {
	f := newFixture(t)
	f.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	for range 3 {
		f.append(t, f.entry(t, ledger.Correction, ledger.BottlesOnly(1), nil))
	}

	seen := 0
	for e, err := range f.repo.EntriesForCustomer(context.Background(), f.customerID) {
		require.NoError(t, err)
		require.NotNil(t, e)
		seen++
		if seen == 2 {
			break
		}
	}

	assert.Equal(t, 2, seen)
	entries, err := ledger.Collect(f.repo.EntriesForCustomer(context.Background(), f.customerID))
	require.NoError(t, err)
	assert.Len(t, entries, 3, "breaking out of a range releases the cursor")
}

func TestGormLedgerRepository_EntriesForUnknownCustomerIsEmpty(t *testing.T) {
	f := newFixture(t)

	entries, err := ledger.Collect(f.repo.EntriesForCustomer(context.Background(), kernel.NewID()))

	require.NoError(t, err)
	assert.Empty(t, entries)
}
