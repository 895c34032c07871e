package customer_test

import (
	"testing"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.MustID(7), "Ayşe Yılmaz")
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	t.Run("starts with zero counters", func(t *testing.T) {
		c := newCustomer(t)

		require.NoError(t, c.Validate())
		assert.Equal(t, int64(7), c.ID().Int64())
		assert.Equal(t, 0, c.BottlesInHand())
		assert.True(t, c.AccountBalance().IsZero())
		assert.Equal(t, customer.Active, c.Status())
	})

	t.Run("rejects missing id and name together", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.ID{}, "   ")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
		assert.ErrorIs(t, err, customer.ErrFullNameIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c customer.Customer
		assert.Equal(t, customer.ErrCustomerIsNotConstructed, c.Validate())
	})
}

func TestCustomer_Post(t *testing.T) {
	t.Run("applies bottle and balance deltas", func(t *testing.T) {
		c := newCustomer(t)

		require.NoError(t, c.Post(5, kernel.MustMoney("25.00")))
		require.NoError(t, c.Post(-2, kernel.MustMoney("-10.50")))

		assert.Equal(t, 3, c.BottlesInHand())
		assert.Equal(t, "14.50", c.AccountBalance().String())
	})

	t.Run("accepts both bounds", func(t *testing.T) {
		c := newCustomer(t)

		require.NoError(t, c.Post(customer.MaxBottlesInHand, kernel.ZeroMoney))
		require.NoError(t, c.Post(customer.MinBottlesInHand-customer.MaxBottlesInHand, kernel.ZeroMoney))
		assert.Equal(t, customer.MinBottlesInHand, c.BottlesInHand())
	})

	tests := []struct {
		name    string
		start   int
		delta   int
		wantVal int
	}{
		{"above max", 10000, 1, 10001},
		{"below min", -100, -1, -101},
		{"large jump", 0, 20000, 20000},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name+" without mutating", func(t *testing.T) {
			c, err := customer.RestoreCustomer(kernel.MustID(1), "Mehmet", tt.start, kernel.MustMoney("3.00"), customer.Active)
			require.NoError(t, err)

			err = c.Post(tt.delta, kernel.MustMoney("9.99"))

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			var rangeErr *errs.ValueIsOutOfRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.wantVal, rangeErr.Value)
			assert.Equal(t, tt.start, c.BottlesInHand())
			assert.Equal(t, "3.00", c.AccountBalance().String())
		})
	}
}

func TestRestoreCustomer(t *testing.T) {
	t.Run("keeps drifted counters loadable", func(t *testing.T) {
		c, err := customer.RestoreCustomer(kernel.MustID(2), "Drift", 10050, kernel.MustMoney("-4.20"), customer.Suspended)

		require.NoError(t, err)
		assert.Equal(t, 10050, c.BottlesInHand())
		assert.Equal(t, customer.Suspended, c.Status())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := customer.RestoreCustomer(kernel.MustID(2), "Drift", 0, kernel.ZeroMoney, customer.UnknownAccountStatus)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCustomer_CanOrder(t *testing.T) {
	c := newCustomer(t)
	require.NoError(t, c.CanOrder())

	require.NoError(t, c.ChangeStatus(customer.Suspended))
	require.NoError(t, c.CanOrder())

	require.NoError(t, c.ChangeStatus(customer.Banned))
	assert.ErrorIs(t, c.CanOrder(), errs.ErrValueIsInvalid)
}

func TestParseAccountStatus(t *testing.T) {
	for _, want := range []customer.AccountStatus{customer.Active, customer.Suspended, customer.Banned} {
		got, err := customer.ParseAccountStatus(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := customer.ParseAccountStatus("deleted")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", customer.UnknownAccountStatus.String())
}
