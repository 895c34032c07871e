package guard_test

import (
	"errors"
	"testing"

	"waterdelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		err := g.Validate(errors.New("not constructed"))

		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuardUsageExample(t *testing.T) {
	type BottleDrop struct {
		delivered int
		returned  int
		guard     guard.ConstructorGuard
	}

	errDropNotConstructed := errors.New("BottleDrop must be created via NewBottleDrop")

	newBottleDrop := func(delivered, returned int) (BottleDrop, error) {
		if delivered < 0 {
			return BottleDrop{}, errors.New("delivered cannot be negative")
		}
		if returned < 0 {
			return BottleDrop{}, errors.New("returned cannot be negative")
		}
		return BottleDrop{
			delivered: delivered,
			returned:  returned,
			guard:     guard.NewConstructorGuard(),
		}, nil
	}

	validateDrop := func(d BottleDrop) error {
		return d.guard.Validate(errDropNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		drop, err := newBottleDrop(5, 2)

		require.NoError(t, err)
		require.NoError(t, validateDrop(drop))
		assert.Equal(t, 5, drop.delivered)
		assert.Equal(t, 2, drop.returned)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var drop BottleDrop

		err := validateDrop(drop)

		require.Error(t, err)
		assert.Equal(t, errDropNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newBottleDrop(-1, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delivered cannot be negative")

		_, err = newBottleDrop(1, -4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "returned cannot be negative")
	})
}

func TestConstructorGuardWithMultipleErrors(t *testing.T) {
	testCases := []struct {
		name          string
		expectedError error
	}{
		{
			name:          "order_not_constructed_error",
			expectedError: errors.New("Order must be created via NewOrder"),
		},
		{
			name:          "command_not_constructed_error",
			expectedError: errors.New("DeliverOrderCommand must be created via NewDeliverOrderCommand"),
		},
		{
			name:          "nil_error_uses_default",
			expectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := guard.NewConstructorGuard()

			err := g.Validate(tc.expectedError)

			require.NoError(t, err, "Properly constructed guard should not return error")
		})
	}
}

func TestConstructorGuardDefaultError(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 500 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}

func BenchmarkConstructorGuard(b *testing.B) {
	b.Run("Validate_Success", func(b *testing.B) {
		g := guard.NewConstructorGuard()
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = g.Validate(err)
		}
	})

	b.Run("Validate_ZeroValue", func(b *testing.B) {
		var g guard.ConstructorGuard
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = g.Validate(err)
		}
	})
}
