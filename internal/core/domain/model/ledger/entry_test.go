package ledger_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posting(action ledger.Action, effect ledger.Effect) ledger.Posting {
	customerID := kernel.MustID(7)
	return ledger.Posting{
		OrderID:     kernel.MustID(11),
		CustomerID:  &customerID,
		Action:      action,
		OldStatus:   order.OutForDelivery,
		NewStatus:   order.Delivered,
		Effect:      effect,
		OperationID: kernel.NewUUID(),
		Details:     ledger.Details{"driver": "3"},
	}
}

func TestNewEntry(t *testing.T) {
	t.Run("accepts posting with one delta", func(t *testing.T) {
		e, err := ledger.NewEntry(posting(ledger.Delivered, ledger.BottlesOnly(5)))

		require.NoError(t, err)
		assert.Zero(t, e.ID())
		assert.Equal(t, ledger.Delivered, e.Action())
		assert.Equal(t, 5, e.Effect().BottlesDelta())
		assert.Nil(t, e.Effect().Balance)
		assert.Equal(t, "3", e.Details()["driver"])
	})

	t.Run("rejects absent effect", func(t *testing.T) {
		_, err := ledger.NewEntry(posting(ledger.Correction, ledger.Effect{}))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, ledger.ErrEffectIsAbsent, err)
	})

	t.Run("rejects unknown references", func(t *testing.T) {
		p := posting(ledger.UnknownAction, ledger.BottlesOnly(1))
		p.OrderID = kernel.ID{}
		p.OperationID = kernel.UUID{}
		p.OldStatus = order.Status(42)

		_, err := ledger.NewEntry(p)

		assert.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("is immune to caller mutation", func(t *testing.T) {
		p := posting(ledger.Delivered, ledger.NewEffect(5, kernel.MustMoney("25")))
		e, err := ledger.NewEntry(p)
		require.NoError(t, err)

		*p.Effect.Bottles = 500
		p.Details["driver"] = "9"
		got := e.Effect()
		*got.Bottles = 900

		assert.Equal(t, 5, e.Effect().BottlesDelta())
		assert.Equal(t, "3", e.Details()["driver"])
	})
}

func TestRestoreEntry(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	reverses := int64(41)
	p := posting(ledger.DeliveryReverted, ledger.NewEffect(-5, kernel.MustMoney("-25")))
	p.Reverses = &reverses

	e, err := ledger.RestoreEntry(42, created, p)

	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID())
	assert.Equal(t, created, e.CreatedAt())
	require.NotNil(t, e.Reverses())
	assert.Equal(t, int64(41), *e.Reverses())
	assert.True(t, e.Posting().Effect.IsEqual(p.Effect))
}

func TestParseAction(t *testing.T) {
	for _, a := range []ledger.Action{ledger.Delivered, ledger.DeliveryReverted, ledger.Correction, ledger.SoftDeleted} {
		got, err := ledger.ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ledger.ParseAction("REFUND")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.True(t, ledger.SoftDeleted.IsReversal())
	assert.False(t, ledger.Correction.IsReversal())
}
