package kernel_test

import (
	"testing"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"25", "25.00"},
		{"25.5", "25.50"},
		{"-12.40", "-12.40"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := kernel.ParseMoney(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}

	_, err := kernel.ParseMoney("twelve")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := kernel.MustMoney("50.00")
	b := kernel.MustMoney("12.35")

	assert.Equal(t, "62.35", a.Add(b).String())
	assert.Equal(t, "37.65", a.Sub(b).String())
	assert.Equal(t, "-50.00", a.Neg().String())
	assert.Equal(t, "61.75", b.MulInt(5).String())
	assert.True(t, a.Sub(a).IsZero())
	assert.True(t, b.Sub(a).IsNegative())
	assert.Equal(t, 1, a.Cmp(b))
}

func TestMoney_Equality(t *testing.T) {
	assert.True(t, kernel.MustMoney("1.1").IsEqual(kernel.MoneyFromCents(110)))
	assert.True(t, kernel.NewMoney(decimal.RequireFromString("3.14159")).IsEqual(kernel.MustMoney("3.14")))
	assert.True(t, kernel.ZeroMoney.IsZero())
}
