package kernel

import (
	"github.com/shopspring/decimal"

	"waterdelivery/internal/pkg/errs"
)

// MoneyScale is the number of fraction digits of every stored amount.
const MoneyScale = 2

// Money is a fixed-point amount with two fraction digits. Single currency.
type Money struct {
	amount decimal.Decimal
}

var ZeroMoney = Money{amount: decimal.Zero}

// NewMoney rounds d half away from zero to two fraction digits.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(MoneyScale)}
}

func MoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -MoneyScale)}
}

// ParseMoney accepts decimal text such as "25", "25.5" or "-12.40".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d), nil
}

// MustMoney is ParseMoney for literals and tests.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal { return m.amount }
func (m Money) Add(o Money) Money        { return Money{amount: m.amount.Add(o.amount)} }
func (m Money) Sub(o Money) Money        { return Money{amount: m.amount.Sub(o.amount)} }
func (m Money) Neg() Money               { return Money{amount: m.amount.Neg()} }
func (m Money) IsZero() bool             { return m.amount.IsZero() }
func (m Money) IsNegative() bool         { return m.amount.IsNegative() }
func (m Money) IsEqual(o Money) bool     { return m.amount.Equal(o.amount) }
func (m Money) Cmp(o Money) int          { return m.amount.Cmp(o.amount) }

// MulInt multiplies by a quantity, e.g. unit price times item count.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// String always renders two fraction digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
