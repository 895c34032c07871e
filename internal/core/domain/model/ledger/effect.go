package ledger

import (
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
)

// Effect is the pair of optional deltas carried by a ledger entry. A nil field
// means the entry does not touch that counter, which is distinct from an
// explicit zero.
type Effect struct {
	Bottles *int
	Balance *kernel.Money
}

// NewEffect returns an effect with both deltas present.
func NewEffect(bottles int, balance kernel.Money) Effect {
	return Effect{Bottles: &bottles, Balance: &balance}
}

// BottlesOnly returns an effect that leaves the balance untouched.
func BottlesOnly(bottles int) Effect {
	return Effect{Bottles: &bottles}
}

// IsAbsent reports whether neither delta is present.
func (e Effect) IsAbsent() bool {
	return e.Bottles == nil && e.Balance == nil
}

// IsZero reports whether applying the effect changes nothing.
func (e Effect) IsZero() bool {
	return e.BottlesDelta() == 0 && e.BalanceDelta().IsZero()
}

func (e Effect) BottlesDelta() int {
	if e.Bottles == nil {
		return 0
	}
	return *e.Bottles
}

func (e Effect) BalanceDelta() kernel.Money {
	if e.Balance == nil {
		return kernel.ZeroMoney
	}
	return *e.Balance
}

// Add sums two effects. A field of the result is present when it is present in
// either operand.
func (e Effect) Add(o Effect) Effect {
	var out Effect
	if e.Bottles != nil || o.Bottles != nil {
		b := e.BottlesDelta() + o.BottlesDelta()
		out.Bottles = &b
	}
	if e.Balance != nil || o.Balance != nil {
		m := e.BalanceDelta().Add(o.BalanceDelta())
		out.Balance = &m
	}
	return out
}

// Neg returns the exact inverse, keeping field presence.
func (e Effect) Neg() Effect {
	var out Effect
	if e.Bottles != nil {
		b := -*e.Bottles
		out.Bottles = &b
	}
	if e.Balance != nil {
		m := e.Balance.Neg()
		out.Balance = &m
	}
	return out
}

func (e Effect) Sub(o Effect) Effect {
	return e.Add(o.Neg())
}

// IsEqual compares values and field presence.
func (e Effect) IsEqual(o Effect) bool {
	if (e.Bottles == nil) != (o.Bottles == nil) || (e.Balance == nil) != (o.Balance == nil) {
		return false
	}
	return e.BottlesDelta() == o.BottlesDelta() && e.BalanceDelta().IsEqual(o.BalanceDelta())
}

func (e Effect) clone() Effect {
	var out Effect
	if e.Bottles != nil {
		b := *e.Bottles
		out.Bottles = &b
	}
	if e.Balance != nil {
		m := *e.Balance
		out.Balance = &m
	}
	return out
}

func (e Effect) String() string {
	bottles, balance := "-", "-"
	if e.Bottles != nil {
		bottles = fmt.Sprintf("%+d", *e.Bottles)
	}
	if e.Balance != nil {
		balance = e.Balance.String()
	}
	return fmt.Sprintf("{bottles: %s, balance: %s}", bottles, balance)
}
