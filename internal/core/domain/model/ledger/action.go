package ledger

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Action tags what produced a ledger entry.
type Action int

const (
	UnknownAction Action = iota
	// Delivered is posted when a driver completes a delivery.
	Delivered
	// DeliveryReverted negates the effect of an open delivery.
	DeliveryReverted
	// Correction carries only the difference between the posted and the revised effect.
	Correction
	// SoftDeleted negates the remaining effect of an order that is being deleted.
	SoftDeleted
)

var actionNames = map[Action]string{
	Delivered:        "DELIVERED",
	DeliveryReverted: "DELIVERY_REVERTED",
	Correction:       "CORRECTION",
	SoftDeleted:      "SOFT_DELETED",
}

func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a ledger action", s))
}

func (a Action) Validate() error {
	if _, ok := actionNames[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a ledger action", a))
	}
	return nil
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsReversal reports whether entries with this action close a delivery.
func (a Action) IsReversal() bool {
	return a == DeliveryReverted || a == SoftDeleted
}
