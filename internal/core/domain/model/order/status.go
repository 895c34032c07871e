package order

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// The lifecycle is PENDING → ASSIGNED → OUT_FOR_DELIVERY → DELIVERED, with
// CANCELLED reachable from the first three. DELIVERED and CANCELLED are terminal
// for forward events; a delivery can still be reverted back to ASSIGNED.
// Soft deletion is tracked on the Order, not here.
type Status int

const (
	// Unknown is the zero value and is never a valid persisted status.
	Unknown Status = iota
	Pending
	Assigned
	OutForDelivery
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:        "pending",
	Assigned:       "assigned",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// Event is a request to move an order through its lifecycle.
type Event int

const (
	EventAssign Event = iota + 1
	EventDispatch
	EventDeliver
	EventCancel
	EventRevert
	EventCorrect
	EventEditItems
)

var eventNames = map[Event]string{
	EventAssign:    "assign",
	EventDispatch:  "dispatch",
	EventDeliver:   "deliver",
	EventCancel:    "cancel",
	EventRevert:    "revert",
	EventCorrect:   "correct",
	EventEditItems: "edit items of",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// transitions is the complete lifecycle table. A (status, event) pair that is
// not listed is an illegal transition. Correct and EditItems keep the status.
var transitions = map[Status]map[Event]Status{
	Pending: {
		EventAssign:    Assigned,
		EventCancel:    Cancelled,
		EventEditItems: Pending,
	},
	Assigned: {
		EventDispatch: OutForDelivery,
		EventDeliver:  Delivered,
		EventCancel:   Cancelled,
	},
	OutForDelivery: {
		EventDeliver: Delivered,
		EventCancel:  Cancelled,
	},
	Delivered: {
		EventRevert:  Assigned,
		EventCorrect: Delivered,
	},
	Cancelled: {},
}

// ParseStatus maps the stored text form back to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no forward event applies to s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the status reached by applying e to s, or an
// *errs.InvalidTransitionError when the table has no such edge.
func (s Status) Next(e Event) (Status, error) {
	next, ok := transitions[s][e]
	if !ok {
		return s, errs.NewInvalidTransitionError(e.String(), s.String())
	}
	return next, nil
}

// Can reports whether e is legal from s.
func (s Status) Can(e Event) bool {
	_, ok := transitions[s][e]
	return ok
}
