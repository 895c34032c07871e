package errs

import "fmt"

// InvalidTransitionError reports an order state change that the lifecycle does
// not allow. Nothing is mutated when it is returned.
type InvalidTransitionError struct {
	Action  string
	From    string
	Deleted bool
	Reason  string
}

func NewInvalidTransitionError(action, from string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from}
}

func NewInvalidTransitionErrorWithReason(action, from, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s order in status %s", ErrInvalidTransition, e.Action, e.From)
	if e.Deleted {
		msg += " (order is deleted)"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// QuantityIsInvalidError reports a negative bottle count or payment amount,
// or one above Max when a cap applies.
type QuantityIsInvalidError struct {
	ParamName string
	Value     any
	Max       any
}

func NewQuantityIsInvalidError(paramName string, value any) *QuantityIsInvalidError {
	return &QuantityIsInvalidError{ParamName: paramName, Value: value}
}

func NewQuantityIsTooLargeError(paramName string, value, maxValue any) *QuantityIsInvalidError {
	return &QuantityIsInvalidError{ParamName: paramName, Value: value, Max: maxValue}
}

func (e *QuantityIsInvalidError) Error() string {
	if e.Max != nil {
		return fmt.Sprintf("%s: %s must not exceed %s, got %s",
			ErrQuantityIsInvalid, e.ParamName, sanitize(e.Max), sanitize(e.Value))
	}
	return fmt.Sprintf("%s: %s must not be negative, got %s", ErrQuantityIsInvalid, e.ParamName, sanitize(e.Value))
}

func (e *QuantityIsInvalidError) Unwrap() error {
	return ErrQuantityIsInvalid
}

// ConsistencyDriftError carries the difference between a stored aggregate
// counter and the value derived from the ledger. It is reported, never fixed.
type ConsistencyDriftError struct {
	Subject      string
	BottlesDrift int
	BalanceDrift string
}

func NewConsistencyDriftError(subject string, bottlesDrift int, balanceDrift string) *ConsistencyDriftError {
	return &ConsistencyDriftError{
		Subject:      subject,
		BottlesDrift: bottlesDrift,
		BalanceDrift: balanceDrift,
	}
}

func (e *ConsistencyDriftError) Error() string {
	return fmt.Sprintf("%s: %s differs from ledger by %d bottles and %s balance",
		ErrConsistencyDrift, e.Subject, e.BottlesDrift, e.BalanceDrift)
}

func (e *ConsistencyDriftError) Unwrap() error {
	return ErrConsistencyDrift
}
