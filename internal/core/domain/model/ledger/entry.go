package ledger

import (
	"errors"
	"maps"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
)

// ErrEffectIsAbsent is returned for an entry that carries neither a bottle nor a
// balance delta.
var ErrEffectIsAbsent = errs.NewValueIsInvalidError("entry has neither bottles delta nor balance delta")

// Details is free-form structured context stored with an entry, such as the
// reason a correction was made.
type Details map[string]string

// Posting is the caller-supplied content of a new entry.
type Posting struct {
	OrderID     kernel.ID
	CustomerID  *kernel.ID
	Action      Action
	OldStatus   order.Status
	NewStatus   order.Status
	Effect      Effect
	Reverses    *int64
	OperationID kernel.UUID
	Details     Details
}

// Entry is an immutable ledger fact. The id is the insertion sequence number
// assigned by the store; it is zero until the entry is appended.
type Entry struct {
	id          int64
	orderID     kernel.ID
	customerID  *kernel.ID
	action      Action
	oldStatus   order.Status
	newStatus   order.Status
	effect      Effect
	reverses    *int64
	operationID kernel.UUID
	details     Details
	createdAt   time.Time
}

// NewEntry validates a posting. order.Unknown stands for an absent status.
func NewEntry(p Posting) (*Entry, error) {
	var customerErr error
	if p.CustomerID != nil {
		customerErr = p.CustomerID.Validate()
	}

	if err := errors.Join(
		p.OrderID.Validate(),
		customerErr,
		p.Action.Validate(),
		p.OperationID.Validate(),
		validateStatus(p.OldStatus),
		validateStatus(p.NewStatus),
	); err != nil {
		return nil, err
	}
	if p.Effect.IsAbsent() {
		return nil, ErrEffectIsAbsent
	}

	e := &Entry{
		orderID:     p.OrderID,
		customerID:  p.CustomerID,
		action:      p.Action,
		oldStatus:   p.OldStatus,
		newStatus:   p.NewStatus,
		effect:      p.Effect.clone(),
		operationID: p.OperationID,
		details:     maps.Clone(p.Details),
	}
	if p.Reverses != nil {
		r := *p.Reverses
		e.reverses = &r
	}
	return e, nil
}

// RestoreEntry rebuilds an appended entry read from the store.
func RestoreEntry(id int64, createdAt time.Time, p Posting) (*Entry, error) {
	e, err := NewEntry(p)
	if err != nil {
		return nil, err
	}
	e.id = id
	e.createdAt = createdAt
	return e, nil
}

func (e *Entry) ID() int64                { return e.id }
func (e *Entry) OrderID() kernel.ID       { return e.orderID }
func (e *Entry) CustomerID() *kernel.ID   { return e.customerID }
func (e *Entry) Action() Action           { return e.action }
func (e *Entry) OldStatus() order.Status  { return e.oldStatus }
func (e *Entry) NewStatus() order.Status  { return e.newStatus }
func (e *Entry) Effect() Effect           { return e.effect.clone() }
func (e *Entry) OperationID() kernel.UUID { return e.operationID }
func (e *Entry) Details() Details         { return maps.Clone(e.details) }
func (e *Entry) CreatedAt() time.Time     { return e.createdAt }

// Reverses is the id of the delivery entry this entry closes, if any.
func (e *Entry) Reverses() *int64 {
	if e.reverses == nil {
		return nil
	}
	r := *e.reverses
	return &r
}

// Posting returns the content of the entry, for persistence.
func (e *Entry) Posting() Posting {
	return Posting{
		OrderID:     e.orderID,
		CustomerID:  e.customerID,
		Action:      e.action,
		OldStatus:   e.oldStatus,
		NewStatus:   e.newStatus,
		Effect:      e.effect.clone(),
		Reverses:    e.Reverses(),
		OperationID: e.operationID,
		Details:     maps.Clone(e.details),
	}
}

func validateStatus(s order.Status) error {
	if s == order.Unknown {
		return nil
	}
	return s.Validate()
}
