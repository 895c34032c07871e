package order

import (
	"errors"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

const maxDeliveryWindowLen = 50

var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrItemsAreRequired is returned when an order is created or edited without lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Details are the logistics attributes given when an order is placed.
// CustomerID is nil for walk-in orders.
type Details struct {
	CustomerID            *kernel.ID
	AddressID             *kernel.ID
	RequestedDeliveryDate *time.Time
	DeliveryWindow        string
}

// Order is one delivery and the aggregate root of its items.
//
// The state of an order is the pair {status, deleted}. Every mutating method
// consults the lifecycle table in status.go and fails with an
// *errs.InvalidTransitionError, leaving the order untouched, when the event is
// not legal from the current status or the order is deleted.
//
// The bottle and payment fields always describe the effect currently posted to
// the ledger for this order: they are set by Deliver and Correct and cleared by
// Revert.
type Order struct {
	id                    kernel.ID
	customerID            *kernel.ID
	driverID              *kernel.ID
	addressID             *kernel.ID
	status                Status
	deleted               bool
	requestedDeliveryDate *time.Time
	deliveryWindow        string
	bottlesDelivered      int
	bottlesReturned       int
	items                 []*Item
	totalAmount           kernel.Money
	payment               *Payment
	isPaid                bool
	cancellationReason    string
	createdAt             time.Time
	deliveredAt           *time.Time
	updatedAt             *time.Time
	guard                 guard.ConstructorGuard
}

// Snapshot is the full persisted state of an order. Repositories read it with
// Order.Snapshot and rebuild aggregates with RestoreOrder.
type Snapshot struct {
	ID                    kernel.ID
	CustomerID            *kernel.ID
	DriverID              *kernel.ID
	AddressID             *kernel.ID
	Status                Status
	Deleted               bool
	RequestedDeliveryDate *time.Time
	DeliveryWindow        string
	BottlesDelivered      int
	BottlesReturned       int
	Items                 []*Item
	TotalAmount           kernel.Money
	Payment               *Payment
	IsPaid                bool
	CancellationReason    string
	CreatedAt             time.Time
	DeliveredAt           *time.Time
	UpdatedAt             *time.Time
}

// NewOrder places a PENDING order. The total amount is computed from the items.
func NewOrder(id kernel.ID, details Details, items []*Item) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is kept as is
// so that historic rows priced under other rules still load.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		driverID:           s.DriverID,
		deleted:            s.Deleted,
		bottlesDelivered:   s.BottlesDelivered,
		bottlesReturned:    s.BottlesReturned,
		items:              slices.Clone(s.Items),
		totalAmount:        s.TotalAmount,
		payment:            s.Payment,
		isPaid:             s.IsPaid,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		deliveredAt:        s.DeliveredAt,
		updatedAt:          s.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setDetails(Details{
			CustomerID:            s.CustomerID,
			AddressID:             s.AddressID,
			RequestedDeliveryDate: s.RequestedDeliveryDate,
			DeliveryWindow:        s.DeliveryWindow,
		}),
		s.Status.Validate(),
		ValidateBottles(s.BottlesDelivered, s.BottlesReturned),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.ID              { return o.id }
func (o *Order) CustomerID() *kernel.ID     { return o.customerID }
func (o *Order) DriverID() *kernel.ID       { return o.driverID }
func (o *Order) AddressID() *kernel.ID      { return o.addressID }
func (o *Order) Status() Status             { return o.status }
func (o *Order) IsDeleted() bool            { return o.deleted }
func (o *Order) DeliveryWindow() string     { return o.deliveryWindow }
func (o *Order) BottlesDelivered() int      { return o.bottlesDelivered }
func (o *Order) BottlesReturned() int       { return o.bottlesReturned }
func (o *Order) Items() []*Item             { return slices.Clone(o.items) }
func (o *Order) TotalAmount() kernel.Money  { return o.totalAmount }
func (o *Order) Payment() *Payment          { return o.payment }
func (o *Order) IsPaid() bool               { return o.isPaid }
func (o *Order) CancellationReason() string { return o.cancellationReason }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) DeliveredAt() *time.Time    { return o.deliveredAt }
func (o *Order) UpdatedAt() *time.Time      { return o.updatedAt }

func (o *Order) RequestedDeliveryDate() *time.Time {
	return o.requestedDeliveryDate
}

// BottlesDelta is the signed bottle movement of the current delivery fields.
func (o *Order) BottlesDelta() int {
	return o.bottlesDelivered - o.bottlesReturned
}

// CollectedAmount is the payment posted for the current delivery fields, zero
// when nothing was collected.
func (o *Order) CollectedAmount() kernel.Money {
	if o.payment == nil {
		return kernel.ZeroMoney
	}
	return o.payment.Amount()
}

func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                    o.id,
		CustomerID:            o.customerID,
		DriverID:              o.driverID,
		AddressID:             o.addressID,
		Status:                o.status,
		Deleted:               o.deleted,
		RequestedDeliveryDate: o.requestedDeliveryDate,
		DeliveryWindow:        o.deliveryWindow,
		BottlesDelivered:      o.bottlesDelivered,
		BottlesReturned:       o.bottlesReturned,
		Items:                 slices.Clone(o.items),
		TotalAmount:           o.totalAmount,
		Payment:               o.payment,
		IsPaid:                o.isPaid,
		CancellationReason:    o.cancellationReason,
		CreatedAt:             o.createdAt,
		DeliveredAt:           o.deliveredAt,
		UpdatedAt:             o.updatedAt,
	}
}

// Assign hands a PENDING order to a driver.
func (o *Order) Assign(driverID kernel.ID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	next, err := o.next(EventAssign)
	if err != nil {
		return err
	}

	o.status = next
	o.driverID = &driverID
	o.touch()
	return nil
}

// Dispatch marks an ASSIGNED order as loaded and on its way.
func (o *Order) Dispatch() error {
	next, err := o.next(EventDispatch)
	if err != nil {
		return err
	}

	o.status = next
	o.touch()
	return nil
}

// Deliver records the bottle movement and optional payment collected at the
// door. Counts are checked before the transition so malformed input is reported
// as such even on an order that cannot be delivered.
func (o *Order) Deliver(bottlesDelivered, bottlesReturned int, payment *Payment) error {
	if err := ValidateBottles(bottlesDelivered, bottlesReturned); err != nil {
		return err
	}
	next, err := o.next(EventDeliver)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = next
	o.setDelivery(bottlesDelivered, bottlesReturned, payment)
	o.deliveredAt = &now
	o.touch()
	return nil
}

// Cancel stops an order that has not been delivered. hasOpenDelivery reports
// whether the ledger still holds an un-reversed delivery for the order; such an
// order is never cancelled.
func (o *Order) Cancel(reason string, hasOpenDelivery bool) error {
	next, err := o.next(EventCancel)
	if err != nil {
		return err
	}
	if hasOpenDelivery {
		return errs.NewInvalidTransitionErrorWithReason(
			EventCancel.String(), o.status.String(), "order has an un-reversed delivery in the ledger",
		)
	}

	o.status = next
	o.cancellationReason = reason
	o.touch()
	return nil
}

// Revert returns a DELIVERED order to ASSIGNED and clears its delivery fields.
// The matching compensating ledger entry is produced by the correction service.
func (o *Order) Revert() error {
	next, err := o.next(EventRevert)
	if err != nil {
		return err
	}

	o.status = next
	o.setDelivery(0, 0, nil)
	o.deliveredAt = nil
	o.touch()
	return nil
}

// Correct replaces the delivery fields of a DELIVERED order with revised values.
func (o *Order) Correct(bottlesDelivered, bottlesReturned int, payment *Payment) error {
	if err := ValidateBottles(bottlesDelivered, bottlesReturned); err != nil {
		return err
	}
	if _, err := o.next(EventCorrect); err != nil {
		return err
	}

	o.setDelivery(bottlesDelivered, bottlesReturned, payment)
	o.touch()
	return nil
}

// MarkDeleted soft-deletes the order. The status is kept; deleted orders reject
// every further event.
func (o *Order) MarkDeleted() error {
	if o.deleted {
		return &errs.InvalidTransitionError{Action: "delete", From: o.status.String(), Deleted: true}
	}

	o.deleted = true
	o.touch()
	return nil
}

// ReplaceItems swaps the order lines of a PENDING order and recomputes the total.
func (o *Order) ReplaceItems(items []*Item) error {
	if _, err := o.next(EventEditItems); err != nil {
		return err
	}
	if err := o.setItems(items); err != nil {
		return err
	}

	o.touch()
	return nil
}

// Check reports whether e may be applied to the order now, without applying it.
func (o *Order) Check(e Event) error {
	_, err := o.next(e)
	return err
}

func (o *Order) next(e Event) (Status, error) {
	if o.deleted {
		return o.status, &errs.InvalidTransitionError{Action: e.String(), From: o.status.String(), Deleted: true}
	}
	return o.status.Next(e)
}

func (o *Order) setDelivery(bottlesDelivered, bottlesReturned int, payment *Payment) {
	o.bottlesDelivered = bottlesDelivered
	o.bottlesReturned = bottlesReturned
	o.payment = payment
	o.isPaid = payment != nil
}

func (o *Order) touch() {
	now := time.Now().UTC()
	o.updatedAt = &now
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDetails(d Details) error {
	for name, ref := range map[string]*kernel.ID{"customer id": d.CustomerID, "address id": d.AddressID} {
		if ref != nil {
			if err := ref.Validate(); err != nil {
				return errs.NewValueIsInvalidErrorWithCause(name, err)
			}
		}
	}
	if utf8.RuneCountInString(d.DeliveryWindow) > maxDeliveryWindowLen {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery window",
			fmt.Errorf("longer than %d characters", maxDeliveryWindowLen),
		)
	}

	o.customerID = d.CustomerID
	o.addressID = d.AddressID
	o.requestedDeliveryDate = d.RequestedDeliveryDate
	o.deliveryWindow = d.DeliveryWindow
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	total := kernel.ZeroMoney
	for _, it := range items {
		if it == nil {
			return errs.NewValueIsRequiredError("item")
		}
		total = total.Add(it.Total())
	}

	o.items = slices.Clone(items)
	o.totalAmount = total
	return nil
}

// ValidateBottles rejects negative bottle counts with an *errs.QuantityIsInvalidError.
func ValidateBottles(delivered, returned int) error {
	if delivered < 0 {
		return errs.NewQuantityIsInvalidError("bottles delivered", delivered)
	}
	if returned < 0 {
		return errs.NewQuantityIsInvalidError("bottles returned", returned)
	}
	return nil
}
