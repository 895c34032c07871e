package services

import (
	"strconv"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
)

// OrderLifecycle runs the forward transitions that have ledger consequences.
// It mutates the order and returns the entries to append; persisting both is
// the caller's job.
type OrderLifecycle struct{}

func NewOrderLifecycle() OrderLifecycle {
	return OrderLifecycle{}
}

// Deliver moves the order to DELIVERED and builds the DELIVERED entry. The
// bottle delta is always present; the balance delta only when a payment was
// collected.
func (OrderLifecycle) Deliver(
	o *order.Order,
	bottlesDelivered, bottlesReturned int,
	payment *order.Payment,
	operationID kernel.UUID,
) (*ledger.Entry, error) {
	from := o.Status()
	if err := o.Deliver(bottlesDelivered, bottlesReturned, payment); err != nil {
		return nil, err
	}

	effect := ledger.BottlesOnly(o.BottlesDelta())
	details := deliveryDetails(o)
	if payment != nil {
		effect = ledger.NewEffect(o.BottlesDelta(), payment.Amount())
	}

	return ledger.NewEntry(ledger.Posting{
		OrderID:     o.ID(),
		CustomerID:  o.CustomerID(),
		Action:      ledger.Delivered,
		OldStatus:   from,
		NewStatus:   o.Status(),
		Effect:      effect,
		OperationID: operationID,
		Details:     details,
	})
}

// Cancel cancels an order that has no open delivery in history. history is the
// order's ledger in append order.
func (OrderLifecycle) Cancel(o *order.Order, reason string, history []*ledger.Entry) error {
	_, _, open := ledger.OpenDelivery(history)
	return o.Cancel(reason, open)
}

func deliveryDetails(o *order.Order) ledger.Details {
	d := ledger.Details{
		"bottles_delivered": strconv.Itoa(o.BottlesDelivered()),
		"bottles_returned":  strconv.Itoa(o.BottlesReturned()),
	}
	if p := o.Payment(); p != nil {
		d["payment_method"] = string(p.Method())
		d["payment_amount"] = p.Amount().String()
	}
	if drv := o.DriverID(); drv != nil {
		d["driver_id"] = drv.String()
	}
	return d
}
