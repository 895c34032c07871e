package services

import (
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
)

// CorrectionHandler undoes or amends already posted deliveries by building
// compensating entries. History is never edited.
//
// Each method takes the order's ledger history in append order and validates
// the whole request before mutating the order, so an error leaves the order as
// it was.
//
// Business rules:
//   - a reversal negates the net effect of the open delivery, corrections included
//   - a correction posts only the difference to the currently posted effect
//   - a soft delete first reverses any open delivery, then flags the order
type CorrectionHandler struct{}

func NewCorrectionHandler() CorrectionHandler {
	return CorrectionHandler{}
}

// RevertDelivery returns a DELIVERED order to ASSIGNED and builds the
// DELIVERY_REVERTED entry referencing the delivery it closes.
func (CorrectionHandler) RevertDelivery(
	o *order.Order,
	reason string,
	history []*ledger.Entry,
	operationID kernel.UUID,
) (*ledger.Entry, error) {
	if err := o.Check(order.EventRevert); err != nil {
		return nil, err
	}
	delivery, net, ok := ledger.OpenDelivery(history)
	if !ok {
		return nil, errs.NewInvalidTransitionErrorWithReason(
			order.EventRevert.String(), o.Status().String(), "delivery is already reverted",
		)
	}

	deliveryID := delivery.ID()
	entry, err := ledger.NewEntry(ledger.Posting{
		OrderID:     o.ID(),
		CustomerID:  o.CustomerID(),
		Action:      ledger.DeliveryReverted,
		OldStatus:   o.Status(),
		NewStatus:   order.Assigned,
		Effect:      net.Neg(),
		Reverses:    &deliveryID,
		OperationID: operationID,
		Details:     reasonDetails(reason),
	})
	if err != nil {
		return nil, err
	}

	if err := o.Revert(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Correct replaces the delivery figures of a DELIVERED order and builds a
// CORRECTION entry carrying only the difference. Both deltas are always
// present, so a correction to the already posted values is an explicit zero
// entry.
func (CorrectionHandler) Correct(
	o *order.Order,
	bottlesDelivered, bottlesReturned int,
	payment *order.Payment,
	reason string,
	history []*ledger.Entry,
	operationID kernel.UUID,
) (*ledger.Entry, error) {
	if err := order.ValidateBottles(bottlesDelivered, bottlesReturned); err != nil {
		return nil, err
	}
	if err := o.Check(order.EventCorrect); err != nil {
		return nil, err
	}
	_, posted, ok := ledger.OpenDelivery(history)
	if !ok {
		return nil, errs.NewInvalidTransitionErrorWithReason(
			order.EventCorrect.String(), o.Status().String(), "order has no open delivery in the ledger",
		)
	}

	collected := kernel.ZeroMoney
	if payment != nil {
		collected = payment.Amount()
	}
	intended := ledger.NewEffect(bottlesDelivered-bottlesReturned, collected)
	diff := intended.Sub(posted)

	details := reasonDetails(reason)
	details["previous"] = posted.String()
	details["intended"] = intended.String()

	entry, err := ledger.NewEntry(ledger.Posting{
		OrderID:     o.ID(),
		CustomerID:  o.CustomerID(),
		Action:      ledger.Correction,
		OldStatus:   o.Status(),
		NewStatus:   o.Status(),
		Effect:      ledger.NewEffect(diff.BottlesDelta(), diff.BalanceDelta()),
		OperationID: operationID,
		Details:     details,
	})
	if err != nil {
		return nil, err
	}

	if err := o.Correct(bottlesDelivered, bottlesReturned, payment); err != nil {
		return nil, err
	}
	return entry, nil
}

// SoftDelete flags the order as deleted. When the order still has an open
// delivery, a SOFT_DELETED entry negating its net effect is returned and must be
// appended in the same transaction; otherwise the entry is nil.
func (CorrectionHandler) SoftDelete(
	o *order.Order,
	reason string,
	history []*ledger.Entry,
	operationID kernel.UUID,
) (*ledger.Entry, error) {
	if o.IsDeleted() {
		return nil, o.MarkDeleted()
	}

	var entry *ledger.Entry
	if delivery, net, ok := ledger.OpenDelivery(history); ok {
		deliveryID := delivery.ID()
		var err error
		entry, err = ledger.NewEntry(ledger.Posting{
			OrderID:     o.ID(),
			CustomerID:  o.CustomerID(),
			Action:      ledger.SoftDeleted,
			OldStatus:   o.Status(),
			NewStatus:   o.Status(),
			Effect:      net.Neg(),
			Reverses:    &deliveryID,
			OperationID: operationID,
			Details:     reasonDetails(reason),
		})
		if err != nil {
			return nil, err
		}
	}

	if err := o.MarkDeleted(); err != nil {
		return nil, err
	}
	return entry, nil
}

func reasonDetails(reason string) ledger.Details {
	d := ledger.Details{}
	if reason != "" {
		d["reason"] = reason
	}
	return d
}
