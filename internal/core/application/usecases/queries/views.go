package queries

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
)

// EntryView is the read model of one ledger entry. Absent deltas stay nil.
type EntryView struct {
	ID           int64
	OrderID      kernel.ID
	CustomerID   *kernel.ID
	Action       string
	OldStatus    string
	NewStatus    string
	BottlesDelta *int
	BalanceDelta *kernel.Money
	Reverses     *int64
	OperationID  string
	Details      map[string]string
	CreatedAt    time.Time
}

func newEntryView(e *ledger.Entry) EntryView {
	effect := e.Effect()
	return EntryView{
		ID:           e.ID(),
		OrderID:      e.OrderID(),
		CustomerID:   e.CustomerID(),
		Action:       e.Action().String(),
		OldStatus:    statusName(e.OldStatus()),
		NewStatus:    statusName(e.NewStatus()),
		BottlesDelta: effect.Bottles,
		BalanceDelta: effect.Balance,
		Reverses:     e.Reverses(),
		OperationID:  e.OperationID().String(),
		Details:      e.Details(),
		CreatedAt:    e.CreatedAt(),
	}
}

func statusName(s order.Status) string {
	if s == order.Unknown {
		return ""
	}
	return s.String()
}

// ItemView is one order line with its snapshotted price.
type ItemView struct {
	ID        kernel.ID
	ProductID kernel.ID
	Quantity  int
	UnitPrice kernel.Money
}

// PaymentView is the payment collected at the door.
type PaymentView struct {
	Amount kernel.Money
	Method string
}

// OrderView is the read model of an order.
type OrderView struct {
	ID                    kernel.ID
	CustomerID            *kernel.ID
	DriverID              *kernel.ID
	AddressID             *kernel.ID
	Status                string
	Deleted               bool
	RequestedDeliveryDate *time.Time
	DeliveryWindow        string
	BottlesDelivered      int
	BottlesReturned       int
	Items                 []ItemView
	TotalAmount           kernel.Money
	Payment               *PaymentView
	IsPaid                bool
	CancellationReason    string
	CreatedAt             time.Time
	DeliveredAt           *time.Time
	UpdatedAt             *time.Time
}

func newOrderView(o *order.Order) OrderView {
	s := o.Snapshot()
	v := OrderView{
		ID:                    s.ID,
		CustomerID:            s.CustomerID,
		DriverID:              s.DriverID,
		AddressID:             s.AddressID,
		Status:                s.Status.String(),
		Deleted:               s.Deleted,
		RequestedDeliveryDate: s.RequestedDeliveryDate,
		DeliveryWindow:        s.DeliveryWindow,
		BottlesDelivered:      s.BottlesDelivered,
		BottlesReturned:       s.BottlesReturned,
		Items:                 make([]ItemView, 0, len(s.Items)),
		TotalAmount:           s.TotalAmount,
		IsPaid:                s.IsPaid,
		CancellationReason:    s.CancellationReason,
		CreatedAt:             s.CreatedAt,
		DeliveredAt:           s.DeliveredAt,
		UpdatedAt:             s.UpdatedAt,
	}
	for _, item := range s.Items {
		v.Items = append(v.Items, ItemView{
			ID:        item.ID(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}
	if s.Payment != nil {
		v.Payment = &PaymentView{Amount: s.Payment.Amount(), Method: string(s.Payment.Method())}
	}
	return v
}
