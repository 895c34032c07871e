package http

import (
	"fmt"
	"time"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func newCreateOrderCommand(id kernel.ID, body servers.NewOrder) (commands.CreateOrderCommand, error) {
	customerID, err := parseOptionalID(body.CustomerId)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	addressID, err := parseOptionalID(body.AddressId)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	lines := make([]commands.OrderLine, 0, len(body.Items))
	for i, item := range body.Items {
		productID, err := kernel.ParseID(item.ProductId)
		if err != nil {
			return commands.CreateOrderCommand{}, fmt.Errorf("item %d: %w", i, err)
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	var window string
	if body.DeliveryWindow != nil {
		window = *body.DeliveryWindow
	}
	var date *time.Time
	if body.RequestedDeliveryDate != nil {
		date = &body.RequestedDeliveryDate.Time
	}
	return commands.NewCreateOrderCommand(id, customerID, addressID, date, window, lines)
}

func parseOptionalID(s *string) (*kernel.ID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := kernel.ParseID(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toPayment(p *servers.Payment) (*order.Payment, error) {
	if p == nil {
		return nil, nil
	}
	amount, err := kernel.ParseMoney(p.Amount)
	if err != nil {
		return nil, err
	}
	payment, err := order.NewPayment(amount, order.PaymentMethod(p.Method))
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func optionalID(id *kernel.ID) *servers.Id {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toOrder(v queries.OrderView) servers.Order {
	out := servers.Order{
		Id:                 v.ID.String(),
		CustomerId:         optionalID(v.CustomerID),
		DriverId:           optionalID(v.DriverID),
		AddressId:          optionalID(v.AddressID),
		Status:             servers.OrderStatus(v.Status),
		Deleted:            v.Deleted,
		DeliveryWindow:     optionalString(v.DeliveryWindow),
		BottlesDelivered:   v.BottlesDelivered,
		BottlesReturned:    v.BottlesReturned,
		Items:              make([]servers.OrderItem, 0, len(v.Items)),
		TotalAmount:        v.TotalAmount.String(),
		IsPaid:             v.IsPaid,
		CancellationReason: optionalString(v.CancellationReason),
		CreatedAt:          v.CreatedAt,
		DeliveredAt:        v.DeliveredAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if v.RequestedDeliveryDate != nil {
		out.RequestedDeliveryDate = &openapi_types.Date{Time: *v.RequestedDeliveryDate}
	}
	if v.Payment != nil {
		out.Payment = &servers.Payment{
			Amount: v.Payment.Amount.String(),
			Method: servers.PaymentMethod(v.Payment.Method),
		}
	}
	for _, item := range v.Items {
		out.Items = append(out.Items, servers.OrderItem{
			Id:        item.ID.String(),
			ProductId: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}
	return out
}

func toEntry(v queries.EntryView) servers.Entry {
	out := servers.Entry{
		Id:           v.ID,
		OrderId:      v.OrderID.String(),
		CustomerId:   optionalID(v.CustomerID),
		Action:       servers.EntryAction(v.Action),
		OldStatus:    optionalString(v.OldStatus),
		NewStatus:    optionalString(v.NewStatus),
		BottlesDelta: v.BottlesDelta,
		Reverses:     v.Reverses,
		CreatedAt:    v.CreatedAt,
	}
	if v.BalanceDelta != nil {
		balance := v.BalanceDelta.String()
		out.BalanceDelta = &balance
	}
	if len(v.Details) > 0 {
		details := v.Details
		out.Details = &details
	}
	if operationID, err := kernel.UUIDFromString(v.OperationID); err == nil {
		out.OperationId = operationID.Bytes()
	}
	return out
}

func toEntries(views []queries.EntryView) []servers.Entry {
	out := make([]servers.Entry, 0, len(views))
	for _, v := range views {
		out = append(out, toEntry(v))
	}
	return out
}

func toCustomerLedger(v queries.CustomerLedgerView) servers.CustomerLedger {
	return servers.CustomerLedger{
		CustomerId:     v.CustomerID.String(),
		FullName:       v.FullName,
		AccountStatus:  servers.AccountStatus(v.AccountStatus),
		BottlesInHand:  v.BottlesInHand,
		AccountBalance: v.AccountBalance.String(),
		Entries:        toEntries(v.Entries),
	}
}

func toReconciliation(r services.Reconciliation) servers.Reconciliation {
	return servers.Reconciliation{
		CustomerId:     r.CustomerID.String(),
		Entries:        r.Entries,
		StoredBottles:  r.StoredBottles,
		StoredBalance:  r.StoredBalance.String(),
		DerivedBottles: r.DerivedBottles,
		DerivedBalance: r.DerivedBalance.String(),
		BottlesDrift:   r.BottlesDrift,
		BalanceDrift:   r.BalanceDrift.String(),
		Consistent:     !r.HasDrift(),
	}
}
