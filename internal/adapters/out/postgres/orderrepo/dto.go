// Package orderrepo persists order aggregates and the items they own.
package orderrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Items live in their own table and are written by
// the repository, not through GORM associations.
type OrderDTO struct {
	ID                    int64  `gorm:"primaryKey;autoIncrement:false"`
	CustomerID            *int64 `gorm:"index"`
	DriverID              *int64 `gorm:"index"`
	AddressID             *int64
	Status                string              `gorm:"size:20;not null;index"`
	IsDeleted             bool                `gorm:"not null;default:false"`
	RequestedDeliveryDate *time.Time          `gorm:"type:date"`
	DeliveryWindow        *string             `gorm:"size:50"`
	BottlesDelivered      int                 `gorm:"not null;default:0;check:chk_bottles_positive,bottles_delivered >= 0 AND bottles_returned >= 0"`
	BottlesReturned       int                 `gorm:"not null;default:0"`
	TotalAmount           decimal.Decimal     `gorm:"type:numeric(10,2);not null;check:chk_total_positive,total_amount >= 0"`
	PaymentMethod         *string             `gorm:"size:50"`
	PaidAmount            decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	IsPaid                bool                `gorm:"not null;default:false"`
	CancellationReason    *string
	DeliveredAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             *time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order_items row. The unit price is the snapshot taken at
// order creation.
type OrderItemDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement:false"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null"`
	Quantity  int             `gorm:"not null;check:chk_quantity_positive,quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;check:chk_unit_price_positive,unit_price >= 0"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) (OrderDTO, []OrderItemDTO) {
	s := o.Snapshot()

	dto := OrderDTO{
		ID:                    s.ID.Int64(),
		CustomerID:            int64Ptr(s.CustomerID),
		DriverID:              int64Ptr(s.DriverID),
		AddressID:             int64Ptr(s.AddressID),
		Status:                s.Status.String(),
		IsDeleted:             s.Deleted,
		RequestedDeliveryDate: s.RequestedDeliveryDate,
		DeliveryWindow:        stringPtr(s.DeliveryWindow),
		BottlesDelivered:      s.BottlesDelivered,
		BottlesReturned:       s.BottlesReturned,
		TotalAmount:           s.TotalAmount.Decimal(),
		IsPaid:                s.IsPaid,
		CancellationReason:    stringPtr(s.CancellationReason),
		DeliveredAt:           s.DeliveredAt,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	if s.Payment != nil {
		method := string(s.Payment.Method())
		dto.PaymentMethod = &method
		dto.PaidAmount = decimal.NewNullDecimal(s.Payment.Amount().Decimal())
	}

	items := make([]OrderItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, OrderItemDTO{
			ID:        it.ID().Int64(),
			OrderID:   dto.ID,
			ProductID: it.ProductID().Int64(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice().Decimal(),
		})
	}

	return dto, items
}

func toDomain(dto OrderDTO, itemDTOs []OrderItemDTO) (*order.Order, error) {
	id, err := kernel.IDFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, it := range itemDTOs {
		itemID, err := kernel.IDFrom(it.ID)
		if err != nil {
			return nil, err
		}
		productID, err := kernel.IDFrom(it.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.RestoreItem(itemID, productID, it.Quantity, kernel.NewMoney(it.UnitPrice))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var payment *order.Payment
	if dto.PaymentMethod != nil && dto.PaidAmount.Valid {
		p, err := order.NewPayment(kernel.NewMoney(dto.PaidAmount.Decimal), order.PaymentMethod(*dto.PaymentMethod))
		if err != nil {
			return nil, err
		}
		payment = &p
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    id,
		CustomerID:            idPtr(dto.CustomerID),
		DriverID:              idPtr(dto.DriverID),
		AddressID:             idPtr(dto.AddressID),
		Status:                status,
		Deleted:               dto.IsDeleted,
		RequestedDeliveryDate: dto.RequestedDeliveryDate,
		DeliveryWindow:        deref(dto.DeliveryWindow),
		BottlesDelivered:      dto.BottlesDelivered,
		BottlesReturned:       dto.BottlesReturned,
		Items:                 items,
		TotalAmount:           kernel.NewMoney(dto.TotalAmount),
		Payment:               payment,
		IsPaid:                dto.IsPaid,
		CancellationReason:    deref(dto.CancellationReason),
		CreatedAt:             dto.CreatedAt,
		DeliveredAt:           dto.DeliveredAt,
		UpdatedAt:             dto.UpdatedAt,
	})
}

func int64Ptr(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

func idPtr(v *int64) *kernel.ID {
	if v == nil {
		return nil
	}
	id, err := kernel.IDFrom(*v)
	if err != nil {
		return nil
	}
	return &id
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
