// Package ledgerrepo is the append-only store of ledger entries, kept in the
// order_audit_log table.
package ledgerrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// EntryDTO is one order_audit_log row. ID is the insertion sequence number and
// the tiebreak for entries created at the same instant.
type EntryDTO struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	OrderID      int64   `gorm:"not null;index:idx_audit_order_created,priority:1"`
	CustomerID   *int64  `gorm:"index:idx_audit_customer_created,priority:1"`
	Action       string  `gorm:"size:50;not null"`
	OldStatus    *string `gorm:"size:20"`
	NewStatus    *string `gorm:"size:20"`
	BottlesDelta *int
	BalanceDelta decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Reverses     *int64
	OperationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Details      datatypes.JSONType[ledger.Details]
	CreatedAt    time.Time `gorm:"not null;index:idx_audit_order_created,priority:2;index:idx_audit_customer_created,priority:2"`
}

func (EntryDTO) TableName() string {
	return "order_audit_log"
}

func fromDomain(e *ledger.Entry) EntryDTO {
	p := e.Posting()

	dto := EntryDTO{
		OrderID:      p.OrderID.Int64(),
		Action:       p.Action.String(),
		OldStatus:    statusPtr(p.OldStatus),
		NewStatus:    statusPtr(p.NewStatus),
		BottlesDelta: p.Effect.Bottles,
		Reverses:     p.Reverses,
		OperationID:  p.OperationID.Bytes(),
		Details:      datatypes.NewJSONType(p.Details),
	}
	if p.CustomerID != nil {
		v := p.CustomerID.Int64()
		dto.CustomerID = &v
	}
	if p.Effect.Balance != nil {
		dto.BalanceDelta = decimal.NewNullDecimal(p.Effect.Balance.Decimal())
	}
	return dto
}

func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	orderID, err := kernel.IDFrom(dto.OrderID)
	if err != nil {
		return nil, err
	}
	action, err := ledger.ParseAction(dto.Action)
	if err != nil {
		return nil, err
	}
	operationID, err := kernel.UUIDFromBytes(dto.OperationID[:])
	if err != nil {
		return nil, err
	}
	oldStatus, err := parseStatus(dto.OldStatus)
	if err != nil {
		return nil, err
	}
	newStatus, err := parseStatus(dto.NewStatus)
	if err != nil {
		return nil, err
	}

	p := ledger.Posting{
		OrderID:     orderID,
		Action:      action,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		Effect:      ledger.Effect{Bottles: dto.BottlesDelta},
		Reverses:    dto.Reverses,
		OperationID: operationID,
		Details:     dto.Details.Data(),
	}
	if dto.CustomerID != nil {
		customerID, err := kernel.IDFrom(*dto.CustomerID)
		if err != nil {
			return nil, err
		}
		p.CustomerID = &customerID
	}
	if dto.BalanceDelta.Valid {
		m := kernel.NewMoney(dto.BalanceDelta.Decimal)
		p.Effect.Balance = &m
	}

	return ledger.RestoreEntry(dto.ID, dto.CreatedAt, p)
}

func statusPtr(s order.Status) *string {
	if s == order.Unknown {
		return nil
	}
	v := s.String()
	return &v
}

func parseStatus(s *string) (order.Status, error) {
	if s == nil {
		return order.Unknown, nil
	}
	return order.ParseStatus(*s)
}
