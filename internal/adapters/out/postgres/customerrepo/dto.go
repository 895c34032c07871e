// Package customerrepo persists the ledger-relevant mirror of customer records.
package customerrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CustomerDTO is the customers row. The check constraint repeats the domain
// bound on bottles_in_hand as a last line of defence.
type CustomerDTO struct {
	ID             int64           `gorm:"primaryKey;autoIncrement:false"`
	FullName       string          `gorm:"size:150;not null"`
	BottlesInHand  int             `gorm:"not null;default:0;check:chk_bottles_reasonable,bottles_in_hand BETWEEN -100 AND 10000"`
	AccountBalance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Status         string          `gorm:"size:20;not null;default:active"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:             c.ID().Int64(),
		FullName:       c.FullName(),
		BottlesInHand:  c.BottlesInHand(),
		AccountBalance: c.AccountBalance().Decimal(),
		Status:         c.Status().String(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.IDFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := customer.ParseAccountStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.FullName, dto.BottlesInHand, kernel.NewMoney(dto.AccountBalance), status)
}
