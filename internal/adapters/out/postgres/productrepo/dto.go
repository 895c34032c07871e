// Package productrepo reads prices from the products table owned by the
// product catalog.
package productrepo

import (
	"github.com/shopspring/decimal"
)

// ProductDTO is the subset of the products row the order service reads.
type ProductDTO struct {
	ID       int64           `gorm:"primaryKey;autoIncrement:false"`
	Name     string          `gorm:"size:150;not null"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsActive bool            `gorm:"not null;default:true"`
}

func (ProductDTO) TableName() string {
	return "products"
}
