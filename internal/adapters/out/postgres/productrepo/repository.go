package productrepo

import (
	"context"
	"errors"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductCatalog implements ports.ProductCatalog. Inactive products are
// treated as missing.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

func (c *GormProductCatalog) Get(ctx context.Context, id kernel.ID) (ports.Product, error) {
	var dto ProductDTO
	err := c.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id.Int64(), true).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Product{}, errs.NewObjectNotFoundError("product", id.String())
	}
	if err != nil {
		return ports.Product{}, pgerrs.Translate(err)
	}

	return ports.Product{ID: id, Price: kernel.NewMoney(dto.Price)}, nil
}
