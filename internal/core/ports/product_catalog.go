package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
)

// Product is the part of a catalog record needed to price an order line.
type Product struct {
	ID    kernel.ID
	Price kernel.Money
}

// ProductCatalog reads current prices from the product catalog. Prices are
// only consulted when order items are created.
type ProductCatalog interface {
	Get(ctx context.Context, id kernel.ID) (Product, error)
}
