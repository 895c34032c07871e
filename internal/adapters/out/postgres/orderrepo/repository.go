package orderrepo

import (
	"context"
	"errors"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return pgerrs.Translate(err)
	}
	if err := insertItems(db, items); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the order, zero values included, and rewrites
// its items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	if err := DeleteItems(db, dto.ID); err != nil {
		return err
	}
	if err := insertItems(db, items); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE. SQLite has no
// row locks; there the write lock of the transaction serializes writers.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.ID, lock bool) (*order.Order, error) {
	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerrs.Translate(err)
	}

	var items []OrderItemDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", dto.ID).Order("id").Find(&items).Error; err != nil {
		return nil, pgerrs.Translate(err)
	}

	return toDomain(dto, items)
}

// DeleteItems removes every item row owned by the order. It is the single
// place where order items are deleted; orders themselves are never hard
// deleted.
func DeleteItems(db *gorm.DB, orderID int64) error {
	if err := db.Where("order_id = ?", orderID).Delete(&OrderItemDTO{}).Error; err != nil {
		return pgerrs.Translate(err)
	}
	return nil
}

func insertItems(db *gorm.DB, items []OrderItemDTO) error {
	if len(items) == 0 {
		return nil
	}
	if err := db.Create(&items).Error; err != nil {
		return pgerrs.Translate(err)
	}
	return nil
}
