package customerrepo

import (
	"context"
	"errors"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the counters, name and account status.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("full_name", "bottles_in_hand", "account_balance", "status", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormCustomerRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCustomerRepository) get(query *gorm.DB, id kernel.ID) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := query.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, pgerrs.Translate(err)
	}

	return toDomain(dto)
}

func (r *GormCustomerRepository) ListIDs(ctx context.Context, after int64, limit int) ([]kernel.ID, error) {
	var raw []int64
	if err := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id > ?", after).
		Order("id").
		Limit(limit).
		Pluck("id", &raw).Error; err != nil {
		return nil, pgerrs.Translate(err)
	}

	ids := make([]kernel.ID, 0, len(raw))
	for _, v := range raw {
		id, err := kernel.IDFrom(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
