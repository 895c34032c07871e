package ledgerrepo

import (
	"context"
	"fmt"
	"iter"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM. It has no
// update or delete path.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append inserts e and returns the stored entry with its sequence id and
// creation time.
func (r *GormLedgerRepository) Append(ctx context.Context, e *ledger.Entry) (*ledger.Entry, error) {
	if e == nil {
		return nil, errs.NewValueIsRequiredError("entry")
	}
	if e.ID() != 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("entry", fmt.Errorf("entry %d is already appended", e.ID()))
	}

	db := r.db.WithContext(ctx)
	if err := r.requireExists(db, "orders", "order", e.OrderID()); err != nil {
		return nil, err
	}
	if c := e.CustomerID(); c != nil {
		if err := r.requireExists(db, "customers", "customer", *c); err != nil {
			return nil, err
		}
	}

	dto := fromDomain(e)
	if err := db.Create(&dto).Error; err != nil {
		return nil, pgerrs.Translate(err)
	}

	stored, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(e.OrderID(), stored)
	return stored, nil
}

func (r *GormLedgerRepository) EntriesForOrder(ctx context.Context, orderID kernel.ID) iter.Seq2[*ledger.Entry, error] {
	return r.entries(ctx, "order_id = ?", orderID.Int64())
}

func (r *GormLedgerRepository) EntriesForCustomer(
	ctx context.Context,
	customerID kernel.ID,
) iter.Seq2[*ledger.Entry, error] {
	return r.entries(ctx, "customer_id = ?", customerID.Int64())
}

// entries streams matching rows in append order. The cursor stays open while
// the caller ranges, so callers inside a transaction should drain it with
// ledger.Collect before issuing further statements.
func (r *GormLedgerRepository) entries(ctx context.Context, where string, arg int64) iter.Seq2[*ledger.Entry, error] {
	return func(yield func(*ledger.Entry, error) bool) {
		db := r.db.WithContext(ctx)
		rows, err := db.Model(&EntryDTO{}).
			Where(where, arg).
			Order("created_at ASC, id ASC").
			Rows()
		if err != nil {
			yield(nil, pgerrs.Translate(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var dto EntryDTO
			if err := db.ScanRows(rows, &dto); err != nil {
				yield(nil, pgerrs.Translate(err))
				return
			}
			e, err := toDomain(dto)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, pgerrs.Translate(err))
		}
	}
}

func (r *GormLedgerRepository) requireExists(db *gorm.DB, table, name string, id kernel.ID) error {
	var n int64
	if err := db.Table(table).Where("id = ?", id.Int64()).Count(&n).Error; err != nil {
		return pgerrs.Translate(err)
	}
	if n == 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s %s is unknown", name, id))
	}
	return nil
}
