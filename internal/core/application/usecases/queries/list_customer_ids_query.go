package queries

import (
	"errors"

	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// MaxPageSize caps a ListCustomerIDsQuery page.
const MaxPageSize = 1000

var ErrListCustomerIDsQueryIsNotConstructed = errors.New(
	"ListCustomerIDsQuery must be created via NewListCustomerIDsQuery constructor",
)

// ListCustomerIDsQuery pages through customer ids in ascending order. Pass the
// last id of the previous page as after, or 0 for the first page.
type ListCustomerIDsQuery struct {
	after int64
	limit int
	guard guard.ConstructorGuard
}

func NewListCustomerIDsQuery(after int64, limit int) (ListCustomerIDsQuery, error) {
	if after < 0 {
		return ListCustomerIDsQuery{}, errs.NewValueIsOutOfRangeError("after", after, 0, nil)
	}
	if limit <= 0 || limit > MaxPageSize {
		return ListCustomerIDsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	return ListCustomerIDsQuery{after: after, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCustomerIDsQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerIDsQueryIsNotConstructed)
}

func (q ListCustomerIDsQuery) After() int64 { return q.after }
func (q ListCustomerIDsQuery) Limit() int   { return q.limit }
