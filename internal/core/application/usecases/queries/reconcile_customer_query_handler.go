package queries

import (
	"context"

	"waterdelivery/internal/core/domain/services"
)

// ReconcileCustomerQueryHandler audits one customer.
//
// Example:
//
//	r, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrConsistencyDrift) {
//	    logger.Warn("counters drifted", "bottles_drift", r.BottlesDrift)
//	}
type ReconcileCustomerQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewReconcileCustomerQueryHandler(uowFactory ReadUoWFactory) ReconcileCustomerQueryHandler {
	return ReconcileCustomerQueryHandler{uowFactory: uowFactory}
}

// Handle returns the reconciliation together with an
// *errs.ConsistencyDriftError when the counters do not match the ledger. Other
// errors come with a zero Reconciliation.
func (h ReconcileCustomerQueryHandler) Handle(
	ctx context.Context,
	query ReconcileCustomerQuery,
) (services.Reconciliation, error) {
	if err := query.Validate(); err != nil {
		return services.Reconciliation{}, err
	}

	var r services.Reconciliation
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		c, err := uow.CustomerRepository().Get(ctx, query.CustomerID())
		if err != nil {
			return err
		}
		r, err = services.NewBalanceProjector().Reconcile(c, uow.LedgerRepository().EntriesForCustomer(ctx, c.ID()))
		return err
	})
	if err != nil {
		return services.Reconciliation{}, err
	}
	return r, r.Err()
}
