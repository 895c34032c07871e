package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the audit every five minutes.
const DefaultReconcileSchedule = "0 */5 * * * *"

const reconcilePageSize = 500

type CustomerLister interface {
	Handle(ctx context.Context, query queries.ListCustomerIDsQuery) ([]kernel.ID, error)
}

type CustomerReconciler interface {
	Handle(ctx context.Context, query queries.ReconcileCustomerQuery) (services.Reconciliation, error)
}

// AuditObserver receives the outcome of every audit run.
type AuditObserver interface {
	ObserveAudit(drifted int, failed bool, elapsed time.Duration)
}

// AuditReport summarizes one pass over all customers.
type AuditReport struct {
	Checked int
	Drifted int
	Failed  int
}

// ReconciliationJob periodically compares every customer's stored counters
// with their ledger. It only reports drift and never writes.
type ReconciliationJob struct {
	lister     CustomerLister
	reconciler CustomerReconciler
	observer   AuditObserver
	schedule   string
	cron       *cron.Cron
	cancel     context.CancelFunc
	logger     *slog.Logger
}

// NewReconciliationJob creates the audit job. An empty schedule falls back to
// DefaultReconcileSchedule.
func NewReconciliationJob(
	lister CustomerLister,
	reconciler CustomerReconciler,
	observer AuditObserver,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &ReconciliationJob{
		lister:     lister,
		reconciler: reconciler,
		observer:   observer,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:     logger.With("component", "reconciliation_job"),
	}
}

// Start schedules the audit.
func (j *ReconciliationJob) Start() error {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			j.logger.ErrorContext(ctx, "Reconciliation job failed", "error", err)
		}
	})
	if err != nil {
		cancel()
		return fmt.Errorf("invalid reconcile schedule %q: %w", j.schedule, err)
	}

	j.cancel = cancel
	j.cron.Start()
	j.logger.InfoContext(ctx, "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop cancels a running audit and waits for it to return.
func (j *ReconciliationJob) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

// RunOnce audits every customer. A customer that cannot be reconciled is
// logged and skipped; only a failure to list customers aborts the run.
func (j *ReconciliationJob) RunOnce(ctx context.Context) (AuditReport, error) {
	started := time.Now()
	var report AuditReport

	err := j.forEachCustomer(ctx, func(id kernel.ID) {
		report.Checked++

		query, err := queries.NewReconcileCustomerQuery(id)
		if err == nil {
			_, err = j.reconciler.Handle(ctx, query)
		}

		switch {
		case err == nil:
		case errors.Is(err, errs.ErrConsistencyDrift):
			report.Drifted++
			j.logger.WarnContext(ctx, "Customer counters drifted from ledger",
				"customer_id", id.Int64(),
				"error", err,
			)
		default:
			report.Failed++
			j.logger.ErrorContext(ctx, "Failed to reconcile customer",
				"customer_id", id.Int64(),
				"error", err,
			)
		}
	})

	j.observer.ObserveAudit(report.Drifted, err != nil, time.Since(started))
	if err != nil {
		return report, err
	}

	j.logger.InfoContext(ctx, "Reconciliation finished",
		"checked", report.Checked,
		"drifted", report.Drifted,
		"failed", report.Failed,
	)
	return report, nil
}

func (j *ReconciliationJob) forEachCustomer(ctx context.Context, fn func(kernel.ID)) error {
	var after int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		query, err := queries.NewListCustomerIDsQuery(after, reconcilePageSize)
		if err != nil {
			return err
		}
		ids, err := j.lister.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("list customers after %d: %w", after, err)
		}

		for _, id := range ids {
			fn(id)
		}
		if len(ids) < reconcilePageSize {
			return nil
		}
		after = ids[len(ids)-1].Int64()
	}
}
