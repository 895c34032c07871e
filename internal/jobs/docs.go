// Package jobs provides scheduled background tasks for the water delivery service.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field and skip a tick
// while the previous run is still busy.
//
// # Available Jobs
//
// 1. ReconciliationJob - walks every customer page by page and compares the
// stored bottles_in_hand and account_balance with the sum of the customer's
// ledger deltas. Drift is logged at WARN and exported through the audit
// metrics. The job only reads; fixing drift is an operator decision.
//
// # Usage
//
//	job := jobs.NewReconciliationJob(listHandler, reconcileHandler, m, cfg.ReconcileSchedule, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The default expression "0 */5 * * * *" runs the audit every five minutes.
// It can be overridden with RECONCILE_SCHEDULE.
package jobs
