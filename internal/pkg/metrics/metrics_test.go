package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, action ledger.Action) *ledger.Entry {
	t.Helper()
	e, err := ledger.NewEntry(ledger.Posting{
		OrderID:     kernel.NewID(),
		Action:      action,
		OldStatus:   order.OutForDelivery,
		NewStatus:   order.Delivered,
		Effect:      ledger.BottlesOnly(2),
		OperationID: kernel.NewUUID(),
	})
	require.NoError(t, err)
	return e
}

func TestMetrics_Committed(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	c, err := customer.NewCustomer(kernel.NewID(), "Jane Doe")
	require.NoError(t, err)

	m.Committed([]any{entry(t, ledger.Delivered), c, "ignored"})
	m.Committed([]any{entry(t, ledger.Delivered), entry(t, ledger.Correction)})

	assert.InDelta(t, 2, testutil.ToFloat64(m.Postings.WithLabelValues("DELIVERED")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Postings.WithLabelValues("CORRECTION")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CounterUpdates), 0)
}

func TestMetrics_ObserveAudit(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveAudit(3, false, time.Second)
	m.ObserveAudit(0, true, time.Second)

	assert.InDelta(t, 3, testutil.ToFloat64(m.DriftedCustomers), 0, "a failed run keeps the last known value")
	assert.InDelta(t, 1, testutil.ToFloat64(m.AuditRuns.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AuditRuns.WithLabelValues("failed")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.ObserveRequest("deliverOrder", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `waterdelivery_http_requests_total{handler="deliverOrder",status="200"} 1`)
}
