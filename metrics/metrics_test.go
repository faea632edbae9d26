package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector()

	c.ObserveOperation("deposit", "ok", 5*time.Millisecond)
	c.ObserveOperation("deposit", "ok", 7*time.Millisecond)
	c.ObserveOperation("withdraw", "insufficient_funds", time.Millisecond)
	c.ConflictRetry("transfer")
	c.AmountMoved("deposit", "USD", 12.5)
	c.AmountMoved("deposit", "USD", 0.5)
	c.PublishFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("deposit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("withdraw", "insufficient_funds")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.conflictRetry.WithLabelValues("transfer")))
	assert.Equal(t, 13.0, testutil.ToFloat64(c.amountMoved.WithLabelValues("deposit", "USD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.publishFailure))
}

func TestCollector_NilIsSafe(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveOperation("deposit", "ok", time.Millisecond)
		c.ConflictRetry("deposit")
		c.AmountMoved("deposit", "USD", 1)
		c.PublishFailed()
	})
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveOperation("transfer", "ok", time.Millisecond)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `ledger_operations_total{operation="transfer",outcome="ok"} 1`)
}
