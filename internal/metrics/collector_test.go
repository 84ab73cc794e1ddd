package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/FairForge/loadforge/internal/loadtest"
)

func TestCollector_ObserveOperation(t *testing.T) {
	c := NewCollector()

	successBefore := testutil.ToFloat64(operationsTotal.WithLabelValues("write", "success"))
	failureBefore := testutil.ToFloat64(operationsTotal.WithLabelValues("read", "failure"))
	bytesBefore := testutil.ToFloat64(bytesTransferred.WithLabelValues("write"))

	c.ObserveOperation(loadtest.OperationMetric{
		Kind:     loadtest.OpWrite,
		Success:  true,
		Bytes:    2048,
		Duration: 5 * time.Millisecond,
	})
	c.ObserveOperation(loadtest.OperationMetric{
		Kind:     loadtest.OpRead,
		Success:  false,
		Err:      "timeout",
		Duration: time.Millisecond,
	})

	assert.Equal(t, successBefore+1, testutil.ToFloat64(operationsTotal.WithLabelValues("write", "success")))
	assert.Equal(t, failureBefore+1, testutil.ToFloat64(operationsTotal.WithLabelValues("read", "failure")))
	assert.Equal(t, bytesBefore+2048, testutil.ToFloat64(bytesTransferred.WithLabelValues("write")))
}
