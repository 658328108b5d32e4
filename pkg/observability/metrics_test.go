package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQueryMetrics(reg)

	m.SnapshotLoadsTotal.WithLabelValues("ok").Inc()
	m.SearchesTotal.WithLabelValues("keyword").Add(3)
	m.AnalysesTotal.WithLabelValues("participants", "ok").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SnapshotLoadsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.SearchesTotal.WithLabelValues("keyword")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestStartSpanNoopProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "search")
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
}
