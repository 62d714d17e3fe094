package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMetrics_RecordsIntakeOutcomes(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	store := &mockStore{}
	metrics, err := NewMetrics(mp.Meter("test"), store)
	require.NoError(t, err)
	svc := NewService(store, metrics)

	ctx := context.Background()
	_, err = svc.Submit(ctx, orderBody("X", 1))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, orderBody("X", 0))
	require.Error(t, err)
	_, err = svc.Submit(ctx, []byte("{"))
	require.Error(t, err)
	_, err = svc.Submit(ctx, []byte("{"))
	require.Error(t, err)

	got := collect(t, reader)

	admitted, ok := got["orders_admitted_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "orders_admitted_total missing")
	require.Len(t, admitted.DataPoints, 1)
	assert.Equal(t, int64(1), admitted.DataPoints[0].Value)

	rejected, ok := got["orders_rejected_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "orders_rejected_total missing")
	byReason := make(map[string]int64)
	for _, dp := range rejected.DataPoints {
		reason, _ := dp.Attributes.Value(attribute.Key("reason"))
		byReason[reason.AsString()] = dp.Value
	}
	assert.Equal(t, int64(1), byReason[RejectInvalid])
	assert.Equal(t, int64(2), byReason[RejectMalformed])

	size, ok := got["order_store_size"].Data.(metricdata.Gauge[int64])
	require.True(t, ok, "order_store_size missing")
	require.Len(t, size.DataPoints, 1)
	assert.Equal(t, int64(1), size.DataPoints[0].Value)
}
