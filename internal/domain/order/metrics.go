package order

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Rejection kinds recorded on orders_rejected_total.
const (
	RejectMalformed = "malformed"
	RejectInvalid   = "invalid"
)

// Metrics records order intake outcomes.
type Metrics struct {
	admittedTotal metric.Int64Counter
	rejectedTotal metric.Int64Counter
	storeSize     metric.Int64ObservableGauge
}

// NewMetrics registers the intake instruments on meter. The store size gauge
// is observed from store on every collection.
func NewMetrics(meter metric.Meter, store Store) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.admittedTotal, err = meter.Int64Counter(
		"orders_admitted_total",
		metric.WithDescription("Total number of orders admitted to the store"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders_admitted_total counter")
	}

	m.rejectedTotal, err = meter.Int64Counter(
		"orders_rejected_total",
		metric.WithDescription("Total number of rejected order submissions"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders_rejected_total counter")
	}

	m.storeSize, err = meter.Int64ObservableGauge(
		"order_store_size",
		metric.WithDescription("Number of orders held in memory"),
		metric.WithUnit("{order}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(store.Len()))
			return nil
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create order_store_size gauge")
	}

	return m, nil
}

func (m *Metrics) RecordAdmitted(ctx context.Context) {
	m.admittedTotal.Add(ctx, 1)
}

func (m *Metrics) RecordRejected(ctx context.Context, kind string) {
	m.rejectedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", kind),
	))
}
