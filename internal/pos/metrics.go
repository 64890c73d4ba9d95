package pos

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/khushiag23/POS-System/internal/domain"
)

type instruments struct {
	ordersCompleted metric.Int64Counter
	orderTotal      metric.Float64Histogram
	rejected        metric.Int64Counter
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	ordersCompleted, err := meter.Int64Counter("pos.orders.completed",
		metric.WithDescription("Orders finalized at checkout"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	orderTotal, err := meter.Float64Histogram("pos.order.total",
		metric.WithDescription("Grand total of finalized orders"),
		metric.WithUnit("{currency}"),
		metric.WithExplicitBucketBoundaries(5, 10, 25, 50, 100, 250, 500),
	)
	if err != nil {
		return nil, err
	}

	rejected, err := meter.Int64Counter("pos.checkout.rejected",
		metric.WithDescription("Checkout attempts refused before payment"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	return &instruments{
		ordersCompleted: ordersCompleted,
		orderTotal:      orderTotal,
		rejected:        rejected,
	}, nil
}

func (m *instruments) orderCompleted(ctx context.Context, order domain.Order) {
	attrs := metric.WithAttributes(attribute.String("payment_method", string(order.PaymentMethod)))
	m.ordersCompleted.Add(ctx, 1, attrs)
	m.orderTotal.Record(ctx, order.Total.InexactFloat64(), attrs)
}

func (m *instruments) checkoutRejected(ctx context.Context, reason string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
