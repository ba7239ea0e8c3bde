package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrKeyStrategy = attribute.Key("strategy")
	AttrKeyCategory = attribute.Key("category")
	AttrKeyCartType = attribute.Key("cart_type")
	AttrKeyReason   = attribute.Key("reason")
)

// EngineMetrics counts settlement engine activity
type EngineMetrics struct {
	distributions *Counter
	checkouts     *Counter
	rejections    *Counter
	payments      *Counter
	payable       *Histogram
}

// NewEngineMetrics registers the engine instruments on meter
func NewEngineMetrics(meter metric.Meter) (*EngineMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   EngineMetrics
		err error
	)
	if m.distributions, err = NewCounter(meter, "pos_expense_distributions_total",
		"Expense requests distributed over carts", "{requests}"); err != nil {
		return nil, err
	}
	if m.checkouts, err = NewCounter(meter, "pos_cart_checkouts_total",
		"Carts committed as orders", "{orders}"); err != nil {
		return nil, err
	}
	if m.rejections, err = NewCounter(meter, "pos_cart_rejections_total",
		"Cart mutations or checkouts rejected by validation", "{rejections}"); err != nil {
		return nil, err
	}
	if m.payments, err = NewCounter(meter, "pos_supplier_payments_total",
		"Supplier payments recorded", "{payments}"); err != nil {
		return nil, err
	}
	if m.payable, err = NewHistogram(meter, "pos_supplier_payment_payable",
		"Payable amount per supplier payment", "{currency}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordDistribution counts one distributed expense request. A nil
// receiver is a no-op so services work without metrics.
func (m *EngineMetrics) RecordDistribution(ctx context.Context, category, strategy string) {
	if m == nil {
		return
	}
	m.distributions.Inc(ctx, AttrKeyCategory.String(category), AttrKeyStrategy.String(strategy))
}

// RecordCheckout counts one committed cart
func (m *EngineMetrics) RecordCheckout(ctx context.Context, cartType string) {
	if m == nil {
		return
	}
	m.checkouts.Inc(ctx, AttrKeyCartType.String(cartType))
}

// RecordRejection counts one validation failure
func (m *EngineMetrics) RecordRejection(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rejections.Inc(ctx, AttrKeyReason.String(reason))
}

// RecordPayment counts one supplier payment and its payable amount
func (m *EngineMetrics) RecordPayment(ctx context.Context, payable decimal.Decimal) {
	if m == nil {
		return
	}
	m.payments.Inc(ctx)
	m.payable.Record(ctx, payable.InexactFloat64())
}
