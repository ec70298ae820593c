package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics holds every metric the payment pipeline records.
type PaymentMetrics struct {
	TransactionsCreatedTotal  *prometheus.CounterVec
	TransactionsApprovedTotal *prometheus.CounterVec
	TransactionsDeclinedTotal *prometheus.CounterVec
	TransactionsErroredTotal  *prometheus.CounterVec

	ApprovedAmountTotal *prometheus.CounterVec

	WebhookEventsTotal     *prometheus.CounterVec
	DuplicateWebhooksTotal prometheus.Counter

	PollRunsTotal    prometheus.Counter
	PollSkippedTotal prometheus.Counter
	PollBatchSize    prometheus.Histogram

	LostTransitionRacesTotal prometheus.Counter
	StockUnderflowTotal      *prometheus.CounterVec
	DeliveriesCreatedTotal   prometheus.Counter

	GatewayRequestDuration *prometheus.HistogramVec
	GatewayErrorsTotal     *prometheus.CounterVec
}

func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	factory := promauto.With(reg)

	return &PaymentMetrics{
		TransactionsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_transactions_created_total",
				Help: "Transactions created by checkout",
			},
			[]string{"currency"},
		),

		TransactionsApprovedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_transactions_approved_total",
				Help: "Transactions that reached APPROVED, by reconciliation source",
			},
			[]string{"source"},
		),

		TransactionsDeclinedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_transactions_declined_total",
				Help: "Transactions that reached DECLINED, by reconciliation source",
			},
			[]string{"source"},
		),

		TransactionsErroredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_transactions_errored_total",
				Help: "Transactions that reached ERROR, by reconciliation source",
			},
			[]string{"source"},
		),

		ApprovedAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_approved_amount_total",
				Help: "Total approved amount",
			},
			[]string{"currency"},
		),

		WebhookEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_events_total",
				Help: "Inbound gateway notifications, by raw gateway status",
			},
			[]string{"status"},
		),

		DuplicateWebhooksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_duplicate_webhooks_total",
				Help: "Webhook deliveries short-circuited because the transaction was already terminal",
			},
		),

		PollRunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_poll_runs_total",
				Help: "Completed reconciliation poll ticks",
			},
		),

		PollSkippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_poll_skipped_total",
				Help: "Poll ticks skipped because a previous run was still in flight",
			},
		),

		PollBatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payment_poll_batch_size",
				Help:    "Pollable transactions fetched per tick",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),

		LostTransitionRacesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_lost_transition_races_total",
				Help: "Gateway updates dropped because another actor claimed the status transition first",
			},
		),

		StockUnderflowTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_stock_underflow_total",
				Help: "Post-approval stock decrements that failed on insufficient stock",
			},
			[]string{"product_id"},
		),

		DeliveriesCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_deliveries_created_total",
				Help: "Deliveries created for approved transactions",
			},
		),

		GatewayRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_gateway_request_duration_seconds",
				Help:    "Latency of gateway submit/fetch calls",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"operation"},
		),

		GatewayErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_gateway_errors_total",
				Help: "Failed gateway calls",
			},
			[]string{"operation"},
		),
	}
}

func (m *PaymentMetrics) RecordTransactionCreated(currency string) {
	m.TransactionsCreatedTotal.WithLabelValues(currency).Inc()
}

func (m *PaymentMetrics) RecordApproved(source, currency string, amount float64) {
	m.TransactionsApprovedTotal.WithLabelValues(source).Inc()
	m.ApprovedAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *PaymentMetrics) RecordDeclined(source string) {
	m.TransactionsDeclinedTotal.WithLabelValues(source).Inc()
}

func (m *PaymentMetrics) RecordErrored(source string) {
	m.TransactionsErroredTotal.WithLabelValues(source).Inc()
}

func (m *PaymentMetrics) RecordWebhookEvent(status string) {
	m.WebhookEventsTotal.WithLabelValues(status).Inc()
}

func (m *PaymentMetrics) RecordStockUnderflow(productID string) {
	m.StockUnderflowTotal.WithLabelValues(productID).Inc()
}

func (m *PaymentMetrics) RecordGatewayRequest(operation string, seconds float64, failed bool) {
	m.GatewayRequestDuration.WithLabelValues(operation).Observe(seconds)
	if failed {
		m.GatewayErrorsTotal.WithLabelValues(operation).Inc()
	}
}
