package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records pricing-engine activity.
type QuoteMetrics struct {
	computed    *prometheus.CounterVec
	exports     *prometheus.CounterVec
	dataMissing *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	computed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_computed_total",
		Help: "Quotes computed, labeled by production channel.",
	}, []string{"channel"})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_exports_total",
		Help: "Quote documents exported, labeled by format.",
	}, []string{"format"})
	dataMissing := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_data_missing_total",
		Help: "Quote computations aborted because a rate table entry was absent.",
	}, []string{"channel"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_compute_duration_seconds",
		Help:    "Duration of quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"channel"})
	reg.MustRegister(computed, exports, dataMissing, duration)
	return &QuoteMetrics{
		computed:    computed,
		exports:     exports,
		dataMissing: dataMissing,
		duration:    duration,
	}
}

// IncComputed increments the computed-quote counter for the channel.
func (q *QuoteMetrics) IncComputed(channel string) {
	if q == nil || q.computed == nil {
		return
	}
	q.computed.WithLabelValues(normalizeLabel(channel)).Inc()
}

// IncExported increments the export counter for the format.
func (q *QuoteMetrics) IncExported(format string) {
	if q == nil || q.exports == nil {
		return
	}
	q.exports.WithLabelValues(normalizeLabel(format)).Inc()
}

// IncDataMissing increments the missing-rate-table counter for the channel.
func (q *QuoteMetrics) IncDataMissing(channel string) {
	if q == nil || q.dataMissing == nil {
		return
	}
	q.dataMissing.WithLabelValues(normalizeLabel(channel)).Inc()
}

// ObserveCompute records the duration of one quote computation.
func (q *QuoteMetrics) ObserveCompute(channel string, duration time.Duration) {
	if q == nil || q.duration == nil {
		return
	}
	q.duration.WithLabelValues(normalizeLabel(channel)).Observe(duration.Seconds())
}
