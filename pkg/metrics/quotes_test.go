package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestQuoteMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewQuoteMetrics(reg)
	channel := "domestic"
	metrics.IncComputed(channel)
	metrics.IncDataMissing(channel)
	metrics.IncExported("xlsx")
	metrics.ObserveCompute(channel, 15*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "quotes_computed_total", "channel", channel); err != nil {
		t.Fatalf("fetch computed: %v", err)
	} else if got != 1 {
		t.Fatalf("expected computed=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pricing_data_missing_total", "channel", channel); err != nil {
		t.Fatalf("fetch data missing: %v", err)
	} else if got != 1 {
		t.Fatalf("expected data missing=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "quote_exports_total", "format", "xlsx"); err != nil {
		t.Fatalf("fetch exports: %v", err)
	} else if got != 1 {
		t.Fatalf("expected exports=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "quote_compute_duration_seconds", "channel", channel); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	metrics := NewQuoteMetrics(nil)
	metrics.IncComputed("overseas")
	metrics.ObserveCompute("overseas", time.Millisecond)

	var nilMetrics *QuoteMetrics
	nilMetrics.IncComputed("overseas")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
