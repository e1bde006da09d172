package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "rdal_"

	resultSuccess = "success"
	resultError   = "error"

	foldOutcomeFolded   = "folded"
	foldOutcomeExisting = "skipped_existing"
	foldOutcomeExcluded = "skipped_excluded"
)

var (
	registerOnce sync.Once

	observationsClassified   prometheus.Counter
	observationsUnclassified prometheus.Counter

	reconcileFolds *prometheus.CounterVec

	runTotal   *prometheus.CounterVec
	runLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers the reporting pipeline metrics.
func Init() {
	registerOnce.Do(func() {
		observationsClassified = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "observations_classified_total",
				Help: "Total observations emitted by the classification rule table",
			},
		)
		observationsUnclassified = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "observations_unclassified_total",
				Help: "Total observations no classification rule matched (dropped, audited)",
			},
		)

		reconcileFolds = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reconcile_entries_total",
				Help: "Total overlay entries by granularity and fold outcome",
			},
			[]string{"granularity", "outcome"},
		)

		runTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "pipeline_runs_total",
				Help: "Total pipeline runs by result",
			},
			[]string{"result"},
		)
		runLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "pipeline_run_latency_seconds",
				Help:    "Pipeline run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "submission_export_total",
				Help: "Total submission export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "submission_export_latency_seconds",
				Help:    "Submission export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			observationsClassified,
			observationsUnclassified,
			reconcileFolds,
			runTotal,
			runLatency,
			exportTotal,
			exportLatency,
		)
	})
}

// AddClassified increments the classified-observation counter.
func AddClassified(count int) {
	if count <= 0 {
		return
	}
	if observationsClassified != nil {
		observationsClassified.Add(float64(count))
	}
}

// AddUnclassified increments the unclassified audit counter.
func AddUnclassified(count int) {
	if count <= 0 {
		return
	}
	if observationsUnclassified != nil {
		observationsUnclassified.Add(float64(count))
	}
}

// AddFolds records overlay fold outcomes for a granularity.
func AddFolds(granularity string, folded, skippedExisting, skippedExcluded int) {
	if reconcileFolds == nil {
		return
	}
	if folded > 0 {
		reconcileFolds.WithLabelValues(granularity, foldOutcomeFolded).Add(float64(folded))
	}
	if skippedExisting > 0 {
		reconcileFolds.WithLabelValues(granularity, foldOutcomeExisting).Add(float64(skippedExisting))
	}
	if skippedExcluded > 0 {
		reconcileFolds.WithLabelValues(granularity, foldOutcomeExcluded).Add(float64(skippedExcluded))
	}
}

// ObserveRun records run latency and result.
func ObserveRun(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if runTotal != nil {
		runTotal.WithLabelValues(result).Inc()
	}
	if runLatency != nil {
		runLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency by format and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported result constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
