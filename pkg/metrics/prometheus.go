package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics surface used by the scanner services.
type Recorder interface {
	RecordScan(outcome string, instruments int, elapsed time.Duration)
	RecordScanProgress(progress int)
	RecordClassification(symbol, signalType string, fallback bool)
	RecordDispatch(kind, status string)
	RecordDispatchSkipped()
	RecordBriefing(sentiment string, fallback bool)
	RecordLatency(op string, elapsed time.Duration)
}

// prometheusRecorder implements Recorder using Prometheus.
type prometheusRecorder struct {
	scansTotal        *prometheus.CounterVec
	scanInstruments   prometheus.Histogram
	scanProgress      prometheus.Gauge
	classifications   *prometheus.CounterVec
	dispatchesTotal   *prometheus.CounterVec
	dispatchesSkipped prometheus.Counter
	briefingsTotal    *prometheus.CounterVec
	latency           *prometheus.HistogramVec
}

// New creates a Prometheus recorder registered on reg. Pass prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) Recorder {
	factory := promauto.With(reg)
	return &prometheusRecorder{
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_scans_total",
				Help: "Total number of scan runs by outcome",
			},
			[]string{"outcome"},
		),
		scanInstruments: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scanner_scan_instruments",
				Help:    "Number of instruments classified per scan",
				Buckets: []float64{1, 5, 10, 20, 50},
			},
		),
		scanProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scanner_scan_progress_percent",
				Help: "Progress of the running scan",
			},
		),
		classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_classifications_total",
				Help: "Total number of classified signals",
			},
			[]string{"type", "source"},
		),
		dispatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_dispatches_total",
				Help: "Total number of alert dispatches by status",
			},
			[]string{"kind", "status"},
		),
		dispatchesSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "scanner_dispatches_deduplicated_total",
				Help: "Total number of alerts suppressed by the daily dedup key",
			},
		),
		briefingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_briefings_total",
				Help: "Total number of market briefings",
			},
			[]string{"sentiment", "source"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scanner_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func source(fallback bool) string {
	if fallback {
		return "fallback"
	}
	return "ai"
}

func (r *prometheusRecorder) RecordScan(outcome string, instruments int, elapsed time.Duration) {
	r.scansTotal.WithLabelValues(outcome).Inc()
	r.scanInstruments.Observe(float64(instruments))
	r.latency.WithLabelValues("scan").Observe(elapsed.Seconds())
}

func (r *prometheusRecorder) RecordScanProgress(progress int) {
	r.scanProgress.Set(float64(progress))
}

// RecordClassification counts one signal. The symbol label is left out to keep cardinality bounded.
func (r *prometheusRecorder) RecordClassification(_ string, signalType string, fallback bool) {
	r.classifications.WithLabelValues(signalType, source(fallback)).Inc()
}

func (r *prometheusRecorder) RecordDispatch(kind, status string) {
	r.dispatchesTotal.WithLabelValues(kind, status).Inc()
}

func (r *prometheusRecorder) RecordDispatchSkipped() {
	r.dispatchesSkipped.Inc()
}

func (r *prometheusRecorder) RecordBriefing(sentiment string, fallback bool) {
	r.briefingsTotal.WithLabelValues(sentiment, source(fallback)).Inc()
}

func (r *prometheusRecorder) RecordLatency(op string, elapsed time.Duration) {
	r.latency.WithLabelValues(op).Observe(elapsed.Seconds())
}

type nopRecorder struct{}

// NewNop returns a Recorder that records nothing.
func NewNop() Recorder { return nopRecorder{} }

func (nopRecorder) RecordScan(string, int, time.Duration)     {}
func (nopRecorder) RecordScanProgress(int)                    {}
func (nopRecorder) RecordClassification(string, string, bool) {}
func (nopRecorder) RecordDispatch(string, string)             {}
func (nopRecorder) RecordDispatchSkipped()                    {}
func (nopRecorder) RecordBriefing(string, bool)               {}
func (nopRecorder) RecordLatency(string, time.Duration)       {}
