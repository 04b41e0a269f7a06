package lightgbm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

const metricsNamespace = "lightgbm"

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	// nativeCalls counts C API invocations by entry point and outcome.
	nativeCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "native_calls_total",
			Help:      "Number of LightGBM C API calls by entry point and outcome",
		},
		[]string{"call", "outcome"},
	)

	// nativeCallDuration measures how long each C API call blocked.
	nativeCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "native_call_duration_seconds",
			Help:      "Wall time spent inside LightGBM C API calls",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		},
		[]string{"call"},
	)

	// liveHandles tracks native handles that have been created and not yet freed.
	liveHandles = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "live_handles",
			Help:      "Native handles currently owned by Booster and Dataset values",
		},
		[]string{"kind"},
	)
)

// Collectors returns the package's Prometheus collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{nativeCalls, nativeCallDuration, liveHandles}
}

// RegisterMetrics registers the package's collectors with reg. Collectors that
// are already registered are skipped.
//
// Example:
//
//	if err := lightgbm.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
//	    return err
//	}
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if lgbmerrors.As(err, &already) {
				continue
			}
			return lgbmerrors.Wrap(err, "register lightgbm metrics")
		}
	}
	return nil
}

func observeCall(name, outcome string, start time.Time) {
	nativeCalls.WithLabelValues(name, outcome).Inc()
	nativeCallDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
