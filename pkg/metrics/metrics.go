package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

var (
	S3ControlRequestsTotal   *prometheus.CounterVec
	S3ControlRequestDuration *prometheus.HistogramVec
	S3RequestsTotal          *prometheus.CounterVec
	S3RequestDuration        *prometheus.HistogramVec
	IAMRequestsTotal         *prometheus.CounterVec
	IAMRequestDuration       *prometheus.HistogramVec
	PagesTotal               *prometheus.CounterVec
	InvocationsTotal         *prometheus.CounterVec
)

var requestLabels = []string{"method", "status", "trace_id"}

// requestMetrics builds the request counter and duration histogram of one
// backend service, e.g. "s3control" for "<prefix>_s3control_requests_total".
func requestMetrics(prefix, subsystem, service string) (*prometheus.CounterVec, *prometheus.HistogramVec) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: prefix,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Total number of " + service + " requests, categorized by method and status.",
	}, requestLabels)
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: prefix,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Duration of " + service + " requests in seconds, categorized by method and status.",
		Buckets:   prometheus.DefBuckets,
	}, requestLabels)
	return total, duration
}

// InitializeMetrics creates the CLI metrics under prefix and registers them.
// It panics if they are already registered with registry.
func InitializeMetrics(prefix string, registry prometheus.Registerer) {
	S3ControlRequestsTotal, S3ControlRequestDuration = requestMetrics(prefix, "s3control", "S3 Control")
	S3RequestsTotal, S3RequestDuration = requestMetrics(prefix, "s3", "S3")
	IAMRequestsTotal, IAMRequestDuration = requestMetrics(prefix, "iam", "IAM")

	PagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: prefix,
		Name:      "pages_total",
		Help:      "Total number of result pages written, categorized by operation.",
	}, []string{"operation"})

	InvocationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: prefix,
		Name:      "invocations_total",
		Help:      "Total number of cmdlet invocations, categorized by operation and status code.",
	}, []string{"operation", "code"})

	registry.MustRegister(
		S3ControlRequestsTotal, S3ControlRequestDuration,
		S3RequestsTotal, S3RequestDuration,
		IAMRequestsTotal, IAMRequestDuration,
		PagesTotal, InvocationsTotal,
	)

	klog.V(constants.LvlDebug).InfoS("Custom metrics initialized", "prefix", prefix)
}

// WriteTextfile writes the gathered metrics to path in the text exposition
// format, for collection by node_exporter's textfile collector.
func WriteTextfile(path string, registry prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return err
	}
	klog.V(constants.LvlDebug).InfoS("Metrics written", "path", path)
	return nil
}
