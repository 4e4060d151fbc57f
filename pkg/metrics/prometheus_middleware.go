package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

const middlewareID = "PrometheusMetrics"

var AttachPrometheusMiddleware = attachPrometheusMiddlewareMetrics

// requestStatus is the status label of a finished SDK call. Calls aborted by
// an interrupted invocation are counted apart from backend failures.
func requestStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "error"
}

func traceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// AttachPrometheusMiddleware adds a Finalize middleware to stack recording
// the duration and outcome of every attempt of the call.
func attachPrometheusMiddlewareMetrics(stack *middleware.Stack, requestDuration *prometheus.HistogramVec, requestsTotal *prometheus.CounterVec) error {
	return stack.Finalize.Add(middleware.FinalizeMiddlewareFunc(middlewareID, func(
		ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler,
	) (middleware.FinalizeOutput, middleware.Metadata, error) {
		operation := middleware.GetOperationName(ctx)
		start := time.Now()

		out, metadata, err := next.HandleFinalize(ctx, in)

		labels := []string{operation, requestStatus(err), traceID(ctx)}
		requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(labels...).Inc()
		if err != nil {
			klog.V(constants.LvlDebug).InfoS("AWS SDK operation failed", "operation", operation, "error", err)
		}
		return out, metadata, err
	}), middleware.After)
}

// WithPrometheusMiddleware returns an SDK option function attaching the
// metrics middleware to every call of a client.
func WithPrometheusMiddleware(requestDuration *prometheus.HistogramVec, requestsTotal *prometheus.CounterVec) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return AttachPrometheusMiddleware(stack, requestDuration, requestsTotal)
	}
}
