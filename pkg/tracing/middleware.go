package tracing

import (
	"context"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

const accountIDHeader = "x-amz-account-id"

// AppendMiddlewares instruments every call of an SDK client: otelaws opens the
// client span, and the annotation middleware records the S3 Control specifics
// on it.
func AppendMiddlewares(apiOptions *[]func(*middleware.Stack) error, serviceName string) {
	otelaws.AppendMiddlewares(apiOptions)
	*apiOptions = append(*apiOptions, func(stack *middleware.Stack) error {
		return AttachSpanAnnotationMiddleware(stack, serviceName)
	})
}

// AttachSpanAnnotationMiddleware annotates the span of each SDK call with the
// target account, the request host and the service request id.
func AttachSpanAnnotationMiddleware(stack *middleware.Stack, serviceName string) error {
	annotate := middleware.FinalizeMiddlewareFunc("SpanAnnotation", func(
		ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler,
	) (out middleware.FinalizeOutput, metadata middleware.Metadata, err error) {
		span := trace.SpanFromContext(ctx)
		operationName := middleware.GetOperationName(ctx)

		attrs := []attribute.KeyValue{
			attribute.String("rpc.method", operationName),
			attribute.String("rpc.service", serviceName),
		}
		if req, ok := in.Request.(*smithyhttp.Request); ok {
			attrs = append(attrs, attribute.String("server.address", req.URL.Host))
			if account := req.Header.Get(accountIDHeader); account != "" {
				attrs = append(attrs, attribute.String("aws.account_id", account))
			}
		}

		out, metadata, err = next.HandleFinalize(ctx, in)

		requestID := getRequestID(metadata)
		if requestID != "" {
			attrs = append(attrs, attribute.String("aws.request_id", requestID))
		}
		span.SetAttributes(attrs...)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "AWS operation failed")
			klog.V(constants.LvlDebug).InfoS("AWS SDK operation failed", "operation", operationName, "requestID", requestID, "error", err)
		}
		return out, metadata, err
	})

	return stack.Finalize.Add(annotate, middleware.After)
}

// getRequestID retrieves the AWS request ID from middleware metadata.
func getRequestID(metadata middleware.Metadata) string {
	if requestID, ok := awsmiddleware.GetRequestIDMetadata(metadata); ok {
		return requestID
	}
	return ""
}
