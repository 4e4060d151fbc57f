package tracing_test

import (
	"context"
	"errors"
	"net/url"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/scality/s3control-cli/pkg/tracing"
)

var _ = Describe("Setup", func() {
	AfterEach(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
	})

	It("should leave tracing disabled with the none exporter", func(ctx SpecContext) {
		shutdown, err := tracing.Setup(ctx, tracing.Config{Exporter: tracing.ExporterNone})
		Expect(err).NotTo(HaveOccurred())
		Expect(shutdown(ctx)).To(Succeed())

		_, span := tracing.StartInvocation(ctx, "ListJobs")
		Expect(span.SpanContext().IsValid()).To(BeFalse())
	})

	It("should install a recording provider with the stdout exporter", func(ctx SpecContext) {
		shutdown, err := tracing.Setup(ctx, tracing.Config{Exporter: tracing.ExporterStdout, ServiceName: "s3ctl"})
		Expect(err).NotTo(HaveOccurred())

		_, span := tracing.StartInvocation(ctx, "ListJobs", attribute.String("aws.account_id", "123456789012"))
		Expect(span.SpanContext().IsValid()).To(BeTrue())
		span.End()

		Expect(shutdown(ctx)).To(Succeed())
	})

	It("should reject unknown exporters", func(ctx SpecContext) {
		_, err := tracing.Setup(ctx, tracing.Config{Exporter: "zipkin"})
		Expect(err).To(MatchError(ContainSubstring(`unknown trace exporter "zipkin"`)))
	})
})

var _ = Describe("AttachSpanAnnotationMiddleware", func() {
	var (
		recorder *tracetest.SpanRecorder
		provider *sdktrace.TracerProvider
		stack    *middleware.Stack
	)

	BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		provider = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		stack = middleware.NewStack("test", smithyhttp.NewStackRequest)
		Expect(tracing.AttachSpanAnnotationMiddleware(stack, "S3 Control")).To(Succeed())
	})

	run := func(ctx context.Context, terminal middleware.FinalizeHandlerFunc) error {
		m, ok := stack.Finalize.Get("SpanAnnotation")
		Expect(ok).To(BeTrue())

		req := smithyhttp.NewStackRequest().(*smithyhttp.Request)
		req.URL = &url.URL{Scheme: "https", Host: "123456789012.s3-control.example.com"}
		req.Header.Set("x-amz-account-id", "123456789012")

		ctx, span := provider.Tracer("test").Start(ctx, "S3 Control.ListJobs")
		_, _, err := m.HandleFinalize(ctx, middleware.FinalizeInput{Request: req}, terminal)
		span.End()
		return err
	}

	It("should record the account, host and request id", func(ctx SpecContext) {
		err := run(ctx, func(context.Context, middleware.FinalizeInput) (middleware.FinalizeOutput, middleware.Metadata, error) {
			var md middleware.Metadata
			awsmiddleware.SetRequestIDMetadata(&md, "req-1")
			return middleware.FinalizeOutput{}, md, nil
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(recorder.Ended()).To(HaveLen(1))
		attrs := recorder.Ended()[0].Attributes()
		Expect(attrs).To(ContainElements(
			attribute.String("rpc.service", "S3 Control"),
			attribute.String("aws.account_id", "123456789012"),
			attribute.String("server.address", "123456789012.s3-control.example.com"),
			attribute.String("aws.request_id", "req-1"),
		))
		Expect(recorder.Ended()[0].Status().Code).To(Equal(codes.Unset))
	})

	It("should mark the span as failed", func(ctx SpecContext) {
		err := run(ctx, func(context.Context, middleware.FinalizeInput) (middleware.FinalizeOutput, middleware.Metadata, error) {
			return middleware.FinalizeOutput{}, middleware.Metadata{}, errors.New("AccessDenied")
		})
		Expect(err).To(MatchError("AccessDenied"))

		Expect(recorder.Ended()[0].Status().Code).To(Equal(codes.Error))
		Expect(recorder.Ended()[0].Events()).NotTo(BeEmpty())
	})

	It("should be installable through SDK API options", func() {
		var apiOptions []func(*middleware.Stack) error
		tracing.AppendMiddlewares(&apiOptions, "S3 Control")
		Expect(len(apiOptions)).To(BeNumerically(">=", 2))
	})
})
