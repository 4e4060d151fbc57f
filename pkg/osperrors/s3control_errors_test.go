package osperrors_test

import (
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"

	"github.com/scality/s3control-cli/pkg/osperrors"
)

var _ = Describe("S3 Control Error Translation", func() {
	DescribeTable("TranslateS3ControlError",
		func(err error, expected codes.Code) {
			Expect(osperrors.TranslateS3ControlError("Operation", "resource", err)).To(Equal(expected))
		},
		Entry("modeled BucketAlreadyExists", &types.BucketAlreadyExists{}, codes.AlreadyExists),
		Entry("modeled NotFoundException", &types.NotFoundException{}, codes.NotFound),
		Entry("modeled JobStatusException", &types.JobStatusException{}, codes.FailedPrecondition),
		Entry("modeled IdempotencyException", &types.IdempotencyException{}, codes.Aborted),
		Entry("modeled TooManyRequestsException", &types.TooManyRequestsException{}, codes.ResourceExhausted),
		Entry("modeled BadRequestException", &types.BadRequestException{}, codes.InvalidArgument),
		Entry("NoSuchAccessPoint", &mockAPIError{code: "NoSuchAccessPoint"}, codes.NotFound),
		Entry("NoSuchMultiRegionAccessPoint", &mockAPIError{code: "NoSuchMultiRegionAccessPoint"}, codes.NotFound),
		Entry("AccessDenied", &mockAPIError{code: "AccessDenied"}, codes.PermissionDenied),
		Entry("InvalidAccessKeyId", &mockAPIError{code: "InvalidAccessKeyId"}, codes.Unauthenticated),
		Entry("BucketNotEmpty", &mockAPIError{code: "BucketNotEmpty"}, codes.FailedPrecondition),
		Entry("MalformedPolicy", &mockAPIError{code: "MalformedPolicy"}, codes.InvalidArgument),
		Entry("ServiceUnavailable", &mockAPIError{code: "ServiceUnavailable"}, codes.Unavailable),
		Entry("RequestTimeout", &mockAPIError{code: "RequestTimeout"}, codes.DeadlineExceeded),
	)

	It("should never treat a missing resource as success", func() {
		for code, meta := range osperrors.S3ControlErrorTable {
			Expect(meta.GRPCCode).NotTo(Equal(codes.OK), code)
			Expect(meta.LogMessage).NotTo(BeEmpty(), code)
		}
	})
})
