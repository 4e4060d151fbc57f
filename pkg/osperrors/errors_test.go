package osperrors_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	smithy "github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/osperrors"
)

// Mock smithy.APIError implementation
type mockAPIError struct {
	code    string
	message string
	fault   smithy.ErrorFault
}

func (e *mockAPIError) Error() string {
	return e.message
}

func (e *mockAPIError) ErrorCode() string {
	return e.code
}

func (e *mockAPIError) ErrorMessage() string {
	return e.message
}

func (e *mockAPIError) ErrorFault() smithy.ErrorFault {
	return e.fault
}

// responseError builds an SDK error as returned for a failed HTTP exchange.
func responseError(statusCode int, apiErr error) error {
	return &smithy.OperationError{
		ServiceID:     "S3 Control",
		OperationName: "DescribeJob",
		Err: &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: statusCode}},
				Err:      apiErr,
			},
			RequestID: "req-1",
		},
	}
}

var _ = Describe("TranslateObjectStorageProviderError", func() {
	var testErrorTable map[string]osperrors.ObjectStorageProviderError

	BeforeEach(func() {
		testErrorTable = map[string]osperrors.ObjectStorageProviderError{
			"TestAlreadyExists": {GRPCCode: codes.AlreadyExists, LogMessage: "Resource already exists"},
			"TestAccessDenied":  {GRPCCode: codes.PermissionDenied, LogMessage: "Access denied"},
		}
	})

	It("should return OK for a nil error", func() {
		Expect(osperrors.TranslateObjectStorageProviderError("CreateJob", "job", "Test", nil, testErrorTable)).To(Equal(codes.OK))
	})

	It("should map known error codes through the table", func() {
		err := &mockAPIError{code: "TestAlreadyExists", message: "exists"}
		Expect(osperrors.TranslateObjectStorageProviderError("CreateJob", "job", "Test", err, testErrorTable)).To(Equal(codes.AlreadyExists))
	})

	It("should find API errors wrapped by the SDK", func() {
		err := responseError(http.StatusForbidden, &mockAPIError{code: "TestAccessDenied", message: "denied"})
		Expect(osperrors.TranslateObjectStorageProviderError("CreateJob", "job", "Test", err, testErrorTable)).To(Equal(codes.PermissionDenied))
	})

	It("should fall back to the HTTP status for unknown codes", func() {
		err := responseError(http.StatusNotFound, &mockAPIError{code: "SomethingNew", message: "gone"})
		Expect(osperrors.TranslateObjectStorageProviderError("DescribeJob", "job", "Test", err, testErrorTable)).To(Equal(codes.NotFound))
	})

	It("should return Unknown for unknown codes without a response", func() {
		err := &mockAPIError{code: "SomethingNew", message: "unknown"}
		Expect(osperrors.TranslateObjectStorageProviderError("DescribeJob", "job", "Test", err, testErrorTable)).To(Equal(codes.Unknown))
	})

	It("should keep the code of errors carrying a status", func() {
		err := fmt.Errorf("wrapped: %w", status.Error(codes.InvalidArgument, "bad flag"))
		Expect(osperrors.TranslateObjectStorageProviderError("ListJobs", "", "Test", err, testErrorTable)).To(Equal(codes.InvalidArgument))
	})

	It("should classify cancellation and deadlines", func() {
		Expect(osperrors.TranslateObjectStorageProviderError("ListJobs", "", "Test", context.Canceled, testErrorTable)).To(Equal(codes.Canceled))
		Expect(osperrors.TranslateObjectStorageProviderError("ListJobs", "", "Test",
			fmt.Errorf("send: %w", context.DeadlineExceeded), testErrorTable)).To(Equal(codes.DeadlineExceeded))
	})

	It("should classify network failures as unavailable", func() {
		err := &smithy.OperationError{
			ServiceID:     "S3 Control",
			OperationName: "ListJobs",
			Err:           &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
		}
		Expect(osperrors.TranslateObjectStorageProviderError("ListJobs", "", "Test", err, testErrorTable)).To(Equal(codes.Unavailable))
	})

	It("should classify other errors as internal", func() {
		Expect(osperrors.TranslateObjectStorageProviderError("ListJobs", "", "Test", errors.New("boom"), testErrorTable)).To(Equal(codes.Internal))
	})
})

var _ = DescribeTable("ExitCode",
	func(code codes.Code, exit int) {
		Expect(osperrors.ExitCode(code)).To(Equal(exit))
	},
	Entry("success", codes.OK, constants.ExitOK),
	Entry("validation", codes.InvalidArgument, constants.ExitValidation),
	Entry("not found", codes.NotFound, constants.ExitNotFound),
	Entry("permission denied", codes.PermissionDenied, constants.ExitPermissionDenied),
	Entry("unauthenticated", codes.Unauthenticated, constants.ExitPermissionDenied),
	Entry("already exists", codes.AlreadyExists, constants.ExitConflict),
	Entry("failed precondition", codes.FailedPrecondition, constants.ExitConflict),
	Entry("unavailable", codes.Unavailable, constants.ExitUnavailable),
	Entry("throttled", codes.ResourceExhausted, constants.ExitUnavailable),
	Entry("internal", codes.Internal, constants.ExitGeneric),
	Entry("canceled", codes.Canceled, constants.ExitGeneric),
)
