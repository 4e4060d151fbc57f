// Package osperrors classifies Object Storage Provider (OSP) errors.
// OSP refers to S3 Control, S3 and IAM services that implement AWS-style APIs.
// Errors are mapped to gRPC status codes, which in turn select the process
// exit code. The error itself is never rewritten: callers surface the
// provider's message unchanged.
package osperrors

import (
	"context"
	"errors"
	"net"
	"net/http"

	smithy "github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

// ObjectStorageProviderError represents metadata for object storage provider error mapping
type ObjectStorageProviderError struct {
	GRPCCode   codes.Code
	LogMessage string
}

// httpStatusCodes classifies API errors whose code is not in a table.
var httpStatusCodes = map[int]codes.Code{
	http.StatusBadRequest:          codes.InvalidArgument,
	http.StatusUnauthorized:        codes.Unauthenticated,
	http.StatusForbidden:           codes.PermissionDenied,
	http.StatusNotFound:            codes.NotFound,
	http.StatusConflict:            codes.AlreadyExists,
	http.StatusPreconditionFailed:  codes.FailedPrecondition,
	http.StatusTooManyRequests:     codes.ResourceExhausted,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
	http.StatusInternalServerError: codes.Internal,
}

// TranslateObjectStorageProviderError classifies err into a gRPC status code
// and logs it with structured fields. Errors carrying a gRPC status keep their
// code. A nil error is codes.OK.
func TranslateObjectStorageProviderError(action, resourceName, provider string, err error, errorTable map[string]ObjectStorageProviderError) codes.Code {
	if err == nil {
		return codes.OK
	}

	if s, ok := status.FromError(err); ok {
		return s.Code()
	}

	switch {
	case errors.Is(err, context.Canceled):
		klog.V(constants.LvlDefault).InfoS("Operation canceled", "action", action, "resourceName", resourceName)
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		var netErr net.Error
		if errors.As(err, &netErr) {
			klog.V(constants.LvlInfo).InfoS("Network failure", "action", action, "resourceName", resourceName, "provider", provider, "error", err)
			return codes.Unavailable
		}
		klog.V(constants.LvlInfo).InfoS("Unhandled error", "action", action, "resourceName", resourceName, "provider", provider, "error", err)
		return codes.Internal
	}

	errorCode := apiErr.ErrorCode()
	meta, ok := errorTable[errorCode]
	if !ok {
		code := codes.Unknown
		var respErr *smithyhttp.ResponseError
		if errors.As(err, &respErr) {
			if c, found := httpStatusCodes[respErr.HTTPStatusCode()]; found {
				code = c
			}
		}
		klog.V(constants.LvlInfo).InfoS("Unrecognized error code",
			"action", action,
			"resourceName", resourceName,
			"provider", provider,
			"errorCode", errorCode,
			"code", code)
		return code
	}

	klog.V(constants.LvlInfo).InfoS(meta.LogMessage,
		"resourceName", resourceName,
		"action", action,
		"provider", provider,
		"errorCode", errorCode)
	return meta.GRPCCode
}

// ExitCode maps a status code onto the process exit code.
func ExitCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return constants.ExitOK
	case codes.InvalidArgument, codes.OutOfRange:
		return constants.ExitValidation
	case codes.NotFound:
		return constants.ExitNotFound
	case codes.PermissionDenied, codes.Unauthenticated:
		return constants.ExitPermissionDenied
	case codes.AlreadyExists, codes.Aborted, codes.FailedPrecondition:
		return constants.ExitConflict
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return constants.ExitUnavailable
	}
	return constants.ExitGeneric
}
