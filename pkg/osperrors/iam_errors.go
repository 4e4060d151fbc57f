package osperrors

import (
	"google.golang.org/grpc/codes"
)

// IAMErrorTable maps AWS IAM error codes to gRPC codes.
// Error codes match those returned by AWS SDK's smithy.APIError.ErrorCode().
var IAMErrorTable = map[string]ObjectStorageProviderError{
	// NotFound: user does not exist
	"NoSuchEntity": {GRPCCode: codes.NotFound, LogMessage: "IAM entity does not exist"},

	// InvalidArgument: client specified invalid argument
	"InvalidInput":    {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid input parameters"},
	"ValidationError": {GRPCCode: codes.InvalidArgument, LogMessage: "Request validation failed"},

	// PermissionDenied / Unauthenticated
	"AccessDenied":          {GRPCCode: codes.PermissionDenied, LogMessage: "Access denied for IAM operation"},
	"UnauthorizedOperation": {GRPCCode: codes.PermissionDenied, LogMessage: "Operation not authorized"},
	"InvalidClientTokenId":  {GRPCCode: codes.Unauthenticated, LogMessage: "Invalid access key"},
	"SignatureDoesNotMatch": {GRPCCode: codes.Unauthenticated, LogMessage: "Request signature does not match"},

	// ResourceExhausted: resource quota exceeded
	"Throttling":    {GRPCCode: codes.ResourceExhausted, LogMessage: "IAM request throttled - rate limit exceeded"},
	"LimitExceeded": {GRPCCode: codes.ResourceExhausted, LogMessage: "IAM service limit exceeded"},

	// Unavailable: service temporarily unavailable
	"ServiceUnavailable": {GRPCCode: codes.Unavailable, LogMessage: "IAM service temporarily unavailable"},

	// Internal: internal service error
	"ServiceFailure": {GRPCCode: codes.Internal, LogMessage: "IAM service internal failure"},
}

// TranslateIAMError classifies AWS IAM errors.
func TranslateIAMError(action, userName string, err error) codes.Code {
	return TranslateObjectStorageProviderError(action, userName, "IAM", err, IAMErrorTable)
}
