package osperrors

import (
	"google.golang.org/grpc/codes"
)

// S3ErrorTable maps AWS S3 error codes to gRPC codes.
// It classifies failures of the manifest lookup made for batch jobs.
var S3ErrorTable = map[string]ObjectStorageProviderError{
	// NotFound: HeadObject reports a bare status code
	"NoSuchBucket": {GRPCCode: codes.NotFound, LogMessage: "Manifest bucket does not exist"},
	"NoSuchKey":    {GRPCCode: codes.NotFound, LogMessage: "Manifest object does not exist"},
	"NotFound":     {GRPCCode: codes.NotFound, LogMessage: "Manifest object not found"},

	// PermissionDenied: caller lacks permission
	"AccessDenied": {GRPCCode: codes.PermissionDenied, LogMessage: "Access denied"},
	"Forbidden":    {GRPCCode: codes.PermissionDenied, LogMessage: "Access denied"},

	// Unauthenticated: invalid authentication credentials
	"InvalidAccessKeyId":    {GRPCCode: codes.Unauthenticated, LogMessage: "Invalid access key"},
	"SignatureDoesNotMatch": {GRPCCode: codes.Unauthenticated, LogMessage: "Request signature does not match"},

	// InvalidArgument: client specified invalid argument
	"InvalidBucketName": {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid bucket name"},
	"InvalidRequest":    {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid request"},

	// Unavailable / DeadlineExceeded / ResourceExhausted
	"ServiceUnavailable": {GRPCCode: codes.Unavailable, LogMessage: "Service temporarily unavailable"},
	"RequestTimeout":     {GRPCCode: codes.DeadlineExceeded, LogMessage: "Request timeout"},
	"SlowDown":           {GRPCCode: codes.ResourceExhausted, LogMessage: "Request throttled - slow down"},
}

// TranslateS3Error classifies AWS S3 errors.
func TranslateS3Error(action, objectName string, err error) codes.Code {
	return TranslateObjectStorageProviderError(action, objectName, "S3", err, S3ErrorTable)
}
