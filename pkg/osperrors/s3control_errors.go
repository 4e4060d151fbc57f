package osperrors

import (
	"google.golang.org/grpc/codes"
)

// S3ControlErrorTable maps S3 Control error codes to gRPC codes.
// Error codes match those returned by AWS SDK's smithy.APIError.ErrorCode().
var S3ControlErrorTable = map[string]ObjectStorageProviderError{
	// AlreadyExists: entity already exists
	"BucketAlreadyExists":          {GRPCCode: codes.AlreadyExists, LogMessage: "Bucket already exists"},
	"BucketAlreadyOwnedByYou":      {GRPCCode: codes.AlreadyExists, LogMessage: "Bucket already owned by you"},
	"AccessPointAlreadyOwnedByYou": {GRPCCode: codes.AlreadyExists, LogMessage: "Access point already owned by you"},
	"AccessGrantAlreadyExists":     {GRPCCode: codes.AlreadyExists, LogMessage: "Access grant already exists"},
	"ConflictException":            {GRPCCode: codes.AlreadyExists, LogMessage: "Conflicting resource"},

	// NotFound: resource does not exist
	"NoSuchBucket":                          {GRPCCode: codes.NotFound, LogMessage: "Bucket does not exist"},
	"NoSuchAccessPoint":                     {GRPCCode: codes.NotFound, LogMessage: "Access point does not exist"},
	"NoSuchMultiRegionAccessPoint":          {GRPCCode: codes.NotFound, LogMessage: "Multi-Region Access Point does not exist"},
	"NoSuchAccessGrant":                     {GRPCCode: codes.NotFound, LogMessage: "Access grant does not exist"},
	"NoSuchAccessGrantsInstance":            {GRPCCode: codes.NotFound, LogMessage: "Access Grants instance does not exist"},
	"NoSuchAccessGrantsLocation":            {GRPCCode: codes.NotFound, LogMessage: "Access Grants location does not exist"},
	"NoSuchConfiguration":                   {GRPCCode: codes.NotFound, LogMessage: "Storage Lens configuration does not exist"},
	"NoSuchPublicAccessBlockConfiguration":  {GRPCCode: codes.NotFound, LogMessage: "Public access block configuration does not exist"},
	"NoSuchAccessPointPolicy":               {GRPCCode: codes.NotFound, LogMessage: "Access point policy does not exist"},
	"NoSuchBucketPolicy":                    {GRPCCode: codes.NotFound, LogMessage: "Bucket policy does not exist"},
	"NoSuchTagSet":                          {GRPCCode: codes.NotFound, LogMessage: "Tag set does not exist"},
	"NotFoundException":                     {GRPCCode: codes.NotFound, LogMessage: "Resource not found"},
	"ResourceNotFoundException":             {GRPCCode: codes.NotFound, LogMessage: "Resource not found"},
	"NoSuchStorageLensGroup":                {GRPCCode: codes.NotFound, LogMessage: "Storage Lens group does not exist"},
	"ReplicationConfigurationNotFoundError": {GRPCCode: codes.NotFound, LogMessage: "Replication configuration does not exist"},

	// InvalidArgument: client specified invalid argument
	"BadRequestException":       {GRPCCode: codes.InvalidArgument, LogMessage: "Bad request"},
	"InvalidRequest":            {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid request"},
	"InvalidRequestException":   {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid request"},
	"InvalidArgument":           {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid argument"},
	"InvalidBucketName":         {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid bucket name"},
	"InvalidURI":                {GRPCCode: codes.InvalidArgument, LogMessage: "Invalid URI"},
	"MalformedXML":              {GRPCCode: codes.InvalidArgument, LogMessage: "Malformed XML in request"},
	"MalformedPolicy":           {GRPCCode: codes.InvalidArgument, LogMessage: "Malformed policy document"},
	"ValidationException":       {GRPCCode: codes.InvalidArgument, LogMessage: "Request validation failed"},
	"TooManyTagsException":      {GRPCCode: codes.InvalidArgument, LogMessage: "Too many tags"},
	"InvalidNextTokenException": {GRPCCode: codes.InvalidArgument, LogMessage: "Continuation token is invalid or expired"},

	// PermissionDenied / Unauthenticated
	"AccessDenied":          {GRPCCode: codes.PermissionDenied, LogMessage: "Access denied"},
	"AccessDeniedException": {GRPCCode: codes.PermissionDenied, LogMessage: "Access denied"},
	"InvalidAccessKeyId":    {GRPCCode: codes.Unauthenticated, LogMessage: "Invalid access key"},
	"SignatureDoesNotMatch": {GRPCCode: codes.Unauthenticated, LogMessage: "Request signature does not match"},
	"ExpiredToken":          {GRPCCode: codes.Unauthenticated, LogMessage: "Security token expired"},

	// FailedPrecondition: system not in required state
	"BucketNotEmpty":     {GRPCCode: codes.FailedPrecondition, LogMessage: "Bucket is not empty"},
	"JobStatusException": {GRPCCode: codes.FailedPrecondition, LogMessage: "Job status does not allow the transition"},
	"OperationAborted":   {GRPCCode: codes.Aborted, LogMessage: "Conflicting operation in progress"},
	"IdempotencyException": {
		GRPCCode:   codes.Aborted,
		LogMessage: "Client request token reused with different parameters",
	},

	// ResourceExhausted / Unavailable / DeadlineExceeded
	"TooManyRequestsException": {GRPCCode: codes.ResourceExhausted, LogMessage: "Request throttled - rate limit exceeded"},
	"Throttling":               {GRPCCode: codes.ResourceExhausted, LogMessage: "Request throttled - rate limit exceeded"},
	"SlowDown":                 {GRPCCode: codes.ResourceExhausted, LogMessage: "Request throttled - slow down"},
	"TooManyBuckets":           {GRPCCode: codes.ResourceExhausted, LogMessage: "Bucket limit exceeded"},
	"ServiceUnavailable":       {GRPCCode: codes.Unavailable, LogMessage: "Service temporarily unavailable"},
	"InternalServiceException": {GRPCCode: codes.Unavailable, LogMessage: "Service internal failure"},
	"RequestTimeout":           {GRPCCode: codes.DeadlineExceeded, LogMessage: "Request timeout"},
	"InternalError":            {GRPCCode: codes.Internal, LogMessage: "Internal server error"},
}

// TranslateS3ControlError classifies S3 Control errors.
func TranslateS3ControlError(action, resourceName string, err error) codes.Code {
	return TranslateObjectStorageProviderError(action, resourceName, "S3Control", err, S3ControlErrorTable)
}
