package util

import (
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go/logging"
)

// LoadOptions returns the SDK configuration options shared by every client
// built from params and sent to endpoint.
func LoadOptions(params StorageClientParameters, endpoint string) []func(*config.LoadOptions) error {
	var logger logging.Logger
	if params.Debug {
		logger = logging.NewStandardLogger(os.Stderr)
	} else {
		logger = nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(params.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(params.AccessKeyID, params.SecretAccessKey, "")),
		config.WithHTTPClient(NewHTTPClient(endpoint, params.TLSCert)),
		config.WithLogger(logger),
	}
	if params.Debug {
		opts = append(opts, config.WithClientLogMode(aws.LogRequest|aws.LogResponse|aws.LogRetries))
	}
	if params.NoRetry {
		opts = append(opts, config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }))
	}
	return opts
}
