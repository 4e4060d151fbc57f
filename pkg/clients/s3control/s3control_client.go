package s3controlclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/metrics"
	"github.com/scality/s3control-cli/pkg/tracing"
	"github.com/scality/s3control-cli/pkg/util"
)

const serviceName = "S3 Control"

// S3ControlAPI is the subset of the S3 Control API exposed as cmdlets.
type S3ControlAPI interface {
	CreateAccessGrant(ctx context.Context, input *s3control.CreateAccessGrantInput, opts ...func(*s3control.Options)) (*s3control.CreateAccessGrantOutput, error)
	ListAccessGrants(ctx context.Context, input *s3control.ListAccessGrantsInput, opts ...func(*s3control.Options)) (*s3control.ListAccessGrantsOutput, error)
	DeleteAccessGrant(ctx context.Context, input *s3control.DeleteAccessGrantInput, opts ...func(*s3control.Options)) (*s3control.DeleteAccessGrantOutput, error)

	CreateAccessPoint(ctx context.Context, input *s3control.CreateAccessPointInput, opts ...func(*s3control.Options)) (*s3control.CreateAccessPointOutput, error)
	ListAccessPoints(ctx context.Context, input *s3control.ListAccessPointsInput, opts ...func(*s3control.Options)) (*s3control.ListAccessPointsOutput, error)
	DeleteAccessPoint(ctx context.Context, input *s3control.DeleteAccessPointInput, opts ...func(*s3control.Options)) (*s3control.DeleteAccessPointOutput, error)
	PutAccessPointPolicy(ctx context.Context, input *s3control.PutAccessPointPolicyInput, opts ...func(*s3control.Options)) (*s3control.PutAccessPointPolicyOutput, error)

	CreateBucket(ctx context.Context, input *s3control.CreateBucketInput, opts ...func(*s3control.Options)) (*s3control.CreateBucketOutput, error)
	ListRegionalBuckets(ctx context.Context, input *s3control.ListRegionalBucketsInput, opts ...func(*s3control.Options)) (*s3control.ListRegionalBucketsOutput, error)
	DeleteBucket(ctx context.Context, input *s3control.DeleteBucketInput, opts ...func(*s3control.Options)) (*s3control.DeleteBucketOutput, error)
	PutBucketPolicy(ctx context.Context, input *s3control.PutBucketPolicyInput, opts ...func(*s3control.Options)) (*s3control.PutBucketPolicyOutput, error)
	PutBucketReplication(ctx context.Context, input *s3control.PutBucketReplicationInput, opts ...func(*s3control.Options)) (*s3control.PutBucketReplicationOutput, error)

	CreateJob(ctx context.Context, input *s3control.CreateJobInput, opts ...func(*s3control.Options)) (*s3control.CreateJobOutput, error)
	ListJobs(ctx context.Context, input *s3control.ListJobsInput, opts ...func(*s3control.Options)) (*s3control.ListJobsOutput, error)
	DescribeJob(ctx context.Context, input *s3control.DescribeJobInput, opts ...func(*s3control.Options)) (*s3control.DescribeJobOutput, error)
	UpdateJobStatus(ctx context.Context, input *s3control.UpdateJobStatusInput, opts ...func(*s3control.Options)) (*s3control.UpdateJobStatusOutput, error)

	CreateMultiRegionAccessPoint(ctx context.Context, input *s3control.CreateMultiRegionAccessPointInput, opts ...func(*s3control.Options)) (*s3control.CreateMultiRegionAccessPointOutput, error)
	ListMultiRegionAccessPoints(ctx context.Context, input *s3control.ListMultiRegionAccessPointsInput, opts ...func(*s3control.Options)) (*s3control.ListMultiRegionAccessPointsOutput, error)
	DeleteMultiRegionAccessPoint(ctx context.Context, input *s3control.DeleteMultiRegionAccessPointInput, opts ...func(*s3control.Options)) (*s3control.DeleteMultiRegionAccessPointOutput, error)

	CreateStorageLensGroup(ctx context.Context, input *s3control.CreateStorageLensGroupInput, opts ...func(*s3control.Options)) (*s3control.CreateStorageLensGroupOutput, error)
	ListStorageLensGroups(ctx context.Context, input *s3control.ListStorageLensGroupsInput, opts ...func(*s3control.Options)) (*s3control.ListStorageLensGroupsOutput, error)
	DeleteStorageLensGroup(ctx context.Context, input *s3control.DeleteStorageLensGroupInput, opts ...func(*s3control.Options)) (*s3control.DeleteStorageLensGroupOutput, error)

	PutStorageLensConfiguration(ctx context.Context, input *s3control.PutStorageLensConfigurationInput, opts ...func(*s3control.Options)) (*s3control.PutStorageLensConfigurationOutput, error)
	ListStorageLensConfigurations(ctx context.Context, input *s3control.ListStorageLensConfigurationsInput, opts ...func(*s3control.Options)) (*s3control.ListStorageLensConfigurationsOutput, error)
	DeleteStorageLensConfiguration(ctx context.Context, input *s3control.DeleteStorageLensConfigurationInput, opts ...func(*s3control.Options)) (*s3control.DeleteStorageLensConfigurationOutput, error)
}

type S3ControlClient struct {
	S3ControlService S3ControlAPI
	// Endpoint is the configured base endpoint, empty for the AWS default.
	Endpoint string
}

var LoadAWSConfig = config.LoadDefaultConfig

var InitS3ControlClient = func(ctx context.Context, params util.StorageClientParameters) (*S3ControlClient, error) {
	awsCfg, err := LoadAWSConfig(ctx, util.LoadOptions(params, params.Endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if metrics.S3ControlRequestDuration != nil {
		awsCfg.APIOptions = append(awsCfg.APIOptions,
			metrics.WithPrometheusMiddleware(metrics.S3ControlRequestDuration, metrics.S3ControlRequestsTotal))
	}
	tracing.AppendMiddlewares(&awsCfg.APIOptions, serviceName)

	client := s3control.NewFromConfig(awsCfg, func(o *s3control.Options) {
		if params.Endpoint != "" {
			o.BaseEndpoint = aws.String(params.Endpoint)
		}
	})

	klog.V(constants.LvlDebug).InfoS("S3 Control client initialized", "endpoint", params.Endpoint, "region", params.Region)
	return &S3ControlClient{
		S3ControlService: client,
		Endpoint:         params.Endpoint,
	}, nil
}
