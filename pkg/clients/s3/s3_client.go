package s3client

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/metrics"
	"github.com/scality/s3control-cli/pkg/tracing"
	"github.com/scality/s3control-cli/pkg/util"
)

type S3API interface {
	HeadObject(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type S3Client struct {
	S3Service S3API
}

var LoadAWSConfig = config.LoadDefaultConfig

var InitS3Client = func(ctx context.Context, params util.StorageClientParameters) (*S3Client, error) {
	endpoint := params.S3BaseEndpoint()

	awsCfg, err := LoadAWSConfig(ctx, util.LoadOptions(params, endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	tracing.AppendMiddlewares(&awsCfg.APIOptions, "S3")

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3Client{
		S3Service: s3Client,
	}, nil
}

// ParseObjectArn splits an S3 object ARN such as arn:aws:s3:::bucket/key
// into its bucket and key.
func ParseObjectArn(objectArn string) (bucket, key string, err error) {
	parsed, err := arn.Parse(objectArn)
	if err != nil {
		return "", "", fmt.Errorf("invalid object ARN %q: %w", objectArn, err)
	}
	if parsed.Service != "s3" {
		return "", "", fmt.Errorf("invalid object ARN %q: service is %q, not s3", objectArn, parsed.Service)
	}
	bucket, key, ok := strings.Cut(parsed.Resource, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid object ARN %q: resource must be bucket/key", objectArn)
	}
	return bucket, key, nil
}

// ObjectETag returns the ETag of the object designated by objectArn, at
// versionID when it is not empty.
func (client *S3Client) ObjectETag(ctx context.Context, objectArn, versionID string) (string, error) {
	bucket, key, err := ParseObjectArn(objectArn)
	if err != nil {
		return "", err
	}

	metricStatus := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(duration float64) {
		if metrics.S3RequestDuration != nil {
			metrics.S3RequestDuration.WithLabelValues("HeadObject", metricStatus, "").Observe(duration)
		}
	}))
	defer timer.ObserveDuration()

	input := &s3.HeadObjectInput{Bucket: &bucket, Key: &key}
	if versionID != "" {
		input.VersionId = &versionID
	}

	output, err := client.S3Service.HeadObject(ctx, input)
	if err != nil {
		metricStatus = "error"
	}
	if metrics.S3RequestsTotal != nil {
		metrics.S3RequestsTotal.WithLabelValues("HeadObject", metricStatus, "").Inc()
	}
	if err != nil {
		return "", fmt.Errorf("failed to read manifest object %s: %w", objectArn, err)
	}

	etag := aws.ToString(output.ETag)
	klog.V(constants.LvlEvent).InfoS("Manifest ETag resolved", "bucket", bucket, "key", key, "etag", etag)
	return etag, nil
}
