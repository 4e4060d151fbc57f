package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MockS3Client simulates the behavior of an S3 client for testing.
type MockS3Client struct {
	HeadObjectFunc func(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// HeadObject executes the mock HeadObjectFunc if defined, otherwise returns a default response.
func (m *MockS3Client) HeadObject(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.HeadObjectFunc != nil {
		return m.HeadObjectFunc(ctx, input, opts...)
	}
	return &s3.HeadObjectOutput{ETag: aws.String(`"mock-etag"`)}, nil
}
