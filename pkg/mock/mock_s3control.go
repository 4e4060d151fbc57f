package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3control"
)

// MockS3ControlClient simulates the behavior of an S3 Control client for testing.
// Operations without a func set succeed with an empty response.
type MockS3ControlClient struct {
	CreateAccessGrantFunc              func(ctx context.Context, input *s3control.CreateAccessGrantInput, opts ...func(*s3control.Options)) (*s3control.CreateAccessGrantOutput, error)
	ListAccessGrantsFunc               func(ctx context.Context, input *s3control.ListAccessGrantsInput, opts ...func(*s3control.Options)) (*s3control.ListAccessGrantsOutput, error)
	DeleteAccessGrantFunc              func(ctx context.Context, input *s3control.DeleteAccessGrantInput, opts ...func(*s3control.Options)) (*s3control.DeleteAccessGrantOutput, error)
	CreateAccessPointFunc              func(ctx context.Context, input *s3control.CreateAccessPointInput, opts ...func(*s3control.Options)) (*s3control.CreateAccessPointOutput, error)
	ListAccessPointsFunc               func(ctx context.Context, input *s3control.ListAccessPointsInput, opts ...func(*s3control.Options)) (*s3control.ListAccessPointsOutput, error)
	DeleteAccessPointFunc              func(ctx context.Context, input *s3control.DeleteAccessPointInput, opts ...func(*s3control.Options)) (*s3control.DeleteAccessPointOutput, error)
	PutAccessPointPolicyFunc           func(ctx context.Context, input *s3control.PutAccessPointPolicyInput, opts ...func(*s3control.Options)) (*s3control.PutAccessPointPolicyOutput, error)
	CreateBucketFunc                   func(ctx context.Context, input *s3control.CreateBucketInput, opts ...func(*s3control.Options)) (*s3control.CreateBucketOutput, error)
	ListRegionalBucketsFunc            func(ctx context.Context, input *s3control.ListRegionalBucketsInput, opts ...func(*s3control.Options)) (*s3control.ListRegionalBucketsOutput, error)
	DeleteBucketFunc                   func(ctx context.Context, input *s3control.DeleteBucketInput, opts ...func(*s3control.Options)) (*s3control.DeleteBucketOutput, error)
	PutBucketPolicyFunc                func(ctx context.Context, input *s3control.PutBucketPolicyInput, opts ...func(*s3control.Options)) (*s3control.PutBucketPolicyOutput, error)
	PutBucketReplicationFunc           func(ctx context.Context, input *s3control.PutBucketReplicationInput, opts ...func(*s3control.Options)) (*s3control.PutBucketReplicationOutput, error)
	CreateJobFunc                      func(ctx context.Context, input *s3control.CreateJobInput, opts ...func(*s3control.Options)) (*s3control.CreateJobOutput, error)
	ListJobsFunc                       func(ctx context.Context, input *s3control.ListJobsInput, opts ...func(*s3control.Options)) (*s3control.ListJobsOutput, error)
	DescribeJobFunc                    func(ctx context.Context, input *s3control.DescribeJobInput, opts ...func(*s3control.Options)) (*s3control.DescribeJobOutput, error)
	UpdateJobStatusFunc                func(ctx context.Context, input *s3control.UpdateJobStatusInput, opts ...func(*s3control.Options)) (*s3control.UpdateJobStatusOutput, error)
	CreateMultiRegionAccessPointFunc   func(ctx context.Context, input *s3control.CreateMultiRegionAccessPointInput, opts ...func(*s3control.Options)) (*s3control.CreateMultiRegionAccessPointOutput, error)
	ListMultiRegionAccessPointsFunc    func(ctx context.Context, input *s3control.ListMultiRegionAccessPointsInput, opts ...func(*s3control.Options)) (*s3control.ListMultiRegionAccessPointsOutput, error)
	DeleteMultiRegionAccessPointFunc   func(ctx context.Context, input *s3control.DeleteMultiRegionAccessPointInput, opts ...func(*s3control.Options)) (*s3control.DeleteMultiRegionAccessPointOutput, error)
	CreateStorageLensGroupFunc         func(ctx context.Context, input *s3control.CreateStorageLensGroupInput, opts ...func(*s3control.Options)) (*s3control.CreateStorageLensGroupOutput, error)
	ListStorageLensGroupsFunc          func(ctx context.Context, input *s3control.ListStorageLensGroupsInput, opts ...func(*s3control.Options)) (*s3control.ListStorageLensGroupsOutput, error)
	DeleteStorageLensGroupFunc         func(ctx context.Context, input *s3control.DeleteStorageLensGroupInput, opts ...func(*s3control.Options)) (*s3control.DeleteStorageLensGroupOutput, error)
	PutStorageLensConfigurationFunc    func(ctx context.Context, input *s3control.PutStorageLensConfigurationInput, opts ...func(*s3control.Options)) (*s3control.PutStorageLensConfigurationOutput, error)
	ListStorageLensConfigurationsFunc  func(ctx context.Context, input *s3control.ListStorageLensConfigurationsInput, opts ...func(*s3control.Options)) (*s3control.ListStorageLensConfigurationsOutput, error)
	DeleteStorageLensConfigurationFunc func(ctx context.Context, input *s3control.DeleteStorageLensConfigurationInput, opts ...func(*s3control.Options)) (*s3control.DeleteStorageLensConfigurationOutput, error)
}

func (m *MockS3ControlClient) CreateAccessGrant(ctx context.Context, input *s3control.CreateAccessGrantInput, opts ...func(*s3control.Options)) (*s3control.CreateAccessGrantOutput, error) {
	if m.CreateAccessGrantFunc != nil {
		return m.CreateAccessGrantFunc(ctx, input, opts...)
	}
	return &s3control.CreateAccessGrantOutput{}, nil
}

func (m *MockS3ControlClient) ListAccessGrants(ctx context.Context, input *s3control.ListAccessGrantsInput, opts ...func(*s3control.Options)) (*s3control.ListAccessGrantsOutput, error) {
	if m.ListAccessGrantsFunc != nil {
		return m.ListAccessGrantsFunc(ctx, input, opts...)
	}
	return &s3control.ListAccessGrantsOutput{}, nil
}

func (m *MockS3ControlClient) DeleteAccessGrant(ctx context.Context, input *s3control.DeleteAccessGrantInput, opts ...func(*s3control.Options)) (*s3control.DeleteAccessGrantOutput, error) {
	if m.DeleteAccessGrantFunc != nil {
		return m.DeleteAccessGrantFunc(ctx, input, opts...)
	}
	return &s3control.DeleteAccessGrantOutput{}, nil
}

func (m *MockS3ControlClient) CreateAccessPoint(ctx context.Context, input *s3control.CreateAccessPointInput, opts ...func(*s3control.Options)) (*s3control.CreateAccessPointOutput, error) {
	if m.CreateAccessPointFunc != nil {
		return m.CreateAccessPointFunc(ctx, input, opts...)
	}
	return &s3control.CreateAccessPointOutput{}, nil
}

func (m *MockS3ControlClient) ListAccessPoints(ctx context.Context, input *s3control.ListAccessPointsInput, opts ...func(*s3control.Options)) (*s3control.ListAccessPointsOutput, error) {
	if m.ListAccessPointsFunc != nil {
		return m.ListAccessPointsFunc(ctx, input, opts...)
	}
	return &s3control.ListAccessPointsOutput{}, nil
}

func (m *MockS3ControlClient) DeleteAccessPoint(ctx context.Context, input *s3control.DeleteAccessPointInput, opts ...func(*s3control.Options)) (*s3control.DeleteAccessPointOutput, error) {
	if m.DeleteAccessPointFunc != nil {
		return m.DeleteAccessPointFunc(ctx, input, opts...)
	}
	return &s3control.DeleteAccessPointOutput{}, nil
}

func (m *MockS3ControlClient) PutAccessPointPolicy(ctx context.Context, input *s3control.PutAccessPointPolicyInput, opts ...func(*s3control.Options)) (*s3control.PutAccessPointPolicyOutput, error) {
	if m.PutAccessPointPolicyFunc != nil {
		return m.PutAccessPointPolicyFunc(ctx, input, opts...)
	}
	return &s3control.PutAccessPointPolicyOutput{}, nil
}

func (m *MockS3ControlClient) CreateBucket(ctx context.Context, input *s3control.CreateBucketInput, opts ...func(*s3control.Options)) (*s3control.CreateBucketOutput, error) {
	if m.CreateBucketFunc != nil {
		return m.CreateBucketFunc(ctx, input, opts...)
	}
	return &s3control.CreateBucketOutput{}, nil
}

func (m *MockS3ControlClient) ListRegionalBuckets(ctx context.Context, input *s3control.ListRegionalBucketsInput, opts ...func(*s3control.Options)) (*s3control.ListRegionalBucketsOutput, error) {
	if m.ListRegionalBucketsFunc != nil {
		return m.ListRegionalBucketsFunc(ctx, input, opts...)
	}
	return &s3control.ListRegionalBucketsOutput{}, nil
}

func (m *MockS3ControlClient) DeleteBucket(ctx context.Context, input *s3control.DeleteBucketInput, opts ...func(*s3control.Options)) (*s3control.DeleteBucketOutput, error) {
	if m.DeleteBucketFunc != nil {
		return m.DeleteBucketFunc(ctx, input, opts...)
	}
	return &s3control.DeleteBucketOutput{}, nil
}

func (m *MockS3ControlClient) PutBucketPolicy(ctx context.Context, input *s3control.PutBucketPolicyInput, opts ...func(*s3control.Options)) (*s3control.PutBucketPolicyOutput, error) {
	if m.PutBucketPolicyFunc != nil {
		return m.PutBucketPolicyFunc(ctx, input, opts...)
	}
	return &s3control.PutBucketPolicyOutput{}, nil
}

func (m *MockS3ControlClient) PutBucketReplication(ctx context.Context, input *s3control.PutBucketReplicationInput, opts ...func(*s3control.Options)) (*s3control.PutBucketReplicationOutput, error) {
	if m.PutBucketReplicationFunc != nil {
		return m.PutBucketReplicationFunc(ctx, input, opts...)
	}
	return &s3control.PutBucketReplicationOutput{}, nil
}

func (m *MockS3ControlClient) CreateJob(ctx context.Context, input *s3control.CreateJobInput, opts ...func(*s3control.Options)) (*s3control.CreateJobOutput, error) {
	if m.CreateJobFunc != nil {
		return m.CreateJobFunc(ctx, input, opts...)
	}
	return &s3control.CreateJobOutput{}, nil
}

func (m *MockS3ControlClient) ListJobs(ctx context.Context, input *s3control.ListJobsInput, opts ...func(*s3control.Options)) (*s3control.ListJobsOutput, error) {
	if m.ListJobsFunc != nil {
		return m.ListJobsFunc(ctx, input, opts...)
	}
	return &s3control.ListJobsOutput{}, nil
}

func (m *MockS3ControlClient) DescribeJob(ctx context.Context, input *s3control.DescribeJobInput, opts ...func(*s3control.Options)) (*s3control.DescribeJobOutput, error) {
	if m.DescribeJobFunc != nil {
		return m.DescribeJobFunc(ctx, input, opts...)
	}
	return &s3control.DescribeJobOutput{}, nil
}

func (m *MockS3ControlClient) UpdateJobStatus(ctx context.Context, input *s3control.UpdateJobStatusInput, opts ...func(*s3control.Options)) (*s3control.UpdateJobStatusOutput, error) {
	if m.UpdateJobStatusFunc != nil {
		return m.UpdateJobStatusFunc(ctx, input, opts...)
	}
	return &s3control.UpdateJobStatusOutput{}, nil
}

func (m *MockS3ControlClient) CreateMultiRegionAccessPoint(ctx context.Context, input *s3control.CreateMultiRegionAccessPointInput, opts ...func(*s3control.Options)) (*s3control.CreateMultiRegionAccessPointOutput, error) {
	if m.CreateMultiRegionAccessPointFunc != nil {
		return m.CreateMultiRegionAccessPointFunc(ctx, input, opts...)
	}
	return &s3control.CreateMultiRegionAccessPointOutput{}, nil
}

func (m *MockS3ControlClient) ListMultiRegionAccessPoints(ctx context.Context, input *s3control.ListMultiRegionAccessPointsInput, opts ...func(*s3control.Options)) (*s3control.ListMultiRegionAccessPointsOutput, error) {
	if m.ListMultiRegionAccessPointsFunc != nil {
		return m.ListMultiRegionAccessPointsFunc(ctx, input, opts...)
	}
	return &s3control.ListMultiRegionAccessPointsOutput{}, nil
}

func (m *MockS3ControlClient) DeleteMultiRegionAccessPoint(ctx context.Context, input *s3control.DeleteMultiRegionAccessPointInput, opts ...func(*s3control.Options)) (*s3control.DeleteMultiRegionAccessPointOutput, error) {
	if m.DeleteMultiRegionAccessPointFunc != nil {
		return m.DeleteMultiRegionAccessPointFunc(ctx, input, opts...)
	}
	return &s3control.DeleteMultiRegionAccessPointOutput{}, nil
}

func (m *MockS3ControlClient) CreateStorageLensGroup(ctx context.Context, input *s3control.CreateStorageLensGroupInput, opts ...func(*s3control.Options)) (*s3control.CreateStorageLensGroupOutput, error) {
	if m.CreateStorageLensGroupFunc != nil {
		return m.CreateStorageLensGroupFunc(ctx, input, opts...)
	}
	return &s3control.CreateStorageLensGroupOutput{}, nil
}

func (m *MockS3ControlClient) ListStorageLensGroups(ctx context.Context, input *s3control.ListStorageLensGroupsInput, opts ...func(*s3control.Options)) (*s3control.ListStorageLensGroupsOutput, error) {
	if m.ListStorageLensGroupsFunc != nil {
		return m.ListStorageLensGroupsFunc(ctx, input, opts...)
	}
	return &s3control.ListStorageLensGroupsOutput{}, nil
}

func (m *MockS3ControlClient) DeleteStorageLensGroup(ctx context.Context, input *s3control.DeleteStorageLensGroupInput, opts ...func(*s3control.Options)) (*s3control.DeleteStorageLensGroupOutput, error) {
	if m.DeleteStorageLensGroupFunc != nil {
		return m.DeleteStorageLensGroupFunc(ctx, input, opts...)
	}
	return &s3control.DeleteStorageLensGroupOutput{}, nil
}

func (m *MockS3ControlClient) PutStorageLensConfiguration(ctx context.Context, input *s3control.PutStorageLensConfigurationInput, opts ...func(*s3control.Options)) (*s3control.PutStorageLensConfigurationOutput, error) {
	if m.PutStorageLensConfigurationFunc != nil {
		return m.PutStorageLensConfigurationFunc(ctx, input, opts...)
	}
	return &s3control.PutStorageLensConfigurationOutput{}, nil
}

func (m *MockS3ControlClient) ListStorageLensConfigurations(ctx context.Context, input *s3control.ListStorageLensConfigurationsInput, opts ...func(*s3control.Options)) (*s3control.ListStorageLensConfigurationsOutput, error) {
	if m.ListStorageLensConfigurationsFunc != nil {
		return m.ListStorageLensConfigurationsFunc(ctx, input, opts...)
	}
	return &s3control.ListStorageLensConfigurationsOutput{}, nil
}

func (m *MockS3ControlClient) DeleteStorageLensConfiguration(ctx context.Context, input *s3control.DeleteStorageLensConfigurationInput, opts ...func(*s3control.Options)) (*s3control.DeleteStorageLensConfigurationOutput, error) {
	if m.DeleteStorageLensConfigurationFunc != nil {
		return m.DeleteStorageLensConfigurationFunc(ctx, input, opts...)
	}
	return &s3control.DeleteStorageLensConfigurationOutput{}, nil
}
