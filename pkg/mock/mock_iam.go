package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// MockIAMClient simulates the behavior of an IAM client for testing purposes.
type MockIAMClient struct {
	GetUserFunc func(ctx context.Context, input *iam.GetUserInput, opts ...func(*iam.Options)) (*iam.GetUserOutput, error)
}

// GetUser retrieves a mock IAM user. Without a user name it returns the
// calling user.
func (m *MockIAMClient) GetUser(ctx context.Context, input *iam.GetUserInput, opts ...func(*iam.Options)) (*iam.GetUserOutput, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, input, opts...)
	}
	name := aws.ToString(input.UserName)
	if name == "" {
		name = "mock-caller"
	}
	return &iam.GetUserOutput{
		User: &types.User{
			UserName: aws.String(name),
			UserId:   aws.String("mock-user-id"),
			Arn:      aws.String("arn:aws:iam::123456789012:user/" + name),
		},
	}, nil
}
