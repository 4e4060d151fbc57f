package iamclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/metrics"
	"github.com/scality/s3control-cli/pkg/tracing"
	"github.com/scality/s3control-cli/pkg/util"
)

type IAMAPI interface {
	GetUser(ctx context.Context, input *iam.GetUserInput, opts ...func(*iam.Options)) (*iam.GetUserOutput, error)
}

type IAMClient struct {
	IAMService IAMAPI
}

var LoadAWSConfig = config.LoadDefaultConfig

var InitIAMClient = func(ctx context.Context, params util.StorageClientParameters) (*IAMClient, error) {
	endpoint := params.IAMBaseEndpoint()

	awsCfg, err := LoadAWSConfig(ctx, util.LoadOptions(params, endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if metrics.IAMRequestDuration != nil {
		awsCfg.APIOptions = append(awsCfg.APIOptions,
			metrics.WithPrometheusMiddleware(metrics.IAMRequestDuration, metrics.IAMRequestsTotal))
	}
	tracing.AppendMiddlewares(&awsCfg.APIOptions, "IAM")

	iamClient := iam.NewFromConfig(awsCfg, func(o *iam.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &IAMClient{
		IAMService: iamClient,
	}, nil
}

// ResolveAccountID returns the account owning the caller's credentials, read
// from the ARN of the calling user.
func (client *IAMClient) ResolveAccountID(ctx context.Context) (string, error) {
	output, err := client.IAMService.GetUser(ctx, &iam.GetUserInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get calling IAM user: %w", err)
	}

	accountID, err := accountFromUser(output.User)
	if err != nil {
		return "", err
	}

	klog.V(constants.LvlEvent).InfoS("Account id resolved", "accountID", accountID)
	return accountID, nil
}

// UserArn returns the ARN of the IAM user userName.
func (client *IAMClient) UserArn(ctx context.Context, userName string) (string, error) {
	output, err := client.IAMService.GetUser(ctx, &iam.GetUserInput{UserName: &userName})
	if err != nil {
		var noSuchEntityErr *types.NoSuchEntityException
		if errors.As(err, &noSuchEntityErr) {
			return "", fmt.Errorf("IAM user %s does not exist: %w", userName, err)
		}
		return "", fmt.Errorf("failed to get IAM user %s: %w", userName, err)
	}
	if output.User == nil || aws.ToString(output.User.Arn) == "" {
		return "", fmt.Errorf("IAM user %s has no ARN", userName)
	}

	klog.V(constants.LvlEvent).InfoS("IAM user resolved", "user", userName, "arn", *output.User.Arn)
	return *output.User.Arn, nil
}

func accountFromUser(user *types.User) (string, error) {
	if user == nil || aws.ToString(user.Arn) == "" {
		return "", errors.New("IAM did not return the calling user's ARN")
	}
	parsed, err := arn.Parse(*user.Arn)
	if err != nil {
		return "", fmt.Errorf("invalid IAM user ARN %q: %w", *user.Arn, err)
	}
	if parsed.AccountID == "" {
		return "", fmt.Errorf("IAM user ARN %q has no account id", *user.Arn)
	}
	return parsed.AccountID, nil
}
