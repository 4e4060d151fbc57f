package commands

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	"github.com/spf13/cobra"

	s3controlclient "github.com/scality/s3control-cli/pkg/clients/s3control"
	"github.com/scality/s3control-cli/pkg/cmdlet"
	"github.com/scality/s3control-cli/pkg/constants"
)

const (
	paramName                  = "name"
	paramBucket                = "bucket"
	paramBucketAccountID       = "bucket-account-id"
	paramVpcID                 = "vpc-configuration.vpc-id"
	paramBlockPublicAcls       = "public-access-block-configuration.block-public-acls"
	paramIgnorePublicAcls      = "public-access-block-configuration.ignore-public-acls"
	paramBlockPublicPolicy     = "public-access-block-configuration.block-public-policy"
	paramRestrictPublicBuckets = "public-access-block-configuration.restrict-public-buckets"
	paramPolicy                = "policy"
)

// publicAccessBlockParams are shared by every request carrying a
// PublicAccessBlockConfiguration.
var publicAccessBlockParams = []cmdlet.Parameter{
	{Name: paramBlockPublicAcls, Kind: cmdlet.KindBool, Usage: "reject requests granting public ACLs", Aliases: []string{"block-public-acls"}},
	{Name: paramIgnorePublicAcls, Kind: cmdlet.KindBool, Usage: "ignore public ACLs", Aliases: []string{"ignore-public-acls"}},
	{Name: paramBlockPublicPolicy, Kind: cmdlet.KindBool, Usage: "reject public bucket policies", Aliases: []string{"block-public-policy"}},
	{Name: paramRestrictPublicBuckets, Kind: cmdlet.KindBool, Usage: "restrict access to buckets with public policies", Aliases: []string{"restrict-public-buckets"}},
}

func publicAccessBlock(p *cmdlet.ParameterSet) *types.PublicAccessBlockConfiguration {
	return &types.PublicAccessBlockConfiguration{
		BlockPublicAcls:       p.Bool(paramBlockPublicAcls),
		IgnorePublicAcls:      p.Bool(paramIgnorePublicAcls),
		BlockPublicPolicy:     p.Bool(paramBlockPublicPolicy),
		RestrictPublicBuckets: p.Bool(paramRestrictPublicBuckets),
	}
}

func newAccessPointCommand(env *Env) *cobra.Command {
	return group("access-point", "Manage bucket access points",
		newCommand(env, definition[s3control.CreateAccessPointInput, s3control.CreateAccessPointOutput]{
			Use:   "create",
			Short: "Create an access point for a bucket",
			Example: `  s3ctl access-point create --account-id 123456789012 --name logs-ap --bucket logs
  s3ctl access-point create --name private-ap --bucket logs --vpc-configuration.vpc-id vpc-1a2b3c --block-public-acls`,
			Resource: paramName,
			Params: append([]cmdlet.Parameter{
				accountIDParam,
				{Name: paramName, Kind: cmdlet.KindString, Usage: "access point name", Required: true},
				{Name: paramBucket, Kind: cmdlet.KindString, Usage: "bucket the access point is attached to", Required: true},
				{Name: paramBucketAccountID, Kind: cmdlet.KindString, Usage: "account id of the bucket owner"},
				{Name: paramVpcID, Kind: cmdlet.KindString, Usage: "restrict the access point to this VPC", Aliases: []string{"vpc-id"}},
			}, publicAccessBlockParams...),
			Operation: cmdlet.Operation[s3control.CreateAccessPointInput, s3control.CreateAccessPointOutput]{
				Name:     "CreateAccessPoint",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.CreateAccessPointInput, error) {
					return &s3control.CreateAccessPointInput{
						AccountId:                      p.String(constants.FlagAccountID),
						Name:                           p.String(paramName),
						Bucket:                         p.String(paramBucket),
						BucketAccountId:                p.String(paramBucketAccountID),
						VpcConfiguration:               &types.VpcConfiguration{VpcId: p.String(paramVpcID)},
						PublicAccessBlockConfiguration: publicAccessBlock(p),
					}, nil
				},
				Target: func(in *s3control.CreateAccessPointInput) string { return target(in.Bucket, in.Name) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.CreateAccessPoint),
				Output: "AccessPointArn",
			},
		}),
		newCommand(env, definition[s3control.ListAccessPointsInput, s3control.ListAccessPointsOutput]{
			Use:     "list",
			Short:   "List access points",
			Example: "  s3ctl access-point list --account-id 123456789012 --bucket logs --select AccessPointList.Name",
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramBucket, Kind: cmdlet.KindString, Usage: "only access points attached to this bucket"},
				maxResultsParam,
				nextTokenParam,
			},
			Operation: cmdlet.Operation[s3control.ListAccessPointsInput, s3control.ListAccessPointsOutput]{
				Name: "ListAccessPoints",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.ListAccessPointsInput, error) {
					return &s3control.ListAccessPointsInput{
						AccountId:  p.String(constants.FlagAccountID),
						Bucket:     p.String(paramBucket),
						MaxResults: aws.ToInt32(p.Int32(constants.FlagMaxResults)),
						NextToken:  p.String(constants.FlagNextToken),
					}, nil
				},
				Call:      sdk(env, s3controlclient.S3ControlAPI.ListAccessPoints),
				Output:    "AccessPointList",
				NextToken: func(out *s3control.ListAccessPointsOutput) *string { return out.NextToken },
				SetToken:  func(in *s3control.ListAccessPointsInput, token *string) { in.NextToken = token },
			},
		}),
		newCommand(env, definition[s3control.DeleteAccessPointInput, s3control.DeleteAccessPointOutput]{
			Use:      "delete",
			Short:    "Delete an access point",
			Example:  "  s3ctl access-point delete --account-id 123456789012 --name logs-ap",
			Resource: paramName,
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramName, Kind: cmdlet.KindString, Usage: "access point name or ARN", Required: true},
			},
			Operation: cmdlet.Operation[s3control.DeleteAccessPointInput, s3control.DeleteAccessPointOutput]{
				Name:     "DeleteAccessPoint",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.DeleteAccessPointInput, error) {
					return &s3control.DeleteAccessPointInput{
						AccountId: p.String(constants.FlagAccountID),
						Name:      p.String(paramName),
					}, nil
				},
				Target: func(in *s3control.DeleteAccessPointInput) string { return target(in.Name) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.DeleteAccessPoint),
			},
		}),
		newCommand(env, definition[s3control.PutAccessPointPolicyInput, s3control.PutAccessPointPolicyOutput]{
			Use:      "put-policy",
			Short:    "Replace the policy of an access point",
			Example:  "  s3ctl access-point put-policy --account-id 123456789012 --name logs-ap --policy file://policy.json",
			Resource: paramName,
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramName, Kind: cmdlet.KindString, Usage: "access point name or ARN", Required: true},
				{Name: paramPolicy, Kind: cmdlet.KindJSON, Usage: "policy document, inline or file://path", Required: true},
			},
			Operation: cmdlet.Operation[s3control.PutAccessPointPolicyInput, s3control.PutAccessPointPolicyOutput]{
				Name:     "PutAccessPointPolicy",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.PutAccessPointPolicyInput, error) {
					policy, err := cmdlet.Document(p, paramPolicy)
					if err != nil {
						return nil, err
					}
					return &s3control.PutAccessPointPolicyInput{
						AccountId: p.String(constants.FlagAccountID),
						Name:      p.String(paramName),
						Policy:    policy,
					}, nil
				},
				Target: func(in *s3control.PutAccessPointPolicyInput) string { return target(in.Name) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.PutAccessPointPolicy),
			},
		}),
	)
}
