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
	paramOutpostID                     = "outpost-id"
	paramACL                           = "acl"
	paramLocationConstraint            = "create-bucket-configuration.location-constraint"
	paramGrantFullControl              = "grant-full-control"
	paramGrantRead                     = "grant-read"
	paramGrantReadACP                  = "grant-read-acp"
	paramGrantWrite                    = "grant-write"
	paramGrantWriteACP                 = "grant-write-acp"
	paramObjectLockEnabled             = "object-lock-enabled-for-bucket"
	paramConfirmRemoveSelfBucketAccess = "confirm-remove-self-bucket-access"
	paramReplicationRole               = "replication-configuration.role"
	paramReplicationRules              = "replication-configuration.rules"
)

func newBucketCommand(env *Env) *cobra.Command {
	return group("bucket", "Manage Outposts buckets",
		newCommand(env, definition[s3control.CreateBucketInput, s3control.CreateBucketOutput]{
			Use:      "create",
			Short:    "Create an Outposts bucket",
			Example:  "  s3ctl bucket create --bucket logs --outpost-id op-01ac5d28a6a232904",
			Resource: paramBucket,
			Params: []cmdlet.Parameter{
				{Name: paramBucket, Kind: cmdlet.KindString, Usage: "bucket name", Required: true},
				{Name: paramOutpostID, Kind: cmdlet.KindString, Usage: "Outpost the bucket is created on"},
				{Name: paramACL, Kind: cmdlet.KindString, Usage: "canned ACL: private, public-read, public-read-write or authenticated-read"},
				{Name: paramLocationConstraint, Kind: cmdlet.KindString, Usage: "region the bucket is created in", Aliases: []string{"location-constraint"}},
				{Name: paramGrantFullControl, Kind: cmdlet.KindString, Usage: "grantees allowed full control"},
				{Name: paramGrantRead, Kind: cmdlet.KindString, Usage: "grantees allowed to list objects"},
				{Name: paramGrantReadACP, Kind: cmdlet.KindString, Usage: "grantees allowed to read the bucket ACL"},
				{Name: paramGrantWrite, Kind: cmdlet.KindString, Usage: "grantees allowed to create objects"},
				{Name: paramGrantWriteACP, Kind: cmdlet.KindString, Usage: "grantees allowed to write the bucket ACL"},
				{Name: paramObjectLockEnabled, Kind: cmdlet.KindBool, Usage: "enable Object Lock"},
			},
			Operation: cmdlet.Operation[s3control.CreateBucketInput, s3control.CreateBucketOutput]{
				Name:     "CreateBucket",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.CreateBucketInput, error) {
					return &s3control.CreateBucketInput{
						Bucket:    p.String(paramBucket),
						OutpostId: p.String(paramOutpostID),
						ACL:       cmdlet.Enum[types.BucketCannedACL](p, paramACL),
						CreateBucketConfiguration: &types.CreateBucketConfiguration{
							LocationConstraint: cmdlet.Enum[types.BucketLocationConstraint](p, paramLocationConstraint),
						},
						GrantFullControl:           p.String(paramGrantFullControl),
						GrantRead:                  p.String(paramGrantRead),
						GrantReadACP:               p.String(paramGrantReadACP),
						GrantWrite:                 p.String(paramGrantWrite),
						GrantWriteACP:              p.String(paramGrantWriteACP),
						ObjectLockEnabledForBucket: aws.ToBool(p.Bool(paramObjectLockEnabled)),
					}, nil
				},
				Target: func(in *s3control.CreateBucketInput) string { return target(in.OutpostId, in.Bucket) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.CreateBucket),
				Output: "BucketArn",
			},
		}),
		newCommand(env, definition[s3control.ListRegionalBucketsInput, s3control.ListRegionalBucketsOutput]{
			Use:     "list",
			Short:   "List the buckets of an Outpost",
			Example: "  s3ctl bucket list --account-id 123456789012 --outpost-id op-01ac5d28a6a232904",
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramOutpostID, Kind: cmdlet.KindString, Usage: "Outpost to list the buckets of"},
				maxResultsParam,
				nextTokenParam,
			},
			Operation: cmdlet.Operation[s3control.ListRegionalBucketsInput, s3control.ListRegionalBucketsOutput]{
				Name: "ListRegionalBuckets",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.ListRegionalBucketsInput, error) {
					return &s3control.ListRegionalBucketsInput{
						AccountId:  p.String(constants.FlagAccountID),
						OutpostId:  p.String(paramOutpostID),
						MaxResults: aws.ToInt32(p.Int32(constants.FlagMaxResults)),
						NextToken:  p.String(constants.FlagNextToken),
					}, nil
				},
				Call:      sdk(env, s3controlclient.S3ControlAPI.ListRegionalBuckets),
				Output:    "RegionalBucketList",
				NextToken: func(out *s3control.ListRegionalBucketsOutput) *string { return out.NextToken },
				SetToken:  func(in *s3control.ListRegionalBucketsInput, token *string) { in.NextToken = token },
			},
		}),
		newCommand(env, definition[s3control.DeleteBucketInput, s3control.DeleteBucketOutput]{
			Use:      "delete",
			Short:    "Delete an Outposts bucket",
			Example:  "  s3ctl bucket delete --account-id 123456789012 --bucket arn:aws:s3-outposts:us-west-2:123456789012:outpost/op-01ac5d28a6a232904/bucket/logs",
			Resource: paramBucket,
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramBucket, Kind: cmdlet.KindString, Usage: "bucket name or ARN", Required: true},
			},
			Operation: cmdlet.Operation[s3control.DeleteBucketInput, s3control.DeleteBucketOutput]{
				Name:     "DeleteBucket",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.DeleteBucketInput, error) {
					return &s3control.DeleteBucketInput{
						AccountId: p.String(constants.FlagAccountID),
						Bucket:    p.String(paramBucket),
					}, nil
				},
				Target: func(in *s3control.DeleteBucketInput) string { return target(in.Bucket) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.DeleteBucket),
			},
		}),
		newCommand(env, definition[s3control.PutBucketPolicyInput, s3control.PutBucketPolicyOutput]{
			Use:      "put-policy",
			Short:    "Replace the policy of an Outposts bucket",
			Example:  "  s3ctl bucket put-policy --account-id 123456789012 --bucket logs --policy file://policy.json",
			Resource: paramBucket,
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramBucket, Kind: cmdlet.KindString, Usage: "bucket name or ARN", Required: true},
				{Name: paramPolicy, Kind: cmdlet.KindJSON, Usage: "policy document, inline or file://path", Required: true},
				{Name: paramConfirmRemoveSelfBucketAccess, Kind: cmdlet.KindBool, Usage: "allow the policy to lock the caller out"},
			},
			Operation: cmdlet.Operation[s3control.PutBucketPolicyInput, s3control.PutBucketPolicyOutput]{
				Name:     "PutBucketPolicy",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.PutBucketPolicyInput, error) {
					policy, err := cmdlet.Document(p, paramPolicy)
					if err != nil {
						return nil, err
					}
					return &s3control.PutBucketPolicyInput{
						AccountId:                     p.String(constants.FlagAccountID),
						Bucket:                        p.String(paramBucket),
						Policy:                        policy,
						ConfirmRemoveSelfBucketAccess: aws.ToBool(p.Bool(paramConfirmRemoveSelfBucketAccess)),
					}, nil
				},
				Target: func(in *s3control.PutBucketPolicyInput) string { return target(in.Bucket) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.PutBucketPolicy),
			},
		}),
		newCommand(env, definition[s3control.PutBucketReplicationInput, s3control.PutBucketReplicationOutput]{
			Use:   "put-replication",
			Short: "Replace the replication configuration of an Outposts bucket",
			Example: `  s3ctl bucket put-replication --account-id 123456789012 --bucket logs \
    --replication-configuration.role arn:aws:iam::123456789012:role/replication --replication-configuration.rules file://rules.json`,
			Resource: paramBucket,
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramBucket, Kind: cmdlet.KindString, Usage: "bucket name or ARN", Required: true},
				{Name: paramReplicationRole, Kind: cmdlet.KindString, Usage: "IAM role assumed for replication", Aliases: []string{"role"}, Required: true},
				{Name: paramReplicationRules, Kind: cmdlet.KindJSON, Usage: "replication rules as a JSON array, inline or file://path", Aliases: []string{"rules"}, Required: true},
			},
			Operation: cmdlet.Operation[s3control.PutBucketReplicationInput, s3control.PutBucketReplicationOutput]{
				Name:     "PutBucketReplication",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.PutBucketReplicationInput, error) {
					in := &s3control.PutBucketReplicationInput{
						AccountId: p.String(constants.FlagAccountID),
						Bucket:    p.String(paramBucket),
						ReplicationConfiguration: &types.ReplicationConfiguration{
							Role: p.String(paramReplicationRole),
						},
					}
					if err := cmdlet.DecodeJSON(p, paramReplicationRules, &in.ReplicationConfiguration.Rules); err != nil {
						return nil, err
					}
					return in, nil
				},
				Keep: func(in *s3control.PutBucketReplicationInput, p *cmdlet.ParameterSet) []any {
					if p.Supplied(paramReplicationRules) {
						return []any{in.ReplicationConfiguration}
					}
					return nil
				},
				Target: func(in *s3control.PutBucketReplicationInput) string { return target(in.Bucket) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.PutBucketReplication),
			},
		}),
	)
}
