package commands

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	"github.com/spf13/cobra"

	s3controlclient "github.com/scality/s3control-cli/pkg/clients/s3control"
	"github.com/scality/s3control-cli/pkg/cmdlet"
	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/osperrors"
)

const (
	paramAccessGrantID     = "access-grant-id"
	paramLocationID        = "access-grants-location-id"
	paramLocationSubPrefix = "access-grants-location-configuration.s3-sub-prefix"
	paramGranteeType       = "grantee.grantee-type"
	paramGranteeIdentifier = "grantee.grantee-identifier"
	paramGranteeIAMUser    = "grantee-iam-user"
	paramPermission        = "permission"
	paramApplicationArn    = "application-arn"
	paramS3PrefixType      = "s3-prefix-type"
	paramGrantScope        = "grant-scope"
	paramTags              = "tags"
)

func newAccessGrantCommand(env *Env) *cobra.Command {
	return group("access-grant", "Manage S3 Access Grants",
		newCommand(env, definition[s3control.CreateAccessGrantInput, s3control.CreateAccessGrantOutput]{
			Use:   "create",
			Short: "Grant an identity access to an Access Grants location",
			Example: `  s3ctl access-grant create --account-id 123456789012 --access-grants-location-id default \
    --grantee-iam-user alice --permission READ --access-grants-location-configuration.s3-sub-prefix 'logs/*'`,
			Resource: paramLocationID,
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramLocationID, Kind: cmdlet.KindString, Usage: "Access Grants location id", Required: true},
				{Name: paramLocationSubPrefix, Kind: cmdlet.KindString, Usage: "sub-prefix of the location the grant applies to", Aliases: []string{"sub-prefix"}},
				{Name: paramGranteeType, Kind: cmdlet.KindString, Usage: "grantee type: IAM, DIRECTORY_USER or DIRECTORY_GROUP", Aliases: []string{"grantee-type"}},
				{Name: paramGranteeIdentifier, Kind: cmdlet.KindString, Usage: "grantee identifier, e.g. an IAM principal ARN", Aliases: []string{"grantee-identifier"}},
				{Name: paramGranteeIAMUser, Kind: cmdlet.KindString, Usage: "IAM user name, resolved to its ARN as an IAM grantee"},
				{Name: paramPermission, Kind: cmdlet.KindString, Usage: "READ, WRITE or READWRITE", Required: true},
				{Name: paramApplicationArn, Kind: cmdlet.KindString, Usage: "IAM Identity Center application ARN"},
				{Name: paramS3PrefixType, Kind: cmdlet.KindString, Usage: "set to Object when the sub-prefix designates an object"},
				{Name: paramTags, Kind: cmdlet.KindJSON, Usage: `tags as JSON, e.g. [{"Key":"team","Value":"data"}], or file://path`},
			},
			Operation: cmdlet.Operation[s3control.CreateAccessGrantInput, s3control.CreateAccessGrantOutput]{
				Name:     "CreateAccessGrant",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.CreateAccessGrantInput, error) {
					in := &s3control.CreateAccessGrantInput{
						AccountId:              p.String(constants.FlagAccountID),
						AccessGrantsLocationId: p.String(paramLocationID),
						AccessGrantsLocationConfiguration: &types.AccessGrantsLocationConfiguration{
							S3SubPrefix: p.String(paramLocationSubPrefix),
						},
						Grantee: &types.Grantee{
							GranteeType:       cmdlet.Enum[types.GranteeType](p, paramGranteeType),
							GranteeIdentifier: p.String(paramGranteeIdentifier),
						},
						Permission:     cmdlet.Enum[types.Permission](p, paramPermission),
						ApplicationArn: p.String(paramApplicationArn),
						S3PrefixType:   cmdlet.Enum[types.S3PrefixType](p, paramS3PrefixType),
					}
					if err := cmdlet.DecodeJSON(p, paramTags, &in.Tags); err != nil {
						return nil, err
					}
					if p.Supplied(paramGranteeIAMUser) {
						if p.Supplied(paramGranteeIdentifier) {
							return nil, invalidf("--%s and --%s cannot be combined", paramGranteeIAMUser, paramGranteeIdentifier)
						}
						if env.IAM == nil {
							return nil, invalidf("--%s needs an IAM endpoint", paramGranteeIAMUser)
						}
						in.Grantee.GranteeType = types.GranteeTypeIam
					}
					return in, nil
				},
				Resolve: func(ctx context.Context, in *s3control.CreateAccessGrantInput, p *cmdlet.ParameterSet) error {
					user := p.String(paramGranteeIAMUser)
					if user == nil {
						return nil
					}
					arn, err := granteeArn(ctx, env, *user)
					if err != nil {
						return err
					}
					in.Grantee.GranteeIdentifier = &arn
					return nil
				},
				Target: func(in *s3control.CreateAccessGrantInput) string {
					if in.Grantee == nil {
						return target(in.AccessGrantsLocationId)
					}
					return target(in.AccessGrantsLocationId, in.Grantee.GranteeIdentifier)
				},
				Call:   sdk(env, s3controlclient.S3ControlAPI.CreateAccessGrant),
				Output: constants.SelectAll,
			},
		}),
		newCommand(env, definition[s3control.ListAccessGrantsInput, s3control.ListAccessGrantsOutput]{
			Use:     "list",
			Short:   "List access grants",
			Example: "  s3ctl access-grant list --account-id 123456789012 --permission READ",
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramGranteeType, Kind: cmdlet.KindString, Usage: "only grants to this grantee type", Aliases: []string{"grantee-type"}},
				{Name: paramGranteeIdentifier, Kind: cmdlet.KindString, Usage: "only grants to this grantee", Aliases: []string{"grantee-identifier"}},
				{Name: paramPermission, Kind: cmdlet.KindString, Usage: "only grants with this permission"},
				{Name: paramGrantScope, Kind: cmdlet.KindString, Usage: "only grants with this S3 path scope"},
				{Name: paramApplicationArn, Kind: cmdlet.KindString, Usage: "only grants for this application"},
				maxResultsParam,
				nextTokenParam,
			},
			Operation: cmdlet.Operation[s3control.ListAccessGrantsInput, s3control.ListAccessGrantsOutput]{
				Name: "ListAccessGrants",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.ListAccessGrantsInput, error) {
					return &s3control.ListAccessGrantsInput{
						AccountId:         p.String(constants.FlagAccountID),
						GranteeType:       cmdlet.Enum[types.GranteeType](p, paramGranteeType),
						GranteeIdentifier: p.String(paramGranteeIdentifier),
						Permission:        cmdlet.Enum[types.Permission](p, paramPermission),
						GrantScope:        p.String(paramGrantScope),
						ApplicationArn:    p.String(paramApplicationArn),
						MaxResults:        aws.ToInt32(p.Int32(constants.FlagMaxResults)),
						NextToken:         p.String(constants.FlagNextToken),
					}, nil
				},
				Call:      sdk(env, s3controlclient.S3ControlAPI.ListAccessGrants),
				Output:    "AccessGrantsList",
				NextToken: func(out *s3control.ListAccessGrantsOutput) *string { return out.NextToken },
				SetToken:  func(in *s3control.ListAccessGrantsInput, token *string) { in.NextToken = token },
			},
		}),
		newCommand(env, definition[s3control.DeleteAccessGrantInput, s3control.DeleteAccessGrantOutput]{
			Use:      "delete",
			Short:    "Delete an access grant",
			Example:  "  s3ctl access-grant delete --account-id 123456789012 --access-grant-id 0e6a1d8b --force",
			Resource: paramAccessGrantID,
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramAccessGrantID, Kind: cmdlet.KindString, Usage: "access grant id", Required: true, Aliases: []string{"id"}},
			},
			Operation: cmdlet.Operation[s3control.DeleteAccessGrantInput, s3control.DeleteAccessGrantOutput]{
				Name:     "DeleteAccessGrant",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.DeleteAccessGrantInput, error) {
					return &s3control.DeleteAccessGrantInput{
						AccountId:     p.String(constants.FlagAccountID),
						AccessGrantId: p.String(paramAccessGrantID),
					}, nil
				},
				Target: func(in *s3control.DeleteAccessGrantInput) string { return target(in.AccessGrantId) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.DeleteAccessGrant),
			},
		}),
	)
}

// granteeArn resolves an IAM user name to the ARN used as grantee identifier.
func granteeArn(ctx context.Context, env *Env, userName string) (string, error) {
	client, err := env.IAM(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create IAM client: %w", err)
	}
	arn, err := client.UserArn(ctx, userName)
	if err != nil {
		osperrors.TranslateIAMError("GetUser", userName, err)
		return "", err
	}
	return arn, nil
}
