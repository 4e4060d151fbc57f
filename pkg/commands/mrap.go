package commands

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	"github.com/spf13/cobra"

	s3controlclient "github.com/scality/s3control-cli/pkg/clients/s3control"
	"github.com/scality/s3control-cli/pkg/cmdlet"
	"github.com/scality/s3control-cli/pkg/constants"
)

const (
	paramClientToken = "client-token"
	paramDetailsName = "details.name"
	paramRegions     = "details.regions"
)

// regions parses bucket[@account-id] entries.
func regions(values []string) ([]types.Region, error) {
	if values == nil {
		return nil, nil
	}
	out := make([]types.Region, 0, len(values))
	for _, v := range values {
		bucket, account, found := strings.Cut(v, "@")
		if bucket == "" || (found && account == "") {
			return nil, invalidf("invalid --%s entry %q, expected bucket or bucket@account-id", paramRegions, v)
		}
		region := types.Region{Bucket: &bucket}
		if found {
			region.BucketAccountId = &account
		}
		out = append(out, region)
	}
	return out, nil
}

func newMultiRegionAccessPointCommand(env *Env) *cobra.Command {
	nameParam := cmdlet.Parameter{Name: paramDetailsName, Kind: cmdlet.KindString, Usage: "Multi-Region Access Point name", Required: true, Aliases: []string{"name"}}
	clientTokenParam := cmdlet.Parameter{Name: paramClientToken, Kind: cmdlet.KindString, Usage: "idempotency token, generated when omitted"}

	return group("mrap", "Manage Multi-Region Access Points",
		newCommand(env, definition[s3control.CreateMultiRegionAccessPointInput, s3control.CreateMultiRegionAccessPointOutput]{
			Use:      "create",
			Short:    "Create a Multi-Region Access Point",
			Example:  "  s3ctl mrap create --account-id 123456789012 --name global-logs --regions logs-us,logs-eu@210987654321",
			Resource: paramDetailsName,
			Params: append([]cmdlet.Parameter{
				accountIDParam,
				clientTokenParam,
				nameParam,
				{Name: paramRegions, Kind: cmdlet.KindStringSlice, Usage: "buckets to route to, as bucket or bucket@account-id", Required: true, Aliases: []string{"regions"}},
			}, publicAccessBlockParams...),
			Operation: cmdlet.Operation[s3control.CreateMultiRegionAccessPointInput, s3control.CreateMultiRegionAccessPointOutput]{
				Name:     "CreateMultiRegionAccessPoint",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.CreateMultiRegionAccessPointInput, error) {
					buckets, err := regions(p.Strings(paramRegions))
					if err != nil {
						return nil, err
					}
					return &s3control.CreateMultiRegionAccessPointInput{
						AccountId:   p.String(constants.FlagAccountID),
						ClientToken: p.String(paramClientToken),
						Details: &types.CreateMultiRegionAccessPointInput{
							Name:              p.String(paramDetailsName),
							Regions:           buckets,
							PublicAccessBlock: publicAccessBlock(p),
						},
					}, nil
				},
				Target: func(in *s3control.CreateMultiRegionAccessPointInput) string {
					if in.Details == nil {
						return ""
					}
					return target(in.Details.Name)
				},
				Call:   sdk(env, s3controlclient.S3ControlAPI.CreateMultiRegionAccessPoint),
				Output: "RequestTokenARN",
			},
		}),
		newCommand(env, definition[s3control.ListMultiRegionAccessPointsInput, s3control.ListMultiRegionAccessPointsOutput]{
			Use:     "list",
			Short:   "List Multi-Region Access Points",
			Example: "  s3ctl mrap list --account-id 123456789012 --select AccessPoints.Alias",
			Params: []cmdlet.Parameter{
				accountIDParam,
				maxResultsParam,
				nextTokenParam,
			},
			Operation: cmdlet.Operation[s3control.ListMultiRegionAccessPointsInput, s3control.ListMultiRegionAccessPointsOutput]{
				Name: "ListMultiRegionAccessPoints",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.ListMultiRegionAccessPointsInput, error) {
					return &s3control.ListMultiRegionAccessPointsInput{
						AccountId:  p.String(constants.FlagAccountID),
						MaxResults: aws.ToInt32(p.Int32(constants.FlagMaxResults)),
						NextToken:  p.String(constants.FlagNextToken),
					}, nil
				},
				Call:      sdk(env, s3controlclient.S3ControlAPI.ListMultiRegionAccessPoints),
				Output:    "AccessPoints",
				NextToken: func(out *s3control.ListMultiRegionAccessPointsOutput) *string { return out.NextToken },
				SetToken:  func(in *s3control.ListMultiRegionAccessPointsInput, token *string) { in.NextToken = token },
			},
		}),
		newCommand(env, definition[s3control.DeleteMultiRegionAccessPointInput, s3control.DeleteMultiRegionAccessPointOutput]{
			Use:      "delete",
			Short:    "Delete a Multi-Region Access Point",
			Example:  "  s3ctl mrap delete --account-id 123456789012 --name global-logs --force",
			Resource: paramDetailsName,
			Params:   []cmdlet.Parameter{accountIDParam, clientTokenParam, nameParam},
			Operation: cmdlet.Operation[s3control.DeleteMultiRegionAccessPointInput, s3control.DeleteMultiRegionAccessPointOutput]{
				Name:     "DeleteMultiRegionAccessPoint",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.DeleteMultiRegionAccessPointInput, error) {
					return &s3control.DeleteMultiRegionAccessPointInput{
						AccountId:   p.String(constants.FlagAccountID),
						ClientToken: p.String(paramClientToken),
						Details: &types.DeleteMultiRegionAccessPointInput{
							Name: p.String(paramDetailsName),
						},
					}, nil
				},
				Target: func(in *s3control.DeleteMultiRegionAccessPointInput) string {
					if in.Details == nil {
						return ""
					}
					return target(in.Details.Name)
				},
				Call:   sdk(env, s3controlclient.S3ControlAPI.DeleteMultiRegionAccessPoint),
				Output: "RequestTokenARN",
			},
		}),
	)
}
