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
	paramGroupName        = "storage-lens-group.name"
	paramMatchAnyPrefix   = "storage-lens-group.filter.match-any-prefix"
	paramMatchAnySuffix   = "storage-lens-group.filter.match-any-suffix"
	paramMatchAnyTag      = "storage-lens-group.filter.match-any-tag"
	paramDaysGreaterThan  = "storage-lens-group.filter.match-object-age.days-greater-than"
	paramDaysLessThan     = "storage-lens-group.filter.match-object-age.days-less-than"
	paramBytesGreaterThan = "storage-lens-group.filter.match-object-size.bytes-greater-than"
	paramBytesLessThan    = "storage-lens-group.filter.match-object-size.bytes-less-than"
)

func newStorageLensGroupCommand(env *Env) *cobra.Command {
	groupNameParam := cmdlet.Parameter{Name: paramGroupName, Kind: cmdlet.KindString, Usage: "Storage Lens group name", Required: true, Aliases: []string{"name"}}

	return group("storage-lens-group", "Manage Storage Lens groups",
		newCommand(env, definition[s3control.CreateStorageLensGroupInput, s3control.CreateStorageLensGroupOutput]{
			Use:      "create",
			Short:    "Create a Storage Lens group",
			Example:  "  s3ctl storage-lens-group create --account-id 123456789012 --name images --match-any-suffix .jpg,.png --days-greater-than 30",
			Resource: paramGroupName,
			Params: []cmdlet.Parameter{
				accountIDParam,
				groupNameParam,
				{Name: paramMatchAnyPrefix, Kind: cmdlet.KindStringSlice, Usage: "objects whose key starts with any of these prefixes", Aliases: []string{"match-any-prefix"}},
				{Name: paramMatchAnySuffix, Kind: cmdlet.KindStringSlice, Usage: "objects whose key ends with any of these suffixes", Aliases: []string{"match-any-suffix"}},
				{Name: paramMatchAnyTag, Kind: cmdlet.KindJSON, Usage: `objects carrying any of these tags, e.g. [{"Key":"k","Value":"v"}]`, Aliases: []string{"match-any-tag"}},
				{Name: paramDaysGreaterThan, Kind: cmdlet.KindInt32, Usage: "objects older than this many days", Aliases: []string{"days-greater-than"}},
				{Name: paramDaysLessThan, Kind: cmdlet.KindInt32, Usage: "objects younger than this many days", Aliases: []string{"days-less-than"}},
				{Name: paramBytesGreaterThan, Kind: cmdlet.KindInt64, Usage: "objects larger than this many bytes", Aliases: []string{"bytes-greater-than"}},
				{Name: paramBytesLessThan, Kind: cmdlet.KindInt64, Usage: "objects smaller than this many bytes", Aliases: []string{"bytes-less-than"}},
				{Name: paramTags, Kind: cmdlet.KindJSON, Usage: `tags as JSON, e.g. [{"Key":"team","Value":"data"}]`},
			},
			Operation: cmdlet.Operation[s3control.CreateStorageLensGroupInput, s3control.CreateStorageLensGroupOutput]{
				Name:     "CreateStorageLensGroup",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.CreateStorageLensGroupInput, error) {
					filter := &types.StorageLensGroupFilter{
						MatchAnyPrefix: p.Strings(paramMatchAnyPrefix),
						MatchAnySuffix: p.Strings(paramMatchAnySuffix),
						MatchObjectAge: &types.MatchObjectAge{
							DaysGreaterThan: aws.ToInt32(p.Int32(paramDaysGreaterThan)),
							DaysLessThan:    aws.ToInt32(p.Int32(paramDaysLessThan)),
						},
						MatchObjectSize: &types.MatchObjectSize{
							BytesGreaterThan: aws.ToInt64(p.Int64(paramBytesGreaterThan)),
							BytesLessThan:    aws.ToInt64(p.Int64(paramBytesLessThan)),
						},
					}
					if err := cmdlet.DecodeJSON(p, paramMatchAnyTag, &filter.MatchAnyTag); err != nil {
						return nil, err
					}
					in := &s3control.CreateStorageLensGroupInput{
						AccountId: p.String(constants.FlagAccountID),
						StorageLensGroup: &types.StorageLensGroup{
							Name:   p.String(paramGroupName),
							Filter: filter,
						},
					}
					if err := cmdlet.DecodeJSON(p, paramTags, &in.Tags); err != nil {
						return nil, err
					}
					return in, nil
				},
				Keep: func(in *s3control.CreateStorageLensGroupInput, p *cmdlet.ParameterSet) []any {
					if in.StorageLensGroup == nil || in.StorageLensGroup.Filter == nil {
						return nil
					}
					var keep []any
					if p.SuppliedAny(paramDaysGreaterThan, paramDaysLessThan) {
						keep = append(keep, in.StorageLensGroup.Filter.MatchObjectAge)
					}
					if p.SuppliedAny(paramBytesGreaterThan, paramBytesLessThan) {
						keep = append(keep, in.StorageLensGroup.Filter.MatchObjectSize)
					}
					return keep
				},
				Target: func(in *s3control.CreateStorageLensGroupInput) string {
					if in.StorageLensGroup == nil {
						return ""
					}
					return target(in.StorageLensGroup.Name)
				},
				Call: sdk(env, s3controlclient.S3ControlAPI.CreateStorageLensGroup),
			},
		}),
		newCommand(env, definition[s3control.ListStorageLensGroupsInput, s3control.ListStorageLensGroupsOutput]{
			Use:     "list",
			Short:   "List Storage Lens groups",
			Example: "  s3ctl storage-lens-group list --account-id 123456789012",
			Params:  []cmdlet.Parameter{accountIDParam, nextTokenParam},
			Operation: cmdlet.Operation[s3control.ListStorageLensGroupsInput, s3control.ListStorageLensGroupsOutput]{
				Name: "ListStorageLensGroups",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.ListStorageLensGroupsInput, error) {
					return &s3control.ListStorageLensGroupsInput{
						AccountId: p.String(constants.FlagAccountID),
						NextToken: p.String(constants.FlagNextToken),
					}, nil
				},
				Call:      sdk(env, s3controlclient.S3ControlAPI.ListStorageLensGroups),
				Output:    "StorageLensGroupList",
				NextToken: func(out *s3control.ListStorageLensGroupsOutput) *string { return out.NextToken },
				SetToken:  func(in *s3control.ListStorageLensGroupsInput, token *string) { in.NextToken = token },
			},
		}),
		newCommand(env, definition[s3control.DeleteStorageLensGroupInput, s3control.DeleteStorageLensGroupOutput]{
			Use:      "delete",
			Short:    "Delete a Storage Lens group",
			Example:  "  s3ctl storage-lens-group delete --account-id 123456789012 --name images",
			Resource: paramGroupName,
			Params:   []cmdlet.Parameter{accountIDParam, groupNameParam},
			Operation: cmdlet.Operation[s3control.DeleteStorageLensGroupInput, s3control.DeleteStorageLensGroupOutput]{
				Name:     "DeleteStorageLensGroup",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.DeleteStorageLensGroupInput, error) {
					return &s3control.DeleteStorageLensGroupInput{
						AccountId: p.String(constants.FlagAccountID),
						Name:      p.String(paramGroupName),
					}, nil
				},
				Target: func(in *s3control.DeleteStorageLensGroupInput) string { return target(in.Name) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.DeleteStorageLensGroup),
			},
		}),
	)
}
