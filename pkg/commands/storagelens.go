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
	paramConfigID      = "config-id"
	paramConfiguration = "storage-lens-configuration"
	paramIsEnabled     = "storage-lens-configuration.is-enabled"
)

func newStorageLensCommand(env *Env) *cobra.Command {
	configIDParam := cmdlet.Parameter{Name: paramConfigID, Kind: cmdlet.KindString, Usage: "Storage Lens configuration id", Required: true, Aliases: []string{"id"}}

	return group("storage-lens", "Manage Storage Lens dashboards",
		newCommand(env, definition[s3control.PutStorageLensConfigurationInput, s3control.PutStorageLensConfigurationOutput]{
			Use:      "put",
			Short:    "Create or replace a Storage Lens configuration",
			Example:  "  s3ctl storage-lens put --account-id 123456789012 --config-id dashboard --configuration file://lens.json --enabled",
			Resource: paramConfigID,
			Params: []cmdlet.Parameter{
				accountIDParam,
				configIDParam,
				{Name: paramConfiguration, Kind: cmdlet.KindJSON, Usage: "configuration document, inline or file://path", Required: true, Aliases: []string{"configuration"}},
				{Name: paramIsEnabled, Kind: cmdlet.KindBool, Usage: "enable the dashboard, overriding the document", Aliases: []string{"enabled"}},
				{Name: paramTags, Kind: cmdlet.KindJSON, Usage: `tags as JSON, e.g. [{"Key":"team","Value":"data"}]`},
			},
			Operation: cmdlet.Operation[s3control.PutStorageLensConfigurationInput, s3control.PutStorageLensConfigurationOutput]{
				Name:     "PutStorageLensConfiguration",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.PutStorageLensConfigurationInput, error) {
					in := &s3control.PutStorageLensConfigurationInput{
						AccountId:                p.String(constants.FlagAccountID),
						ConfigId:                 p.String(paramConfigID),
						StorageLensConfiguration: &types.StorageLensConfiguration{},
					}
					if err := cmdlet.DecodeJSON(p, paramConfiguration, in.StorageLensConfiguration); err != nil {
						return nil, err
					}
					if in.StorageLensConfiguration.Id == nil {
						in.StorageLensConfiguration.Id = in.ConfigId
					}
					if enabled := p.Bool(paramIsEnabled); enabled != nil {
						in.StorageLensConfiguration.IsEnabled = aws.ToBool(enabled)
					}
					if err := cmdlet.DecodeJSON(p, paramTags, &in.Tags); err != nil {
						return nil, err
					}
					return in, nil
				},
				Keep: func(in *s3control.PutStorageLensConfigurationInput, _ *cmdlet.ParameterSet) []any {
					return []any{in.StorageLensConfiguration}
				},
				Target: func(in *s3control.PutStorageLensConfigurationInput) string { return target(in.ConfigId) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.PutStorageLensConfiguration),
			},
		}),
		newCommand(env, definition[s3control.ListStorageLensConfigurationsInput, s3control.ListStorageLensConfigurationsOutput]{
			Use:     "list",
			Short:   "List Storage Lens configurations",
			Example: "  s3ctl storage-lens list --account-id 123456789012 --output table",
			Params:  []cmdlet.Parameter{accountIDParam, nextTokenParam},
			Operation: cmdlet.Operation[s3control.ListStorageLensConfigurationsInput, s3control.ListStorageLensConfigurationsOutput]{
				Name: "ListStorageLensConfigurations",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.ListStorageLensConfigurationsInput, error) {
					return &s3control.ListStorageLensConfigurationsInput{
						AccountId: p.String(constants.FlagAccountID),
						NextToken: p.String(constants.FlagNextToken),
					}, nil
				},
				Call:      sdk(env, s3controlclient.S3ControlAPI.ListStorageLensConfigurations),
				Output:    "StorageLensConfigurationList",
				NextToken: func(out *s3control.ListStorageLensConfigurationsOutput) *string { return out.NextToken },
				SetToken:  func(in *s3control.ListStorageLensConfigurationsInput, token *string) { in.NextToken = token },
			},
		}),
		newCommand(env, definition[s3control.DeleteStorageLensConfigurationInput, s3control.DeleteStorageLensConfigurationOutput]{
			Use:      "delete",
			Short:    "Delete a Storage Lens configuration",
			Example:  "  s3ctl storage-lens delete --account-id 123456789012 --config-id dashboard",
			Resource: paramConfigID,
			Params:   []cmdlet.Parameter{accountIDParam, configIDParam},
			Operation: cmdlet.Operation[s3control.DeleteStorageLensConfigurationInput, s3control.DeleteStorageLensConfigurationOutput]{
				Name:     "DeleteStorageLensConfiguration",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.DeleteStorageLensConfigurationInput, error) {
					return &s3control.DeleteStorageLensConfigurationInput{
						AccountId: p.String(constants.FlagAccountID),
						ConfigId:  p.String(paramConfigID),
					}, nil
				},
				Target: func(in *s3control.DeleteStorageLensConfigurationInput) string { return target(in.ConfigId) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.DeleteStorageLensConfiguration),
			},
		}),
	)
}
