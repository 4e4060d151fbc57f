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
	paramJobID                = "job-id"
	paramJobStatuses          = "job-statuses"
	paramRequestedJobStatus   = "requested-job-status"
	paramStatusUpdateReason   = "status-update-reason"
	paramClientRequestToken   = "client-request-token"
	paramConfirmationRequired = "confirmation-required"
	paramDescription          = "description"
	paramPriority             = "priority"
	paramRoleArn              = "role-arn"

	paramOperation             = "operation"
	paramLambdaFunctionArn     = "operation.lambda-invoke.function-arn"
	paramLambdaSchemaVersion   = "operation.lambda-invoke.invocation-schema-version"
	paramCopyTargetResource    = "operation.s3-put-object-copy.target-resource"
	paramCopyStorageClass      = "operation.s3-put-object-copy.storage-class"
	paramRestoreExpirationDays = "operation.s3-initiate-restore-object.expiration-in-days"
	paramRestoreGlacierJobTier = "operation.s3-initiate-restore-object.glacier-job-tier"
	paramPutTaggingTagSet      = "operation.s3-put-object-tagging.tag-set"
	paramDeleteObjectTagging   = "operation.s3-delete-object-tagging"
	paramReplicateObject       = "operation.s3-replicate-object"
	paramManifestFormat        = "manifest.spec.format"
	paramManifestFields        = "manifest.spec.fields"
	paramManifestObjectArn     = "manifest.location.object-arn"
	paramManifestETag          = "manifest.location.etag"
	paramManifestObjectVersion = "manifest.location.object-version-id"
	paramResolveManifestETag   = "resolve-manifest-etag"
	paramReportBucket          = "report.bucket"
	paramReportEnabled         = "report.enabled"
	paramReportFormat          = "report.format"
	paramReportPrefix          = "report.prefix"
	paramReportScope           = "report.report-scope"
)

// operationShorthands build a JobOperation from individual flags, as an
// alternative to a full --operation document.
var operationShorthands = []cmdlet.Parameter{
	{Name: paramLambdaFunctionArn, Kind: cmdlet.KindString, Usage: "invoke this Lambda function on every object", Aliases: []string{"function-arn"}},
	{Name: paramLambdaSchemaVersion, Kind: cmdlet.KindString, Usage: "Lambda invocation schema version, 1.0 or 2.0"},
	{Name: paramCopyTargetResource, Kind: cmdlet.KindString, Usage: "copy every object to this bucket ARN", Aliases: []string{"target-resource"}},
	{Name: paramCopyStorageClass, Kind: cmdlet.KindString, Usage: "storage class of the copies"},
	{Name: paramRestoreExpirationDays, Kind: cmdlet.KindInt32, Usage: "restore archived objects for this many days", Aliases: []string{"expiration-in-days"}},
	{Name: paramRestoreGlacierJobTier, Kind: cmdlet.KindString, Usage: "restore retrieval tier, BULK or STANDARD"},
	{Name: paramPutTaggingTagSet, Kind: cmdlet.KindJSON, Usage: `replace object tags, e.g. [{"Key":"k","Value":"v"}]`, Aliases: []string{"tag-set"}},
	{Name: paramDeleteObjectTagging, Kind: cmdlet.KindBool, Usage: "delete the tags of every object"},
	{Name: paramReplicateObject, Kind: cmdlet.KindBool, Usage: "replicate every object"},
}

func newJobCommand(env *Env) *cobra.Command {
	jobIDParam := cmdlet.Parameter{Name: paramJobID, Kind: cmdlet.KindString, Usage: "batch job id", Required: true, Aliases: []string{"id"}}

	return group("job", "Manage S3 Batch Operations jobs",
		newCommand(env, definition[s3control.CreateJobInput, s3control.CreateJobOutput]{
			Use:   "create",
			Short: "Create a batch job",
			Example: `  s3ctl job create --account-id 123456789012 --priority 10 \
    --role-arn arn:aws:iam::123456789012:role/batch \
    --function-arn arn:aws:lambda:us-east-1:123456789012:function:resize \
    --manifest.spec.format S3BatchOperations_CSV_20180820 --manifest.spec.fields Bucket,Key \
    --manifest.location.object-arn arn:aws:s3:::manifests/images.csv --resolve-manifest-etag \
    --report.enabled=false`,
			Params: append([]cmdlet.Parameter{
				accountIDParam,
				{Name: paramPriority, Kind: cmdlet.KindInt32, Usage: "job priority, higher runs first", Required: true},
				{Name: paramRoleArn, Kind: cmdlet.KindString, Usage: "IAM role the job runs as", Required: true},
				{Name: paramDescription, Kind: cmdlet.KindString, Usage: "job description"},
				{Name: paramClientRequestToken, Kind: cmdlet.KindString, Usage: "idempotency token, generated when omitted"},
				{Name: paramConfirmationRequired, Kind: cmdlet.KindBool, Usage: "hold the job until it is confirmed with update-status"},
				{Name: paramOperation, Kind: cmdlet.KindJSON, Usage: "full operation document, inline or file://path"},
				{Name: paramManifestFormat, Kind: cmdlet.KindString, Usage: "manifest format, e.g. S3BatchOperations_CSV_20180820"},
				{Name: paramManifestFields, Kind: cmdlet.KindStringSlice, Usage: "manifest columns, e.g. Bucket,Key"},
				{Name: paramManifestObjectArn, Kind: cmdlet.KindString, Usage: "ARN of the manifest object", Aliases: []string{"manifest-arn"}},
				{Name: paramManifestETag, Kind: cmdlet.KindString, Usage: "ETag of the manifest object"},
				{Name: paramManifestObjectVersion, Kind: cmdlet.KindString, Usage: "version of the manifest object"},
				{Name: paramResolveManifestETag, Kind: cmdlet.KindBool, Usage: "look the manifest ETag up with HeadObject"},
				{Name: paramReportEnabled, Kind: cmdlet.KindBool, Usage: "write a completion report", Required: true},
				{Name: paramReportBucket, Kind: cmdlet.KindString, Usage: "ARN of the report bucket"},
				{Name: paramReportFormat, Kind: cmdlet.KindString, Usage: "report format, Report_CSV_20180820"},
				{Name: paramReportPrefix, Kind: cmdlet.KindString, Usage: "key prefix of the report"},
				{Name: paramReportScope, Kind: cmdlet.KindString, Usage: "AllTasks or FailedTasksOnly"},
				{Name: paramTags, Kind: cmdlet.KindJSON, Usage: `job tags, e.g. [{"Key":"team","Value":"data"}]`},
			}, operationShorthands...),
			Operation: cmdlet.Operation[s3control.CreateJobInput, s3control.CreateJobOutput]{
				Name:     "CreateJob",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.CreateJobInput, error) {
					in := &s3control.CreateJobInput{
						AccountId:            p.String(constants.FlagAccountID),
						Priority:             p.Int32(paramPriority),
						RoleArn:              p.String(paramRoleArn),
						Description:          p.String(paramDescription),
						ClientRequestToken:   p.String(paramClientRequestToken),
						ConfirmationRequired: p.Bool(paramConfirmationRequired),
						Manifest: &types.JobManifest{
							Spec: &types.JobManifestSpec{
								Format: cmdlet.Enum[types.JobManifestFormat](p, paramManifestFormat),
								Fields: cmdlet.EnumList[types.JobManifestFieldName](p, paramManifestFields),
							},
							Location: &types.JobManifestLocation{
								ObjectArn:       p.String(paramManifestObjectArn),
								ETag:            p.String(paramManifestETag),
								ObjectVersionId: p.String(paramManifestObjectVersion),
							},
						},
						Report: &types.JobReport{
							Enabled:     aws.ToBool(p.Bool(paramReportEnabled)),
							Bucket:      p.String(paramReportBucket),
							Format:      cmdlet.Enum[types.JobReportFormat](p, paramReportFormat),
							Prefix:      p.String(paramReportPrefix),
							ReportScope: cmdlet.Enum[types.JobReportScope](p, paramReportScope),
						},
					}

					op, err := jobOperation(p)
					if err != nil {
						return nil, err
					}
					in.Operation = op
					if err := cmdlet.DecodeJSON(p, paramTags, &in.Tags); err != nil {
						return nil, err
					}

					if aws.ToBool(p.Bool(paramResolveManifestETag)) {
						if err := checkManifestETagLookup(env, in.Manifest.Location); err != nil {
							return nil, err
						}
					}
					return in, nil
				},
				Keep: func(in *s3control.CreateJobInput, p *cmdlet.ParameterSet) []any {
					var keep []any
					if p.SuppliedAny(paramReportEnabled, paramReportBucket, paramReportFormat, paramReportPrefix, paramReportScope) {
						keep = append(keep, in.Report)
					}
					if p.Supplied(paramOperation) {
						keep = append(keep, in.Operation)
					}
					return keep
				},
				Resolve: func(ctx context.Context, in *s3control.CreateJobInput, p *cmdlet.ParameterSet) error {
					if !aws.ToBool(p.Bool(paramResolveManifestETag)) {
						return nil
					}
					return resolveManifestETag(ctx, env, in.Manifest.Location)
				},
				Target: func(in *s3control.CreateJobInput) string { return target(in.AccountId, in.Description) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.CreateJob),
				Output: "JobId",
			},
		}),
		newCommand(env, definition[s3control.ListJobsInput, s3control.ListJobsOutput]{
			Use:     "list",
			Short:   "List batch jobs",
			Example: "  s3ctl job list --account-id 123456789012 --job-statuses Active,Suspended --output table",
			Params: []cmdlet.Parameter{
				accountIDParam,
				{Name: paramJobStatuses, Kind: cmdlet.KindStringSlice, Usage: "only jobs in these states", Aliases: []string{"status"}},
				maxResultsParam,
				nextTokenParam,
			},
			Operation: cmdlet.Operation[s3control.ListJobsInput, s3control.ListJobsOutput]{
				Name: "ListJobs",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.ListJobsInput, error) {
					return &s3control.ListJobsInput{
						AccountId:   p.String(constants.FlagAccountID),
						JobStatuses: cmdlet.EnumList[types.JobStatus](p, paramJobStatuses),
						MaxResults:  p.Int32(constants.FlagMaxResults),
						NextToken:   p.String(constants.FlagNextToken),
					}, nil
				},
				Call:      sdk(env, s3controlclient.S3ControlAPI.ListJobs),
				Output:    "Jobs",
				NextToken: func(out *s3control.ListJobsOutput) *string { return out.NextToken },
				SetToken:  func(in *s3control.ListJobsInput, token *string) { in.NextToken = token },
			},
		}),
		newCommand(env, definition[s3control.DescribeJobInput, s3control.DescribeJobOutput]{
			Use:      "describe",
			Short:    "Show the configuration and status of a batch job",
			Example:  "  s3ctl job describe --account-id 123456789012 --job-id 93735a7b --select Job.ProgressSummary",
			Resource: paramJobID,
			Params:   []cmdlet.Parameter{accountIDParam, jobIDParam},
			Operation: cmdlet.Operation[s3control.DescribeJobInput, s3control.DescribeJobOutput]{
				Name: "DescribeJob",
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.DescribeJobInput, error) {
					return &s3control.DescribeJobInput{
						AccountId: p.String(constants.FlagAccountID),
						JobId:     p.String(paramJobID),
					}, nil
				},
				Call:   sdk(env, s3controlclient.S3ControlAPI.DescribeJob),
				Output: "Job",
			},
		}),
		newCommand(env, definition[s3control.UpdateJobStatusInput, s3control.UpdateJobStatusOutput]{
			Use:      "update-status",
			Short:    "Confirm or cancel a batch job",
			Example:  "  s3ctl job update-status --account-id 123456789012 --job-id 93735a7b --requested-job-status Cancelled",
			Resource: paramJobID,
			Params: []cmdlet.Parameter{
				accountIDParam,
				jobIDParam,
				{Name: paramRequestedJobStatus, Kind: cmdlet.KindString, Usage: "Ready or Cancelled", Required: true},
				{Name: paramStatusUpdateReason, Kind: cmdlet.KindString, Usage: "reason recorded with the change"},
			},
			Operation: cmdlet.Operation[s3control.UpdateJobStatusInput, s3control.UpdateJobStatusOutput]{
				Name:     "UpdateJobStatus",
				Mutating: true,
				Build: func(_ context.Context, p *cmdlet.ParameterSet) (*s3control.UpdateJobStatusInput, error) {
					return &s3control.UpdateJobStatusInput{
						AccountId:          p.String(constants.FlagAccountID),
						JobId:              p.String(paramJobID),
						RequestedJobStatus: cmdlet.Enum[types.RequestedJobStatus](p, paramRequestedJobStatus),
						StatusUpdateReason: p.String(paramStatusUpdateReason),
					}, nil
				},
				Target: func(in *s3control.UpdateJobStatusInput) string { return target(in.JobId) },
				Call:   sdk(env, s3controlclient.S3ControlAPI.UpdateJobStatus),
				Output: constants.SelectAll,
			},
		}),
	)
}

// jobOperation builds the job operation from either --operation or the
// shorthand flags. Mixing both is rejected.
func jobOperation(p *cmdlet.ParameterSet) (*types.JobOperation, error) {
	if p.Supplied(paramOperation) {
		for _, shorthand := range operationShorthands {
			if p.Supplied(shorthand.Name) {
				return nil, invalidf("--%s and --%s cannot be combined", paramOperation, shorthand.Name)
			}
		}
		op := &types.JobOperation{}
		if err := cmdlet.DecodeJSON(p, paramOperation, op); err != nil {
			return nil, err
		}
		return op, nil
	}

	op := &types.JobOperation{
		LambdaInvoke: &types.LambdaInvokeOperation{
			FunctionArn:             p.String(paramLambdaFunctionArn),
			InvocationSchemaVersion: p.String(paramLambdaSchemaVersion),
		},
		S3PutObjectCopy: &types.S3CopyObjectOperation{
			TargetResource: p.String(paramCopyTargetResource),
			StorageClass:   cmdlet.Enum[types.S3StorageClass](p, paramCopyStorageClass),
		},
		S3InitiateRestoreObject: &types.S3InitiateRestoreObjectOperation{
			ExpirationInDays: p.Int32(paramRestoreExpirationDays),
			GlacierJobTier:   cmdlet.Enum[types.S3GlacierJobTier](p, paramRestoreGlacierJobTier),
		},
		S3PutObjectTagging: &types.S3SetObjectTaggingOperation{},
	}
	if err := cmdlet.DecodeJSON(p, paramPutTaggingTagSet, &op.S3PutObjectTagging.TagSet); err != nil {
		return nil, err
	}
	if v := p.Bool(paramDeleteObjectTagging); v != nil && *v {
		op.S3DeleteObjectTagging = &types.S3DeleteObjectTaggingOperation{}
	}
	if v := p.Bool(paramReplicateObject); v != nil && *v {
		op.S3ReplicateObject = &types.S3ReplicateObjectOperation{}
	}
	return op, nil
}

// checkManifestETagLookup validates --resolve-manifest-etag against the
// other manifest flags.
func checkManifestETagLookup(env *Env, location *types.JobManifestLocation) error {
	if location == nil || aws.ToString(location.ObjectArn) == "" {
		return invalidf("--%s needs --%s", paramResolveManifestETag, paramManifestObjectArn)
	}
	if location.ETag != nil {
		return invalidf("--%s and --%s cannot be combined", paramResolveManifestETag, paramManifestETag)
	}
	if env.S3 == nil {
		return invalidf("--%s needs an S3 endpoint", paramResolveManifestETag)
	}
	return nil
}

// resolveManifestETag fills the manifest ETag from the object itself.
func resolveManifestETag(ctx context.Context, env *Env, location *types.JobManifestLocation) error {
	client, err := env.S3(ctx)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}
	etag, err := client.ObjectETag(ctx, *location.ObjectArn, aws.ToString(location.ObjectVersionId))
	if err != nil {
		osperrors.TranslateS3Error("HeadObject", *location.ObjectArn, err)
		return err
	}
	location.ETag = &etag
	return nil
}
