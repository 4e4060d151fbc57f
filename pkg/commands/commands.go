// Package commands declares the s3ctl cmdlets. Each cmdlet is a mapping table
// from flags to one S3 Control request, run through pkg/cmdlet.
package commands

import (
	"context"
	"reflect"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"k8s.io/klog/v2"

	iamclient "github.com/scality/s3control-cli/pkg/clients/iam"
	s3client "github.com/scality/s3control-cli/pkg/clients/s3"
	s3controlclient "github.com/scality/s3control-cli/pkg/clients/s3control"
	"github.com/scality/s3control-cli/pkg/cmdlet"
	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/metrics"
	"github.com/scality/s3control-cli/pkg/osperrors"
	"github.com/scality/s3control-cli/pkg/output"
	"github.com/scality/s3control-cli/pkg/tracing"
)

// CmdletAnnotation marks the commands that call the storage service.
const CmdletAnnotation = "s3ctl/cmdlet"

// Env carries what cmdlets need at run time. The root command fills it in
// before any cmdlet runs.
type Env struct {
	S3Control s3controlclient.S3ControlAPI
	// Endpoint is reported in network failures, empty for the AWS default.
	Endpoint string
	// IAM and S3 return the secondary clients, created on first use.
	IAM func(ctx context.Context) (*iamclient.IAMClient, error)
	S3  func(ctx context.Context) (*s3client.S3Client, error)

	Confirmer cmdlet.Confirmer
	Output    string
	Color     bool

	// AccountID is used when a cmdlet's --account-id is not given. With
	// ResolveAccountID it is looked up from the caller's IAM identity.
	AccountID        string
	ResolveAccountID bool
}

func (e *Env) accountID(ctx context.Context) (string, error) {
	if e.AccountID != "" || !e.ResolveAccountID {
		return e.AccountID, nil
	}
	if e.IAM == nil {
		return "", status.Error(codes.FailedPrecondition, "no IAM client configured to resolve the account id")
	}
	client, err := e.IAM(ctx)
	if err != nil {
		return "", err
	}
	id, err := client.ResolveAccountID(ctx)
	if err != nil {
		osperrors.TranslateIAMError("GetUser", "", err)
		return "", err
	}
	e.AccountID = id
	return id, nil
}

// fallbacks supplies the configured account id to cmdlets that take one and
// were not given --account-id. deferred is set when the id is to be looked
// up from IAM instead, once the invocation has been confirmed.
func (e *Env) fallbacks(flags *pflag.FlagSet, params []cmdlet.Parameter) (values map[string]string, deferred bool) {
	declared := slices.ContainsFunc(params, func(p cmdlet.Parameter) bool { return p.Name == constants.FlagAccountID })
	if !declared || flags.Changed(constants.FlagAccountID) {
		return nil, false
	}
	if e.AccountID != "" {
		return map[string]string{constants.FlagAccountID: e.AccountID}, false
	}
	return nil, e.ResolveAccountID
}

// withAccountID prepends the IAM account id lookup to resolve.
func withAccountID[In any](env *Env, resolve func(context.Context, *In, *cmdlet.ParameterSet) error) func(context.Context, *In, *cmdlet.ParameterSet) error {
	return func(ctx context.Context, in *In, params *cmdlet.ParameterSet) error {
		id, err := env.accountID(ctx)
		if err != nil {
			return err
		}
		setAccountID(in, id)
		if resolve != nil {
			return resolve(ctx, in, params)
		}
		return nil
	}
}

// setAccountID fills the AccountId member of an S3 Control request.
func setAccountID(in any, id string) {
	f := reflect.ValueOf(in).Elem().FieldByName("AccountId")
	if f.IsValid() && f.CanSet() && f.Type() == reflect.TypeFor[*string]() {
		f.Set(reflect.ValueOf(aws.String(id)))
	}
}

// optional returns params with name no longer required.
func optional(params []cmdlet.Parameter, name string) []cmdlet.Parameter {
	out := slices.Clone(params)
	for i := range out {
		if out[i].Name == name {
			out[i].Required = false
		}
	}
	return out
}

// InvocationError is returned by a failed cmdlet. Code is the classification
// of Err and decides the process exit code.
type InvocationError struct {
	Operation string
	Code      codes.Code
	Err       error
}

func (e *InvocationError) Error() string {
	return e.Err.Error()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func (e *InvocationError) ExitCode() int {
	return osperrors.ExitCode(e.Code)
}

// definition is the declarative description of one cmdlet.
type definition[In, Out any] struct {
	Use     string
	Short   string
	Example string
	// Resource names the parameter identifying the resource acted upon, for
	// error reporting.
	Resource  string
	Params    []cmdlet.Parameter
	Operation cmdlet.Operation[In, Out]
}

// sdk binds an S3ControlAPI method expression to the client found in env at
// call time.
func sdk[In, Out any](env *Env, method func(s3controlclient.S3ControlAPI, context.Context, *In, ...func(*s3control.Options)) (*Out, error)) func(context.Context, *In) (*Out, error) {
	return func(ctx context.Context, in *In) (*Out, error) {
		if env.S3Control == nil {
			return nil, status.Error(codes.FailedPrecondition, "S3 Control client is not configured")
		}
		return method(env.S3Control, ctx, in)
	}
}

func newCommand[In, Out any](env *Env, def definition[In, Out]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     def.Use,
		Short:   def.Short,
		Example: def.Example,
		Args:    cobra.NoArgs,
		Annotations: map[string]string{
			CmdletAnnotation: def.Operation.Name,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, env, def)
		},
	}

	flags := cmd.Flags()
	cmdlet.Register(flags, def.Params...)
	flags.String(constants.FlagSelect, "", "part of the response to print: a field path such as Job.Status, '*' for the whole response, or ^param to echo a parameter")
	if def.Operation.Mutating {
		flags.Bool(constants.FlagForce, false, "do not ask for confirmation")
	}
	if def.Operation.Paginated() {
		flags.Bool(constants.FlagNoAutoIteration, false, "fetch a single page")
		flags.Bool(constants.FlagAllPages, false, "follow continuation tokens even when --next-token is given")
	}
	return cmd
}

func group(use, short string, children ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(children...)
	return cmd
}

func run[In, Out any](cmd *cobra.Command, env *Env, def definition[In, Out]) error {
	op := def.Operation
	flags := cmd.Flags()

	ctx, span := tracing.StartInvocation(cmd.Context(), op.Name, attribute.String("s3ctl.command", cmd.CommandPath()))
	defer span.End()

	declared := def.Params
	fallbacks, deferred := env.fallbacks(flags, declared)
	if deferred {
		declared = optional(declared, constants.FlagAccountID)
		op.Resolve = withAccountID(env, op.Resolve)
	}
	params, err := cmdlet.NewParameterSet(flags, declared, fallbacks)
	if err != nil {
		return fail(span, op.Name, "", err)
	}
	resource := aws.ToString(params.String(def.Resource))

	printer, err := output.NewPrinter(cmd.OutOrStdout(), env.Output, env.Color)
	if err != nil {
		return fail(span, op.Name, resource, status.Error(codes.InvalidArgument, err.Error()))
	}

	selection, _ := flags.GetString(constants.FlagSelect)
	force, _ := flags.GetBool(constants.FlagForce)
	noAutoIteration, _ := flags.GetBool(constants.FlagNoAutoIteration)
	allPages, _ := flags.GetBool(constants.FlagAllPages)

	results, err := cmdlet.Invoke(ctx, op, params, cmdlet.Options{
		Select:          selection,
		Force:           force,
		NoAutoIteration: noAutoIteration,
		AllPages:        allPages,
		Endpoint:        env.Endpoint,
		Confirmer:       env.Confirmer,
	})
	if err != nil {
		return fail(span, op.Name, resource, err)
	}

	for result := range results {
		if result.Err != nil {
			if flushErr := printer.Flush(); flushErr != nil {
				klog.ErrorS(flushErr, "Failed to flush output", "operation", op.Name)
			}
			return fail(span, op.Name, resource, result.Err)
		}
		if metrics.PagesTotal != nil {
			metrics.PagesTotal.WithLabelValues(op.Name).Inc()
		}
		if err := printer.Print(result.Value); err != nil {
			return fail(span, op.Name, resource, err)
		}
	}
	if err := printer.Flush(); err != nil {
		return fail(span, op.Name, resource, err)
	}

	record(op.Name, codes.OK)
	return nil
}

func fail(span trace.Span, operation, resource string, err error) error {
	code := osperrors.TranslateS3ControlError(operation, resource, err)
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	record(operation, code)
	return &InvocationError{Operation: operation, Code: code, Err: err}
}

func record(operation string, code codes.Code) {
	if metrics.InvocationsTotal != nil {
		metrics.InvocationsTotal.WithLabelValues(operation, code.String()).Inc()
	}
}

// NewCommands returns the cmdlet groups, one per resource noun.
func NewCommands(env *Env) []*cobra.Command {
	return []*cobra.Command{
		newAccessGrantCommand(env),
		newAccessPointCommand(env),
		newBucketCommand(env),
		newJobCommand(env),
		newMultiRegionAccessPointCommand(env),
		newStorageLensGroupCommand(env),
		newStorageLensCommand(env),
	}
}

var (
	accountIDParam = cmdlet.Parameter{
		Name:     constants.FlagAccountID,
		Kind:     cmdlet.KindString,
		Usage:    "account id of the resource owner (defaults to the configured account)",
		Required: true,
	}
	nextTokenParam = cmdlet.Parameter{
		Name:  constants.FlagNextToken,
		Kind:  cmdlet.KindString,
		Usage: "continuation token of the page to start from",
	}
	maxResultsParam = cmdlet.Parameter{
		Name:  constants.FlagMaxResults,
		Kind:  cmdlet.KindInt32,
		Usage: "maximum number of results per page",
	}
)

func target(parts ...*string) string {
	var s string
	for _, p := range parts {
		if v := aws.ToString(p); v != "" {
			if s != "" {
				s += "/"
			}
			s += v
		}
	}
	return s
}

func invalidf(format string, args ...any) error {
	return cmdlet.NewValidationError(format, args...)
}
