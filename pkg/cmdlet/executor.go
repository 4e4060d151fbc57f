package cmdlet

import (
	"context"
	"iter"
	"reflect"

	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

// Operation is the declarative description of one remote operation.
type Operation[In, Out any] struct {
	// Name is the remote operation name, e.g. "ListJobs".
	Name string
	// Mutating operations go through the confirmation gate.
	Mutating bool
	// Build populates the request from the parameter set without any remote
	// call. Sub-structures may be filled unconditionally; the executor prunes
	// the empty ones.
	Build func(ctx context.Context, params *ParameterSet) (*In, error)
	// Keep lists the sub-structures of the built request that must survive
	// pruning, typically those whose value-typed members were supplied.
	Keep func(in *In, params *ParameterSet) []any
	// Resolve completes the request with remote lookups. It runs once the
	// confirmation gate has passed, before the first call.
	Resolve func(ctx context.Context, in *In, params *ParameterSet) error
	// Target names the resource acted upon, for the confirmation prompt.
	Target func(in *In) string
	Call   func(ctx context.Context, in *In) (*Out, error)
	// Output is the default projection: a field path, "*" for the whole
	// response, or empty when the operation has nothing to show.
	Output string
	// NextToken and SetToken are set for paginated operations only.
	NextToken func(out *Out) *string
	SetToken  func(in *In, token *string)
}

// Paginated reports whether the operation follows continuation tokens.
func (op Operation[In, Out]) Paginated() bool {
	return op.NextToken != nil && op.SetToken != nil
}

// Options carries the invocation-wide switches of a cmdlet.
type Options struct {
	Select          string
	Force           bool
	NoAutoIteration bool
	// AllPages keeps following continuation tokens even when the caller
	// supplied a starting token.
	AllPages  bool
	Endpoint  string
	Confirmer Confirmer
}

// Result is the outcome of one page: either a projected value or an error.
type Result struct {
	Operation string
	Page      int
	Value     any
	Err       error
}

type pageState int

const (
	stateStart pageState = iota
	stateCalling
	stateHasMore
	stateDone
)

func (s pageState) String() string {
	switch s {
	case stateStart:
		return "Start"
	case stateCalling:
		return "Calling"
	case stateHasMore:
		return "HasMore"
	}
	return "Done"
}

// afterPage is the transition taken once a page has been received.
func afterPage(token *string, autoContinue bool) pageState {
	if autoContinue && token != nil && *token != "" {
		return stateHasMore
	}
	return stateDone
}

// Invoke validates the invocation, builds and prunes the request, passes the
// confirmation gate and returns the lazily evaluated sequence of page
// results. The returned error is a *ValidationError or an error from Build;
// either way no remote call was made. Failures of Resolve and of the calls
// are yielded as results. A skipped mutating operation yields an empty
// sequence.
func Invoke[In, Out any](ctx context.Context, op Operation[In, Out], params *ParameterSet, opts Options) (iter.Seq[Result], error) {
	sel, err := ParseSelector(opts.Select)
	if err != nil {
		return nil, err
	}
	if err := sel.effective(op.Output).validate(reflect.TypeFor[Out](), params); err != nil {
		return nil, err
	}
	if opts.NoAutoIteration && opts.AllPages {
		return nil, NewValidationError("--%s and --%s cannot be combined", constants.FlagNoAutoIteration, constants.FlagAllPages)
	}

	in, err := op.Build(ctx, params)
	if err != nil {
		return nil, err
	}
	var keep []any
	if op.Keep != nil {
		keep = op.Keep(in, params)
	}
	Prune(in, keep...)

	if params != nil {
		for _, w := range params.Warnings() {
			klog.Warningf("%s: %s", op.Name, w)
		}
	}

	if op.Mutating {
		target := op.Name
		if op.Target != nil {
			target = op.Target(in)
		}
		if !affirmed(op.Name, target, opts.Force, opts.Confirmer) {
			klog.InfoS("Operation not confirmed, skipping", "operation", op.Name, "target", target)
			return func(func(Result) bool) {}, nil
		}
	}

	autoContinue := op.Paginated() && !opts.NoAutoIteration &&
		(opts.AllPages || !params.Supplied(constants.FlagNextToken))
	silent := sel.Kind == SelectDefault && op.Output == ""

	return func(yield func(Result) bool) {
		if op.Resolve != nil {
			if err := op.Resolve(ctx, in, params); err != nil {
				yield(Result{Operation: op.Name, Err: err})
				return
			}
		}

		state := stateStart
		page := 0
		for state != stateDone {
			switch state {
			case stateStart, stateHasMore:
				if err := ctx.Err(); err != nil {
					yield(Result{Operation: op.Name, Page: page + 1, Err: err})
					return
				}
				state = stateCalling
			case stateCalling:
				page++
				klog.V(constants.LvlInfo).InfoS("Calling remote operation", "operation", op.Name, "page", page)
				out, err := op.Call(ctx, in)
				if err != nil {
					yield(Result{Operation: op.Name, Page: page, Err: WrapCallError(op.Name, opts.Endpoint, err)})
					return
				}
				if !silent {
					if !yield(Result{Operation: op.Name, Page: page, Value: Project(out, sel, op.Output, params)}) {
						return
					}
				}

				var token *string
				if op.Paginated() {
					token = op.NextToken(out)
				}
				state = afterPage(token, autoContinue)
				klog.V(constants.LvlDebug).InfoS("Page received", "operation", op.Name, "page", page, "next", state)
				if state == stateHasMore {
					op.SetToken(in, token)
				}
			}
		}
	}, nil
}
