// Package cmdlet implements the generic execution protocol shared by every
// s3ctl command: named parameters are projected onto an SDK request, the
// request is pruned of empty sub-structures, one remote operation is called
// (repeatedly, following continuation tokens, for list operations) and each
// response is projected onto the value the caller asked to see.
package cmdlet

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Kind is the value type of a Parameter.
type Kind int

const (
	KindString Kind = iota
	KindInt32
	KindInt64
	KindBool
	KindStringSlice
	// KindJSON parameters carry a JSON document, inline or as file://path.
	KindJSON
)

const fileScheme = "file://"

// Parameter describes one named input of a cmdlet.
type Parameter struct {
	Name     string
	Kind     Kind
	Usage    string
	Aliases  []string
	Required bool
}

// Register declares params as flags on fs. Aliases become hidden flags of the
// same kind so that supplying both spellings can be detected.
func Register(fs *pflag.FlagSet, params ...Parameter) {
	for _, p := range params {
		define(fs, p.Name, p.Kind, p.Usage)
		for _, alias := range p.Aliases {
			define(fs, alias, p.Kind, "alias of --"+p.Name)
			_ = fs.MarkHidden(alias)
		}
	}
}

func define(fs *pflag.FlagSet, name string, kind Kind, usage string) {
	switch kind {
	case KindInt32:
		fs.Int32(name, 0, usage)
	case KindInt64:
		fs.Int64(name, 0, usage)
	case KindBool:
		fs.Bool(name, false, usage)
	case KindStringSlice:
		fs.StringSlice(name, nil, usage)
	default:
		fs.String(name, "", usage)
	}
}

// ParameterSet is the per-invocation view of the supplied named inputs.
// Accessors return nil when a parameter was not supplied and a pointer to the
// value when it was, even if that value is empty.
type ParameterSet struct {
	flags     *pflag.FlagSet
	params    map[string]Parameter
	supplied  map[string]string // canonical name -> flag actually set
	fallbacks map[string]string
	warnings  []string
}

// NewParameterSet resolves params against the parsed flag set. Fallbacks
// provide values for string parameters that were not supplied on the command
// line, typically from the configuration file.
func NewParameterSet(fs *pflag.FlagSet, params []Parameter, fallbacks map[string]string) (*ParameterSet, error) {
	ps := &ParameterSet{
		flags:     fs,
		params:    make(map[string]Parameter, len(params)),
		supplied:  make(map[string]string),
		fallbacks: fallbacks,
	}

	for _, p := range params {
		ps.params[p.Name] = p

		var set []string
		for _, name := range append([]string{p.Name}, p.Aliases...) {
			if fs.Changed(name) {
				set = append(set, name)
			}
		}
		if len(set) > 1 {
			return nil, NewValidationError("parameters --%s cannot be combined", strings.Join(set, " and --"))
		}
		if len(set) == 1 {
			ps.supplied[p.Name] = set[0]
		}

		if p.Required {
			switch {
			case !ps.Supplied(p.Name):
				ps.warnings = append(ps.warnings, fmt.Sprintf("required parameter --%s was not supplied", p.Name))
			case ps.empty(p):
				ps.warnings = append(ps.warnings, fmt.Sprintf("required parameter --%s is empty", p.Name))
			}
		}
	}
	return ps, nil
}

func (p *ParameterSet) empty(param Parameter) bool {
	switch param.Kind {
	case KindString, KindJSON:
		v := p.String(param.Name)
		return v == nil || *v == ""
	case KindStringSlice:
		return len(p.Strings(param.Name)) == 0
	}
	return false
}

// Warnings lists the non-fatal problems found while resolving the set.
func (p *ParameterSet) Warnings() []string {
	return p.warnings
}

// Supplied reports whether name was given on the command line or has a
// non-empty fallback.
func (p *ParameterSet) Supplied(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.supplied[name]; ok {
		return true
	}
	return p.fallbacks[name] != ""
}

// SuppliedAny reports whether any of names was supplied.
func (p *ParameterSet) SuppliedAny(names ...string) bool {
	for _, name := range names {
		if p.Supplied(name) {
			return true
		}
	}
	return false
}

func (p *ParameterSet) flagName(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	flag, ok := p.supplied[name]
	return flag, ok
}

func (p *ParameterSet) String(name string) *string {
	if flag, ok := p.flagName(name); ok {
		v, err := p.flags.GetString(flag)
		if err != nil {
			return nil
		}
		return &v
	}
	if p != nil {
		if v, ok := p.fallbacks[name]; ok && v != "" {
			return &v
		}
	}
	return nil
}

func (p *ParameterSet) Int32(name string) *int32 {
	flag, ok := p.flagName(name)
	if !ok {
		return nil
	}
	v, err := p.flags.GetInt32(flag)
	if err != nil {
		return nil
	}
	return &v
}

func (p *ParameterSet) Int64(name string) *int64 {
	flag, ok := p.flagName(name)
	if !ok {
		return nil
	}
	v, err := p.flags.GetInt64(flag)
	if err != nil {
		return nil
	}
	return &v
}

func (p *ParameterSet) Bool(name string) *bool {
	flag, ok := p.flagName(name)
	if !ok {
		return nil
	}
	v, err := p.flags.GetBool(flag)
	if err != nil {
		return nil
	}
	return &v
}

// Strings returns nil when name was not supplied and a non-nil, possibly
// empty, slice when it was.
func (p *ParameterSet) Strings(name string) []string {
	flag, ok := p.flagName(name)
	if !ok {
		return nil
	}
	v, err := p.flags.GetStringSlice(flag)
	if err != nil {
		return nil
	}
	if v == nil {
		v = []string{}
	}
	return v
}

// Value returns the supplied value of name, for echoing it back through a
// ^name selection.
func (p *ParameterSet) Value(name string) (any, bool) {
	if !p.Supplied(name) {
		return nil, false
	}
	switch p.params[name].Kind {
	case KindInt32:
		return *p.Int32(name), true
	case KindInt64:
		return *p.Int64(name), true
	case KindBool:
		return *p.Bool(name), true
	case KindStringSlice:
		return p.Strings(name), true
	}
	return *p.String(name), true
}

// Enum returns the supplied value of name converted to the SDK enum type T,
// or the zero value when it was not supplied.
func Enum[T ~string](p *ParameterSet, name string) T {
	if v := p.String(name); v != nil {
		return T(*v)
	}
	return ""
}

// EnumList is Enum for list parameters.
func EnumList[T ~string](p *ParameterSet, name string) []T {
	values := p.Strings(name)
	if values == nil {
		return nil
	}
	out := make([]T, 0, len(values))
	for _, v := range values {
		out = append(out, T(v))
	}
	return out
}

// Document returns the JSON document supplied for name, read from disk when
// it is prefixed with file://. It returns nil when name was not supplied.
func Document(p *ParameterSet, name string) (*string, error) {
	raw := p.String(name)
	if raw == nil {
		return nil, nil
	}

	doc := *raw
	if path, ok := strings.CutPrefix(doc, fileScheme); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, NewValidationError("cannot read --%s document: %v", name, err)
		}
		doc = string(data)
	}
	if !json.Valid([]byte(doc)) {
		return nil, NewValidationError("invalid JSON for --%s", name)
	}
	return &doc, nil
}

// DecodeJSON unmarshals the JSON document supplied for name into v. It is a
// no-op when name was not supplied.
func DecodeJSON(p *ParameterSet, name string, v any) error {
	doc, err := Document(p, name)
	if err != nil || doc == nil {
		return err
	}
	if err := json.Unmarshal([]byte(*doc), v); err != nil {
		return NewValidationError("invalid JSON for --%s: %v", name, err)
	}
	return nil
}
