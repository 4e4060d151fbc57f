package cmdlet

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/scality/s3control-cli/pkg/constants"
)

// SelectionKind says which part of a response a Selector designates.
type SelectionKind int

const (
	// SelectDefault designates the operation's primary result field.
	SelectDefault SelectionKind = iota
	// SelectWhole designates the entire response.
	SelectWhole
	// SelectField designates a (possibly nested) response field.
	SelectField
	// SelectParameter echoes the value of a supplied parameter.
	SelectParameter
)

var (
	fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	paramNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*$`)
)

// Selector is a parsed --select directive.
type Selector struct {
	Kind  SelectionKind
	Path  []string
	Param string
}

// ParseSelector parses a --select directive: empty for the default
// projection, "*" for the whole response, "^name" for a parameter value, or a
// dotted field path such as "Job.Status".
func ParseSelector(directive string) (Selector, error) {
	d := strings.TrimSpace(directive)
	switch {
	case d == "":
		return Selector{Kind: SelectDefault}, nil
	case d == constants.SelectAll:
		return Selector{Kind: SelectWhole}, nil
	case strings.HasPrefix(d, constants.SelectParamPrefix):
		name := strings.TrimPrefix(d, constants.SelectParamPrefix)
		if !paramNamePattern.MatchString(name) {
			return Selector{}, NewValidationError("invalid --select directive %q: %q is not a parameter name", directive, name)
		}
		return Selector{Kind: SelectParameter, Param: name}, nil
	}

	path, err := parsePath(d)
	if err != nil {
		return Selector{}, NewValidationError("invalid --select directive %q: %v", directive, err)
	}
	return Selector{Kind: SelectField, Path: path}, nil
}

func parsePath(s string) ([]string, error) {
	path := strings.Split(s, constants.SelectPathSplitter)
	for _, segment := range path {
		if !fieldNamePattern.MatchString(segment) {
			return nil, NewValidationError("%q is not a field name", segment)
		}
	}
	return path, nil
}

// effective resolves the default selection against the operation's primary
// field. A nil path with SelectDefault means the operation emits nothing.
func (s Selector) effective(defaultField string) Selector {
	if s.Kind != SelectDefault {
		return s
	}
	switch defaultField {
	case "":
		return s
	case constants.SelectAll:
		return Selector{Kind: SelectWhole}
	}
	path, _ := parsePath(defaultField)
	return Selector{Kind: SelectField, Path: path}
}

// validate checks the selection against the response type and the declared
// parameters without making any call.
func (s Selector) validate(out reflect.Type, params *ParameterSet) error {
	switch s.Kind {
	case SelectField:
		if _, err := fieldType(out, s.Path); err != nil {
			return err
		}
	case SelectParameter:
		if params == nil {
			return NewValidationError("invalid --select directive: unknown parameter %q", s.Param)
		}
		if _, ok := params.params[s.Param]; !ok {
			return NewValidationError("invalid --select directive: unknown parameter %q", s.Param)
		}
	}
	return nil
}

func fieldType(t reflect.Type, path []string) (reflect.Type, error) {
	for _, name := range path {
		t = indirectType(t)
		if t.Kind() != reflect.Struct {
			return nil, NewValidationError("invalid --select directive: %s has no field %q", t, name)
		}
		f, ok := lookupField(t, name)
		if !ok {
			return nil, NewValidationError("invalid --select directive: %s has no field %q", t, name)
		}
		t = f.Type
	}
	return t, nil
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	return t
}

func lookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	f, ok := t.FieldByNameFunc(func(candidate string) bool {
		return strings.EqualFold(candidate, name)
	})
	return f, ok && f.IsExported()
}

// Project returns the part of out designated by sel. It is a pure function of
// its inputs. Paths that cross a slice are mapped over its elements.
func Project(out any, sel Selector, defaultField string, params *ParameterSet) any {
	sel = sel.effective(defaultField)
	switch sel.Kind {
	case SelectWhole:
		return out
	case SelectParameter:
		v, _ := params.Value(sel.Param)
		return v
	case SelectField:
		return projectPath(reflect.ValueOf(out), sel.Path)
	}
	return nil
}

func projectPath(v reflect.Value, path []string) any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if len(path) == 0 {
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	}

	switch v.Kind() {
	case reflect.Struct:
		f, ok := lookupField(v.Type(), path[0])
		if !ok {
			return nil
		}
		return projectPath(v.FieldByIndex(f.Index), path[1:])
	case reflect.Slice:
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, projectPath(v.Index(i), path))
		}
		return items
	}
	return nil
}
