package cmdlet

import "reflect"

// Prune walks the request pointed to by v and clears every nested
// sub-structure whose fields are all unset, so that the remote service never
// receives an empty structure. Pointers to structs and interfaces holding
// them are cleared; value structs and slice elements are pruned in place. A
// nil slice is unset, an empty non-nil slice is not. A non-nil pointer to a
// structure without exported fields is a marker and always counts as set.
//
// Value-typed members such as bool or int32 cannot tell a supplied zero from
// an absent one, and documents decoded from JSON are taken as written, so the
// sub-structures listed in keep are left untouched. The root is never
// cleared; Prune reports whether it ended up empty.
func Prune(v any, keep ...any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return false
	}
	p := pruner{keep: make(map[any]bool, len(keep))}
	for _, k := range keep {
		if kv := reflect.ValueOf(k); kv.Kind() == reflect.Pointer && !kv.IsNil() {
			p.keep[k] = true
		}
	}
	return p.pruneStruct(rv.Elem())
}

type pruner struct {
	keep map[any]bool
}

func (p pruner) kept(ptr reflect.Value) bool {
	return len(p.keep) > 0 && ptr.CanInterface() && p.keep[ptr.Interface()]
}

func (p pruner) pruneStruct(sv reflect.Value) bool {
	empty := true
	st := sv.Type()
	for i := 0; i < sv.NumField(); i++ {
		f := sv.Field(i)
		if !st.Field(i).IsExported() {
			if !f.IsZero() {
				empty = false
			}
			continue
		}
		if !p.pruneValue(f) {
			empty = false
		}
	}
	return empty
}

// pruneValue prunes f in place and reports whether it is unset afterwards.
func (p pruner) pruneValue(f reflect.Value) bool {
	switch f.Kind() {
	case reflect.Pointer:
		if f.IsNil() {
			return true
		}
		return p.prunePointer(f, f)
	case reflect.Interface:
		if f.IsNil() {
			return true
		}
		if inner := f.Elem(); inner.Kind() == reflect.Pointer && !inner.IsNil() {
			return p.prunePointer(f, inner)
		}
		return false
	case reflect.Struct:
		return p.pruneStruct(f)
	case reflect.Slice:
		if f.IsNil() {
			return true
		}
		for i := 0; i < f.Len(); i++ {
			p.pruneValue(f.Index(i))
		}
		return false
	default:
		return f.IsZero()
	}
}

// prunePointer prunes the struct ptr points to and clears holder when the
// struct ends up empty.
func (p pruner) prunePointer(holder, ptr reflect.Value) bool {
	if ptr.Elem().Kind() != reflect.Struct || isMarker(ptr.Elem().Type()) || p.kept(ptr) {
		return false
	}
	if p.pruneStruct(ptr.Elem()) {
		holder.SetZero()
		return true
	}
	return false
}

func isMarker(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return false
		}
	}
	return true
}
