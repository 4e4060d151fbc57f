package output

import (
	"reflect"
	"time"
)

// metadataField is the SDK response field carrying transport metadata.
const metadataField = "ResultMetadata"

var timeType = reflect.TypeFor[time.Time]()

// Normalize converts an SDK value into plain maps, slices and scalars. Nil
// pointers, nil slices and transport metadata are dropped.
func Normalize(v any) any {
	if v == nil {
		return nil
	}
	return normalize(reflect.ValueOf(v))
}

func normalize(v reflect.Value) any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		if v.Type() == timeType {
			return v.Interface().(time.Time).UTC().Format(time.RFC3339)
		}
		m := make(map[string]any)
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || f.Name == metadataField {
				continue
			}
			fv := v.Field(i)
			if omitted(fv) {
				continue
			}
			if value := normalize(fv); value != nil {
				m[f.Name] = value
			}
		}
		return m
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes())
		}
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, normalize(v.Index(i)))
		}
		return items
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		m := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			m[reflect.ValueOf(iter.Key().Interface()).String()] = normalize(iter.Value())
		}
		return m
	case reflect.String:
		// SDK enums are named string types.
		return v.String()
	case reflect.Invalid:
		return nil
	}
	return v.Interface()
}

// omitted reports whether a field is an unset enum. SDK enums are named
// string types whose zero value means absent; zero booleans and numbers are
// real values and are kept.
func omitted(v reflect.Value) bool {
	return v.Kind() == reflect.String && v.Len() == 0
}
