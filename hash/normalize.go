package hash

import (
	"fmt"
	"reflect"
)

// Normalize returns a deep copy of value converted into the tree variants
// understood by this package: maps become map[string]any (non-string keys are
// formatted with fmt) and slices or arrays become []any. Map entries holding nil
// are dropped, since a key is absent rather than set to nil. Byte slices and
// every other scalar are returned unchanged.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			if normalized := Normalize(inner); normalized != nil {
				out[key] = normalized
			}
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = Normalize(inner)
		}

		return out
	case []byte:
		return v
	}

	return normalizeValue(reflect.ValueOf(value))
}

// NormalizeTree is Normalize for a whole tree.
func NormalizeTree(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}

	normalized, _ := Normalize(tree).(map[string]any)

	return normalized
}

func normalizeValue(rv reflect.Value) any {
	switch rv.Kind() { //nolint:exhaustive // scalars fall through to default
	case reflect.Map:
		if rv.IsNil() {
			return map[string]any{}
		}

		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			if normalized := Normalize(iter.Value().Interface()); normalized != nil {
				out[mapKey(iter.Key())] = normalized
			}
		}

		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface()
		}

		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = Normalize(rv.Index(i).Interface())
		}

		return out
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}

		return rv.Interface()
	default:
		return rv.Interface()
	}
}

func mapKey(key reflect.Value) string {
	if key.Kind() == reflect.Interface {
		if key.IsNil() {
			return ""
		}

		key = key.Elem()
	}

	if key.Kind() == reflect.String {
		return key.String()
	}

	return fmt.Sprint(key.Interface())
}
