package lazyseq

import (
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Equal reports whether a and b are structurally equal.
//
// Booleans, numbers and strings are equal if they have the same type and value.
// Values of type time.Time or *time.Time are equal if they represent the same instant.
// Slices and arrays are equal if they have the same length and their elements are equal.
// Maps and structs are equal if they have the same keys or fields, and the values are equal,
// regardless of insertion order. Interfaces are compared by their dynamic values.
// Any other values, such as other pointers, channels and functions, are equal only if they are identical.
//
// Equal does not detect cycles; a and b must not contain themselves.
func Equal(a any, b any) bool {
	return equalValue(reflect.ValueOf(a), reflect.ValueOf(b))
}

func equalValue(a reflect.Value, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}

	if a.Type() != b.Type() {
		return false
	}

	if at, bt, ok := instants(a, b); ok {
		return at.Equal(bt)
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()

	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()

	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()

	case reflect.String:
		return a.String() == b.String()

	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}

		return equalValue(a.Elem(), b.Elem())

	case reflect.Slice, reflect.Array:
		return equalElems(a, b)

	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}

		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !equalValue(iter.Value(), bv) {
				return false
			}
		}

		return true

	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !equalValue(a.Field(i), b.Field(i)) {
				return false
			}
		}

		return true

	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()

	default:
		return false
	}
}

func equalElems(a reflect.Value, b reflect.Value) bool {
	if a.Len() != b.Len() {
		return false
	}

	for i := 0; i < a.Len(); i++ {
		if !equalValue(a.Index(i), b.Index(i)) {
			return false
		}
	}

	return true
}

// instants returns the instants of a and b if both are time.Time or non-nil *time.Time.
func instants(a reflect.Value, b reflect.Value) (time.Time, time.Time, bool) {
	switch {
	case a.Type() == timeType:
		// unexported struct fields cannot be turned back into interfaces
		if !a.CanInterface() || !b.CanInterface() {
			return time.Time{}, time.Time{}, false
		}

		return a.Interface().(time.Time), b.Interface().(time.Time), true

	case a.Kind() == reflect.Pointer && a.Type().Elem() == timeType:
		if a.IsNil() || b.IsNil() || !a.CanInterface() || !b.CanInterface() {
			return time.Time{}, time.Time{}, false
		}

		return *a.Interface().(*time.Time), *b.Interface().(*time.Time), true

	default:
		return time.Time{}, time.Time{}, false
	}
}
