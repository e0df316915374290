package value

import (
	"reflect"
	"unsafe"
)

// Identity is a comparable handle for a reference-typed Go value. Two values
// share an Identity exactly when they alias the same memory with the same
// type and, for slices, the same length.
type Identity struct {
	ptr unsafe.Pointer
	typ reflect.Type
	len int
}

// IdentityOf returns the identity of v. Values without a stable address
// (scalars, structs, nil containers, empty slices) report false.
func IdentityOf(v any) (Identity, bool) {
	if v == nil {
		return Identity{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return Identity{}, false
		}
		return Identity{ptr: rv.UnsafePointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return Identity{}, false
		}
		return Identity{ptr: rv.UnsafePointer(), typ: rv.Type(), len: rv.Len()}, true
	}
	return Identity{}, false
}

// indexKey turns v into something usable as a Go map key: identities for
// non-comparable reference values, the value itself otherwise. ok is false
// when v can only be located by a linear scan.
func indexKey(v any) (key any, ok bool) {
	if v == nil {
		return nil, true
	}
	if id, isRef := IdentityOf(v); isRef {
		return id, true
	}
	if reflect.TypeOf(v).Comparable() && !containsInterface(reflect.TypeOf(v)) {
		if f, isFloat := v.(float64); isFloat && f != f {
			return nanKey{}, true
		}
		return v, true
	}
	return nil, false
}

// nanKey lets NaN find itself, matching SameValueZero semantics.
type nanKey struct{}

func containsInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return containsInterface(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// SameValue reports whether a and b denote the same member of a Map or Set.
func SameValue(a, b any) bool {
	ka, okA := indexKey(a)
	kb, okB := indexKey(b)
	if okA && okB {
		return ka == kb
	}
	return false
}
