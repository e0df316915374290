// Package classify maps Go values onto the closed catalogue of record tags.
//
// The catalogue is fixed. Values whose type is not listed classify as
// Unsupported; callers decide whether that is fatal (strict) or whether the
// value is dropped (lossy). Custom types cannot opt in: a type registry keyed
// by type name would slot in at the default branch of Classify, and nothing
// registers there today.
package classify

import (
	"math/big"
	"reflect"
	"regexp"
	"time"

	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/value"
)

// Classify returns the tag for v. Typed nil pointers, maps and slices of
// catalogue types classify as Null.
func Classify(v any) Tag {
	switch x := v.(type) {
	case nil:
		return Null
	case value.Undefined:
		return Undefined
	case bool:
		return Bool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return Number
	case string:
		return String
	case *big.Int:
		return nilOr(x == nil, BigInt)
	case *value.Object:
		return nilOr(x == nil, Object)
	case map[string]any:
		return nilOr(x == nil, Object)
	case []any:
		return nilOr(x == nil, Array)
	case *value.Map:
		return nilOr(x == nil, Map)
	case *value.Set:
		return nilOr(x == nil, Set)
	case time.Time:
		return Date
	case *regexp.Regexp:
		return nilOr(x == nil, RegExp)
	case *value.Error:
		return nilOr(x == nil, Error)
	}

	if _, ok := binhex.ViewOf(v); ok {
		return nilOr(reflect.ValueOf(v).IsNil(), Binary)
	}

	if _, ok := v.(error); ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Null
		}
		return Error
	}

	return Unsupported
}

func nilOr(isNil bool, t Tag) Tag {
	if isNil {
		return Null
	}
	return t
}

// TypeName describes v for error messages.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
