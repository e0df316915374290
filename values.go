package dson

import (
	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/classify"
	"github.com/kyr0/dson/internal/record"
	"github.com/kyr0/dson/internal/value"
)

type (
	// Object is a string-keyed record that remembers insertion order.
	Object = value.Object
	// Map is an insertion ordered map with keys of any supported type.
	Map = value.Map
	// Set is an insertion ordered set.
	Set = value.Set
	// Entry is one key/value pair of a Map.
	Entry = value.Entry
	// Error is the reconstructed form of an error value.
	Error = value.Error
	// Undefined marks an absent value. It is distinct from nil.
	Undefined = value.Undefined

	// Record is one tagged unit of a serialized table.
	Record = record.Record
	// Tag identifies the kind of a Record.
	Tag = classify.Tag
	// View names the element type of a binary buffer.
	View = binhex.View
)

// Record tags.
const (
	TagUnsupported = classify.Unsupported
	TagNull        = classify.Null
	TagUndefined   = classify.Undefined
	TagBool        = classify.Bool
	TagNumber      = classify.Number
	TagBigInt      = classify.BigInt
	TagString      = classify.String
	TagReference   = classify.Reference
	TagObject      = classify.Object
	TagArray       = classify.Array
	TagMap         = classify.Map
	TagSet         = classify.Set
	TagDate        = classify.Date
	TagRegExp      = classify.RegExp
	TagError       = classify.Error
	TagBinary      = classify.Binary
)

// HexMarker prefixes every string produced by BinaryToHex.
const HexMarker = binhex.Marker

func NewObject() *Object { return value.NewObject() }

func NewMap() *Map { return value.NewMap() }

func NewSet() *Set { return value.NewSet() }

// NewError returns an error value with the given name, message and optional
// cause. An empty name means "Error".
func NewError(name, message string, cause any) *Error {
	if name == "" {
		name = value.DefaultErrorName
	}
	return &Error{Name: name, Message: message, Cause: cause}
}

// Classify reports the tag v would be serialized with.
func Classify(v any) Tag {
	return classify.Classify(v)
}
