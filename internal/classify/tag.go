package classify

import "fmt"

// Tag identifies the kind of a serialized Record.
type Tag uint8

const (
	Unsupported Tag = iota
	Null
	Undefined
	Bool
	Number
	BigInt
	String
	Reference
	Object
	Array
	Map
	Set
	Date
	RegExp
	Error
	Binary
)

var tagNames = [...]string{
	Unsupported: "unsupported",
	Null:        "null",
	Undefined:   "undefined",
	Bool:        "bool",
	Number:      "number",
	BigInt:      "bigint",
	String:      "string",
	Reference:   "ref",
	Object:      "object",
	Array:       "array",
	Map:         "map",
	Set:         "set",
	Date:        "date",
	RegExp:      "regexp",
	Error:       "error",
	Binary:      "binary",
}

// String returns the wire name of the tag.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// ParseTag maps a wire name back to its Tag. Unsupported is never a valid
// wire tag.
func ParseTag(name string) (Tag, error) {
	for i, n := range tagNames {
		if n == name && Tag(i) != Unsupported {
			return Tag(i), nil
		}
	}
	return Unsupported, fmt.Errorf("unknown record tag %q", name)
}

// IsPrimitive reports whether records of this tag carry their value inline.
func (t Tag) IsPrimitive() bool {
	switch t {
	case Null, Undefined, Bool, Number, BigInt, String, Date:
		return true
	default:
		return false
	}
}

// HasIdentity reports whether values of this tag are tracked by identity, so
// that shared and cyclic references survive a round trip.
func (t Tag) HasIdentity() bool {
	switch t {
	case Object, Array, Map, Set, RegExp, Error, Binary:
		return true
	default:
		return false
	}
}
