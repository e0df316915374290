// Package serialization flattens a value graph into a table of records and
// rebuilds an equivalent graph from such a table.
//
// Serialization is a depth-first pre-order walk: a composite reserves its
// index before its children are visited and is written once they all have
// indices. Deserialization mirrors it, registering an empty shell for each
// composite before resolving children, which is what lets a child refer back
// to an ancestor.
package serialization

import "github.com/kyr0/dson/internal/dsonerr"

// DefaultMaxDepth bounds composite nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 1000

// Options controls a single Serialize or Deserialize call.
type Options struct {
	// Lossy drops values outside the catalogue instead of failing.
	Lossy bool

	// JSON down-casts literals JSON cannot carry: big integers and dates
	// become strings, numbers become float64 and non-finite numbers are
	// spelled out.
	JSON bool

	// MaxDepth is the number of nested composite levels allowed; the root
	// composite is level one. Zero or negative means DefaultMaxDepth.
	MaxDepth int

	// Operation is reported in errors.
	Operation dsonerr.Operation

	// OnDrop, when set, is called for every value lossy mode leaves out.
	OnDrop func(path string, typeName string)
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) operation(fallback dsonerr.Operation) dsonerr.Operation {
	if o.Operation == dsonerr.Unknown {
		return fallback
	}
	return o.Operation
}
