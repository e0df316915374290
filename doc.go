// Package dson is a structured-clone codec for Go value graphs.
//
// It flattens an arbitrary, possibly cyclic graph of values into a table of
// tagged records, transports that table as JSON (or CBOR), and rebuilds an
// equivalent graph in which shared sub-graphs and cycles point at the same
// reconstructed instances.
//
// # Values
//
// The codec understands a closed catalogue of values:
//
//   - nil, Undefined, bool, every int/uint/float kind, string, *big.Int
//   - *Object (insertion ordered), map[string]any (keys sorted), []any
//   - *Map and *Set (insertion ordered, any keys)
//   - time.Time, *regexp.Regexp, error values and *Error
//   - []byte and the typed numeric views []int8 through []float64
//
// Anything else (funcs, channels, structs, custom pointer types) is
// unsupported. Strict operations fail with ErrUnsupportedType; lossy ones
// leave the value out of objects, maps and sets and replace it with
// Undefined elsewhere.
//
// # Quick Start
//
//	root := dson.NewObject()
//	root.Set("name", "dson")
//	root.Set("self", root)
//
//	text, err := dson.Stringify(root)
//	if err != nil {
//	    return err
//	}
//
//	back, err := dson.Parse(text)
//	obj := back.(*dson.Object)
//	self, _ := obj.Get("self")
//	// self == obj
//
// Clone copies a graph in memory without the textual step and rejects
// unsupported values by default:
//
//	copied, err := dson.Clone(root)
//	if dson.IsClassificationError(err) {
//	    // root contains a value outside the catalogue
//	}
//
// IsEqual compares two graphs by their canonical text. It never fails; any
// error makes the values unequal. Key, element and entry order are part of
// equality, so two maps with the same entries in a different order differ.
//
// # Codec
//
// The package-level functions use a default codec. New builds one with
// options, for example a deeper nesting limit, a CBOR envelope for
// Marshal/Unmarshal, a structured logger, observability hooks or a metrics
// collector:
//
//	codec, err := dson.New(
//	    dson.WithMaxDepth(5000),
//	    dson.WithEnvelope(dson.EnvelopeCBOR),
//	    dson.WithMetricsCollector(collector),
//	)
//
// Configuration can also be loaded from the environment, a .env file or a
// YAML file and passed with WithConfig. Nothing is read implicitly.
package dson
