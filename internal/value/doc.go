// Package value defines the composite kinds of the codec's value graph that Go
// has no native equivalent for: insertion-ordered objects, maps keyed by
// arbitrary values, sets, reconstructed errors and the undefined marker.
//
// All containers are pointer types so that two paths reaching the same
// container observe the same instance, which is what the codec preserves.
package value
