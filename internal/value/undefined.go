package value

// Undefined marks an absent value. Lossy serialization substitutes it for
// values that cannot be represented.
type Undefined struct{}

func (Undefined) String() string { return "undefined" }
