// Package refs keeps the identity bookkeeping for one codec call: which
// record index a live value was assigned while serializing, and which live
// value a record index produced while deserializing.
//
// Both tables are created per call and never shared between calls.
package refs

import "github.com/kyr0/dson/internal/value"

// Tracker assigns record indices to value identities during serialization.
type Tracker struct {
	ids map[value.Identity]int
}

func NewTracker() *Tracker {
	return &Tracker{ids: make(map[value.Identity]int)}
}

// IDFor returns the index previously assigned to id with isNew false, or
// assigns the index produced by alloc and returns it with isNew true. alloc
// is only called for identities seen for the first time.
func (t *Tracker) IDFor(id value.Identity, alloc func() int) (index int, isNew bool) {
	if index, ok := t.ids[id]; ok {
		return index, false
	}
	index = alloc()
	t.ids[id] = index
	return index, true
}

// Len returns the number of distinct identities tracked so far.
func (t *Tracker) Len() int { return len(t.ids) }
