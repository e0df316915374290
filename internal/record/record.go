// Package record defines the flattened form of a value graph: a table of
// tagged Records in which composites refer to their children by index.
package record

import (
	"fmt"

	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/classify"
	"github.com/kyr0/dson/internal/dsonerr"
)

// Record is one tagged unit of the table. Which fields are meaningful
// depends on Tag:
//
//	Null, Undefined     none
//	Bool, String        Literal
//	Number              Literal (any Go number, or "NaN", "Infinity", "-Infinity")
//	BigInt              Literal (*big.Int or decimal string)
//	Date                Literal (time.Time or RFC 3339 string, extended year outside 0000-9999)
//	RegExp              Literal (pattern source)
//	Binary              Keys[0] view, Literal marked hex string
//	Reference           Refs[0]
//	Object              Keys[i] paired with Refs[i]
//	Array, Set          Refs
//	Map                 Refs as key, value, key, value...
//	Error               Keys name and message, optional Refs[0] cause
type Record struct {
	Tag     classify.Tag
	Literal any
	Keys    []string
	Refs    []int
}

// Table accumulates records in first-visit order.
type Table struct {
	records []Record
}

func NewTable() *Table {
	return &Table{}
}

// Reserve appends an empty slot and returns its index. The slot is filled
// with Set once the record's children have been indexed.
func (t *Table) Reserve() int {
	t.records = append(t.records, Record{})
	return len(t.records) - 1
}

func (t *Table) Set(index int, r Record) {
	t.records[index] = r
}

func (t *Table) Append(r Record) int {
	t.records = append(t.records, r)
	return len(t.records) - 1
}

func (t *Table) Len() int { return len(t.records) }

func (t *Table) Records() []Record { return t.records }

// Validate checks that the record's payload matches its tag and that every
// index it carries lies inside a table of size records.
func (r Record) Validate(index, size int) error {
	mismatch := func(expected string) error {
		return dsonerr.NewPayloadMismatchError(index, r.Tag.String(), expected)
	}

	switch r.Tag {
	case classify.Null, classify.Undefined:
		if r.Literal != nil || len(r.Keys) != 0 || len(r.Refs) != 0 {
			return mismatch("no payload")
		}
		return nil
	case classify.Bool:
		if _, ok := r.Literal.(bool); !ok {
			return mismatch("a boolean")
		}
	case classify.String:
		if _, ok := r.Literal.(string); !ok {
			return mismatch("a string")
		}
	case classify.Number:
		if _, err := NumberValue(r.Literal); err != nil {
			return mismatch("a number")
		}
	case classify.BigInt:
		if _, err := BigIntValue(r.Literal); err != nil {
			return mismatch("an integer")
		}
	case classify.Date:
		if _, err := DateValue(r.Literal); err != nil {
			return mismatch("a timestamp")
		}
	case classify.RegExp:
		if _, ok := r.Literal.(string); !ok {
			return mismatch("a pattern source")
		}
	case classify.Binary:
		s, ok := r.Literal.(string)
		if !ok || len(r.Keys) != 1 || !binhex.View(r.Keys[0]).IsValid() || !binhex.IsHex(s) {
			return mismatch("a view and a hex string")
		}
	case classify.Reference:
		if len(r.Refs) != 1 {
			return mismatch("exactly one index")
		}
	case classify.Object:
		if len(r.Keys) != len(r.Refs) {
			return mismatch("key/index pairs")
		}
	case classify.Map:
		if len(r.Refs)%2 != 0 {
			return mismatch("key/value pairs")
		}
	case classify.Array, classify.Set:
		if len(r.Keys) != 0 {
			return mismatch("a list of indices")
		}
	case classify.Error:
		if len(r.Keys) != 2 || len(r.Refs) > 1 {
			return mismatch("a name, a message and an optional cause")
		}
	default:
		return dsonerr.NewMalformedRecordError(index, fmt.Sprintf("unknown tag %d", r.Tag))
	}

	for _, ref := range r.Refs {
		if ref < 0 || ref >= size {
			return dsonerr.NewIndexOutOfRangeError(index, ref, size)
		}
	}
	return nil
}
