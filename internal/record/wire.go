package record

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/classify"
	"github.com/kyr0/dson/internal/dsonerr"
)

// RawText marks a text slot whose bytes are not valid UTF-8. Such a slot is
// written as ["raw", "dson:hex:..."] so JSON and CBOR carry it byte for byte.
const RawText = "raw"

// ToWire converts records into nested lists of JSON-safe scalars, ready for
// any envelope encoder. Every record is validated first.
func ToWire(records []Record) ([]any, error) {
	doc := make([]any, len(records))
	for i, r := range records {
		if err := r.Validate(i, len(records)); err != nil {
			return nil, err
		}
		w, err := r.wire(i)
		if err != nil {
			return nil, err
		}
		doc[i] = w
	}
	return doc, nil
}

func (r Record) wire(index int) ([]any, error) {
	tag := r.Tag.String()
	switch r.Tag {
	case classify.Null, classify.Undefined:
		return []any{tag}, nil
	case classify.Bool, classify.RegExp:
		return []any{tag, r.Literal}, nil
	case classify.String:
		return []any{tag, wireText(r.Literal.(string))}, nil
	case classify.Number:
		return []any{tag, JSONNumber(r.Literal)}, nil
	case classify.BigInt:
		n, err := BigIntValue(r.Literal)
		if err != nil {
			return nil, dsonerr.NewMalformedRecordError(index, err.Error())
		}
		return []any{tag, JSONBigInt(n)}, nil
	case classify.Date:
		t, err := DateValue(r.Literal)
		if err != nil {
			return nil, dsonerr.NewMalformedRecordError(index, err.Error())
		}
		return []any{tag, JSONDate(t)}, nil
	case classify.Binary:
		return []any{tag, r.Keys[0], r.Literal}, nil
	case classify.Reference:
		return []any{tag, r.Refs[0]}, nil
	case classify.Object:
		pairs := make([]any, len(r.Refs))
		for i, ref := range r.Refs {
			pairs[i] = []any{wireText(r.Keys[i]), ref}
		}
		return []any{tag, pairs}, nil
	case classify.Array, classify.Set:
		return []any{tag, indices(r.Refs)}, nil
	case classify.Map:
		pairs := make([]any, 0, len(r.Refs)/2)
		for i := 0; i < len(r.Refs); i += 2 {
			pairs = append(pairs, []any{r.Refs[i], r.Refs[i+1]})
		}
		return []any{tag, pairs}, nil
	case classify.Error:
		fields := []any{wireText(r.Keys[0]), wireText(r.Keys[1])}
		if len(r.Refs) == 1 {
			fields = append(fields, r.Refs[0])
		}
		return []any{tag, fields}, nil
	}
	return nil, dsonerr.NewMalformedRecordError(index, fmt.Sprintf("unknown tag %d", r.Tag))
}

func wireText(s string) any {
	if utf8.ValidString(s) {
		return s
	}
	return []any{RawText, binhex.BinaryToHex([]byte(s))}
}

// textFromWire accepts a plain string or a RawText pair.
func textFromWire(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []any:
		if len(t) != 2 || t[0] != RawText {
			return "", false
		}
		marked, ok := t[1].(string)
		if !ok {
			return "", false
		}
		buf, err := binhex.HexToBinary(marked)
		if err != nil {
			return "", false
		}
		return string(buf), true
	}
	return "", false
}

func indices(refs []int) []any {
	out := make([]any, len(refs))
	for i, ref := range refs {
		out[i] = ref
	}
	return out
}

// FromWire rebuilds and validates records from a decoded envelope document.
// Indices may arrive as float64 (JSON) or as unsigned and signed integers
// (CBOR).
func FromWire(doc any) ([]Record, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, dsonerr.NewMalformedRecordError(-1, fmt.Sprintf("document must be a list of records, got %T", doc))
	}
	if len(items) == 0 {
		return nil, dsonerr.NewMalformedRecordError(-1, "empty record table")
	}

	records := make([]Record, len(items))
	for i, item := range items {
		r, err := fromWire(i, item)
		if err != nil {
			return nil, err
		}
		records[i] = r
	}
	for i, r := range records {
		if err := r.Validate(i, len(records)); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func fromWire(index int, item any) (Record, error) {
	fields, ok := item.([]any)
	if !ok || len(fields) == 0 {
		return Record{}, dsonerr.NewMalformedRecordError(index, "record must be a non-empty list")
	}
	name, ok := fields[0].(string)
	if !ok {
		return Record{}, dsonerr.NewMalformedRecordError(index, "record tag must be a string")
	}
	tag, err := classify.ParseTag(name)
	if err != nil {
		return Record{}, dsonerr.NewMalformedRecordError(index, err.Error())
	}

	args := fields[1:]
	mismatch := func(expected string) error {
		return dsonerr.NewPayloadMismatchError(index, name, expected)
	}

	switch tag {
	case classify.Null, classify.Undefined:
		if len(args) != 0 {
			return Record{}, mismatch("no payload")
		}
		return Record{Tag: tag}, nil

	case classify.Bool, classify.Number, classify.BigInt, classify.Date, classify.RegExp:
		if len(args) != 1 {
			return Record{}, mismatch("one literal")
		}
		return Record{Tag: tag, Literal: args[0]}, nil

	case classify.String:
		if len(args) != 1 {
			return Record{}, mismatch("one literal")
		}
		text, ok := textFromWire(args[0])
		if !ok {
			return Record{}, mismatch("a string")
		}
		return Record{Tag: tag, Literal: text}, nil

	case classify.Binary:
		if len(args) != 2 {
			return Record{}, mismatch("a view and a hex string")
		}
		view, ok := args[0].(string)
		if !ok {
			return Record{}, mismatch("a view and a hex string")
		}
		return Record{Tag: tag, Keys: []string{view}, Literal: args[1]}, nil

	case classify.Reference:
		if len(args) != 1 {
			return Record{}, mismatch("exactly one index")
		}
		ref, ok := toIndex(args[0])
		if !ok {
			return Record{}, mismatch("exactly one index")
		}
		return Record{Tag: tag, Refs: []int{ref}}, nil

	case classify.Object:
		pairs, ok := payloadList(args)
		if !ok {
			return Record{}, mismatch("key/index pairs")
		}
		r := Record{Tag: tag, Keys: make([]string, len(pairs)), Refs: make([]int, len(pairs))}
		for i, p := range pairs {
			pair, ok := p.([]any)
			if !ok || len(pair) != 2 {
				return Record{}, mismatch("key/index pairs")
			}
			key, okKey := textFromWire(pair[0])
			ref, okRef := toIndex(pair[1])
			if !okKey || !okRef {
				return Record{}, mismatch("key/index pairs")
			}
			r.Keys[i], r.Refs[i] = key, ref
		}
		return r, nil

	case classify.Array, classify.Set:
		list, ok := payloadList(args)
		if !ok {
			return Record{}, mismatch("a list of indices")
		}
		r := Record{Tag: tag, Refs: make([]int, len(list))}
		for i, item := range list {
			ref, ok := toIndex(item)
			if !ok {
				return Record{}, mismatch("a list of indices")
			}
			r.Refs[i] = ref
		}
		return r, nil

	case classify.Map:
		pairs, ok := payloadList(args)
		if !ok {
			return Record{}, mismatch("key/value pairs")
		}
		r := Record{Tag: tag, Refs: make([]int, 0, 2*len(pairs))}
		for _, p := range pairs {
			pair, ok := p.([]any)
			if !ok || len(pair) != 2 {
				return Record{}, mismatch("key/value pairs")
			}
			k, okKey := toIndex(pair[0])
			v, okValue := toIndex(pair[1])
			if !okKey || !okValue {
				return Record{}, mismatch("key/value pairs")
			}
			r.Refs = append(r.Refs, k, v)
		}
		return r, nil

	case classify.Error:
		list, ok := payloadList(args)
		if !ok || len(list) < 2 || len(list) > 3 {
			return Record{}, mismatch("a name, a message and an optional cause")
		}
		name, okName := textFromWire(list[0])
		message, okMessage := textFromWire(list[1])
		if !okName || !okMessage {
			return Record{}, mismatch("a name, a message and an optional cause")
		}
		r := Record{Tag: tag, Keys: []string{name, message}}
		if len(list) == 3 {
			cause, ok := toIndex(list[2])
			if !ok {
				return Record{}, mismatch("a name, a message and an optional cause")
			}
			r.Refs = []int{cause}
		}
		return r, nil
	}

	return Record{}, dsonerr.NewMalformedRecordError(index, fmt.Sprintf("unexpected tag %s", name))
}

func payloadList(args []any) ([]any, bool) {
	if len(args) != 1 {
		return nil, false
	}
	list, ok := args[0].([]any)
	return list, ok
}

func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, n >= 0
	case int64:
		return int(n), n >= 0 && n <= math.MaxInt32
	case uint64:
		return int(n), n <= math.MaxInt32
	}
	return 0, false
}
