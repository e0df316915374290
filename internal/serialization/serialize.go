package serialization

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/classify"
	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/record"
	"github.com/kyr0/dson/internal/refs"
	"github.com/kyr0/dson/internal/value"
)

// Serialize flattens root into a record table. Record 0 is the root.
func Serialize(root any, opts Options) ([]record.Record, error) {
	s := &serializer{
		opts:     opts,
		maxDepth: opts.maxDepth(),
		op:       opts.operation(dsonerr.Serialize),
		table:    record.NewTable(),
		tracker:  refs.NewTracker(),
	}
	if _, err := s.walk(root, 0); err != nil {
		return nil, err
	}
	return s.table.Records(), nil
}

type serializer struct {
	opts     Options
	maxDepth int
	op       dsonerr.Operation
	table    *record.Table
	tracker  *refs.Tracker
	path     []string
}

func (s *serializer) pathString() string {
	return "$" + strings.Join(s.path, "")
}

func (s *serializer) push(segment string) { s.path = append(s.path, segment) }
func (s *serializer) pop()                { s.path = s.path[:len(s.path)-1] }

// skip reports whether v must be left out of its container under lossy mode.
func (s *serializer) skip(v any, segment string) bool {
	if !s.opts.Lossy || classify.Classify(v) != classify.Unsupported {
		return false
	}
	s.push(segment)
	s.drop(v)
	s.pop()
	return true
}

func (s *serializer) drop(v any) {
	if s.opts.OnDrop != nil {
		s.opts.OnDrop(s.pathString(), classify.TypeName(v))
	}
}

// walk emits the record for v and returns its index.
func (s *serializer) walk(v any, depth int) (int, error) {
	tag := classify.Classify(v)

	if tag == classify.Unsupported {
		if !s.opts.Lossy {
			return 0, dsonerr.NewClassificationError(s.pathString(), classify.TypeName(v), s.op)
		}
		s.drop(v)
		return s.table.Append(record.Record{Tag: classify.Undefined}), nil
	}

	if tag.IsPrimitive() {
		return s.table.Append(s.primitive(tag, v)), nil
	}

	if depth >= s.maxDepth {
		return 0, dsonerr.NewDepthError(s.pathString(), s.maxDepth, s.op)
	}

	id, tracked := value.IdentityOf(v)
	if !tracked {
		index := s.table.Reserve()
		return index, s.composite(index, tag, v, depth)
	}

	index, isNew := s.tracker.IDFor(id, s.table.Reserve)
	if !isNew {
		return s.table.Append(record.Record{Tag: classify.Reference, Refs: []int{index}}), nil
	}
	return index, s.composite(index, tag, v, depth)
}

func (s *serializer) primitive(tag classify.Tag, v any) record.Record {
	r := record.Record{Tag: tag}
	switch tag {
	case classify.Bool, classify.String:
		r.Literal = v
	case classify.Number:
		if s.opts.JSON {
			r.Literal = record.JSONNumber(v)
		} else {
			r.Literal = v
		}
	case classify.BigInt:
		n := v.(*big.Int)
		if s.opts.JSON {
			r.Literal = record.JSONBigInt(n)
		} else {
			r.Literal = new(big.Int).Set(n)
		}
	case classify.Date:
		t := v.(time.Time)
		if s.opts.JSON {
			r.Literal = record.JSONDate(t)
		} else {
			r.Literal = t
		}
	}
	return r
}

// composite writes the record reserved at index once every child has one.
func (s *serializer) composite(index int, tag classify.Tag, v any, depth int) error {
	var (
		r   record.Record
		err error
	)
	switch tag {
	case classify.Object:
		r, err = s.object(v, depth)
	case classify.Array:
		r, err = s.array(v.([]any), depth)
	case classify.Map:
		r, err = s.mapping(v.(*value.Map), depth)
	case classify.Set:
		r, err = s.set(v.(*value.Set), depth)
	case classify.RegExp:
		r = record.Record{Tag: classify.RegExp, Literal: v.(*regexp.Regexp).String()}
	case classify.Error:
		r, err = s.errorValue(v.(error), depth)
	case classify.Binary:
		r, err = s.binary(v)
	default:
		err = fmt.Errorf("no composite encoding for %s", tag)
	}
	if err != nil {
		return err
	}
	s.table.Set(index, r)
	return nil
}

func (s *serializer) object(v any, depth int) (record.Record, error) {
	var (
		keys []string
		get  func(string) any
	)
	switch o := v.(type) {
	case *value.Object:
		keys = o.Keys()
		get = func(k string) any {
			child, _ := o.Get(k)
			return child
		}
	case map[string]any:
		keys = make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		// Go maps have no insertion order; sorted keys keep output deterministic.
		sort.Strings(keys)
		get = func(k string) any { return o[k] }
	}

	r := record.Record{Tag: classify.Object, Keys: make([]string, 0, len(keys)), Refs: make([]int, 0, len(keys))}
	for _, k := range keys {
		child := get(k)
		segment := "." + k
		if s.skip(child, segment) {
			continue
		}
		s.push(segment)
		ci, err := s.walk(child, depth+1)
		s.pop()
		if err != nil {
			return record.Record{}, err
		}
		r.Keys = append(r.Keys, k)
		r.Refs = append(r.Refs, ci)
	}
	return r, nil
}

func (s *serializer) array(items []any, depth int) (record.Record, error) {
	r := record.Record{Tag: classify.Array, Refs: make([]int, 0, len(items))}
	for i, item := range items {
		s.push(fmt.Sprintf("[%d]", i))
		ci, err := s.walk(item, depth+1)
		s.pop()
		if err != nil {
			return record.Record{}, err
		}
		r.Refs = append(r.Refs, ci)
	}
	return r, nil
}

func (s *serializer) mapping(m *value.Map, depth int) (record.Record, error) {
	r := record.Record{Tag: classify.Map, Refs: make([]int, 0, 2*m.Len())}
	for i, e := range m.Entries() {
		if s.skip(e.Key, fmt.Sprintf("[%d].key", i)) || s.skip(e.Value, fmt.Sprintf("[%d].value", i)) {
			continue
		}
		s.push(fmt.Sprintf("[%d].key", i))
		ki, err := s.walk(e.Key, depth+1)
		s.pop()
		if err != nil {
			return record.Record{}, err
		}
		s.push(fmt.Sprintf("[%d].value", i))
		vi, err := s.walk(e.Value, depth+1)
		s.pop()
		if err != nil {
			return record.Record{}, err
		}
		r.Refs = append(r.Refs, ki, vi)
	}
	return r, nil
}

func (s *serializer) set(set *value.Set, depth int) (record.Record, error) {
	r := record.Record{Tag: classify.Set, Refs: make([]int, 0, set.Len())}
	for i, member := range set.Values() {
		segment := fmt.Sprintf("[%d]", i)
		if s.skip(member, segment) {
			continue
		}
		s.push(segment)
		ci, err := s.walk(member, depth+1)
		s.pop()
		if err != nil {
			return record.Record{}, err
		}
		r.Refs = append(r.Refs, ci)
	}
	return r, nil
}

func (s *serializer) errorValue(err error, depth int) (record.Record, error) {
	name, message := value.DefaultErrorName, err.Error()
	var cause any
	if e, ok := err.(*value.Error); ok {
		if e.Name != "" {
			name = e.Name
		}
		message, cause = e.Message, e.Cause
	} else if unwrapped := errors.Unwrap(err); unwrapped != nil {
		cause = unwrapped
	}

	r := record.Record{Tag: classify.Error, Keys: []string{name, message}}
	if cause == nil || s.skip(cause, ".cause") {
		return r, nil
	}
	s.push(".cause")
	ci, walkErr := s.walk(cause, depth+1)
	s.pop()
	if walkErr != nil {
		return record.Record{}, walkErr
	}
	r.Refs = []int{ci}
	return r, nil
}

func (s *serializer) binary(v any) (record.Record, error) {
	view, _ := binhex.ViewOf(v)
	raw, err := binhex.Encode(v)
	if err != nil {
		return record.Record{}, err
	}
	return record.Record{
		Tag:     classify.Binary,
		Keys:    []string{string(view)},
		Literal: binhex.BinaryToHex(raw),
	}, nil
}
