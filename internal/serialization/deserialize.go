package serialization

import (
	"fmt"
	"regexp"

	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/classify"
	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/record"
	"github.com/kyr0/dson/internal/refs"
	"github.com/kyr0/dson/internal/value"
)

// Deserialize rebuilds the value graph rooted at record 0. Records that are
// not reachable from the root are ignored.
func Deserialize(records []record.Record, opts Options) (any, error) {
	if len(records) == 0 {
		return nil, dsonerr.NewMalformedRecordError(-1, "empty record table")
	}
	d := &deserializer{
		records:  records,
		maxDepth: opts.maxDepth(),
		op:       opts.operation(dsonerr.Deserialize),
		registry: refs.NewRegistry(),
	}
	return d.build(0, 0)
}

type deserializer struct {
	records  []record.Record
	maxDepth int
	op       dsonerr.Operation
	registry *refs.Registry
}

func (d *deserializer) build(index, depth int) (any, error) {
	r := d.records[index]
	if r.Tag.HasIdentity() {
		if v, ok := d.registry.Resolve(index); ok {
			return v, nil
		}
	}
	if err := r.Validate(index, len(d.records)); err != nil {
		return nil, err
	}

	switch r.Tag {
	case classify.Null:
		return nil, nil
	case classify.Undefined:
		return value.Undefined{}, nil
	case classify.Bool, classify.String:
		return r.Literal, nil
	case classify.Number:
		return record.NumberValue(r.Literal)
	case classify.BigInt:
		return record.BigIntValue(r.Literal)
	case classify.Date:
		return record.DateValue(r.Literal)
	case classify.Reference:
		target := r.Refs[0]
		if !d.records[target].Tag.HasIdentity() {
			return nil, dsonerr.NewMalformedRecordError(index,
				fmt.Sprintf("reference to record %d tagged %s, which has no identity", target, d.records[target].Tag))
		}
		return d.build(target, depth)
	}

	if depth >= d.maxDepth {
		return nil, dsonerr.NewDepthError(fmt.Sprintf("record %d", index), d.maxDepth, d.op)
	}

	switch r.Tag {
	case classify.Object:
		obj := value.NewObject()
		d.registry.Reserve(index, obj)
		for i, key := range r.Keys {
			child, err := d.build(r.Refs[i], depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key, child)
		}
		return obj, nil

	case classify.Array:
		items := make([]any, len(r.Refs))
		d.registry.Reserve(index, items)
		for i, ref := range r.Refs {
			child, err := d.build(ref, depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return items, nil

	case classify.Map:
		m := value.NewMap()
		d.registry.Reserve(index, m)
		for i := 0; i < len(r.Refs); i += 2 {
			k, err := d.build(r.Refs[i], depth+1)
			if err != nil {
				return nil, err
			}
			v, err := d.build(r.Refs[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil

	case classify.Set:
		set := value.NewSet()
		d.registry.Reserve(index, set)
		for _, ref := range r.Refs {
			member, err := d.build(ref, depth+1)
			if err != nil {
				return nil, err
			}
			set.Add(member)
		}
		return set, nil

	case classify.RegExp:
		re, err := regexp.Compile(r.Literal.(string))
		if err != nil {
			return nil, dsonerr.NewMalformedRecordError(index, err.Error())
		}
		d.registry.Reserve(index, re)
		return re, nil

	case classify.Error:
		e := &value.Error{Name: r.Keys[0], Message: r.Keys[1]}
		d.registry.Reserve(index, e)
		if len(r.Refs) == 1 {
			cause, err := d.build(r.Refs[0], depth+1)
			if err != nil {
				return nil, err
			}
			e.Cause = cause
		}
		return e, nil

	case classify.Binary:
		raw, err := binhex.HexToBinary(r.Literal.(string))
		if err != nil {
			return nil, dsonerr.NewMalformedRecordError(index, err.Error())
		}
		buf, err := binhex.Decode(binhex.View(r.Keys[0]), raw)
		if err != nil {
			return nil, dsonerr.NewMalformedRecordError(index, err.Error())
		}
		d.registry.Reserve(index, buf)
		return buf, nil
	}

	return nil, dsonerr.NewMalformedRecordError(index, fmt.Sprintf("unexpected tag %s", r.Tag))
}
