package serialization

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/classify"
	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/record"
	"github.com/kyr0/dson/internal/value"
)

func roundTrip(t *testing.T, v any, opts Options) any {
	t.Helper()
	records, err := Serialize(v, opts)
	require.NoError(t, err)
	out, err := Deserialize(records, opts)
	require.NoError(t, err)
	return out
}

func TestSerializeLayout(t *testing.T) {
	shared := value.NewObject()
	shared.Set("x", 1)
	root := value.NewObject()
	root.Set("a", shared)
	root.Set("b", shared)

	records, err := Serialize(root, Options{})
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, record.Record{Tag: classify.Object, Keys: []string{"a", "b"}, Refs: []int{1, 3}}, records[0])
	assert.Equal(t, record.Record{Tag: classify.Object, Keys: []string{"x"}, Refs: []int{2}}, records[1])
	assert.Equal(t, record.Record{Tag: classify.Number, Literal: 1}, records[2])
	assert.Equal(t, record.Record{Tag: classify.Reference, Refs: []int{1}}, records[3])
}

func TestReferencesPointBackwards(t *testing.T) {
	a := value.NewObject()
	b := value.NewObject()
	a.Set("b", b)
	b.Set("a", a)
	list := []any{a, b, a}

	records, err := Serialize(list, Options{})
	require.NoError(t, err)

	for i, r := range records {
		if r.Tag == classify.Reference {
			assert.Less(t, r.Refs[0], i)
		}
	}
}

func TestCycles(t *testing.T) {
	t.Run("object referring to itself", func(t *testing.T) {
		a := value.NewObject()
		a.Set("self", a)

		out := roundTrip(t, a, Options{})
		obj, ok := out.(*value.Object)
		require.True(t, ok)
		self, _ := obj.Get("self")
		assert.Same(t, obj, self)
		assert.NotSame(t, a, obj)
	})

	t.Run("plain map referring to itself", func(t *testing.T) {
		m := map[string]any{"n": 1}
		m["self"] = m

		out := roundTrip(t, m, Options{})
		obj := out.(*value.Object)
		self, _ := obj.Get("self")
		assert.Same(t, obj, self)
	})

	t.Run("slice containing itself", func(t *testing.T) {
		s := make([]any, 2)
		s[0] = "head"
		s[1] = s

		out := roundTrip(t, s, Options{})
		items := out.([]any)
		require.Len(t, items, 2)
		outID, _ := value.IdentityOf(items)
		innerID, ok := value.IdentityOf(items[1])
		require.True(t, ok)
		assert.Equal(t, outID, innerID)
	})

	t.Run("map keyed by its owner", func(t *testing.T) {
		owner := value.NewObject()
		m := value.NewMap()
		m.Set(owner, "owner")
		owner.Set("index", m)

		out := roundTrip(t, owner, Options{})
		obj := out.(*value.Object)
		idx, _ := obj.Get("index")
		got, ok := idx.(*value.Map).Get(obj)
		require.True(t, ok)
		assert.Equal(t, "owner", got)
	})

	t.Run("set containing itself", func(t *testing.T) {
		s := value.NewSet()
		s.Add(1)
		s.Add(s)

		out := roundTrip(t, s, Options{})
		set := out.(*value.Set)
		assert.True(t, set.Has(set))
		assert.Equal(t, 2, set.Len())
	})

	t.Run("error caused by itself", func(t *testing.T) {
		e := &value.Error{Name: "LoopError", Message: "again"}
		e.Cause = e

		out := roundTrip(t, e, Options{})
		got := out.(*value.Error)
		assert.Same(t, got, got.Cause)
		assert.Equal(t, "LoopError", got.Name)
	})
}

func TestSharedReferences(t *testing.T) {
	shared := map[string]any{"x": 1}
	bytes := []byte{1, 2, 3}
	re := regexp.MustCompile(`^a+$`)
	root := value.NewObject()
	root.Set("a", shared)
	root.Set("b", shared)
	root.Set("c", bytes)
	root.Set("d", bytes)
	root.Set("e", re)
	root.Set("f", re)

	out := roundTrip(t, root, Options{}).(*value.Object)
	a, _ := out.Get("a")
	b, _ := out.Get("b")
	assert.Same(t, a, b)

	c, _ := out.Get("c")
	d, _ := out.Get("d")
	cID, _ := value.IdentityOf(c)
	dID, _ := value.IdentityOf(d)
	assert.Equal(t, cID, dID)

	e, _ := out.Get("e")
	f, _ := out.Get("f")
	assert.Same(t, e, f)
	assert.Equal(t, `^a+$`, e.(*regexp.Regexp).String())
}

func TestPrimitives(t *testing.T) {
	when := time.Date(2023, 1, 2, 3, 4, 5, 6, time.UTC)
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name  string
		value any
		check func(t *testing.T, out any)
	}{
		{"nil", nil, func(t *testing.T, out any) { assert.Nil(t, out) }},
		{"undefined", value.Undefined{}, func(t *testing.T, out any) { assert.Equal(t, value.Undefined{}, out) }},
		{"bool", false, func(t *testing.T, out any) { assert.Equal(t, false, out) }},
		{"int keeps type", 7, func(t *testing.T, out any) { assert.Equal(t, 7, out) }},
		{"uint16 keeps type", uint16(7), func(t *testing.T, out any) { assert.Equal(t, uint16(7), out) }},
		{"string", "héllo", func(t *testing.T, out any) { assert.Equal(t, "héllo", out) }},
		{"bigint", huge, func(t *testing.T, out any) {
			got := out.(*big.Int)
			assert.Equal(t, 0, huge.Cmp(got))
			assert.NotSame(t, huge, got)
		}},
		{"date", when, func(t *testing.T, out any) { assert.True(t, when.Equal(out.(time.Time))) }},
		{"NaN", math.NaN(), func(t *testing.T, out any) { assert.True(t, math.IsNaN(out.(float64))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, roundTrip(t, tt.value, Options{}))
		})
	}
}

func TestJSONMode(t *testing.T) {
	when := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	root := []any{int64(3), big.NewInt(9), when, math.Inf(1)}

	records, err := Serialize(root, Options{JSON: true})
	require.NoError(t, err)

	assert.Equal(t, 3.0, records[1].Literal)
	assert.Equal(t, "9", records[2].Literal)
	assert.Equal(t, "2023-01-02T03:04:05Z", records[3].Literal)
	assert.Equal(t, record.Infinity, records[4].Literal)

	out, err := Deserialize(records, Options{})
	require.NoError(t, err)
	items := out.([]any)
	assert.Equal(t, 3.0, items[0])
	assert.Equal(t, "9", items[1].(*big.Int).String())
	assert.True(t, when.Equal(items[2].(time.Time)))
	assert.True(t, math.IsInf(items[3].(float64), 1))
}

func TestOrderPreserved(t *testing.T) {
	obj := value.NewObject()
	for _, k := range []string{"zeta", "alpha", "mid"} {
		obj.Set(k, k)
	}
	m := value.NewMap()
	m.Set("b", 2)
	m.Set("a", 1)
	s := value.NewSet()
	s.Add(3)
	s.Add(1)
	s.Add(2)

	out := roundTrip(t, []any{obj, m, s}, Options{}).([]any)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, out[0].(*value.Object).Keys())
	entries := out[1].(*value.Map).Entries()
	assert.Equal(t, "b", entries[0].Key)
	assert.Equal(t, "a", entries[1].Key)
	assert.Equal(t, []any{3, 1, 2}, out[2].(*value.Set).Values())
}

func TestPlainMapKeysSorted(t *testing.T) {
	records, err := Serialize(map[string]any{"c": 1, "a": 2, "b": 3}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, records[0].Keys)
}

func TestErrors(t *testing.T) {
	base := errors.New("disk full")
	wrapped := fmt.Errorf("save: %w", base)

	out := roundTrip(t, wrapped, Options{}).(*value.Error)
	assert.Equal(t, value.DefaultErrorName, out.Name)
	assert.Equal(t, "save: disk full", out.Message)
	cause, ok := out.Cause.(*value.Error)
	require.True(t, ok)
	assert.Equal(t, "disk full", cause.Message)
	assert.Nil(t, cause.Cause)

	custom := &value.Error{Name: "TypeError", Message: "bad", Cause: value.NewObject()}
	got := roundTrip(t, custom, Options{}).(*value.Error)
	assert.Equal(t, "TypeError", got.Name)
	assert.IsType(t, &value.Object{}, got.Cause)
}

func TestBinaryViews(t *testing.T) {
	views := []any{
		[]byte{0, 255},
		[]int16{-1, 1},
		[]float64{1.5, -2.25},
		[]uint64{math.MaxUint64},
	}
	out := roundTrip(t, views, Options{}).([]any)
	assert.Equal(t, views, out)

	records, err := Serialize([]byte{0xca, 0xfe}, Options{})
	require.NoError(t, err)
	assert.Equal(t, binhex.Marker+"cafe", records[0].Literal)
	assert.Equal(t, []string{"bytes"}, records[0].Keys)
}

func TestStrictRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		root any
		path string
	}{
		{"root function", func() {}, "$"},
		{"object entry", map[string]any{"f": func() {}}, "$.f"},
		{"array element", []any{1, make(chan int)}, "$[1]"},
		{"nested struct", []any{map[string]any{"s": struct{}{}}}, "$[0].s"},
		{"map value", func() any {
			m := value.NewMap()
			m.Set("k", func() {})
			return m
		}(), "$[0].value"},
		{"error cause", &value.Error{Message: "x", Cause: func() {}}, "$.cause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Serialize(tt.root, Options{Operation: dsonerr.Clone})
			require.Error(t, err)
			assert.ErrorIs(t, err, dsonerr.ErrUnsupportedType)
			assert.Contains(t, err.Error(), "value at "+tt.path+" ")
			assert.Contains(t, err.Error(), "clone operation")
		})
	}
}

func TestLossyDegrades(t *testing.T) {
	var dropped []string
	opts := Options{Lossy: true, OnDrop: func(path, typeName string) {
		dropped = append(dropped, path+" "+typeName)
	}}

	m := value.NewMap()
	m.Set("keep", 1)
	m.Set("fn", func() {})
	s := value.NewSet()
	s.Add(make(chan int))
	s.Add("kept")

	obj := value.NewObject()
	obj.Set("f", func() {})
	obj.Set("n", 1)
	obj.Set("list", []any{func() {}, 2})
	obj.Set("map", m)
	obj.Set("set", s)

	out := roundTrip(t, obj, opts).(*value.Object)
	assert.Equal(t, []string{"n", "list", "map", "set"}, out.Keys())

	list, _ := out.Get("list")
	assert.Equal(t, []any{value.Undefined{}, 2}, list)

	gotMap, _ := out.Get("map")
	assert.Equal(t, 1, gotMap.(*value.Map).Len())

	gotSet, _ := out.Get("set")
	assert.Equal(t, []any{"kept"}, gotSet.(*value.Set).Values())

	assert.Equal(t, []string{
		"$.f func()",
		"$.list[0] func()",
		"$.map[1].value func()",
		"$.set[0] chan int",
	}, dropped)

	root := roundTrip(t, func() {}, opts)
	assert.Equal(t, value.Undefined{}, root)
}

func TestDepthGuard(t *testing.T) {
	var deep any = "leaf"
	for i := 0; i < 50; i++ {
		deep = []any{deep}
	}

	_, err := Serialize(deep, Options{MaxDepth: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, dsonerr.ErrDepthExceeded)

	records, err := Serialize(deep, Options{})
	require.NoError(t, err)

	_, err = Deserialize(records, Options{MaxDepth: 10})
	assert.ErrorIs(t, err, dsonerr.ErrDepthExceeded)

	_, err = Deserialize(records, Options{})
	assert.NoError(t, err)
}

func TestDepthGuardBoundary(t *testing.T) {
	one := []any{1.0}
	two := []any{[]any{1.0}}

	_, err := Serialize(one, Options{MaxDepth: 1})
	assert.NoError(t, err)
	_, err = Serialize(two, Options{MaxDepth: 1})
	assert.ErrorIs(t, err, dsonerr.ErrDepthExceeded)
	_, err = Serialize(two, Options{MaxDepth: 2})
	assert.NoError(t, err)

	records, err := Serialize(two, Options{})
	require.NoError(t, err)
	_, err = Deserialize(records, Options{MaxDepth: 1})
	assert.ErrorIs(t, err, dsonerr.ErrDepthExceeded)
	_, err = Deserialize(records, Options{MaxDepth: 2})
	assert.NoError(t, err)
}

func TestDeserializeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		records []record.Record
	}{
		{"empty", nil},
		{"index out of range", []record.Record{{Tag: classify.Array, Refs: []int{2}}}},
		{"map shaped like list", []record.Record{
			{Tag: classify.Map, Refs: []int{1}},
			{Tag: classify.Null},
		}},
		{"reference to primitive", []record.Record{
			{Tag: classify.Array, Refs: []int{1, 2}},
			{Tag: classify.Number, Literal: 1.0},
			{Tag: classify.Reference, Refs: []int{1}},
		}},
		{"reference to itself", []record.Record{{Tag: classify.Reference, Refs: []int{0}}}},
		{"invalid pattern", []record.Record{{Tag: classify.RegExp, Literal: "("}}},
		{"misaligned view", []record.Record{{Tag: classify.Binary, Keys: []string{"int32"}, Literal: binhex.Marker + "0102"}}},
		{"string tag with number", []record.Record{{Tag: classify.String, Literal: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.records, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, dsonerr.ErrMalformedRecord)
		})
	}
}

func TestDeserializeSharesDirectChildren(t *testing.T) {
	records := []record.Record{
		{Tag: classify.Array, Refs: []int{1, 1}},
		{Tag: classify.Object},
	}
	out, err := Deserialize(records, Options{})
	require.NoError(t, err)
	items := out.([]any)
	assert.Same(t, items[0], items[1])
}
