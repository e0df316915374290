package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyr0/dson/internal/binhex"
	"github.com/kyr0/dson/internal/classify"
	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/record"
)

func sampleRecords() []record.Record {
	return []record.Record{
		{Tag: classify.Object, Keys: []string{"name", "bytes", "self", "nan", "tags"}, Refs: []int{1, 2, 3, 4, 5}},
		{Tag: classify.String, Literal: "<dson & co>"},
		{Tag: classify.Binary, Keys: []string{"bytes"}, Literal: binhex.BinaryToHex([]byte{0xde, 0xad})},
		{Tag: classify.Reference, Refs: []int{0}},
		{Tag: classify.Number, Literal: math.NaN()},
		{Tag: classify.Set, Refs: []int{6}},
		{Tag: classify.Bool, Literal: true},
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"json", JSON, false},
		{" CBOR ", CBOR, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, dsonerr.ErrInvalidEnvelope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreate(t *testing.T) {
	for _, typ := range AllTypes() {
		codec := typ.Create()
		require.NotNil(t, codec)
		assert.Equal(t, typ, codec.Type())
	}
	assert.Nil(t, Type("xml").Create())
}

func TestRoundTrip(t *testing.T) {
	for _, typ := range AllTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			codec := typ.Create()
			data, err := codec.Encode(sampleRecords())
			require.NoError(t, err)

			back, err := codec.Decode(data)
			require.NoError(t, err)
			require.Len(t, back, 7)

			assert.Equal(t, []string{"name", "bytes", "self", "nan", "tags"}, back[0].Keys)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, back[0].Refs)
			assert.Equal(t, "<dson & co>", back[1].Literal)
			assert.Equal(t, []int{0}, back[3].Refs)
			assert.Equal(t, record.NaN, back[4].Literal)
			assert.Equal(t, []int{6}, back[5].Refs)
			assert.Equal(t, true, back[6].Literal)
		})
	}
}

func TestJSONText(t *testing.T) {
	data, err := JSONCodec{}.Encode([]record.Record{
		{Tag: classify.Array, Refs: []int{1}},
		{Tag: classify.String, Literal: "a<b"},
	})
	require.NoError(t, err)
	assert.Equal(t, `[["array",[1]],["string","a<b"]]`, string(data))
}

func TestCBORDeterministic(t *testing.T) {
	a, err := CBORCodec{}.Encode(sampleRecords())
	require.NoError(t, err)
	b, err := CBORCodec{}.Encode(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := JSONCodec{}.Decode([]byte("{not json"))
	assert.ErrorIs(t, err, dsonerr.ErrMalformedRecord)

	_, err = CBORCodec{}.Decode([]byte{0xff, 0x00})
	assert.ErrorIs(t, err, dsonerr.ErrMalformedRecord)

	_, err = JSONCodec{}.Decode([]byte(`[["map",[0,0]]]`))
	assert.ErrorIs(t, err, dsonerr.ErrMalformedRecord)
}
