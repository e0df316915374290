package envelope

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/record"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2) so the same record
// table always produces the same bytes.
var encMode cbor.EncMode

// decMode bounds nesting and element counts; the wire form is only ever three
// levels deep, so anything deeper is not a record table.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("envelope: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxNestedLevels: 16,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("envelope: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBORCodec encodes record tables as a CBOR array.
type CBORCodec struct{}

func (CBORCodec) Type() Type { return CBOR }

func (CBORCodec) Encode(records []record.Record) ([]byte, error) {
	doc, err := record.ToWire(records)
	if err != nil {
		return nil, err
	}
	data, err := encMode.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records as CBOR: %w", err)
	}
	return data, nil
}

func (CBORCodec) Decode(data []byte) ([]record.Record, error) {
	var doc any
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, dsonerr.NewMalformedRecordError(-1, fmt.Sprintf("invalid CBOR: %v", err))
	}
	return record.FromWire(doc)
}
