package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/record"
)

// JSONCodec encodes record tables as a JSON array with encoding/json. HTML
// characters are left unescaped so the text stays readable.
type JSONCodec struct{}

func (JSONCodec) Type() Type { return JSON }

func (JSONCodec) Encode(records []record.Record) ([]byte, error) {
	doc, err := record.ToWire(records)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode records as JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (JSONCodec) Decode(data []byte) ([]record.Record, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dsonerr.NewMalformedRecordError(-1, fmt.Sprintf("invalid JSON: %v", err))
	}
	return record.FromWire(doc)
}
