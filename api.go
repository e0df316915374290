package dson

import "github.com/kyr0/dson/internal/binhex"

var defaultCodec = mustNew()

func mustNew() *Codec {
	c, err := New()
	if err != nil {
		panic("dson: default codec: " + err.Error())
	}
	return c
}

// Default returns the codec behind the package-level functions.
func Default() *Codec { return defaultCodec }

// Stringify encodes v as JSON text with the default codec.
func Stringify(v any) (string, error) { return defaultCodec.Stringify(v) }

// Parse rebuilds a value encoded by Stringify.
func Parse(text string) (any, error) { return defaultCodec.Parse(text) }

// Clone deep-copies v, failing on unsupported values.
func Clone(v any) (any, error) { return defaultCodec.Clone(v) }

// IsEqual reports whether a and b have the same canonical text. See Codec.IsEqual.
func IsEqual(a, b any) bool { return defaultCodec.IsEqual(a, b) }

func Serialize(v any) ([]Record, error) { return defaultCodec.Serialize(v) }

func Deserialize(records []Record) (any, error) { return defaultCodec.Deserialize(records) }

// BinaryToHex encodes buf as lowercase hex prefixed with HexMarker.
func BinaryToHex(buf []byte) string { return binhex.BinaryToHex(buf) }

// HexToBinary decodes a string produced by BinaryToHex. It fails when the
// marker is missing or the digits are not valid hex.
func HexToBinary(s string) ([]byte, error) { return binhex.HexToBinary(s) }

// TextToBinary returns the UTF-8 bytes of s.
func TextToBinary(s string) []byte { return binhex.TextToBinary(s) }

// BinaryToText decodes UTF-8, replacing invalid sequences with U+FFFD.
func BinaryToText(buf []byte) string { return binhex.BinaryToText(buf) }
