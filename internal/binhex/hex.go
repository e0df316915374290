// Package binhex converts raw byte buffers to and from marked hex strings and
// UTF-8 text, and lays typed numeric views out as little-endian bytes.
package binhex

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Marker prefixes every hex-encoded buffer so it cannot be mistaken for a
// plain string.
const Marker = "dson:hex:"

// BinaryToHex encodes buf as Marker followed by lowercase hex digits.
func BinaryToHex(buf []byte) string {
	var b strings.Builder
	b.Grow(len(Marker) + hex.EncodedLen(len(buf)))
	b.WriteString(Marker)
	b.WriteString(hex.EncodeToString(buf))
	return b.String()
}

// HexToBinary decodes a string produced by BinaryToHex.
func HexToBinary(s string) ([]byte, error) {
	digits, ok := strings.CutPrefix(s, Marker)
	if !ok {
		return nil, fmt.Errorf("hex string is missing the %q marker", Marker)
	}
	buf, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}
	return buf, nil
}

// IsHex reports whether s carries the binary marker.
func IsHex(s string) bool {
	return strings.HasPrefix(s, Marker)
}

// TextToBinary returns the UTF-8 bytes of s.
func TextToBinary(s string) []byte {
	return []byte(s)
}

// BinaryToText decodes buf as UTF-8, replacing invalid sequences with U+FFFD.
func BinaryToText(buf []byte) string {
	if utf8.Valid(buf) {
		return string(buf)
	}
	return strings.ToValidUTF8(string(buf), "�")
}
