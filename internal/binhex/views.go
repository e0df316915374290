package binhex

import (
	"encoding/binary"
	"fmt"
	"math"
)

// View names the element type of a binary buffer.
type View string

const (
	Bytes   View = "bytes"
	Int8    View = "int8"
	Int16   View = "int16"
	Uint16  View = "uint16"
	Int32   View = "int32"
	Uint32  View = "uint32"
	Int64   View = "int64"
	Uint64  View = "uint64"
	Float32 View = "float32"
	Float64 View = "float64"
)

// IsValid checks if the view is one of the supported element types.
func (v View) IsValid() bool {
	switch v {
	case Bytes, Int8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Float32, Float64:
		return true
	default:
		return false
	}
}

// ViewOf returns the view of a supported slice type.
func ViewOf(v any) (View, bool) {
	switch v.(type) {
	case []byte:
		return Bytes, true
	case []int8:
		return Int8, true
	case []int16:
		return Int16, true
	case []uint16:
		return Uint16, true
	case []int32:
		return Int32, true
	case []uint32:
		return Uint32, true
	case []int64:
		return Int64, true
	case []uint64:
		return Uint64, true
	case []float32:
		return Float32, true
	case []float64:
		return Float64, true
	default:
		return "", false
	}
}

// Encode lays out a typed slice as little-endian bytes.
func Encode(v any) ([]byte, error) {
	le := binary.LittleEndian
	switch s := v.(type) {
	case []byte:
		out := make([]byte, len(s))
		copy(out, s)
		return out, nil
	case []int8:
		out := make([]byte, len(s))
		for i, x := range s {
			out[i] = byte(x)
		}
		return out, nil
	case []int16:
		out := make([]byte, 2*len(s))
		for i, x := range s {
			le.PutUint16(out[2*i:], uint16(x))
		}
		return out, nil
	case []uint16:
		out := make([]byte, 2*len(s))
		for i, x := range s {
			le.PutUint16(out[2*i:], x)
		}
		return out, nil
	case []int32:
		out := make([]byte, 4*len(s))
		for i, x := range s {
			le.PutUint32(out[4*i:], uint32(x))
		}
		return out, nil
	case []uint32:
		out := make([]byte, 4*len(s))
		for i, x := range s {
			le.PutUint32(out[4*i:], x)
		}
		return out, nil
	case []int64:
		out := make([]byte, 8*len(s))
		for i, x := range s {
			le.PutUint64(out[8*i:], uint64(x))
		}
		return out, nil
	case []uint64:
		out := make([]byte, 8*len(s))
		for i, x := range s {
			le.PutUint64(out[8*i:], x)
		}
		return out, nil
	case []float32:
		out := make([]byte, 4*len(s))
		for i, x := range s {
			le.PutUint32(out[4*i:], math.Float32bits(x))
		}
		return out, nil
	case []float64:
		out := make([]byte, 8*len(s))
		for i, x := range s {
			le.PutUint64(out[8*i:], math.Float64bits(x))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported binary view: %T", v)
	}
}

// Decode rebuilds a slice of the given view from little-endian bytes.
func Decode(view View, buf []byte) (any, error) {
	le := binary.LittleEndian
	width := map[View]int{
		Bytes: 1, Int8: 1, Int16: 2, Uint16: 2, Int32: 4,
		Uint32: 4, Int64: 8, Uint64: 8, Float32: 4, Float64: 8,
	}[view]
	if width == 0 {
		return nil, fmt.Errorf("unknown binary view %q", view)
	}
	if len(buf)%width != 0 {
		return nil, fmt.Errorf("%d bytes do not align to %s elements", len(buf), view)
	}
	n := len(buf) / width

	switch view {
	case Bytes:
		return buf, nil
	case Int8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(buf[i])
		}
		return out, nil
	case Int16:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(le.Uint16(buf[2*i:]))
		}
		return out, nil
	case Uint16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = le.Uint16(buf[2*i:])
		}
		return out, nil
	case Int32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(le.Uint32(buf[4*i:]))
		}
		return out, nil
	case Uint32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = le.Uint32(buf[4*i:])
		}
		return out, nil
	case Int64:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(le.Uint64(buf[8*i:]))
		}
		return out, nil
	case Uint64:
		out := make([]uint64, n)
		for i := range out {
			out[i] = le.Uint64(buf[8*i:])
		}
		return out, nil
	case Float32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(le.Uint32(buf[4*i:]))
		}
		return out, nil
	default:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(le.Uint64(buf[8*i:]))
		}
		return out, nil
	}
}
