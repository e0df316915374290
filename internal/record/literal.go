package record

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Names of the non-finite numbers in their JSON-safe form.
const (
	NaN         = "NaN"
	Infinity    = "Infinity"
	NegInfinity = "-Infinity"
)

// JSONNumber down-casts a Go number to float64, spelling non-finite values as
// strings because JSON cannot carry them.
func JSONNumber(n any) any {
	x, err := Float64(n)
	if err != nil {
		return n
	}
	switch {
	case math.IsNaN(x):
		return NaN
	case math.IsInf(x, 1):
		return Infinity
	case math.IsInf(x, -1):
		return NegInfinity
	}
	return x
}

// NumberValue returns the value of a Number literal. Go numbers are returned
// unchanged so an in-memory clone keeps their type; spelled non-finite values
// become float64.
func NumberValue(lit any) (any, error) {
	if _, ok := lit.(string); !ok {
		if _, err := Float64(lit); err != nil {
			return nil, err
		}
		return lit, nil
	}
	return Float64(lit)
}

// Float64 converts a Number literal to float64.
func Float64(lit any) (float64, error) {
	switch n := lit.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case uintptr:
		return float64(n), nil
	case string:
		switch n {
		case NaN:
			return math.NaN(), nil
		case Infinity:
			return math.Inf(1), nil
		case NegInfinity:
			return math.Inf(-1), nil
		}
	}
	return 0, fmt.Errorf("not a number: %T", lit)
}

// JSONBigInt spells a big integer in decimal.
func JSONBigInt(n *big.Int) string {
	return n.String()
}

// BigIntValue returns a fresh big integer for a BigInt literal.
func BigIntValue(lit any) (*big.Int, error) {
	switch n := lit.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil big integer")
		}
		return new(big.Int).Set(n), nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case string:
		out, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, fmt.Errorf("invalid big integer %q", n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("not a big integer: %T", lit)
}

// dateTail is the layout after the year of a JSON date.
const dateTail = "-01-02T15:04:05.999999999Z07:00"

// JSONDate spells a timestamp as RFC 3339 in UTC with nanoseconds. The zone
// is not carried; two times naming the same instant spell the same. Years
// outside 0000-9999 take a signed year of at least six digits, as in
// "+010000-01-01T00:00:00Z" or "-000001-06-15T12:00:00Z".
func JSONDate(t time.Time) string {
	t = t.UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return fmt.Sprintf("%+07d", y) + t.Format(dateTail)
	}
	return t.Format(time.RFC3339Nano)
}

func DateValue(lit any) (time.Time, error) {
	switch t := lit.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseDate(t)
	}
	return time.Time{}, fmt.Errorf("not a timestamp: %T", lit)
}

func parseDate(s string) (time.Time, error) {
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return time.Parse(time.RFC3339Nano, s)
	}

	end := strings.IndexByte(s[1:], '-') + 1
	if end < 7 {
		return time.Time{}, fmt.Errorf("invalid extended year in %q", s)
	}
	digits := s[1:end]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return time.Time{}, fmt.Errorf("invalid extended year in %q", s)
		}
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid extended year in %q: %w", s, err)
	}
	if s[0] == '-' {
		year = -year
	}

	// 2000 is a leap year, so a February 29 in the tail parses; the real
	// year decides below whether that day exists.
	rest, err := time.Parse(time.RFC3339Nano, "2000"+s[end:])
	if err != nil {
		return time.Time{}, err
	}
	t := time.Date(year, rest.Month(), rest.Day(), rest.Hour(), rest.Minute(), rest.Second(), rest.Nanosecond(), rest.Location())
	if t.Month() != rest.Month() || t.Day() != rest.Day() {
		return time.Time{}, fmt.Errorf("day out of range in %q", s)
	}
	return t.UTC(), nil
}
