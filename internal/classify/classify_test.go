package classify

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyr0/dson/internal/value"
)

type customStruct struct{ A int }

type customError struct{}

func (*customError) Error() string { return "custom" }

func TestClassify(t *testing.T) {
	var nilObject *value.Object
	var nilMap map[string]any
	var nilBytes []byte
	var nilErr *customError

	tests := []struct {
		name  string
		value any
		want  Tag
	}{
		{"nil", nil, Null},
		{"undefined", value.Undefined{}, Undefined},
		{"bool", true, Bool},
		{"int", 42, Number},
		{"uint8", uint8(7), Number},
		{"float", 1.5, Number},
		{"string", "hi", String},
		{"bigint", big.NewInt(10), BigInt},
		{"object", value.NewObject(), Object},
		{"plain map", map[string]any{}, Object},
		{"typed nil object", nilObject, Null},
		{"nil plain map", nilMap, Null},
		{"array", []any{1}, Array},
		{"map", value.NewMap(), Map},
		{"set", value.NewSet(), Set},
		{"date", time.Unix(0, 0), Date},
		{"regexp", regexp.MustCompile("a+"), RegExp},
		{"dson error", &value.Error{Message: "x"}, Error},
		{"std error", errors.New("x"), Error},
		{"wrapped error", fmt.Errorf("wrap: %w", errors.New("x")), Error},
		{"typed nil error", nilErr, Null},
		{"bytes", []byte{1}, Binary},
		{"nil bytes", nilBytes, Null},
		{"float32 view", []float32{1}, Binary},
		{"func", func() {}, Unsupported},
		{"channel", make(chan int), Unsupported},
		{"struct", customStruct{}, Unsupported},
		{"struct pointer", &customStruct{}, Unsupported},
		{"typed map", map[string]int{}, Unsupported},
		{"typed slice", []string{"a"}, Unsupported},
		{"complex", complex(1, 2), Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value))
		})
	}
}

func TestTagNames(t *testing.T) {
	for tag := Null; tag <= Binary; tag++ {
		parsed, err := ParseTag(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, parsed)
	}

	_, err := ParseTag("unsupported")
	assert.Error(t, err)
	_, err = ParseTag("symbol")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Tag(200).String())
}

func TestTagProperties(t *testing.T) {
	assert.True(t, Number.IsPrimitive())
	assert.True(t, Date.IsPrimitive())
	assert.False(t, Object.IsPrimitive())
	assert.True(t, Array.HasIdentity())
	assert.False(t, Date.HasIdentity())
	assert.False(t, Reference.HasIdentity())
	assert.False(t, Reference.IsPrimitive())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nil", TypeName(nil))
	assert.Equal(t, "func()", TypeName(func() {}))
}
