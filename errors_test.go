package dson

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		classification bool
		depth          bool
		malformed      bool
		configuration  bool
	}{
		{"unsupported", fmt.Errorf("%w: value at $.f", ErrUnsupportedType), true, false, false, false},
		{"depth", fmt.Errorf("%w: too deep", ErrDepthExceeded), false, true, false, false},
		{"malformed", fmt.Errorf("%w: record 3", ErrMalformedRecord), false, false, true, false},
		{"configuration", fmt.Errorf("%w: bad", ErrInvalidConfiguration), false, false, false, true},
		{"envelope", fmt.Errorf("%w: 'xml'", ErrInvalidEnvelope), false, false, false, true},
		{"unrelated", errors.New("boom"), false, false, false, false},
		{"nil", nil, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.classification, IsClassificationError(tt.err))
			assert.Equal(t, tt.depth, IsDepthError(tt.err))
			assert.Equal(t, tt.malformed, IsMalformedRecordError(tt.err))
			assert.Equal(t, tt.configuration, IsConfigurationError(tt.err))
		})
	}
}

func TestOperationErrorsNameThePath(t *testing.T) {
	root := NewObject()
	inner := NewObject()
	inner.Set("ch", make(chan int))
	root.Set("list", []any{1, inner})

	_, err := Clone(root)
	assert.True(t, IsClassificationError(err))
	assert.Contains(t, err.Error(), "$.list[1].ch")
	assert.Contains(t, err.Error(), "chan int")
	assert.Contains(t, err.Error(), "clone")
}
