package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyr0/dson/internal/value"
)

func TestTracker(t *testing.T) {
	tracker := NewTracker()
	next := 0
	alloc := func() int {
		next++
		return next - 1
	}

	obj := value.NewObject()
	other := value.NewObject()
	objID, ok := value.IdentityOf(obj)
	require.True(t, ok)
	otherID, ok := value.IdentityOf(other)
	require.True(t, ok)

	index, isNew := tracker.IDFor(objID, alloc)
	assert.True(t, isNew)
	assert.Equal(t, 0, index)

	index, isNew = tracker.IDFor(otherID, alloc)
	assert.True(t, isNew)
	assert.Equal(t, 1, index)

	index, isNew = tracker.IDFor(objID, alloc)
	assert.False(t, isNew)
	assert.Equal(t, 0, index)

	assert.Equal(t, 2, next, "alloc must not run for known identities")
	assert.Equal(t, 2, tracker.Len())
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	shell := value.NewObject()

	_, ok := registry.Resolve(0)
	assert.False(t, ok)

	registry.Reserve(0, shell)
	shell.Set("self", shell)

	got, ok := registry.Resolve(0)
	require.True(t, ok)
	assert.Same(t, shell, got)
	assert.Equal(t, 1, registry.Len())
}
