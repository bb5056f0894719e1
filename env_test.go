package slist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Integer(1))
	global.Define("y", Integer(2))

	child := global.Extend()
	assert.Same(t, global, child.Parent())
	assert.Nil(t, global.Parent())

	v, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, Integer(1), v)

	// Define shadows without touching the parent.
	child.Define("x", Integer(10))
	v, _ = child.Lookup("x")
	assert.Equal(t, Integer(10), v)
	v, _ = global.Lookup("x")
	assert.Equal(t, Integer(1), v)

	// Set writes the nearest binding.
	require.True(t, child.Set("y", Integer(20)))
	v, _ = global.Lookup("y")
	assert.Equal(t, Integer(20), v)

	require.True(t, child.Set("x", Integer(11)))
	v, _ = global.Lookup("x")
	assert.Equal(t, Integer(1), v)

	assert.False(t, child.Set("z", Integer(0)))
	_, ok = child.Lookup("z")
	assert.False(t, ok)
	_, ok = global.Lookup("z")
	assert.False(t, ok)
}

func TestLogLevels(t *testing.T) {
	assert.Greater(t, Level(VerbosityAlways), Level(VerbosityError))
	assert.Less(t, Level(VerbosityError), levelSilent)
	assert.Greater(t, Level(VerbosityError), Level(VerbosityWarning))
	assert.Greater(t, Level(VerbosityWarning), Level(VerbosityTrace))
	assert.Equal(t, Level(VerbosityTrace), Level(VerbosityTrace+5))
	assert.Equal(t, Level(VerbosityAlways), Level(-1))
}
