package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageSetGet(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Set("a", 1)
	s.Set("b", 2)

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, s.Count())
	assert.ElementsMatch(t, []int{1, 2}, s.GetAllValues())
}

func TestMemoryStorageDirtyTracking(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	s.Set("b", 2)
	assert.Len(t, s.GetDirty(), 2)

	s.ClearDirty([]string{"a"})
	dirty := s.GetDirty()
	require.Len(t, dirty, 1)
	assert.Equal(t, 2, dirty["b"])

	// Updating a clean key marks it dirty again
	s.Set("a", 3)
	assert.Contains(t, s.GetDirty(), "a")
}

func TestMemoryStorageDelete(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	require.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.Zero(t, s.Count())
	assert.Empty(t, s.GetDirty())
}

func TestMemoryStorageForEach(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	visited := 0
	s.ForEach(func(key string, value int) bool {
		visited++
		return true
	})
	assert.Equal(t, 3, visited)

	// Returning false stops the walk
	visited = 0
	s.ForEach(func(key string, value int) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}
