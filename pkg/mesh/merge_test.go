package mesh

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	a, err := Cube("a", 1)
	require.NoError(t, err)
	b := triangle(t, "b")

	merged, err := Merge(a, b)
	require.NoError(t, err)

	assert.Equal(t, a.VertexCount()+b.VertexCount(), merged.VertexCount())
	assert.Equal(t, a.TriangleCount()+b.TriangleCount(), merged.TriangleCount())
	assert.True(t, strings.HasPrefix(merged.ID(), "merged-"))

	// First mesh indices are unchanged.
	assert.Equal(t, a.Indices(), merged.Indices()[:len(a.Indices())])

	// Second mesh indices are offset by the first mesh's vertex count.
	tail := merged.Indices()[len(a.Indices()):]
	for i, idx := range b.Indices() {
		assert.Equal(t, idx+uint32(a.VertexCount()), tail[i])
	}

	// Positions are concatenated in input order.
	assert.Equal(t, a.Positions(), merged.Positions()[:len(a.Positions())])
	assert.Equal(t, b.Positions(), merged.Positions()[len(a.Positions()):])
}

func TestMergeEmpty(t *testing.T) {
	_, err := Merge()
	assert.ErrorIs(t, err, ErrNoMeshes)
}

func TestMergeNil(t *testing.T) {
	_, err := Merge(triangle(t, "a"), nil)
	assert.ErrorIs(t, err, ErrInvalidMesh)
}

func TestMergeIDsAreUnique(t *testing.T) {
	m := triangle(t, "a")
	first, err := Merge(m, m)
	require.NoError(t, err)
	second, err := Merge(m, m)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())
}
