package meshgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-viewer/internal/halfedge"
)

func TestGenerateGridDefaults(t *testing.T) {
	m, err := GenerateGrid(DefaultGridOptions())
	require.NoError(t, err)

	assert.Equal(t, 16*16, m.VertexCount())
	assert.Equal(t, 2*15*15, m.FaceCount())

	// Default grid is flat in the XY plane.
	for i := range m.Vertices {
		assert.Zero(t, m.Vertices[i].Position.Z)
	}
	first := m.VertexPosition(0)
	last := m.VertexPosition(halfedge.VertexIndex(16*16 - 1))
	assert.Equal(t, halfedge.Vector3{X: 0, Y: 0, Z: 0}, first)
	assert.Equal(t, halfedge.Vector3{X: 15, Y: 15, Z: 0}, last)
}

func TestGenerateGridTriangulation(t *testing.T) {
	opts := DefaultGridOptions()
	opts.Size = 4
	m, err := GenerateGrid(opts)
	require.NoError(t, err)

	// First quad splits along the v00-v11 diagonal.
	assert.Equal(t, [3]halfedge.VertexIndex{0, 1, 5}, m.FaceVertices(0))
	assert.Equal(t, [3]halfedge.VertexIndex{0, 5, 4}, m.FaceVertices(1))
}

func TestGenerateGridSpacing(t *testing.T) {
	opts := DefaultGridOptions()
	opts.Size = 3
	opts.Spacing = 2.5
	m, err := GenerateGrid(opts)
	require.NoError(t, err)

	assert.Equal(t, halfedge.Vector3{X: 5, Y: 5, Z: 0}, m.VertexPosition(8))
}

func TestGenerateGridNoise(t *testing.T) {
	opts := DefaultGridOptions()
	opts.Size = 8
	opts.NoiseHeight = 2
	opts.Seed = 7

	m, err := GenerateGrid(opts)
	require.NoError(t, err)

	displaced := 0
	for i := range m.Vertices {
		z := m.Vertices[i].Position.Z
		assert.GreaterOrEqual(t, z, 0.0)
		assert.LessOrEqual(t, z, 2.0)
		if z != 0 {
			displaced++
		}
	}
	assert.Greater(t, displaced, 0)

	// Same seed, same surface.
	again, err := GenerateGrid(opts)
	require.NoError(t, err)
	for i := range m.Vertices {
		assert.Equal(t, m.Vertices[i].Position, again.Vertices[i].Position)
	}
}

func TestGenerateGridClampsOptions(t *testing.T) {
	m, err := GenerateGrid(GridOptions{Size: 0, Spacing: -1})
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.FaceCount())
}

func TestGenerateGridClampsOversize(t *testing.T) {
	m, err := GenerateGrid(GridOptions{Size: 300, Spacing: 1})
	require.NoError(t, err)
	assert.Equal(t, 255*255, m.VertexCount())
}

func TestLoadGridOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.yaml")
	data := "size: 8\nspacing: 0.5\nnoiseHeight: 1.5\nseed: 42\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	opts := LoadGridOptions(path)
	assert.Equal(t, 8, opts.Size)
	assert.Equal(t, 0.5, opts.Spacing)
	assert.Equal(t, 1.5, opts.NoiseHeight)
	assert.Equal(t, int64(42), opts.Seed)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 4, opts.Octaves)

	missing := LoadGridOptions(filepath.Join(dir, "nope.yaml"))
	assert.Equal(t, DefaultGridOptions(), missing)

	require.NoError(t, os.WriteFile(path, []byte("size: [broken"), 0o644))
	invalid := LoadGridOptions(path)
	assert.Equal(t, DefaultGridOptions(), invalid)
}
