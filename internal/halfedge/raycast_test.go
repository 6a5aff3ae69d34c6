package halfedge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleTriangle is one right triangle in the XY plane with legs of length 2.
func singleTriangle(t *testing.T) *Mesh {
	t.Helper()
	m := NewMesh()
	m.AddVertex(Vector3{0, 0, 0})
	m.AddVertex(Vector3{2, 0, 0})
	m.AddVertex(Vector3{0, 2, 0})
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	return m
}

func TestCastRayFaceHit(t *testing.T) {
	m := singleTriangle(t)

	h := m.CastRay(Vector3{0.5, 0.5, -5}, Vector3{0, 0, 1}, nil, 0.05)
	require.Equal(t, HitFace, h.Kind)
	assert.Equal(t, FaceIndex(0), h.Face)
	assert.InDelta(t, 0.5, h.Point.X, 1e-9)
	assert.InDelta(t, 0.5, h.Point.Y, 1e-9)
	assert.InDelta(t, 0.0, h.Point.Z, 1e-9)
	assert.InDelta(t, 5.0, h.Distance, 1e-9)
}

func TestCastRayEdgeHit(t *testing.T) {
	m := singleTriangle(t)

	// 0.02 above the bottom edge, within the 0.05 pick tolerance.
	h := m.CastRay(Vector3{1.2, 0.02, -5}, Vector3{0, 0, 1}, nil, 0.05)
	require.Equal(t, HitEdge, h.Kind)
	assert.Equal(t, VertexIndex(0), h.V0)
	assert.Equal(t, VertexIndex(1), h.V1)
	assert.InDelta(t, 0.6, h.EdgeParam, 1e-9)
}

func TestCastRayEdgeParamDirection(t *testing.T) {
	m := singleTriangle(t)

	near := m.CastRay(Vector3{0.2, 0.02, -5}, Vector3{0, 0, 1}, nil, 0.05)
	require.Equal(t, HitEdge, near.Kind)
	far := m.CastRay(Vector3{1.8, 0.02, -5}, Vector3{0, 0, 1}, nil, 0.05)
	require.Equal(t, HitEdge, far.Kind)

	// Both land on the same directed edge; the parameter runs V0 to V1.
	assert.Equal(t, near.V0, far.V0)
	assert.Equal(t, near.V1, far.V1)
	assert.Less(t, near.EdgeParam, 0.5)
	assert.Greater(t, far.EdgeParam, 0.5)
}

func TestCastRayMiss(t *testing.T) {
	m := singleTriangle(t)

	h := m.CastRay(Vector3{10, 10, -5}, Vector3{0, 0, 1}, nil, 0.05)
	assert.Equal(t, Miss, h.Kind)

	// Pointing away from the triangle also misses.
	h = m.CastRay(Vector3{0.5, 0.5, -5}, Vector3{0, 0, -1}, nil, 0.05)
	assert.Equal(t, Miss, h.Kind)
}

func TestCastRayZeroDirection(t *testing.T) {
	m := singleTriangle(t)
	h := m.CastRay(Vector3{0.5, 0.5, -5}, Vector3{}, nil, 0.05)
	assert.Equal(t, Miss, h.Kind)
}

func TestCastRayHitsBackface(t *testing.T) {
	m := singleTriangle(t)
	h := m.CastRay(Vector3{0.5, 0.5, 5}, Vector3{0, 0, -1}, nil, 0.001)
	require.Equal(t, HitFace, h.Kind)
	assert.InDelta(t, 5.0, h.Distance, 1e-9)
}

func TestCastRayNearestFaceWins(t *testing.T) {
	m := NewMesh()
	m.AddVertex(Vector3{0, 0, 0})
	m.AddVertex(Vector3{2, 0, 0})
	m.AddVertex(Vector3{0, 2, 0})
	m.AddVertex(Vector3{0, 0, 1})
	m.AddVertex(Vector3{2, 0, 1})
	m.AddVertex(Vector3{0, 2, 1})
	_, err := m.AddTriangle(3, 4, 5)
	require.NoError(t, err)
	front, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)

	h := m.CastRay(Vector3{0.5, 0.5, -5}, Vector3{0, 0, 1}, nil, 0.001)
	require.Equal(t, HitFace, h.Kind)
	assert.Equal(t, front, h.Face)
	assert.InDelta(t, 5.0, h.Distance, 1e-9)
}

func TestCastRaySkipsRemovedFaces(t *testing.T) {
	m := testGrid(t, 2)

	// The lower-right triangle covers (0.7, 0.3) before the collapse.
	h := m.CastRay(Vector3{0.7, 0.3, -5}, Vector3{0, 0, 1}, nil, 0.001)
	require.Equal(t, HitFace, h.Kind)

	// Collapsing the bottom boundary edge removes that triangle.
	require.NoError(t, m.CollapseEdge(1, 0))
	require.NoError(t, m.ValidateConnectivity())

	h = m.CastRay(Vector3{0.7, 0.3, -5}, Vector3{0, 0, 1}, nil, 0.001)
	assert.Equal(t, Miss, h.Kind)

	// The surviving triangle still picks.
	h = m.CastRay(Vector3{0.3, 0.7, -5}, Vector3{0, 0, 1}, nil, 0.001)
	assert.Equal(t, HitFace, h.Kind)
}

func TestFaceTreeMatchesLinearScan(t *testing.T) {
	m := testGrid(t, 6)
	tree := m.BuildFaceTree()
	require.Equal(t, m.FaceCount(), tree.Count())

	rays := []struct {
		origin, dir Vector3
	}{
		{Vector3{2.5, 2.3, -5}, Vector3{0, 0, 1}},
		{Vector3{0.1, 4.9, 3}, Vector3{0, 0, -1}},
		{Vector3{-0.6, -0.4, -3}, Vector3{0.3, 0.2, 1}},
		{Vector3{2.5, 2.02, -5}, Vector3{0, 0, 1}},
		{Vector3{9, 9, -5}, Vector3{0, 0, 1}},
	}
	for _, r := range rays {
		dir := r.dir.Normalized()
		want := m.CastRay(r.origin, dir, nil, 0.05)
		got := m.CastRay(r.origin, dir, tree, 0.05)
		assert.Equal(t, want.Kind, got.Kind, "ray from %v", r.origin)
		if want.Kind == Miss {
			continue
		}
		assert.Equal(t, want.Face, got.Face)
		assert.InDelta(t, want.Distance, got.Distance, 1e-9)
	}
}

func TestCastRayDiagonalThroughGrid(t *testing.T) {
	m := testGrid(t, 4)
	tree := m.BuildFaceTree()

	// An oblique ray through the grid interior still resolves a single
	// nearest face.
	origin := Vector3{1.3, 1.7, -3}
	dir := Vector3{0.2, -0.1, 1}.Normalized()
	h := m.CastRay(origin, dir, tree, 0.05)
	require.NotEqual(t, Miss, h.Kind)
	assert.InDelta(t, 0.0, h.Point.Z, 1e-9)
	assert.False(t, m.Faces[h.Face].Removed)
}
