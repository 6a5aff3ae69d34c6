package halfedge

import "errors"

// Index types into the mesh arenas. -1 marks an empty link (open boundary,
// removed element, or unset vertex edge).
type (
	VertexIndex   int
	HalfEdgeIndex int
	FaceIndex     int
)

const (
	EmptyVertex   = VertexIndex(-1)
	EmptyHalfEdge = HalfEdgeIndex(-1)
	EmptyFace     = FaceIndex(-1)
)

var (
	// ErrVertexOutOfRange reports a vertex index outside the arena.
	ErrVertexOutOfRange = errors.New("halfedge: vertex index out of range")
	// ErrVertexRemoved reports an operation on a collapsed-away vertex.
	ErrVertexRemoved = errors.New("halfedge: vertex already removed")
	// ErrDegenerateEdge reports an edge whose endpoints are the same vertex.
	ErrDegenerateEdge = errors.New("halfedge: edge endpoints are the same vertex")
	// ErrNotAdjacent reports a vertex pair that shares no edge.
	ErrNotAdjacent = errors.New("halfedge: vertices do not share an edge")
	// ErrNonManifoldEdge reports a directed edge used by more than one face,
	// which means inconsistent winding or three faces meeting at an edge.
	ErrNonManifoldEdge = errors.New("halfedge: directed edge already in use")
	// ErrLinkCondition reports a collapse that would pinch the mesh into
	// non-manifold connectivity.
	ErrLinkCondition = errors.New("halfedge: collapse would break manifold connectivity")
)

// Vertex is a mesh vertex with one outgoing half-edge. Removed vertices stay in
// the arena so indices held by callers never shift.
type Vertex struct {
	Position Vector3
	HalfEdge HalfEdgeIndex
	Removed  bool
}

// HalfEdge is one directed side of an edge. Origin is the vertex the half-edge
// leaves from; Next/Prev cycle around the owning face; Twin is the opposite
// direction on the neighboring face, or -1 on an open boundary.
type HalfEdge struct {
	Origin  VertexIndex
	Twin    HalfEdgeIndex
	Next    HalfEdgeIndex
	Prev    HalfEdgeIndex
	Face    FaceIndex
	Removed bool
}

// Face is a triangle identified by one of its half-edges.
type Face struct {
	HalfEdge HalfEdgeIndex
	Removed  bool
}

type edgeKey struct {
	from, to VertexIndex
}

// Mesh is an editable triangle mesh stored as index-linked half-edges.
// Elements are never deleted from the arenas; collapse marks them Removed and
// later queries and render conversion skip them.
type Mesh struct {
	Vertices  []Vertex
	HalfEdges []HalfEdge
	Faces     []Face

	// edges maps each live directed edge (from, to) to its half-edge.
	edges map[edgeKey]HalfEdgeIndex
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{edges: make(map[edgeKey]HalfEdgeIndex)}
}

// AddVertex appends a vertex at p and returns its index.
func (m *Mesh) AddVertex(p Vector3) VertexIndex {
	m.Vertices = append(m.Vertices, Vertex{Position: p, HalfEdge: EmptyHalfEdge})
	return VertexIndex(len(m.Vertices) - 1)
}

// AddTriangle adds the face (a, b, c) with counter-clockwise winding, creating
// three half-edges and stitching twins against previously added faces. Returns
// ErrNonManifoldEdge when a directed edge is already owned by another face.
func (m *Mesh) AddTriangle(a, b, c VertexIndex) (FaceIndex, error) {
	for _, v := range []VertexIndex{a, b, c} {
		if int(v) < 0 || int(v) >= len(m.Vertices) {
			return EmptyFace, ErrVertexOutOfRange
		}
		if m.Vertices[v].Removed {
			return EmptyFace, ErrVertexRemoved
		}
	}
	if a == b || b == c || c == a {
		return EmptyFace, ErrDegenerateEdge
	}
	pairs := [3][2]VertexIndex{{a, b}, {b, c}, {c, a}}
	for _, p := range pairs {
		if _, exists := m.edges[edgeKey{p[0], p[1]}]; exists {
			return EmptyFace, ErrNonManifoldEdge
		}
	}

	face := FaceIndex(len(m.Faces))
	base := HalfEdgeIndex(len(m.HalfEdges))
	for i, p := range pairs {
		he := HalfEdge{
			Origin: p[0],
			Twin:   EmptyHalfEdge,
			Next:   base + HalfEdgeIndex((i+1)%3),
			Prev:   base + HalfEdgeIndex((i+2)%3),
			Face:   face,
		}
		if twin, ok := m.edges[edgeKey{p[1], p[0]}]; ok {
			he.Twin = twin
			m.HalfEdges[twin].Twin = base + HalfEdgeIndex(i)
		}
		m.HalfEdges = append(m.HalfEdges, he)
		m.edges[edgeKey{p[0], p[1]}] = base + HalfEdgeIndex(i)
		if m.Vertices[p[0]].HalfEdge == EmptyHalfEdge {
			m.Vertices[p[0]].HalfEdge = base + HalfEdgeIndex(i)
		}
	}
	m.Faces = append(m.Faces, Face{HalfEdge: base})
	return face, nil
}

// Target returns the vertex a half-edge points to.
func (m *Mesh) Target(he HalfEdgeIndex) VertexIndex {
	return m.HalfEdges[m.HalfEdges[he].Next].Origin
}

// EdgeBetween returns a live half-edge connecting v0 and v1 in either
// direction, preferring v0 -> v1.
func (m *Mesh) EdgeBetween(v0, v1 VertexIndex) (HalfEdgeIndex, bool) {
	if he, ok := m.edges[edgeKey{v0, v1}]; ok {
		return he, true
	}
	if he, ok := m.edges[edgeKey{v1, v0}]; ok {
		return he, true
	}
	return EmptyHalfEdge, false
}

// FaceHalfEdges returns the half-edge cycle of a face in loop order. Removed
// faces return nil.
func (m *Mesh) FaceHalfEdges(f FaceIndex) []HalfEdgeIndex {
	if int(f) < 0 || int(f) >= len(m.Faces) || m.Faces[f].Removed {
		return nil
	}
	var out []HalfEdgeIndex
	start := m.Faces[f].HalfEdge
	he := start
	for {
		out = append(out, he)
		he = m.HalfEdges[he].Next
		if he == start || len(out) > len(m.HalfEdges) {
			break
		}
	}
	return out
}

// FaceEdges returns the ordered boundary edges of a face as (origin, target)
// vertex pairs.
func (m *Mesh) FaceEdges(f FaceIndex) [][2]VertexIndex {
	hes := m.FaceHalfEdges(f)
	if hes == nil {
		return nil
	}
	out := make([][2]VertexIndex, 0, len(hes))
	for _, he := range hes {
		out = append(out, [2]VertexIndex{m.HalfEdges[he].Origin, m.Target(he)})
	}
	return out
}

// FaceVertices returns the three corner vertices of a triangle face.
func (m *Mesh) FaceVertices(f FaceIndex) [3]VertexIndex {
	hes := m.FaceHalfEdges(f)
	var out [3]VertexIndex
	for i := 0; i < 3 && i < len(hes); i++ {
		out[i] = m.HalfEdges[hes[i]].Origin
	}
	return out
}

// VertexPosition returns the position of v.
func (m *Mesh) VertexPosition(v VertexIndex) Vector3 {
	return m.Vertices[v].Position
}

// VertexCount returns the number of live (not removed) vertices.
func (m *Mesh) VertexCount() int {
	n := 0
	for i := range m.Vertices {
		if !m.Vertices[i].Removed {
			n++
		}
	}
	return n
}

// FaceCount returns the number of live (not removed) faces.
func (m *Mesh) FaceCount() int {
	n := 0
	for i := range m.Faces {
		if !m.Faces[i].Removed {
			n++
		}
	}
	return n
}

// Neighbors returns the one-ring vertex set of v as a map for membership tests.
func (m *Mesh) Neighbors(v VertexIndex) map[VertexIndex]bool {
	out := make(map[VertexIndex]bool)
	for i := range m.HalfEdges {
		he := &m.HalfEdges[i]
		if he.Removed {
			continue
		}
		if he.Origin == v {
			out[m.Target(HalfEdgeIndex(i))] = true
		} else if m.Target(HalfEdgeIndex(i)) == v {
			out[he.Origin] = true
		}
	}
	return out
}

// IsBoundaryVertex reports whether any live edge at v lacks a twin.
func (m *Mesh) IsBoundaryVertex(v VertexIndex) bool {
	for i := range m.HalfEdges {
		he := &m.HalfEdges[i]
		if he.Removed || he.Twin != EmptyHalfEdge {
			continue
		}
		if he.Origin == v || m.Target(HalfEdgeIndex(i)) == v {
			return true
		}
	}
	return false
}

// IsBoundaryEdge reports whether the edge holding he has only one face.
func (m *Mesh) IsBoundaryEdge(he HalfEdgeIndex) bool {
	return m.HalfEdges[he].Twin == EmptyHalfEdge
}
