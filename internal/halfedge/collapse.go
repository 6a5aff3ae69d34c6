package halfedge

// CollapseEdge merges vertex from into vertex to along their shared edge. The
// from vertex is removed, every surviving edge at from is retargeted to to, and
// the one or two faces incident to the edge are removed with their outer twins
// re-stitched. The survivor keeps its position.
//
// The collapse is rejected (mesh unchanged) when the vertices are not adjacent,
// when either vertex is gone, or when the link condition fails: the one-rings
// of from and to may share only the opposite vertices of the faces on the
// collapsing edge, and an interior edge between two boundary vertices would
// pinch the boundary.
func (m *Mesh) CollapseEdge(from, to VertexIndex) error {
	for _, v := range []VertexIndex{from, to} {
		if int(v) < 0 || int(v) >= len(m.Vertices) {
			return ErrVertexOutOfRange
		}
		if m.Vertices[v].Removed {
			return ErrVertexRemoved
		}
	}
	if from == to {
		return ErrDegenerateEdge
	}

	heFT, okFT := m.edges[edgeKey{from, to}]
	heTF, okTF := m.edges[edgeKey{to, from}]
	if !okFT && !okTF {
		return ErrNotAdjacent
	}

	opposite := make(map[VertexIndex]bool, 2)
	if okFT {
		opposite[m.Target(m.HalfEdges[heFT].Next)] = true
	}
	if okTF {
		opposite[m.Target(m.HalfEdges[heTF].Next)] = true
	}
	fromRing := m.Neighbors(from)
	toRing := m.Neighbors(to)
	for v := range fromRing {
		if toRing[v] && !opposite[v] {
			return ErrLinkCondition
		}
	}
	if okFT && okTF && m.IsBoundaryVertex(from) && m.IsBoundaryVertex(to) {
		return ErrLinkCondition
	}

	if okFT {
		m.removeCollapsedFace(heFT)
	}
	if okTF {
		m.removeCollapsedFace(heTF)
	}
	m.retargetVertex(from, to)

	m.Vertices[from].Removed = true
	m.Vertices[from].HalfEdge = EmptyHalfEdge
	m.repairVertexEdges()
	return nil
}

// removeCollapsedFace retires the face owning he (a directed edge being
// collapsed): its three half-edges leave the edge map and are marked removed,
// and the twins across its two surviving sides are stitched to each other so
// the neighboring faces stay paired.
func (m *Mesh) removeCollapsedFace(he HalfEdgeIndex) {
	next := m.HalfEdges[he].Next
	prev := m.HalfEdges[he].Prev
	outerNext := m.HalfEdges[next].Twin
	outerPrev := m.HalfEdges[prev].Twin

	for _, e := range []HalfEdgeIndex{he, next, prev} {
		delete(m.edges, edgeKey{m.HalfEdges[e].Origin, m.Target(e)})
	}
	for _, e := range []HalfEdgeIndex{he, next, prev} {
		m.HalfEdges[e].Removed = true
		m.HalfEdges[e].Twin = EmptyHalfEdge
	}
	m.Faces[m.HalfEdges[he].Face].Removed = true

	if outerNext != EmptyHalfEdge {
		m.HalfEdges[outerNext].Twin = outerPrev
	}
	if outerPrev != EmptyHalfEdge {
		m.HalfEdges[outerPrev].Twin = outerNext
	}
}

// retargetVertex rewrites every live half-edge touching from so it touches to,
// keeping the directed edge map in step. Keys are removed before any origin
// changes because an incoming edge reads its target through the next
// half-edge's origin.
func (m *Mesh) retargetVertex(from, to VertexIndex) {
	var outgoing, incoming []HalfEdgeIndex
	for i := range m.HalfEdges {
		if m.HalfEdges[i].Removed {
			continue
		}
		idx := HalfEdgeIndex(i)
		if m.HalfEdges[i].Origin == from {
			outgoing = append(outgoing, idx)
		}
		if m.Target(idx) == from {
			incoming = append(incoming, idx)
		}
	}
	for _, idx := range outgoing {
		delete(m.edges, edgeKey{from, m.Target(idx)})
	}
	for _, idx := range incoming {
		delete(m.edges, edgeKey{m.HalfEdges[idx].Origin, from})
	}
	for _, idx := range outgoing {
		m.HalfEdges[idx].Origin = to
	}
	for _, idx := range outgoing {
		m.edges[edgeKey{to, m.Target(idx)}] = idx
	}
	for _, idx := range incoming {
		m.edges[edgeKey{m.HalfEdges[idx].Origin, to}] = idx
	}
}

// repairVertexEdges recomputes each live vertex's outgoing half-edge hint.
// Vertices whose faces all vanished become isolated (hint -1) but stay live.
func (m *Mesh) repairVertexEdges() {
	for i := range m.Vertices {
		if !m.Vertices[i].Removed {
			m.Vertices[i].HalfEdge = EmptyHalfEdge
		}
	}
	for i := range m.HalfEdges {
		if m.HalfEdges[i].Removed {
			continue
		}
		org := m.HalfEdges[i].Origin
		if m.Vertices[org].HalfEdge == EmptyHalfEdge {
			m.Vertices[org].HalfEdge = HalfEdgeIndex(i)
		}
	}
}
