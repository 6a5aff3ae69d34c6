package halfedge

import "fmt"

// ValidateConnectivity checks the structural invariants of the mesh: next/prev
// cycles close over exactly three live half-edges per face, twins point back at
// each other across reversed directions, vertex hints lead to live outgoing
// half-edges, and the directed edge map matches the arena. Returns the first
// violation found.
func (m *Mesh) ValidateConnectivity() error {
	for i := range m.HalfEdges {
		he := &m.HalfEdges[i]
		if he.Removed {
			continue
		}
		idx := HalfEdgeIndex(i)
		if int(he.Origin) < 0 || int(he.Origin) >= len(m.Vertices) || m.Vertices[he.Origin].Removed {
			return fmt.Errorf("half-edge %d: origin %d is not a live vertex", i, he.Origin)
		}
		if int(he.Face) < 0 || int(he.Face) >= len(m.Faces) || m.Faces[he.Face].Removed {
			return fmt.Errorf("half-edge %d: face %d is not live", i, he.Face)
		}
		if he.Next == EmptyHalfEdge || m.HalfEdges[he.Next].Removed {
			return fmt.Errorf("half-edge %d: next %d is not live", i, he.Next)
		}
		if he.Prev == EmptyHalfEdge || m.HalfEdges[he.Prev].Removed {
			return fmt.Errorf("half-edge %d: prev %d is not live", i, he.Prev)
		}
		if m.HalfEdges[he.Next].Prev != idx {
			return fmt.Errorf("half-edge %d: next.prev is %d", i, m.HalfEdges[he.Next].Prev)
		}
		if m.HalfEdges[he.Prev].Next != idx {
			return fmt.Errorf("half-edge %d: prev.next is %d", i, m.HalfEdges[he.Prev].Next)
		}
		if he.Twin != EmptyHalfEdge {
			twin := &m.HalfEdges[he.Twin]
			if twin.Removed {
				return fmt.Errorf("half-edge %d: twin %d is removed", i, he.Twin)
			}
			if twin.Twin != idx {
				return fmt.Errorf("half-edge %d: twin.twin is %d", i, twin.Twin)
			}
			if twin.Origin != m.Target(idx) || m.Target(he.Twin) != he.Origin {
				return fmt.Errorf("half-edge %d: twin %d does not reverse it", i, he.Twin)
			}
		}
	}

	for f := range m.Faces {
		if m.Faces[f].Removed {
			continue
		}
		cycle := m.FaceHalfEdges(FaceIndex(f))
		if len(cycle) != 3 {
			return fmt.Errorf("face %d: cycle length %d, want 3", f, len(cycle))
		}
		for _, he := range cycle {
			if m.HalfEdges[he].Face != FaceIndex(f) {
				return fmt.Errorf("face %d: half-edge %d claims face %d", f, he, m.HalfEdges[he].Face)
			}
		}
	}

	for v := range m.Vertices {
		vert := &m.Vertices[v]
		if vert.Removed || vert.HalfEdge == EmptyHalfEdge {
			continue
		}
		he := &m.HalfEdges[vert.HalfEdge]
		if he.Removed || he.Origin != VertexIndex(v) {
			return fmt.Errorf("vertex %d: half-edge hint %d does not leave it", v, vert.HalfEdge)
		}
	}

	live := 0
	for i := range m.HalfEdges {
		if m.HalfEdges[i].Removed {
			continue
		}
		live++
		idx := HalfEdgeIndex(i)
		key := edgeKey{m.HalfEdges[i].Origin, m.Target(idx)}
		if m.edges[key] != idx {
			return fmt.Errorf("half-edge %d: edge map entry for (%d,%d) is %d", i, key.from, key.to, m.edges[key])
		}
	}
	if len(m.edges) != live {
		return fmt.Errorf("edge map has %d entries for %d live half-edges", len(m.edges), live)
	}
	return nil
}
