package halfedge

import "math"

// HitKind classifies a ray cast result.
type HitKind int

const (
	// Miss means the ray intersected no live face within range.
	Miss HitKind = iota
	// HitEdge means the intersection point lies within tolerance of a face
	// edge; V0, V1, and EdgeParam are set.
	HitEdge
	// HitFace means the intersection lies on a face interior; Face is set.
	HitFace
)

// Hit is the result of CastRay. Point and Distance are set for both hit kinds;
// Distance is the ray parameter of the intersection.
type Hit struct {
	Kind      HitKind
	V0, V1    VertexIndex
	EdgeParam float64
	Face      FaceIndex
	Point     Vector3
	Distance  float64
}

// rayEpsilon rejects intersections behind the origin and degenerate triangle
// determinants.
const rayEpsilon = 1e-12

// CastRay intersects a local-space ray with the mesh and classifies the
// nearest hit. When the intersection point lies within tolerance of one of the
// hit face's edges the result is HitEdge with the parametric position of the
// point along that edge; otherwise HitFace. A nil tree falls back to testing
// every live face. Zero-length directions miss.
func (m *Mesh) CastRay(origin, dir Vector3, tree *FaceTree, tolerance float64) Hit {
	dir = dir.Normalized()
	if dir.LengthSquared() == 0 {
		return Hit{Kind: Miss}
	}

	var candidates []FaceIndex
	if tree != nil {
		tMin, tMax, ok := tree.clipRayToBounds(origin, dir, tolerance)
		if !ok {
			return Hit{Kind: Miss}
		}
		a := origin.Add(dir.Scale(tMin))
		b := origin.Add(dir.Scale(tMax))
		candidates = tree.searchSegment(a, b, tolerance)
	} else {
		for f := range m.Faces {
			if !m.Faces[f].Removed {
				candidates = append(candidates, FaceIndex(f))
			}
		}
	}

	best := Hit{Kind: Miss, Distance: math.Inf(1)}
	for _, f := range candidates {
		if m.Faces[f].Removed {
			continue
		}
		vs := m.FaceVertices(f)
		t, ok := rayTriangle(origin, dir,
			m.Vertices[vs[0]].Position,
			m.Vertices[vs[1]].Position,
			m.Vertices[vs[2]].Position)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{
			Kind:     HitFace,
			Face:     f,
			Point:    origin.Add(dir.Scale(t)),
			Distance: t,
		}
	}
	if best.Kind == Miss {
		return Hit{Kind: Miss}
	}

	// Within tolerance of an edge, the edge wins over the face interior.
	bestEdgeDist := math.Inf(1)
	var edgeV0, edgeV1 VertexIndex
	var edgeParam float64
	for _, e := range m.FaceEdges(best.Face) {
		p0 := m.Vertices[e[0]].Position
		p1 := m.Vertices[e[1]].Position
		u, d := pointSegmentParam(best.Point, p0, p1)
		if d < bestEdgeDist {
			bestEdgeDist = d
			edgeV0, edgeV1 = e[0], e[1]
			edgeParam = u
		}
	}
	if bestEdgeDist <= tolerance {
		best.Kind = HitEdge
		best.V0 = edgeV0
		best.V1 = edgeV1
		best.EdgeParam = edgeParam
	}
	return best
}

// rayTriangle is the Möller-Trumbore intersection without backface culling.
// Returns the ray parameter of the hit.
func rayTriangle(origin, dir, a, b, c Vector3) (float64, bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	p := dir.Cross(ac)
	det := ab.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(ab)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := ac.Dot(q) * inv
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}

// pointSegmentParam projects p onto the segment (a, b) and returns the clamped
// parameter in [0, 1] plus the distance from p to that closest point.
func pointSegmentParam(p, a, b Vector3) (u, dist float64) {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return 0, p.DistanceTo(a)
	}
	u = p.Sub(a).Dot(ab) / l2
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return u, p.DistanceTo(a.Add(ab.Scale(u)))
}
