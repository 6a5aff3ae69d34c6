package halfedge

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// R-tree branching factors from the rtreego defaults.
const (
	treeMinChildren = 25
	treeMaxChildren = 50
)

// faceRectPad inflates face rectangles so axis-aligned triangles keep positive
// extents on every dimension, which rtreego requires.
const faceRectPad = 1e-9

type faceEntry struct {
	rect rtreego.Rect
	face FaceIndex
}

func (e *faceEntry) Bounds() rtreego.Rect {
	return e.rect
}

// FaceTree is a spatial index over the live faces of a mesh, used to narrow
// ray casts to candidate triangles. It is a snapshot: rebuild it after the
// mesh is edited.
type FaceTree struct {
	tree     *rtreego.Rtree
	min, max Vector3
	count    int
}

// BuildFaceTree indexes the bounding boxes of all live faces.
func (m *Mesh) BuildFaceTree() *FaceTree {
	ft := &FaceTree{
		tree: rtreego.NewTree(3, treeMinChildren, treeMaxChildren),
		min:  Vector3{math.Inf(1), math.Inf(1), math.Inf(1)},
		max:  Vector3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for f := range m.Faces {
		if m.Faces[f].Removed {
			continue
		}
		vs := m.FaceVertices(FaceIndex(f))
		lo := m.Vertices[vs[0]].Position
		hi := lo
		for _, v := range vs[1:] {
			p := m.Vertices[v].Position
			lo = Vector3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
			hi = Vector3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{lo.X - faceRectPad, lo.Y - faceRectPad, lo.Z - faceRectPad},
			[]float64{
				hi.X - lo.X + 2*faceRectPad,
				hi.Y - lo.Y + 2*faceRectPad,
				hi.Z - lo.Z + 2*faceRectPad,
			},
		)
		if err != nil {
			continue
		}
		ft.tree.Insert(&faceEntry{rect: rect, face: FaceIndex(f)})
		ft.min = Vector3{math.Min(ft.min.X, lo.X), math.Min(ft.min.Y, lo.Y), math.Min(ft.min.Z, lo.Z)}
		ft.max = Vector3{math.Max(ft.max.X, hi.X), math.Max(ft.max.Y, hi.Y), math.Max(ft.max.Z, hi.Z)}
		ft.count++
	}
	return ft
}

// Count returns the number of indexed faces.
func (ft *FaceTree) Count() int {
	return ft.count
}

// searchSegment returns the faces whose rectangles intersect the axis-aligned
// box spanned by the two points, inflated by pad on every side. The extra
// faceRectPad keeps every query dimension positive even for axis-aligned
// segments with zero pad.
func (ft *FaceTree) searchSegment(a, b Vector3, pad float64) []FaceIndex {
	pad += faceRectPad
	lo := Vector3{math.Min(a.X, b.X) - pad, math.Min(a.Y, b.Y) - pad, math.Min(a.Z, b.Z) - pad}
	hi := Vector3{math.Max(a.X, b.X) + pad, math.Max(a.Y, b.Y) + pad, math.Max(a.Z, b.Z) + pad}
	rect, err := rtreego.NewRect(
		rtreego.Point{lo.X, lo.Y, lo.Z},
		[]float64{hi.X - lo.X, hi.Y - lo.Y, hi.Z - lo.Z},
	)
	if err != nil {
		return nil
	}
	hits := ft.tree.SearchIntersect(rect)
	out := make([]FaceIndex, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*faceEntry).face)
	}
	return out
}

// clipRayToBounds returns the parametric span of the ray inside the tree's
// global bounds, inflated by pad. ok is false when the ray misses entirely.
func (ft *FaceTree) clipRayToBounds(origin, dir Vector3, pad float64) (tMin, tMax float64, ok bool) {
	if ft.count == 0 {
		return 0, 0, false
	}
	lo := [3]float64{ft.min.X - pad, ft.min.Y - pad, ft.min.Z - pad}
	hi := [3]float64{ft.max.X + pad, ft.max.Y + pad, ft.max.Z + pad}
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}

	tMin, tMax = 0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, 0, false
			}
			continue
		}
		t0 := (lo[i] - o[i]) / d[i]
		t1 := (hi[i] - o[i]) / d[i]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}
