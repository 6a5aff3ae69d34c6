package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/halfedge"
)

// normalEpsilon: accumulated face normals shorter than this fall back to +Y.
const normalEpsilon = 1e-20

// meshData holds the flat vertex arrays a GPU mesh is built from. The raylib
// mesh keeps raw pointers into these slices, so the meshData must stay
// reachable for as long as the mesh is.
type meshData struct {
	vertices  []float32
	normals   []float32
	texcoords []float32
	indices   []uint16
}

// buildMeshData flattens a half-edge mesh into indexed arrays. Every vertex
// slot is emitted, removed ones included, so indices stay stable across
// collapses; only live faces contribute indices and normals. Per-vertex
// normals are the sum of the adjacent live face normals, area-weighted by the
// unnormalized cross product.
func buildMeshData(m *halfedge.Mesh) meshData {
	vcount := len(m.Vertices)
	d := meshData{
		vertices:  make([]float32, vcount*3),
		normals:   make([]float32, vcount*3),
		texcoords: make([]float32, vcount*2),
	}
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		d.vertices[i*3+0] = float32(p.X)
		d.vertices[i*3+1] = float32(p.Y)
		d.vertices[i*3+2] = float32(p.Z)
	}

	acc := make([]halfedge.Vector3, vcount)
	for f := range m.Faces {
		if m.Faces[f].Removed {
			continue
		}
		vs := m.FaceVertices(halfedge.FaceIndex(f))
		d.indices = append(d.indices, uint16(vs[0]), uint16(vs[1]), uint16(vs[2]))

		pa := m.Vertices[vs[0]].Position
		pb := m.Vertices[vs[1]].Position
		pc := m.Vertices[vs[2]].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[vs[0]] = acc[vs[0]].Add(n)
		acc[vs[1]] = acc[vs[1]].Add(n)
		acc[vs[2]] = acc[vs[2]].Add(n)
	}
	for i, n := range acc {
		if n.Length() > normalEpsilon {
			n = n.Normalized()
		} else {
			n = halfedge.Vector3{X: 0, Y: 1, Z: 0}
		}
		d.normals[i*3+0] = float32(n.X)
		d.normals[i*3+1] = float32(n.Y)
		d.normals[i*3+2] = float32(n.Z)
	}
	return d
}

// toRaylib wraps the arrays in a raylib mesh ready for UploadMesh.
func (d *meshData) toRaylib() rl.Mesh {
	var mesh rl.Mesh
	mesh.VertexCount = int32(len(d.vertices) / 3)
	mesh.TriangleCount = int32(len(d.indices) / 3)
	if len(d.vertices) > 0 {
		mesh.Vertices = &d.vertices[0]
		mesh.Normals = &d.normals[0]
		mesh.Texcoords = &d.texcoords[0]
	}
	if len(d.indices) > 0 {
		mesh.Indices = &d.indices[0]
	}
	return mesh
}

// liveBounds is the axis-aligned box around the vertices still referenced by
// live faces. Removed vertices keep stale positions and are skipped so the
// box tightens as the mesh shrinks.
func liveBounds(m *halfedge.Mesh) rl.BoundingBox {
	var min, max rl.Vector3
	first := true
	for f := range m.Faces {
		if m.Faces[f].Removed {
			continue
		}
		for _, v := range m.FaceVertices(halfedge.FaceIndex(f)) {
			p := m.Vertices[v].Position
			x, y, z := float32(p.X), float32(p.Y), float32(p.Z)
			if first {
				min = rl.NewVector3(x, y, z)
				max = min
				first = false
				continue
			}
			min.X, max.X = math32.Min(min.X, x), math32.Max(max.X, x)
			min.Y, max.Y = math32.Min(min.Y, y), math32.Max(max.Y, y)
			min.Z, max.Z = math32.Min(min.Z, z), math32.Max(max.Z, z)
		}
	}
	return rl.NewBoundingBox(min, max)
}

// worldBounds transforms the local bounds through the object transform and
// re-wraps the eight corners in an axis-aligned box.
func (o *Object) worldBounds() rl.BoundingBox {
	b := o.bounds
	corners := [8]rl.Vector3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
	var min, max rl.Vector3
	for i, c := range corners {
		w := rl.Vector3Transform(c, o.Transform)
		if i == 0 {
			min, max = w, w
			continue
		}
		min.X, max.X = math32.Min(min.X, w.X), math32.Max(max.X, w.X)
		min.Y, max.Y = math32.Min(min.Y, w.Y), math32.Max(max.Y, w.Y)
		min.Z, max.Z = math32.Min(min.Z, w.Z), math32.Max(max.Z, w.Z)
	}
	return rl.NewBoundingBox(min, max)
}
