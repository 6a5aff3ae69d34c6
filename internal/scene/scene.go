package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/engineconfig"
	"mesh-viewer/internal/halfedge"
	"mesh-viewer/internal/primitives"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Camera framing used by New. Orthographic fovy is the world-space view
// height, so it scales with the configured zoom; perspective fovy is the
// vertical field of view in degrees.
const (
	perspectiveFovy = 45
	orthoViewHeight = 2.0
)

// headlightTilt offsets the light from the view axis (up and to the left, so
// it shines slightly down-right). A pure headlight flattens every face to the
// same shade.
const headlightTilt = 0.25

// ObjectID identifies one mesh object in the scene.
type ObjectID int

// Object pairs an editable half-edge mesh with its GPU copy and world
// transform. The source mesh is authoritative; after every accepted edit the
// GPU mesh is rebuilt from it on the next Draw.
type Object struct {
	ID        ObjectID
	Transform rl.Matrix
	Source    *halfedge.Mesh
	Pickable  bool

	tree     *halfedge.FaceTree
	bounds   rl.BoundingBox
	data     meshData
	gpu      rl.Mesh
	uploaded bool
	pending  bool
}

// CastLocalRay intersects a mesh-local ray with the object's live faces,
// using the face tree built after the last edit.
func (o *Object) CastLocalRay(origin, dir halfedge.Vector3, tolerance float64) halfedge.Hit {
	return o.Source.CastRay(origin, dir, o.tree, tolerance)
}

// Highlight is a world-space edge segment drawn as a cylinder overlay.
type Highlight struct {
	From rl.Vector3
	To   rl.Vector3
}

// Scene holds the orbit camera and draws the 3D world: floor grid, editable
// mesh objects, and the active edge highlights. Draw renders between
// BeginMode3D and EndMode3D; GPU mesh uploads are deferred to Draw so they
// run after the window/GL context exists.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	Wireframe   bool

	reg        *primitives.Registry
	objects    []*Object
	highlights []Highlight
	nextID     ObjectID
}

// New returns a scene framed by the configured camera: the camera sits at
// focus + (0, 0, radius) looking at the focus point. The grid is visible by
// default; mesh objects are added with AddMesh.
func New(reg *primitives.Registry, cam engineconfig.CameraConfig) *Scene {
	s := &Scene{reg: reg}
	focus := rl.NewVector3(cam.Focus[0], cam.Focus[1], cam.Focus[2])
	s.Camera.Position = rl.Vector3Add(focus, rl.NewVector3(0, 0, cam.Radius))
	s.Camera.Target = focus
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	if cam.Projection == "orthographic" {
		s.Camera.Projection = rl.CameraOrthographic
		s.Camera.Fovy = orthoViewHeight * cam.Scale
	} else {
		s.Camera.Projection = rl.CameraPerspective
		s.Camera.Fovy = perspectiveFovy
	}
	s.GridVisible = true
	return s
}

// SetGridVisible sets whether the floor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// SetWireframe sets whether mesh objects are drawn as wireframes. Edge
// highlights stay solid either way.
func (s *Scene) SetWireframe(on bool) {
	s.Wireframe = on
}

// AddMesh adds a mesh object and returns its id. The GPU copy is uploaded on
// the next Draw.
func (s *Scene) AddMesh(src *halfedge.Mesh, transform rl.Matrix, pickable bool) ObjectID {
	obj := &Object{
		ID:        s.nextID,
		Transform: transform,
		Source:    src,
		Pickable:  pickable,
		tree:      src.BuildFaceTree(),
		bounds:    liveBounds(src),
		data:      buildMeshData(src),
		pending:   true,
	}
	s.nextID++
	s.objects = append(s.objects, obj)
	return obj.ID
}

// Object returns the scene object with the given id.
func (s *Scene) Object(id ObjectID) (*Object, bool) {
	for _, obj := range s.objects {
		if obj.ID == id {
			return obj, true
		}
	}
	return nil, false
}

// Objects returns all scene objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// ObjectAt returns the nearest pickable object whose bounding box the given
// world-space ray enters. The box test is a cheap pre-gate; precise face and
// edge resolution happens against the half-edge mesh afterwards.
func (s *Scene) ObjectAt(ray rl.Ray) (ObjectID, bool) {
	bestID := ObjectID(-1)
	var bestDist float32
	for _, obj := range s.objects {
		if !obj.Pickable || obj.Source.FaceCount() == 0 {
			continue
		}
		hit := rl.GetRayCollisionBox(ray, obj.worldBounds())
		if !hit.Hit {
			continue
		}
		if bestID < 0 || hit.Distance < bestDist {
			bestID, bestDist = obj.ID, hit.Distance
		}
	}
	return bestID, bestID >= 0
}

// SetHighlights replaces the active highlight set. The previous set is
// dropped whole so a new pick never mixes with stale segments.
func (s *Scene) SetHighlights(hs []Highlight) {
	s.highlights = append(s.highlights[:0], hs...)
}

// ClearHighlights removes all edge highlights.
func (s *Scene) ClearHighlights() {
	s.highlights = s.highlights[:0]
}

// Highlights returns the active highlight segments.
func (s *Scene) Highlights() []Highlight {
	return s.highlights
}

// CollapseEdge collapses vertex from onto vertex to on the given object. On
// success the face tree, bounds, and GPU data are rebuilt; on failure the
// object is left exactly as it was.
func (s *Scene) CollapseEdge(id ObjectID, from, to halfedge.VertexIndex) error {
	obj, ok := s.Object(id)
	if !ok {
		return fmt.Errorf("scene: no object %d", id)
	}
	if err := obj.Source.CollapseEdge(from, to); err != nil {
		return err
	}
	obj.tree = obj.Source.BuildFaceTree()
	obj.bounds = liveBounds(obj.Source)
	obj.data = buildMeshData(obj.Source)
	obj.pending = true
	return nil
}

// ReplaceMesh swaps the object's source mesh for a freshly generated one and
// rebuilds the pick and GPU state, keeping its id and transform.
func (s *Scene) ReplaceMesh(id ObjectID, src *halfedge.Mesh) error {
	obj, ok := s.Object(id)
	if !ok {
		return fmt.Errorf("scene: no object %d", id)
	}
	obj.Source = src
	obj.tree = src.BuildFaceTree()
	obj.bounds = liveBounds(src)
	obj.data = buildMeshData(src)
	obj.pending = true
	return nil
}

// Draw renders the 3D scene. Call after ClearBackground and before 2D
// overlays (terminal, debug text). Pending mesh uploads are flushed first so
// they always run with a live GL context.
func (s *Scene) Draw() {
	s.flushUploads()

	pos := s.Camera.Position
	toCam := rl.Vector3Normalize(rl.Vector3Subtract(pos, s.Camera.Target))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Negate(toCam), s.Camera.Up))
	up := rl.Vector3CrossProduct(right, rl.Vector3Negate(toCam))
	light := rl.Vector3Add(toCam, rl.Vector3Scale(up, headlightTilt))
	light = rl.Vector3Normalize(rl.Vector3Subtract(light, rl.Vector3Scale(right, headlightTilt)))
	s.reg.SetView(
		[3]float32{pos.X, pos.Y, pos.Z},
		[3]float32{light.X, light.Y, light.Z},
	)

	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	surface := s.reg.SurfaceMaterial()
	if s.Wireframe {
		rl.EnableWireMode()
	}
	for _, obj := range s.objects {
		if !obj.uploaded {
			continue
		}
		rl.DrawMesh(obj.gpu, surface, obj.Transform)
	}
	if s.Wireframe {
		rl.DisableWireMode()
	}
	for _, h := range s.highlights {
		s.reg.DrawHighlight(h.From, h.To)
	}
	rl.EndMode3D()
}

// flushUploads uploads every object whose source mesh changed since the last
// frame, swapping out the previous GPU mesh afterwards.
func (s *Scene) flushUploads() {
	for _, obj := range s.objects {
		if !obj.pending {
			continue
		}
		obj.pending = false
		mesh := obj.data.toRaylib()
		rl.UploadMesh(&mesh, false)
		if obj.uploaded {
			old := obj.gpu
			obj.gpu = mesh
			rl.UnloadMesh(&old)
			continue
		}
		obj.gpu = mesh
		obj.uploaded = true
	}
}

// drawEditorGrid draws an infinite-style grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	// Grid lines on XZ plane (Y=0): lines along X (varying Z) and along Z (varying X)
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
