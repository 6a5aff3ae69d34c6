package picking

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/halfedge"
	"mesh-viewer/internal/logger"
	"mesh-viewer/internal/scene"
)

// ErrNilScene is returned when a picker is constructed without a scene.
var ErrNilScene = errors.New("picking: scene is nil")

const (
	// clickDeadzone is the farthest the pointer may travel between press and
	// release, in logical pixels, and still count as a click.
	clickDeadzone = 3.0
	// pickTolerance widens edge hits around the ray, in mesh-local units.
	pickTolerance = 0.05
)

// mousePointer is the pointer id used for the mouse; touch pointers would use
// their own ids.
const mousePointer PointerID = 0

// PointerID distinguishes concurrent pointers (mouse, touch points).
type PointerID int32

type press struct {
	pos       rl.Vector2
	target    scene.ObjectID
	hasTarget bool
}

// Tracker classifies pointer gestures: a release near its press on the same
// target is a click, anything else is a drag. Drags never pick.
type Tracker struct {
	deadzoneSq float32
	presses    map[PointerID]press
}

// NewTracker returns a tracker with the given deadzone in logical pixels.
func NewTracker(deadzone float32) *Tracker {
	return &Tracker{
		deadzoneSq: deadzone * deadzone,
		presses:    make(map[PointerID]press),
	}
}

// Press records where a pointer went down and what it went down on.
func (t *Tracker) Press(id PointerID, pos rl.Vector2, target scene.ObjectID, hasTarget bool) {
	t.presses[id] = press{pos: pos, target: target, hasTarget: hasTarget}
}

// Release classifies the gesture that ends at pos. It reports true for a
// click: a press record exists, the pointer stayed within the deadzone, and
// the target matches the press target (unknown targets on either end pass).
// The press record is dropped no matter how the gesture classifies.
func (t *Tracker) Release(id PointerID, pos rl.Vector2, target scene.ObjectID, hasTarget bool) bool {
	p, ok := t.presses[id]
	if !ok {
		return false
	}
	delete(t.presses, id)

	dx := pos.X - p.pos.X
	dy := pos.Y - p.pos.Y
	if dx*dx+dy*dy > t.deadzoneSq {
		return false
	}
	if p.hasTarget && hasTarget && p.target != target {
		return false
	}
	return true
}

// Picker resolves qualifying clicks against scene meshes: face hits highlight
// the face outline, edge hits highlight the edge or, in edit mode, collapse
// it. Every resolution replaces the previous highlight set whole.
type Picker struct {
	scn      *scene.Scene
	log      *logger.Logger
	tracker  *Tracker
	editMode bool
}

// New returns a picker bound to the scene whose camera it casts rays from.
func New(scn *scene.Scene, log *logger.Logger) (*Picker, error) {
	if scn == nil {
		return nil, ErrNilScene
	}
	return &Picker{
		scn:     scn,
		log:     log,
		tracker: NewTracker(clickDeadzone),
	}, nil
}

// EditMode reports whether edge clicks collapse instead of highlight.
func (p *Picker) EditMode() bool {
	return p.editMode
}

// SetEditMode arms or disarms collapse-on-click.
func (p *Picker) SetEditMode(on bool) {
	p.editMode = on
}

// Update drains this frame's pointer input: presses record the object under
// the cursor, releases within the deadzone resolve as clicks. Tab toggles
// edit mode.
func (p *Picker) Update() {
	if !rl.IsWindowReady() {
		return
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		p.editMode = !p.editMode
		p.log.Logf("picking: edit mode %v", p.editMode)
	}

	pos := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ray := p.viewRay(pos)
		target, ok := p.scn.ObjectAt(ray)
		p.tracker.Press(mousePointer, pos, target, ok)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		ray := p.viewRay(pos)
		target, ok := p.scn.ObjectAt(ray)
		if p.tracker.Release(mousePointer, pos, target, ok) && ok {
			p.ResolveRay(ray, target)
		}
	}
}

// ResolveRay resolves a click ray against one object. The previous highlight
// set is cleared before the cast, so a miss leaves the selection empty; the
// clear and repopulate never straddle an early return.
func (p *Picker) ResolveRay(ray rl.Ray, id scene.ObjectID) {
	obj, ok := p.scn.Object(id)
	if !ok {
		return
	}
	p.scn.ClearHighlights()

	origin, dir, ok := localRay(ray, obj.Transform)
	if !ok {
		p.log.Log("picking: degenerate click ray")
		return
	}
	hit := obj.CastLocalRay(origin, dir, pickTolerance)
	switch hit.Kind {
	case halfedge.HitEdge:
		if p.editMode {
			p.collapseAt(obj, hit)
			return
		}
		p.scn.SetHighlights([]scene.Highlight{edgeHighlight(obj, hit.V0, hit.V1)})
		p.log.Logf("picking: edge (%d, %d) u=%.2f on object %d", hit.V0, hit.V1, hit.EdgeParam, obj.ID)
	case halfedge.HitFace:
		edges := obj.Source.FaceEdges(hit.Face)
		hs := make([]scene.Highlight, 0, len(edges))
		for _, e := range edges {
			hs = append(hs, edgeHighlight(obj, e[0], e[1]))
		}
		p.scn.SetHighlights(hs)
		p.log.Logf("picking: face %d (%d edges) on object %d", hit.Face, len(hs), obj.ID)
	default:
		p.log.Logf("picking: miss on object %d", obj.ID)
	}
}

// collapseAt removes the edge endpoint across from the click: a hit nearer v0
// collapses v1 onto v0, and the other way around. Rejections are logged and
// leave the mesh and selection untouched.
func (p *Picker) collapseAt(obj *scene.Object, hit halfedge.Hit) {
	from, to := hit.V0, hit.V1
	if hit.EdgeParam < 0.5 {
		from, to = hit.V1, hit.V0
	}
	if err := p.scn.CollapseEdge(obj.ID, from, to); err != nil {
		p.log.Logf("picking: collapse (%d -> %d) rejected: %v", from, to, err)
		return
	}
	p.log.Logf("picking: collapsed %d into %d, %d vertices and %d faces left",
		from, to, obj.Source.VertexCount(), obj.Source.FaceCount())
}

// viewRay builds the world-space ray under a logical screen position. The
// position is scaled to physical pixels first so picking stays accurate on
// high-DPI displays; the window is the whole viewport, so no origin offset
// applies.
func (p *Picker) viewRay(pos rl.Vector2) rl.Ray {
	sx := float32(rl.GetRenderWidth()) / float32(rl.GetScreenWidth())
	sy := float32(rl.GetRenderHeight()) / float32(rl.GetScreenHeight())
	phys := rl.NewVector2(pos.X*sx, pos.Y*sy)
	return rl.GetScreenToWorldRayEx(phys, p.scn.Camera, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))
}

// localRay transforms a world ray into mesh-local space: the origin as a
// point, the direction as the difference of two transformed points, then
// renormalized since the transform may scale. Reports false when the
// direction degenerates.
func localRay(ray rl.Ray, transform rl.Matrix) (origin, dir halfedge.Vector3, ok bool) {
	inv := rl.MatrixInvert(transform)
	o := rl.Vector3Transform(ray.Position, inv)
	tip := rl.Vector3Transform(rl.Vector3Add(ray.Position, ray.Direction), inv)
	d := rl.Vector3Subtract(tip, o)

	dv := halfedge.Vector3{X: float64(d.X), Y: float64(d.Y), Z: float64(d.Z)}
	if dv.LengthSquared() == 0 {
		return halfedge.Vector3{}, halfedge.Vector3{}, false
	}
	ov := halfedge.Vector3{X: float64(o.X), Y: float64(o.Y), Z: float64(o.Z)}
	return ov, dv.Normalized(), true
}

// edgeHighlight builds the world-space segment for one mesh edge.
func edgeHighlight(obj *scene.Object, v0, v1 halfedge.VertexIndex) scene.Highlight {
	return scene.Highlight{
		From: worldPoint(obj, v0),
		To:   worldPoint(obj, v1),
	}
}

func worldPoint(obj *scene.Object, v halfedge.VertexIndex) rl.Vector3 {
	pos := obj.Source.VertexPosition(v)
	local := rl.NewVector3(float32(pos.X), float32(pos.Y), float32(pos.Z))
	return rl.Vector3Transform(local, obj.Transform)
}
