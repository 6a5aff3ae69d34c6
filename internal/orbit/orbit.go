package orbit

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNilCamera is returned when a controller is constructed without a camera.
var ErrNilCamera = errors.New("orbit: camera is nil")

// polarEpsilon keeps the polar angle strictly inside (0, pi) so the camera
// never crosses the poles.
const polarEpsilon = 0.01

// orthoViewHeight is the world-space view height at Scale == 1 for
// orthographic cameras. Fovy carries this height multiplied by the scale.
const orthoViewHeight = 2.0

// Settings holds the orbit tuning constants. The config layer validates these
// once at startup; DefaultSettings matches the stock viewer feel.
type Settings struct {
	RotationSensitivity float32
	PanSensitivity      float32
	ZoomGain            float32
	ZoomStep            float32
	MinRadius           float32
	MaxRadius           float32
	MinScale            float32
	MaxScale            float32
}

// DefaultSettings returns the stock sensitivities and zoom limits.
func DefaultSettings() Settings {
	return Settings{
		RotationSensitivity: 0.005,
		PanSensitivity:      0.001,
		ZoomGain:            0.1,
		ZoomStep:            0.25,
		MinRadius:           0.5,
		MaxRadius:           100,
		MinScale:            0.1,
		MaxScale:            10,
	}
}

// State is the orbit state for one camera. Radius stays clamped to the
// configured range after every mutation. LastSample holds the previous raw
// motion delta while an orbit button is held; nil means no sample yet.
type State struct {
	Focus      rl.Vector3
	Radius     float32
	Scale      float32
	UpsideDown bool
	LastSample *rl.Vector2
}

// Batch is one tick of gathered input. Motion carries raw per-event pointer
// deltas in the order they arrived.
type Batch struct {
	Motion      []rl.Vector2
	Scroll      float32
	RotateHeld  bool
	PanHeld     bool
	ZoomInHeld  bool
	ZoomOutHeld bool
}

// Gather reads the current raylib input into a Batch. Zero-motion frames add
// no motion entry, mirroring event-driven pointer input.
func Gather() Batch {
	b := Batch{
		Scroll:      rl.GetMouseWheelMove(),
		RotateHeld:  rl.IsMouseButtonDown(rl.MouseButtonLeft),
		PanHeld:     rl.IsMouseButtonDown(rl.MouseButtonRight),
		ZoomInHeld:  rl.IsKeyDown(rl.KeyEqual),
		ZoomOutHeld: rl.IsKeyDown(rl.KeyMinus),
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		b.Motion = append(b.Motion, d)
	}
	return b
}

// Controller orbits a single camera around a focus point. It owns the orbit
// state and repositions the camera in place on every Apply.
type Controller struct {
	settings Settings
	state    State
	cam      *rl.Camera3D
}

// NewController binds the controller to cam. The camera reference is taken
// once at startup; a nil camera is a construction error, not a per-frame
// lookup failure. Radius and Scale are clamped into the configured range.
func NewController(cam *rl.Camera3D, settings Settings, state State) (*Controller, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}
	state.Radius = rl.Clamp(state.Radius, settings.MinRadius, settings.MaxRadius)
	state.Scale = rl.Clamp(state.Scale, settings.MinScale, settings.MaxScale)
	c := &Controller{settings: settings, state: state, cam: cam}
	if cam.Projection == rl.CameraOrthographic {
		cam.Fovy = orthoViewHeight * c.state.Scale
	}
	return c, nil
}

// State returns a copy of the current orbit state.
func (c *Controller) State() State {
	return c.state
}

// Settings returns the controller's tuning constants.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Reset replaces the orbit state and moves the camera to the home position on
// the +Z side of the focus. Any in-progress drag sample is discarded.
func (c *Controller) Reset(state State) {
	state.Radius = rl.Clamp(state.Radius, c.settings.MinRadius, c.settings.MaxRadius)
	state.Scale = rl.Clamp(state.Scale, c.settings.MinScale, c.settings.MaxScale)
	state.UpsideDown = false
	state.LastSample = nil
	c.state = state

	c.cam.Position = rl.Vector3Add(state.Focus, rl.NewVector3(0, 0, state.Radius))
	if c.cam.Projection == rl.CameraOrthographic {
		c.cam.Fovy = orthoViewHeight * state.Scale
	}
	c.lookAtFocus()
}

// SetRadius clamps r into range and moves the camera onto the new sphere.
func (c *Controller) SetRadius(r float32) {
	c.state.Radius = rl.Clamp(r, c.settings.MinRadius, c.settings.MaxRadius)
	c.applyRadius()
}

// SetScale clamps s into range and, for orthographic cameras, resizes the
// view volume.
func (c *Controller) SetScale(s float32) {
	c.state.Scale = rl.Clamp(s, c.settings.MinScale, c.settings.MaxScale)
	if c.cam.Projection == rl.CameraOrthographic {
		c.cam.Fovy = orthoViewHeight * c.state.Scale
	}
}

// Apply consumes one input batch and advances the camera. Transitions run in
// a fixed order: zoom, then rotation, then pan, then radius re-normalization.
func (c *Controller) Apply(batch Batch) {
	var rotationMove, panMove rl.Vector2

	// Classify motion. Each raw delta is adjusted by the previous raw
	// sample before it accumulates; the sample resets only when no orbit
	// button is held, so a stale delta cannot leak into the next drag.
	switch {
	case batch.RotateHeld:
		for _, raw := range batch.Motion {
			if last := c.state.LastSample; last != nil {
				rotationMove.X += raw.X - last.X
				rotationMove.Y += raw.Y - last.Y
			}
			sample := raw
			c.state.LastSample = &sample
		}
	case batch.PanHeld:
		for _, raw := range batch.Motion {
			if last := c.state.LastSample; last != nil {
				panMove.X += raw.X - last.X
				panMove.Y += raw.Y - last.Y
			}
			sample := raw
			c.state.LastSample = &sample
		}
	default:
		c.state.LastSample = nil
	}

	changed := false

	// Scroll zoom: orthographic cameras resize the view volume, perspective
	// cameras move along the view axis. Keyboard zoom steps the radius only
	// on scroll-free ticks.
	if batch.Scroll != 0 {
		if c.cam.Projection == rl.CameraOrthographic {
			c.state.Scale *= 1 - batch.Scroll*c.settings.ZoomGain
			c.state.Scale = rl.Clamp(c.state.Scale, c.settings.MinScale, c.settings.MaxScale)
			c.cam.Fovy = orthoViewHeight * c.state.Scale
		} else {
			c.state.Radius -= batch.Scroll * c.state.Radius * c.settings.ZoomGain
			changed = true
		}
	} else {
		if batch.ZoomInHeld {
			c.state.Radius -= c.settings.ZoomStep
			changed = true
		}
		if batch.ZoomOutHeld {
			c.state.Radius += c.settings.ZoomStep
			changed = true
		}
	}
	c.state.Radius = rl.Clamp(c.state.Radius, c.settings.MinRadius, c.settings.MaxRadius)

	if rotationMove.X*rotationMove.X+rotationMove.Y*rotationMove.Y > 0 {
		deltaX := rotationMove.X * c.settings.RotationSensitivity
		deltaY := rotationMove.Y * c.settings.RotationSensitivity

		// Current position in spherical coordinates around the focus.
		offset := rl.Vector3Subtract(c.cam.Position, c.state.Focus)
		theta := math32.Atan2(offset.Z, offset.X)
		phi := math32.Acos(offset.Y / c.state.Radius)

		theta += deltaX
		phi -= deltaY

		// Keep the polar angle off the poles so the view never flips.
		phi = rl.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

		newPosition := rl.NewVector3(
			c.state.Radius*math32.Sin(phi)*math32.Cos(theta),
			c.state.Radius*math32.Cos(phi),
			c.state.Radius*math32.Sin(phi)*math32.Sin(theta),
		)
		c.cam.Position = rl.Vector3Add(c.state.Focus, newPosition)
		c.lookAtFocus()
		changed = true
	}

	if panMove.X*panMove.X+panMove.Y*panMove.Y > 0 {
		// Screen-space pan along the camera's right and up axes.
		forward := rl.Vector3Normalize(rl.Vector3Subtract(c.cam.Target, c.cam.Position))
		right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, rl.NewVector3(0, 1, 0)))
		up := rl.Vector3CrossProduct(right, forward)

		panOffset := rl.Vector3Scale(
			rl.Vector3Add(rl.Vector3Scale(right, -panMove.X), rl.Vector3Scale(up, panMove.Y)),
			c.settings.PanSensitivity*c.state.Radius,
		)

		c.state.Focus = rl.Vector3Add(c.state.Focus, panOffset)

		// Keep this exact order; simplifying it (the position stays put)
		// changes the float rounding.
		offset := rl.Vector3Subtract(c.cam.Position, rl.Vector3Subtract(c.state.Focus, panOffset))
		c.cam.Position = rl.Vector3Add(c.state.Focus, offset)
		c.lookAtFocus()
		changed = true
	}

	if changed {
		c.applyRadius()
	}
}

// applyRadius projects the camera back onto the orbit sphere and re-aims it.
func (c *Controller) applyRadius() {
	position := rl.Vector3Subtract(c.cam.Position, c.state.Focus)
	position = rl.Vector3Scale(rl.Vector3Normalize(position), c.state.Radius)
	c.cam.Position = rl.Vector3Add(c.state.Focus, position)
	c.lookAtFocus()
}

// lookAtFocus re-aims the camera at the focus with world up. Raylib cameras
// are look-at by construction, so updating Target and Up is the whole job.
func (c *Controller) lookAtFocus() {
	c.cam.Target = c.state.Focus
	c.cam.Up = rl.NewVector3(0, 1, 0)
}
