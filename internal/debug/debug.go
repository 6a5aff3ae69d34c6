package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws runtime debug text over the 3D view. All counters are off by
// default. Status, when set, supplies a one-line viewer state summary
// (projection, edit mode) drawn at the top-left on the same refresh interval.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	Status       func() string

	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStatus   string
	lastMemStats runtime.MemStats
}

// New returns an Overlay with all counters hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (o *Overlay) SetShowFPS(show bool) {
	o.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (o *Overlay) SetShowMemAlloc(show bool) {
	o.ShowMemAlloc = show
}

// SetFont sets the font used for overlay text. Zero texture ID = use raylib default.
func (o *Overlay) SetFont(font rl.Font) {
	o.font = font
}

// Draw renders any enabled overlays. Call after the scene and before the
// terminal in the draw loop. Text is only recomputed every updateInterval
// frames to limit allocations.
func (o *Overlay) Draw() {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.ShowFPS && o.lastFpsText == "" {
		update = true
	}
	if o.ShowMemAlloc && o.lastMemText == "" {
		update = true
	}
	if o.Status != nil && o.lastStatus == "" {
		update = true
	}

	y := int32(padding)

	if o.ShowFPS {
		if update {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		o.drawRight(o.lastFpsText, y, rl.Green)
		y += lineHeight
	}

	if o.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&o.lastMemStats)
			mb := float64(o.lastMemStats.Alloc) / (1024 * 1024)
			o.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		o.drawRight(o.lastMemText, y, rl.Green)
	}

	if o.Status != nil {
		if update {
			o.lastStatus = o.Status()
		}
		o.drawAt(o.lastStatus, padding, padding, rl.RayWhite)
	}
}

// drawRight draws one line right-aligned against the screen edge.
func (o *Overlay) drawRight(text string, y int32, color rl.Color) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if o.font.Texture.ID != 0 {
		sz := float32(fontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(o.font, text, sz, 1).X-float32(padding), float32(y))
		rl.DrawTextEx(o.font, text, pos, sz, 1, color)
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, color)
}

// drawAt draws one line at a fixed screen position.
func (o *Overlay) drawAt(text string, x, y int32, color rl.Color) {
	if text == "" {
		return
	}
	if o.font.Texture.ID != 0 {
		rl.DrawTextEx(o.font, text, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, color)
		return
	}
	rl.DrawText(text, x, y, fontSize, color)
}
