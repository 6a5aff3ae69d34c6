package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ViewerConfigPath is the path to the viewer config file, relative to the
// process working directory.
const ViewerConfigPath = "config/viewer.json"

// CameraConfig holds the orbit camera setup. It is validated once at startup;
// the viewer never re-reads camera configuration mid-session.
type CameraConfig struct {
	Projection string     `json:"projection"` // "perspective" or "orthographic"
	Focus      [3]float32 `json:"focus"`
	Radius     float32    `json:"radius"`
	Scale      float32    `json:"scale"` // orthographic view scale

	RotationSensitivity float32 `json:"rotation_sensitivity"`
	PanSensitivity      float32 `json:"pan_sensitivity"`
	ZoomGain            float32 `json:"zoom_gain"`
	ZoomStep            float32 `json:"zoom_step"`
	MinRadius           float32 `json:"min_radius"`
	MaxRadius           float32 `json:"max_radius"`
	MinScale            float32 `json:"min_scale"`
	MaxScale            float32 `json:"max_scale"`
}

// ViewerPrefs holds viewer preferences (debug overlays, grid, wireframe,
// window, camera). Persisted across runs.
type ViewerPrefs struct {
	ShowFPS      bool         `json:"show_fps"`
	ShowMemAlloc bool         `json:"show_memalloc"`
	GridVisible  bool         `json:"grid_visible"`
	Wireframe    bool         `json:"wireframe"`
	Fullscreen   bool         `json:"fullscreen"`
	Background   string       `json:"background"` // "#rrggbb" clear color
	Camera       CameraConfig `json:"camera"`
}

// DefaultCamera returns the stock orbit camera: perspective projection looking
// at the origin from ten units out.
func DefaultCamera() CameraConfig {
	return CameraConfig{
		Projection:          "perspective",
		Focus:               [3]float32{0, 0, 0},
		Radius:              10,
		Scale:               2,
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

// Default returns default viewer preferences (debug overlays off, grid on,
// solid shading, stock camera).
func Default() ViewerPrefs {
	return ViewerPrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  true,
		Wireframe:    false,
		Fullscreen:   false,
		Background:   "#181818",
		Camera:       DefaultCamera(),
	}
}

// ValidationError reports a camera configuration field that cannot be used.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: camera %s %s", e.Field, e.Reason)
}

// ValidateCamera checks a camera configuration for values the controller
// cannot operate on. It returns a *ValidationError naming the first offending
// field, or nil.
func ValidateCamera(c CameraConfig) error {
	switch c.Projection {
	case "perspective", "orthographic":
	default:
		return &ValidationError{Field: "projection", Reason: fmt.Sprintf("must be perspective or orthographic, got %q", c.Projection)}
	}
	if c.Radius <= 0 {
		return &ValidationError{Field: "radius", Reason: "must be positive"}
	}
	if c.Scale <= 0 {
		return &ValidationError{Field: "scale", Reason: "must be positive"}
	}
	if c.RotationSensitivity <= 0 {
		return &ValidationError{Field: "rotation_sensitivity", Reason: "must be positive"}
	}
	if c.PanSensitivity <= 0 {
		return &ValidationError{Field: "pan_sensitivity", Reason: "must be positive"}
	}
	if c.ZoomGain <= 0 {
		return &ValidationError{Field: "zoom_gain", Reason: "must be positive"}
	}
	if c.ZoomStep <= 0 {
		return &ValidationError{Field: "zoom_step", Reason: "must be positive"}
	}
	if c.MinRadius <= 0 {
		return &ValidationError{Field: "min_radius", Reason: "must be positive"}
	}
	if c.MaxRadius <= c.MinRadius {
		return &ValidationError{Field: "max_radius", Reason: "must exceed min_radius"}
	}
	if c.MinScale <= 0 {
		return &ValidationError{Field: "min_scale", Reason: "must be positive"}
	}
	if c.MaxScale <= c.MinScale {
		return &ValidationError{Field: "max_scale", Reason: "must exceed min_scale"}
	}
	return nil
}

// Load reads viewer preferences from config/viewer.json. If the file is
// missing or invalid, returns Default() and does not create a file.
func Load() (ViewerPrefs, error) {
	data, err := os.ReadFile(ViewerConfigPath)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes viewer preferences to config/viewer.json, creating the config
// directory if needed.
func Save(p ViewerPrefs) error {
	dir := filepath.Dir(ViewerConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(ViewerConfigPath, data, 0644)
}
