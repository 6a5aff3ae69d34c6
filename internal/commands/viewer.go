package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/debug"
	"mesh-viewer/internal/engineconfig"
	"mesh-viewer/internal/logger"
	"mesh-viewer/internal/meshgen"
	"mesh-viewer/internal/orbit"
	"mesh-viewer/internal/picking"
	"mesh-viewer/internal/scene"
	"mesh-viewer/internal/snapshot"
)

// ViewerDeps wires the viewer subsystems into the command set. Prefs is the
// live preferences struct; toggle commands update it so "config -save"
// persists whatever the session looks like.
type ViewerDeps struct {
	Log     *logger.Logger
	Prefs   *engineconfig.ViewerPrefs
	Scene   *scene.Scene
	Orbit   *orbit.Controller
	Picker  *picking.Picker
	Overlay *debug.Overlay

	// MeshOptionsPath is the grid options YAML re-read by "mesh -regen".
	MeshOptionsPath string
	// MeshID is the editable grid object in the scene.
	MeshID scene.ObjectID
}

// RegisterViewerCommands registers the viewer command set on r. All commands
// report through deps.Log, which the terminal renders.
func RegisterViewerCommands(r *Registry, deps ViewerDeps) {
	r.Register("grid", newFlagSet("grid"), func() error {
		deps.Scene.SetGridVisible(!deps.Scene.GridVisible)
		deps.Prefs.GridVisible = deps.Scene.GridVisible
		deps.Log.Logf("grid: %s", onOff(deps.Scene.GridVisible))
		return nil
	})

	r.Register("wireframe", newFlagSet("wireframe"), func() error {
		deps.Scene.SetWireframe(!deps.Scene.Wireframe)
		deps.Prefs.Wireframe = deps.Scene.Wireframe
		deps.Log.Logf("wireframe: %s", onOff(deps.Scene.Wireframe))
		return nil
	})

	r.Register("fps", newFlagSet("fps"), func() error {
		deps.Overlay.SetShowFPS(!deps.Overlay.ShowFPS)
		deps.Prefs.ShowFPS = deps.Overlay.ShowFPS
		deps.Log.Logf("fps counter: %s", onOff(deps.Overlay.ShowFPS))
		return nil
	})

	r.Register("mem", newFlagSet("mem"), func() error {
		deps.Overlay.SetShowMemAlloc(!deps.Overlay.ShowMemAlloc)
		deps.Prefs.ShowMemAlloc = deps.Overlay.ShowMemAlloc
		deps.Log.Logf("mem counter: %s", onOff(deps.Overlay.ShowMemAlloc))
		return nil
	})

	r.Register("collapse", newFlagSet("collapse"), func() error {
		deps.Picker.SetEditMode(!deps.Picker.EditMode())
		deps.Log.Logf("edit mode: %s", onOff(deps.Picker.EditMode()))
		return nil
	})

	cameraFS := newFlagSet("camera")
	cameraReset := cameraFS.Bool("reset", false, "return the camera to the configured home position")
	r.Register("camera", cameraFS, func() error {
		if *cameraReset {
			cfg := deps.Prefs.Camera
			deps.Orbit.Reset(orbit.State{
				Focus:  rl.NewVector3(cfg.Focus[0], cfg.Focus[1], cfg.Focus[2]),
				Radius: cfg.Radius,
				Scale:  cfg.Scale,
			})
			deps.Log.Log("camera: reset")
			return nil
		}
		st := deps.Orbit.State()
		proj := "perspective"
		if deps.Scene.Camera.Projection == rl.CameraOrthographic {
			proj = "orthographic"
		}
		deps.Log.Logf("camera: %s radius=%.2f scale=%.2f focus=(%.2f, %.2f, %.2f)",
			proj, st.Radius, st.Scale, st.Focus.X, st.Focus.Y, st.Focus.Z)
		return nil
	})

	meshFS := newFlagSet("mesh")
	meshRegen := meshFS.Bool("regen", false, "rebuild the grid, dropping all edits")
	meshSize := meshFS.Int("size", 0, "override vertices per side (0 = keep configured)")
	meshNoise := meshFS.Float64("noise", -1, "override noise height (negative = keep configured)")
	meshSeed := meshFS.Int64("seed", 0, "override noise seed (0 = keep configured)")
	r.Register("mesh", meshFS, func() error {
		if !*meshRegen {
			obj, ok := deps.Scene.Object(deps.MeshID)
			if !ok {
				return fmt.Errorf("no mesh object %d", deps.MeshID)
			}
			deps.Log.Logf("mesh: %d vertices, %d faces", obj.Source.VertexCount(), obj.Source.FaceCount())
			return nil
		}
		opts := meshgen.LoadGridOptions(deps.MeshOptionsPath)
		if *meshSize > 0 {
			opts.Size = *meshSize
		}
		if *meshNoise >= 0 {
			opts.NoiseHeight = *meshNoise
		}
		if *meshSeed != 0 {
			opts.Seed = *meshSeed
		}
		m, err := meshgen.GenerateGrid(opts)
		if err != nil {
			return err
		}
		if err := deps.Scene.ReplaceMesh(deps.MeshID, m); err != nil {
			return err
		}
		deps.Scene.ClearHighlights()
		deps.Log.Logf("mesh: regenerated %dx%d grid, %d vertices, %d faces",
			opts.Size, opts.Size, m.VertexCount(), m.FaceCount())
		return nil
	})

	r.Register("snapshot", newFlagSet("snapshot"), func() error {
		path, err := snapshot.Capture()
		if err != nil {
			return err
		}
		deps.Log.Logf("snapshot: saved %s", path)
		return nil
	})

	configFS := newFlagSet("config")
	configSave := configFS.Bool("save", false, "write current preferences to disk")
	r.Register("config", configFS, func() error {
		if !*configSave {
			deps.Log.Logf("config: %s (grid=%s wireframe=%s fps=%s mem=%s)",
				engineconfig.ViewerConfigPath,
				onOff(deps.Prefs.GridVisible), onOff(deps.Prefs.Wireframe),
				onOff(deps.Prefs.ShowFPS), onOff(deps.Prefs.ShowMemAlloc))
			return nil
		}
		st := deps.Orbit.State()
		deps.Prefs.Camera.Focus = [3]float32{st.Focus.X, st.Focus.Y, st.Focus.Z}
		deps.Prefs.Camera.Radius = st.Radius
		deps.Prefs.Camera.Scale = st.Scale
		if err := engineconfig.Save(*deps.Prefs); err != nil {
			return err
		}
		deps.Log.Logf("config: saved %s", engineconfig.ViewerConfigPath)
		return nil
	})

	r.Register("help", newFlagSet("help"), func() error {
		deps.Log.Log("commands: " + strings.Join(r.Names(), ", "))
		return nil
	})
}

// newFlagSet returns a FlagSet that reports parse errors through Execute
// instead of printing and exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
