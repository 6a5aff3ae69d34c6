package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/commands"
	"mesh-viewer/internal/debug"
	"mesh-viewer/internal/engineconfig"
	"mesh-viewer/internal/fonts"
	"mesh-viewer/internal/graphics"
	"mesh-viewer/internal/logger"
	"mesh-viewer/internal/meshgen"
	"mesh-viewer/internal/orbit"
	"mesh-viewer/internal/picking"
	"mesh-viewer/internal/primitives"
	"mesh-viewer/internal/scene"
	"mesh-viewer/internal/terminal"
)

const (
	windowTitle        = "mesh viewer"
	highlightStylePath = "assets/viewer/highlight.yaml"
	meshOptionsPath    = "assets/viewer/mesh.yaml"
)

func main() {
	log := logger.New()

	prefs, _ := engineconfig.Load()
	if err := engineconfig.ValidateCamera(prefs.Camera); err != nil {
		log.Logf("config: %v, using the default camera", err)
		prefs.Camera = engineconfig.DefaultCamera()
	}

	style := primitives.LoadHighlightStyle(highlightStylePath)
	scn := scene.New(primitives.NewRegistry(style), prefs.Camera)
	scn.SetGridVisible(prefs.GridVisible)
	scn.SetWireframe(prefs.Wireframe)

	grid, err := meshgen.GenerateGrid(meshgen.LoadGridOptions(meshOptionsPath))
	if err != nil {
		log.Logf("meshgen: %v, using the default grid", err)
		if grid, err = meshgen.GenerateGrid(meshgen.DefaultGridOptions()); err != nil {
			log.Logf("meshgen: %v", err)
			return
		}
	}
	meshID := scn.AddMesh(grid, rl.MatrixIdentity(), true)

	ctl, err := orbit.NewController(&scn.Camera, settingsFromConfig(prefs.Camera), orbit.State{
		Focus:  rl.NewVector3(prefs.Camera.Focus[0], prefs.Camera.Focus[1], prefs.Camera.Focus[2]),
		Radius: prefs.Camera.Radius,
		Scale:  prefs.Camera.Scale,
	})
	if err != nil {
		log.Logf("orbit: %v", err)
		return
	}

	picker, err := picking.New(scn, log)
	if err != nil {
		log.Logf("picking: %v", err)
		return
	}

	overlay := debug.New()
	overlay.SetShowFPS(prefs.ShowFPS)
	overlay.SetShowMemAlloc(prefs.ShowMemAlloc)
	overlay.Status = func() string {
		mode := "inspect"
		if picker.EditMode() {
			mode = "collapse"
		}
		return fmt.Sprintf("%s | radius %.1f | %d highlighted | TAB edit, ESC terminal",
			mode, ctl.State().Radius, len(scn.Highlights()))
	}

	reg := commands.NewRegistry()
	commands.RegisterViewerCommands(reg, commands.ViewerDeps{
		Log:             log,
		Prefs:           &prefs,
		Scene:           scn,
		Orbit:           ctl,
		Picker:          picker,
		Overlay:         overlay,
		MeshOptionsPath: meshOptionsPath,
		MeshID:          meshID,
	})
	term := terminal.New(log, reg)

	fontChecked := false
	update := func() {
		if !fontChecked {
			fontChecked = true
			loadOverlayFont(term, overlay)
		}
		term.Update()
		if term.IsOpen() {
			return
		}
		if rl.IsKeyPressed(rl.KeyW) {
			scn.SetWireframe(!scn.Wireframe)
			prefs.Wireframe = scn.Wireframe
			log.Logf("wireframe: %v", scn.Wireframe)
		}
		ctl.Apply(orbit.Gather())
		picker.Update()
	}
	draw := func() {
		scn.Draw()
		overlay.Draw()
		term.Draw()
	}

	opts := graphics.DefaultOptions()
	opts.Title = windowTitle
	opts.Fullscreen = prefs.Fullscreen
	opts.Background = primitives.ParseHexColor(prefs.Background, opts.Background)
	graphics.Run(opts, update, draw)
}

// settingsFromConfig maps the validated camera config onto orbit tuning.
func settingsFromConfig(c engineconfig.CameraConfig) orbit.Settings {
	return orbit.Settings{
		RotationSensitivity: c.RotationSensitivity,
		PanSensitivity:      c.PanSensitivity,
		ZoomGain:            c.ZoomGain,
		ZoomStep:            c.ZoomStep,
		MinRadius:           c.MinRadius,
		MaxRadius:           c.MaxRadius,
		MinScale:            c.MinScale,
		MaxScale:            c.MaxScale,
	}
}

// loadOverlayFont gives the terminal and overlay a nicer font when one ships
// under assets/fonts. Call after the window/OpenGL context exists.
func loadOverlayFont(term *terminal.Terminal, overlay *debug.Overlay) {
	path, err := fonts.FirstFont()
	if err != nil {
		return
	}
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return
	}
	term.SetFont(f)
	overlay.SetFont(f)
}
