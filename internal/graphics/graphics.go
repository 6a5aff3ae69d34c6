package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window opened by Run.
type Options struct {
	Title      string
	Width      int32 // ignored when Fullscreen
	Height     int32
	Fullscreen bool
	Background rl.Color // clear color for every frame
}

// DefaultOptions returns a windowed 1600x900 viewport with a dark background.
func DefaultOptions() Options {
	return Options{
		Title:      "mesh viewer",
		Width:      1600,
		Height:     900,
		Background: rl.NewColor(24, 24, 24, 255),
	}
}

// Run opens the window and drives the main loop. Each frame it calls update
// (input), then clears the screen and calls draw. This keeps the graphics
// layer separate from the scene, terminal, and overlays.
// ESC toggles the terminal, so the window closes via the window button only.
func Run(opts Options, update, draw func()) {
	if opts.Fullscreen {
		rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowHighdpi | rl.FlagFullscreenMode)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), opts.Title)
	} else {
		rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
		rl.InitWindow(opts.Width, opts.Height, opts.Title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(opts.Background)
		draw()
		rl.EndDrawing()
	}
}
