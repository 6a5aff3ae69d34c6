package commands

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-viewer/internal/debug"
	"mesh-viewer/internal/engineconfig"
	"mesh-viewer/internal/logger"
	"mesh-viewer/internal/meshgen"
	"mesh-viewer/internal/orbit"
	"mesh-viewer/internal/picking"
	"mesh-viewer/internal/primitives"
	"mesh-viewer/internal/scene"
)

func testDeps(t *testing.T) (ViewerDeps, *Registry) {
	t.Helper()
	chdir(t, t.TempDir())

	log := logger.New()
	prefs := engineconfig.Default()
	scn := scene.New(primitives.NewRegistry(primitives.DefaultHighlightStyle()), prefs.Camera)

	grid, err := meshgen.GenerateGrid(meshgen.GridOptions{Size: 3, Spacing: 1})
	require.NoError(t, err)
	id := scn.AddMesh(grid, rl.MatrixIdentity(), true)

	ctl, err := orbit.NewController(&scn.Camera, orbit.DefaultSettings(), orbit.State{
		Radius: prefs.Camera.Radius,
		Scale:  prefs.Camera.Scale,
	})
	require.NoError(t, err)

	picker, err := picking.New(scn, log)
	require.NoError(t, err)

	deps := ViewerDeps{
		Log:             log,
		Prefs:           &prefs,
		Scene:           scn,
		Orbit:           ctl,
		Picker:          picker,
		Overlay:         debug.New(),
		MeshOptionsPath: "assets/viewer/mesh.yaml",
		MeshID:          id,
	}
	r := NewRegistry()
	RegisterViewerCommands(r, deps)
	return deps, r
}

func lastLine(t *testing.T, log *logger.Logger) string {
	t.Helper()
	tail := log.Tail(1)
	require.Len(t, tail, 1)
	return tail[0]
}

func TestGridToggleSyncsPrefs(t *testing.T) {
	deps, r := testDeps(t)
	require.True(t, deps.Scene.GridVisible)

	require.NoError(t, r.Execute([]string{"grid"}))
	assert.False(t, deps.Scene.GridVisible)
	assert.False(t, deps.Prefs.GridVisible)
	assert.Contains(t, lastLine(t, deps.Log), "grid: off")

	require.NoError(t, r.Execute([]string{"grid"}))
	assert.True(t, deps.Scene.GridVisible)
	assert.True(t, deps.Prefs.GridVisible)
}

func TestWireframeToggle(t *testing.T) {
	deps, r := testDeps(t)

	require.NoError(t, r.Execute([]string{"wireframe"}))
	assert.True(t, deps.Scene.Wireframe)
	assert.True(t, deps.Prefs.Wireframe)
}

func TestOverlayToggles(t *testing.T) {
	deps, r := testDeps(t)

	require.NoError(t, r.Execute([]string{"fps"}))
	assert.True(t, deps.Overlay.ShowFPS)
	assert.True(t, deps.Prefs.ShowFPS)

	require.NoError(t, r.Execute([]string{"mem"}))
	assert.True(t, deps.Overlay.ShowMemAlloc)
	assert.True(t, deps.Prefs.ShowMemAlloc)
}

func TestCollapseTogglesEditMode(t *testing.T) {
	deps, r := testDeps(t)
	require.False(t, deps.Picker.EditMode())

	require.NoError(t, r.Execute([]string{"collapse"}))
	assert.True(t, deps.Picker.EditMode())
	assert.Contains(t, lastLine(t, deps.Log), "edit mode: on")

	require.NoError(t, r.Execute([]string{"collapse"}))
	assert.False(t, deps.Picker.EditMode())
}

func TestCameraStatusAndReset(t *testing.T) {
	deps, r := testDeps(t)

	require.NoError(t, r.Execute([]string{"camera"}))
	assert.Contains(t, lastLine(t, deps.Log), "perspective")

	deps.Orbit.SetRadius(50)
	require.NoError(t, r.Execute([]string{"camera", "-reset"}))
	assert.Equal(t, float32(10), deps.Orbit.State().Radius)
	assert.Equal(t, rl.NewVector3(0, 0, 10), deps.Scene.Camera.Position)
}

func TestMeshStats(t *testing.T) {
	deps, r := testDeps(t)

	require.NoError(t, r.Execute([]string{"mesh"}))
	assert.Contains(t, lastLine(t, deps.Log), "9 vertices, 8 faces")
}

func TestMeshRegenAndFlagReset(t *testing.T) {
	deps, r := testDeps(t)
	obj, ok := deps.Scene.Object(deps.MeshID)
	require.True(t, ok)

	require.NoError(t, r.Execute([]string{"mesh", "-regen", "-size", "4"}))
	assert.Equal(t, 16, obj.Source.VertexCount())

	// Without -size the regenerated grid falls back to the configured
	// default, proving the earlier override did not stick.
	require.NoError(t, r.Execute([]string{"mesh", "-regen"}))
	assert.Equal(t, 256, obj.Source.VertexCount())
}

func TestMeshRegenClearsHighlights(t *testing.T) {
	deps, r := testDeps(t)
	deps.Scene.SetHighlights([]scene.Highlight{{From: rl.NewVector3(0, 0, 0), To: rl.NewVector3(1, 0, 0)}})

	require.NoError(t, r.Execute([]string{"mesh", "-regen", "-size", "2"}))
	assert.Empty(t, deps.Scene.Highlights())
}

func TestConfigSavePersistsSession(t *testing.T) {
	deps, r := testDeps(t)

	require.NoError(t, r.Execute([]string{"grid"}))
	deps.Orbit.SetRadius(20)
	require.NoError(t, r.Execute([]string{"config", "-save"}))

	saved, err := engineconfig.Load()
	require.NoError(t, err)
	assert.False(t, saved.GridVisible)
	assert.Equal(t, float32(20), saved.Camera.Radius)
}

func TestHelpListsCommands(t *testing.T) {
	deps, r := testDeps(t)

	require.NoError(t, r.Execute([]string{"help"}))
	line := lastLine(t, deps.Log)
	for _, name := range []string{"camera", "collapse", "config", "fps", "grid", "help", "mem", "mesh", "snapshot", "wireframe"} {
		assert.Contains(t, line, name)
	}
	// Sorted listing.
	assert.Less(t, strings.Index(line, "camera"), strings.Index(line, "wireframe"))
}
