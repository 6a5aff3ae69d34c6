package primitives

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

// cylinderBase and cylinderTop are the endpoints of the unit cylinder's axis
// in model space, before any transform.
var (
	cylinderBase = rl.NewVector3(0, 0, 0)
	cylinderTop  = rl.NewVector3(0, 1, 0)
)

func assertVec3InDelta(t *testing.T, want, got rl.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta)
	assert.InDelta(t, want.Y, got.Y, delta)
	assert.InDelta(t, want.Z, got.Z, delta)
}

func TestHighlightTransformEndpoints(t *testing.T) {
	cases := []struct {
		name     string
		from, to rl.Vector3
	}{
		{"x aligned", rl.NewVector3(1, 2, 3), rl.NewVector3(4, 2, 3)},
		{"vertical up", rl.NewVector3(0, 0, 0), rl.NewVector3(0, 3, 0)},
		{"vertical down", rl.NewVector3(0, 5, 0), rl.NewVector3(0, 2, 0)},
		{"diagonal", rl.NewVector3(0, 0, 0), rl.NewVector3(1, 1, 1)},
		{"grid diagonal", rl.NewVector3(3, 4, 0), rl.NewVector3(2, 3, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := highlightTransform(tc.from, tc.to, 0.001)
			assertVec3InDelta(t, tc.from, rl.Vector3Transform(cylinderBase, m), 1e-5)
			assertVec3InDelta(t, tc.to, rl.Vector3Transform(cylinderTop, m), 1e-5)
		})
	}
}

func TestHighlightTransformPreservesRadius(t *testing.T) {
	from := rl.NewVector3(1, 2, 3)
	to := rl.NewVector3(4, 2, 3)
	m := highlightTransform(from, to, 0.001)

	// A rim point stays at its model-space distance from the axis.
	rim := rl.Vector3Transform(rl.NewVector3(0.005, 0.5, 0), m)
	mid := rl.Vector3Scale(rl.Vector3Add(from, to), 0.5)
	assert.InDelta(t, 0.005, float64(rl.Vector3Distance(rim, mid)), 1e-5)
}

func TestHighlightTransformDegenerateEdge(t *testing.T) {
	p := rl.NewVector3(2, 2, 2)
	m := highlightTransform(p, p, 0.001)

	// Zero-length edges collapse onto the shared point with no rotation.
	assertVec3InDelta(t, p, rl.Vector3Transform(cylinderBase, m), 1e-5)
	assertVec3InDelta(t, p, rl.Vector3Transform(cylinderTop, m), 1e-5)
}

func TestLoadHighlightStyle(t *testing.T) {
	style := LoadHighlightStyle("testdata/does-not-exist.yaml")
	assert.Equal(t, DefaultHighlightStyle(), style)
}

func TestHighlightStyleRGBA(t *testing.T) {
	assert.Equal(t, rl.NewColor(255, 0, 0, 255), DefaultHighlightStyle().RGBA())
	assert.Equal(t, rl.NewColor(0, 255, 128, 255), HighlightStyle{Color: "#00ff80"}.RGBA())
	assert.Equal(t, rl.NewColor(18, 52, 86, 255), HighlightStyle{Color: "123456"}.RGBA())
	assert.Equal(t, rl.NewColor(255, 0, 0, 255), HighlightStyle{Color: "nope"}.RGBA())
	assert.Equal(t, rl.NewColor(255, 0, 0, 255), HighlightStyle{}.RGBA())
}

func TestParseHexColor(t *testing.T) {
	fallback := rl.NewColor(1, 2, 3, 255)
	assert.Equal(t, rl.NewColor(24, 24, 24, 255), ParseHexColor("#181818", fallback))
	assert.Equal(t, rl.NewColor(24, 24, 24, 255), ParseHexColor("  181818 ", fallback))
	assert.Equal(t, fallback, ParseHexColor("#18181", fallback))
	assert.Equal(t, fallback, ParseHexColor("#18181z", fallback))
	assert.Equal(t, fallback, ParseHexColor("", fallback))
}
