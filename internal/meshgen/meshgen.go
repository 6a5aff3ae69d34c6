package meshgen

import (
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mesh-viewer/internal/halfedge"
)

// GridOptions controls generation of the editable grid surface.
// Size is the number of vertices per side; Spacing is the world distance
// between neighboring vertices on X/Y. NoiseHeight is the maximum Z
// displacement in world units; zero keeps the grid flat.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type GridOptions struct {
	Size    int     `yaml:"size"`
	Spacing float64 `yaml:"spacing"`

	NoiseHeight float64 `yaml:"noiseHeight"`
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Frequency   float64 `yaml:"frequency"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Gain        float64 `yaml:"gain"`
}

// DefaultGridOptions returns a sane default configuration: a flat 16x16 grid
// with unit spacing.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Size:        16,
		Spacing:     1.0,
		NoiseHeight: 0,
		Seed:        0,
		Octaves:     4,
		Frequency:   0.08,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

// LoadGridOptions reads grid options from a YAML file (e.g. assets/viewer/mesh.yaml).
// A missing or unreadable file returns the defaults so the viewer always has a
// surface to show.
func LoadGridOptions(path string) GridOptions {
	opts := DefaultGridOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return DefaultGridOptions()
	}
	return opts
}

// GenerateGrid builds a Size x Size vertex grid in the XY plane, two triangles
// per quad. With NoiseHeight > 0 each vertex is displaced along Z by fractal
// value noise. The returned mesh has passed connectivity validation.
func GenerateGrid(opts GridOptions) (*halfedge.Mesh, error) {
	if opts.Size < 2 {
		opts.Size = 2
	}
	// Render indices are 16-bit; 255 is the largest side whose square fits.
	if opts.Size > 255 {
		opts.Size = 255
	}
	if opts.Spacing <= 0 {
		opts.Spacing = 1
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 0.08
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Gain <= 0 {
		opts.Gain = 0.5
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := halfedge.NewMesh()
	id := func(x, y int) halfedge.VertexIndex { return halfedge.VertexIndex(y*opts.Size + x) }

	baseFreq := opts.Frequency
	for y := 0; y < opts.Size; y++ {
		for x := 0; x < opts.Size; x++ {
			var z float64
			if opts.NoiseHeight > 0 {
				h := fractalValueNoise2D(float64(x)*baseFreq, float64(y)*baseFreq, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
				if !isFinite(h) || h < 0 {
					h = 0
				}
				z = h * opts.NoiseHeight
			}
			m.AddVertex(halfedge.Vector3{
				X: float64(x) * opts.Spacing,
				Y: float64(y) * opts.Spacing,
				Z: z,
			})
		}
	}

	// Triangulate (Size-1) x (Size-1) quads.
	for y := 0; y < opts.Size-1; y++ {
		for x := 0; x < opts.Size-1; x++ {
			v00 := id(x, y)
			v10 := id(x+1, y)
			v01 := id(x, y+1)
			v11 := id(x+1, y+1)

			if _, err := m.AddTriangle(v00, v10, v11); err != nil {
				return nil, err
			}
			if _, err := m.AddTriangle(v00, v11, v01); err != nil {
				return nil, err
			}
		}
	}

	if err := m.ValidateConnectivity(); err != nil {
		return nil, err
	}
	return m, nil
}

// fractalValueNoise2D layers smooth value noise with configurable octaves,
// lacunarity, and gain. Output is in [0,1].
func fractalValueNoise2D(x, y float64, seed int64, octaves int, lacunarity, gain float64) float64 {
	var sum float64
	amplitude := 1.0
	maxAmp := 0.0
	freq := 1.0

	for i := 0; i < octaves; i++ {
		n := valueNoise2D(x*freq, y*freq, int32(seed)+int32(i))
		sum += n * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] using a hash-based lattice and cubic easing.
func valueNoise2D(x, y float64, seed int32) float64 {
	x0 := int32(math.Floor(x))
	y0 := int32(math.Floor(y))
	tx := x - float64(x0)
	ty := y - float64(y0)

	// Lattice values at cell corners.
	v00 := hash2D(x0, y0, seed)
	v10 := hash2D(x0+1, y0, seed)
	v01 := hash2D(x0, y0+1, seed)
	v11 := hash2D(x0+1, y0+1, seed)

	sx := smoothStep(tx)
	sy := smoothStep(ty)

	ix0 := lerp(v00, v10, sx)
	ix1 := lerp(v01, v11, sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps integer lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash2D(x, y, seed int32) float64 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float64(n&0x7fffffff) * invMaxInt
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothStep is Perlin-style cubic easing: 3t^2 - 2t^3.
func smoothStep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
