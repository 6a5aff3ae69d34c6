package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Registry owns the GPU resources the viewer draws with: the lit material for
// the editable surface and the mesh+material pair for edge highlight
// cylinders. Resources are created lazily on first use so allocation happens
// after the window/OpenGL context exists.
type Registry struct {
	style HighlightStyle

	surface      rl.Material
	surfaceOK    bool
	cylinder     rl.Mesh
	highlightMtl rl.Material
	highlightOK  bool

	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no GPU resources allocated yet.
func NewRegistry(style HighlightStyle) *Registry {
	return &Registry{
		style:    style,
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call
// once per frame before drawing so the surface material gets correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// surfaceColor is the albedo tint for the editable surface.
var surfaceColor = rl.NewColor(230, 230, 242, 255)

// ensureSurface creates the surface material if not yet cached. Uses a simple
// lighting shader (directional light + ambient + specular) so the mesh has
// visible shading.
func (r *Registry) ensureSurface() {
	if r.surfaceOK {
		return
	}
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = surfaceColor
	}
	shader := loadLitShader()
	if rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.surface = mtl
	r.surfaceOK = true
}

// ensureHighlight creates the unit highlight cylinder and its material if not
// yet cached. The material keeps the default shader so highlights render
// full-bright regardless of scene lighting.
func (r *Registry) ensureHighlight() {
	if r.highlightOK {
		return
	}
	r.cylinder = rl.GenMeshCylinder(r.style.Radius, 1, r.style.Slices)
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = r.style.RGBA()
	}
	r.highlightMtl = mtl
	r.highlightOK = true
}

// SurfaceMaterial returns the lit material for mesh surfaces with this
// frame's lighting uniforms applied. SetView must already have run this frame.
func (r *Registry) SurfaceMaterial() rl.Material {
	r.ensureSurface()
	r.setLitShaderUniforms(r.surface.Shader)
	return r.surface
}

// downDot is the up·direction threshold below which an edge counts as
// pointing straight down.
const downDot = -0.9999

// highlightTransform maps the unit highlight cylinder (base at Y=0, top at
// Y=1) onto the from→to segment: recenter, stretch to the edge length, rotate
// canonical up onto the edge direction, translate to the midpoint. Edges
// shorter than minLength keep the identity rotation.
func highlightTransform(from, to rl.Vector3, minLength float32) rl.Matrix {
	axis := rl.Vector3Subtract(to, from)
	length := rl.Vector3Length(axis)
	mid := rl.Vector3Scale(rl.Vector3Add(from, to), 0.5)

	rotM := rl.MatrixIdentity()
	if length > minLength {
		dir := rl.Vector3Scale(axis, 1/length)
		if dir.Y < downDot {
			// The arc quaternion degenerates for opposite vectors.
			rotM = rl.MatrixRotateX(math32.Pi)
		} else {
			q := rl.QuaternionFromVector3ToVector3(rl.NewVector3(0, 1, 0), dir)
			rotM = rl.QuaternionToMatrix(q)
		}
	}

	offsetM := rl.MatrixTranslate(0, -0.5, 0)
	scaleM := rl.MatrixScale(1, length, 1)
	transM := rl.MatrixTranslate(mid.X, mid.Y, mid.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(rl.MatrixMultiply(offsetM, scaleM), rotM), transM)
}

// DrawHighlight draws one edge highlight cylinder between two world-space
// points. Must be called between BeginMode3D and EndMode3D.
func (r *Registry) DrawHighlight(from, to rl.Vector3) {
	r.ensureHighlight()
	rl.DrawMesh(r.cylinder, r.highlightMtl, highlightTransform(from, to, r.style.MinLength))
}

// loadLitShader returns a shader that does simple directional light + ambient
// + specular. Same vertex attributes as raylib meshes: vertexPosition,
// vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = abs(dot(N, L));
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// defaultAmbient is the ambient term (bright enough that grazing faces stay
// readable while editing).
var defaultAmbient = [4]float32{0.35, 0.35, 0.38, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0 to 1).
const defaultLightIntensity = float32(0.75)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0 to 1).
const defaultSpecularStrength = float32(0.35)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity,
// and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}
