package renderer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop-scene/core"
	"tabletop-scene/math"
	"tabletop-scene/scene"
)

// recordingBackend counts the state pushes and draws a frame issues.
// A draw is textured when a SetTextureSlot was the last texture-or-color
// push before it, matching the shader's bUseTexture toggle.
type recordingBackend struct {
	clears        int
	draws         int
	texturedDraws int
	lightPushes   int
	materialTags  []string
	colorPushes   int
	textured      bool
}

func (r *recordingBackend) SetViewport(width, height int) {}
func (r *recordingBackend) Clear(color core.Color)        { r.clears++ }
func (r *recordingBackend) SetModel(m math.Mat4)          {}
func (r *recordingBackend) SetView(m math.Mat4)           {}
func (r *recordingBackend) SetProjection(m math.Mat4)     {}
func (r *recordingBackend) SetViewPos(p math.Vec3)        {}
func (r *recordingBackend) SetUVScale(u, v float32)       {}
func (r *recordingBackend) SetUseLighting(enabled bool)   {}
func (r *recordingBackend) ReleaseMesh(mesh *scene.Mesh)  {}
func (r *recordingBackend) Destroy()                      {}

func (r *recordingBackend) SetColor(c core.Color) {
	r.colorPushes++
	r.textured = false
}

func (r *recordingBackend) SetTextureSlot(slot int) {
	r.textured = true
}

func (r *recordingBackend) SetMaterial(mat scene.Material) {
	r.materialTags = append(r.materialTags, mat.Tag)
}

func (r *recordingBackend) SetLights(rig scene.LightRig) {
	r.lightPushes++
}

func (r *recordingBackend) DrawMesh(mesh *scene.Mesh) {
	r.draws++
	if r.textured {
		r.texturedDraws++
	}
}

func newTestRenderer(t *testing.T) (*SceneRenderer, *recordingBackend) {
	t.Helper()
	rec := &recordingBackend{}
	sr := &SceneRenderer{
		gl:        rec,
		Textures:  scene.NewTextureRegistry(),
		Materials: scene.NewMaterialList(),
		Camera:    scene.NewCamera(),
		Lights:    scene.DefaultLightRig(),
	}
	sr.buildMeshes()
	sr.defineMaterials()
	return sr, rec
}

func loadWoodTexture(t *testing.T, reg *scene.TextureRegistry) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	path := filepath.Join(t.TempDir(), "wood.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	require.NoError(t, reg.Load(path, "wood"))
}

func TestRenderFrameDrawSequence(t *testing.T) {
	sr, rec := newTestRenderer(t)
	loadWoodTexture(t, sr.Textures)

	sr.renderFrame(0, 0, 0, scene.InputState{}, 4.0/3.0)

	// Floor, mug body, mug rim, mug handle, notebook, pen, laptop base,
	// laptop screen.
	assert.Equal(t, 1, rec.clears)
	assert.Equal(t, 8, rec.draws)
	assert.Equal(t, 1, rec.texturedDraws, "only the floor binds a texture")
	assert.Equal(t, 1, rec.lightPushes)
	assert.Equal(t, []string{"woodMaterial", "whiteMaterial"}, rec.materialTags)
	assert.Equal(t, 5, rec.colorPushes)
}

func TestRenderFrameMissingTextureFallsBack(t *testing.T) {
	sr, rec := newTestRenderer(t)

	sr.renderFrame(0, 0, 0, scene.InputState{}, 4.0/3.0)

	// The floor falls back to a flat color, so no draw is textured and
	// one extra color push covers it.
	assert.Equal(t, 8, rec.draws)
	assert.Equal(t, 0, rec.texturedDraws)
	assert.Equal(t, 6, rec.colorPushes)
}

func TestRenderFrameReissuesEveryFrame(t *testing.T) {
	sr, rec := newTestRenderer(t)
	loadWoodTexture(t, sr.Textures)

	sr.renderFrame(0, 0, 0, scene.InputState{}, 4.0/3.0)
	sr.renderFrame(0.016, 0, 0, scene.InputState{}, 4.0/3.0)

	// No retained state between frames: the full sequence repeats.
	assert.Equal(t, 16, rec.draws)
	assert.Equal(t, 2, rec.texturedDraws)
	assert.Equal(t, 2, rec.lightPushes)
}

func TestRenderFrameTorchTracksCamera(t *testing.T) {
	sr, _ := newTestRenderer(t)

	sr.renderFrame(0, 0, 0, scene.InputState{}, 4.0/3.0)

	assert.Equal(t, sr.Camera.Position, sr.Lights.Torch.Position)
	assert.Equal(t, sr.Camera.Front, sr.Lights.Torch.Direction)
}
