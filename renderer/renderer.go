package renderer

import (
	"fmt"

	"tabletop-scene/core"
	"tabletop-scene/internal/opengl"
	"tabletop-scene/math"
	"tabletop-scene/scene"
)

const woodTexturePath = "assets/wood.jpg"

// backend is the GL state surface the scene renderer drives.
// *opengl.Renderer is the production implementation.
type backend interface {
	SetViewport(width, height int)
	Clear(color core.Color)
	SetModel(m math.Mat4)
	SetView(m math.Mat4)
	SetProjection(m math.Mat4)
	SetViewPos(p math.Vec3)
	SetColor(c core.Color)
	SetTextureSlot(slot int)
	SetUVScale(u, v float32)
	SetMaterial(mat scene.Material)
	SetUseLighting(enabled bool)
	SetLights(rig scene.LightRig)
	DrawMesh(mesh *scene.Mesh)
	ReleaseMesh(mesh *scene.Mesh)
	Destroy()
}

// SceneRenderer drives the OpenGL backend through a fixed tabletop scene:
// a textured floor plane, a mug assembled from a cylinder and two tori, a
// notebook, a pen, and a two-part laptop.
type SceneRenderer struct {
	gl     backend
	window *core.Window

	Textures  *scene.TextureRegistry
	Materials *scene.MaterialList
	Camera    *scene.Camera
	Lights    scene.LightRig

	plane    *scene.Mesh
	cylinder *scene.Mesh
	torus    *scene.Mesh

	lastFrame    float64
	hasLastFrame bool
}

func NewSceneRenderer(window *core.Window) (*SceneRenderer, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	glRenderer.SetViewport(window.Width, window.Height)

	sr := &SceneRenderer{
		gl:        glRenderer,
		window:    window,
		Textures:  scene.NewTextureRegistry(),
		Materials: scene.NewMaterialList(),
		Camera:    scene.NewCamera(),
		Lights:    scene.DefaultLightRig(),
	}

	// The closure captures the camera so the GLFW callback never reaches
	// into the renderer's fields.
	cam := sr.Camera
	window.SetScrollCallback(func(xoff, yoff float64) {
		cam.Advance(float32(yoff))
	})

	fmt.Println("Scene renderer initialized (OpenGL)")
	return sr, nil
}

// Compose builds a model matrix applying scale first, then Z, Y, and X
// rotations (degrees), then translation.
func Compose(scale math.Vec3, rotXDeg, rotYDeg, rotZDeg float32, position math.Vec3) math.Mat4 {
	return math.Mat4Scale(scale).
		Mul(math.Mat4RotationZDeg(rotZDeg)).
		Mul(math.Mat4RotationYDeg(rotYDeg)).
		Mul(math.Mat4RotationXDeg(rotXDeg)).
		Mul(math.Mat4Translation(position))
}

// PrepareScene builds the meshes, loads and uploads textures, and defines
// the scene's materials. Call once before the render loop.
func (sr *SceneRenderer) PrepareScene() error {
	sr.buildMeshes()
	sr.defineMaterials()

	// A missing texture degrades to flat colors, so load failure is
	// reported but not fatal.
	if err := sr.Textures.Load(woodTexturePath, "wood"); err != nil {
		fmt.Printf("[ERROR] %v\n", err)
	}
	for _, tex := range sr.Textures.Textures() {
		if err := opengl.UploadTexture(tex); err != nil {
			fmt.Printf("[ERROR] upload %q: %v\n", tex.Tag, err)
		}
	}
	opengl.BindTextures(sr.Textures.Textures())
	sr.gl.SetUVScale(8, 4)

	return nil
}

func (sr *SceneRenderer) buildMeshes() {
	sr.plane = scene.CreatePlane(2, 2, 1)
	sr.cylinder = scene.CreateCylinder(1, 1, 32)
	sr.torus = scene.CreateTorus(1.0, 0.25, 32, 16)
}

func (sr *SceneRenderer) defineMaterials() {
	sr.Materials.Add(scene.Material{
		Tag:             "woodMaterial",
		AmbientColor:    math.NewVec3(0.15, 0.08, 0.03),
		AmbientStrength: 0.25,
		DiffuseColor:    math.NewVec3(0.5, 0.3, 0.1),
		SpecularColor:   math.Splat(0.5),
		Shininess:       48,
	})
	sr.Materials.Add(scene.Material{
		Tag:             "whiteMaterial",
		AmbientColor:    math.Splat(0.4),
		AmbientStrength: 0.5,
		DiffuseColor:    math.Splat(1.0),
		SpecularColor:   math.Splat(1.2),
		Shininess:       96,
	})
}

// RenderScene samples the window (time, cursor, keys) and draws one frame.
func (sr *SceneRenderer) RenderScene() {
	now := sr.window.GetTime()
	var dt float32
	if sr.hasLastFrame {
		dt = float32(now - sr.lastFrame)
	}
	sr.lastFrame = now
	sr.hasLastFrame = true

	cx, cy := sr.window.GetCursorPos()
	sr.renderFrame(dt, cx, cy, sr.sampleInput(), sr.window.AspectRatio())
}

// renderFrame updates the camera from the sampled input and issues the
// fixed draw sequence.
func (sr *SceneRenderer) renderFrame(dt float32, cursorX, cursorY float64, input scene.InputState, aspect float32) {
	sr.gl.Clear(core.NewColor(0.05, 0.05, 0.1, 1))

	sr.Camera.ApplyCursor(cursorX, cursorY)
	sr.Camera.ApplyInput(input, dt)

	sr.gl.SetView(sr.Camera.ViewMatrix())
	sr.gl.SetProjection(sr.Camera.ProjectionMatrix(aspect))
	sr.gl.SetViewPos(sr.Camera.Position)

	sr.Lights.Track(sr.Camera.Position, sr.Camera.Front)
	sr.gl.SetLights(sr.Lights)
	sr.gl.SetUseLighting(true)

	// Floor: the one textured surface.
	sr.applyMaterial("woodMaterial")
	if slot, ok := sr.Textures.FindSlot("wood"); ok {
		sr.gl.SetTextureSlot(slot)
		sr.gl.SetUVScale(4, 2)
	} else {
		sr.gl.SetColor(core.NewColor(0.4, 0.25, 0.1, 1))
	}
	sr.drawMesh(sr.plane, Compose(
		math.NewVec3(20, 1, 10), 0, 0, 0, math.Vec3Zero))

	// Everything else is flat-colored.
	sr.applyMaterial("whiteMaterial")

	// Mug body
	sr.gl.SetColor(core.ColorWhite)
	sr.drawMesh(sr.cylinder, Compose(
		math.NewVec3(0.75, 1.125, 0.75), 0, 0, 0, math.NewVec3(8, 0.5625, 0)))

	// Mug rim
	sr.drawMesh(sr.torus, Compose(
		math.NewVec3(0.375, 0.375, 0.0375), 90, 0, 0, math.NewVec3(8, 1.125, 0)))

	// Mug handle
	sr.drawMesh(sr.torus, Compose(
		math.NewVec3(0.3, 0.3, 0.075), 0, 0, 90, math.NewVec3(8.75, 0.85, 0)))

	// Notebook
	sr.gl.SetColor(core.NewColor(0.1, 0.1, 0.4, 1))
	sr.drawMesh(sr.plane, Compose(
		math.NewVec3(3, 0.2, 2), 0, 15, 0, math.NewVec3(-3, 0.2, 1)))

	// Pen
	sr.gl.SetColor(core.ColorRed)
	sr.drawMesh(sr.cylinder, Compose(
		math.NewVec3(0.1, 2, 0.1), 90, 15, 0, math.NewVec3(-2.8, 0.5, 1.7)))

	// Laptop base
	sr.gl.SetColor(core.NewColor(0.75, 0.75, 0.75, 1))
	sr.drawMesh(sr.plane, Compose(
		math.NewVec3(3, 0.05, 2), 0, -10, 0, math.NewVec3(3, 0.075, -2)))

	// Laptop screen
	sr.gl.SetColor(core.NewColor(0.2, 0.2, 0.2, 1))
	sr.drawMesh(sr.plane, Compose(
		math.NewVec3(3, 2, 1), -100, 0, 0, math.NewVec3(3, 1.15, -2.95)))
}

// drawMesh pushes the model transform and issues the draw.
func (sr *SceneRenderer) drawMesh(mesh *scene.Mesh, model math.Mat4) {
	sr.gl.SetModel(model)
	sr.gl.DrawMesh(mesh)
}

// applyMaterial pushes the named material if it exists. A miss keeps the
// previously set material, which matches the flat-color fallback draws.
func (sr *SceneRenderer) applyMaterial(tag string) {
	if mat, ok := sr.Materials.Find(tag); ok {
		sr.gl.SetMaterial(mat)
	}
}

func (sr *SceneRenderer) sampleInput() scene.InputState {
	w := sr.window
	return scene.InputState{
		Forward:      w.IsKeyPressed(core.KeyW),
		Back:         w.IsKeyPressed(core.KeyS),
		Left:         w.IsKeyPressed(core.KeyA),
		Right:        w.IsKeyPressed(core.KeyD),
		Up:           w.IsKeyPressed(core.KeyQ),
		Down:         w.IsKeyPressed(core.KeyE),
		Perspective:  w.IsKeyPressed(core.KeyP),
		Orthographic: w.IsKeyPressed(core.KeyO),
	}
}

// Resize updates the GL viewport; projection picks up the new aspect on
// the next frame.
func (sr *SceneRenderer) Resize(width, height int) {
	sr.gl.SetViewport(width, height)
}

// Destroy frees GPU textures, meshes, and the shader program.
func (sr *SceneRenderer) Destroy() {
	opengl.DeleteTextures(sr.Textures.Textures())
	for _, mesh := range []*scene.Mesh{sr.plane, sr.cylinder, sr.torus} {
		if mesh != nil {
			sr.gl.ReleaseMesh(mesh)
		}
	}
	sr.gl.Destroy()
}
