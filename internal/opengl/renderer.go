package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"tabletop-scene/core"
	"tabletop-scene/math"
	"tabletop-scene/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Renderer is the OpenGL rendering backend. It owns one Phong shader
// program and caches every uniform location at startup.
type Renderer struct {
	program uint32

	// Transform uniforms
	modelLoc      int32
	viewLoc       int32
	projectionLoc int32

	// Shading mode uniforms
	viewPosLoc      int32
	objectColorLoc  int32
	objectTexLoc    int32
	bUseTextureLoc  int32
	bUseLightingLoc int32
	uvScaleLoc      int32

	// Material uniforms
	matAmbientColorLoc    int32
	matAmbientStrengthLoc int32
	matDiffuseColorLoc    int32
	matSpecularColorLoc   int32
	matShininessLoc       int32

	// Directional light
	dirLightDirLoc      int32
	dirLightAmbientLoc  int32
	dirLightDiffuseLoc  int32
	dirLightSpecularLoc int32

	// Point lights
	fillLoc pointLightLocs
	rimLoc  pointLightLocs

	// Spot light
	spotPosLoc       int32
	spotDirLoc       int32
	spotCutOffLoc    int32
	spotOuterLoc     int32
	spotAmbientLoc   int32
	spotDiffuseLoc   int32
	spotSpecularLoc  int32
	spotConstantLoc  int32
	spotLinearLoc    int32
	spotQuadraticLoc int32

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

type pointLightLocs struct {
	pos       int32
	ambient   int32
	diffuse   int32
	specular  int32
	constant  int32
	linear    int32
	quadratic int32
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// vertex shader: world-space position and normal to fragment, UV tiling.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform vec2 UVscale;

out vec3 fragNormal;
out vec2 fragUV;
out vec3 fragWorldPos;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    gl_Position  = projection * view * worldPos;
    fragWorldPos = worldPos.xyz;
    fragNormal   = mat3(model) * inNormal;
    fragUV       = inUV * UVscale;
}
` + "\x00"

// fragment shader: Phong with one directional light, two point lights, and
// a camera-tracking spot light. With bUseLighting=false the base color
// passes through untouched.
const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;
in vec3 fragWorldPos;

out vec4 outColor;

struct Material {
    vec3  ambientColor;
    float ambientStrength;
    vec3  diffuseColor;
    vec3  specularColor;
    float shininess;
};

struct DirLight {
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

struct PointLight {
    vec3 position;
    float constant;
    float linear;
    float quadratic;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

struct SpotLight {
    vec3 position;
    vec3 direction;
    float cutOff;
    float outerCutOff;
    float constant;
    float linear;
    float quadratic;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

uniform vec3      viewPos;
uniform vec4      objectColor;
uniform sampler2D objectTexture;
uniform bool      bUseTexture;
uniform bool      bUseLighting;
uniform Material  material;
uniform DirLight  dirLight;
uniform PointLight pointLight;
uniform PointLight pointLight2;
uniform SpotLight spotLight;

vec3 calcDirLight(DirLight light, vec3 N, vec3 V, vec3 base) {
    vec3 L = normalize(-light.direction);
    float diff = max(dot(N, L), 0.0);
    vec3 R = reflect(-L, N);
    float spec = pow(max(dot(V, R), 0.0), material.shininess);
    vec3 ambient  = light.ambient * material.ambientColor * material.ambientStrength;
    vec3 diffuse  = light.diffuse * diff * material.diffuseColor * base;
    vec3 specular = light.specular * spec * material.specularColor;
    return ambient + diffuse + specular;
}

vec3 calcPointLight(PointLight light, vec3 N, vec3 V, vec3 base) {
    vec3 toLight = light.position - fragWorldPos;
    float dist = length(toLight);
    vec3 L = normalize(toLight);
    float diff = max(dot(N, L), 0.0);
    vec3 R = reflect(-L, N);
    float spec = pow(max(dot(V, R), 0.0), material.shininess);
    float atten = 1.0 / (light.constant + light.linear * dist + light.quadratic * dist * dist);
    vec3 ambient  = light.ambient * material.ambientColor * material.ambientStrength;
    vec3 diffuse  = light.diffuse * diff * material.diffuseColor * base;
    vec3 specular = light.specular * spec * material.specularColor;
    return (ambient + diffuse + specular) * atten;
}

vec3 calcSpotLight(SpotLight light, vec3 N, vec3 V, vec3 base) {
    vec3 toLight = light.position - fragWorldPos;
    float dist = length(toLight);
    vec3 L = normalize(toLight);
    float diff = max(dot(N, L), 0.0);
    vec3 R = reflect(-L, N);
    float spec = pow(max(dot(V, R), 0.0), material.shininess);
    float atten = 1.0 / (light.constant + light.linear * dist + light.quadratic * dist * dist);
    float theta = dot(L, normalize(-light.direction));
    float eps = light.cutOff - light.outerCutOff;
    float cone = clamp((theta - light.outerCutOff) / eps, 0.0, 1.0);
    vec3 ambient  = light.ambient * material.ambientColor * material.ambientStrength;
    vec3 diffuse  = light.diffuse * diff * material.diffuseColor * base;
    vec3 specular = light.specular * spec * material.specularColor;
    return (ambient + diffuse + specular) * atten * cone;
}

void main() {
    vec4 baseColor = bUseTexture ? texture(objectTexture, fragUV) : objectColor;

    if (!bUseLighting) {
        outColor = baseColor;
        return;
    }

    vec3 N = normalize(fragNormal);
    vec3 V = normalize(viewPos - fragWorldPos);

    vec3 color = calcDirLight(dirLight, N, V, baseColor.rgb);
    color += calcPointLight(pointLight, N, V, baseColor.rgb);
    color += calcPointLight(pointLight2, N, V, baseColor.rgb);
    color += calcSpotLight(spotLight, N, V, baseColor.rgb);

    outColor = vec4(color, baseColor.a);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("scene shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	r := &Renderer{
		program: prog,

		modelLoc:      uniformLoc(prog, "model"),
		viewLoc:       uniformLoc(prog, "view"),
		projectionLoc: uniformLoc(prog, "projection"),

		viewPosLoc:      uniformLoc(prog, "viewPos"),
		objectColorLoc:  uniformLoc(prog, "objectColor"),
		objectTexLoc:    uniformLoc(prog, "objectTexture"),
		bUseTextureLoc:  uniformLoc(prog, "bUseTexture"),
		bUseLightingLoc: uniformLoc(prog, "bUseLighting"),
		uvScaleLoc:      uniformLoc(prog, "UVscale"),

		matAmbientColorLoc:    uniformLoc(prog, "material.ambientColor"),
		matAmbientStrengthLoc: uniformLoc(prog, "material.ambientStrength"),
		matDiffuseColorLoc:    uniformLoc(prog, "material.diffuseColor"),
		matSpecularColorLoc:   uniformLoc(prog, "material.specularColor"),
		matShininessLoc:       uniformLoc(prog, "material.shininess"),

		dirLightDirLoc:      uniformLoc(prog, "dirLight.direction"),
		dirLightAmbientLoc:  uniformLoc(prog, "dirLight.ambient"),
		dirLightDiffuseLoc:  uniformLoc(prog, "dirLight.diffuse"),
		dirLightSpecularLoc: uniformLoc(prog, "dirLight.specular"),

		fillLoc: resolvePointLightLocs(prog, "pointLight"),
		rimLoc:  resolvePointLightLocs(prog, "pointLight2"),

		spotPosLoc:       uniformLoc(prog, "spotLight.position"),
		spotDirLoc:       uniformLoc(prog, "spotLight.direction"),
		spotCutOffLoc:    uniformLoc(prog, "spotLight.cutOff"),
		spotOuterLoc:     uniformLoc(prog, "spotLight.outerCutOff"),
		spotAmbientLoc:   uniformLoc(prog, "spotLight.ambient"),
		spotDiffuseLoc:   uniformLoc(prog, "spotLight.diffuse"),
		spotSpecularLoc:  uniformLoc(prog, "spotLight.specular"),
		spotConstantLoc:  uniformLoc(prog, "spotLight.constant"),
		spotLinearLoc:    uniformLoc(prog, "spotLight.linear"),
		spotQuadraticLoc: uniformLoc(prog, "spotLight.quadratic"),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}

	gl.UseProgram(prog)
	gl.Uniform1i(r.objectTexLoc, 0)
	gl.Uniform2f(r.uvScaleLoc, 1, 1)

	return r, nil
}

func uniformLoc(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func resolvePointLightLocs(prog uint32, name string) pointLightLocs {
	return pointLightLocs{
		pos:       uniformLoc(prog, name+".position"),
		ambient:   uniformLoc(prog, name+".ambient"),
		diffuse:   uniformLoc(prog, name+".diffuse"),
		specular:  uniformLoc(prog, name+".specular"),
		constant:  uniformLoc(prog, name+".constant"),
		linear:    uniformLoc(prog, name+".linear"),
		quadratic: uniformLoc(prog, name+".quadratic"),
	}
}

// ── Frame state ───────────────────────────────────────────────────────────────

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear wipes the framebuffer and activates the scene program.
func (r *Renderer) Clear(color core.Color) {
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

func (r *Renderer) SetModel(m math.Mat4) {
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&m[0][0])))
}

func (r *Renderer) SetView(m math.Mat4) {
	gl.UniformMatrix4fv(r.viewLoc, 1, false, (*float32)(unsafe.Pointer(&m[0][0])))
}

func (r *Renderer) SetProjection(m math.Mat4) {
	gl.UniformMatrix4fv(r.projectionLoc, 1, false, (*float32)(unsafe.Pointer(&m[0][0])))
}

func (r *Renderer) SetViewPos(p math.Vec3) {
	gl.Uniform3f(r.viewPosLoc, p.X, p.Y, p.Z)
}

// SetColor switches to flat-color shading for subsequent draws.
func (r *Renderer) SetColor(c core.Color) {
	gl.Uniform1i(r.bUseTextureLoc, 0)
	gl.Uniform4f(r.objectColorLoc, c.R, c.G, c.B, c.A)
}

// SetTextureSlot switches to textured shading, sampling the given unit.
func (r *Renderer) SetTextureSlot(slot int) {
	gl.Uniform1i(r.bUseTextureLoc, 1)
	gl.Uniform1i(r.objectTexLoc, int32(slot))
}

func (r *Renderer) SetUVScale(u, v float32) {
	gl.Uniform2f(r.uvScaleLoc, u, v)
}

func (r *Renderer) SetUseLighting(enabled bool) {
	gl.Uniform1i(r.bUseLightingLoc, boolToInt32(enabled))
}

func (r *Renderer) SetMaterial(mat scene.Material) {
	gl.Uniform3f(r.matAmbientColorLoc, mat.AmbientColor.X, mat.AmbientColor.Y, mat.AmbientColor.Z)
	gl.Uniform1f(r.matAmbientStrengthLoc, mat.AmbientStrength)
	gl.Uniform3f(r.matDiffuseColorLoc, mat.DiffuseColor.X, mat.DiffuseColor.Y, mat.DiffuseColor.Z)
	gl.Uniform3f(r.matSpecularColorLoc, mat.SpecularColor.X, mat.SpecularColor.Y, mat.SpecularColor.Z)
	gl.Uniform1f(r.matShininessLoc, mat.Shininess)
}

// SetLights pushes the whole rig. Call once per frame, after the rig has
// been pointed at the camera.
func (r *Renderer) SetLights(rig scene.LightRig) {
	d := rig.Directional
	gl.Uniform3f(r.dirLightDirLoc, d.Direction.X, d.Direction.Y, d.Direction.Z)
	gl.Uniform3f(r.dirLightAmbientLoc, d.Ambient.X, d.Ambient.Y, d.Ambient.Z)
	gl.Uniform3f(r.dirLightDiffuseLoc, d.Diffuse.X, d.Diffuse.Y, d.Diffuse.Z)
	gl.Uniform3f(r.dirLightSpecularLoc, d.Specular.X, d.Specular.Y, d.Specular.Z)

	r.setPointLight(r.fillLoc, rig.Fill)
	r.setPointLight(r.rimLoc, rig.Rim)

	s := rig.Torch
	gl.Uniform3f(r.spotPosLoc, s.Position.X, s.Position.Y, s.Position.Z)
	gl.Uniform3f(r.spotDirLoc, s.Direction.X, s.Direction.Y, s.Direction.Z)
	gl.Uniform1f(r.spotCutOffLoc, s.CutOff)
	gl.Uniform1f(r.spotOuterLoc, s.OuterCutOff)
	gl.Uniform3f(r.spotAmbientLoc, s.Ambient.X, s.Ambient.Y, s.Ambient.Z)
	gl.Uniform3f(r.spotDiffuseLoc, s.Diffuse.X, s.Diffuse.Y, s.Diffuse.Z)
	gl.Uniform3f(r.spotSpecularLoc, s.Specular.X, s.Specular.Y, s.Specular.Z)
	gl.Uniform1f(r.spotConstantLoc, s.Constant)
	gl.Uniform1f(r.spotLinearLoc, s.Linear)
	gl.Uniform1f(r.spotQuadraticLoc, s.Quadratic)
}

func (r *Renderer) setPointLight(loc pointLightLocs, l scene.PointLight) {
	gl.Uniform3f(loc.pos, l.Position.X, l.Position.Y, l.Position.Z)
	gl.Uniform3f(loc.ambient, l.Ambient.X, l.Ambient.Y, l.Ambient.Z)
	gl.Uniform3f(loc.diffuse, l.Diffuse.X, l.Diffuse.Y, l.Diffuse.Z)
	gl.Uniform3f(loc.specular, l.Specular.X, l.Specular.Y, l.Specular.Z)
	gl.Uniform1f(loc.constant, l.Constant)
	gl.Uniform1f(loc.linear, l.Linear)
	gl.Uniform1f(loc.quadratic, l.Quadratic)
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws a mesh with whatever transform, material, and shading
// state has been pushed. Uploads the mesh on first use.
func (r *Renderer) DrawMesh(mesh *scene.Mesh) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

// ── Resource management ───────────────────────────────────────────────────────

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		if gpu.HasIndices {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	gl.DeleteProgram(r.program)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
