package scene

import (
	"github.com/chewxy/math32"

	"tabletop-scene/math"
)

// ProjectionMode selects how the camera projects the scene.
type ProjectionMode int

const (
	ProjectionPerspective ProjectionMode = iota
	ProjectionOrthographic
)

const (
	defaultYaw         = -90.0
	defaultPitch       = 0.0
	defaultMoveSpeed   = 5.0
	defaultSensitivity = 0.1
	pitchLimit         = 89.0

	perspectiveFOVDeg = 45.0
	orthoHalfExtent   = 10.0
	nearPlane         = 0.1
	farPlane          = 100.0
)

// InputState is one frame's sampled key state. The caller samples the
// window once per frame and hands the camera a plain value, which keeps
// the movement logic testable without a live window.
type InputState struct {
	Forward bool // W
	Back    bool // S
	Left    bool // A
	Right   bool // D
	Up      bool // Q
	Down    bool // E

	Perspective  bool // P
	Orthographic bool // O
}

// Camera is a free-fly FPS-style camera driven by yaw/pitch angles.
type Camera struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3

	Yaw   float32 // degrees, -90 looks down -Z
	Pitch float32 // degrees, clamped to ±89

	MoveSpeed   float32 // world units per second
	Sensitivity float32 // degrees per cursor pixel

	Projection ProjectionMode

	firstCursor bool
	lastX       float64
	lastY       float64
}

func NewCamera() *Camera {
	return &Camera{
		Position:    math.NewVec3(0, 2, 8),
		Front:       math.NewVec3(0, 0, -1),
		Up:          math.Vec3Up,
		Yaw:         defaultYaw,
		Pitch:       defaultPitch,
		MoveSpeed:   defaultMoveSpeed,
		Sensitivity: defaultSensitivity,
		Projection:  ProjectionPerspective,
		firstCursor: true,
	}
}

// ApplyCursor turns a cursor position sample into yaw/pitch rotation.
// The first sample only seeds the reference position, so the camera does
// not jump when the cursor first enters the window.
func (c *Camera) ApplyCursor(x, y float64) {
	if c.firstCursor {
		c.lastX = x
		c.lastY = y
		c.firstCursor = false
		return
	}

	dx := float32(x-c.lastX) * c.Sensitivity
	dy := float32(c.lastY-y) * c.Sensitivity // inverted: moving up looks up
	c.lastX = x
	c.lastY = y

	c.Yaw += dx
	c.Pitch += dy

	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}

	c.updateFront()
}

func (c *Camera) updateFront() {
	yawRad := math.Radians(c.Yaw)
	pitchRad := math.Radians(c.Pitch)

	c.Front = math.Vec3{
		X: math32.Cos(yawRad) * math32.Cos(pitchRad),
		Y: math32.Sin(pitchRad),
		Z: math32.Sin(yawRad) * math32.Cos(pitchRad),
	}.Normalize()
}

// ApplyInput moves the camera for one frame. Displacement scales with dt,
// so frame rate does not change movement speed. Projection keys are
// last-write-wins with O sampled after P.
func (c *Camera) ApplyInput(input InputState, dt float32) {
	velocity := c.MoveSpeed * dt
	right := c.Front.Cross(c.Up).Normalize()

	if input.Forward {
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	}
	if input.Back {
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	}
	if input.Left {
		c.Position = c.Position.Sub(right.Mul(velocity))
	}
	if input.Right {
		c.Position = c.Position.Add(right.Mul(velocity))
	}
	if input.Up {
		c.Position = c.Position.Add(c.Up.Mul(velocity))
	}
	if input.Down {
		c.Position = c.Position.Sub(c.Up.Mul(velocity))
	}

	if input.Perspective {
		c.Projection = ProjectionPerspective
	}
	if input.Orthographic {
		c.Projection = ProjectionOrthographic
	}
}

// Advance moves the camera along its front vector; wired to the scroll
// wheel by the renderer.
func (c *Camera) Advance(amount float32) {
	c.Position = c.Position.Add(c.Front.Mul(amount))
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if c.Projection == ProjectionOrthographic {
		return math.Mat4Orthographic(-orthoHalfExtent, orthoHalfExtent,
			-orthoHalfExtent, orthoHalfExtent, nearPlane, farPlane)
	}
	return math.Mat4Perspective(math.Radians(perspectiveFOVDeg), aspect, nearPlane, farPlane)
}
