package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabletop-scene/math"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()

	assert.Equal(t, math.NewVec3(0, 2, 8), cam.Position)
	assert.Equal(t, math.NewVec3(0, 0, -1), cam.Front)
	assert.Equal(t, float32(-90), cam.Yaw)
	assert.Equal(t, float32(0), cam.Pitch)
	assert.Equal(t, ProjectionPerspective, cam.Projection)
}

func TestCameraFirstCursorSampleSeedsOnly(t *testing.T) {
	cam := NewCamera()
	front := cam.Front

	cam.ApplyCursor(400, 300)

	assert.Equal(t, front, cam.Front, "first sample must not rotate the camera")
	assert.Equal(t, float32(-90), cam.Yaw)
}

func TestCameraCursorRotation(t *testing.T) {
	cam := NewCamera()
	cam.ApplyCursor(400, 300)
	cam.ApplyCursor(500, 300) // 100px right at sensitivity 0.1 → yaw +10

	assert.InDelta(t, -80, cam.Yaw, 0.001)
	assert.InDelta(t, 0, cam.Pitch, 0.001)
}

func TestCameraPitchClamp(t *testing.T) {
	cam := NewCamera()
	cam.ApplyCursor(0, 0)
	cam.ApplyCursor(0, -10000) // look straight up, far past the limit

	assert.InDelta(t, 89, cam.Pitch, 0.001)

	cam.ApplyCursor(0, 20000)
	assert.InDelta(t, -89, cam.Pitch, 0.001)
}

func TestCameraMovementScalesWithDt(t *testing.T) {
	camA := NewCamera()
	camB := NewCamera()
	input := InputState{Forward: true}

	camA.ApplyInput(input, 0.1)
	camB.ApplyInput(input, 0.2)

	dispA := camA.Position.Sub(math.NewVec3(0, 2, 8)).Length()
	dispB := camB.Position.Sub(math.NewVec3(0, 2, 8)).Length()

	assert.InDelta(t, 0.5, dispA, 0.0001) // speed 5 * 0.1s
	assert.InDelta(t, dispA*2, dispB, 0.0001)
}

func TestCameraZeroDtNoMovement(t *testing.T) {
	cam := NewCamera()
	cam.ApplyInput(InputState{Forward: true, Left: true, Up: true}, 0)

	assert.Equal(t, math.NewVec3(0, 2, 8), cam.Position)
}

func TestCameraProjectionLastWriteWins(t *testing.T) {
	cam := NewCamera()

	// Both keys held the same frame: orthographic is sampled second.
	cam.ApplyInput(InputState{Perspective: true, Orthographic: true}, 0.016)
	assert.Equal(t, ProjectionOrthographic, cam.Projection)

	cam.ApplyInput(InputState{Perspective: true}, 0.016)
	assert.Equal(t, ProjectionPerspective, cam.Projection)
}

func TestCameraAdvance(t *testing.T) {
	cam := NewCamera()
	cam.Advance(2)

	assert.Equal(t, math.NewVec3(0, 2, 6), cam.Position, "default front is -Z")
}

func TestCameraViewMatrixAtOrigin(t *testing.T) {
	cam := NewCamera()
	view := cam.ViewMatrix()

	// The camera's own position must map to the view-space origin.
	p := view.MulVec(cam.Position.ToVec4(1))
	assert.InDelta(t, 0, float64(p.X), 0.001)
	assert.InDelta(t, 0, float64(p.Y), 0.001)
	assert.InDelta(t, 0, float64(p.Z), 0.001)
}
