package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabletop-scene/math"
)

func TestDefaultLightRig(t *testing.T) {
	rig := DefaultLightRig()

	assert.Equal(t, math.NewVec3(-0.2, -1.0, -0.1), rig.Directional.Direction)
	assert.Equal(t, math.Splat(0.4), rig.Directional.Ambient)
	assert.Equal(t, math.Splat(0.7), rig.Directional.Diffuse)

	assert.Equal(t, math.NewVec3(0, 4, 6), rig.Fill.Position)
	assert.Equal(t, float32(0.09), rig.Fill.Linear)
	assert.Equal(t, float32(0.032), rig.Fill.Quadratic)

	assert.Equal(t, math.NewVec3(-4, 3, -2), rig.Rim.Position)
	assert.Equal(t, math.NewVec3(0.3, 0.15, 0.08), rig.Rim.Diffuse)
	assert.Equal(t, float32(0.14), rig.Rim.Linear)
	assert.Equal(t, float32(0.07), rig.Rim.Quadratic)
}

func TestSpotLightCutoffCosines(t *testing.T) {
	rig := DefaultLightRig()

	assert.InDelta(t, 0.9848077, float64(rig.Torch.CutOff), 0.0001)
	assert.InDelta(t, 0.9659258, float64(rig.Torch.OuterCutOff), 0.0001)
	assert.Greater(t, rig.Torch.CutOff, rig.Torch.OuterCutOff,
		"inner cone cosine must exceed the outer one")
}

func TestLightRigTrack(t *testing.T) {
	rig := DefaultLightRig()
	pos := math.NewVec3(1, 2, 3)
	dir := math.NewVec3(0, 0, -1)

	rig.Track(pos, dir)

	assert.Equal(t, pos, rig.Torch.Position)
	assert.Equal(t, dir, rig.Torch.Direction)
}
