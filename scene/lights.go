package scene

import (
	"github.com/chewxy/math32"

	"tabletop-scene/math"
)

// DirectionalLight is an infinitely distant light shining along Direction.
type DirectionalLight struct {
	Direction math.Vec3
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
}

// PointLight radiates from Position with distance attenuation
// 1 / (Constant + Linear*d + Quadratic*d²).
type PointLight struct {
	Position math.Vec3
	Ambient  math.Vec3
	Diffuse  math.Vec3
	Specular math.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32
}

// SpotLight is a cone light. CutOff and OuterCutOff are cosines of the
// inner and outer half-angles; the shader fades between them. Position
// and Direction are refreshed from the camera every frame.
type SpotLight struct {
	Position    math.Vec3
	Direction   math.Vec3
	CutOff      float32
	OuterCutOff float32

	Ambient  math.Vec3
	Diffuse  math.Vec3
	Specular math.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32
}

// LightRig is the scene's fixed four-light setup: a key directional
// light, a front fill point light, a warm rim point light, and a
// camera-tracking torch spotlight.
type LightRig struct {
	Directional DirectionalLight
	Fill        PointLight
	Rim         PointLight
	Torch       SpotLight
}

func DefaultLightRig() LightRig {
	return LightRig{
		Directional: DirectionalLight{
			Direction: math.NewVec3(-0.2, -1.0, -0.1),
			Ambient:   math.Splat(0.4),
			Diffuse:   math.Splat(0.7),
			Specular:  math.Splat(0.7),
		},
		Fill: PointLight{
			Position:  math.NewVec3(0, 4, 6),
			Ambient:   math.Splat(0.25),
			Diffuse:   math.Splat(0.75),
			Specular:  math.Splat(1.0),
			Constant:  1.0,
			Linear:    0.09,
			Quadratic: 0.032,
		},
		Rim: PointLight{
			Position:  math.NewVec3(-4, 3, -2),
			Ambient:   math.NewVec3(0.08, 0.04, 0.02),
			Diffuse:   math.NewVec3(0.3, 0.15, 0.08),
			Specular:  math.NewVec3(0.4, 0.2, 0.1),
			Constant:  1.0,
			Linear:    0.14,
			Quadratic: 0.07,
		},
		Torch: SpotLight{
			CutOff:      math32.Cos(math.Radians(10)),
			OuterCutOff: math32.Cos(math.Radians(15)),
			Ambient:     math.Splat(0.15),
			Diffuse:     math.Splat(0.8),
			Specular:    math.Splat(1.0),
			Constant:    1.0,
			Linear:      0.09,
			Quadratic:   0.032,
		},
	}
}

// Track points the torch at whatever the camera sees.
func (r *LightRig) Track(position, direction math.Vec3) {
	r.Torch.Position = position
	r.Torch.Direction = direction
}
