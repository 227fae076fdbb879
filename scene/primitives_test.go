package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkMesh(t *testing.T, m *Mesh) {
	t.Helper()
	require.NotEmpty(t, m.Vertices)
	require.NotEmpty(t, m.Indices)
	assert.Zero(t, len(m.Indices)%3, "indices must form whole triangles")
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices), "index out of range")
	}
}

func TestCreatePlane(t *testing.T) {
	m := CreatePlane(2, 2, 1)
	checkMesh(t, m)

	// A 2x2 plane spans ±1 in X and Z and sits at Y=0.
	for _, v := range m.Vertices {
		assert.GreaterOrEqual(t, v.Position.X, float32(-1))
		assert.LessOrEqual(t, v.Position.X, float32(1))
		assert.Equal(t, float32(0), v.Position.Y)
		assert.Equal(t, float32(0), v.Normal.X)
		assert.Equal(t, float32(1), v.Normal.Y)
	}
}

func TestCreateCylinderCentered(t *testing.T) {
	m := CreateCylinder(1, 1, 32)
	checkMesh(t, m)

	minY, maxY := m.Vertices[0].Position.Y, m.Vertices[0].Position.Y
	for _, v := range m.Vertices {
		if v.Position.Y < minY {
			minY = v.Position.Y
		}
		if v.Position.Y > maxY {
			maxY = v.Position.Y
		}
	}
	assert.InDelta(t, -0.5, float64(minY), 0.0001)
	assert.InDelta(t, 0.5, float64(maxY), 0.0001)
}

func TestCreateCylinderMinSegments(t *testing.T) {
	m := CreateCylinder(1, 1, 1) // clamped up to 3
	checkMesh(t, m)
}

func TestCreateTorus(t *testing.T) {
	m := CreateTorus(1.0, 0.25, 32, 16)
	checkMesh(t, m)

	// Every vertex lies within the torus' bounding radius.
	for _, v := range m.Vertices {
		assert.LessOrEqual(t, v.Position.Length(), float32(1.26))
		assert.InDelta(t, 1.0, float64(v.Normal.Length()), 0.001)
	}
}
