package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop-scene/math"
)

func TestMaterialListFind(t *testing.T) {
	list := NewMaterialList()
	list.Add(Material{Tag: "wood", Shininess: 48, DiffuseColor: math.NewVec3(0.5, 0.3, 0.1)})
	list.Add(Material{Tag: "white", Shininess: 96})

	mat, ok := list.Find("wood")
	require.True(t, ok)
	assert.Equal(t, float32(48), mat.Shininess)
	assert.Equal(t, math.NewVec3(0.5, 0.3, 0.1), mat.DiffuseColor)
}

func TestMaterialListFindMiss(t *testing.T) {
	list := NewMaterialList()
	list.Add(Material{Tag: "wood"})

	_, ok := list.Find("glass")
	assert.False(t, ok, "a miss is normal, not an error")
}

func TestMaterialListDuplicateTagFirstMatch(t *testing.T) {
	list := NewMaterialList()
	list.Add(Material{Tag: "wood", Shininess: 48})
	list.Add(Material{Tag: "wood", Shininess: 8})

	mat, ok := list.Find("wood")
	require.True(t, ok)
	assert.Equal(t, float32(48), mat.Shininess, "first added wins")
	assert.Equal(t, 2, list.Len())
}
