package scene

import "tabletop-scene/math"

// Material describes Phong surface properties for a mesh.
type Material struct {
	Tag             string
	AmbientColor    math.Vec3
	AmbientStrength float32
	DiffuseColor    math.Vec3
	SpecularColor   math.Vec3
	Shininess       float32 // Phong exponent (1-256+)
}

// MaterialList holds named materials in insertion order.
// Duplicate tags are allowed; Find returns the first match.
type MaterialList struct {
	materials []Material
}

func NewMaterialList() *MaterialList {
	return &MaterialList{}
}

func (l *MaterialList) Add(m Material) {
	l.materials = append(l.materials, m)
}

// Find returns the first material with the given tag.
func (l *MaterialList) Find(tag string) (Material, bool) {
	for _, m := range l.materials {
		if m.Tag == tag {
			return m, true
		}
	}
	return Material{}, false
}

func (l *MaterialList) Len() int {
	return len(l.materials)
}
