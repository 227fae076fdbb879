package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func rgbaImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func TestTextureRegistryLoad(t *testing.T) {
	path := writePNG(t, rgbaImage())

	reg := NewTextureRegistry()
	require.NoError(t, reg.Load(path, "wood"))

	assert.Equal(t, 1, reg.Len())
	tex := reg.Textures()[0]
	assert.Equal(t, "wood", tex.Tag)
	assert.Equal(t, 4, tex.Width)
	assert.Equal(t, 4, tex.Height)
	assert.Len(t, tex.Pixels, 4*4*4)
}

func TestTextureRegistryRejectsGrayscale(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	path := writePNG(t, gray)

	reg := NewTextureRegistry()
	err := reg.Load(path, "gray")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel count")
	assert.Equal(t, 0, reg.Len(), "rejected loads must leave no entry behind")
}

func TestColorChannelsPalette(t *testing.T) {
	opaque := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.RGBA{R: 255, A: 255},
		color.RGBA{G: 255, A: 255},
	})
	n, err := colorChannels(opaque)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A translucent palette entry (tRNS in PNG terms) makes the image
	// 4-channel even though the samples are indices.
	translucent := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.RGBA{R: 255, A: 255},
		color.RGBA{G: 255, A: 128},
	})
	n, err = colorChannels(translucent)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestTextureRegistryLoadsPalettedWithAlpha(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.RGBA{R: 200, G: 100, B: 50, A: 255},
		color.RGBA{A: 0},
	})
	img.SetColorIndex(1, 1, 1)
	path := writePNG(t, img)

	reg := NewTextureRegistry()
	require.NoError(t, reg.Load(path, "decal"))

	tex := reg.Textures()[0]
	require.Len(t, tex.Pixels, 2*2*4)
	// The indexed transparent pixel survives the RGBA8 conversion.
	assert.Equal(t, uint8(0), tex.Pixels[(1*2+1)*4+3])
}

func TestTextureRegistryMissingFile(t *testing.T) {
	reg := NewTextureRegistry()
	err := reg.Load(filepath.Join(t.TempDir(), "nope.png"), "missing")
	require.Error(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestTextureRegistryDuplicateTagFirstMatch(t *testing.T) {
	path := writePNG(t, rgbaImage())

	reg := NewTextureRegistry()
	require.NoError(t, reg.Load(path, "wood"))
	require.NoError(t, reg.Load(path, "wood"))

	slot, ok := reg.FindSlot("wood")
	require.True(t, ok)
	assert.Equal(t, 0, slot, "duplicate tags resolve to the earliest slot")
}

func TestTextureRegistryCapacity(t *testing.T) {
	path := writePNG(t, rgbaImage())

	reg := NewTextureRegistry()
	for i := 0; i < MaxBoundTextures; i++ {
		require.NoError(t, reg.Load(path, fmt.Sprintf("tex%d", i)))
	}

	err := reg.Load(path, "one-too-many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry full")
	assert.Equal(t, MaxBoundTextures, reg.Len())
}

func TestTextureRegistryFindMiss(t *testing.T) {
	reg := NewTextureRegistry()

	_, ok := reg.FindSlot("nothing")
	assert.False(t, ok)

	id, ok := reg.FindID("nothing")
	assert.False(t, ok)
	assert.Zero(t, id)
}
