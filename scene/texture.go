package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// MaxBoundTextures is the number of texture units the renderer binds at
// once; the registry refuses to grow past it.
const MaxBoundTextures = 16

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Tag    string
	Path   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// TextureRegistry maps short tags to loaded textures. A texture's slot is
// its load order, which doubles as its texture unit when bound.
type TextureRegistry struct {
	textures []*Texture
}

func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{}
}

// Load reads an image file from disk, converts it to RGBA8, and appends it
// under the given tag. Only 3- and 4-channel source images are accepted.
// Loading fails once MaxBoundTextures entries are held.
func (r *TextureRegistry) Load(path, tag string) error {
	if len(r.textures) >= MaxBoundTextures {
		return fmt.Errorf("load texture %q: registry full (%d slots)", path, MaxBoundTextures)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode texture %q: %w", path, err)
	}

	channels, err := colorChannels(img)
	if err != nil {
		return fmt.Errorf("texture %q: %w", path, err)
	}
	if channels != 3 && channels != 4 {
		return fmt.Errorf("texture %q: unsupported channel count %d (want 3 or 4)", path, channels)
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	// Convert to RGBA8
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	r.textures = append(r.textures, &Texture{
		Tag:    tag,
		Path:   path,
		Width:  w,
		Height: h,
		Pixels: rgba.Pix,
	})
	return nil
}

// colorChannels reports the channel count of the decoded image's native
// color model.
func colorChannels(img image.Image) (int, error) {
	switch img := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1, nil
	case *image.YCbCr:
		return 3, nil
	case *image.Paletted:
		// A palette with a translucent entry (PNG tRNS) carries alpha.
		for _, c := range img.Palette {
			if _, _, _, a := c.RGBA(); a < 0xffff {
				return 4, nil
			}
		}
		return 3, nil
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return 4, nil
	case *image.CMYK:
		return 0, fmt.Errorf("CMYK images are not supported")
	default:
		return 0, fmt.Errorf("unrecognized image format %T", img)
	}
}

// FindSlot returns the slot index of the first texture with the given tag.
// Slots are assigned in load order, so duplicates resolve to the earliest.
func (r *TextureRegistry) FindSlot(tag string) (int, bool) {
	for i, tex := range r.textures {
		if tex.Tag == tag {
			return i, true
		}
	}
	return -1, false
}

// FindID returns the OpenGL handle of the first texture with the given tag.
func (r *TextureRegistry) FindID(tag string) (uint32, bool) {
	for _, tex := range r.textures {
		if tex.Tag == tag {
			return tex.GLID, true
		}
	}
	return 0, false
}

func (r *TextureRegistry) Textures() []*Texture {
	return r.textures
}

func (r *TextureRegistry) Len() int {
	return len(r.textures)
}
