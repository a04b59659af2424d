package liquidglass

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/liquidglass/field"
)

// neutralMapColor encodes "no displacement" on both axes.
var neutralMapColor = color.RGBA{R: 128, G: 128, B: 0, A: 255}

// MapSurface is the GPU copy of a displacement map. It is owned by a Glass
// and rewritten with WritePixels whenever the panel regenerates its map.
type MapSurface struct {
	image    *ebiten.Image
	w, h     int
	scale    float64
	uploads  int
	disposed bool
}

// NewMapSurface creates a surface of the given size filled with the neutral
// encoding.
func NewMapSurface(w, h int) *MapSurface {
	ms := &MapSurface{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
	ms.image.Fill(neutralMapColor)
	return ms
}

// Image returns the underlying *ebiten.Image, nil after Dispose.
func (ms *MapSurface) Image() *ebiten.Image {
	return ms.image
}

// Width returns the surface width in pixels.
func (ms *MapSurface) Width() int {
	return ms.w
}

// Height returns the surface height in pixels.
func (ms *MapSurface) Height() int {
	return ms.h
}

// Scale returns the scale of the last uploaded map.
func (ms *MapSurface) Scale() float64 {
	return ms.scale
}

// Uploads returns how many maps have been written to the surface.
func (ms *MapSurface) Uploads() int {
	return ms.uploads
}

// Upload writes m to the surface. The image is reallocated when the map size
// differs. Map pixels are fully opaque, so no premultiplication is needed.
func (ms *MapSurface) Upload(m *field.Map) {
	if ms.disposed || m.Len() == 0 {
		return
	}
	if m.Width != ms.w || m.Height != ms.h {
		ms.image.Deallocate()
		ms.image = ebiten.NewImage(m.Width, m.Height)
		ms.w, ms.h = m.Width, m.Height
	}
	ms.image.WritePixels(m.Pix)
	ms.scale = m.Scale
	ms.uploads++
}

// Dispose deallocates the surface. Further uploads are ignored.
func (ms *MapSurface) Dispose() {
	if ms.disposed {
		return
	}
	ms.disposed = true
	if ms.image != nil {
		ms.image.Deallocate()
		ms.image = nil
	}
}
