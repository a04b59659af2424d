package field

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
)

// dataURIPrefix is the prefix of a PNG data URI.
const dataURIPrefix = "data:image/png;base64,"

// Map is an encoded displacement map. Each pixel stores the horizontal offset
// in red and the vertical offset in green, both as v/Scale + 0.5 scaled to a
// byte; blue is 0 and alpha 255.
type Map struct {
	// Width and Height are the pixel dimensions of Pix, including
	// supersampling.
	Width, Height int
	// Resolution is the supersampling factor the map was generated with.
	Resolution int
	// Pix holds Width*Height RGBA quadruplets, row-major.
	Pix []byte
	// Scale converts an encoded channel back to logical pixels:
	// offset = (channel/255 - 0.5) * Scale. Zero for a neutral map.
	Scale float64
	// MaxDisplacement is the largest absolute offset, in map pixels, seen
	// during the pass that produced this map.
	MaxDisplacement float64
}

// Len returns the number of encoded pixels.
func (m *Map) Len() int {
	return len(m.Pix) / 4
}

// Neutral reports whether the map encodes no displacement at all.
func (m *Map) Neutral() bool {
	return m.Scale == 0
}

// DisplacementAt decodes the offset stored at pixel (x, y) in logical pixels.
// Out-of-range coordinates report zero.
func (m *Map) DisplacementAt(x, y int) (dx, dy float64) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0, 0
	}
	i := (y*m.Width + x) * 4
	dx = (float64(m.Pix[i])/255 - 0.5) * m.Scale
	dy = (float64(m.Pix[i+1])/255 - 0.5) * m.Scale
	return dx, dy
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	c := *m
	c.Pix = append([]byte(nil), m.Pix...)
	return &c
}

// Image returns a copy of the map as an *image.NRGBA.
func (m *Map) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	copy(img.Pix, m.Pix)
	return img
}

// EncodePNG writes the map as a PNG image.
func (m *Map) EncodePNG(w io.Writer) error {
	if m.Width == 0 || m.Height == 0 {
		return fmt.Errorf("field: encode png: %w", ErrInvalidSize)
	}
	if err := png.Encode(w, m.Image()); err != nil {
		return fmt.Errorf("field: encode png: %w", err)
	}
	return nil
}

// DataURI returns the map as a base64 PNG data URI, ready to be referenced
// from an SVG feImage.
func (m *Map) DataURI() (string, error) {
	var buf bytes.Buffer
	if err := m.EncodePNG(&buf); err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
