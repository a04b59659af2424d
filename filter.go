package liquidglass

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to a glass's backdrop.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect (e.g. blur radius). Zero means no padding.
	Padding() int
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels as required by Ebitengine.
// Ebitengine uses premultiplied alpha; shaders un-premultiply before processing
// and re-premultiply output where needed.

const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	// Un-premultiply alpha.
	if c.a > 0 {
		c.rgb /= c.a
	}
	// Apply 4x5 color matrix (row-major, offset in elements 4,9,14,19).
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	// Clamp and re-premultiply.
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

// displacementShaderSrc samples the backdrop (image 0) at the pixel offset
// encoded in the map (image 1): red is x, green is y, 0.5 is no offset.
// Samples are clamped to the backdrop region.
const displacementShaderSrc = `//kage:unit pixels
package main

var Scale float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	m := imageSrc1At(src)
	offset := (m.rg - 0.5) * Scale
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := clamp(src+offset, origin, origin+size-1)
	return imageSrc0UnsafeAt(p)
}
`

// --- Lazy shader compilation ---

var colorMatrixShader *ebiten.Shader

func ensureColorMatrixShader() *ebiten.Shader {
	if colorMatrixShader == nil {
		s, err := ebiten.NewShader([]byte(colorMatrixShaderSrc))
		if err != nil {
			panic("liquidglass: failed to compile color matrix shader: " + err.Error())
		}
		colorMatrixShader = s
	}
	return colorMatrixShader
}

// --- ColorMatrixFilter ---

// ColorMatrixFilter applies a 4x5 color matrix transformation using a Kage shader.
// The matrix is stored in row-major order: [R_r, R_g, R_b, R_a, R_offset, G_r, ...].
type ColorMatrixFilter struct {
	Matrix      [20]float64
	uniforms    map[string]any
	matrixF32   [20]float32 // persistent buffer to avoid per-frame slice escape
	matrixSlice []float32   // persistent slice header pointing into matrixF32
	shaderOp    ebiten.DrawRectShaderOptions
}

// identityMatrix is the color matrix that leaves every pixel unchanged.
var identityMatrix = [20]float64{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// NewColorMatrixFilter creates a color matrix filter initialized to the identity.
func NewColorMatrixFilter() *ColorMatrixFilter {
	f := &ColorMatrixFilter{
		Matrix:   identityMatrix,
		uniforms: make(map[string]any, 1),
	}
	f.matrixSlice = f.matrixF32[:]
	f.uniforms["Matrix"] = f.matrixSlice
	return f
}

// NewToneFilter creates a color matrix filter that applies contrast, then
// brightness, then saturation in a single pass. Brightness is a multiplier
// like CSS brightness(): 1 leaves colors unchanged. The glass look uses
// NewToneFilter(1.2, 1.05, 1.1).
func NewToneFilter(contrast, brightness, saturation float64) *ColorMatrixFilter {
	f := NewColorMatrixFilter()
	f.SetTone(contrast, brightness, saturation)
	return f
}

// SetBrightness sets the matrix to adjust brightness by the given offset [-1, 1].
func (f *ColorMatrixFilter) SetBrightness(b float64) {
	f.Matrix = brightnessMatrix(b)
}

// SetContrast sets the matrix to adjust contrast. c=1 is normal, 0=gray, >1 is higher.
func (f *ColorMatrixFilter) SetContrast(c float64) {
	f.Matrix = contrastMatrix(c)
}

// SetSaturation sets the matrix to adjust saturation. s=1 is normal, 0=grayscale.
func (f *ColorMatrixFilter) SetSaturation(s float64) {
	f.Matrix = saturationMatrix(s)
}

// SetTone replaces the matrix with contrast, brightness and saturation
// composed in that order. brightness scales the color channels.
func (f *ColorMatrixFilter) SetTone(contrast, brightness, saturation float64) {
	m := concatMatrix(contrastMatrix(contrast), scaleMatrix(brightness))
	f.Matrix = concatMatrix(m, saturationMatrix(saturation))
}

func brightnessMatrix(b float64) [20]float64 {
	return [20]float64{
		1, 0, 0, 0, b,
		0, 1, 0, 0, b,
		0, 0, 1, 0, b,
		0, 0, 0, 1, 0,
	}
}

func scaleMatrix(s float64) [20]float64 {
	return [20]float64{
		s, 0, 0, 0, 0,
		0, s, 0, 0, 0,
		0, 0, s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func contrastMatrix(c float64) [20]float64 {
	t := (1.0 - c) / 2.0
	return [20]float64{
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
	}
}

func saturationMatrix(s float64) [20]float64 {
	sr := (1 - s) * 0.299
	sg := (1 - s) * 0.587
	sb := (1 - s) * 0.114
	return [20]float64{
		sr + s, sg, sb, 0, 0,
		sr, sg + s, sb, 0, 0,
		sr, sg, sb + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// concatMatrix returns the matrix that applies a, then b.
func concatMatrix(a, b [20]float64) [20]float64 {
	var out [20]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			var v float64
			for k := 0; k < 4; k++ {
				v += b[i*5+k] * a[k*5+j]
			}
			if j == 4 {
				v += b[i*5+4]
			}
			out[i*5+j] = v
		}
	}
	return out
}

// Apply renders the color matrix transformation from src into dst.
func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureColorMatrixShader()
	// Convert [20]float64 to [20]float32 in place. matrixSlice
	// already points into matrixF32 and is pre-stored in the uniforms map.
	for i, v := range f.Matrix {
		f.matrixF32[i] = float32(v)
	}
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; color matrix transforms don't expand the image bounds.
func (f *ColorMatrixFilter) Padding() int { return 0 }

// --- DisplacementFilter ---

// DisplacementFilter refracts its source through a displacement map, the
// way an SVG feDisplacementMap with xChannelSelector=R and
// yChannelSelector=G does. The map is scaled to the source size when the
// two differ.
type DisplacementFilter struct {
	// Map is the encoded displacement map, usually a MapSurface image.
	Map *ebiten.Image
	// Scale is the map's reported scale in pixels.
	Scale float64
	// Strength multiplies Scale. 1 is the generated refraction, 0 is flat.
	Strength float64

	shader   *ebiten.Shader
	scaled   *ebiten.Image // map resampled to the source size
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
	imgOp    ebiten.DrawImageOptions
}

// NewDisplacementFilter compiles the displacement shader and returns a
// filter with full strength. It returns the compile error on platforms
// without shader support; see ProbeDisplacement.
func NewDisplacementFilter() (*DisplacementFilter, error) {
	s, err := ensureDisplacementShader()
	if err != nil {
		return nil, err
	}
	return &DisplacementFilter{
		Strength: 1,
		shader:   s,
		uniforms: make(map[string]any, 1),
	}, nil
}

// Apply refracts src into dst. Without a map or with a zero scale it copies
// src unchanged.
func (f *DisplacementFilter) Apply(src, dst *ebiten.Image) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scale := f.Scale * f.Strength
	if f.Map == nil || scale == 0 {
		f.imgOp.GeoM.Reset()
		f.imgOp.ColorScale.Reset()
		f.imgOp.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &f.imgOp)
		return
	}

	m := f.Map
	if mb := m.Bounds(); mb.Dx() != w || mb.Dy() != h {
		m = f.resample(m, w, h)
	}
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	f.uniforms["Scale"] = float32(scale)
	f.shaderOp.Images[0] = src
	f.shaderOp.Images[1] = m
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(w, h, f.shader, &f.shaderOp)
}

// resample draws the map onto a w×h scratch image so it lines up with the
// source for DrawRectShader.
func (f *DisplacementFilter) resample(m *ebiten.Image, w, h int) *ebiten.Image {
	if f.scaled == nil || f.scaled.Bounds().Dx() != w || f.scaled.Bounds().Dy() != h {
		if f.scaled != nil {
			f.scaled.Deallocate()
		}
		f.scaled = ebiten.NewImage(w, h)
	} else {
		f.scaled.Clear()
	}
	mb := m.Bounds()
	f.imgOp.GeoM.Reset()
	f.imgOp.ColorScale.Reset()
	f.imgOp.GeoM.Scale(float64(w)/float64(mb.Dx()), float64(h)/float64(mb.Dy()))
	f.imgOp.Filter = ebiten.FilterLinear
	f.scaled.DrawImage(m, &f.imgOp)
	return f.scaled
}

// Padding returns 0. Samples that fall outside the source are clamped to its
// edge instead.
func (f *DisplacementFilter) Padding() int { return 0 }

// Dispose releases the resampling scratch image.
func (f *DisplacementFilter) Dispose() {
	if f.scaled != nil {
		f.scaled.Deallocate()
		f.scaled = nil
	}
}

// --- BlurFilter ---

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// No Kage shader needed; bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// blurPasses returns the number of downscale passes for a radius.
func blurPasses(radius int) int {
	passes := int(math.Ceil(math.Log2(float64(radius))))
	if passes < 1 {
		passes = 1
	}
	return passes
}

// Apply renders a Kawase blur from src into dst using iterative downscale/upscale.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	if f.Radius <= 0 {
		f.imgOp.GeoM.Reset()
		f.imgOp.ColorScale.Reset()
		f.imgOp.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &f.imgOp)
		return
	}

	passes := blurPasses(f.Radius)
	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	// Deallocate excess temp images from previous larger radius.
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	op := &f.imgOp

	// Downscale passes: each half-size
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}

	// Upscale passes: draw each back up
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}

	drawScaled(dst, current, op)
}

// drawScaled stretches src over dst with bilinear filtering.
func drawScaled(dst, src *ebiten.Image, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sb, db := src.Bounds(), dst.Bounds()
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding returns the blur radius. Glass.Draw copies that many extra backdrop
// pixels around the panel so the blur does not clamp at the edge.
func (f *BlurFilter) Padding() int { return f.Radius }

// Dispose releases the intermediate images.
func (f *BlurFilter) Dispose() {
	for i, img := range f.temps {
		if img != nil {
			img.Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:0]
}

// --- Filter chain ---

// FilterChain runs its filters in order, ping-ponging between pooled
// scratch images.
type FilterChain struct {
	Filters []Filter
	pool    *renderTexturePool
}

// ChainFilters composes filters into a single Filter.
func ChainFilters(filters ...Filter) *FilterChain {
	return &FilterChain{Filters: filters, pool: &renderTexturePool{}}
}

// Apply runs every filter from src and draws the final result into dst.
func (c *FilterChain) Apply(src, dst *ebiten.Image) {
	switch len(c.Filters) {
	case 0:
		var op ebiten.DrawImageOptions
		dst.DrawImage(src, &op)
		return
	case 1:
		c.Filters[0].Apply(src, dst)
		return
	}
	out, scratch := applyFilters(c.Filters[:len(c.Filters)-1], src, c.pool)
	c.Filters[len(c.Filters)-1].Apply(out, dst)
	c.pool.Release(scratch[0])
	c.pool.Release(scratch[1])
}

// Padding returns the sum of the filters' paddings.
func (c *FilterChain) Padding() int { return filterChainPadding(c.Filters) }

// filterChainPadding returns the cumulative padding required by a slice of filters.
func filterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// applyFilters runs a filter chain on src, ping-ponging between two pooled
// images. It returns the image holding the result and the scratch images the
// caller must release (either may be nil).
func applyFilters(filters []Filter, src *ebiten.Image, pool *renderTexturePool) (*ebiten.Image, [2]*ebiten.Image) {
	var scratch [2]*ebiten.Image
	if len(filters) == 0 {
		return src, scratch
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	current := src
	for i, f := range filters {
		target := scratch[i%2]
		if target == nil {
			target = pool.Acquire(w, h)
			scratch[i%2] = target
		} else {
			target.Clear()
		}
		f.Apply(current, target)
		current = target
	}
	return current, scratch
}
