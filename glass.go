package liquidglass

import (
	"image"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/liquidglass/panel"
)

// Glass is a panel attached to a Host, together with the GPU resources that
// draw it. Create one with Host.NewGlass.
type Glass struct {
	// Name identifies the glass in debug output.
	Name string
	// EntityID is forwarded with interaction events to the EntityStore.
	// Zero means the glass is not bridged.
	EntityID uint32
	// Tint is drawn over the refracted backdrop. The zero value draws nothing.
	Tint Color
	// Visible controls whether Draw renders the glass.
	Visible bool

	host     *Host
	panel    *panel.Panel
	surface  *MapSurface
	disp     *DisplacementFilter
	tone     *ColorMatrixFilter
	chain    *FilterChain
	degraded bool
	uploaded uint64
	pad      int // chain padding around the panel rect

	backdrop *ebiten.Image // panel-sized copy of the backdrop
	out      *ebiten.Image // filtered result
	imgOp    ebiten.DrawImageOptions
}

// newGlass builds the GPU side of p. When the displacement shader is
// unavailable the glass uses FallbackFilters.
func newGlass(h *Host, p *panel.Panel) *Glass {
	m := p.Map()
	g := &Glass{
		Visible: true,
		host:    h,
		panel:   p,
		surface: NewMapSurface(m.Width, m.Height),
		tone:    NewToneFilter(1.2, 1.05, 1.1),
	}

	disp, err := NewDisplacementFilter()
	if err != nil {
		g.degraded = true
		g.chain = ChainFilters(FallbackFilters()...)
	} else {
		g.disp = disp
		g.chain = ChainFilters(disp, g.tone)
	}
	g.pad = g.chain.Padding()
	g.sync()
	return g
}

// Panel returns the glass's panel.
func (g *Glass) Panel() *panel.Panel { return g.panel }

// Surface returns the map surface.
func (g *Glass) Surface() *MapSurface { return g.surface }

// Filters returns the filter chain used by Draw.
func (g *Glass) Filters() []Filter { return g.chain.Filters }

// Tone returns the color adjustment applied after refraction.
func (g *Glass) Tone() *ColorMatrixFilter { return g.tone }

// Displacement returns the displacement filter, or nil when degraded.
func (g *Glass) Displacement() *DisplacementFilter { return g.disp }

// Degraded reports whether the glass fell back to blur and contrast because
// the displacement filter is unavailable.
func (g *Glass) Degraded() bool { return g.degraded }

// Bounds returns the glass's screen rectangle.
func (g *Glass) Bounds() Rect {
	geom := g.panel.Geometry()
	return Rect{X: geom.X, Y: geom.Y, Width: float64(geom.Width), Height: float64(geom.Height)}
}

// ExportMap writes the current displacement map as a PNG.
func (g *Glass) ExportMap(w io.Writer) error {
	return g.panel.Map().EncodePNG(w)
}

// sync uploads the panel's map if it changed since the last upload.
func (g *Glass) sync() {
	if v := g.panel.Version(); v != g.uploaded {
		m := g.panel.Map()
		g.surface.Upload(m)
		g.uploaded = v
	}
	if g.disp != nil {
		g.disp.Map = g.surface.Image()
		g.disp.Scale = g.surface.Scale()
	}
}

// Draw refracts the part of backdrop under the glass and draws it to screen.
func (g *Glass) Draw(screen, backdrop *ebiten.Image) {
	if !g.Visible || g.panel.Destroyed() || backdrop == nil {
		return
	}
	g.sync()

	geom := g.panel.Geometry()
	w, h, pad := geom.Width, geom.Height, g.pad
	if g.backdrop == nil {
		g.backdrop = ebiten.NewImage(w+2*pad, h+2*pad)
		g.out = ebiten.NewImage(w+2*pad, h+2*pad)
	} else {
		g.backdrop.Clear()
		g.out.Clear()
	}

	// Copy the backdrop under the glass, plus the chain padding on every
	// side, so the filters see a zero-origin image and blur does not clamp
	// at the glass edge.
	g.imgOp.GeoM.Reset()
	g.imgOp.ColorScale.Reset()
	g.imgOp.GeoM.Translate(float64(pad)-geom.X, float64(pad)-geom.Y)
	g.backdrop.DrawImage(backdrop, &g.imgOp)

	g.chain.Apply(g.backdrop, g.out)

	inner := g.out.SubImage(image.Rect(pad, pad, pad+w, pad+h)).(*ebiten.Image)
	if g.Tint.A > 0 {
		g.imgOp.GeoM.Reset()
		g.imgOp.ColorScale.Reset()
		g.imgOp.GeoM.Scale(float64(w), float64(h))
		g.imgOp.GeoM.Translate(float64(pad), float64(pad))
		c := g.Tint
		g.imgOp.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
		inner.DrawImage(WhitePixel, &g.imgOp)
	}

	g.imgOp.GeoM.Reset()
	g.imgOp.ColorScale.Reset()
	g.imgOp.GeoM.Translate(geom.X, geom.Y)
	screen.DrawImage(inner, &g.imgOp)
}

// Destroy detaches the glass from its host, destroys the panel and
// deallocates every image. Calling it again is a no-op.
func (g *Glass) Destroy() {
	if g.panel.Destroyed() {
		return
	}
	if g.host != nil {
		g.host.removeGlass(g)
	}
	g.panel.Destroy()
	g.surface.Dispose()
	if g.disp != nil {
		g.disp.Dispose()
	}
	for _, f := range g.chain.Filters {
		if b, ok := f.(*BlurFilter); ok {
			b.Dispose()
		}
	}
	g.chain.pool.Dispose()
	if g.backdrop != nil {
		g.backdrop.Deallocate()
		g.out.Deallocate()
		g.backdrop, g.out = nil, nil
	}
}
