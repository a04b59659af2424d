package field

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSafety is the multiplier applied to the largest observed
// displacement before encoding. Values below 1 let the strongest offsets
// saturate the channel, which keeps the visible refraction inside the
// intended envelope.
const DefaultSafety = 0.5

// neutralChannel encodes a zero displacement (0.5 * 255, rounded).
const neutralChannel = 128

// Errors returned by NewGenerator.
var (
	ErrInvalidSize       = errors.New("field: size must be positive")
	ErrInvalidResolution = errors.New("field: resolution must be at least 1")
	ErrInvalidSafety     = errors.New("field: safety multiplier must be in (0, 1]")
)

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithResolution sets the supersampling factor. The map is evaluated on an
// (n·w)×(n·h) grid and the reported scale is divided back by n.
func WithResolution(n int) GeneratorOption {
	return func(g *Generator) { g.resolution = n }
}

// WithSafety overrides DefaultSafety.
func WithSafety(f float64) GeneratorOption {
	return func(g *Generator) { g.safety = f }
}

// Generator owns a fixed-size displacement buffer and regenerates it in full
// from a fragment. It is not safe for concurrent use.
type Generator struct {
	width, height int
	resolution    int
	safety        float64
	raw           []float64 // interleaved dx, dy in pixel units
	m             Map
	generations   uint64
	released      bool
}

// NewGenerator allocates a generator for a w×h panel.
func NewGenerator(w, h int, opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{width: w, height: h, resolution: 1, safety: DefaultSafety}
	for _, opt := range opts {
		opt(g)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("field: generator %dx%d: %w", w, h, ErrInvalidSize)
	}
	if g.resolution < 1 {
		return nil, fmt.Errorf("field: generator resolution %d: %w", g.resolution, ErrInvalidResolution)
	}
	if !(g.safety > 0 && g.safety <= 1) {
		return nil, fmt.Errorf("field: generator safety %v: %w", g.safety, ErrInvalidSafety)
	}

	pw := w * g.resolution
	ph := h * g.resolution
	g.raw = make([]float64, pw*ph*2)
	g.m = Map{
		Width:      pw,
		Height:     ph,
		Resolution: g.resolution,
		Pix:        make([]byte, pw*ph*4),
	}
	g.fillNeutral()
	return g, nil
}

// Width returns the logical panel width.
func (g *Generator) Width() int { return g.width }

// Height returns the logical panel height.
func (g *Generator) Height() int { return g.height }

// Resolution returns the supersampling factor.
func (g *Generator) Resolution() int { return g.resolution }

// Generations returns how many times Generate has run.
func (g *Generator) Generations() uint64 { return g.generations }

// Map returns the most recently generated map. Before the first Generate it
// is neutral.
func (g *Generator) Map() *Map { return &g.m }

// Generate evaluates frag at every pixel and re-encodes the map. The returned
// Map is owned by the generator and is overwritten by the next call; use
// Map.Clone to keep a copy.
func (g *Generator) Generate(frag Fragment, in Input) *Map {
	if g.released {
		return &g.m
	}
	w, h := g.m.Width, g.m.Height
	fw, fh := float64(w), float64(h)

	maxAbs := 0.0
	k := 0
	for y := 0; y < h; y++ {
		fy := float64(y)
		for x := 0; x < w; x++ {
			fx := float64(x)
			pos := frag.Eval(Vec2{X: fx / fw, Y: fy / fh}, in)
			dx := pos.X*fw - fx
			dy := pos.Y*fh - fy
			if a := math.Abs(dx); a > maxAbs {
				maxAbs = a
			}
			if a := math.Abs(dy); a > maxAbs {
				maxAbs = a
			}
			g.raw[k] = dx
			g.raw[k+1] = dy
			k += 2
		}
	}

	scale := maxAbs * g.safety
	if scale == 0 {
		g.fillNeutral()
	} else {
		inv := 1 / scale
		pix := g.m.Pix
		for i, j := 0, 0; i < len(pix); i, j = i+4, j+2 {
			pix[i] = encodeChannel(g.raw[j] * inv)
			pix[i+1] = encodeChannel(g.raw[j+1] * inv)
			pix[i+2] = 0
			pix[i+3] = 255
		}
	}
	g.m.MaxDisplacement = maxAbs
	g.m.Scale = scale / float64(g.resolution)
	g.generations++
	return &g.m
}

// Release drops the buffers. Generate becomes a no-op returning an empty map.
func (g *Generator) Release() {
	if g.released {
		return
	}
	g.released = true
	g.raw = nil
	g.m = Map{Resolution: g.resolution}
}

func (g *Generator) fillNeutral() {
	pix := g.m.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = neutralChannel
		pix[i+1] = neutralChannel
		pix[i+2] = 0
		pix[i+3] = 255
	}
	g.m.Scale = 0
	g.m.MaxDisplacement = 0
}

// encodeChannel maps a normalized displacement v (0 = none) to a byte around
// the 0.5 midpoint, saturating at 0 and 255.
func encodeChannel(v float64) byte {
	c := (v + 0.5) * 255
	if !(c > 0) {
		return 0
	}
	if c >= 255 {
		return 255
	}
	return byte(c + 0.5)
}
