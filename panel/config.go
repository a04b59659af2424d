package panel

import (
	"errors"
	"fmt"
	"math"

	"github.com/phanxgames/liquidglass/field"
	"github.com/phanxgames/liquidglass/physics"
)

// DefaultOffset is the margin kept between a fixed panel and the viewport
// edges when Config.Offset is zero.
const DefaultOffset = 10

// Errors returned by New.
var (
	ErrInvalidSize   = errors.New("panel: width and height must be positive")
	ErrInvalidRadius = errors.New("panel: corner radius must be non-negative")
	ErrNoFragment    = errors.New("panel: no fragment")
)

// Config describes a panel at construction time.
type Config struct {
	Geometry Geometry
	// Fragment computes the displacement. Required unless Geometry.Radius is
	// zero, in which case field.Adaptive is used.
	Fragment  field.Fragment
	Draggable bool

	// EnablePhysics attaches a physics.Sim configured by Physics.
	EnablePhysics bool
	Physics       physics.Config

	// Offset is the viewport margin for ModeFixed. Zero uses DefaultOffset;
	// a negative value clamps flush against the edges.
	Offset float64
	// Resolution and Safety are passed to the generator. Zero values use
	// the generator defaults.
	Resolution int
	Safety     float64

	// Viewport constrains ModeFixed panels. Zero leaves them unconstrained
	// until Resize.
	Viewport Size
	// Scheduler receives frame subscriptions. When nil the caller drives
	// Tick directly.
	Scheduler Scheduler
}

func (c Config) validate() error {
	g := c.Geometry
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("panel: size %dx%d: %w", g.Width, g.Height, ErrInvalidSize)
	}
	if g.Radius < 0 || math.IsNaN(g.Radius) {
		return fmt.Errorf("panel: radius %v: %w", g.Radius, ErrInvalidRadius)
	}
	if !c.Fragment.Valid() && g.Radius != 0 {
		return ErrNoFragment
	}
	return nil
}

func (c Config) offset() float64 {
	switch {
	case c.Offset == 0:
		return DefaultOffset
	case c.Offset < 0:
		return 0
	}
	return c.Offset
}

func (c Config) generatorOptions() []field.GeneratorOption {
	var opts []field.GeneratorOption
	if c.Resolution != 0 {
		opts = append(opts, field.WithResolution(c.Resolution))
	}
	if c.Safety != 0 {
		opts = append(opts, field.WithSafety(c.Safety))
	}
	return opts
}
