package physics

import (
	"errors"
	"fmt"
	"math"
)

// Defaults applied by DefaultConfig and to zero-valued Config fields.
const (
	DefaultMaxRipples     = 10
	DefaultMaxTrail       = 20
	DefaultRippleLifetime = 1.0  // seconds
	DefaultTrailDecay     = 1.5  // life per second
	DefaultMaxSpeed       = 4000 // px/s
	DefaultRestTolerance  = 0.002
)

// MaxStep is the largest time step Step integrates at once.
const MaxStep = 1.0 / 60

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("physics: invalid config")

// Config configures a Sim. Zero-valued limits fall back to the defaults above.
type Config struct {
	Params

	// MaxRipples caps the ripple list. The oldest ripple is evicted first.
	MaxRipples int
	// MaxTrail caps the drag trail. The oldest point is evicted first.
	MaxTrail int
	// RippleLifetime is the age in seconds at which a ripple is removed.
	RippleLifetime float64
	// TrailDecay is how much life a trail point loses per second.
	TrailDecay float64
	// MaxSpeed clamps the velocity magnitude in px/s.
	MaxSpeed float64
	// RestTolerance is the normalized distance between the internal pointer
	// and its rest position under which the panel counts as settled.
	RestTolerance float64
	// Bounce reflects velocity off viewport edges during inertia.
	Bounce bool
	// Inertia lets the panel keep gliding with its release velocity.
	Inertia bool
	// Seed seeds the jitter and ripple frequency generator.
	Seed uint64
}

// DefaultConfig returns a Config using the Water preset.
func DefaultConfig() Config {
	return Config{
		Params:         Water,
		MaxRipples:     DefaultMaxRipples,
		MaxTrail:       DefaultMaxTrail,
		RippleLifetime: DefaultRippleLifetime,
		TrailDecay:     DefaultTrailDecay,
		MaxSpeed:       DefaultMaxSpeed,
		RestTolerance:  DefaultRestTolerance,
	}
}

// Validate reports negative limits and non-finite parameters. Parameters
// outside [0, 1] are accepted and clamped by NewSim.
func (c Config) Validate() error {
	params := []struct {
		name string
		v    float64
	}{
		{"elasticity", c.Elasticity},
		{"dampening", c.Dampening},
		{"ripple intensity", c.RippleIntensity},
		{"viscosity", c.Viscosity},
		{"surface tension", c.SurfaceTension},
		{"ripple lifetime", c.RippleLifetime},
		{"trail decay", c.TrailDecay},
		{"max speed", c.MaxSpeed},
		{"rest tolerance", c.RestTolerance},
	}
	for _, p := range params {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	switch {
	case c.MaxRipples < 0:
		return fmt.Errorf("%w: max ripples %d", ErrInvalidConfig, c.MaxRipples)
	case c.MaxTrail < 0:
		return fmt.Errorf("%w: max trail %d", ErrInvalidConfig, c.MaxTrail)
	case c.RippleLifetime < 0:
		return fmt.Errorf("%w: ripple lifetime %v", ErrInvalidConfig, c.RippleLifetime)
	case c.TrailDecay < 0:
		return fmt.Errorf("%w: trail decay %v", ErrInvalidConfig, c.TrailDecay)
	case c.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed %v", ErrInvalidConfig, c.MaxSpeed)
	case c.RestTolerance < 0:
		return fmt.Errorf("%w: rest tolerance %v", ErrInvalidConfig, c.RestTolerance)
	}
	return nil
}

// withDefaults fills zero limits and clamps the parameters.
func (c Config) withDefaults() Config {
	c.Params = c.Params.Clamped()
	if c.MaxRipples == 0 {
		c.MaxRipples = DefaultMaxRipples
	}
	if c.MaxTrail == 0 {
		c.MaxTrail = DefaultMaxTrail
	}
	if c.RippleLifetime == 0 {
		c.RippleLifetime = DefaultRippleLifetime
	}
	if c.TrailDecay == 0 {
		c.TrailDecay = DefaultTrailDecay
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = DefaultMaxSpeed
	}
	if c.RestTolerance == 0 {
		c.RestTolerance = DefaultRestTolerance
	}
	return c
}
