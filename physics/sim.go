package physics

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/harmonica"
	"github.com/phanxgames/liquidglass/field"
	"gonum.org/v1/gonum/spatial/r2"
)

// Phase is the simulation state.
type Phase uint8

const (
	Idle Phase = iota
	Dragging
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Tuning constants shared by every material.
const (
	frameRate       = 60.0
	restSpeed       = 0.5   // px/s under which velocity snaps to zero
	trailMinSpeed   = 60.0  // px/s
	rippleMinSpeed  = 300.0 // px/s
	rippleInterval  = 0.08  // seconds between interval ripples
	speedReference  = 1000.0
	elasticRestore  = 0.02
	rippleAmplitude = 0.02
	trailPull       = 0.01
	stretchAmount   = 0.015
	tensionAmount   = 0.004
	jitterAmount    = 0.004
)

// Ripple is a decaying perturbation centered on a past interaction point.
type Ripple struct {
	Origin    r2.Vec // normalized panel coordinates
	Intensity float64
	Amplitude float64 // decays by 2% per step
	Frequency float64
	Age       float64 // seconds
}

// TrailPoint marks where the pointer passed while dragging fast.
type TrailPoint struct {
	Pos       r2.Vec
	Life      float64 // 1 at spawn, removed at <= 0
	Intensity float64
}

// Snapshot is a read-only view of a Sim after the latest step.
type Snapshot struct {
	Phase    Phase
	Velocity r2.Vec // px/s
	Speed    float64
	Pointer  r2.Vec // internal, lagging pointer
	Target   r2.Vec
	Rest     r2.Vec
	Elastic  r2.Vec
	Ripples  int
	Trail    int
	Ticks    uint64
	Time     float64
}

// Sim is the per-panel simulation. It is not safe for concurrent use.
type Sim struct {
	cfg  Config
	size r2.Vec

	phase Phase
	vel   r2.Vec
	accum r2.Vec // drag delta since the last step

	pointer    r2.Vec
	pointerVel r2.Vec
	target     r2.Vec
	rest       r2.Vec
	elastic    r2.Vec

	ripples     []Ripple
	trail       []TrailPoint
	sinceRipple float64

	spring   harmonica.Spring
	springDt float64

	rng       *rand.Rand
	noiseSeed float64
	ticks     uint64
	clock     float64
}

// NewSim creates an idle simulation for a panel of w×h pixels. Invalid
// configurations are rejected with an error wrapping ErrInvalidConfig.
func NewSim(cfg Config, w, h float64) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(w > 0 && h > 0) {
		return nil, fmt.Errorf("%w: panel size %vx%v", ErrInvalidConfig, w, h)
	}
	cfg = cfg.withDefaults()
	center := r2.Vec{X: 0.5, Y: 0.5}
	return &Sim{
		cfg:     cfg,
		size:    r2.Vec{X: w, Y: h},
		pointer: center,
		target:  center,
		rest:    center,
		ripples: make([]Ripple, 0, cfg.MaxRipples),
		trail:   make([]TrailPoint, 0, cfg.MaxTrail),
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Config returns the effective configuration, defaults applied.
func (s *Sim) Config() Config { return s.cfg }

// Phase returns the current phase.
func (s *Sim) Phase() Phase { return s.phase }

// Active reports whether the simulation still needs frames.
func (s *Sim) Active() bool { return s.phase != Idle }

// Velocity returns the current velocity in px/s.
func (s *Sim) Velocity() r2.Vec { return s.vel }

// Pointer returns the internal pointer as a fragment input.
func (s *Sim) Pointer() field.Vec2 { return toField(s.pointer) }

// Ripples returns a copy of the active ripples, oldest first.
func (s *Sim) Ripples() []Ripple { return append([]Ripple(nil), s.ripples...) }

// Trail returns a copy of the active trail points, oldest first.
func (s *Sim) Trail() []TrailPoint { return append([]TrailPoint(nil), s.trail...) }

// Frame returns a snapshot of the current state.
func (s *Sim) Frame() Snapshot {
	return Snapshot{
		Phase:    s.phase,
		Velocity: s.vel,
		Speed:    r2.Norm(s.vel),
		Pointer:  s.pointer,
		Target:   s.target,
		Rest:     s.rest,
		Elastic:  s.elastic,
		Ripples:  len(s.ripples),
		Trail:    len(s.trail),
		Ticks:    s.ticks,
		Time:     s.clock,
	}
}

// Begin enters Dragging with the pointer at the normalized point at. The
// point becomes the rest position the settle spring returns to, and a ripple
// is spawned there.
func (s *Sim) Begin(at field.Vec2) {
	p := toR2(at)
	if s.phase == Idle {
		s.pointer = p
		s.pointerVel = r2.Vec{}
	}
	s.phase = Dragging
	s.rest = p
	s.target = p
	s.accum = r2.Vec{}
	s.sinceRipple = 0
	if s.cfg.RippleIntensity > 0 {
		s.SpawnRipple(at, s.cfg.RippleIntensity)
	}
}

// Drag records a panel move of (dx, dy) pixels and the normalized pointer
// target. Deltas accumulate until the next Step, which turns them into a
// velocity estimate. Ignored unless dragging.
func (s *Sim) Drag(dx, dy float64, target field.Vec2) {
	if s.phase != Dragging {
		return
	}
	s.accum = r2.Add(s.accum, r2.Vec{X: dx, Y: dy})
	s.target = toR2(target)
}

// Release ends the drag and starts settling.
func (s *Sim) Release() {
	if s.phase != Dragging {
		return
	}
	s.phase = Settling
	s.accum = r2.Vec{}
}

// Reflect bounces the velocity off a constraint. Each selected component is
// negated and scaled by Elasticity.
func (s *Sim) Reflect(axisX, axisY bool) {
	if axisX {
		s.vel.X = -s.vel.X * s.cfg.Elasticity
	}
	if axisY {
		s.vel.Y = -s.vel.Y * s.cfg.Elasticity
	}
}

// SpawnRipple adds a ripple at the normalized point at, evicting the oldest
// when the list is full. An idle simulation starts settling so the ripple
// plays out.
func (s *Sim) SpawnRipple(at field.Vec2, intensity float64) {
	if len(s.ripples) == s.cfg.MaxRipples {
		copy(s.ripples, s.ripples[1:])
		s.ripples = s.ripples[:len(s.ripples)-1]
	}
	s.ripples = append(s.ripples, Ripple{
		Origin:    toR2(at),
		Intensity: intensity,
		Amplitude: intensity,
		Frequency: 8 + 4*s.rng.Float64(),
	})
	if s.phase == Idle {
		s.phase = Settling
	}
}

func (s *Sim) spawnTrail(at r2.Vec, intensity float64) {
	if len(s.trail) == s.cfg.MaxTrail {
		copy(s.trail, s.trail[1:])
		s.trail = s.trail[:len(s.trail)-1]
	}
	s.trail = append(s.trail, TrailPoint{Pos: at, Life: 1, Intensity: intensity})
}

// Step advances the simulation by dt seconds, clamped to MaxStep, and
// reports whether it is still active. A non-positive dt integrates nothing.
func (s *Sim) Step(dt float64) bool {
	if s.phase == Idle {
		return false
	}
	if !(dt > 0) {
		return true
	}
	dt = min(dt, MaxStep)
	s.ticks++
	s.clock += dt
	frames := dt * frameRate

	switch s.phase {
	case Dragging:
		s.vel = s.clampSpeed(r2.Scale(1/dt, s.accum))
		s.accum = r2.Vec{}
		speed := r2.Norm(s.vel)

		follow := math.Max(0.01, (1-s.cfg.Viscosity)*(1-math.Min(0.9, 0.3*speed/speedReference)))
		k := 1 - math.Pow(1-follow, frames)
		prev := s.pointer
		s.pointer = r2.Add(s.pointer, r2.Scale(k, r2.Sub(s.target, s.pointer)))
		s.pointerVel = r2.Scale(1/dt, r2.Sub(s.pointer, prev))

		if speed > trailMinSpeed {
			s.spawnTrail(s.target, math.Min(1, speed/speedReference))
		}
		s.sinceRipple += dt
		if speed > rippleMinSpeed && s.sinceRipple >= rippleInterval && s.cfg.RippleIntensity > 0 {
			s.SpawnRipple(toField(s.target), s.cfg.RippleIntensity*math.Min(1, speed/speedReference))
			s.sinceRipple = 0
		}

	case Settling:
		retain := 1 - (0.05 + 0.25*s.cfg.Dampening)
		s.vel = r2.Scale(math.Pow(retain, frames), s.vel)
		if r2.Norm(s.vel) < restSpeed {
			s.vel = r2.Vec{}
		}
		if dt != s.springDt {
			s.spring = harmonica.NewSpring(dt, 4+8*s.cfg.Elasticity, 0.5+0.5*s.cfg.Dampening)
			s.springDt = dt
		}
		s.pointer.X, s.pointerVel.X = s.spring.Update(s.pointer.X, s.pointerVel.X, s.rest.X)
		s.pointer.Y, s.pointerVel.Y = s.spring.Update(s.pointer.Y, s.pointerVel.Y, s.rest.Y)
	}

	s.elastic = r2.Scale(elasticRestore*(1+s.cfg.Elasticity), r2.Sub(s.rest, s.pointer))
	s.ageRipples(dt)
	s.ageTrail(dt)
	if s.cfg.Viscosity > 0.5 {
		s.noiseSeed = s.rng.Float64() * 1000
	}

	if s.phase == Settling && s.rested() {
		s.phase = Idle
		s.pointer = s.rest
		s.pointerVel = r2.Vec{}
		s.elastic = r2.Vec{}
	}
	return s.phase != Idle
}

func (s *Sim) ageRipples(dt float64) {
	n := 0
	for _, r := range s.ripples {
		r.Age += dt
		r.Amplitude *= 0.98
		if r.Age >= s.cfg.RippleLifetime {
			continue
		}
		s.ripples[n] = r
		n++
	}
	s.ripples = s.ripples[:n]
}

func (s *Sim) ageTrail(dt float64) {
	n := 0
	for _, p := range s.trail {
		p.Life -= dt * s.cfg.TrailDecay
		if p.Life <= 0 {
			continue
		}
		s.trail[n] = p
		n++
	}
	s.trail = s.trail[:n]
}

func (s *Sim) rested() bool {
	tol := s.cfg.RestTolerance
	return s.vel == (r2.Vec{}) &&
		len(s.ripples) == 0 &&
		len(s.trail) == 0 &&
		r2.Norm(r2.Sub(s.pointer, s.rest)) <= tol &&
		r2.Norm(s.pointerVel) <= tol*frameRate
}

func (s *Sim) clampSpeed(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n > s.cfg.MaxSpeed && n > 0 {
		return r2.Scale(s.cfg.MaxSpeed/n, v)
	}
	return v
}

// Perturb returns base displaced by the current physics state at the
// normalized coordinate uv. t is the panel time in seconds. An idle
// simulation returns base unchanged.
func (s *Sim) Perturb(uv, base field.Vec2, t float64) field.Vec2 {
	if s.phase == Idle {
		return base
	}
	p := toR2(uv)
	var off r2.Vec

	speed := r2.Norm(s.vel)
	energy := math.Min(1, speed/speedReference)

	// Stretch opposite to motion, strongest near the internal pointer.
	if speed > 0 {
		near := field.SmoothStep(0.8, 0, r2.Norm(r2.Sub(p, s.pointer)))
		v := r2.Vec{X: s.vel.X / s.size.X, Y: s.vel.Y / s.size.Y}
		off = r2.Add(off, r2.Scale(-stretchAmount*near*(1-0.5*s.cfg.Viscosity), v))
	}

	for _, r := range s.ripples {
		d := r2.Sub(p, r.Origin)
		dist := r2.Norm(d)
		if dist == 0 {
			continue
		}
		life := 1 - r.Age/s.cfg.RippleLifetime
		wave := math.Sin(dist*r.Frequency*2*math.Pi-r.Age*4*math.Pi) * r.Amplitude * math.Exp(-dist*4) * life
		off = r2.Add(off, r2.Scale(wave*rippleAmplitude/dist, d))
		energy = math.Max(energy, r.Amplitude*life)
	}

	for _, tp := range s.trail {
		d := r2.Sub(tp.Pos, p)
		dist := r2.Norm(d)
		if dist == 0 {
			continue
		}
		pull := tp.Life * tp.Intensity * trailPull * math.Exp(-dist*8)
		off = r2.Add(off, r2.Scale(pull/dist, d))
	}

	if s.elastic != (r2.Vec{}) {
		core := field.SmoothStep(0.7, 0, r2.Norm(r2.Sub(p, r2.Vec{X: 0.5, Y: 0.5})))
		off = r2.Add(off, r2.Scale(core, s.elastic))
	}

	if s.cfg.SurfaceTension > 0 && energy > 0 {
		a := tensionAmount * s.cfg.SurfaceTension * energy
		off.X += math.Sin(p.Y*12+t*6) * a
		off.Y += math.Sin(p.X*12+t*6) * a
	}

	if s.cfg.Viscosity > 0.5 && energy > 0 {
		a := jitterAmount * (s.cfg.Viscosity - 0.5) * energy
		off.X += (noise(p.X, p.Y, s.noiseSeed) - 0.5) * a
		off.Y += (noise(p.Y, p.X, s.noiseSeed) - 0.5) * a
	}

	return field.Vec2{X: base.X + off.X, Y: base.Y + off.Y}
}

// noise is a deterministic hash of (x, y, seed) in [0, 1).
func noise(x, y, seed float64) float64 {
	v := math.Sin(x*12.9898+y*78.233+seed) * 43758.5453
	return v - math.Floor(v)
}

func toR2(v field.Vec2) r2.Vec    { return r2.Vec{X: v.X, Y: v.Y} }
func toField(v r2.Vec) field.Vec2 { return field.Vec2{X: v.X, Y: v.Y} }
