package panel

import (
	"fmt"

	"github.com/phanxgames/liquidglass/field"
	"github.com/phanxgames/liquidglass/physics"
)

// Panel is one glass panel. All methods must be called from the same
// goroutine; after Destroy every method is a no-op.
type Panel struct {
	cfg    Config
	geom   Geometry
	layout struct{ x, y float64 } // position at construction
	offset float64

	frag      field.Fragment
	perturbed field.Fragment
	gen       *field.Generator
	sim       *physics.Sim

	viewport Size
	pointer  field.Vec2 // live pointer, normalized
	clock    float64

	dragging  bool
	dragPos   field.Vec2 // panel position at pointer down
	dragStart field.Vec2 // screen pointer at pointer down

	lastInput field.Input
	dirty     bool
	scheduled bool
	version   uint64
	destroyed bool
}

// New validates cfg, allocates the generator and produces the first map.
func New(cfg Config) (*Panel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	g := cfg.Geometry

	frag := cfg.Fragment
	if !frag.Valid() {
		frag = field.Adaptive(g.Width, g.Height)
	}

	gen, err := field.NewGenerator(g.Width, g.Height, cfg.generatorOptions()...)
	if err != nil {
		return nil, fmt.Errorf("panel: %w", err)
	}

	p := &Panel{
		cfg:      cfg,
		geom:     g,
		offset:   cfg.offset(),
		frag:     frag,
		gen:      gen,
		viewport: cfg.Viewport,
		pointer:  field.Vec2{X: 0.5, Y: 0.5},
	}

	if cfg.EnablePhysics {
		sim, err := physics.NewSim(cfg.Physics, float64(g.Width), float64(g.Height))
		if err != nil {
			gen.Release()
			return nil, fmt.Errorf("panel: %w", err)
		}
		p.sim = sim
		p.perturbed = p.perturb(frag)
	}

	p.clampPosition()
	p.layout.x, p.layout.y = p.geom.X, p.geom.Y
	p.regenerate()
	if frag.Animated {
		p.schedule()
	}
	return p, nil
}

// perturb wraps frag so the simulation adds its terms on top of it.
func (p *Panel) perturb(frag field.Fragment) field.Fragment {
	sim := p.sim
	return field.Custom(frag.Name+"+physics", func(uv field.Vec2, in field.Input) field.Vec2 {
		return sim.Perturb(uv, frag.Eval(uv, in), in.Time)
	}, frag.UsesPointer, frag.Animated)
}

// Geometry returns the current geometry, including the dragged position.
func (p *Panel) Geometry() Geometry { return p.geom }

// Position returns the top-left corner in screen pixels.
func (p *Panel) Position() (x, y float64) { return p.geom.X, p.geom.Y }

// Transform returns the drag offset from the layout position. Absolute and
// inline panels apply it as a translation without moving their layout box.
func (p *Panel) Transform() (dx, dy float64) {
	return p.geom.X - p.layout.x, p.geom.Y - p.layout.y
}

// Contains reports whether the screen point lies inside the panel.
func (p *Panel) Contains(x, y float64) bool { return p.geom.Contains(x, y) }

// Pointer returns the live normalized pointer.
func (p *Panel) Pointer() field.Vec2 { return p.pointer }

// Dragging reports whether a drag is in progress.
func (p *Panel) Dragging() bool { return p.dragging }

// Phase returns the physics phase, Idle for panels without physics.
func (p *Panel) Phase() physics.Phase {
	if p.sim == nil {
		return physics.Idle
	}
	return p.sim.Phase()
}

// Sim returns the physics simulation, or nil.
func (p *Panel) Sim() *physics.Sim { return p.sim }

// Fragment returns the base fragment.
func (p *Panel) Fragment() field.Fragment { return p.frag }

// Viewport returns the viewport the panel is clamped to.
func (p *Panel) Viewport() Size { return p.viewport }

// Time returns the seconds accumulated by Tick.
func (p *Panel) Time() float64 { return p.clock }

// Scheduled reports whether the panel currently wants frames.
func (p *Panel) Scheduled() bool { return p.scheduled }

// Destroyed reports whether Destroy has been called.
func (p *Panel) Destroyed() bool { return p.destroyed }

// Map returns the current displacement map. It is owned by the panel and
// replaced in place on regeneration.
func (p *Panel) Map() *field.Map { return p.gen.Map() }

// Version increments on every regeneration.
func (p *Panel) Version() uint64 { return p.version }

// Generations returns the number of full map regenerations.
func (p *Panel) Generations() uint64 { return p.gen.Generations() }

// SetFragment swaps the base fragment and regenerates.
func (p *Panel) SetFragment(f field.Fragment) error {
	if p.destroyed {
		return nil
	}
	if !f.Valid() {
		return ErrNoFragment
	}
	p.frag = f
	if p.sim != nil {
		p.perturbed = p.perturb(f)
	}
	p.regenerate()
	if f.Animated {
		p.schedule()
	}
	return nil
}

// Invalidate regenerates the map immediately.
func (p *Panel) Invalidate() {
	if p.destroyed {
		return
	}
	p.regenerate()
}

// Tick advances physics, inertia and animation by dt seconds and
// regenerates the map when needed. It returns whether the panel wants
// another frame; when it does not, the scheduler subscription is cancelled.
func (p *Panel) Tick(dt float64) bool {
	if p.destroyed {
		return false
	}
	if dt > 0 {
		p.clock += dt
	}

	moving := false
	if p.sim != nil && p.sim.Active() {
		moving = true
		p.sim.Step(dt)
		if !p.dragging && p.cfg.Physics.Inertia {
			p.glide(min(dt, physics.MaxStep))
		}
	}

	if moving || p.frag.Animated || p.dirty {
		p.regenerate()
	}

	if !p.wantsFrames() {
		p.cancel()
		return false
	}
	return true
}

// glide moves a released panel with its remaining velocity.
func (p *Panel) glide(dt float64) {
	if !(dt > 0) {
		return
	}
	v := p.sim.Velocity()
	if v.X == 0 && v.Y == 0 {
		return
	}
	x := p.geom.X + v.X*dt
	y := p.geom.Y + v.Y*dt
	if p.geom.Mode == ModeFixed {
		cx := clampAxis(x, float64(p.geom.Width), p.viewport.W, p.offset)
		cy := clampAxis(y, float64(p.geom.Height), p.viewport.H, p.offset)
		if p.cfg.Physics.Bounce && (cx != x || cy != y) {
			p.sim.Reflect(cx != x, cy != y)
		}
		x, y = cx, cy
	}
	p.geom.X, p.geom.Y = x, y
}

func (p *Panel) wantsFrames() bool {
	return p.frag.Animated || (p.sim != nil && p.sim.Active())
}

// input assembles the fragment input. While physics is active the lagging
// internal pointer replaces the live one.
func (p *Panel) input() field.Input {
	mouse := p.pointer
	if p.sim != nil && p.sim.Active() {
		mouse = p.sim.Pointer()
	}
	return field.Input{Mouse: mouse, Time: p.clock}
}

func (p *Panel) regenerate() {
	in := p.input()
	frag := p.frag
	if p.sim != nil && p.sim.Active() {
		frag = p.perturbed
	}
	p.gen.Generate(frag, in)
	p.lastInput = in
	p.dirty = false
	p.version++
}

func (p *Panel) schedule() {
	if p.scheduled || p.destroyed {
		return
	}
	p.scheduled = true
	if p.cfg.Scheduler != nil {
		p.cfg.Scheduler.Schedule(p)
	}
}

func (p *Panel) cancel() {
	if !p.scheduled {
		return
	}
	p.scheduled = false
	if p.cfg.Scheduler != nil {
		p.cfg.Scheduler.Cancel(p)
	}
}

// Destroy cancels the frame subscription and releases the map buffers.
func (p *Panel) Destroy() {
	if p.destroyed {
		return
	}
	p.cancel()
	p.dragging = false
	p.gen.Release()
	p.destroyed = true
}
