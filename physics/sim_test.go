package physics

import (
	"math"
	"testing"

	"github.com/phanxgames/liquidglass/field"
	"gonum.org/v1/gonum/spatial/r2"
)

const tick = 1.0 / 60

func newTestSim(t *testing.T, cfg Config) *Sim {
	t.Helper()
	s, err := NewSim(cfg, 300, 200)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	return s
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// Drag 50px over 100ms with the water preset, then release.
func TestScenarioWaterSettles(t *testing.T) {
	s := newTestSim(t, DefaultConfig())
	grab := field.Vec2{X: 0.5, Y: 0.5}
	s.Begin(grab)
	for i := 0; i < 6; i++ {
		s.Drag(50.0/6, 0, grab)
		if !s.Step(tick) {
			t.Fatal("dragging sim reported inactive")
		}
	}
	peak := r2.Norm(s.Velocity())
	if !approxEqual(peak, 500, 1e-6) {
		t.Fatalf("drag velocity = %v px/s, want 500", peak)
	}
	s.Release()
	if s.Phase() != Settling {
		t.Fatalf("phase after release = %v", s.Phase())
	}

	decayed := -1
	for i := 1; i <= 120; i++ {
		s.Step(tick)
		if r2.Norm(s.Velocity()) <= 0.01*peak {
			decayed = i
			break
		}
	}
	if decayed < 0 {
		t.Fatal("velocity did not decay to 1% within 120 ticks")
	}

	for i := 0; i < 240 && s.Active(); i++ {
		s.Step(tick)
	}
	if s.Phase() != Idle {
		f := s.Frame()
		t.Fatalf("sim did not settle: %+v", f)
	}
	f := s.Frame()
	if r2.Norm(r2.Sub(f.Pointer, f.Rest)) > s.Config().RestTolerance {
		t.Errorf("pointer %v not within tolerance of rest %v", f.Pointer, f.Rest)
	}
	if f.Ripples != 0 || f.Trail != 0 || f.Speed != 0 {
		t.Errorf("idle sim still has state: %+v", f)
	}
	if s.Step(tick) {
		t.Error("idle Step should report inactive")
	}
}

func TestDampeningDecayRate(t *testing.T) {
	s := newTestSim(t, Config{Params: Params{Dampening: 0.8}})
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	s.Drag(10, 0, field.Vec2{X: 0.5, Y: 0.5})
	s.Step(tick)
	v0 := s.Velocity().X
	s.Release()
	s.Step(tick)
	if !approxEqual(s.Velocity().X, v0*0.75, 1e-9) {
		t.Errorf("velocity after one tick = %v, want %v", s.Velocity().X, v0*0.75)
	}
	// Half a frame retains sqrt(0.75).
	s.Step(tick / 2)
	if !approxEqual(s.Velocity().X, v0*0.75*math.Sqrt(0.75), 1e-9) {
		t.Errorf("velocity after half tick = %v", s.Velocity().X)
	}
}

func TestStepClampsDt(t *testing.T) {
	s := newTestSim(t, DefaultConfig())
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	s.Step(0.5)
	if f := s.Frame(); !approxEqual(f.Time, MaxStep, 1e-12) {
		t.Errorf("clock advanced %v, want %v", f.Time, MaxStep)
	}
	s.Step(0)
	s.Step(-1)
	s.Step(math.NaN())
	if f := s.Frame(); f.Ticks != 1 {
		t.Errorf("non-positive dt integrated: ticks = %d", f.Ticks)
	}
}

func TestSpeedClamp(t *testing.T) {
	s := newTestSim(t, DefaultConfig())
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	s.Drag(1e6, 1e6, field.Vec2{X: 0.5, Y: 0.5})
	s.Step(tick)
	if n := r2.Norm(s.Velocity()); !approxEqual(n, DefaultMaxSpeed, 1e-6) {
		t.Errorf("speed = %v, want clamped to %v", n, DefaultMaxSpeed)
	}
}

func TestRippleCapKeepsNewest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRipples = 10
	s := newTestSim(t, cfg)
	for i := 0; i < 25; i++ {
		s.SpawnRipple(field.Vec2{X: float64(i), Y: 0}, 0.5)
		if n := len(s.Ripples()); n > 10 {
			t.Fatalf("after %d spawns len = %d", i+1, n)
		}
	}
	rs := s.Ripples()
	if len(rs) != 10 {
		t.Fatalf("len = %d, want 10", len(rs))
	}
	for i, r := range rs {
		if r.Origin.X != float64(15+i) {
			t.Errorf("ripple %d origin = %v, want %d", i, r.Origin.X, 15+i)
		}
	}
}

func TestRippleLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RippleLifetime = 0.5
	s := newTestSim(t, cfg)
	s.SpawnRipple(field.Vec2{X: 0.2, Y: 0.2}, 1)
	if s.Phase() != Settling {
		t.Fatalf("spawning on idle sim should start settling, got %v", s.Phase())
	}

	age, amp := 0.0, 1.0
	prevAge := -1.0
	for i := 0; i < 100; i++ {
		s.Step(tick)
		age += tick
		amp *= 0.98
		rs := s.Ripples()
		if age >= cfg.RippleLifetime {
			if len(rs) != 0 {
				t.Fatalf("ripple retained at age %v", age)
			}
			break
		}
		if len(rs) != 1 {
			t.Fatalf("ripple removed early at age %v", age)
		}
		if rs[0].Age <= prevAge {
			t.Fatalf("age did not increase: %v -> %v", prevAge, rs[0].Age)
		}
		prevAge = rs[0].Age
		if !approxEqual(rs[0].Amplitude, amp, 1e-12) {
			t.Fatalf("amplitude = %v, want %v", rs[0].Amplitude, amp)
		}
	}
	if s.Active() {
		t.Error("sim should go idle once the ripple expires")
	}
}

func TestTrailDecay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTrail = 3
	s := newTestSim(t, cfg)
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	for i := 0; i < 5; i++ {
		s.Drag(10, 0, field.Vec2{X: 0.5, Y: 0.5})
		s.Step(tick)
	}
	if n := len(s.Trail()); n != 3 {
		t.Fatalf("trail len = %d, want capped at 3", n)
	}
	s.Release()
	for i := 0; i < 40; i++ {
		s.Step(tick)
	}
	if n := len(s.Trail()); n != 0 {
		t.Errorf("trail len after decay = %d", n)
	}
}

func TestViscosityLag(t *testing.T) {
	run := func(p Params) float64 {
		s := newTestSim(t, Config{Params: p})
		s.Begin(field.Vec2{X: 0.5, Y: 0.5})
		s.Drag(0, 0, field.Vec2{X: 0.9, Y: 0.5})
		s.Step(tick)
		return s.Frame().Pointer.X
	}
	thin := run(Water)
	thick := run(Viscous)
	if !(thin > thick && thick > 0.5) {
		t.Errorf("internal pointer: water %v, viscous %v", thin, thick)
	}
}

func TestElasticSettleReturnsToRest(t *testing.T) {
	s := newTestSim(t, Config{Params: Jelly})
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	for i := 0; i < 10; i++ {
		s.Drag(0, 0, field.Vec2{X: 0.8, Y: 0.3})
		s.Step(tick)
	}
	f := s.Frame()
	if f.Elastic.X >= 0 || f.Elastic.Y <= 0 {
		t.Fatalf("elastic force %v should point back to rest", f.Elastic)
	}
	s.Release()
	for i := 0; i < 600 && s.Active(); i++ {
		s.Step(tick)
	}
	if s.Active() {
		t.Fatalf("did not settle: %+v", s.Frame())
	}
	if p := s.Pointer(); p.X != 0.5 || p.Y != 0.5 {
		t.Errorf("pointer = %v, want rest (0.5, 0.5)", p)
	}
}

func TestReflect(t *testing.T) {
	s := newTestSim(t, Config{Params: Bouncy})
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	s.Drag(10, -5, field.Vec2{X: 0.5, Y: 0.5})
	s.Step(tick)
	v := s.Velocity()
	s.Reflect(true, false)
	got := s.Velocity()
	if !approxEqual(got.X, -v.X*0.95, 1e-9) || got.Y != v.Y {
		t.Errorf("Reflect(x) = %v from %v", got, v)
	}
	s.Reflect(false, true)
	if got2 := s.Velocity(); !approxEqual(got2.Y, -v.Y*0.95, 1e-9) {
		t.Errorf("Reflect(y) = %v", got2)
	}
}

func TestPerturbIdleIsIdentity(t *testing.T) {
	s := newTestSim(t, DefaultConfig())
	base := field.Vec2{X: 0.31, Y: 0.72}
	if got := s.Perturb(field.Vec2{X: 0.3, Y: 0.7}, base, 1.5); got != base {
		t.Errorf("idle Perturb = %v, want %v", got, base)
	}
}

func TestPerturbWhileDragging(t *testing.T) {
	s := newTestSim(t, Config{Params: Oil, Seed: 7})
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	s.Drag(20, 0, field.Vec2{X: 0.5, Y: 0.5})
	s.Step(tick)

	uv := field.Vec2{X: 0.45, Y: 0.5}
	got := s.Perturb(uv, uv, 0.1)
	if got == uv {
		t.Fatal("moving sim should perturb the field")
	}
	if again := s.Perturb(uv, uv, 0.1); again != got {
		t.Errorf("Perturb not deterministic: %v vs %v", got, again)
	}
	if math.Abs(got.X-uv.X) > 0.1 || math.Abs(got.Y-uv.Y) > 0.1 {
		t.Errorf("perturbation too large: %v", got)
	}
}

func TestSeedDeterminism(t *testing.T) {
	run := func() []Ripple {
		s := newTestSim(t, Config{Params: Jelly, Seed: 42})
		for i := 0; i < 4; i++ {
			s.SpawnRipple(field.Vec2{X: 0.1 * float64(i), Y: 0.5}, 0.3)
		}
		s.Step(tick)
		return s.Ripples()
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ripple %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].Frequency < 8 || a[i].Frequency >= 12 {
			t.Errorf("frequency %v outside [8, 12)", a[i].Frequency)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Idle.String() != "idle" || Dragging.String() != "dragging" || Settling.String() != "settling" {
		t.Error("unexpected phase names")
	}
}

func BenchmarkPerturb(b *testing.B) {
	s, _ := NewSim(Config{Params: Jelly}, 300, 200)
	s.Begin(field.Vec2{X: 0.5, Y: 0.5})
	for i := 0; i < 10; i++ {
		s.Drag(30, 10, field.Vec2{X: 0.5, Y: 0.5})
		s.Step(tick)
	}
	uv := field.Vec2{X: 0.3, Y: 0.6}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Perturb(uv, uv, 1)
	}
}
