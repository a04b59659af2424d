package field

import (
	"math"
	"testing"
)

var center = Vec2{0.5, 0.5}

func TestPresetsNoDisplacementAtCenter(t *testing.T) {
	for _, name := range PresetNames() {
		f, ok := Preset(name)
		if !ok {
			t.Fatalf("Preset(%q) missing", name)
		}
		if f.Animated {
			continue
		}
		t.Run(name, func(t *testing.T) {
			got := f.Eval(center, Input{Mouse: center})
			if math.Abs(got.X-0.5) > epsilon || math.Abs(got.Y-0.5) > epsilon {
				t.Errorf("Eval(center) = %v, want (0.5, 0.5)", got)
			}
		})
	}
}

func TestAnimatedPresetsCenterStable(t *testing.T) {
	for _, f := range []Fragment{Liquid, Wave, Pulse, Rotate} {
		for _, tm := range []float64{0, 0.37, 2.5} {
			got := f.Eval(center, Input{Time: tm})
			if math.Abs(got.X-0.5) > epsilon || math.Abs(got.Y-0.5) > epsilon {
				t.Errorf("%s at t=%v: Eval(center) = %v, want (0.5, 0.5)", f.Name, tm, got)
			}
		}
	}
}

func TestPresetCapabilities(t *testing.T) {
	tests := []struct {
		f           Fragment
		usesPointer bool
		animated    bool
	}{
		{Default, false, false},
		{Strong, false, false},
		{Subtle, false, false},
		{Interactive, true, false},
		{Magnetic, true, false},
		{Liquid, false, true},
		{Wave, false, true},
		{Pulse, false, true},
		{Rotate, false, true},
	}
	for _, tt := range tests {
		if tt.f.UsesPointer != tt.usesPointer || tt.f.Animated != tt.animated {
			t.Errorf("%s: UsesPointer=%v Animated=%v, want %v %v",
				tt.f.Name, tt.f.UsesPointer, tt.f.Animated, tt.usesPointer, tt.animated)
		}
	}
}

func TestStrongBendsMoreThanSubtle(t *testing.T) {
	uv := Vec2{0.9, 0.5}
	strong := math.Abs(Strong.Eval(uv, Input{}).X - uv.X)
	subtle := math.Abs(Subtle.Eval(uv, Input{}).X - uv.X)
	if strong <= subtle {
		t.Errorf("strong offset %v should exceed subtle offset %v near the edge", strong, subtle)
	}
}

func TestInteractiveFollowsPointer(t *testing.T) {
	uv := Vec2{0.3, 0.4}
	away := Interactive.Eval(uv, Input{Mouse: Vec2{0.95, 0.95}})
	near := Interactive.Eval(uv, Input{Mouse: Vec2{0.35, 0.4}})
	if away == near {
		t.Error("interactive fragment should change with the pointer")
	}
	base := Default.Eval(uv, Input{})
	if away != base {
		t.Errorf("far pointer should leave the default lens untouched: %v vs %v", away, base)
	}
}

func TestInteractiveMagnifiesNearPointer(t *testing.T) {
	mouse := Vec2{0.7, 0.6}
	tests := []struct {
		uv   Vec2
		want Vec2
	}{
		// Under the pointer the lens is saturated and scaled by 1.5.
		{Vec2{0.7, 0.6}, Vec2{0.8, 0.65}},
		{Vec2{0.8, 0.5}, Vec2{0.88143, 0.5}},
		{center, center},
	}
	for _, tt := range tests {
		got := Interactive.Eval(tt.uv, Input{Mouse: mouse})
		if math.Abs(got.X-tt.want.X) > 1e-4 || math.Abs(got.Y-tt.want.Y) > 1e-4 {
			t.Errorf("Interactive(%v, mouse %v) = %v, want %v", tt.uv, mouse, got, tt.want)
		}
	}
}

func TestLiquidBreathes(t *testing.T) {
	uv := Vec2{0.7, 0.6}
	got := Liquid.Eval(uv, Input{})
	want := Vec2{0.72511, 0.61256}
	if math.Abs(got.X-want.X) > 1e-3 || math.Abs(got.Y-want.Y) > 1e-3 {
		t.Errorf("Liquid(%v, t=0) = %v, want %v", uv, got, want)
	}
	if later := Liquid.Eval(uv, Input{Time: 1}); later == got {
		t.Error("liquid fragment should change over time")
	}
}

func TestAdaptiveFollowsAspect(t *testing.T) {
	wide := Adaptive(400, 100)
	tall := Adaptive(100, 400)
	// A point near the horizontal edge is bent by the wide lens less than
	// by the tall one, whose rectangle is narrow.
	uv := Vec2{0.8, 0.5}
	dw := math.Abs(wide.Eval(uv, Input{}).X - uv.X)
	dt := math.Abs(tall.Eval(uv, Input{}).X - uv.X)
	if dw == dt {
		t.Errorf("adaptive lenses should differ by aspect: %v == %v", dw, dt)
	}
	if got := wide.Eval(center, Input{}); got != center {
		t.Errorf("adaptive center = %v, want %v", got, center)
	}
}

func TestPresetUnknown(t *testing.T) {
	if _, ok := Preset("does-not-exist"); ok {
		t.Error("unknown preset should not be found")
	}
}

func TestPresetNamesOrder(t *testing.T) {
	names := PresetNames()
	want := []string{"default", "strong", "subtle", "interactive", "liquid"}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("PresetNames()[%d] = %q, want %q", i, names[i], w)
		}
	}
}

func TestCustomFragment(t *testing.T) {
	f := Custom("shift", func(uv Vec2, _ Input) Vec2 { return uv.Add(Vec2{0.1, 0}) }, true, true)
	if !f.Valid() || !f.UsesPointer || !f.Animated || f.Name != "shift" {
		t.Errorf("Custom produced %+v", f)
	}
	if (Fragment{}).Valid() {
		t.Error("zero Fragment should not be valid")
	}
}
