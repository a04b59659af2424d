package field

import "math"

// lensFragment builds the rounded-rect lens shared by the bundled presets.
// A tighter threshold gives a sharper falloff at the glass edge.
func lensFragment(name string, hw, hh, radius, threshold, bias float64) Fragment {
	return Fragment{
		Name: name,
		Eval: func(uv Vec2, _ Input) Vec2 {
			ix := uv.X - 0.5
			iy := uv.Y - 0.5
			d := RoundedRectSDF(ix, iy, hw, hh, radius)
			displacement := SmoothStep(threshold, 0, d-bias)
			scaled := SmoothStep(0, 1, displacement)
			return Texture(ix*scaled+0.5, iy*scaled+0.5)
		},
	}
}

// Bundled lens presets.
var (
	// Default is the balanced liquid lens.
	Default = lensFragment("default", 0.3, 0.2, 0.6, 0.8, 0.15)
	// Strong has a tighter threshold and a sharper falloff.
	Strong = lensFragment("strong", 0.25, 0.15, 0.5, 0.7, 0.1)
	// Subtle has a wider threshold and a gentler falloff.
	Subtle = lensFragment("subtle", 0.35, 0.25, 0.7, 0.9, 0.05)
	// Interactive is Default with the lens edge pulled out and the
	// magnification raised near the pointer.
	Interactive = Fragment{
		Name:        "interactive",
		Eval:        interactiveEval,
		UsesPointer: true,
	}
)

func interactiveEval(uv Vec2, in Input) Vec2 {
	ix := uv.X - 0.5
	iy := uv.Y - 0.5
	influence := SmoothStep(0.3, 0, Length(uv.X-in.Mouse.X, uv.Y-in.Mouse.Y)) * 0.5
	d := RoundedRectSDF(ix, iy, 0.3, 0.2, 0.6)
	displacement := SmoothStep(0.8, 0, d-0.15-influence)
	scaled := SmoothStep(0, 1, displacement) * (1 + influence)
	return Texture(ix*scaled+0.5, iy*scaled+0.5)
}

// Adaptive returns a lens whose rounded rectangle follows the aspect ratio of
// a w×h panel. Panels created with a zero corner radius use it.
func Adaptive(w, h int) Fragment {
	aspect := float64(w) / float64(h)
	radius := math.Min(float64(w), float64(h)) * 0.0025
	hw, hh := 0.4, 0.4
	if aspect > 1 {
		hh = 0.4 / aspect
	} else {
		hw = 0.4 * aspect
	}
	return lensFragment("adaptive", hw, hh, radius, 0.8, 0.15)
}

// --- Animated presets ---

// Wave ripples the lens edge with a travelling sine wave.
var Wave = Fragment{
	Name:     "wave",
	Animated: true,
	Eval: func(uv Vec2, in Input) Vec2 {
		ix := uv.X - 0.5
		iy := uv.Y - 0.5
		wave := math.Sin(in.Time*3+ix*10) * 0.02
		d := Length(ix, iy) - 0.3
		displacement := clamp01((0.8-d)/0.8) + wave
		scaled := displacement * 0.5
		return Texture(ix*scaled+0.5, iy*scaled+0.5)
	},
}

// Liquid is a rounder drop whose edge wobbles with surface tension and
// whose magnification breathes slowly.
var Liquid = Fragment{
	Name:     "liquid",
	Animated: true,
	Eval: func(uv Vec2, in Input) Vec2 {
		ix := uv.X - 0.5
		iy := uv.Y - 0.5
		t := in.Time * 2
		d := RoundedRectSDF(ix, iy, 0.25, 0.18, 0.8)
		tension := math.Sin(t+ix*6)*0.02 + math.Cos(t*1.3+iy*4)*0.015
		refraction := SmoothStep(0.7, 0, d-0.1+tension)
		scaled := SmoothStep(0, 1, refraction) * (1.2 + math.Sin(t*0.8)*0.1)
		return Texture(ix*scaled+0.5, iy*scaled+0.5)
	},
}

// Pulse breathes a radial magnification in and out.
var Pulse = Fragment{
	Name:     "pulse",
	Animated: true,
	Eval: func(uv Vec2, in Input) Vec2 {
		ix := uv.X - 0.5
		iy := uv.Y - 0.5
		pulse := (math.Sin(in.Time*5) + 1) * 0.5
		d := Length(ix, iy)
		displacement := math.Max(0, (0.5-d)/0.5) * pulse * 0.1
		return Texture(ix*(1+displacement)+0.5, iy*(1+displacement)+0.5)
	},
}

// Rotate slowly twists the lens around the panel center.
var Rotate = Fragment{
	Name:     "rotate",
	Animated: true,
	Eval: func(uv Vec2, in Input) Vec2 {
		ix := uv.X - 0.5
		iy := uv.Y - 0.5
		c := math.Cos(in.Time)
		s := math.Sin(in.Time)
		rx := ix*c - iy*s
		ry := ix*s + iy*c
		d := Length(rx, ry) - 0.3
		displacement := clamp01((0.8 - d) / 0.8)
		return Texture(rx*displacement+0.5, ry*displacement+0.5)
	},
}

// Magnetic pulls the backdrop toward the pointer.
var Magnetic = Fragment{
	Name:        "magnetic",
	UsesPointer: true,
	Eval: func(uv Vec2, in Input) Vec2 {
		ix := uv.X - 0.5
		iy := uv.Y - 0.5
		dx := ix - (in.Mouse.X - 0.5)
		dy := iy - (in.Mouse.Y - 0.5)
		attraction := math.Max(0, (0.3-Length(dx, dy))/0.3) * 0.1
		return Texture(ix-dx*attraction+0.5, iy-dy*attraction+0.5)
	},
}

// --- Registry ---

var presetOrder = []Fragment{Default, Strong, Subtle, Interactive, Liquid, Wave, Pulse, Rotate, Magnetic}

// Preset looks up a bundled fragment by name.
func Preset(name string) (Fragment, bool) {
	for _, f := range presetOrder {
		if f.Name == name {
			return f, true
		}
	}
	return Fragment{}, false
}

// PresetNames lists the bundled fragment names in display order.
func PresetNames() []string {
	names := make([]string, len(presetOrder))
	for i, f := range presetOrder {
		names[i] = f.Name
	}
	return names
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
