package physics

import "sort"

// Params is a bundle of physical material parameters. Each value is normally
// in [0, 1].
type Params struct {
	// Elasticity drives the settle spring, the elastic force and how much
	// velocity survives a bounce.
	Elasticity float64
	// Dampening controls how fast velocity decays after release.
	Dampening float64
	// RippleIntensity is the strength of ripples spawned by interaction.
	RippleIntensity float64
	// Viscosity controls how far the internal pointer lags behind the real
	// one. Above 0.5 it also adds a small jitter.
	Viscosity float64
	// SurfaceTension scales the travelling surface waves.
	SurfaceTension float64
}

// Clamped returns p with every value clamped to [0, 1]. NaN becomes 0.
func (p Params) Clamped() Params {
	return Params{
		Elasticity:      unit(p.Elasticity),
		Dampening:       unit(p.Dampening),
		RippleIntensity: unit(p.RippleIntensity),
		Viscosity:       unit(p.Viscosity),
		SurfaceTension:  unit(p.SurfaceTension),
	}
}

func unit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Material presets.
var (
	Water   = Params{Elasticity: 0.3, Dampening: 0.8, RippleIntensity: 0.5, Viscosity: 0.1, SurfaceTension: 0.4}
	Jelly   = Params{Elasticity: 0.8, Dampening: 0.4, RippleIntensity: 0.3, Viscosity: 0.6, SurfaceTension: 0.7}
	Oil     = Params{Elasticity: 0.2, Dampening: 0.9, RippleIntensity: 0.2, Viscosity: 0.8, SurfaceTension: 0.2}
	Bouncy  = Params{Elasticity: 0.95, Dampening: 0.2, RippleIntensity: 0.6, Viscosity: 0.2, SurfaceTension: 0.5}
	Viscous = Params{Elasticity: 0.1, Dampening: 0.95, RippleIntensity: 0.1, Viscosity: 0.95, SurfaceTension: 0.1}
)

var presets = map[string]Params{
	"water":   Water,
	"jelly":   Jelly,
	"oil":     Oil,
	"bouncy":  Bouncy,
	"viscous": Viscous,
}

// Preset looks up a material preset by name.
func Preset(name string) (Params, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the preset names in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
