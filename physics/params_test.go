package physics

import (
	"errors"
	"math"
	"testing"
)

func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		want Params
	}{
		{"water", Params{0.3, 0.8, 0.5, 0.1, 0.4}},
		{"jelly", Params{0.8, 0.4, 0.3, 0.6, 0.7}},
		{"oil", Params{0.2, 0.9, 0.2, 0.8, 0.2}},
		{"bouncy", Params{0.95, 0.2, 0.6, 0.2, 0.5}},
		{"viscous", Params{0.1, 0.95, 0.1, 0.95, 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Preset(tt.name)
			if !ok {
				t.Fatal("preset missing")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
	if _, ok := Preset("honey"); ok {
		t.Error("unknown preset should not resolve")
	}
	names := PresetNames()
	if len(names) != 5 || names[0] != "bouncy" || names[4] != "water" {
		t.Errorf("PresetNames = %v", names)
	}
}

func TestParamsClamped(t *testing.T) {
	p := Params{Elasticity: -1, Dampening: 2, RippleIntensity: math.NaN(), Viscosity: 0.4, SurfaceTension: 1}
	got := p.Clamped()
	want := Params{Elasticity: 0, Dampening: 1, RippleIntensity: 0, Viscosity: 0.4, SurfaceTension: 1}
	if got != want {
		t.Errorf("Clamped = %+v, want %+v", got, want)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero limits", func(c *Config) { *c = Config{Params: Jelly} }, true},
		{"out of range params", func(c *Config) { c.Elasticity = 3 }, true},
		{"nan param", func(c *Config) { c.Viscosity = math.NaN() }, false},
		{"inf speed", func(c *Config) { c.MaxSpeed = math.Inf(1) }, false},
		{"negative ripples", func(c *Config) { c.MaxRipples = -1 }, false},
		{"negative trail", func(c *Config) { c.MaxTrail = -5 }, false},
		{"negative lifetime", func(c *Config) { c.RippleLifetime = -1 }, false},
		{"negative tolerance", func(c *Config) { c.RestTolerance = -0.1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigDefaultsApplied(t *testing.T) {
	s, err := NewSim(Config{Params: Params{Elasticity: 5}}, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	c := s.Config()
	if c.MaxRipples != DefaultMaxRipples || c.MaxTrail != DefaultMaxTrail {
		t.Errorf("limits = %d/%d", c.MaxRipples, c.MaxTrail)
	}
	if c.RippleLifetime != DefaultRippleLifetime || c.MaxSpeed != DefaultMaxSpeed {
		t.Errorf("lifetime/speed = %v/%v", c.RippleLifetime, c.MaxSpeed)
	}
	if c.Elasticity != 1 {
		t.Errorf("Elasticity = %v, want clamped to 1", c.Elasticity)
	}
}

func TestNewSimRejectsBadSize(t *testing.T) {
	if _, err := NewSim(DefaultConfig(), 0, 10); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v", err)
	}
}
