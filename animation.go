package liquidglass

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 values on a Glass simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenStrength,
// TweenTint) and call Update(dt) each frame. The group applies the values to
// the glass after every step. If the glass is destroyed, the group stops
// immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v *[4]float64)
	target *Glass
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target. If the glass has been destroyed, Done is set to true and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.panel.Destroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(&g.values)
}

// TweenPosition creates a TweenGroup that moves the glass to (toX, toY). The
// panel's clamping applies at every step, and steps taken while the user
// drags the glass are dropped.
func TweenPosition(glass *Glass, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	x, y := glass.panel.Position()
	g := &TweenGroup{count: 2, target: glass}
	g.tweens[0] = gween.New(float32(x), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(y), float32(toY), duration, fn)
	g.apply = func(v *[4]float64) { glass.panel.MoveTo(v[0], v[1]) }
	return g
}

// TweenStrength creates a TweenGroup that animates the displacement strength.
// A degraded glass has no displacement filter and the group finishes at once.
func TweenStrength(glass *Glass, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: glass}
	d := glass.disp
	if d == nil {
		g.Done = true
		return g
	}
	g.tweens[0] = gween.New(float32(d.Strength), float32(to), duration, fn)
	g.apply = func(v *[4]float64) { d.Strength = v[0] }
	return g
}

// TweenTint creates a TweenGroup that animates the glass tint.
func TweenTint(glass *Glass, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := glass.Tint
	g := &TweenGroup{count: 4, target: glass}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = func(v *[4]float64) { glass.Tint = Color{v[0], v[1], v[2], v[3]} }
	return g
}
