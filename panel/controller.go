package panel

import "github.com/phanxgames/liquidglass/field"

// PointerDown starts a drag when the panel is draggable and the screen
// point lies inside it. Gestures with more than one touch are ignored.
func (p *Panel) PointerDown(x, y float64, touches int) bool {
	if p.destroyed || touches > 1 || !p.cfg.Draggable || !p.geom.Contains(x, y) {
		return false
	}
	p.dragging = true
	p.dragPos = field.Vec2{X: p.geom.X, Y: p.geom.Y}
	p.dragStart = field.Vec2{X: x, Y: y}
	p.setPointer(x, y)
	if p.sim != nil {
		p.sim.Begin(p.pointer)
		p.schedule()
	}
	return true
}

// PointerMove follows the pointer. While dragging the panel moves by the
// pointer's travel since PointerDown; fixed panels are clamped into the
// viewport. The normalized pointer is updated in every case so hover-driven
// fragments react without a drag.
func (p *Panel) PointerMove(x, y float64, touches int) {
	if p.destroyed || touches > 1 {
		return
	}
	if p.dragging {
		nx := p.dragPos.X + (x - p.dragStart.X)
		ny := p.dragPos.Y + (y - p.dragStart.Y)
		if p.geom.Mode == ModeFixed {
			nx = clampAxis(nx, float64(p.geom.Width), p.viewport.W, p.offset)
			ny = clampAxis(ny, float64(p.geom.Height), p.viewport.H, p.offset)
		}
		dx, dy := nx-p.geom.X, ny-p.geom.Y
		p.geom.X, p.geom.Y = nx, ny
		p.setPointer(x, y)
		if p.sim != nil {
			p.sim.Drag(dx, dy, p.pointer)
			return
		}
	} else {
		p.setPointer(x, y)
	}

	if !p.frag.UsesPointer || p.sim != nil && p.sim.Active() {
		return
	}
	if p.lastInput.Mouse == p.pointer {
		return
	}
	if p.scheduled {
		p.dirty = true
		return
	}
	p.regenerate()
}

// PointerUp ends a drag. Physics panels start settling; others just stop.
func (p *Panel) PointerUp() {
	if p.destroyed || !p.dragging {
		return
	}
	p.dragging = false
	if p.sim != nil {
		p.sim.Release()
		p.schedule()
	}
}

// Resize updates the viewport and re-clamps fixed panels into it.
func (p *Panel) Resize(w, h float64) {
	if p.destroyed {
		return
	}
	p.viewport = Size{W: w, H: h}
	p.clampPosition()
}

func (p *Panel) clampPosition() {
	if p.geom.Mode != ModeFixed {
		return
	}
	p.geom.X = clampAxis(p.geom.X, float64(p.geom.Width), p.viewport.W, p.offset)
	p.geom.Y = clampAxis(p.geom.Y, float64(p.geom.Height), p.viewport.H, p.offset)
}

func (p *Panel) setPointer(x, y float64) {
	p.pointer.X, p.pointer.Y = p.geom.Normalize(x, y)
}

// MoveTo places the panel at (x, y), clamped like a drag. It is ignored
// while the user is dragging.
func (p *Panel) MoveTo(x, y float64) {
	if p.destroyed || p.dragging {
		return
	}
	p.geom.X, p.geom.Y = x, y
	p.clampPosition()
}

// SpawnRipple starts a ripple at the normalized point at and wakes the
// panel so it plays out. Panels without physics ignore it.
func (p *Panel) SpawnRipple(at field.Vec2, intensity float64) {
	if p.destroyed || p.sim == nil {
		return
	}
	p.sim.SpawnRipple(at, intensity)
	p.schedule()
}
