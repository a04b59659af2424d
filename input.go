package liquidglass

import "github.com/hajimehoshi/ebiten/v2"

// pointer 0 = mouse, 1 = primary touch. Additional touches are counted but
// never tracked: a multi-touch gesture is passed through to the panels,
// which ignore it.
const maxPointers = 2

type pointerState struct {
	down           bool
	startX, startY float64
	lastX, lastY   float64
	target         *Glass // glass being dragged by this pointer
	hover          *Glass
}

type interactionHandler struct {
	id uint32
	fn func(InteractionEvent)
}

type handlerRegistry struct {
	handlers []interactionHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered host-level callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			h.reg.handlers = append(s[:i], s[i+1:]...)
			return
		}
	}
}

// OnInteraction registers fn for every interaction event on any glass.
func (h *Host) OnInteraction(fn func(InteractionEvent)) CallbackHandle {
	h.handlers.nextID++
	id := h.handlers.nextID
	h.handlers.handlers = append(h.handlers.handlers, interactionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &h.handlers}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Host.Update to route mouse and touch input.
// Injected events take precedence over real input for the frame.
func (h *Host) processInput() {
	mods := readModifiers()
	if h.processInjectedInput(mods) {
		return
	}
	h.processMousePointer(mods)
	h.processTouchPointers(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (h *Host) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	h.processPointer(0, float64(mx), float64(my), pressed, 1, mods)
}

// processTouchPointers handles touch input (pointer 1). The first touch is
// followed until it lifts; the total count is forwarded so panels can
// reject multi-touch gestures.
func (h *Host) processTouchPointers(mods KeyModifiers) {
	ids := ebiten.AppendTouchIDs(h.prevTouchIDs[:0])
	h.prevTouchIDs = ids

	ps := &h.pointers[1]
	if len(ids) == 0 {
		if ps.down {
			h.processPointer(1, ps.lastX, ps.lastY, false, 1, mods)
		}
		return
	}

	tid := ids[0]
	if ps.down {
		for _, id := range ids {
			if id == h.touchID {
				tid = id
				break
			}
		}
	}
	h.touchID = tid
	tx, ty := ebiten.TouchPosition(tid)
	h.processPointer(1, float64(tx), float64(ty), true, len(ids), mods)
}

// glassAt returns the topmost visible glass containing (x, y).
func (h *Host) glassAt(x, y float64) *Glass {
	for i := len(h.glasses) - 1; i >= 0; i-- {
		g := h.glasses[i]
		if g.Visible && g.panel.Contains(x, y) {
			return g
		}
	}
	return nil
}

// processPointer runs the pointer state machine for a single pointer.
func (h *Host) processPointer(pointerID int, x, y float64, pressed bool, touches int, mods KeyModifiers) {
	ps := &h.pointers[pointerID]
	hover := h.glassAt(x, y)

	switch {
	case pressed && !ps.down:
		// A touch lands without a preceding hover.
		if x != ps.lastX || y != ps.lastY {
			for _, g := range h.glasses {
				g.panel.PointerMove(x, y, touches)
			}
		}
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.target = nil
		if hover != nil {
			h.emit(EventPointerDown, hover, x, y, ps, mods)
		}
		// Only the topmost glass under the pointer may start a drag.
		if hover != nil && hover.panel.PointerDown(x, y, touches) {
			ps.target = hover
			h.emit(EventDragStart, hover, x, y, ps, mods)
		}

	case !pressed && ps.down:
		if ps.target != nil {
			ps.target.panel.PointerUp()
			h.emit(EventDragEnd, ps.target, x, y, ps, mods)
		}
		up := ps.target
		if up == nil {
			up = hover
		}
		if up != nil {
			h.emit(EventPointerUp, up, x, y, ps, mods)
		}
		ps.down = false
		ps.target = nil
		ps.lastX, ps.lastY = x, y

	case x != ps.lastX || y != ps.lastY:
		for _, g := range h.glasses {
			g.panel.PointerMove(x, y, touches)
		}
		switch {
		case ps.target != nil && ps.target.panel.Dragging():
			h.emit(EventDrag, ps.target, x, y, ps, mods)
		case !ps.down && hover != nil:
			h.emit(EventPointerMove, hover, x, y, ps, mods)
		}
		ps.lastX, ps.lastY = x, y
	}
	ps.hover = hover
}

// emit dispatches an event to the registered handlers and the ECS bridge.
// ps may be nil for events not tied to a pointer.
func (h *Host) emit(typ EventType, g *Glass, x, y float64, ps *pointerState, mods KeyModifiers) {
	px, py := g.panel.Position()
	geom := g.panel.Geometry()
	evt := InteractionEvent{
		Type:      typ,
		EntityID:  g.EntityID,
		Glass:     g.Name,
		GlobalX:   x,
		GlobalY:   y,
		LocalX:    (x - px) / float64(geom.Width),
		LocalY:    (y - py) / float64(geom.Height),
		PanelX:    px,
		PanelY:    py,
		Modifiers: mods,
	}
	if ps != nil {
		evt.StartX, evt.StartY = ps.startX, ps.startY
		evt.DeltaX, evt.DeltaY = x-ps.lastX, y-ps.lastY
	}

	for _, hd := range h.handlers.handlers {
		hd.fn(evt)
	}
	if h.store != nil && g.EntityID != 0 {
		h.store.EmitEvent(evt)
	}
}
