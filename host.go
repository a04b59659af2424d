package liquidglass

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/liquidglass/panel"
	"github.com/phanxgames/liquidglass/physics"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Host, interaction events of glasses with a non-zero EntityID
// are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for handlers and the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	Glass    string
	// GlobalX, GlobalY is the pointer in screen pixels.
	GlobalX float64
	GlobalY float64
	// LocalX, LocalY is the pointer normalized to the glass bounds.
	LocalX float64
	LocalY float64
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
	// PanelX, PanelY is the glass position after the event.
	PanelX    float64
	PanelY    float64
	Modifiers KeyModifiers
}

// Host owns a set of glasses, drives their frames and routes pointer input
// to them. It implements ebiten.Game and panel.Scheduler.
type Host struct {
	glasses  []*Glass
	byPanel  map[*panel.Panel]*Glass
	active   []*panel.Panel
	viewport panel.Size

	updateFn   func() error
	backdropFn func(*ebiten.Image)
	backdrop   *ebiten.Image
	imgOp      ebiten.DrawImageOptions

	store         EntityStore
	debug         bool
	degradeLogged bool
	stats         debugStats

	// ShowStats draws an FPS and glass counter in the top-left corner.
	ShowStats bool
	overlay   statsOverlay

	// Input state
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	touchID      ebiten.TouchID
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent

	// Automated testing
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// NewHost creates a host for a viewport of w×h pixels. Layout updates the
// viewport when the window size changes.
func NewHost(w, h float64) *Host {
	return &Host{
		byPanel:       make(map[*panel.Panel]*Glass),
		viewport:      panel.Size{W: w, H: h},
		ScreenshotDir: "screenshots",
	}
}

// NewGlass creates a panel from cfg and attaches it to the host. The host
// becomes the panel's scheduler, and a zero cfg.Viewport is replaced by the
// host viewport.
func (h *Host) NewGlass(cfg panel.Config) (*Glass, error) {
	cfg.Scheduler = h
	if cfg.Viewport == (panel.Size{}) {
		cfg.Viewport = h.viewport
	}
	p, err := panel.New(cfg)
	if err != nil {
		return nil, err
	}
	g := newGlass(h, p)
	h.glasses = append(h.glasses, g)
	h.byPanel[p] = g
	if g.degraded && !h.degradeLogged {
		h.degradeLogged = true
		h.logf("displacement filter unavailable, using blur fallback: %v", ProbeDisplacement())
	}
	return g, nil
}

// Glasses returns the attached glasses in draw order. The returned slice
// MUST NOT be mutated.
func (h *Host) Glasses() []*Glass {
	return h.glasses
}

// BringToFront moves g to the end of the draw order.
func (h *Host) BringToFront(g *Glass) {
	for i, q := range h.glasses {
		if q == g {
			copy(h.glasses[i:], h.glasses[i+1:])
			h.glasses[len(h.glasses)-1] = g
			return
		}
	}
}

func (h *Host) removeGlass(g *Glass) {
	for i, q := range h.glasses {
		if q == g {
			h.glasses = append(h.glasses[:i], h.glasses[i+1:]...)
			break
		}
	}
	delete(h.byPanel, g.panel)
	h.Cancel(g.panel)
	for i := range h.pointers {
		ps := &h.pointers[i]
		if ps.target == g {
			ps.target = nil
		}
		if ps.hover == g {
			ps.hover = nil
		}
	}
}

// Schedule implements panel.Scheduler.
func (h *Host) Schedule(p *panel.Panel) {
	for _, q := range h.active {
		if q == p {
			return
		}
	}
	h.active = append(h.active, p)
}

// Cancel implements panel.Scheduler.
func (h *Host) Cancel(p *panel.Panel) {
	for i, q := range h.active {
		if q == p {
			h.active = append(h.active[:i], h.active[i+1:]...)
			return
		}
	}
}

// ActivePanels returns the number of panels currently receiving frames.
func (h *Host) ActivePanels() int {
	return len(h.active)
}

// Viewport returns the current viewport size.
func (h *Host) Viewport() panel.Size {
	return h.viewport
}

// Resize changes the viewport and re-clamps every glass.
func (h *Host) Resize(w, hh float64) {
	if h.viewport.W == w && h.viewport.H == hh {
		return
	}
	h.viewport = panel.Size{W: w, H: hh}
	for _, g := range h.glasses {
		g.panel.Resize(w, hh)
	}
}

// SetBackdrop sets the function that paints the scene behind the glasses.
// It is called once per Draw with a screen-sized, cleared image.
func (h *Host) SetBackdrop(fn func(*ebiten.Image)) {
	h.backdropFn = fn
}

// SetBackdropImage paints img stretched over the whole viewport as the
// backdrop.
func (h *Host) SetBackdropImage(img *ebiten.Image) {
	if img == nil {
		h.backdropFn = nil
		return
	}
	var op ebiten.DrawImageOptions
	h.backdropFn = func(dst *ebiten.Image) {
		sb, db := img.Bounds(), dst.Bounds()
		op.GeoM.Reset()
		op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, &op)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (h *Host) SetEntityStore(store EntityStore) {
	h.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats and fallback warnings are logged to stderr.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// SetUpdateFunc sets a callback run at the start of every Update. An error
// stops the game loop.
func (h *Host) SetUpdateFunc(fn func() error) {
	h.updateFn = fn
}

// Update processes input and advances every scheduled panel by one tick.
func (h *Host) Update() error {
	if h.updateFn != nil {
		if err := h.updateFn(); err != nil {
			return err
		}
	}
	h.update(frameDT(ebiten.TPS()))
	return nil
}

// frameDT returns the step for one Update at tps ticks per second.
// SyncWithFPS reports a negative TPS; a 60 Hz step is assumed then.
func frameDT(tps int) float64 {
	if tps <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(tps)
}

func (h *Host) update(dt float64) {
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	if h.testRunner != nil {
		h.testRunner.step(h)
	}
	h.processInput()

	if h.debug {
		h.stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	h.stats.regenerations = h.tick(dt)

	if h.debug {
		h.stats.tickTime = time.Since(t0)
		h.stats.glasses = len(h.glasses)
		h.stats.active = len(h.active)
		h.debugLog(h.stats)
	}
}

// tick advances the scheduled panels and returns how many maps were
// regenerated. Physics, then regeneration, then upload at the next Draw.
func (h *Host) tick(dt float64) int {
	if len(h.active) == 0 {
		return 0
	}
	// Copy: Tick cancels panels that come to rest.
	panels := append([]*panel.Panel(nil), h.active...)
	regen := 0
	for _, p := range panels {
		v := p.Version()
		moving := p.Phase() != physics.Idle
		p.Tick(dt)
		if moving && p.Phase() == physics.Idle {
			if g := h.byPanel[p]; g != nil {
				x, y := p.Position()
				h.emit(EventSettle, g, x, y, nil, 0)
			}
		}
		if p.Version() != v {
			regen++
		}
	}
	return regen
}

// Draw paints the backdrop and every visible glass onto screen.
func (h *Host) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if h.backdrop == nil || h.backdrop.Bounds().Dx() != b.Dx() || h.backdrop.Bounds().Dy() != b.Dy() {
		if h.backdrop != nil {
			h.backdrop.Deallocate()
		}
		h.backdrop = ebiten.NewImage(b.Dx(), b.Dy())
	} else {
		h.backdrop.Clear()
	}
	if h.backdropFn != nil {
		h.backdropFn(h.backdrop)
	}

	h.imgOp.GeoM.Reset()
	screen.DrawImage(h.backdrop, &h.imgOp)
	for _, g := range h.glasses {
		g.Draw(screen, h.backdrop)
	}

	if h.ShowStats {
		h.drawStats(screen)
	}
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The viewport follows the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
