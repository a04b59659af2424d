package liquidglass

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsOverlay caches the text drawn by Host.drawStats. It is refreshed
// every ~0.5 seconds.
type statsOverlay struct {
	img   *ebiten.Image
	ticks int
	op    ebiten.DrawImageOptions
}

// drawStats draws FPS, TPS and glass counters in the top-left corner.
func (h *Host) drawStats(screen *ebiten.Image) {
	o := &h.overlay
	if o.img == nil {
		// 140x48 is enough for three lines of debug text.
		o.img = ebiten.NewImage(140, 48)
		o.ticks = 0
	}
	if o.ticks%30 == 0 {
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nglass: %d active: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), len(h.glasses), len(h.active)))
	}
	o.ticks++
	screen.DrawImage(o.img, &o.op)
}
