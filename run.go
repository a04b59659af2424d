package liquidglass

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws the stats overlay.
	ShowFPS bool
	// Resizable lets the user resize the window; glasses are re-clamped.
	Resizable bool
	// Debug enables stderr debug logging.
	Debug bool
}

// Run opens a window and drives host as the game loop until the window is
// closed or the update function returns an error.
func Run(host *Host, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	host.ShowStats = cfg.ShowFPS
	host.SetDebugMode(cfg.Debug)
	host.Resize(float64(cfg.Width), float64(cfg.Height))
	return ebiten.RunGame(host)
}
