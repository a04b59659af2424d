package liquidglass

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and regeneration metrics.
// Only populated when Host.debug is true.
type debugStats struct {
	inputTime     time.Duration
	tickTime      time.Duration
	regenerations int
	glasses       int
	active        int
}

// debugLog prints timing and regeneration stats to stderr.
func (h *Host) debugLog(stats debugStats) {
	if !h.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[liquidglass] input: %v | tick: %v | total: %v\n",
		stats.inputTime, stats.tickTime, stats.inputTime+stats.tickTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[liquidglass] glasses: %d | active: %d | regenerations: %d\n",
		stats.glasses, stats.active, stats.regenerations)
}

// logf writes a debug line to stderr when debug mode is on.
func (h *Host) logf(format string, args ...any) {
	if !h.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[liquidglass] "+format+"\n", args...)
}
