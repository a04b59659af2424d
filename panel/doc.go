// Package panel ties a displacement-map generator, an optional physics
// simulation and a pointer controller into one glass panel.
//
// A Panel owns its generator buffers and decides when the map needs to be
// regenerated:
//
//   - pointer moves regenerate only fragments that read the pointer, and only
//     when the normalized pointer actually changed
//   - animated fragments and active physics regenerate on every Tick
//   - Invalidate forces a regeneration
//
// Panels that need frames subscribe to a Scheduler and cancel the
// subscription as soon as they come to rest or are destroyed. The package
// has no rendering dependency; see the liquidglass package for the
// Ebitengine adapter.
package panel
