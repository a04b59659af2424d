// Package liquidglass renders draggable "liquid glass" panels for
// [Ebitengine].
//
// A glass refracts whatever is drawn behind it through a displacement map
// generated on the CPU by package field, optionally perturbed by the
// spring and ripple simulation in package physics. Package panel owns the
// geometry, dragging and regeneration policy; this package uploads the maps,
// runs the Kage displacement filter and routes Ebitengine input.
//
// # Quick start
//
//	host := liquidglass.NewHost(800, 600)
//	host.SetBackdrop(func(dst *ebiten.Image) { drawScene(dst) })
//	glass, err := host.NewGlass(panel.Config{
//		Geometry:      panel.Geometry{Width: 300, Height: 200, Radius: 24, X: 50, Y: 50},
//		Fragment:      field.Interactive,
//		Draggable:     true,
//		EnablePhysics: true,
//		Physics:       physics.DefaultConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	liquidglass.Run(host, liquidglass.RunConfig{Title: "Glass", Width: 800, Height: 600})
//
// For full control, use [Host] as your [ebiten.Game] or call [Host.Update]
// and [Host.Draw] from your own game.
//
// # Fallback
//
// When the displacement shader cannot be compiled, glasses draw with
// [FallbackFilters] (blur plus contrast and saturation) and report
// [Glass.Degraded]. [ProbeDisplacement] returns the compile error.
//
// # Events
//
// [Host.OnInteraction] receives pointer, drag and settle events for every
// glass. Glasses with a non-zero EntityID also forward events to the
// [EntityStore] set with [Host.SetEntityStore]; the ecs sub-module provides
// a [Donburi] implementation.
//
// # Automated testing
//
// [Host.InjectDrag] and friends queue synthetic pointer events, and
// [LoadTestScript] drives them from JSON together with screenshots.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package liquidglass
