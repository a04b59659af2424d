// Package field holds the platform-independent half of liquidglass: the
// signed-distance helpers every fragment is built from, the fragment contract,
// the bundled presets, and the [Generator] that bakes a fragment into an
// encoded displacement [Map].
//
// A fragment maps a normalized surface coordinate (UV) and the current
// pointer to the source coordinate the backdrop should be sampled from:
//
//	frag := field.Custom("bulge", func(uv field.Vec2, in field.Input) field.Vec2 {
//		ix, iy := uv.X-0.5, uv.Y-0.5
//		d := field.RoundedRectSDF(ix, iy, 0.3, 0.2, 0.6)
//		s := field.SmoothStep(0, 1, field.SmoothStep(0.8, 0, d-0.15))
//		return field.Texture(ix*s+0.5, iy*s+0.5)
//	}, false, false)
//
//	gen, err := field.NewGenerator(300, 200)
//	if err != nil {
//		return err
//	}
//	m := gen.Generate(frag, field.Input{Mouse: field.Vec2{X: 0.5, Y: 0.5}})
//
// Nothing in this package touches a rendering backend; the root liquidglass
// package uploads [Map.Pix] into an image and feeds it to a displacement
// shader.
package field
