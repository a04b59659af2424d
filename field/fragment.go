package field

// Input is the per-generation state a fragment may read. It is assembled by
// the caller at generation time and never retained by the generator.
type Input struct {
	// Mouse is the pointer position normalized to the panel bounds. Values
	// outside [0, 1] are legal while the pointer is outside the panel.
	Mouse Vec2
	// Time is the elapsed time in seconds since the panel was created. Only
	// fragments flagged Animated should depend on it.
	Time float64
}

// FragmentFunc maps a normalized destination coordinate to the normalized
// source coordinate the backdrop is sampled from. It must be total and free of
// side effects for every uv in [0, 1]² and any Input.
type FragmentFunc func(uv Vec2, in Input) Vec2

// Fragment is a named FragmentFunc together with the capabilities the panel
// uses to decide when the map has to be regenerated.
type Fragment struct {
	Name string
	Eval FragmentFunc
	// UsesPointer reports that Eval reads Input.Mouse. Pointer moves only
	// trigger a regeneration for fragments that set it.
	UsesPointer bool
	// Animated reports that Eval reads Input.Time. Animated fragments are
	// regenerated every frame for as long as the panel lives.
	Animated bool
}

// Valid reports whether the fragment can be evaluated.
func (f Fragment) Valid() bool {
	return f.Eval != nil
}

// Custom wraps fn into a Fragment with the given capabilities.
func Custom(name string, fn FragmentFunc, usesPointer, animated bool) Fragment {
	return Fragment{Name: name, Eval: fn, UsesPointer: usesPointer, Animated: animated}
}

// Identity is the fragment that samples every pixel from itself. It produces
// a neutral map and is mostly useful in tests and as a "glass off" state.
var Identity = Fragment{
	Name: "identity",
	Eval: func(uv Vec2, _ Input) Vec2 { return uv },
}
