package liquidglass

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// compileShader is swapped in tests to simulate platforms without shader
// support.
var compileShader = ebiten.NewShader

var (
	displacementShader    *ebiten.Shader
	displacementShaderErr error
	displacementProbed    bool
)

// ensureDisplacementShader compiles the displacement shader once and caches
// the result, including a failure.
func ensureDisplacementShader() (*ebiten.Shader, error) {
	if !displacementProbed {
		displacementProbed = true
		s, err := compileShader([]byte(displacementShaderSrc))
		if err != nil {
			displacementShaderErr = fmt.Errorf("liquidglass: displacement shader: %w", err)
		} else {
			displacementShader = s
		}
	}
	return displacementShader, displacementShaderErr
}

// ProbeDisplacement reports whether the displacement filter is available.
// The probe runs once per process; a non-nil error means glasses are drawn
// with FallbackFilters instead.
func ProbeDisplacement() error {
	_, err := ensureDisplacementShader()
	return err
}

// resetProbe forgets the cached probe result.
func resetProbe() {
	displacementShader = nil
	displacementShaderErr = nil
	displacementProbed = false
}

// FallbackFilters returns the approximation used when the displacement
// filter is unavailable: a light blur followed by a saturation and contrast
// boost.
func FallbackFilters() []Filter {
	return []Filter{
		NewBlurFilter(2),
		NewToneFilter(1.1, 1, 1.2),
	}
}
