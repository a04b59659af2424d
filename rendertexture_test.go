package liquidglass

import (
	"testing"

	"github.com/phanxgames/liquidglass/field"
)

func generatedMap(t *testing.T, w, h int, frag field.Fragment) *field.Map {
	t.Helper()
	gen, err := field.NewGenerator(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return gen.Generate(frag, field.Input{Mouse: field.Vec2{X: 0.5, Y: 0.5}})
}

func TestNewMapSurfaceDimensions(t *testing.T) {
	ms := NewMapSurface(128, 64)
	defer ms.Dispose()

	if ms.Width() != 128 {
		t.Errorf("Width = %d, want 128", ms.Width())
	}
	if ms.Height() != 64 {
		t.Errorf("Height = %d, want 64", ms.Height())
	}
	if ms.Image() == nil {
		t.Error("Image() should not be nil")
	}
	if ms.Uploads() != 0 || ms.Scale() != 0 {
		t.Error("new surface should have no uploads and zero scale")
	}
}

func TestMapSurfaceUpload(t *testing.T) {
	ms := NewMapSurface(40, 30)
	defer ms.Dispose()

	m := generatedMap(t, 40, 30, field.Default)
	img := ms.Image()
	ms.Upload(m)

	if ms.Uploads() != 1 {
		t.Errorf("Uploads = %d, want 1", ms.Uploads())
	}
	if ms.Scale() != m.Scale {
		t.Errorf("Scale = %f, want %f", ms.Scale(), m.Scale)
	}
	if ms.Image() != img {
		t.Error("same-size upload should reuse the image")
	}
}

func TestMapSurfaceUploadResizes(t *testing.T) {
	ms := NewMapSurface(10, 10)
	defer ms.Dispose()

	ms.Upload(generatedMap(t, 20, 12, field.Default))
	if ms.Width() != 20 || ms.Height() != 12 {
		t.Errorf("size = %dx%d, want 20x12", ms.Width(), ms.Height())
	}
	b := ms.Image().Bounds()
	if b.Dx() != 20 || b.Dy() != 12 {
		t.Errorf("image size = %dx%d, want 20x12", b.Dx(), b.Dy())
	}
}

func TestMapSurfaceUploadEmptyMap(t *testing.T) {
	ms := NewMapSurface(10, 10)
	defer ms.Dispose()

	ms.Upload(&field.Map{})
	if ms.Uploads() != 0 {
		t.Errorf("empty map should be ignored, Uploads = %d", ms.Uploads())
	}
}

func TestMapSurfaceDispose(t *testing.T) {
	ms := NewMapSurface(10, 10)
	ms.Dispose()
	ms.Dispose()

	if ms.Image() != nil {
		t.Error("Image() should be nil after Dispose")
	}
	ms.Upload(generatedMap(t, 10, 10, field.Default))
	if ms.Uploads() != 0 {
		t.Error("upload after Dispose should be ignored")
	}
}
