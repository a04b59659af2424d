package field

import "math"

// Vec2 is a 2D vector used for surface coordinates, pointer coordinates and
// texture lookups. Components are normalized to the panel unless noted.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return Length(v.X, v.Y) }

// SmoothStep clamps t into [0, 1] over the edges and returns the cubic Hermite
// interpolation t²(3-2t). Reversed edges (edge0 > edge1) produce a falling
// curve. Equal edges degrade to a hard step at the edge.
func SmoothStep(edge0, edge1, t float64) float64 {
	if edge0 == edge1 {
		if t < edge0 {
			return 0
		}
		return 1
	}
	t = (t - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Length returns sqrt(x² + y²).
func Length(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// RoundedRectSDF returns the signed distance from (x, y) to a rounded
// rectangle centered on the origin: negative inside, zero on the boundary,
// positive outside.
func RoundedRectSDF(x, y, halfWidth, halfHeight, radius float64) float64 {
	qx := math.Abs(x) - halfWidth + radius
	qy := math.Abs(y) - halfHeight + radius
	return math.Min(math.Max(qx, qy), 0) +
		Length(math.Max(qx, 0), math.Max(qy, 0)) -
		radius
}

// Texture returns the source sampling coordinate (x, y). It exists so
// fragment bodies read like the shader code they replace.
func Texture(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}
