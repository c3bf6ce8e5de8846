// Package vec provides the 2-D vector algebra used by the layout engine,
// built on gonum's r2 vectors.
package vec

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a point or direction in the plane. Methods never mutate the receiver.
type Vec2 r2.Vec

// Zero is the origin.
var Zero = Vec2{}

// New returns the vector (x, y).
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) raw() r2.Vec { return r2.Vec(v) }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(r2.Add(v.raw(), o.raw()))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(r2.Sub(v.raw(), o.raw()))
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(r2.Scale(s, v.raw()))
}

// Div returns v / s.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2(r2.Scale(-1, v.raw()))
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return r2.Norm(v.raw())
}

// Normalize returns the unit vector in the direction of v, or Zero when v has no length.
func (v Vec2) Normalize() Vec2 {
	if v == Zero {
		return Zero
	}
	return v.Div(v.Len())
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return r2.Norm(r2.Sub(v.raw(), o.raw()))
}

// Lerp moves v towards target by factor, clamped to [0,1].
func (v Vec2) Lerp(target Vec2, factor float64) Vec2 {
	factor = math.Max(0, math.Min(1, factor))
	return v.Add(target.Sub(v).Scale(factor))
}

// Clamp limits each component of v to [-limit, limit] of the matching component.
func (v Vec2) Clamp(limit Vec2) Vec2 {
	return Vec2{
		X: math.Max(math.Min(v.X, limit.X), -limit.X),
		Y: math.Max(math.Min(v.Y, limit.Y), -limit.Y),
	}
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Centroid returns the mean of points. It returns Zero for an empty slice.
func Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Zero
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Div(float64(len(points)))
}
