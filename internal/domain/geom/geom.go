// Package geom holds the value types shared by physics and collision code.
//
// World coordinates are y-up: a positive vertical offset moves an object up.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the overlap below which two shapes are considered touching, not colliding.
const Epsilon = 1e-9

// Vector is a 2D point or displacement with fractional precision
type Vector struct {
	X, Y float64
}

// Add returns v + o
func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }

// IsZero reports whether both components are zero
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Vec2 converts v for use with mathgl routines
func (v Vector) Vec2() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

// FromVec2 converts a mathgl vector back
func FromVec2(v mgl64.Vec2) Vector { return Vector{v[0], v[1]} }

// Direction is a ternary travel direction per axis, each component in {-1, 0, 1}.
// The zero value is the quiet direction.
type Direction struct {
	X, Y int
}

// Quiet is the direction of an object that is not travelling
var Quiet = Direction{}

// DirectionOf returns the direction with the sign of each component
func DirectionOf(dx, dy float64) Direction {
	return Direction{X: Sign(dx), Y: Sign(dy)}
}

// IsQuiet reports whether d is (0,0)
func (d Direction) IsQuiet() bool { return d.X == 0 && d.Y == 0 }

// IsDiagonal reports whether both components are non-zero
func (d Direction) IsDiagonal() bool { return d.X != 0 && d.Y != 0 }

// IsAxisAligned reports whether at most one component is non-zero
func (d Direction) IsAxisAligned() bool { return !d.IsDiagonal() }

// Negate returns the opposite direction
func (d Direction) Negate() Direction { return Direction{-d.X, -d.Y} }

// Or returns d, or fallback when d is quiet
func (d Direction) Or(fallback Direction) Direction {
	if d.IsQuiet() {
		return fallback
	}
	return d
}

// Rect is an axis-aligned rectangle stored as minimum corner plus size
type Rect struct {
	Min  Vector
	Size Vector
}

// NewRect builds a normalized rectangle from a corner and a size
func NewRect(x, y, w, h float64) Rect {
	return Rect{Min: Vector{x, y}, Size: Vector{w, h}}.Normalize()
}

// RectFromCorners builds the rectangle spanned by two opposite corners
func RectFromCorners(a, b Vector) Rect {
	return Rect{
		Min:  Vector{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Size: Vector{math.Abs(b.X - a.X), math.Abs(b.Y - a.Y)},
	}
}

// Normalize flips negative sizes so the rectangle always has Min at its lower-left corner
func (r Rect) Normalize() Rect {
	if r.Size.X < 0 {
		r.Min.X += r.Size.X
		r.Size.X = -r.Size.X
	}
	if r.Size.Y < 0 {
		r.Min.Y += r.Size.Y
		r.Size.Y = -r.Size.Y
	}
	return r
}

// Max returns the upper-right corner
func (r Rect) Max() Vector { return r.Min.Add(r.Size) }

// Center returns the center point
func (r Rect) Center() Vector { return r.Min.Add(r.Size.Scale(0.5)) }

// Translate returns r moved by d
func (r Rect) Translate(d Vector) Rect {
	r.Min = r.Min.Add(d)
	return r
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool { return r.Size.X <= 0 || r.Size.Y <= 0 }

// OverlapX returns the length of the shared interval on the X axis (negative when apart)
func (r Rect) OverlapX(o Rect) float64 {
	return math.Min(r.Max().X, o.Max().X) - math.Max(r.Min.X, o.Min.X)
}

// OverlapY returns the length of the shared interval on the Y axis (negative when apart)
func (r Rect) OverlapY(o Rect) float64 {
	return math.Min(r.Max().Y, o.Max().Y) - math.Max(r.Min.Y, o.Min.Y)
}

// Overlaps reports a strict intersection; touching edges do not overlap
func (r Rect) Overlaps(o Rect) bool {
	return r.OverlapX(o) > Epsilon && r.OverlapY(o) > Epsilon
}

// Intersects reports whether the rectangles share any point, edges included.
// Broad-phase queries use this; narrow-phase tests use Overlaps.
func (r Rect) Intersects(o Rect) bool {
	return r.OverlapX(o) >= 0 && r.OverlapY(o) >= 0
}

// Contains reports whether o lies fully inside r
func (r Rect) Contains(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Min.Y >= r.Min.Y &&
		o.Max().X <= r.Max().X && o.Max().Y <= r.Max().Y
}

// Union returns the smallest rectangle containing both
func (r Rect) Union(o Rect) Rect {
	return RectFromCorners(
		Vector{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Vector{math.Max(r.Max().X, o.Max().X), math.Max(r.Max().Y, o.Max().Y)},
	)
}

// Corners returns the four corners counter-clockwise from Min
func (r Rect) Corners() [4]Vector {
	hi := r.Max()
	return [4]Vector{r.Min, {hi.X, r.Min.Y}, hi, {r.Min.X, hi.Y}}
}

// Penetration is the signed overlap that must be removed from the moving shape to separate it
type Penetration struct {
	Depth Vector
}

// Sign returns -1, 0 or 1
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
