package collision

import "github.com/younwookim/runner/internal/domain/geom"

// Kind selects the detector strategy used for a shape
type Kind uint8

const (
	KindBox Kind = iota
	KindPolygon
)

// Shape is a solid area that can take part in a narrow-phase test
type Shape interface {
	Kind() Kind
	Bounds() geom.Rect
	Hull() Polygon
}

// Box is an axis-aligned rectangle shape
type Box struct {
	geom.Rect
}

// Kind implements Shape
func (Box) Kind() Kind { return KindBox }

// Bounds implements Shape
func (b Box) Bounds() geom.Rect { return b.Rect }

// Hull implements Shape
func (b Box) Hull() Polygon { return PolygonFromRect(b.Rect) }

// Kind implements Shape
func (Polygon) Kind() Kind { return KindPolygon }

// Hull implements Shape
func (p Polygon) Hull() Polygon { return p }

// Result is the outcome of Collide. Only box pairs carry a penetration depth.
type Result struct {
	Collided       bool
	Penetration    geom.Penetration
	HasPenetration bool
}

// Collide tests the moving shape a against b. Two boxes go through the AABB
// path and report penetration; any polygon switches to GJK, which only answers yes or no.
func Collide(a, b Shape, hint geom.Direction) Result {
	if a.Kind() == KindBox && b.Kind() == KindBox {
		collided, pen := TestOverlap(a.Bounds(), b.Bounds(), hint)
		return Result{Collided: collided, Penetration: pen, HasPenetration: collided}
	}

	// Cheap rejection before running GJK
	if !a.Bounds().Intersects(b.Bounds()) {
		return Result{}
	}
	return Result{Collided: Intersects(a.Hull(), b.Hull())}
}
