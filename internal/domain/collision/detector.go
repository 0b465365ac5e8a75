// Package collision implements the narrow phase: precise overlap tests
// between solid areas that the broad phase already shortlisted.
package collision

import (
	"github.com/younwookim/runner/internal/domain/geom"
)

// TestOverlap checks the moving rectangle a against b.
//
// Penetration is reported only on the axes the hint travels along, signed like
// the hint, so subtracting it from a's position separates the shapes. A quiet
// hint falls back to the axis of least overlap, signed by the relative centers.
// Touching edges are not a collision.
func TestOverlap(a, b geom.Rect, hint geom.Direction) (bool, geom.Penetration) {
	ox := a.OverlapX(b)
	oy := a.OverlapY(b)
	if ox <= geom.Epsilon || oy <= geom.Epsilon {
		return false, geom.Penetration{}
	}

	if hint.IsQuiet() {
		return true, leastOverlap(a, b, ox, oy)
	}

	return true, geom.Penetration{Depth: geom.Vector{
		X: float64(hint.X) * ox,
		Y: float64(hint.Y) * oy,
	}}
}

func leastOverlap(a, b geom.Rect, ox, oy float64) geom.Penetration {
	ac, bc := a.Center(), b.Center()
	if ox <= oy {
		sign := 1.0
		if ac.X > bc.X {
			sign = -1
		}
		return geom.Penetration{Depth: geom.Vector{X: sign * ox}}
	}
	sign := 1.0
	if ac.Y > bc.Y {
		sign = -1
	}
	return geom.Penetration{Depth: geom.Vector{Y: sign * oy}}
}
