package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/runner/internal/domain/geom"
)

// maxGJKIterations bounds the simplex refinement loop
const maxGJKIterations = 32

// Polygon is a convex hull in world coordinates. Vertex winding does not matter.
type Polygon []geom.Vector

// PolygonFromRect returns the four corners of r as a polygon
func PolygonFromRect(r geom.Rect) Polygon {
	c := r.Corners()
	return Polygon{c[0], c[1], c[2], c[3]}
}

// Translate returns p moved by d
func (p Polygon) Translate(d geom.Vector) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// Bounds returns the axis-aligned envelope of p
func (p Polygon) Bounds() geom.Rect {
	if len(p) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: p[0]}
	for _, v := range p[1:] {
		r = r.Union(geom.Rect{Min: v})
	}
	return r
}

func (p Polygon) centroid() mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, v := range p {
		sum = sum.Add(v.Vec2())
	}
	return sum.Mul(1 / float64(len(p)))
}

// support returns the vertex of p farthest along d
func (p Polygon) support(d mgl64.Vec2) mgl64.Vec2 {
	best := p[0].Vec2()
	bestDot := best.Dot(d)
	for _, v := range p[1:] {
		w := v.Vec2()
		if dot := w.Dot(d); dot > bestDot {
			best, bestDot = w, dot
		}
	}
	return best
}

// minkowskiSupport is the support point of p - q along d
func minkowskiSupport(p, q Polygon, d mgl64.Vec2) mgl64.Vec2 {
	return p.support(d).Sub(q.support(d.Mul(-1)))
}

// Intersects runs GJK over the Minkowski difference of p and q and reports
// whether it contains the origin. It yields no penetration vector.
func Intersects(p, q Polygon) bool {
	if len(p) == 0 || len(q) == 0 {
		return false
	}

	d := p.centroid().Sub(q.centroid())
	if d.Len() < geom.Epsilon {
		d = mgl64.Vec2{1, 0}
	}

	simplex := make([]mgl64.Vec2, 0, 3)
	simplex = append(simplex, minkowskiSupport(p, q, d))
	d = simplex[0].Mul(-1)

	for i := 0; i < maxGJKIterations; i++ {
		if d.Len() < geom.Epsilon {
			// Origin lies on the simplex itself
			return true
		}
		a := minkowskiSupport(p, q, d)
		if a.Dot(d) <= 0 {
			return false
		}
		simplex = append(simplex, a)

		var contains bool
		simplex, d, contains = refineSimplex(simplex)
		if contains {
			return true
		}
	}
	return false
}

// refineSimplex keeps the feature closest to the origin and returns the next search direction
func refineSimplex(s []mgl64.Vec2) ([]mgl64.Vec2, mgl64.Vec2, bool) {
	a := s[len(s)-1]
	ao := a.Mul(-1)

	if len(s) == 2 {
		b := s[0]
		ab := b.Sub(a)
		if ab.Dot(ao) > 0 {
			perp := tripleProduct(ab, ao, ab)
			if perp.Len() < geom.Epsilon {
				// Origin is on segment ab
				return s, perp, true
			}
			return s, perp, false
		}
		return []mgl64.Vec2{a}, ao, false
	}

	b, c := s[1], s[0]
	ab := b.Sub(a)
	ac := c.Sub(a)

	abPerp := tripleProduct(ac, ab, ab)
	if abPerp.Dot(ao) > 0 {
		return []mgl64.Vec2{b, a}, abPerp, false
	}
	acPerp := tripleProduct(ab, ac, ac)
	if acPerp.Dot(ao) > 0 {
		return []mgl64.Vec2{c, a}, acPerp, false
	}
	return s, mgl64.Vec2{}, true
}

// tripleProduct computes (a x b) x c restricted to the plane
func tripleProduct(a, b, c mgl64.Vec2) mgl64.Vec2 {
	return b.Mul(a.Dot(c)).Sub(a.Mul(b.Dot(c)))
}
