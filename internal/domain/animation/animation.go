// Package animation describes sprite-sheet frames and steps through them over time.
package animation

import (
	"time"

	"github.com/younwookim/runner/internal/domain/collision"
	"github.com/younwookim/runner/internal/domain/geom"
)

// ID identifies an animation inside a sprite sheet
type ID string

// Area is a named solid region of a frame, relative to the object position.
// When Polygon is set it replaces Rect for the narrow-phase test.
type Area struct {
	ID      string
	Rect    geom.Rect
	Polygon collision.Polygon
}

// Translate returns the area moved by d
func (a Area) Translate(d geom.Vector) Area {
	out := Area{ID: a.ID, Rect: a.Rect.Translate(d)}
	if len(a.Polygon) > 0 {
		out.Polygon = a.Polygon.Translate(d)
	}
	return out
}

// Shape returns the detector shape for the area
func (a Area) Shape() collision.Shape {
	if len(a.Polygon) > 0 {
		return a.Polygon
	}
	return collision.Box{Rect: a.Rect}
}

// Frame is one sprite of an animation
type Frame struct {
	Width, Height float64
	UV            geom.Rect
	Offset        geom.Vector // draw offset from the object position
	Duration      time.Duration
	Areas         []Area
	Bounds        geom.Rect // relative to the object position, contains every area
	LoopStart     bool      // set on the first frame when the sequence wraps
}

// Sequence is an ordered, restartable list of frames
type Sequence []Frame

// Provider yields animations by id
type Provider interface {
	Animation(id ID) (Sequence, bool)
}

// Library is an in-memory Provider
type Library map[ID]Sequence

// Animation implements Provider
func (l Library) Animation(id ID) (Sequence, bool) {
	seq, ok := l[id]
	if !ok || len(seq) == 0 {
		return nil, false
	}
	return seq, true
}

// BoundsOf returns the union of the area rectangles, or the zero rect for no areas
func BoundsOf(areas []Area) geom.Rect {
	if len(areas) == 0 {
		return geom.Rect{}
	}
	b := areas[0].Rect
	if len(areas[0].Polygon) > 0 {
		b = areas[0].Polygon.Bounds()
	}
	for _, a := range areas[1:] {
		r := a.Rect
		if len(a.Polygon) > 0 {
			r = a.Polygon.Bounds()
		}
		b = b.Union(r)
	}
	return b
}

// Envelope returns the frame bounds grown to contain every solid area
func (f Frame) Envelope() geom.Rect {
	if len(f.Areas) == 0 {
		return f.Bounds
	}
	areas := BoundsOf(f.Areas)
	if f.Bounds.Empty() {
		return areas
	}
	return f.Bounds.Union(areas)
}
