package entity

import (
	"github.com/google/uuid"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/geom"
)

// KeyMask is the set of keys held during one tick
type KeyMask uint8

const (
	KeyRight KeyMask = 1 << iota
	KeyLeft
	KeyUp
	KeyDown
	KeySpace

	KeyNone KeyMask = 0
)

// Has reports whether every key in k is held
func (m KeyMask) Has(k KeyMask) bool { return k != 0 && m&k == k }

// Object is anything placed in a stage: the character, side walls, bricks.
// Solid areas and bounds are in world coordinates and follow the currently
// displayed animation frame.
type Object interface {
	ID() uuid.UUID
	Name() string
	Width() float64
	Height() float64
	Position() geom.Vector
	Bounds() geom.Rect
	SolidAreas() []animation.Area
	// Update advances the object one tick and reports whether it needs a redraw
	Update(keys KeyMask) bool
}

// Index is the broad phase: it returns the objects whose bounds intersect
// the box spanned by lower and upper. The result may include the caller.
type Index interface {
	Query(lower, upper geom.Vector) []Object
}
