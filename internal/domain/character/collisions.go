package character

import (
	"math"

	"github.com/google/uuid"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/collision"
	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/domain/geom"
	"github.com/younwookim/runner/internal/domain/physics"
)

// supportTolerance is how far apart a bottom edge and a top edge may be and still rest on each other
const supportTolerance = 1e-6

// updateCollisions tests the displayed frame against nearby objects and
// corrects the position. Landing and ceiling hits are raised from here only.
// The pillar set is rebuilt on every pass.
func (c *Character) updateCollisions() {
	c.collisions = nil
	c.pillars = nil

	areas := c.SolidAreas()
	if len(areas) == 0 || c.index == nil {
		return
	}
	defer c.groundedSupports()

	hint := c.hint()
	bounds := c.Bounds()
	for _, obj := range c.index.Query(bounds.Min, bounds.Max()) {
		if obj == nil || obj.ID() == c.id {
			continue
		}
		for _, theirs := range obj.SolidAreas() {
			for _, mine := range areas {
				res := collision.Collide(mine.Shape(), theirs.Shape(), hint)
				if !res.Collided {
					continue
				}
				c.collisions = append(c.collisions, Collision{
					Object:    obj,
					Depth:     res.Penetration.Depth,
					Direction: c.dir,
					HasDepth:  res.HasPenetration,
				})
			}
		}
	}

	if len(c.collisions) == 0 {
		return
	}

	if c.dir.IsAxisAligned() && c.allHaveDepth() {
		c.resolveByAxes()
	} else {
		c.resolveAlong(hint)
	}
}

func (c *Character) allHaveDepth() bool {
	for _, col := range c.collisions {
		if !col.HasDepth {
			return false
		}
	}
	return true
}

// resolveByAxes removes the deepest penetration on each axis
func (c *Character) resolveByAxes() {
	deepest := c.deepest()
	c.rebuildPillars(deepest.Y)
	c.pos = c.pos.Sub(deepest)
	if deepest.Y == 0 {
		// Horizontal contact only: nothing to land on or bump into
		return
	}

	switch c.kin.Mode() {
	case physics.Jumping:
		if deepest.Y > 0 {
			c.dispatch([]Event{TopCollisionDuringJump})
			return
		}
		c.kin.Land()
		c.dispatch([]Event{JumpLanded})
	case physics.Falling:
		c.kin.Land()
		c.dispatch([]Event{FallLanded})
	}
}

// resolveAlong backs off along the negative hint. It serves diagonal motion
// and polygon hits, neither of which has a usable per-axis depth.
func (c *Character) resolveAlong(hint geom.Direction) {
	var targets []geom.Rect
	seen := make(map[uuid.UUID]bool)
	for _, col := range c.collisions {
		if seen[col.Object.ID()] {
			continue
		}
		seen[col.Object.ID()] = true
		for _, a := range col.Object.SolidAreas() {
			targets = append(targets, a.Shape().Bounds())
		}
	}

	var moving []geom.Rect
	for _, a := range c.SolidAreas() {
		moving = append(moving, a.Shape().Bounds())
	}

	c.pos = collision.ResolveToNonColliding(targets, moving, c.pos, hint)
	// Hint-signed depths are not vertical contact here; only what is left
	// touching from below after the back-off supports the character.
	c.pillars = c.supports()

	switch c.kin.Mode() {
	case physics.Jumping:
		if c.dir.Y > 0 {
			c.dispatch([]Event{TopCollisionDuringJump})
			return
		}
		c.kin.Land()
		c.dispatch([]Event{JumpLanded})
	case physics.Falling:
		if len(c.pillars) == 0 {
			// Brushing a wall while falling keeps the fall going
			return
		}
		c.kin.Land()
		c.dispatch([]Event{FallLanded})
	}
}

// deepest returns the largest-magnitude penetration per axis, keeping its sign
func (c *Character) deepest() geom.Vector {
	var d geom.Vector
	for _, col := range c.collisions {
		if math.Abs(col.Depth.X) > math.Abs(d.X) {
			d.X = col.Depth.X
		}
		if math.Abs(col.Depth.Y) > math.Abs(d.Y) {
			d.Y = col.Depth.Y
		}
	}
	return d
}

// rebuildPillars keeps the objects pushing up with the deepest vertical penetration
func (c *Character) rebuildPillars(maxY float64) {
	c.pillars = nil
	if maxY >= 0 {
		return
	}
	seen := make(map[uuid.UUID]bool)
	for _, col := range c.collisions {
		if col.Depth.Y != maxY || seen[col.Object.ID()] {
			continue
		}
		seen[col.Object.ID()] = true
		c.pillars = append(c.pillars, col.Object)
	}
}

// groundedSupports fills an empty pillar set with the objects the character
// stands on. Touching is not a collision, so a grounded character at rest
// has no records to derive pillars from.
func (c *Character) groundedSupports() {
	if len(c.pillars) == 0 && !c.kin.Airborne() {
		c.pillars = c.supports()
	}
}

// supports returns the objects whose solid areas touch the displayed frame from directly below
func (c *Character) supports() []entity.Object {
	areas := c.SolidAreas()
	if len(areas) == 0 || c.index == nil {
		return nil
	}

	bounds := c.Bounds()
	below := geom.Vector{Y: supportTolerance}
	var out []entity.Object
	seen := make(map[uuid.UUID]bool)
	for _, obj := range c.index.Query(bounds.Min.Sub(below), bounds.Max()) {
		if obj == nil || obj.ID() == c.id || seen[obj.ID()] {
			continue
		}
		if restsOn(areas, obj.SolidAreas()) {
			seen[obj.ID()] = true
			out = append(out, obj)
		}
	}
	return out
}

func restsOn(mine, theirs []animation.Area) bool {
	for _, t := range theirs {
		top := t.Shape().Bounds()
		for _, m := range mine {
			bottom := m.Shape().Bounds()
			if math.Abs(top.Max().Y-bottom.Min.Y) <= supportTolerance && bottom.OverlapX(top) > geom.Epsilon {
				return true
			}
		}
	}
	return false
}
