// Package spatial is the broad-phase index of placed objects, backed by a resolv cell space.
package spatial

import (
	"math"

	"github.com/google/uuid"
	"github.com/solarlune/resolv"

	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/domain/geom"
)

const (
	tagObject = "object"
	tagQuery  = "query"

	// DefaultCellSize is the side of one broad-phase cell in world units
	DefaultCellSize = 32
)

// Index answers "which objects' bounds touch this box".
//
// resolv cells start at (0,0), so world coordinates are shifted by the
// lower-left corner of the indexed area. Objects outside the area are not found.
type Index struct {
	space   *resolv.Space
	origin  geom.Vector
	objects map[uuid.UUID]*resolv.Object
	query   *resolv.Object
}

var _ entity.Index = (*Index)(nil)

// New creates an index covering area. Non-positive cell sizes use DefaultCellSize.
func New(area geom.Rect, cellSize int) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	w := int(math.Ceil(area.Size.X))
	h := int(math.Ceil(area.Size.Y))

	idx := &Index{
		space:   resolv.NewSpace(w, h, cellSize, cellSize),
		origin:  area.Min,
		objects: make(map[uuid.UUID]*resolv.Object),
		query:   resolv.NewObject(0, 0, 0, 0, tagQuery),
	}
	idx.space.Add(idx.query)
	return idx
}

// Insert adds o, or refreshes it when already present
func (i *Index) Insert(o entity.Object) {
	if ro, ok := i.objects[o.ID()]; ok {
		i.place(ro, o.Bounds())
		return
	}
	ro := resolv.NewObject(0, 0, 0, 0, tagObject)
	ro.Data = o
	i.objects[o.ID()] = ro
	i.space.Add(ro)
	i.place(ro, o.Bounds())
}

// Remove drops o from the index
func (i *Index) Remove(o entity.Object) {
	ro, ok := i.objects[o.ID()]
	if !ok {
		return
	}
	i.space.Remove(ro)
	delete(i.objects, o.ID())
}

// Move refreshes the cells of o after its bounds changed
func (i *Index) Move(o entity.Object) {
	if ro, ok := i.objects[o.ID()]; ok {
		i.place(ro, o.Bounds())
	}
}

// Len returns the number of indexed objects
func (i *Index) Len() int { return len(i.objects) }

// Query returns the indexed objects whose bounds intersect the box spanned by lower and upper
func (i *Index) Query(lower, upper geom.Vector) []entity.Object {
	box := geom.RectFromCorners(lower, upper)
	i.place(i.query, box)

	check := i.query.Check(0, 0, tagObject)
	if check == nil {
		return nil
	}

	out := make([]entity.Object, 0, len(check.Objects))
	for _, ro := range check.Objects {
		o, ok := ro.Data.(entity.Object)
		if !ok {
			continue
		}
		// Cells are coarse; keep only real intersections
		if o.Bounds().Intersects(box) {
			out = append(out, o)
		}
	}
	return out
}

// place moves ro over r. resolv finds the far cell from the integer edge
// X+W-1, so the size is padded by one unit to keep fractional and touching
// far edges registered; Query filters the extra candidates out.
func (i *Index) place(ro *resolv.Object, r geom.Rect) {
	ro.X = r.Min.X - i.origin.X
	ro.Y = r.Min.Y - i.origin.Y
	ro.W = r.Size.X + 1
	ro.H = r.Size.Y + 1
	ro.Update()
}
