package entity

import (
	"github.com/google/uuid"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/geom"
)

// Terrain is a static solid object such as a side wall or a brick.
// It only animates; keys are ignored.
type Terrain struct {
	id   uuid.UUID
	name string
	Kind TileKind
	pos  geom.Vector
	anim *animation.Animator
}

// NewTerrain places a terrain object at pos and shows the first frame of seq
func NewTerrain(name string, kind TileKind, pos geom.Vector, seq animation.Sequence, clock animation.Clock) *Terrain {
	t := &Terrain{
		id:   uuid.New(),
		name: name,
		Kind: kind,
		pos:  pos,
		anim: animation.NewAnimator(clock),
	}
	t.anim.Load(seq)
	t.anim.Advance(nil)
	return t
}

func (t *Terrain) ID() uuid.UUID { return t.id }

// Name returns the diagnostic name
func (t *Terrain) Name() string { return t.name }

func (t *Terrain) Position() geom.Vector { return t.pos }

// Frame returns the displayed frame, or the zero frame when none is loaded
func (t *Terrain) Frame() animation.Frame {
	f, _ := t.anim.Current()
	return f
}

// Width returns the width of the displayed frame
func (t *Terrain) Width() float64 { return t.Frame().Width }

// Height returns the height of the displayed frame
func (t *Terrain) Height() float64 { return t.Frame().Height }

// Bounds returns the frame bounding box in world coordinates
func (t *Terrain) Bounds() geom.Rect {
	f, ok := t.anim.Current()
	if !ok {
		return geom.Rect{Min: t.pos}
	}
	return f.Envelope().Translate(t.pos)
}

// SolidAreas returns the displayed frame's areas in world coordinates
func (t *Terrain) SolidAreas() []animation.Area {
	f, ok := t.anim.Current()
	if !ok || len(f.Areas) == 0 {
		return nil
	}
	out := make([]animation.Area, len(f.Areas))
	for i, a := range f.Areas {
		out[i] = a.Translate(t.pos)
	}
	return out
}

// Update shows the next frame when due. Terrain animations always loop.
func (t *Terrain) Update(KeyMask) bool {
	_, advanced := t.anim.Advance(nil)
	return advanced
}
