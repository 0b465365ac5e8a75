package system

import (
	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/infrastructure/spatial"
)

// PhysicsSystem ticks every placed object once and keeps the broad-phase index current
type PhysicsSystem struct {
	stage  *entity.Stage
	index  *spatial.Index
	movers []entity.Object
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(stage *entity.Stage, index *spatial.Index) *PhysicsSystem {
	return &PhysicsSystem{
		stage: stage,
		index: index,
	}
}

// Index returns the broad-phase index shared by the objects
func (s *PhysicsSystem) Index() *spatial.Index { return s.index }

// AddMover registers an object driven by keys and inserts it into the index
func (s *PhysicsSystem) AddMover(o entity.Object) {
	s.index.Insert(o)
	s.movers = append(s.movers, o)
}

// RemoveMover drops a previously added object
func (s *PhysicsSystem) RemoveMover(o entity.Object) {
	for i, m := range s.movers {
		if m.ID() == o.ID() {
			s.movers = append(s.movers[:i], s.movers[i+1:]...)
			break
		}
	}
	s.index.Remove(o)
}

// Update advances terrain animations, then the movers with this tick's keys.
// It reports whether anything needs to be redrawn.
func (s *PhysicsSystem) Update(keys entity.KeyMask) bool {
	redraw := false

	for _, t := range s.stage.Terrain {
		if t.Update(entity.KeyNone) {
			s.index.Move(t)
			redraw = true
		}
	}

	for _, m := range s.movers {
		if m.Update(keys) {
			redraw = true
		}
		s.index.Move(m)
	}

	return redraw
}
