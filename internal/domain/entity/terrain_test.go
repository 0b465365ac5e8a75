package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/geom"
)

func brickSequence(frames int) animation.Sequence {
	// A single frame is static and never expires
	var d time.Duration
	if frames > 1 {
		d = 100 * time.Millisecond
	}
	seq := make(animation.Sequence, frames)
	for i := range seq {
		seq[i] = animation.Frame{
			Width:    16,
			Height:   16,
			Duration: d,
			Areas:    []animation.Area{{ID: "solid", Rect: geom.NewRect(0, 0, 16, 16)}},
			Bounds:   geom.NewRect(0, 0, 16, 16),
		}
	}
	return seq
}

func TestTerrain_SolidAreasInWorldSpace(t *testing.T) {
	brick := NewTerrain("brick", TileBrick, geom.Vector{X: 32, Y: 0}, brickSequence(1), nil)

	areas := brick.SolidAreas()
	require.Len(t, areas, 1)
	assert.Equal(t, geom.NewRect(32, 0, 16, 16), areas[0].Rect)
	assert.Equal(t, geom.NewRect(32, 0, 16, 16), brick.Bounds())
	assert.Equal(t, 16.0, brick.Width())
	assert.Equal(t, 16.0, brick.Height())
	assert.Equal(t, "brick", brick.Name())
	assert.NotEqual(t, brick.ID(), NewTerrain("brick", TileBrick, geom.Vector{}, brickSequence(1), nil).ID())
}

func TestTerrain_StaticNeverRedraws(t *testing.T) {
	now := time.Unix(0, 0)
	brick := NewTerrain("brick", TileBrick, geom.Vector{}, brickSequence(1), func() time.Time { return now })

	now = now.Add(time.Second)
	assert.False(t, brick.Update(KeyRight))
}

func TestTerrain_AnimatedRedrawsWhenFrameAdvances(t *testing.T) {
	now := time.Unix(0, 0)
	wall := NewTerrain("sideWall", TileSideWall, geom.Vector{}, brickSequence(3), func() time.Time { return now })

	assert.False(t, wall.Update(KeyNone))

	now = now.Add(100 * time.Millisecond)
	assert.True(t, wall.Update(KeyNone))
}

func TestTerrain_WithoutAnimationHasNoAreas(t *testing.T) {
	empty := NewTerrain("ghost", TileBrick, geom.Vector{X: 5, Y: 5}, nil, nil)

	assert.Nil(t, empty.SolidAreas())
	assert.Equal(t, geom.Vector{X: 5, Y: 5}, empty.Bounds().Min)
	assert.False(t, empty.Update(KeyNone))
}

func TestStage_Objects(t *testing.T) {
	stage := createTestStage()
	stage.Terrain = []*Terrain{
		NewTerrain("a", TileBrick, geom.Vector{}, brickSequence(1), nil),
		NewTerrain("b", TileBrick, geom.Vector{X: 16}, brickSequence(1), nil),
	}

	objs := stage.Objects()
	require.Len(t, objs, 2)
	assert.Equal(t, "b", objs[1].Name())
}
