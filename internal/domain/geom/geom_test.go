package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRect_Normalizes(t *testing.T) {
	r := NewRect(10, 10, -4, -6)

	assert.Equal(t, Vector{6, 4}, r.Min)
	assert.Equal(t, Vector{4, 6}, r.Size)
	assert.Equal(t, Vector{10, 10}, r.Max())
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(Vector{5, 1}, Vector{1, 7})

	assert.Equal(t, NewRect(1, 1, 4, 6), r)
}

func TestRect_OverlapsAndIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	tests := []struct {
		name       string
		b          Rect
		overlaps   bool
		intersects bool
	}{
		{"inside", NewRect(2, 2, 2, 2), true, true},
		{"partial", NewRect(5, 5, 10, 10), true, true},
		{"touching edge", NewRect(10, 0, 5, 5), false, true},
		{"touching corner", NewRect(10, 10, 5, 5), false, true},
		{"apart", NewRect(11, 0, 5, 5), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(a))
			assert.Equal(t, tt.intersects, a.Intersects(tt.b))
		})
	}
}

func TestRect_UnionContainsBoth(t *testing.T) {
	a := NewRect(0, 0, 4, 4)
	b := NewRect(10, -2, 2, 3)

	u := a.Union(b)

	assert.True(t, u.Contains(a))
	assert.True(t, u.Contains(b))
	assert.Equal(t, NewRect(0, -2, 12, 6), u)
}

func TestRect_TranslateAndCenter(t *testing.T) {
	r := NewRect(0, 0, 4, 2).Translate(Vector{1, 1})

	assert.Equal(t, Vector{1, 1}, r.Min)
	assert.Equal(t, Vector{3, 2}, r.Center())
	assert.False(t, r.Empty())
	assert.True(t, NewRect(0, 0, 0, 5).Empty())
}

func TestDirection(t *testing.T) {
	assert.True(t, Quiet.IsQuiet())
	assert.True(t, Direction{1, -1}.IsDiagonal())
	assert.True(t, Direction{0, -1}.IsAxisAligned())
	assert.Equal(t, Direction{-1, 1}, Direction{1, -1}.Negate())
	assert.Equal(t, Direction{1, 0}, Quiet.Or(Direction{1, 0}))
	assert.Equal(t, Direction{0, 1}, Direction{0, 1}.Or(Direction{1, 0}))
	assert.Equal(t, Direction{-1, 0}, DirectionOf(-3.5, 0))
}

func TestVector_Vec2RoundTrip(t *testing.T) {
	v := Vector{1.5, -2}

	assert.Equal(t, v, FromVec2(v.Vec2()))
	assert.Equal(t, Vector{3, -4}, v.Scale(2))
	assert.Equal(t, Vector{0.5, -1}, v.Sub(Vector{1, -1}))
}
