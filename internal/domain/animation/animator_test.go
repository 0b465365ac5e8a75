package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/runner/internal/domain/collision"
	"github.com/younwookim/runner/internal/domain/geom"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Tick(d time.Duration) { c.now = c.now.Add(d) }

func newTestSequence(n int, d time.Duration) Sequence {
	seq := make(Sequence, n)
	for i := range seq {
		seq[i] = Frame{Width: float64(10 + i), Height: 10, Duration: d}
	}
	return seq
}

func TestAnimator_FirstFrameDueImmediately(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)

	_, ok := a.Current()
	assert.False(t, ok)
	assert.False(t, a.Due(), "nothing loaded")

	a.Load(newTestSequence(3, 100*time.Millisecond))
	require.True(t, a.Due())

	f, advanced := a.Advance(nil)
	assert.True(t, advanced)
	assert.Equal(t, 10.0, f.Width)
	assert.False(t, f.LoopStart)
}

func TestAnimator_WaitsForDuration(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	a.Load(newTestSequence(3, 100*time.Millisecond))
	a.Advance(nil)

	clock.Tick(50 * time.Millisecond)
	_, advanced := a.Advance(nil)
	assert.False(t, advanced)

	clock.Tick(50 * time.Millisecond)
	f, advanced := a.Advance(nil)
	assert.True(t, advanced)
	assert.Equal(t, 11.0, f.Width)
}

func TestAnimator_WrapMarksLoopStart(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	a.Load(newTestSequence(2, time.Millisecond))

	var widths []float64
	var loops []bool
	for i := 0; i < 5; i++ {
		f, advanced := a.Advance(nil)
		require.True(t, advanced)
		widths = append(widths, f.Width)
		loops = append(loops, f.LoopStart)
		clock.Tick(time.Millisecond)
	}

	assert.Equal(t, []float64{10, 11, 10, 11, 10}, widths)
	assert.Equal(t, []bool{false, false, true, false, true}, loops)
}

func TestAnimator_OnLoopReplacesSequence(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	a.Load(newTestSequence(2, time.Millisecond))
	a.Advance(nil)
	clock.Tick(time.Millisecond)
	a.Advance(nil)
	clock.Tick(time.Millisecond)

	replacement := withWidth(newTestSequence(2, time.Millisecond), 99)
	called := 0
	f, advanced := a.Advance(func() bool {
		called++
		a.Load(replacement)
		return true
	})

	require.True(t, advanced)
	assert.Equal(t, 1, called)
	assert.Equal(t, 99.0, f.Width, "replacement's first frame is shown in the same tick")
	assert.False(t, f.LoopStart)
}

func TestAnimator_OnLoopDecliningKeepsLooping(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	a.Load(newTestSequence(2, time.Millisecond))
	a.Advance(nil)
	clock.Tick(time.Millisecond)
	a.Advance(nil)
	clock.Tick(time.Millisecond)

	f, advanced := a.Advance(func() bool { return false })

	require.True(t, advanced)
	assert.Equal(t, 10.0, f.Width)
	assert.True(t, f.LoopStart)
}

func TestAnimator_StaticStopsAfterFirstFrame(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	a.Load(newTestSequence(1, 0))

	_, advanced := a.Advance(nil)
	assert.True(t, advanced)

	clock.Tick(time.Hour)
	assert.False(t, a.Due())
	_, advanced = a.Advance(nil)
	assert.False(t, advanced)

	f, ok := a.Current()
	assert.True(t, ok)
	assert.Equal(t, 10.0, f.Width)
}

func TestAnimator_StaticWithDurationLoops(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	a.Load(newTestSequence(1, 100*time.Millisecond))
	a.Advance(nil)

	clock.Tick(99 * time.Millisecond)
	assert.False(t, a.Due())

	clock.Tick(time.Millisecond)
	loops := 0
	f, advanced := a.Advance(func() bool {
		loops++
		return false
	})
	assert.True(t, advanced)
	assert.True(t, f.LoopStart)
	assert.Equal(t, 1, loops)
	assert.Equal(t, 10.0, f.Width)
}

func TestAnimator_EmptySequenceUnloads(t *testing.T) {
	a := NewAnimator(nil)
	a.Load(nil)

	assert.False(t, a.Loaded())
	_, advanced := a.Advance(nil)
	assert.False(t, advanced)
}

func TestLibrary(t *testing.T) {
	lib := Library{
		"run":   newTestSequence(2, time.Millisecond),
		"empty": {},
	}

	seq, ok := lib.Animation("run")
	assert.True(t, ok)
	assert.Len(t, seq, 2)

	_, ok = lib.Animation("empty")
	assert.False(t, ok)
	_, ok = lib.Animation("missing")
	assert.False(t, ok)
}

func TestArea_TranslateAndShape(t *testing.T) {
	box := Area{ID: "body", Rect: geom.NewRect(0, 0, 4, 8)}
	moved := box.Translate(geom.Vector{X: 10, Y: 5})

	assert.Equal(t, geom.NewRect(10, 5, 4, 8), moved.Rect)
	assert.Equal(t, collision.KindBox, moved.Shape().Kind())

	tri := Area{ID: "slope", Polygon: collision.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}}
	movedTri := tri.Translate(geom.Vector{X: 1})
	assert.Equal(t, collision.KindPolygon, movedTri.Shape().Kind())
	assert.Equal(t, geom.Vector{X: 5, Y: 4}, movedTri.Polygon[2])
}

func TestBoundsOf(t *testing.T) {
	areas := []Area{
		{Rect: geom.NewRect(0, 0, 4, 4)},
		{Polygon: collision.Polygon{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 10}}},
	}

	assert.Equal(t, geom.NewRect(0, 0, 8, 10), BoundsOf(areas))
	assert.Equal(t, geom.Rect{}, BoundsOf(nil))
}

func withWidth(s Sequence, w float64) Sequence {
	for i := range s {
		s[i].Width = w + float64(i)
	}
	return s
}

func TestFrame_Envelope(t *testing.T) {
	f := Frame{
		Bounds: geom.NewRect(0, 0, 10, 10),
		Areas:  []Area{{Rect: geom.NewRect(5, -2, 8, 4)}},
	}
	assert.Equal(t, geom.NewRect(0, -2, 13, 12), f.Envelope())

	f.Bounds = geom.Rect{}
	assert.Equal(t, geom.NewRect(5, -2, 8, 4), f.Envelope())

	assert.Equal(t, geom.NewRect(1, 1, 2, 2), Frame{Bounds: geom.NewRect(1, 1, 2, 2)}.Envelope())
}
