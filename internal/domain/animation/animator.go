package animation

import "time"

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// Animator owns an iterator into one sequence and decides when the next frame is due.
// Every placeable object embeds one instead of keeping its own frame bookkeeping.
type Animator struct {
	clock Clock

	seq          Sequence
	next         int
	current      Frame
	shown        bool // first frame of the loaded sequence has been displayed
	loaded       bool
	nextFrameDue time.Time
}

// NewAnimator creates an animator. A nil clock uses time.Now.
func NewAnimator(clock Clock) *Animator {
	if clock == nil {
		clock = time.Now
	}
	return &Animator{clock: clock}
}

// Load restarts the animator on seq. The first frame becomes due immediately.
// An empty sequence unloads the animator.
func (a *Animator) Load(seq Sequence) {
	a.seq = seq
	a.next = 0
	a.shown = false
	a.loaded = len(seq) > 0
	a.nextFrameDue = a.clock()
}

// Loaded reports whether a sequence is active
func (a *Animator) Loaded() bool { return a.loaded }

// Static reports whether the active sequence has a single frame
func (a *Animator) Static() bool { return len(a.seq) <= 1 }

// Current returns the displayed frame; ok is false before the first frame is shown
func (a *Animator) Current() (Frame, bool) {
	return a.current, a.loaded && a.shown
}

// Due reports whether the next frame should be shown now.
// A static frame without a duration is never due again once shown; one with
// a duration expires like any other frame and re-enters as a loop.
func (a *Animator) Due() bool {
	if !a.loaded {
		return false
	}
	if a.Static() && a.shown && a.current.Duration <= 0 {
		return false
	}
	return !a.clock().Before(a.nextFrameDue)
}

// Advance shows the next frame when it is due and reports whether it did.
//
// When the sequence wraps, the re-entered first frame carries LoopStart and
// onLoop is consulted. If onLoop returns true it has loaded a replacement
// sequence, whose first frame is shown instead.
func (a *Animator) Advance(onLoop func() bool) (Frame, bool) {
	if !a.Due() {
		return a.current, false
	}

	f := a.step()
	if f.LoopStart && onLoop != nil && onLoop() && a.loaded {
		f = a.step()
	}

	a.current = f
	a.shown = true
	a.nextFrameDue = a.clock().Add(f.Duration)
	return f, true
}

func (a *Animator) step() Frame {
	wrapped := false
	if a.next >= len(a.seq) {
		a.next = 0
		wrapped = true
	}
	f := a.seq[a.next]
	a.next++
	f.LoopStart = wrapped
	return f
}
