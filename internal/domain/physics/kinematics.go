// Package physics advances jump and fall trajectories in closed form.
package physics

import "github.com/younwookim/runner/internal/domain/geom"

// Mode is the trajectory the body is following
type Mode uint8

const (
	Grounded Mode = iota
	Jumping
	Falling
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case Grounded:
		return "Grounded"
	case Jumping:
		return "Jumping"
	case Falling:
		return "Falling"
	default:
		return "Unknown"
	}
}

const (
	// DefaultStep is the time added to the trajectory clock on every tick
	DefaultStep = 0.2
	// DefaultGravity is the downward acceleration in units per time unit squared
	DefaultGravity = 9.8
)

// Kinematics is the exclusive physics state of one body.
//
// Positions are evaluated from the trajectory origin and elapsed time on every
// tick rather than accumulated, so a trajectory is an exact parabola and a
// replay with the same inputs reproduces it bit for bit.
type Kinematics struct {
	Gravity float64
	Step    float64

	mode       Mode
	t          float64
	origin     geom.Vector
	hSpeed     float64
	vSpeed     float64
	prevOffset float64
}

// NewKinematics creates grounded kinematics. Non-positive values fall back to the defaults.
func NewKinematics(gravity, step float64) *Kinematics {
	if gravity <= 0 {
		gravity = DefaultGravity
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Kinematics{Gravity: gravity, Step: step}
}

// Mode returns the current trajectory mode
func (k *Kinematics) Mode() Mode { return k.mode }

// Airborne reports whether a jump or fall is in progress
func (k *Kinematics) Airborne() bool { return k.mode != Grounded }

// Elapsed returns the trajectory time since the mode started
func (k *Kinematics) Elapsed() float64 { return k.t }

// Origin returns the position the current trajectory started from
func (k *Kinematics) Origin() geom.Vector { return k.origin }

// HorizontalSpeed returns the horizontal speed of the current trajectory
func (k *Kinematics) HorizontalSpeed() float64 { return k.hSpeed }

// VerticalSpeed returns the initial vertical speed of the current trajectory
func (k *Kinematics) VerticalSpeed() float64 { return k.vSpeed }

// Jump starts a parabolic jump from pos and returns the initial travel direction
func (k *Kinematics) Jump(pos geom.Vector, vSpeed, hSpeed float64) geom.Direction {
	k.start(Jumping, pos, vSpeed, hSpeed)
	return geom.DirectionOf(hSpeed, vSpeed)
}

// Fall starts a pure gravity drop from pos and returns the initial travel direction
func (k *Kinematics) Fall(pos geom.Vector, hSpeed float64) geom.Direction {
	k.start(Falling, pos, 0, hSpeed)
	return geom.Direction{X: geom.Sign(hSpeed), Y: -1}
}

func (k *Kinematics) start(mode Mode, pos geom.Vector, vSpeed, hSpeed float64) {
	k.mode = mode
	k.t = 0
	k.origin = pos
	k.vSpeed = vSpeed
	k.hSpeed = hSpeed
	k.prevOffset = 0
}

// Offset returns the vertical displacement from the origin at trajectory time t
func (k *Kinematics) Offset(t float64) float64 {
	return k.vSpeed*t - 0.5*k.Gravity*t*t
}

// Advance moves the trajectory clock one step and returns the new position
// and travel direction. It never lands on its own: a grounded body is
// returned unchanged with ok=false.
func (k *Kinematics) Advance() (pos geom.Vector, dir geom.Direction, ok bool) {
	if k.mode == Grounded {
		return geom.Vector{}, geom.Quiet, false
	}

	k.t += k.Step
	offset := k.Offset(k.t)
	pos = geom.Vector{
		X: k.origin.X + k.hSpeed*k.t,
		Y: k.origin.Y + offset,
	}

	dir.X = geom.Sign(k.hSpeed)
	if k.mode == Falling {
		dir.Y = -1
	} else if k.prevOffset < offset {
		dir.Y = 1
	} else {
		dir.Y = -1
	}
	k.prevOffset = offset

	return pos, dir, true
}

// Land ends the current trajectory
func (k *Kinematics) Land() {
	k.mode = Grounded
	k.t = 0
}
