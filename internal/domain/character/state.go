// Package character drives the playable character: a table-driven state
// machine on top of the closed-form jump integrator and the narrow-phase detector.
package character

import "fmt"

// State is a behavioral state. Even values face right, odd values face left.
type State uint8

const (
	IdleRight State = iota
	IdleLeft
	RunRight
	RunLeft
	JumpIdleRight
	JumpIdleLeft
	JumpRunRight
	JumpRunLeft
	FallIdleRight
	FallIdleLeft
	FallRunRight
	FallRunLeft
	FallAfterJumpRunRight
	FallAfterJumpRunLeft
	HitRight
	HitLeft

	stateCount
)

var stateNames = [stateCount]string{
	"IdleRight", "IdleLeft",
	"RunRight", "RunLeft",
	"JumpIdleRight", "JumpIdleLeft",
	"JumpRunRight", "JumpRunLeft",
	"FallIdleRight", "FallIdleLeft",
	"FallRunRight", "FallRunLeft",
	"FallAfterJumpRunRight", "FallAfterJumpRunLeft",
	"HitRight", "HitLeft",
}

func (s State) String() string {
	if s >= stateCount {
		return fmt.Sprintf("State(%d)", uint8(s))
	}
	return stateNames[s]
}

// FacingRight reports whether the state is a right-facing variant
func (s State) FacingRight() bool { return s%2 == 0 }

// IsIdle reports IdleRight or IdleLeft
func (s State) IsIdle() bool { return s == IdleRight || s == IdleLeft }

// IsRun reports RunRight or RunLeft
func (s State) IsRun() bool { return s == RunRight || s == RunLeft }

// IsJump reports any jump state
func (s State) IsJump() bool { return s >= JumpIdleRight && s <= JumpRunLeft }

// IsFall reports any fall state
func (s State) IsFall() bool { return s >= FallIdleRight && s <= FallAfterJumpRunLeft }

// IsHit reports HitRight or HitLeft
func (s State) IsHit() bool { return s == HitRight || s == HitLeft }

// IsGrounded reports whether the state stands on the ground
func (s State) IsGrounded() bool { return s.IsIdle() || s.IsRun() || s.IsHit() }

// Event drives the state machine
type Event uint8

const (
	RightPressed Event = iota
	RightReleased
	LeftPressed
	LeftReleased
	UpPressed
	DownPressed
	SpacePressed
	TopCollisionDuringJump
	JumpLanded
	FallLanded
	// HitFinished is raised when the hit animation completes a loop
	HitFinished

	eventCount
)

var eventNames = [eventCount]string{
	"RightPressed", "RightReleased",
	"LeftPressed", "LeftReleased",
	"UpPressed", "DownPressed", "SpacePressed",
	"TopCollisionDuringJump", "JumpLanded", "FallLanded",
	"HitFinished",
}

func (e Event) String() string {
	if e >= eventCount {
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
	return eventNames[e]
}

// Effect is the side effect performed when entering the target state
type Effect uint8

const (
	EffectNone Effect = iota
	// EffectRun faces the run direction and loads the run animation
	EffectRun
	// EffectStop resets momentum and zeroes the direction
	EffectStop
	// EffectJump starts a jump with a momentum-scaled horizontal speed
	EffectJump
	// EffectFall starts a fall with a momentum-scaled horizontal speed
	EffectFall
	// EffectFallCarry starts a fall that keeps the current horizontal speed
	EffectFallCarry
	// EffectLandJump ends a jump like EffectStop
	EffectLandJump
	// EffectLandFall ends a fall but keeps the direction for one more tick
	EffectLandFall
	// EffectHit loads the hit animation
	EffectHit
	// EffectHitDone returns to idle like EffectStop
	EffectHitDone
)

var effectNames = [...]string{
	"None", "Run", "Stop", "Jump", "Fall", "FallCarry",
	"LandJump", "LandFall", "Hit", "HitDone",
}

func (e Effect) String() string {
	if int(e) >= len(effectNames) {
		return fmt.Sprintf("Effect(%d)", uint8(e))
	}
	return effectNames[e]
}

type transitionKey struct {
	from  State
	event Event
}

type transition struct {
	to     State
	effect Effect
}

// transitions lists every handled pair. Pairs not listed are ignored.
var transitions = map[transitionKey]transition{
	{IdleRight, RightPressed}: {RunRight, EffectRun},
	{IdleLeft, RightPressed}:  {RunRight, EffectRun},
	{IdleRight, LeftPressed}:  {RunLeft, EffectRun},
	{IdleLeft, LeftPressed}:   {RunLeft, EffectRun},

	{RunRight, RightReleased}: {IdleRight, EffectStop},
	{RunLeft, LeftReleased}:   {IdleLeft, EffectStop},

	{IdleRight, UpPressed}: {JumpIdleRight, EffectJump},
	{IdleLeft, UpPressed}:  {JumpIdleLeft, EffectJump},
	{RunRight, UpPressed}:  {JumpRunRight, EffectJump},
	{RunLeft, UpPressed}:   {JumpRunLeft, EffectJump},

	{IdleRight, DownPressed}: {FallIdleRight, EffectFall},
	{IdleLeft, DownPressed}:  {FallIdleLeft, EffectFall},
	{RunRight, DownPressed}:  {FallRunRight, EffectFall},
	{RunLeft, DownPressed}:   {FallRunLeft, EffectFall},

	{JumpIdleRight, TopCollisionDuringJump}: {FallIdleRight, EffectFallCarry},
	{JumpIdleLeft, TopCollisionDuringJump}:  {FallIdleLeft, EffectFallCarry},
	{JumpRunRight, TopCollisionDuringJump}:  {FallRunRight, EffectFallCarry},
	{JumpRunLeft, TopCollisionDuringJump}:   {FallRunLeft, EffectFallCarry},

	{JumpIdleRight, JumpLanded}: {IdleRight, EffectLandJump},
	{JumpIdleLeft, JumpLanded}:  {IdleLeft, EffectLandJump},
	{JumpRunRight, JumpLanded}:  {IdleRight, EffectLandJump},
	{JumpRunLeft, JumpLanded}:   {IdleLeft, EffectLandJump},

	{FallIdleRight, FallLanded}: {IdleRight, EffectLandFall},
	{FallIdleLeft, FallLanded}:  {IdleLeft, EffectLandFall},
	{FallRunRight, FallLanded}:  {IdleRight, EffectLandFall},
	{FallRunLeft, FallLanded}:   {IdleLeft, EffectLandFall},
	// FallAfterJumpRun* have no entry and no landing

	{IdleRight, SpacePressed}: {HitRight, EffectHit},
	{IdleLeft, SpacePressed}:  {HitLeft, EffectHit},
	{RunRight, SpacePressed}:  {HitRight, EffectHit},
	{RunLeft, SpacePressed}:   {HitLeft, EffectHit},

	{HitRight, HitFinished}: {IdleRight, EffectHitDone},
	{HitLeft, HitFinished}:  {IdleLeft, EffectHitDone},
}

// Transition returns the state reached from s on e and the effect of entering it.
// Unhandled pairs return s, EffectNone and false; they are never an error.
func Transition(s State, e Event) (State, Effect, bool) {
	t, ok := transitions[transitionKey{s, e}]
	if !ok {
		return s, EffectNone, false
	}
	return t.to, t.effect, true
}
