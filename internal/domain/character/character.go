package character

import (
	"github.com/google/uuid"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/domain/geom"
	"github.com/younwookim/runner/internal/domain/physics"
)

// Animation ids looked up in the provider
const (
	AnimStandByRight animation.ID = "standByRight"
	AnimStandByLeft  animation.ID = "standByLeft"
	AnimRunRight     animation.ID = "runRight"
	AnimRunLeft      animation.ID = "runLeft"
	AnimJumpRight    animation.ID = "jumpRight"
	AnimJumpLeft     animation.ID = "jumpLeft"
	AnimFallRight    animation.ID = "fallRight"
	AnimFallLeft     animation.ID = "fallLeft"
	AnimHitRight     animation.ID = "hitRight"
	AnimHitLeft      animation.ID = "hitLeft"
)

// AnimationFor returns the animation displayed in state s
func AnimationFor(s State) animation.ID {
	right := s.FacingRight()
	pick := func(r, l animation.ID) animation.ID {
		if right {
			return r
		}
		return l
	}
	switch {
	case s.IsRun():
		return pick(AnimRunRight, AnimRunLeft)
	case s.IsJump():
		return pick(AnimJumpRight, AnimJumpLeft)
	case s.IsFall():
		return pick(AnimFallRight, AnimFallLeft)
	case s.IsHit():
		return pick(AnimHitRight, AnimHitLeft)
	default:
		return pick(AnimStandByRight, AnimStandByLeft)
	}
}

// Tuning holds the movement constants
type Tuning struct {
	Gravity     float64
	Step        float64 // trajectory time added per tick
	JumpSpeed   float64 // initial vertical jump speed
	ShortSpeed  float64 // horizontal jump/fall speed below full momentum
	LongSpeed   float64 // horizontal jump/fall speed at full momentum
	RunStep     float64 // horizontal displacement per running tick
	MaxMomentum int
}

// DefaultTuning returns the stock movement constants
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:     physics.DefaultGravity,
		Step:        physics.DefaultStep,
		JumpSpeed:   45,
		ShortSpeed:  4,
		LongSpeed:   10,
		RunStep:     4,
		MaxMomentum: 10,
	}
}

// Logger receives state machine traces
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// Option configures a Character
type Option func(*Character)

// WithTuning overrides the movement constants
func WithTuning(t Tuning) Option {
	return func(c *Character) { c.tuning = t }
}

// WithLogger traces transitions to l
func WithLogger(l Logger) Option {
	return func(c *Character) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock drives frame timing from clock
func WithClock(clock animation.Clock) Option {
	return func(c *Character) { c.clock = clock }
}

// WithName sets the diagnostic name
func WithName(name string) Option {
	return func(c *Character) { c.name = name }
}

// Collision is one overlap found during a tick
type Collision struct {
	Object    entity.Object
	Depth     geom.Vector    // signed penetration; zero for boolean-only polygon hits
	Direction geom.Direction // travel direction when detected
	HasDepth  bool
}

// maxDispatch bounds the events handled for one input sample, state-entry re-polls included
const maxDispatch = 16

// Character is the playable character. It owns its position, direction,
// momentum and trajectory, and is updated once per tick.
type Character struct {
	id       uuid.UUID
	name     string
	tuning   Tuning
	log      Logger
	clock    animation.Clock
	provider animation.Provider
	index    entity.Index
	anim     *animation.Animator
	kin      *physics.Kinematics

	state    State
	pos      geom.Vector
	dir      geom.Direction
	prevDir  geom.Direction
	momentum int

	keys     entity.KeyMask
	prevKeys entity.KeyMask

	// quietNextTick delays zeroing the direction after a fall lands
	quietNextTick bool

	pillars    []entity.Object
	collisions []Collision
}

var _ entity.Object = (*Character)(nil)

// New creates an idle right-facing character at pos
func New(pos geom.Vector, provider animation.Provider, index entity.Index, opts ...Option) *Character {
	c := &Character{
		id:       uuid.New(),
		name:     "character",
		tuning:   DefaultTuning(),
		log:      nopLogger{},
		provider: provider,
		index:    index,
		state:    IdleRight,
		pos:      pos,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tuning.MaxMomentum < 0 {
		c.tuning.MaxMomentum = 0
	}
	c.anim = animation.NewAnimator(c.clock)
	c.kin = physics.NewKinematics(c.tuning.Gravity, c.tuning.Step)
	c.loadAnimation()
	return c
}

func (c *Character) ID() uuid.UUID { return c.id }

// Name returns the diagnostic name
func (c *Character) Name() string { return c.name }

func (c *Character) State() State { return c.state }

func (c *Character) Position() geom.Vector { return c.pos }

// Direction returns the current travel direction
func (c *Character) Direction() geom.Direction { return c.dir }

// PrevDirection returns the last non-zero travel direction
func (c *Character) PrevDirection() geom.Direction { return c.prevDir }

func (c *Character) Momentum() int { return c.momentum }

// Mode returns the trajectory mode of the integrator
func (c *Character) Mode() physics.Mode { return c.kin.Mode() }

// HorizontalSpeed returns the horizontal speed of the current trajectory
func (c *Character) HorizontalSpeed() float64 { return c.kin.HorizontalSpeed() }

// Pillars returns the objects currently supporting the character from below
func (c *Character) Pillars() []entity.Object { return c.pillars }

// Collisions returns the overlaps found by the last collision pass
func (c *Character) Collisions() []Collision { return c.collisions }

// Frame returns the displayed frame; ok is false before the first frame is shown
func (c *Character) Frame() (animation.Frame, bool) { return c.anim.Current() }

// Width returns the width of the displayed frame
func (c *Character) Width() float64 {
	f, _ := c.anim.Current()
	return f.Width
}

// Height returns the height of the displayed frame
func (c *Character) Height() float64 {
	f, _ := c.anim.Current()
	return f.Height
}

// Bounds returns the broad-phase envelope of the displayed frame in world coordinates
func (c *Character) Bounds() geom.Rect {
	f, ok := c.anim.Current()
	if !ok {
		return geom.Rect{Min: c.pos}
	}
	return f.Envelope().Translate(c.pos)
}

// SolidAreas returns the displayed frame's areas in world coordinates
func (c *Character) SolidAreas() []animation.Area {
	f, ok := c.anim.Current()
	if !ok || len(f.Areas) == 0 {
		return nil
	}
	out := make([]animation.Area, len(f.Areas))
	for i, a := range f.Areas {
		out[i] = a.Translate(c.pos)
	}
	return out
}

// Update runs one tick: trajectory or input, collision, then animation.
// It reports whether the character needs a redraw.
func (c *Character) Update(keys entity.KeyMask) bool {
	redraw := false
	c.keys = keys

	if c.kin.Airborne() {
		pos, dir, _ := c.kin.Advance()
		c.pos = pos
		c.setDirection(dir)
		redraw = true
	} else {
		if c.quietNextTick {
			c.setDirection(geom.Quiet)
		}
		c.processKeys()
	}

	c.updateCollisions()
	c.rememberDirection()

	if _, advanced := c.anim.Advance(c.animationLooped); advanced {
		// The new frame may carry different areas
		c.updateCollisions()
		redraw = true
	}

	return redraw
}

func (c *Character) processKeys() {
	if c.keys != entity.KeyNone || c.keys != c.prevKeys {
		c.dispatch(c.keyEvents(true))
	}
	c.prevKeys = c.keys

	// One step per tick, in the direction the run faces
	switch {
	case c.state == RunRight && c.keys.Has(entity.KeyRight):
		c.moveTo(1)
	case c.state == RunLeft && c.keys.Has(entity.KeyLeft):
		c.moveTo(-1)
	}
}

// keyEvents turns held keys into events. With guard set a key held on the
// previous tick does not fire its Pressed event again.
func (c *Character) keyEvents(guard bool) []Event {
	var events []Event
	fresh := func(k entity.KeyMask) bool {
		return c.keys.Has(k) && (!guard || !c.prevKeys.Has(k))
	}

	if fresh(entity.KeyRight) {
		events = append(events, RightPressed)
	} else if !c.keys.Has(entity.KeyRight) && c.prevKeys.Has(entity.KeyRight) {
		events = append(events, RightReleased)
	}
	if fresh(entity.KeyLeft) {
		events = append(events, LeftPressed)
	} else if !c.keys.Has(entity.KeyLeft) && c.prevKeys.Has(entity.KeyLeft) {
		events = append(events, LeftReleased)
	}
	if fresh(entity.KeyUp) {
		events = append(events, UpPressed)
	}
	if fresh(entity.KeySpace) {
		events = append(events, SpacePressed)
	}
	if fresh(entity.KeyDown) {
		events = append(events, DownPressed)
	}
	return events
}

// dispatch feeds events to the state machine. Every state entry re-polls the
// held keys and the resulting events are handled before the rest of the queue.
func (c *Character) dispatch(events []Event) {
	queue := append([]Event(nil), events...)
	for handled := 0; len(queue) > 0 && handled < maxDispatch; handled++ {
		ev := queue[0]
		queue = queue[1:]

		if c.blocked(ev) {
			continue
		}
		next, effect, ok := Transition(c.state, ev)
		if !ok {
			continue
		}

		c.log.Debugf("%s: %s --%s--> %s (%s)", c.name, c.state, ev, next, effect)
		c.state = next
		c.apply(effect)

		if repoll := c.keyEvents(false); len(repoll) > 0 {
			queue = append(repoll, queue...)
		}
	}
}

// blocked filters input that cannot apply mid-air or mid-hit
func (c *Character) blocked(ev Event) bool {
	switch ev {
	case UpPressed, DownPressed:
		return c.kin.Airborne()
	case SpacePressed:
		return c.kin.Airborne() || c.state.IsHit()
	}
	return false
}

func (c *Character) apply(effect Effect) {
	switch effect {
	case EffectRun:
		x := 1
		if !c.state.FacingRight() {
			x = -1
		}
		c.setDirection(geom.Direction{X: x})
	case EffectStop, EffectLandJump, EffectHitDone:
		c.momentum = 0
		c.setDirection(geom.Quiet)
	case EffectLandFall:
		c.momentum = 0
		c.quietNextTick = true
	case EffectJump:
		c.pillars = nil
		c.setDirection(c.kin.Jump(c.pos, c.tuning.JumpSpeed, c.presetSpeed()))
	case EffectFall:
		c.pillars = nil
		c.setDirection(c.kin.Fall(c.pos, c.presetSpeed()))
	case EffectFallCarry:
		c.pillars = nil
		c.setDirection(c.kin.Fall(c.pos, c.kin.HorizontalSpeed()))
	}
	c.loadAnimation()
}

// presetSpeed is the horizontal speed for a jump or fall entered from the current state
func (c *Character) presetSpeed() float64 {
	if c.state != JumpRunRight && c.state != JumpRunLeft &&
		c.state != FallRunRight && c.state != FallRunLeft {
		return 0
	}
	speed := c.tuning.ShortSpeed
	if c.momentum >= c.tuning.MaxMomentum {
		speed = c.tuning.LongSpeed
	}
	if !c.state.FacingRight() {
		speed = -speed
	}
	return speed
}

// moveTo applies one running step. It is a continuous effect and repeats every tick the key is held.
func (c *Character) moveTo(x int) {
	if c.kin.Airborne() || c.state.IsHit() {
		return
	}
	c.pos.X += float64(x) * c.tuning.RunStep
	if c.momentum < c.tuning.MaxMomentum {
		c.momentum++
	}
}

func (c *Character) setDirection(d geom.Direction) {
	c.rememberDirection()
	c.dir = d
	c.quietNextTick = false
}

func (c *Character) rememberDirection() {
	if !c.dir.IsQuiet() {
		c.prevDir = c.dir
	}
}

// hint is the direction used by the detector: the last non-zero one while quiet
func (c *Character) hint() geom.Direction {
	return c.dir.Or(c.prevDir)
}

func (c *Character) loadAnimation() {
	if c.provider == nil {
		c.anim.Load(nil)
		return
	}
	seq, _ := c.provider.Animation(AnimationFor(c.state))
	c.anim.Load(seq)
}

// animationLooped ends a hit when its animation completes a loop
func (c *Character) animationLooped() bool {
	if !c.state.IsHit() {
		return false
	}
	c.dispatch([]Event{HitFinished})
	return true
}
