package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/runner/internal/domain/character"
)

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display"`
	Character CharacterConfig `json:"character"`
	Logging   LoggingConfig   `json:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// CharacterConfig holds the movement constants of the controllable character
type CharacterConfig struct {
	Gravity     float64 `json:"gravity"`
	Step        float64 `json:"step"`      // trajectory time per tick
	JumpSpeed   float64 `json:"jumpSpeed"` // initial vertical speed
	ShortSpeed  float64 `json:"shortSpeed"`
	LongSpeed   float64 `json:"longSpeed"` // used at full momentum
	RunStep     float64 `json:"runStep"`
	MaxMomentum int     `json:"maxMomentum"`
}

type LoggingConfig struct {
	Debug bool `json:"debug"`
}

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values the game cannot run without
func (c *PhysicsConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("%w: framerate %d", ErrInvalidConfig, c.Display.Framerate)
	}
	ch := c.Character
	if ch.Gravity < 0 || ch.Step < 0 || ch.JumpSpeed < 0 || ch.RunStep < 0 {
		return fmt.Errorf("%w: negative character constant", ErrInvalidConfig)
	}
	if ch.MaxMomentum < 0 {
		return fmt.Errorf("%w: maxMomentum %d", ErrInvalidConfig, ch.MaxMomentum)
	}
	return nil
}

// ToTuning converts the config to character tuning. Zero fields keep the defaults.
func (c CharacterConfig) ToTuning() character.Tuning {
	t := character.DefaultTuning()
	if c.Gravity > 0 {
		t.Gravity = c.Gravity
	}
	if c.Step > 0 {
		t.Step = c.Step
	}
	if c.JumpSpeed > 0 {
		t.JumpSpeed = c.JumpSpeed
	}
	if c.ShortSpeed > 0 {
		t.ShortSpeed = c.ShortSpeed
	}
	if c.LongSpeed > 0 {
		t.LongSpeed = c.LongSpeed
	}
	if c.RunStep > 0 {
		t.RunStep = c.RunStep
	}
	if c.MaxMomentum > 0 {
		t.MaxMomentum = c.MaxMomentum
	}
	return t
}
