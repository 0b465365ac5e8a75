package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/runner/internal/domain/entity"
)

// KeyPoller reads the keyboard. The default implementation polls ebiten.
type KeyPoller interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

type ebitenPoller struct{}

func (ebitenPoller) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

func (ebitenPoller) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// Binding maps one key bit to the physical keys that set it
type Binding struct {
	Mask entity.KeyMask
	Keys []ebiten.Key
}

// DefaultBindings returns WASD and arrow keys for movement and Space for hit
func DefaultBindings() []Binding {
	return []Binding{
		{Mask: entity.KeyRight, Keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
		{Mask: entity.KeyLeft, Keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
		{Mask: entity.KeyUp, Keys: []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
		{Mask: entity.KeyDown, Keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
		{Mask: entity.KeySpace, Keys: []ebiten.Key{ebiten.KeySpace}},
	}
}

// Controls are the one-shot commands of the demo, outside the character's keys
type Controls struct {
	Pause   bool
	Save    bool
	Debug   bool
	Restart bool
}

// InputSystem samples the keyboard once per tick
type InputSystem struct {
	poller   KeyPoller
	bindings []Binding
}

// NewInputSystem creates an input system polling ebiten. Nil bindings use the defaults.
func NewInputSystem(bindings []Binding) *InputSystem {
	return NewInputSystemWithPoller(ebitenPoller{}, bindings)
}

// NewInputSystemWithPoller creates an input system reading from poller
func NewInputSystemWithPoller(poller KeyPoller, bindings []Binding) *InputSystem {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &InputSystem{poller: poller, bindings: bindings}
}

// GetKeys returns the held keys as a key mask
func (s *InputSystem) GetKeys() entity.KeyMask {
	var mask entity.KeyMask
	for _, b := range s.bindings {
		for _, k := range b.Keys {
			if s.poller.IsKeyPressed(k) {
				mask |= b.Mask
				break
			}
		}
	}
	return mask
}

// GetControls returns the demo commands pressed this tick
func (s *InputSystem) GetControls() Controls {
	return Controls{
		Pause:   s.poller.IsKeyJustPressed(ebiten.KeyEscape),
		Save:    s.poller.IsKeyJustPressed(ebiten.KeyF5),
		Debug:   s.poller.IsKeyJustPressed(ebiten.KeyTab),
		Restart: s.poller.IsKeyJustPressed(ebiten.KeyR),
	}
}
