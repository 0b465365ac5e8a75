// Package game provides the main game loop manager that handles Scene transitions
// and configuration hot reload.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/runner/internal/application/scene"
	"github.com/younwookim/runner/internal/infrastructure/config"
	"github.com/younwookim/runner/internal/infrastructure/logging"
)

// ConfigSource reloads the full configuration after a file changed
type ConfigSource func() (*config.GameConfig, error)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	log     logging.Logger

	changes <-chan string
	reload  ConfigSource
}

// Option configures a Game
type Option func(*Game)

// WithLogger sets the logger used for reload reports
func WithLogger(l logging.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithTPS derives the tick duration from ticks per second
func WithTPS(tps int) Option {
	return func(g *Game) {
		if tps > 0 {
			g.dt = 1.0 / float64(tps)
		}
	}
}

// WithHotReload reloads configuration whenever a path arrives on changes
// and hands it to the current scene if it is Reloadable.
func WithHotReload(changes <-chan string, reload ConfigSource) Option {
	return func(g *Game) {
		g.changes = changes
		g.reload = reload
	}
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int, opts ...Option) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	g.pollReload()

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// pollReload drains pending change notifications without blocking.
// Several changes in one tick cause a single reload.
func (g *Game) pollReload() {
	if g.changes == nil || g.reload == nil {
		return
	}

	var changed []string
drain:
	for {
		select {
		case path, ok := <-g.changes:
			if !ok {
				g.changes = nil
				break drain
			}
			changed = append(changed, path)
		default:
			break drain
		}
	}
	if len(changed) == 0 {
		return
	}

	r, ok := g.current.(scene.Reloadable)
	if !ok {
		return
	}
	cfg, err := g.reload()
	if err != nil {
		g.log.Warnf("reload after %v failed: %v", changed, err)
		return
	}
	if err := r.Reload(cfg); err != nil {
		g.log.Warnf("scene rejected reload: %v", err)
		return
	}
	g.log.Infof("reloaded config after %v", changed)
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}
