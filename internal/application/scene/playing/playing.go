// Package playing provides the main gameplay scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/runner/internal/application/replay"
	"github.com/younwookim/runner/internal/application/scene"
	"github.com/younwookim/runner/internal/application/state"
	"github.com/younwookim/runner/internal/application/system"
	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/character"
	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/domain/geom"
	"github.com/younwookim/runner/internal/infrastructure/config"
	"github.com/younwookim/runner/internal/infrastructure/logging"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorSideWall = color.RGBA{80, 80, 100, 255}
	colorBrick    = color.RGBA{150, 90, 60, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorHit      = color.RGBA{230, 230, 120, 255}
	colorArea     = color.RGBA{100, 100, 200, 160}
	colorPillar   = color.RGBA{255, 215, 0, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
)

// Playing is the main gameplay scene: one character on one stage
type Playing struct {
	cfg   *config.GameConfig
	log   logging.Logger
	input *system.InputSystem

	stage   *entity.Stage
	physics *system.PhysicsSystem
	player  *character.Character

	state   state.GameState
	resume  state.GameState
	now     time.Time
	ticks   int
	screenW int
	screenH int
	bg      color.Color
	debug   bool
	redraw  bool

	replayer       *replay.Replayer
	recorder       *Recorder
	recordFilename string
}

var (
	_ scene.Scene      = (*Playing)(nil)
	_ scene.Reloadable = (*Playing)(nil)
)

// Option configures the scene
type Option func(*Playing)

// WithLogger sets the logger shared with the character
func WithLogger(l logging.Logger) Option {
	return func(p *Playing) {
		if l != nil {
			p.log = l
		}
	}
}

// WithInput replaces the keyboard input system
func WithInput(in *system.InputSystem) Option {
	return func(p *Playing) { p.input = in }
}

// WithRecording records every tick's keys and saves them to filename on exit.
// An empty filename picks a time-based name.
func WithRecording(filename string) Option {
	return func(p *Playing) {
		if filename == "" {
			filename = GenerateFilename()
		}
		p.recordFilename = filename
	}
}

// WithReplay plays recorded keys instead of reading the keyboard
func WithReplay(data replay.ReplayData) Option {
	return func(p *Playing) { p.replayer = replay.NewReplayer(data) }
}

// world is everything rebuilt by a restart or a reload
type world struct {
	stage   *entity.Stage
	physics *system.PhysicsSystem
	player  *character.Character
}

// New creates a new Playing scene
func New(cfg *config.GameConfig, opts ...Option) (*Playing, error) {
	p := &Playing{
		cfg:   cfg,
		log:   logging.Nop(),
		state: state.StatePlaying,
		now:   time.Unix(0, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.input == nil {
		p.input = system.NewInputSystem(nil)
	}

	w, err := p.build(cfg)
	if err != nil {
		return nil, err
	}
	p.apply(cfg, w)

	if p.replayer != nil {
		p.state = state.StateReplaying
		p.log.Infof("replaying %d frames of stage %s", p.replayer.TotalFrames(), p.replayer.Stage())
	} else if p.recordFilename != "" {
		p.recorder = NewRecorder(cfg.Stage.ID)
		p.log.Infof("recording enabled: %s", p.recordFilename)
	}

	return p, nil
}

// clock is the simulated time; it advances by one tick per Update so
// animations replay identically
func (p *Playing) clock() time.Time { return p.now }

func (p *Playing) build(cfg *config.GameConfig) (*world, error) {
	if cfg == nil || cfg.Physics == nil || cfg.Stage == nil {
		return nil, errors.New("incomplete game config")
	}

	var provider animation.Provider = cfg.Library
	stage, err := system.LoadStage(cfg.Stage, provider, p.clock)
	if err != nil {
		return nil, err
	}

	physics := system.NewPhysicsSystem(stage, system.BuildIndex(stage))
	player := character.New(stage.Spawn, provider, physics.Index(),
		character.WithName("player"),
		character.WithTuning(cfg.Physics.Character.ToTuning()),
		character.WithLogger(p.log),
		character.WithClock(p.clock),
	)
	physics.AddMover(player)

	return &world{stage: stage, physics: physics, player: player}, nil
}

func (p *Playing) apply(cfg *config.GameConfig, w *world) {
	p.cfg = cfg
	p.stage = w.stage
	p.physics = w.physics
	p.player = w.player
	p.screenW = cfg.Physics.Display.ScreenWidth
	p.screenH = cfg.Physics.Display.ScreenHeight
	p.bg = parseColor(cfg.Stage.Background.Color, colorBG)
	p.redraw = true
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	ctl := p.input.GetControls()
	if ctl.Debug {
		p.debug = !p.debug
		p.redraw = true
	}
	if ctl.Save {
		p.saveRecording()
	}
	if ctl.Restart {
		p.restart()
	}
	if ctl.Pause {
		p.togglePause()
	}

	if !p.state.Running() {
		return nil, nil
	}

	keys, ok := p.nextKeys()
	if !ok {
		p.state = state.StateReplayDone
		p.redraw = true
		p.log.Infof("replay finished after %d frames", p.ticks)
		return nil, nil
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(keys)
	}
	if p.physics.Update(keys) {
		p.redraw = true
	}

	p.now = p.now.Add(time.Duration(dt * float64(time.Second)))
	p.ticks++
	return nil, nil
}

func (p *Playing) nextKeys() (entity.KeyMask, bool) {
	if p.replayer != nil {
		return p.replayer.GetInput()
	}
	return p.input.GetKeys(), true
}

func (p *Playing) togglePause() {
	if p.state == state.StatePaused {
		p.state = p.resume
	} else if p.state.Running() {
		p.resume = p.state
		p.state = state.StatePaused
	}
	p.redraw = true
}

// restart rebuilds the world from the current config
func (p *Playing) restart() {
	// The new world's animations start on the reset clock
	now := p.now
	p.now = time.Unix(0, 0)
	w, err := p.build(p.cfg)
	if err != nil {
		p.now = now
		p.log.Errorf("restart failed: %v", err)
		return
	}
	p.apply(p.cfg, w)
	p.ticks = 0

	if p.replayer != nil {
		p.replayer.Reset()
		p.state = state.StateReplaying
		return
	}
	p.state = state.StatePlaying
	if p.recorder != nil {
		p.recorder = NewRecorder(p.cfg.Stage.ID)
		p.log.Infof("recording restarted")
	}
}

// Reload rebuilds the world from a changed configuration (implements scene.Reloadable).
// On error the current world is kept.
func (p *Playing) Reload(cfg *config.GameConfig) error {
	w, err := p.build(cfg)
	if err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	p.apply(cfg, w)
	p.log.Infof("stage %s reloaded", cfg.Stage.ID)
	return nil
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	if err := p.recorder.Save(p.recordFilename); err != nil {
		p.log.Warnf("failed to save recording: %v", err)
		return
	}
	p.log.Infof("recording saved: %s (%d frames)", p.recordFilename, p.recorder.FrameCount())
}

// Draw renders the world. With the screen kept between frames it only
// repaints after something changed.
func (p *Playing) Draw(screen *ebiten.Image) {
	if !p.consumeRedraw() {
		return
	}

	screen.Fill(p.bg)
	cam := p.camera()

	for _, t := range p.stage.Terrain {
		c := colorBrick
		if t.Kind == entity.TileSideWall {
			c = colorSideWall
		}
		p.drawAreas(screen, t.SolidAreas(), cam, c)
	}

	p.drawPlayer(screen, cam)
	if p.debug {
		p.drawDebug(screen, cam)
	}
	p.drawUI(screen)
}

// consumeRedraw reports whether Draw has to repaint and clears the flag
func (p *Playing) consumeRedraw() bool {
	if p.debug {
		return true
	}
	redraw := p.redraw
	p.redraw = false
	return redraw
}

// camera returns the world position shown at the lower-left corner of the screen
func (p *Playing) camera() geom.Vector {
	b := p.stage.Bounds()
	center := p.player.Bounds().Center()
	return geom.Vector{
		X: clamp(center.X-float64(p.screenW)/2, b.Min.X, b.Max().X-float64(p.screenW)),
		Y: clamp(center.Y-float64(p.screenH)/2, b.Min.Y, b.Max().Y-float64(p.screenH)),
	}
}

// toScreen converts a y-up world rectangle to screen x, y, w, h
func (p *Playing) toScreen(r geom.Rect, cam geom.Vector) (x, y, w, h float64) {
	return r.Min.X - cam.X, float64(p.screenH) - (r.Max().Y - cam.Y), r.Size.X, r.Size.Y
}

func (p *Playing) pointToScreen(v geom.Vector, cam geom.Vector) (x, y float64) {
	return v.X - cam.X, float64(p.screenH) - (v.Y - cam.Y)
}

func (p *Playing) drawAreas(screen *ebiten.Image, areas []animation.Area, cam geom.Vector, c color.Color) {
	for _, a := range areas {
		if len(a.Polygon) == 0 {
			x, y, w, h := p.toScreen(a.Rect, cam)
			ebitenutil.DrawRect(screen, x, y, w, h, c)
			continue
		}
		for i, v := range a.Polygon {
			next := a.Polygon[(i+1)%len(a.Polygon)]
			x1, y1 := p.pointToScreen(v, cam)
			x2, y2 := p.pointToScreen(next, cam)
			ebitenutil.DrawLine(screen, x1, y1, x2, y2, c)
		}
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam geom.Vector) {
	frame, ok := p.player.Frame()
	if !ok {
		return
	}
	c := colorPlayer
	if p.player.State().IsHit() {
		c = colorHit
	}
	body := geom.NewRect(0, 0, frame.Width, frame.Height).Translate(p.player.Position().Add(frame.Offset))
	x, y, w, h := p.toScreen(body, cam)
	ebitenutil.DrawRect(screen, x, y, w, h, c)
}

func (p *Playing) drawDebug(screen *ebiten.Image, cam geom.Vector) {
	p.drawAreas(screen, p.player.SolidAreas(), cam, colorArea)
	for _, pillar := range p.player.Pillars() {
		x, y, w, _ := p.toScreen(pillar.Bounds(), cam)
		ebitenutil.DrawLine(screen, x, y, x+w, y, colorPillar)
	}

	ebitenutil.DebugPrintAt(screen, p.debugText(), 4, 16)
}

// debugText describes the player and the grid cell under its feet
func (p *Playing) debugText() string {
	pos := p.player.Position()
	dir := p.player.Direction()
	under := p.stage.TileAt(geom.Vector{X: p.player.Bounds().Center().X, Y: pos.Y - p.stage.TileSize/2})
	return fmt.Sprintf("%s  pos(%.1f, %.1f)  dir(%d, %d)  momentum %d  %s  under %s  tick %d",
		p.player.State(), pos.X, pos.Y, dir.X, dir.Y, p.player.Momentum(), p.player.Mode(), under.Kind, p.ticks)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, "A/D: Run | W: Jump | S: Drop | Space: Hit | Tab: Debug | R: Restart | ESC: Pause")

	switch p.state {
	case state.StatePaused:
		ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
		ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress ESC to resume", p.screenW/2-50, p.screenH/2-20)
	case state.StateReplayDone:
		ebitenutil.DebugPrintAt(screen, "REPLAY FINISHED\n\nPress R to watch again", p.screenW/2-70, p.screenH/2-20)
	}
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.redraw = true
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

// Player returns the controlled character
func (p *Playing) Player() *character.Character { return p.player }

// State returns the scene state
func (p *Playing) State() state.GameState { return p.state }

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseColor reads "#rrggbb", falling back to def
func parseColor(s string, def color.RGBA) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return def
	}
	return color.RGBA{r, g, b, 255}
}
