package main

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/runner/internal/application/game"
	"github.com/younwookim/runner/internal/application/replay"
	"github.com/younwookim/runner/internal/application/scene/playing"
	"github.com/younwookim/runner/internal/infrastructure/config"
	"github.com/younwookim/runner/internal/infrastructure/logging"
)

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	stageFlag := flag.String("stage", "demo", "Stage to load from configs/stages")
	watchFlag := flag.String("watch", "", "Reload configs from this directory when they change (e.g., -watch cmd/game/configs)")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configurations from disk when watching, otherwise from the embedded filesystem
	var loader *config.Loader
	if *watchFlag != "" {
		loader = config.NewLoader(*watchFlag)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			logging.New("game", false).Errorf("failed to get config subfs: %v", err)
			os.Exit(1)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}

	cfg, err := loader.LoadAll(*stageFlag)
	if err != nil {
		logging.New("game", false).Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	log := logging.New("game", *debugFlag || cfg.Physics.Logging.Debug)

	opts := []playing.Option{playing.WithLogger(log)}
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Errorf("failed to load replay: %v", err)
			os.Exit(1)
		}
		opts = append(opts, playing.WithReplay(*data))
	} else if *recordFlag != "" {
		opts = append(opts, playing.WithRecording(*recordFlag))
	}

	scene, err := playing.New(cfg, opts...)
	if err != nil {
		log.Errorf("failed to create scene: %v", err)
		os.Exit(1)
	}

	display := cfg.Physics.Display
	gameOpts := []game.Option{game.WithLogger(log), game.WithTPS(display.Framerate)}

	if *watchFlag != "" {
		watcher, err := config.NewWatcher(*watchFlag, filepath.Join(*watchFlag, "stages"))
		if err != nil {
			log.Errorf("failed to watch configs: %v", err)
			os.Exit(1)
		}
		defer func() { _ = watcher.Close() }()

		go func() {
			for err := range watcher.Errors {
				log.Warnf("config watcher: %v", err)
			}
		}()

		stage := *stageFlag
		gameOpts = append(gameOpts, game.WithHotReload(watcher.Events, func() (*config.GameConfig, error) {
			return loader.LoadAll(stage)
		}))
		log.Infof("watching %s for config changes", *watchFlag)
	}

	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, gameOpts...)

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Platform Runner")
	ebiten.SetTPS(display.Framerate)
	// The scene repaints only when something changed
	ebiten.SetScreenClearedEveryFrame(false)

	// Run game
	runErr := ebiten.RunGame(g)
	g.Current().OnExit()
	if runErr != nil {
		log.Errorf("game stopped: %v", runErr)
		os.Exit(1)
	}
}
