package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/runner/internal/domain/animation"
)

const (
	physicsFile = "physics.json"
	spritesFile = "sprites.yaml"
	stagesDir   = "stages"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
	Sprites *SpriteSheetConfig
	Library animation.Library
	Stage   *StageConfig
}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string { return l.basePath }

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, physicsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", physicsFile, err)
	}

	var cfg PhysicsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", physicsFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", physicsFile, err)
	}

	return &cfg, nil
}

// LoadSprites loads sprites.yaml
func (l *Loader) LoadSprites() (*SpriteSheetConfig, error) {
	data, err := fs.ReadFile(l.fsys, spritesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", spritesFile, err)
	}

	var cfg SpriteSheetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", spritesFile, err)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := stagesDir + "/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads physics, sprites and the named stage
func (l *Loader) LoadAll(stage string) (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	sprites, err := l.LoadSprites()
	if err != nil {
		return nil, err
	}

	lib, err := sprites.ToLibrary()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", spritesFile, err)
	}

	stageCfg, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
		Sprites: sprites,
		Library: lib,
		Stage:   stageCfg,
	}, nil
}
