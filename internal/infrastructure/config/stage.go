package config

import (
	"fmt"
	"unicode/utf8"
)

// StageConfig is the root config for stage JSON files.
// Collision rows are written top row first, as they appear on screen.
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	Background  BackgroundConfig             `json:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

// StageSizeConfig is measured in pixels
type StageSizeConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

type BackgroundConfig struct {
	Color string `json:"color"`
}

// PositionConfig is a world position, y-up from the bottom of the stage
type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

type TileMappingConfig struct {
	Type      string `json:"type"` // "sideWall" or "brick"
	Solid     bool   `json:"solid"`
	Animation string `json:"animation"`
}

// emptyTile is the glyph for an open cell; it needs no mapping
const emptyTile = "."

// Columns returns the grid width in tiles
func (c *StageConfig) Columns() int {
	if c.Size.TileSize <= 0 {
		return 0
	}
	return c.Size.Width / c.Size.TileSize
}

// Rows returns the grid height in tiles
func (c *StageConfig) Rows() int {
	if c.Size.TileSize <= 0 {
		return 0
	}
	return c.Size.Height / c.Size.TileSize
}

// Validate checks that the collision layer matches the declared size and
// that every glyph is mapped
func (c *StageConfig) Validate() error {
	if c.Size.TileSize <= 0 {
		return fmt.Errorf("%w: stage %s: tileSize %d", ErrInvalidConfig, c.ID, c.Size.TileSize)
	}
	if len(c.Layers.Collision) != c.Rows() {
		return fmt.Errorf("%w: stage %s: %d collision rows, want %d",
			ErrInvalidConfig, c.ID, len(c.Layers.Collision), c.Rows())
	}
	for y, row := range c.Layers.Collision {
		if n := utf8.RuneCountInString(row); n != c.Columns() {
			return fmt.Errorf("%w: stage %s: row %d has %d columns, want %d",
				ErrInvalidConfig, c.ID, y, n, c.Columns())
		}
		for _, r := range row {
			glyph := string(r)
			if glyph == emptyTile {
				continue
			}
			m, ok := c.TileMapping[glyph]
			if !ok {
				return fmt.Errorf("%w: stage %s: row %d: unmapped tile %q", ErrInvalidConfig, c.ID, y, glyph)
			}
			if m.Type != "sideWall" && m.Type != "brick" {
				return fmt.Errorf("%w: stage %s: tile %q has unknown type %q", ErrInvalidConfig, c.ID, glyph, m.Type)
			}
		}
	}
	if c.PlayerSpawn.X < 0 || c.PlayerSpawn.X >= c.Size.Width || c.PlayerSpawn.Y < 0 || c.PlayerSpawn.Y >= c.Size.Height {
		return fmt.Errorf("%w: stage %s: spawn (%d,%d) outside the stage",
			ErrInvalidConfig, c.ID, c.PlayerSpawn.X, c.PlayerSpawn.Y)
	}
	return nil
}
