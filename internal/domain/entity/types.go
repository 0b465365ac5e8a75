package entity

import (
	"math"

	"github.com/younwookim/runner/internal/domain/geom"
)

// TileKind represents the kind of terrain placed in a stage cell
type TileKind int

const (
	TileEmpty TileKind = iota
	TileSideWall
	TileBrick
)

// String returns the kind name used in config and diagnostics
func (k TileKind) String() string {
	switch k {
	case TileSideWall:
		return "sideWall"
	case TileBrick:
		return "brick"
	default:
		return "empty"
	}
}

// Tile represents a single cell of the stage grid
type Tile struct {
	Kind      TileKind
	Solid     bool
	Animation string
}

// Stage holds the terrain grid and the objects built from it.
// Row 0 of Tiles is the bottom row: the world is y-up.
type Stage struct {
	Name     string
	Width    int // in tiles
	Height   int // in tiles
	TileSize float64
	Tiles    [][]Tile
	Spawn    geom.Vector
	Terrain  []*Terrain
}

// GetTile returns the tile at the given tile coordinates.
// Cells to the left and right of the stage read as solid side walls; above and below are open.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width {
		return Tile{Kind: TileSideWall, Solid: true}
	}
	if ty < 0 || ty >= s.Height {
		return Tile{Kind: TileEmpty}
	}
	return s.Tiles[ty][tx]
}

// TileAt returns the tile containing the world point p
func (s *Stage) TileAt(p geom.Vector) Tile {
	tx := int(math.Floor(p.X / s.TileSize))
	ty := int(math.Floor(p.Y / s.TileSize))
	return s.GetTile(tx, ty)
}

// CellOrigin returns the world position of the lower-left corner of a cell
func (s *Stage) CellOrigin(tx, ty int) geom.Vector {
	return geom.Vector{X: float64(tx) * s.TileSize, Y: float64(ty) * s.TileSize}
}

// Bounds returns the world rectangle covered by the grid
func (s *Stage) Bounds() geom.Rect {
	return geom.NewRect(0, 0, float64(s.Width)*s.TileSize, float64(s.Height)*s.TileSize)
}

// Objects returns the terrain as placeable objects
func (s *Stage) Objects() []Object {
	out := make([]Object, len(s.Terrain))
	for i, t := range s.Terrain {
		out[i] = t
	}
	return out
}
