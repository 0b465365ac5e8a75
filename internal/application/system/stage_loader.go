package system

import (
	"fmt"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/domain/geom"
	"github.com/younwookim/runner/internal/infrastructure/config"
	"github.com/younwookim/runner/internal/infrastructure/spatial"
)

// indexMargin is how many tiles the broad-phase area extends past the grid
const indexMargin = 4

// LoadStage converts a StageConfig into a Stage with one terrain object per solid tile.
// Config rows are listed top first; the stage grid is stored bottom row first.
func LoadStage(cfg *config.StageConfig, provider animation.Provider, clock animation.Clock) (*entity.Stage, error) {
	if provider == nil {
		provider = animation.Library{}
	}

	tileWidth := cfg.Columns()
	tileHeight := len(cfg.Layers.Collision)

	stage := &entity.Stage{
		Name:     cfg.Name,
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: float64(cfg.Size.TileSize),
		Tiles:    make([][]entity.Tile, tileHeight),
		Spawn:    geom.Vector{X: float64(cfg.PlayerSpawn.X), Y: float64(cfg.PlayerSpawn.Y)},
	}

	for row, line := range cfg.Layers.Collision {
		ty := tileHeight - 1 - row
		stage.Tiles[ty] = make([]entity.Tile, tileWidth)

		tx := 0
		for _, char := range line {
			if tx >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if ok {
				tile := tileFor(mapping)
				stage.Tiles[ty][tx] = tile
				if tile.Solid {
					terrain, err := newTerrain(stage, tile, tx, ty, provider, clock)
					if err != nil {
						return nil, fmt.Errorf("failed to load stage %s: %w", cfg.ID, err)
					}
					stage.Terrain = append(stage.Terrain, terrain)
				}
			}
			tx++
		}
	}

	return stage, nil
}

func tileFor(m config.TileMappingConfig) entity.Tile {
	var kind entity.TileKind
	switch m.Type {
	case "sideWall":
		kind = entity.TileSideWall
	case "brick":
		kind = entity.TileBrick
	default:
		kind = entity.TileEmpty
	}

	name := m.Animation
	if name == "" && kind != entity.TileEmpty {
		name = kind.String()
	}
	return entity.Tile{Kind: kind, Solid: m.Solid && kind != entity.TileEmpty, Animation: name}
}

func newTerrain(stage *entity.Stage, tile entity.Tile, tx, ty int, provider animation.Provider, clock animation.Clock) (*entity.Terrain, error) {
	seq, ok := provider.Animation(animation.ID(tile.Animation))
	if !ok {
		return nil, fmt.Errorf("tile (%d,%d): missing animation %q", tx, ty, tile.Animation)
	}
	name := fmt.Sprintf("%s(%d,%d)", tile.Kind, tx, ty)
	return entity.NewTerrain(name, tile.Kind, stage.CellOrigin(tx, ty), seq, clock), nil
}

// BuildIndex creates the broad-phase index for a stage and inserts its terrain
func BuildIndex(stage *entity.Stage) *spatial.Index {
	margin := indexMargin * stage.TileSize
	b := stage.Bounds()
	area := geom.NewRect(b.Min.X-margin, b.Min.Y-margin, b.Size.X+2*margin, b.Size.Y+2*margin)

	idx := spatial.New(area, int(2*stage.TileSize))
	for _, t := range stage.Terrain {
		idx.Insert(t)
	}
	return idx
}
