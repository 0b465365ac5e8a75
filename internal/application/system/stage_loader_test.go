package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/domain/geom"
	"github.com/younwookim/runner/internal/infrastructure/config"
)

func tileSequence(frames int) animation.Sequence {
	// A single frame is static and never expires
	var d time.Duration
	if frames > 1 {
		d = 100 * time.Millisecond
	}
	seq := make(animation.Sequence, frames)
	for i := range seq {
		seq[i] = animation.Frame{
			Width:    16,
			Height:   16,
			Duration: d,
			Areas:    []animation.Area{{ID: "solid", Rect: geom.NewRect(0, 0, 16, 16)}},
			Bounds:   geom.NewRect(0, 0, 16, 16),
		}
	}
	return seq
}

func createTestLibrary() animation.Library {
	return animation.Library{
		"brick":    tileSequence(1),
		"sideWall": tileSequence(1),
	}
}

func createTestStageConfig(rows ...string) *config.StageConfig {
	return &config.StageConfig{
		ID:          "test",
		Name:        "Test",
		Size:        config.StageSizeConfig{Width: len(rows[0]) * 16, Height: len(rows) * 16, TileSize: 16},
		PlayerSpawn: config.PositionConfig{X: 32, Y: 16},
		Layers:      config.LayersConfig{Collision: rows},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "sideWall", Solid: true, Animation: "sideWall"},
			"B": {Type: "brick", Solid: true},
		},
	}
}

func TestLoadStage(t *testing.T) {
	t.Run("loads basic stage", func(t *testing.T) {
		cfg := createTestStageConfig(
			"#..#",
			"#..#",
			"#BB#",
		)

		stage, err := LoadStage(cfg, createTestLibrary(), nil)
		require.NoError(t, err)

		assert.Equal(t, "Test", stage.Name)
		assert.Equal(t, 4, stage.Width)
		assert.Equal(t, 3, stage.Height)
		assert.Equal(t, 16.0, stage.TileSize)
		assert.Equal(t, geom.Vector{X: 32, Y: 16}, stage.Spawn)
		assert.Len(t, stage.Terrain, 8)
	})

	t.Run("bottom config row becomes row zero", func(t *testing.T) {
		cfg := createTestStageConfig(
			"#..#",
			"#BB#",
		)

		stage, err := LoadStage(cfg, createTestLibrary(), nil)
		require.NoError(t, err)

		assert.Equal(t, entity.TileBrick, stage.GetTile(1, 0).Kind)
		assert.Equal(t, entity.TileEmpty, stage.GetTile(1, 1).Kind)
		assert.True(t, stage.TileAt(geom.Vector{X: 20, Y: 8}).Solid)
		assert.False(t, stage.TileAt(geom.Vector{X: 20, Y: 24}).Solid)
	})

	t.Run("terrain sits at its cell", func(t *testing.T) {
		cfg := createTestStageConfig(
			"...",
			".B.",
		)

		stage, err := LoadStage(cfg, createTestLibrary(), nil)
		require.NoError(t, err)
		require.Len(t, stage.Terrain, 1)

		brick := stage.Terrain[0]
		assert.Equal(t, "brick(1,0)", brick.Name())
		assert.Equal(t, geom.NewRect(16, 0, 16, 16), brick.Bounds())
		assert.Equal(t, entity.TileBrick, brick.Kind)
	})

	t.Run("missing mapping animation defaults to the kind name", func(t *testing.T) {
		stage, err := LoadStage(createTestStageConfig("B"), createTestLibrary(), nil)
		require.NoError(t, err)

		assert.Equal(t, "brick", stage.GetTile(0, 0).Animation)
		assert.Len(t, stage.Terrain, 1)
	})

	t.Run("unknown tile type is empty", func(t *testing.T) {
		cfg := createTestStageConfig("X")
		cfg.TileMapping["X"] = config.TileMappingConfig{Type: "spike", Solid: true}

		stage, err := LoadStage(cfg, createTestLibrary(), nil)
		require.NoError(t, err)

		tile := stage.GetTile(0, 0)
		assert.Equal(t, entity.TileEmpty, tile.Kind)
		assert.False(t, tile.Solid)
		assert.Empty(t, stage.Terrain)
	})

	t.Run("handles row longer than width", func(t *testing.T) {
		cfg := createTestStageConfig("##")
		cfg.Layers.Collision = []string{"####"}

		stage, err := LoadStage(cfg, createTestLibrary(), nil)
		require.NoError(t, err)

		assert.Equal(t, 2, stage.Width)
		assert.Len(t, stage.Terrain, 2)
	})

	t.Run("missing animation is an error", func(t *testing.T) {
		_, err := LoadStage(createTestStageConfig("#B#"), animation.Library{"brick": tileSequence(1)}, nil)
		assert.ErrorContains(t, err, "sideWall")
	})

	t.Run("nil provider cannot build terrain", func(t *testing.T) {
		_, err := LoadStage(createTestStageConfig("B"), nil, nil)
		assert.Error(t, err)
	})
}

func TestBuildIndex(t *testing.T) {
	stage, err := LoadStage(createTestStageConfig(
		"#..#",
		"#BB#",
	), createTestLibrary(), nil)
	require.NoError(t, err)

	idx := BuildIndex(stage)

	assert.Equal(t, len(stage.Terrain), idx.Len())

	// Standing on the middle bricks touches both of them
	got := idx.Query(geom.Vector{X: 18, Y: 16}, geom.Vector{X: 46, Y: 30})
	var names []string
	for _, o := range got {
		names = append(names, o.Name())
	}
	assert.ElementsMatch(t, []string{"brick(1,0)", "brick(2,0)"}, names)
}
