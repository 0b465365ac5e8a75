package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/younwookim/runner/internal/domain/collision"
	"github.com/younwookim/runner/internal/domain/geom"
)

const testSheet = `
sheet: test.png
animations:
  idle:
    frames:
      - width: 10
        height: 20
        duration_ms: 50
        areas:
          - id: body
            rect: {x: 1, y: 0, w: 8, h: 18}
  ramp:
    frames:
      - width: 16
        height: 16
        bounds: {x: 0, y: 0, w: 16, h: 8}
        areas:
          - id: slope
            polygon:
              - {x: 0, y: 0}
              - {x: 16, y: 0}
              - {x: 16, y: 16}
`

func parseSheet(t *testing.T, src string) *SpriteSheetConfig {
	t.Helper()
	var cfg SpriteSheetConfig
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	return &cfg
}

func TestSpriteSheetConfig_ToLibrary(t *testing.T) {
	cfg := parseSheet(t, testSheet)
	assert.Equal(t, []string{"idle", "ramp"}, cfg.Names())

	lib, err := cfg.ToLibrary()
	require.NoError(t, err)

	idle, ok := lib.Animation("idle")
	require.True(t, ok)
	require.Len(t, idle, 1)
	assert.Equal(t, 50*time.Millisecond, idle[0].Duration)
	assert.Equal(t, geom.NewRect(0, 0, 10, 20), idle[0].Bounds)
	assert.Equal(t, geom.NewRect(1, 0, 8, 18), idle[0].Areas[0].Rect)

	ramp, ok := lib.Animation("ramp")
	require.True(t, ok)
	area := ramp[0].Areas[0]
	assert.Equal(t, collision.KindPolygon, area.Shape().Kind())
	assert.Equal(t, geom.NewRect(0, 0, 16, 16), area.Rect)
	assert.Equal(t, geom.NewRect(0, 0, 16, 16), ramp[0].Envelope())
}

func TestSpriteSheetConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no frames", "animations:\n  idle:\n    frames: []\n"},
		{"zero size", "animations:\n  idle:\n    frames:\n      - width: 0\n        height: 4\n"},
		{"negative duration", "animations:\n  idle:\n    frames:\n      - {width: 4, height: 4, duration_ms: -1}\n"},
		{"area without shape", "animations:\n  idle:\n    frames:\n      - width: 4\n        height: 4\n        areas:\n          - id: nothing\n"},
		{"two point polygon", "animations:\n  idle:\n    frames:\n      - width: 4\n        height: 4\n        areas:\n          - id: line\n            polygon: [{x: 0, y: 0}, {x: 1, y: 1}]\n"},
		{"rect and polygon", "animations:\n  idle:\n    frames:\n      - width: 4\n        height: 4\n        areas:\n          - id: both\n            rect: {x: 0, y: 0, w: 1, h: 1}\n            polygon: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 1, y: 1}]\n"},
		{"empty rect", "animations:\n  idle:\n    frames:\n      - width: 4\n        height: 4\n        areas:\n          - id: flat\n            rect: {x: 0, y: 0, w: 4, h: 0}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSheet(t, tt.src).ToLibrary()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
