package replay

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/runner/internal/application/system"
	"github.com/younwookim/runner/internal/domain/character"
	"github.com/younwookim/runner/internal/domain/entity"
	"github.com/younwookim/runner/internal/domain/geom"
	"github.com/younwookim/runner/internal/infrastructure/config"
)

func TestFrameInput_Keys(t *testing.T) {
	tests := []struct {
		name string
		keys entity.KeyMask
	}{
		{"none", entity.KeyNone},
		{"right", entity.KeyRight},
		{"left and up", entity.KeyLeft | entity.KeyUp},
		{"all", entity.KeyRight | entity.KeyLeft | entity.KeyUp | entity.KeyDown | entity.KeySpace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fi := NewFrameInput(7, tt.keys)
			assert.Equal(t, 7, fi.F)
			assert.Equal(t, tt.keys, fi.Keys())
		})
	}
}

func TestFrameInput_OmitsReleasedKeys(t *testing.T) {
	data, err := json.Marshal(NewFrameInput(3, entity.KeyRight))
	require.NoError(t, err)

	assert.JSONEq(t, `{"f":3,"r":true}`, string(data))
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, U: true},
			{F: 2},
		},
	}

	replayer := NewReplayer(data)

	keys, ok := replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, entity.KeyLeft, keys)

	keys, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, entity.KeyRight|entity.KeyUp, keys)

	keys, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, entity.KeyNone, keys)

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrame(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5, entity.KeyNone))

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
	assert.Equal(t, "test", replayer.Stage())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(3, entity.KeyDown))

	assert.Equal(t, 3, replayer.Run(func(entity.KeyMask) {}))
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	keys, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.Equal(t, entity.KeyDown, keys)
}

func TestLoadReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	raw, err := json.Marshal(CreateTestReplayData(4, entity.KeySpace))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, Version, data.Version)
	assert.Len(t, data.Frames, 4)
	assert.Equal(t, entity.KeySpace, data.Frames[3].Keys())

	_, err = LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadReplay(bad)
	assert.Error(t, err)
}

// simulate plays a recording on the demo stage with a clock advancing one tick per frame
func simulate(t *testing.T, data ReplayData) []geom.Vector {
	t.Helper()

	cfg, err := config.NewLoader("../../../cmd/game/configs").LoadAll("demo")
	require.NoError(t, err)

	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	stage, err := system.LoadStage(cfg.Stage, cfg.Library, clock)
	require.NoError(t, err)
	physics := system.NewPhysicsSystem(stage, system.BuildIndex(stage))
	c := character.New(stage.Spawn, cfg.Library, physics.Index(),
		character.WithClock(clock), character.WithTuning(cfg.Physics.Character.ToTuning()))
	physics.AddMover(c)

	var trace []geom.Vector
	NewReplayer(data).Run(func(keys entity.KeyMask) {
		physics.Update(keys)
		trace = append(trace, c.Position())
		now = now.Add(time.Second / 60)
	})
	return trace
}

func randomReplayData(seed int64, frames int) ReplayData {
	rng := rand.New(rand.NewSource(seed))
	data := ReplayData{Version: Version, Stage: "demo"}

	var keys entity.KeyMask
	for i := 0; i < frames; i++ {
		// Hold keys for a while before changing them
		if i%15 == 0 {
			keys = entity.KeyMask(rng.Intn(32))
		}
		data.Frames = append(data.Frames, NewFrameInput(i, keys))
	}
	return data
}

func TestReplayDeterminism(t *testing.T) {
	data := randomReplayData(42, 600)

	first := simulate(t, data)
	second := simulate(t, data)

	require.Len(t, first, 600)
	assert.Equal(t, first, second)
}

func TestReplayIdleCharacterStaysPut(t *testing.T) {
	trace := simulate(t, CreateTestReplayData(120, entity.KeyNone))

	for i, p := range trace {
		assert.Equal(t, geom.Vector{X: 48, Y: 16}, p, "frame %d", i)
	}
}

func TestReplayWithMovement(t *testing.T) {
	trace := simulate(t, CreateTestReplayData(10, entity.KeyRight))

	for i := 1; i < len(trace); i++ {
		assert.InDelta(t, 4, trace[i].X-trace[i-1].X, 1e-9, "frame %d", i)
	}
}
