package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/runner/internal/domain/entity"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// GetInput returns the keys for the current frame and advances
func (r *Replayer) GetInput() (entity.KeyMask, bool) {
	if r.frame >= len(r.data.Frames) {
		return entity.KeyNone, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Keys(), true
}

// Run feeds every remaining frame to step and returns how many were played
func (r *Replayer) Run(step func(keys entity.KeyMask)) int {
	played := 0
	for {
		keys, ok := r.GetInput()
		if !ok {
			return played
		}
		step(keys)
		played++
	}
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the stage the recording was made on
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data holding the same keys on every frame
func CreateTestReplayData(frames int, keys entity.KeyMask) ReplayData {
	data := ReplayData{
		Version:   Version,
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = NewFrameInput(i, keys)
	}

	return data
}
