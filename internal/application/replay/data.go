package replay

import "github.com/younwookim/runner/internal/domain/entity"

// Version is written into every recording
const Version = "2.0"

// FrameInput records the held keys for a single tick
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	R bool `json:"r,omitempty"` // Right
	L bool `json:"l,omitempty"` // Left
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	S bool `json:"s,omitempty"` // Space
}

// ReplayData contains all data needed to replay a session.
// The simulation is deterministic, so keys and the stage are enough.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// NewFrameInput builds the record for frame f
func NewFrameInput(f int, keys entity.KeyMask) FrameInput {
	return FrameInput{
		F: f,
		R: keys.Has(entity.KeyRight),
		L: keys.Has(entity.KeyLeft),
		U: keys.Has(entity.KeyUp),
		D: keys.Has(entity.KeyDown),
		S: keys.Has(entity.KeySpace),
	}
}

// Keys returns the recorded keys as a mask
func (fi FrameInput) Keys() entity.KeyMask {
	var m entity.KeyMask
	if fi.R {
		m |= entity.KeyRight
	}
	if fi.L {
		m |= entity.KeyLeft
	}
	if fi.U {
		m |= entity.KeyUp
	}
	if fi.D {
		m |= entity.KeyDown
	}
	if fi.S {
		m |= entity.KeySpace
	}
	return m
}
