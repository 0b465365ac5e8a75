package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/younwookim/runner/internal/domain/animation"
	"github.com/younwookim/runner/internal/domain/collision"
	"github.com/younwookim/runner/internal/domain/geom"
)

// SpriteSheetConfig is the root config for sprites.yaml.
// Positions are relative to the object position with y pointing up.
type SpriteSheetConfig struct {
	Sheet      string                     `yaml:"sheet"`
	Animations map[string]AnimationConfig `yaml:"animations"`
}

type AnimationConfig struct {
	Frames []FrameConfig `yaml:"frames"`
}

type FrameConfig struct {
	Width      float64      `yaml:"width"`
	Height     float64      `yaml:"height"`
	UV         RectConfig   `yaml:"uv"`
	Offset     PointConfig  `yaml:"offset"`
	DurationMS int          `yaml:"duration_ms"`
	Bounds     *RectConfig  `yaml:"bounds"` // defaults to the frame size at the origin
	Areas      []AreaConfig `yaml:"areas"`
}

// AreaConfig sets exactly one of Rect and Polygon
type AreaConfig struct {
	ID      string        `yaml:"id"`
	Rect    *RectConfig   `yaml:"rect"`
	Polygon []PointConfig `yaml:"polygon"`
}

type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (r RectConfig) rect() geom.Rect { return geom.NewRect(r.X, r.Y, r.W, r.H) }

func (p PointConfig) vector() geom.Vector { return geom.Vector{X: p.X, Y: p.Y} }

// Names returns the animation names in a stable order
func (c *SpriteSheetConfig) Names() []string {
	names := make([]string, 0, len(c.Animations))
	for name := range c.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToLibrary validates the sheet and converts it to an animation library
func (c *SpriteSheetConfig) ToLibrary() (animation.Library, error) {
	lib := make(animation.Library, len(c.Animations))
	for _, name := range c.Names() {
		seq, err := c.Animations[name].sequence()
		if err != nil {
			return nil, fmt.Errorf("%w: animation %s: %w", ErrInvalidConfig, name, err)
		}
		lib[animation.ID(name)] = seq
	}
	return lib, nil
}

func (a AnimationConfig) sequence() (animation.Sequence, error) {
	if len(a.Frames) == 0 {
		return nil, errors.New("no frames")
	}
	seq := make(animation.Sequence, 0, len(a.Frames))
	for i, f := range a.Frames {
		frame, err := f.frame()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		seq = append(seq, frame)
	}
	return seq, nil
}

func (f FrameConfig) frame() (animation.Frame, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return animation.Frame{}, fmt.Errorf("size %vx%v", f.Width, f.Height)
	}
	if f.DurationMS < 0 {
		return animation.Frame{}, fmt.Errorf("duration %dms", f.DurationMS)
	}

	out := animation.Frame{
		Width:    f.Width,
		Height:   f.Height,
		UV:       f.UV.rect(),
		Offset:   f.Offset.vector(),
		Duration: time.Duration(f.DurationMS) * time.Millisecond,
		Bounds:   geom.NewRect(0, 0, f.Width, f.Height),
	}
	if f.Bounds != nil {
		out.Bounds = f.Bounds.rect()
	}

	for i, ac := range f.Areas {
		area, err := ac.area()
		if err != nil {
			return animation.Frame{}, fmt.Errorf("area %d: %w", i, err)
		}
		out.Areas = append(out.Areas, area)
	}
	return out, nil
}

func (a AreaConfig) area() (animation.Area, error) {
	switch {
	case a.Rect != nil && len(a.Polygon) > 0:
		return animation.Area{}, fmt.Errorf("%s: both rect and polygon set", a.ID)
	case a.Rect != nil:
		r := a.Rect.rect()
		if r.Empty() {
			return animation.Area{}, fmt.Errorf("%s: empty rect", a.ID)
		}
		return animation.Area{ID: a.ID, Rect: r}, nil
	case len(a.Polygon) >= 3:
		poly := make(collision.Polygon, len(a.Polygon))
		for i, p := range a.Polygon {
			poly[i] = p.vector()
		}
		return animation.Area{ID: a.ID, Rect: poly.Bounds(), Polygon: poly}, nil
	case len(a.Polygon) > 0:
		return animation.Area{}, fmt.Errorf("%s: polygon needs at least 3 points", a.ID)
	default:
		return animation.Area{}, fmt.Errorf("%s: no shape", a.ID)
	}
}
