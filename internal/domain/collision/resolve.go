package collision

import (
	"math"

	"github.com/younwookim/runner/internal/domain/geom"
)

// maxResolveIterations bounds the back-off search; each pass can only grow the distance
const maxResolveIterations = 8

// ResolveToNonColliding backs the moving rectangles away along the negative
// of hint until none of them overlaps any target, and returns the corrected
// position. It serves diagonal motion, where per-axis penetration is ambiguous.
// A quiet hint leaves pos unchanged.
func ResolveToNonColliding(targets, moving []geom.Rect, pos geom.Vector, hint geom.Direction) geom.Vector {
	if hint.IsQuiet() || len(targets) == 0 || len(moving) == 0 {
		return pos
	}

	back := geom.Vector{X: -float64(hint.X), Y: -float64(hint.Y)}
	t := 0.0
	for i := 0; i < maxResolveIterations; i++ {
		offset := back.Scale(t)
		need := t
		for _, m := range moving {
			shifted := m.Translate(offset)
			for _, target := range targets {
				if !shifted.Overlaps(target) {
					continue
				}
				if s := t + separation(shifted, target, hint); s > need {
					need = s
				}
			}
		}
		if need == t {
			return pos.Add(offset)
		}
		t = need
	}
	return pos.Add(back.Scale(t))
}

// separation is the distance along -hint after which m no longer overlaps target
func separation(m, target geom.Rect, hint geom.Direction) float64 {
	best := math.Inf(1)
	switch {
	case hint.X > 0:
		best = math.Min(best, m.Max().X-target.Min.X)
	case hint.X < 0:
		best = math.Min(best, target.Max().X-m.Min.X)
	}
	switch {
	case hint.Y > 0:
		best = math.Min(best, m.Max().Y-target.Min.Y)
	case hint.Y < 0:
		best = math.Min(best, target.Max().Y-m.Min.Y)
	}
	return best
}
