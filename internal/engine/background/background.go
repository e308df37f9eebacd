// Package background implements the animated background effects. Each
// effect is a Generator: a self-contained state machine that is initialized
// from its config variant, advanced by wall-clock deltas, and painted onto
// a gg drawing context. Generators are not safe for concurrent use; the
// engine serializes all calls per template.
package background

import (
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// Update deltas outside this window are rejected rather than integrated.
// Tiny deltas are degenerate timer artifacts; large ones are clock jumps
// that would teleport every particle in a single step.
const (
	MinDelta = 0.005
	MaxDelta = 0.100
)

// Effects that need canvas bounds during Update (spawn positions, wrap
// edges) track the size last handed to Render, starting from the single
// panel dimensions.
const (
	defaultWidth  = 128
	defaultHeight = 32
)

// Generator is the common contract for all background effects.
//
// Brightness is passed through for effects that gate sub-pixel detail at
// low output levels; color scaling itself happens once, in the frame
// compositor's output pass, so generators must draw at full intensity.
type Generator interface {
	// Init resets the effect from its config variant. A config whose
	// payload for this effect is missing leaves the generator inert.
	Init(cfg *template.BackgroundConfig)

	// Update advances the simulation by dt seconds. Deltas outside
	// [MinDelta, MaxDelta] are ignored.
	Update(dt float64)

	// Render paints the current state onto dc.
	Render(dc *gg.Context, width, height int, brightness int)

	// Cleanup releases pooled resources. The generator must not be used
	// afterwards.
	Cleanup()
}

// New constructs a generator for the config's type. The second return is
// false for unrecognized types; the caller decides the fallback.
func New(cfg *template.BackgroundConfig, rng *rand.Rand, pool *Pool) (Generator, bool) {
	switch cfg.Type {
	case template.BackgroundSolid:
		return &Solid{}, true
	case template.BackgroundGradient:
		return &Gradient{}, true
	case template.BackgroundFireworks:
		return &Fireworks{rng: rng, pool: pool}, true
	case template.BackgroundBubbles:
		return &Drift{rng: rng, pool: pool, up: true}, true
	case template.BackgroundSnow:
		return &Drift{rng: rng, pool: pool, up: false}, true
	case template.BackgroundStars:
		return &Stars{rng: rng, pool: pool}, true
	case template.BackgroundMatrix:
		return &Matrix{rng: rng}, true
	case template.BackgroundPipes:
		return &Pipes{rng: rng}, true
	case template.BackgroundFishtank:
		return &Fishtank{rng: rng, pool: pool}, true
	case template.BackgroundGIF:
		return &GIF{}, true
	default:
		return nil, false
	}
}

func deltaOK(dt float64) bool {
	return dt >= MinDelta && dt <= MaxDelta
}

// parseColor converts a hex color string, falling back when empty.
func parseColor(s string, fallback gg.RGBA) gg.RGBA {
	if s == "" {
		return fallback
	}
	return gg.Hex(s)
}

func parsePalette(colors []string, fallback gg.RGBA) []gg.RGBA {
	if len(colors) == 0 {
		return []gg.RGBA{fallback}
	}
	out := make([]gg.RGBA, len(colors))
	for i, c := range colors {
		out[i] = parseColor(c, fallback)
	}
	return out
}

func randRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
