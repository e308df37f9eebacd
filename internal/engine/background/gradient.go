package background

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// Gradient paints a multi-stop gradient whose stops shift with an animated
// phase. With Cyclic the phase wraps back to 0 after passing 1; otherwise
// it grows without bound and only its modulo is ever used.
type Gradient struct {
	colors []gg.RGBA
	radial bool
	horiz  bool
	speed  float64
	cyclic bool
	phase  float64
	ready  bool
}

func (g *Gradient) Init(cfg *template.BackgroundConfig) {
	*g = Gradient{}
	p := cfg.Gradient
	if p == nil || len(p.Colors) == 0 {
		return
	}
	g.colors = parsePalette(p.Colors, gg.RGBA{A: 1})
	g.radial = p.Direction == "radial"
	g.horiz = p.Direction != "vertical"
	g.speed = p.Speed
	g.cyclic = p.Cyclic
	g.ready = true
}

func (g *Gradient) Update(dt float64) {
	if !g.ready || !deltaOK(dt) {
		return
	}
	g.phase += g.speed * dt
	if g.cyclic && g.phase > 1 {
		g.phase = 0
	}
}

// Phase exposes the raw phase scalar for invariant checks.
func (g *Gradient) Phase() float64 {
	return g.phase
}

func (g *Gradient) Render(dc *gg.Context, width, height int, brightness int) {
	if !g.ready {
		return
	}

	w := float64(width)
	h := float64(height)
	shift := math.Mod(g.phase, 1)

	n := len(g.colors)
	addStops := func(add func(offset float64, c gg.RGBA)) {
		for i, c := range g.colors {
			pos := 0.0
			if n > 1 {
				pos = float64(i) / float64(n-1)
			}
			if g.cyclic {
				pos += shift
			}
			// Clamp against floating point overshoot before applying.
			pos = math.Max(0, math.Min(1, pos))
			add(pos, c)
		}
	}

	if g.radial {
		b := gg.NewRadialGradientBrush(w/2, h/2, 0, math.Hypot(w, h)/2)
		addStops(func(offset float64, c gg.RGBA) { b.AddColorStop(offset, c) })
		dc.SetFillBrush(b)
	} else if g.horiz {
		b := gg.NewLinearGradientBrush(0, 0, w, 0)
		addStops(func(offset float64, c gg.RGBA) { b.AddColorStop(offset, c) })
		dc.SetFillBrush(b)
	} else {
		b := gg.NewLinearGradientBrush(0, 0, 0, h)
		addStops(func(offset float64, c gg.RGBA) { b.AddColorStop(offset, c) })
		dc.SetFillBrush(b)
	}

	dc.DrawRectangle(0, 0, w, h)
	_ = dc.Fill()
}

func (g *Gradient) Cleanup() {}
