package background

import (
	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// Solid fills the surface with a single color. No simulation state.
type Solid struct {
	color gg.RGBA
	ready bool
}

func (s *Solid) Init(cfg *template.BackgroundConfig) {
	if cfg.Solid == nil {
		s.ready = false
		return
	}
	s.color = parseColor(cfg.Solid.Color, gg.RGBA{A: 1})
	s.ready = true
}

func (s *Solid) Update(dt float64) {}

func (s *Solid) Render(dc *gg.Context, width, height int, brightness int) {
	if !s.ready {
		return
	}
	dc.ClearWithColor(s.color)
}

func (s *Solid) Cleanup() {}
