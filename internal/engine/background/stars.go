package background

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// Stars renders a stationary field whose brightness pulses per star. Each
// star advances its own sinusoidal twinkle phase; the sine is mapped into
// the configured [min, max] brightness band.
type Stars struct {
	rng  *rand.Rand
	pool *Pool

	color        gg.RGBA
	minB, maxB   float64
	twinkleSpeed float64

	w, h      float64 // size the current positions are spread over
	particles []*Particle
	phases    []float64
	ready     bool
}

func (s *Stars) Init(cfg *template.BackgroundConfig) {
	s.pool.ReleaseMany(s.particles)
	s.particles = s.particles[:0]
	s.phases = s.phases[:0]
	s.ready = false

	p := cfg.Stars
	if p == nil {
		return
	}

	count := p.Count
	if count <= 0 {
		count = 40
	}
	s.color = parseColor(p.Color, gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	s.minB = p.MinBrightness
	s.maxB = p.MaxBrightness
	if s.maxB <= 0 {
		s.maxB = 1
	}
	if s.minB < 0 {
		s.minB = 0
	}
	if s.minB > s.maxB {
		s.minB, s.maxB = s.maxB, s.minB
	}
	s.twinkleSpeed = p.TwinkleSpeed
	if s.twinkleSpeed <= 0 {
		s.twinkleSpeed = 2
	}

	s.w, s.h = defaultWidth, defaultHeight
	for i := 0; i < count; i++ {
		pt := s.pool.Acquire()
		pt.X = s.rng.Float64() * s.w
		pt.Y = s.rng.Float64() * s.h
		pt.Color = s.color
		pt.Opacity = s.maxB
		s.particles = append(s.particles, pt)
		s.phases = append(s.phases, s.rng.Float64()*2*math.Pi)
	}
	s.ready = true
}

func (s *Stars) Update(dt float64) {
	if !s.ready || !deltaOK(dt) {
		return
	}
	for i, pt := range s.particles {
		s.phases[i] += s.twinkleSpeed * dt
		t := (math.Sin(s.phases[i]) + 1) / 2
		pt.Opacity = s.minB + t*(s.maxB-s.minB)
	}
}

// respread rescales star positions when the rendered size differs from
// the size they were spread over. Dual templates render a 128x64
// unified canvas; the field must cover all of it.
func (s *Stars) respread(w, h float64) {
	if w == s.w && h == s.h {
		return
	}
	if s.w > 0 && s.h > 0 {
		for _, pt := range s.particles {
			pt.X *= w / s.w
			pt.Y *= h / s.h
		}
	}
	s.w, s.h = w, h
}

func (s *Stars) Render(dc *gg.Context, width, height int, brightness int) {
	s.respread(float64(width), float64(height))
	for _, pt := range s.particles {
		c := pt.Color
		c.A *= pt.Opacity
		dc.SetPixel(int(pt.X), int(pt.Y), c)
	}
}

func (s *Stars) Cleanup() {
	s.pool.ReleaseMany(s.particles)
	s.particles = nil
	s.phases = nil
	s.ready = false
}
