package background

import (
	"math/rand/v2"

	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/matjam/ledsign/internal/template"
)

type matrixColumn struct {
	x      int
	headY  float64
	speed  float64
	active bool
}

// Matrix renders falling code-rain columns. Columns are independent
// records rather than pooled particles: each has a head position and a
// fading trail, resets above the top after leaving the bottom, and
// occasionally relocates to a different column on reset.
type Matrix struct {
	rng *rand.Rand

	color       gg.RGBA
	head        gg.RGBA
	speedMin    float64
	speedMax    float64
	trailLength int

	w, h    float64
	columns []matrixColumn
	ready   bool
}

func (m *Matrix) Init(cfg *template.BackgroundConfig) {
	m.columns = m.columns[:0]
	m.ready = false
	m.w, m.h = defaultWidth, defaultHeight

	p := cfg.Matrix
	if p == nil {
		return
	}

	m.color = parseColor(p.Color, gg.RGBA{G: 1, A: 1})
	base, _ := colorful.MakeColor(m.color.Color())
	head := base.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.7)
	m.head = gg.RGBA{R: head.R, G: head.G, B: head.B, A: 1}

	m.speedMin = p.SpeedMin
	if m.speedMin <= 0 {
		m.speedMin = 10
	}
	m.speedMax = p.SpeedMax
	if m.speedMax < m.speedMin {
		m.speedMax = m.speedMin * 2
	}
	m.trailLength = p.TrailLength
	if m.trailLength <= 0 {
		m.trailLength = 8
	}
	density := p.Density
	if density <= 0 || density > 1 {
		density = 0.4
	}

	for x := 0; x < defaultWidth; x++ {
		if m.rng.Float64() >= density {
			continue
		}
		m.columns = append(m.columns, matrixColumn{
			x:      x,
			headY:  -m.rng.Float64() * m.h,
			speed:  randRange(m.rng, m.speedMin, m.speedMax),
			active: true,
		})
	}
	m.ready = true
}

func (m *Matrix) Update(dt float64) {
	if !m.ready || !deltaOK(dt) {
		return
	}
	for i := range m.columns {
		col := &m.columns[i]
		col.headY += col.speed * dt
		if col.headY-float64(m.trailLength) > m.h {
			col.headY = -randRange(m.rng, 0, m.h*0.5)
			col.speed = randRange(m.rng, m.speedMin, m.speedMax)
			if m.rng.Float64() < 0.1 {
				col.x = m.rng.IntN(int(m.w))
			}
		}
	}
}

func (m *Matrix) Render(dc *gg.Context, width, height int, brightness int) {
	m.w, m.h = float64(width), float64(height)
	for _, col := range m.columns {
		head := int(col.headY)
		for t := 0; t < m.trailLength; t++ {
			y := head - t
			if y < 0 || y >= height {
				continue
			}
			if t == 0 {
				dc.SetPixel(col.x, y, m.head)
				continue
			}
			c := m.color
			c.A *= 1 - float64(t)/float64(m.trailLength)
			dc.SetPixel(col.x, y, c)
		}
	}
}

func (m *Matrix) Cleanup() {
	m.columns = nil
	m.ready = false
}
