package background

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// Drift implements both bubbles and snow: particles move with a mostly
// constant velocity plus horizontal jitter and wrap at the edges. Bubbles
// rise and respawn at the bottom; snow falls and respawns at the top.
type Drift struct {
	rng  *rand.Rand
	pool *Pool
	up   bool

	speed   float64
	color   gg.RGBA
	sizeMin float64
	sizeMax float64

	w, h      float64
	phase     float64
	particles []*Particle
	ready     bool
}

func (d *Drift) Init(cfg *template.BackgroundConfig) {
	d.pool.ReleaseMany(d.particles)
	d.particles = d.particles[:0]
	d.ready = false
	d.w, d.h = defaultWidth, defaultHeight

	var p *template.DriftParams
	if d.up {
		p = cfg.Bubbles
	} else {
		p = cfg.Snow
	}
	if p == nil {
		return
	}

	count := p.Count
	if count <= 0 {
		count = 20
	}
	d.speed = p.Speed
	if d.speed <= 0 {
		d.speed = 8
	}
	fallback := gg.RGBA{R: 1, G: 1, B: 1, A: 1}
	if d.up {
		fallback = gg.RGBA{R: 0.6, G: 0.85, B: 1, A: 1}
	}
	d.color = parseColor(p.Color, fallback)
	d.sizeMin = p.SizeMin
	if d.sizeMin <= 0 {
		d.sizeMin = 1
	}
	d.sizeMax = p.SizeMax
	if d.sizeMax < d.sizeMin {
		d.sizeMax = d.sizeMin
	}

	for i := 0; i < count; i++ {
		d.particles = append(d.particles, d.spawn(true))
	}
	d.ready = true
}

func (d *Drift) spawn(anywhere bool) *Particle {
	pt := d.pool.Acquire()
	pt.X = d.rng.Float64() * d.w
	if anywhere {
		pt.Y = d.rng.Float64() * d.h
	} else if d.up {
		pt.Y = d.h + 1
	} else {
		pt.Y = -1
	}
	vy := randRange(d.rng, 0.6, 1.4) * d.speed
	if d.up {
		vy = -vy
	}
	pt.VY = vy
	pt.VX = randRange(d.rng, -0.3, 0.3) * d.speed
	pt.Color = d.color
	pt.Size = randRange(d.rng, d.sizeMin, d.sizeMax)
	pt.Opacity = randRange(d.rng, 0.5, 1)
	return pt
}

func (d *Drift) Update(dt float64) {
	if !d.ready || !deltaOK(dt) {
		return
	}
	d.phase += dt

	for _, pt := range d.particles {
		// Gentle horizontal sway on top of the base jitter velocity.
		pt.X += (pt.VX + math.Sin(d.phase*2+pt.Y*0.2)*d.speed*0.1) * dt
		pt.Y += pt.VY * dt

		if pt.X < 0 {
			pt.X += d.w
		} else if pt.X >= d.w {
			pt.X -= d.w
		}

		if d.up && pt.Y < -1 {
			d.respawn(pt)
		} else if !d.up && pt.Y > d.h+1 {
			d.respawn(pt)
		}
	}
}

func (d *Drift) respawn(pt *Particle) {
	pt.X = d.rng.Float64() * d.w
	if d.up {
		pt.Y = d.h + 1
	} else {
		pt.Y = -1
	}
	pt.Size = randRange(d.rng, d.sizeMin, d.sizeMax)
	pt.Opacity = randRange(d.rng, 0.5, 1)
}

func (d *Drift) Render(dc *gg.Context, width, height int, brightness int) {
	d.w, d.h = float64(width), float64(height)
	for _, pt := range d.particles {
		c := pt.Color
		c.A *= pt.Opacity
		if pt.Size <= 1 {
			dc.SetPixel(int(pt.X), int(pt.Y), c)
			continue
		}
		dc.SetColor(c.Color())
		dc.DrawCircle(pt.X, pt.Y, pt.Size/2)
		_ = dc.Fill()
	}
}

func (d *Drift) Cleanup() {
	d.pool.ReleaseMany(d.particles)
	d.particles = nil
	d.ready = false
}
