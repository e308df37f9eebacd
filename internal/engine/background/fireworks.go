package background

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// MaxFireworkParticles caps the live particle count so a pathological
// spawn frequency cannot blow the frame budget.
const MaxFireworkParticles = 300

const fireworkGravity = 18.0 // pixels per second squared

// Fireworks spawns radial bursts at a frequency-gated random rate and
// integrates the debris under constant gravity.
type Fireworks struct {
	rng  *rand.Rand
	pool *Pool

	frequency float64
	burstSize int
	palette   []gg.RGBA

	w, h      float64
	particles []*Particle
	ready     bool
}

func (f *Fireworks) Init(cfg *template.BackgroundConfig) {
	f.pool.ReleaseMany(f.particles)
	f.particles = f.particles[:0]
	f.ready = false

	f.w, f.h = defaultWidth, defaultHeight

	p := cfg.Fireworks
	if p == nil {
		return
	}
	f.frequency = p.Frequency
	if f.frequency <= 0 {
		f.frequency = 0.5
	}
	f.burstSize = p.ParticleCount
	if f.burstSize <= 0 {
		f.burstSize = 24
	}
	f.palette = parsePalette(p.Colors, gg.RGBA{R: 1, G: 0.8, B: 0.2, A: 1})
	f.ready = true
}

func (f *Fireworks) Update(dt float64) {
	if !f.ready || !deltaOK(dt) {
		return
	}

	// Tripled for visual density; at typical frame cadence a plain
	// frequency*dt gate reads as nearly empty.
	if len(f.particles) < MaxFireworkParticles && f.rng.Float64() < f.frequency*dt*3 {
		f.spawnBurst()
	}

	alive := f.particles[:0]
	for _, pt := range f.particles {
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
		pt.VY += fireworkGravity * dt
		pt.Life -= dt
		if pt.Life <= 0 {
			f.pool.Release(pt)
			continue
		}
		pt.Opacity = pt.Life / pt.MaxLife
		alive = append(alive, pt)
	}
	for i := len(alive); i < len(f.particles); i++ {
		f.particles[i] = nil
	}
	f.particles = alive
}

func (f *Fireworks) spawnBurst() {
	cx := f.rng.Float64() * f.w
	cy := f.rng.Float64() * f.h * 0.75
	color := f.palette[f.rng.IntN(len(f.palette))]

	for i := 0; i < f.burstSize; i++ {
		if len(f.particles) >= MaxFireworkParticles {
			return
		}
		angle := (2*math.Pi/float64(f.burstSize))*float64(i) + randRange(f.rng, -0.2, 0.2)
		speed := randRange(f.rng, 8, 26)
		life := randRange(f.rng, 0.8, 1.8)

		pt := f.pool.Acquire()
		pt.X = cx
		pt.Y = cy
		pt.VX = math.Cos(angle) * speed
		pt.VY = math.Sin(angle) * speed
		pt.Color = color
		pt.Life = life
		pt.MaxLife = life
		pt.Size = 1
		pt.Opacity = 1
		f.particles = append(f.particles, pt)
	}
}

func (f *Fireworks) Render(dc *gg.Context, width, height int, brightness int) {
	f.w, f.h = float64(width), float64(height)
	for _, pt := range f.particles {
		c := pt.Color
		c.A *= pt.Opacity
		dc.SetPixel(int(pt.X), int(pt.Y), c)
	}
}

// Live reports the current live particle count.
func (f *Fireworks) Live() int {
	return len(f.particles)
}

func (f *Fireworks) Cleanup() {
	f.pool.ReleaseMany(f.particles)
	f.particles = nil
	f.ready = false
}
