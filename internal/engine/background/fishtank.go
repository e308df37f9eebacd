package background

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/matjam/ledsign/internal/template"
)

type fish struct {
	x, y      float64
	vx, vy    float64
	swimPhase float64
	left      bool
	color     gg.RGBA
	size      float64
}

type plant struct {
	x      float64
	height float64
	phase  float64
	color  gg.RGBA
}

// Fishtank is a small aquarium: fish bounce off the tank walls with a
// sinusoidal bob, bubbles rise and wrap like the drift effects, and
// plants sway on a shared phase rather than simulating physics.
type Fishtank struct {
	rng  *rand.Rand
	pool *Pool

	water gg.RGBA

	w, h    float64
	fish    []*fish
	plants  []*plant
	bubbles []*Particle
	sway    float64
	ready   bool
}

var fishPalette = []gg.RGBA{
	{R: 1, G: 0.55, B: 0.1, A: 1},
	{R: 1, G: 0.85, B: 0.2, A: 1},
	{R: 0.3, G: 0.6, B: 1, A: 1},
	{R: 1, G: 0.35, B: 0.45, A: 1},
}

func (f *Fishtank) Init(cfg *template.BackgroundConfig) {
	f.pool.ReleaseMany(f.bubbles)
	f.fish = f.fish[:0]
	f.plants = f.plants[:0]
	f.bubbles = f.bubbles[:0]
	f.ready = false
	f.w, f.h = defaultWidth, defaultHeight

	p := cfg.Fishtank
	if p == nil {
		return
	}

	f.water = parseColor(p.WaterColor, gg.RGBA{R: 0.0, G: 0.05, B: 0.15, A: 1})

	fishCount := p.FishCount
	if fishCount <= 0 {
		fishCount = 4
	}
	bubbleCount := p.BubbleCount
	if bubbleCount <= 0 {
		bubbleCount = 6
	}
	plantCount := p.PlantCount
	if plantCount <= 0 {
		plantCount = 3
	}

	for i := 0; i < fishCount; i++ {
		vx := randRange(f.rng, 4, 10)
		if f.rng.Float64() < 0.5 {
			vx = -vx
		}
		f.fish = append(f.fish, &fish{
			x:         f.rng.Float64() * f.w,
			y:         randRange(f.rng, 2, f.h-4),
			vx:        vx,
			vy:        randRange(f.rng, -1, 1),
			swimPhase: f.rng.Float64() * 2 * math.Pi,
			left:      vx < 0,
			color:     fishPalette[f.rng.IntN(len(fishPalette))],
			size:      randRange(f.rng, 2, 4),
		})
	}

	for i := 0; i < plantCount; i++ {
		base, _ := colorful.MakeColor(gg.RGBA{R: 0.1, G: 0.7, B: 0.25, A: 1}.Color())
		shade := base.BlendRgb(colorful.Color{}, f.rng.Float64()*0.4)
		f.plants = append(f.plants, &plant{
			x:      f.rng.Float64() * f.w,
			height: randRange(f.rng, f.h*0.2, f.h*0.5),
			phase:  f.rng.Float64() * 2 * math.Pi,
			color:  gg.RGBA{R: shade.R, G: shade.G, B: shade.B, A: 1},
		})
	}

	for i := 0; i < bubbleCount; i++ {
		pt := f.pool.Acquire()
		pt.X = f.rng.Float64() * f.w
		pt.Y = f.rng.Float64() * f.h
		pt.VY = -randRange(f.rng, 4, 9)
		pt.Color = gg.RGBA{R: 0.7, G: 0.9, B: 1, A: 1}
		pt.Opacity = randRange(f.rng, 0.3, 0.8)
		f.bubbles = append(f.bubbles, pt)
	}
	f.ready = true
}

func (f *Fishtank) Update(dt float64) {
	if !f.ready || !deltaOK(dt) {
		return
	}
	f.sway += dt

	for _, fi := range f.fish {
		fi.x += fi.vx * dt
		fi.y += fi.vy * dt
		fi.swimPhase += 6 * dt

		if fi.x < fi.size {
			fi.x = fi.size
			fi.vx = -fi.vx
			fi.left = false
		} else if fi.x > f.w-fi.size {
			fi.x = f.w - fi.size
			fi.vx = -fi.vx
			fi.left = true
		}
		if fi.y < 1 {
			fi.y = 1
			fi.vy = -fi.vy
		} else if fi.y > f.h-2 {
			fi.y = f.h - 2
			fi.vy = -fi.vy
		}

		// Occasional random vertical wander.
		if f.rng.Float64() < 0.5*dt {
			fi.vy = randRange(f.rng, -2, 2)
		}
	}

	for _, pt := range f.bubbles {
		pt.Y += pt.VY * dt
		pt.X += math.Sin(f.sway*3+pt.Y*0.3) * 2 * dt
		if pt.Y < -1 {
			pt.Y = f.h + 1
			pt.X = f.rng.Float64() * f.w
		}
		if pt.X < 0 {
			pt.X += f.w
		} else if pt.X >= f.w {
			pt.X -= f.w
		}
	}
}

func (f *Fishtank) Render(dc *gg.Context, width, height int, brightness int) {
	if !f.ready {
		return
	}
	f.w, f.h = float64(width), float64(height)
	dc.ClearWithColor(f.water)

	for _, pl := range f.plants {
		top := f.h - pl.height
		for y := f.h - 1; y >= top; y-- {
			depth := (f.h - y) / pl.height
			sway := math.Sin(f.sway*1.5+pl.phase+depth*2) * depth * 2
			dc.SetPixel(int(pl.x+sway), int(y), pl.color)
		}
	}

	for _, pt := range f.bubbles {
		c := pt.Color
		c.A *= pt.Opacity
		dc.SetPixel(int(pt.X), int(pt.Y), c)
	}

	for _, fi := range f.fish {
		bob := math.Sin(fi.swimPhase) * 0.8
		dc.SetColor(fi.color.Color())
		dc.DrawEllipse(fi.x, fi.y+bob, fi.size, fi.size/2)
		_ = dc.Fill()

		// Tail wiggles opposite the facing direction.
		tailX := fi.x + fi.size
		if fi.left {
			tailX = fi.x - fi.size
		}
		wiggle := math.Sin(fi.swimPhase*2) * fi.size / 3
		dc.DrawLine(tailX, fi.y+bob, tailX+wiggle*0.5, fi.y+bob+wiggle)
		dc.SetLineWidth(1)
		_ = dc.Stroke()
	}
}

func (f *Fishtank) Cleanup() {
	f.pool.ReleaseMany(f.bubbles)
	f.bubbles = nil
	f.fish = nil
	f.plants = nil
	f.ready = false
}
